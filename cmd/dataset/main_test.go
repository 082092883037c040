package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/repository"
)

func TestBuildQuery(t *testing.T) {
	store := repository.NewMemoryStore()
	store.AddLeague(&model.League{ID: 7, Name: "Serie A"})
	ctx := context.Background()

	q, err := buildQuery(ctx, store, exportOptions{league: "serie a", from: "2023-08-01", to: "2024-06-30"})
	require.NoError(t, err)
	assert.EqualValues(t, 7, q.LeagueID)
	require.NotNil(t, q.From)
	require.NotNil(t, q.To)
	assert.Equal(t, time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC), *q.From)

	q, err = buildQuery(ctx, store, exportOptions{})
	require.NoError(t, err)
	assert.Zero(t, q.LeagueID)
	assert.Nil(t, q.From)

	_, err = buildQuery(ctx, store, exportOptions{league: "Ligue 1"})
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	_, err = buildQuery(ctx, store, exportOptions{from: "01/08/2023"})
	assert.Error(t, err)
}
