package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatchForecast/internal/model"
	"MatchForecast/internal/repository"
)

func TestResultServiceRun(t *testing.T) {
	store := seededStore()
	fixtures := &fakeFixtures{}
	ctx := context.Background()
	require.NoError(t, fixtures.UpsertFixture(ctx, &model.Fixture{LeagueID: 1, Date: day(2024, 9, 14), HomeTeamID: 1, AwayTeamID: 3}))

	fixtureID := uint64(1)
	preds := &fakePredictions{list: []*model.Prediction{
		{ID: 1, FixtureID: &fixtureID, LeagueID: 1, HomeTeamID: 1, AwayTeamID: 3, MatchDate: day(2024, 9, 14), PredictedResult: model.ResultHome},
		{ID: 2, LeagueID: 1, HomeTeamID: 2, AwayTeamID: 1, MatchDate: day(2024, 9, 21), PredictedResult: model.ResultHome},
		{ID: 3, LeagueID: 1, HomeTeamID: 3, AwayTeamID: 2, MatchDate: day(2024, 12, 1), PredictedResult: model.ResultDraw},
	}}

	svc := NewResultService(store, preds, fixtures, quietLogger())
	updated, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)

	first := preds.list[0]
	require.NotNil(t, first.Correct)
	assert.True(t, *first.Correct)
	assert.Equal(t, model.ResultHome, *first.ActualResult)
	require.NotNil(t, first.MatchID)

	second := preds.list[1]
	require.NotNil(t, second.Correct)
	assert.False(t, *second.Correct)
	assert.Equal(t, model.ResultAway, *second.ActualResult)

	assert.Nil(t, preds.list[2].ActualResult, "match not ingested yet")

	fx, err := fixtures.GetFixtureByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, repository.FixtureFinished, fx.Status)

	again, err := svc.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, again)
}
