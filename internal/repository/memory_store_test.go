package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

func day(d int) time.Time {
	return time.Date(2024, 9, d, 0, 0, 0, 0, time.UTC)
}

func seededStore() *MemoryStore {
	s := NewMemoryStore()
	s.AddLeague(&model.League{ID: 1, Name: "Premier League"})
	for id, name := range map[uint64]string{1: "Arsenal", 2: "Chelsea", 3: "Everton"} {
		s.AddTeam(&model.Team{ID: id, Name: name, LeagueID: 1})
	}
	s.AddMatch(&model.Match{LeagueID: 1, Season: "2425", Date: day(10), HomeTeamID: 1, AwayTeamID: 2, Result: model.ResultHome})
	s.AddMatch(&model.Match{LeagueID: 1, Season: "2425", Date: day(3), HomeTeamID: 2, AwayTeamID: 3, Result: model.ResultDraw})
	s.AddMatch(&model.Match{LeagueID: 1, Season: "2324", Date: day(1).AddDate(0, -4, 0), HomeTeamID: 3, AwayTeamID: 1, Result: model.ResultAway})
	s.AddMatch(&model.Match{LeagueID: 1, Season: "2425", Date: day(17), HomeTeamID: 3, AwayTeamID: 1, Result: model.ResultAway})
	return s
}

func TestMemoryStoreDedupOnAdd(t *testing.T) {
	s := seededStore()
	added := s.AddMatch(&model.Match{LeagueID: 1, Season: "2425", Date: day(10).Add(15 * time.Hour), HomeTeamID: 1, AwayTeamID: 2, Result: model.ResultHome})
	assert.False(t, added)
	assert.Len(t, s.Matches(), 4)
}

func TestMemoryStoreKeepsDateOrder(t *testing.T) {
	s := seededStore()
	all := s.Matches()
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.False(t, all[i].Date.Before(all[i-1].Date))
	}
	assert.Equal(t, "Arsenal", all[len(all)-1].AwayTeam.Name)
}

func TestMemoryStoreMatchesBeforeIsStrict(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	list, err := s.MatchesBefore(ctx, interfaces.MatchFilter{TeamID: 1, Before: day(17)})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, day(10), list[0].Date)
	for _, m := range list {
		assert.True(t, m.Date.Before(day(17)))
	}

	limited, err := s.MatchesBefore(ctx, interfaces.MatchFilter{TeamID: 1, Before: day(30), Limit: 1})
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, day(17), limited[0].Date)
}

func TestMemoryStoreVenueAndOpponentFilters(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	away, err := s.MatchesBefore(ctx, interfaces.MatchFilter{TeamID: 1, Venue: model.VenueAway, Before: day(30)})
	require.NoError(t, err)
	assert.Len(t, away, 2)

	h2h, err := s.MatchesBefore(ctx, interfaces.MatchFilter{TeamID: 1, OpponentID: 3, Before: day(30)})
	require.NoError(t, err)
	assert.Len(t, h2h, 2)
}

func TestMemoryStoreSeasons(t *testing.T) {
	s := seededStore()
	ctx := context.Background()

	seasons, err := s.Seasons(ctx, "premier league")
	require.NoError(t, err)
	assert.Equal(t, []string{"2425", "2324"}, seasons)

	inSeason, err := s.MatchesInSeason(ctx, "Premier League", "2425")
	require.NoError(t, err)
	assert.Len(t, inSeason, 3)

	none, err := s.MatchesInSeason(ctx, "La Liga", "2425")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemoryStoreLeagueLookup(t *testing.T) {
	s := seededStore()
	_, err := s.LeagueByID(context.Background(), 9)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)

	l, err := s.LeagueByName(context.Background(), "PREMIER LEAGUE")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), l.ID)
}

func TestMemoryStoreCancelledContext(t *testing.T) {
	s := seededStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.MatchesBefore(ctx, interfaces.MatchFilter{TeamID: 1, Before: day(30)})
	assert.ErrorIs(t, err, interfaces.ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = s.MatchesInSeason(ctx, "Premier League", "2425")
	assert.ErrorIs(t, err, interfaces.ErrStoreUnavailable)

	_, err = s.Seasons(ctx, "Premier League")
	assert.ErrorIs(t, err, interfaces.ErrStoreUnavailable)

	_, err = s.SaveMatches(ctx, []*model.Match{{LeagueID: 1, Season: "2425", Date: day(24), HomeTeamID: 1, AwayTeamID: 3, Result: model.ResultDraw}})
	assert.ErrorIs(t, err, interfaces.ErrStoreUnavailable)
}
