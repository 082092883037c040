package features

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

func TestTeamFormExcludesReferenceDate(t *testing.T) {
	calc := NewCalculator(abcStore(), quietLogger())
	ctx := context.Background()

	onDate3, err := calc.TeamForm(ctx, teamA, date3, 5, model.VenueAll)
	require.NoError(t, err)
	assert.Equal(t, 1, onDate3.MatchesPlayed)

	after, err := calc.TeamForm(ctx, teamA, date3.AddDate(0, 0, 1), 5, model.VenueAll)
	require.NoError(t, err)
	assert.Equal(t, 2, after.MatchesPlayed)
	assert.Equal(t, 6, after.Points)
	assert.Equal(t, 2, after.Wins)
	assert.Equal(t, 5, after.GoalsScored)
	assert.Equal(t, 2, after.GoalsConceded)
	assert.InDelta(t, 2.5, after.GoalsPerMatch, 1e-9)
	assert.InDelta(t, 1.0, after.GoalsConcededPerMatch, 1e-9)
	assert.InDelta(t, 3.0, after.PointsPerMatch, 1e-9)
	assert.InDelta(t, 1.0, after.WinRate, 1e-9)
	assert.Equal(t, 0, after.CleanSheets)
}

func TestTeamFormVenueRestriction(t *testing.T) {
	calc := NewCalculator(abcStore(), quietLogger())
	ctx := context.Background()
	later := date3.AddDate(0, 0, 7)

	home, err := calc.TeamForm(ctx, teamB, later, 5, model.VenueHome)
	require.NoError(t, err)
	assert.Equal(t, 1, home.MatchesPlayed)
	assert.Equal(t, 1, home.Draws)
	assert.Equal(t, 1, home.CleanSheets)
	assert.InDelta(t, 1.0, home.CleanSheetRate, 1e-9)

	away, err := calc.TeamForm(ctx, teamB, later, 5, model.VenueAway)
	require.NoError(t, err)
	assert.Equal(t, 1, away.MatchesPlayed)
	assert.Equal(t, 1, away.Losses)
}

func TestTeamFormWindowLimit(t *testing.T) {
	calc := NewCalculator(abcStore(), quietLogger())
	form, err := calc.TeamForm(context.Background(), teamA, date3.AddDate(0, 0, 1), 1, model.VenueAll)
	require.NoError(t, err)
	assert.Equal(t, 1, form.MatchesPlayed)
	assert.Equal(t, 3, form.GoalsScored)
}

func TestCalculatorsReturnZeroedRecords(t *testing.T) {
	calc := NewCalculator(abcStore(), quietLogger())
	ctx := context.Background()

	form, err := calc.TeamForm(ctx, 99, date3, 5, model.VenueAll)
	require.NoError(t, err)
	assert.Equal(t, &FormStats{}, form)

	h2h, err := calc.HeadToHead(ctx, teamA, teamB, date1, 5)
	require.NoError(t, err)
	assert.Equal(t, &H2HStats{}, h2h)

	disc, err := calc.DisciplineRecord(ctx, 99, date3, 10)
	require.NoError(t, err)
	assert.Equal(t, &DisciplineStats{}, disc)

	atk, err := calc.AttackingThreat(ctx, 99, date3, 10)
	require.NoError(t, err)
	assert.Equal(t, &AttackStats{}, atk)
}

func TestHeadToHeadBeforeDate3(t *testing.T) {
	calc := NewCalculator(abcStore(), quietLogger())
	ctx := context.Background()

	h2h, err := calc.HeadToHead(ctx, teamA, teamB, date3, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, h2h.Matches)
	assert.Equal(t, 1, h2h.Team1Wins)
	assert.Equal(t, 0, h2h.Draws)
	assert.Equal(t, 0, h2h.Team2Wins)
	assert.InDelta(t, 2.0, h2h.Team1GoalsAvg, 1e-9)
	assert.InDelta(t, 1.0, h2h.Team2GoalsAvg, 1e-9)
	assert.InDelta(t, 3.0, h2h.TotalGoalsAvg, 1e-9)
	assert.InDelta(t, 1.0, h2h.Team1WinRate, 1e-9)

	reversed, err := calc.HeadToHead(ctx, teamB, teamA, date3, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, reversed.Team2Wins)
	assert.InDelta(t, 1.0, reversed.Team1GoalsAvg, 1e-9)
}

func TestLeaguePositionAfterDate3(t *testing.T) {
	calc := NewCalculator(abcStore(), quietLogger())
	ctx := context.Background()
	later := date3.AddDate(0, 0, 1)

	a, err := calc.LeaguePosition(ctx, teamA, 1, later)
	require.NoError(t, err)
	assert.Equal(t, 1, a.Position)
	assert.Equal(t, 6, a.Points)
	assert.Equal(t, 3, a.GoalDifference)
	assert.InDelta(t, 1.0, a.PositionPercentile, 1e-9)

	b, err := calc.LeaguePosition(ctx, teamB, 1, later)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Position)
	assert.Equal(t, -1, b.GoalDifference)
	assert.InDelta(t, 2.0/3.0, b.PositionPercentile, 1e-9)

	c, err := calc.LeaguePosition(ctx, teamC, 1, later)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Position)
	assert.Equal(t, -2, c.GoalDifference)
}

func TestLeaguePositionMissingTeam(t *testing.T) {
	calc := NewCalculator(abcStore(), quietLogger())
	ctx := context.Background()

	missing, err := calc.LeaguePosition(ctx, 99, 1, date3)
	require.NoError(t, err)
	assert.Equal(t, 4, missing.Position)
	assert.Equal(t, 0, missing.Points)
	assert.Zero(t, missing.PositionPercentile)

	empty, err := calc.LeaguePosition(ctx, teamA, 1, date1)
	require.NoError(t, err)
	assert.Equal(t, 1, empty.Position)
	assert.Equal(t, 0, empty.Teams)
}

func TestLeaguePositionIgnoresDuplicateRows(t *testing.T) {
	store := abcStore()
	calc := NewCalculator(store, quietLogger())
	// 同一场比赛再次写入应被忽略
	store.AddMatch(played(teamA, teamB, 2, 1, model.ResultHome, date1))

	a, err := calc.LeaguePosition(context.Background(), teamA, 1, date2)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Points)
}

func TestCalculatorPropagatesStoreFailure(t *testing.T) {
	calc := NewCalculator(brokenStore{}, quietLogger())
	ctx := context.Background()

	_, err := calc.TeamForm(ctx, teamA, date3, 5, model.VenueAll)
	assert.ErrorIs(t, err, interfaces.ErrStoreUnavailable)

	_, err = calc.HeadToHead(ctx, teamA, teamB, date3, 5)
	assert.ErrorIs(t, err, interfaces.ErrStoreUnavailable)

	_, err = calc.LeaguePosition(ctx, teamA, 1, date3)
	assert.ErrorIs(t, err, interfaces.ErrStoreUnavailable)
}

func TestFormResultCodeDrivesOutcome(t *testing.T) {
	store := abcStore()
	// 比分 0-1 但赛果代码记为主胜
	store.AddMatch(played(teamA, teamC, 0, 1, model.ResultHome, date3.AddDate(0, 0, 7)))
	calc := NewCalculator(store, quietLogger())

	form, err := calc.TeamForm(context.Background(), teamA, date3.AddDate(0, 0, 8), 1, model.VenueAll)
	require.NoError(t, err)
	assert.Equal(t, 1, form.Wins)
	assert.Equal(t, 0, form.GoalsScored)
	assert.Equal(t, 1, form.GoalsConceded)
}
