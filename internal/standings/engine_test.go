package standings

import (
	"context"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/repository"
)

const leagueName = "Premier League"

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func newStore(teams ...string) *repository.MemoryStore {
	s := repository.NewMemoryStore()
	s.AddLeague(&model.League{ID: 1, Name: leagueName})
	for i, name := range teams {
		s.AddTeam(&model.Team{ID: uint64(i + 1), Name: name, LeagueID: 1})
	}
	return s
}

func addResult(s *repository.MemoryStore, season string, date time.Time, home, away uint64, hg, ag int) {
	result := model.ResultDraw
	switch {
	case hg > ag:
		result = model.ResultHome
	case hg < ag:
		result = model.ResultAway
	}
	s.AddMatch(&model.Match{
		LeagueID:   1,
		Season:     season,
		Date:       date,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeGoals:  model.IntPtr(hg),
		AwayGoals:  model.IntPtr(ag),
		Result:     result,
	})
}

func d(day int) time.Time {
	return time.Date(2024, 8, day, 0, 0, 0, 0, time.UTC)
}

func TestStandingsABCScenario(t *testing.T) {
	s := newStore("A", "B", "C")
	addResult(s, "2425", d(1), 1, 2, 2, 1)
	addResult(s, "2425", d(8), 2, 3, 0, 0)
	addResult(s, "2425", d(15), 3, 1, 1, 3)

	table, err := NewEngine(s, quietLogger()).Standings(context.Background(), leagueName, "")
	require.NoError(t, err)
	assert.Equal(t, "2425", table.Season)
	assert.Equal(t, "2024-25", table.SeasonLabel)
	require.Len(t, table.Rows, 3)

	a, b, c := table.Rows[0], table.Rows[1], table.Rows[2]
	assert.Equal(t, "A", a.Team)
	assert.Equal(t, 2, a.Played)
	assert.Equal(t, 2, a.Won)
	assert.Equal(t, 6, a.Points)
	assert.Equal(t, 3, a.GoalDifference)
	assert.Equal(t, "WW", a.Form)

	assert.Equal(t, "B", b.Team)
	assert.Equal(t, 1, b.Drawn)
	assert.Equal(t, 1, b.Lost)
	assert.Equal(t, 1, b.Points)
	assert.Equal(t, -1, b.GoalDifference)
	assert.Equal(t, "LD", b.Form)

	assert.Equal(t, "C", c.Team)
	assert.Equal(t, 1, c.Points)
	assert.Equal(t, -2, c.GoalDifference)
	assert.Equal(t, 3, c.Rank)
}

// randomSeason 生成一季随机比赛，并混入重复行
func randomSeason(t *testing.T) (*repository.MemoryStore, int, int) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	names := make([]string, 8)
	for i := range names {
		names[i] = fmt.Sprintf("T%d", i+1)
	}
	s := newStore(names...)
	matches, draws := 0, 0
	day := 0
	for h := 1; h <= 8; h++ {
		for a := 1; a <= 8; a++ {
			if h == a {
				continue
			}
			day++
			hg, ag := rng.Intn(4), rng.Intn(4)
			date := time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)
			addResult(s, "2324", date, uint64(h), uint64(a), hg, ag)
			if day%5 == 0 {
				addResult(s, "2324", date, uint64(h), uint64(a), hg, ag)
			}
			matches++
			if hg == ag {
				draws++
			}
		}
	}
	return s, matches, draws
}

func TestStandingsInvariants(t *testing.T) {
	s, matches, draws := randomSeason(t)
	table, err := NewEngine(s, quietLogger()).Standings(context.Background(), leagueName, "2324")
	require.NoError(t, err)

	var playedSum, pointsSum int
	for _, r := range table.Rows {
		playedSum += r.Played
		pointsSum += r.Points
		assert.Equal(t, r.Won*3+r.Drawn, r.Points)
		assert.LessOrEqual(t, len(r.Form), DefaultFormLength)
	}
	assert.Equal(t, 2*matches, playedSum)
	assert.Equal(t, 3*(matches-draws)+2*draws, pointsSum)

	for i := 1; i < len(table.Rows); i++ {
		prev, cur := table.Rows[i-1], table.Rows[i]
		if prev.Points == cur.Points {
			if prev.GoalDifference == cur.GoalDifference {
				assert.GreaterOrEqual(t, prev.GoalsFor, cur.GoalsFor)
			} else {
				assert.Greater(t, prev.GoalDifference, cur.GoalDifference)
			}
		} else {
			assert.Greater(t, prev.Points, cur.Points)
		}
	}
}

func TestHomeAndAwayAddUpToOverall(t *testing.T) {
	s, _, _ := randomSeason(t)
	e := NewEngine(s, quietLogger())
	ctx := context.Background()

	overall, err := e.Standings(ctx, leagueName, "2324")
	require.NoError(t, err)
	home, err := e.HomeStandings(ctx, leagueName, "2324")
	require.NoError(t, err)
	away, err := e.AwayStandings(ctx, leagueName, "2324")
	require.NoError(t, err)

	byTeam := func(rows []*Row) map[uint64]*Row {
		m := make(map[uint64]*Row, len(rows))
		for _, r := range rows {
			m[r.TeamID] = r
		}
		return m
	}
	h, a := byTeam(home.Rows), byTeam(away.Rows)
	for _, r := range overall.Rows {
		hr, ar := h[r.TeamID], a[r.TeamID]
		require.NotNil(t, hr)
		require.NotNil(t, ar)
		assert.Equal(t, r.Won, hr.Won+ar.Won)
		assert.Equal(t, r.Drawn, hr.Drawn+ar.Drawn)
		assert.Equal(t, r.Lost, hr.Lost+ar.Lost)
		assert.Equal(t, r.Points, hr.Points+ar.Points)
		assert.Equal(t, hr.Won*3+hr.Drawn, hr.Points)
	}
	assert.Equal(t, ViewHome, home.View)
}

func TestFormTableUsesLastMatchesOnly(t *testing.T) {
	s := newStore("A", "B")
	// A 先输三场，再赢两场
	addResult(s, "2425", d(1), 1, 2, 0, 1)
	addResult(s, "2425", d(2), 2, 1, 1, 0)
	addResult(s, "2425", d(3), 1, 2, 0, 2)
	addResult(s, "2425", d(4), 2, 1, 0, 3)
	addResult(s, "2425", d(5), 1, 2, 1, 0)

	table, err := NewEngine(s, quietLogger()).FormTable(context.Background(), leagueName, "2425", 2)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)

	top := table.Rows[0]
	assert.Equal(t, "A", top.Team)
	assert.Equal(t, 2, top.Played)
	assert.Equal(t, 6, top.Points)
	assert.Equal(t, 4, top.GoalsFor)
	assert.Equal(t, "WW", top.Form)
	assert.Equal(t, ViewForm, table.View)
}

func TestStandingsEmptyAndUnknown(t *testing.T) {
	s := newStore("A", "B")
	e := NewEngine(s, quietLogger())
	ctx := context.Background()

	table, err := e.Standings(ctx, leagueName, "")
	require.NoError(t, err)
	assert.Empty(t, table.Rows)

	table, err = e.Standings(ctx, "Nowhere League", "2425")
	require.NoError(t, err)
	assert.Empty(t, table.Rows)

	_, err = e.CurrentSeason(ctx, leagueName)
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestCurrentSeasonFollowsLatestMatch(t *testing.T) {
	s := newStore("A", "B")
	addResult(s, "2324", time.Date(2024, 5, 19, 0, 0, 0, 0, time.UTC), 1, 2, 1, 0)
	addResult(s, "2425", time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC), 2, 1, 1, 1)
	e := NewEngine(s, quietLogger())

	season, err := e.CurrentSeason(context.Background(), leagueName)
	require.NoError(t, err)
	assert.Equal(t, "2425", season)

	opts, err := e.AvailableSeasons(context.Background(), leagueName)
	require.NoError(t, err)
	assert.Equal(t, []SeasonOption{{Code: "2425", Label: "2024-25"}, {Code: "2324", Label: "2023-24"}}, opts)
}

func TestFormatSeasonLabel(t *testing.T) {
	assert.Equal(t, "2024-25", FormatSeasonLabel("2425"))
	assert.Equal(t, "2019-20", FormatSeasonLabel("1920"))
	assert.Equal(t, "2024-25", FormatSeasonLabel("2024-25"))
	assert.Equal(t, "24250", FormatSeasonLabel("24250"))
	assert.Equal(t, "24", FormatSeasonLabel("24"))
}

func TestViewDispatch(t *testing.T) {
	s := newStore("A", "B")
	addResult(s, "2425", d(1), 1, 2, 1, 0)
	e := NewEngine(s, quietLogger())

	table, err := e.View(context.Background(), leagueName, "", "away", 5)
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, "B", table.Rows[0].Team)

	_, err = e.View(context.Background(), leagueName, "", "weekly", 5)
	assert.Error(t, err)
}
