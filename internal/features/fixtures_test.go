package features

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/repository"
)

const (
	teamA uint64 = 1
	teamB uint64 = 2
	teamC uint64 = 3
)

var (
	date1 = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)
	date2 = time.Date(2024, 8, 8, 0, 0, 0, 0, time.UTC)
	date3 = time.Date(2024, 8, 15, 0, 0, 0, 0, time.UTC)
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func played(home, away uint64, hg, ag int, result model.ResultCode, date time.Time) *model.Match {
	return &model.Match{
		LeagueID:   1,
		Season:     "2425",
		Date:       date,
		HomeTeamID: home,
		AwayTeamID: away,
		HomeGoals:  model.IntPtr(hg),
		AwayGoals:  model.IntPtr(ag),
		Result:     result,
	}
}

// abcStore A 2-1 B (date1), B 0-0 C (date2), C 1-3 A (date3)
func abcStore() *repository.MemoryStore {
	s := repository.NewMemoryStore()
	s.AddLeague(&model.League{ID: 1, Name: "Premier League", Code: "E0"})
	s.AddTeam(&model.Team{ID: teamA, Name: "A", LeagueID: 1})
	s.AddTeam(&model.Team{ID: teamB, Name: "B", LeagueID: 1})
	s.AddTeam(&model.Team{ID: teamC, Name: "C", LeagueID: 1})
	s.AddMatch(played(teamA, teamB, 2, 1, model.ResultHome, date1))
	s.AddMatch(played(teamB, teamC, 0, 0, model.ResultDraw, date2))
	s.AddMatch(played(teamC, teamA, 1, 3, model.ResultAway, date3))
	return s
}

// brokenStore 模拟存储不可用
type brokenStore struct{}

func (brokenStore) MatchesBefore(context.Context, interfaces.MatchFilter) ([]*model.Match, error) {
	return nil, interfaces.ErrStoreUnavailable
}

func (brokenStore) MatchesInSeason(context.Context, string, string) ([]*model.Match, error) {
	return nil, interfaces.ErrStoreUnavailable
}

func (brokenStore) Seasons(context.Context, string) ([]string, error) {
	return nil, interfaces.ErrStoreUnavailable
}

// stubInjuries 固定伤停数据
type stubInjuries map[uint64]interfaces.InjuryReport

func (s stubInjuries) TeamInjuries(_ context.Context, teamID uint64) (*interfaces.InjuryReport, error) {
	r := s[teamID]
	return &r, nil
}
