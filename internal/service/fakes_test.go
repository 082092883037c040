package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"MatchForecast/internal/classifier"
	"MatchForecast/internal/config"
	"MatchForecast/internal/features"
	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/repository"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.ErrorLevel)
	return l
}

func testConfig() *config.Config {
	return &config.Config{
		Prediction: config.PredictionConfig{HighConfidence: 0.65, MediumConfidence: 0.50, DaysAhead: 7},
		Leagues: []config.LeagueConfig{
			{Key: "premier_league", Name: "Premier League", Country: "England", Code: "E0", AvgGoals: 2.8, Seasons: []string{"2425"}},
		},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seededStore 联赛 1，球队 1..3：Arsenal 连胜，Spurs 连败
func seededStore() *repository.MemoryStore {
	s := repository.NewMemoryStore()
	s.AddLeague(&model.League{ID: 1, Name: "Premier League", Code: "E0"})
	s.AddTeam(&model.Team{ID: 1, Name: "Arsenal", LeagueID: 1})
	s.AddTeam(&model.Team{ID: 2, Name: "Spurs", LeagueID: 1})
	s.AddTeam(&model.Team{ID: 3, Name: "Chelsea", LeagueID: 1})
	add := func(home, away uint64, hg, ag int, r model.ResultCode, d time.Time) {
		s.AddMatch(&model.Match{
			LeagueID: 1, Season: "2425", Date: d, HomeTeamID: home, AwayTeamID: away,
			HomeGoals: model.IntPtr(hg), AwayGoals: model.IntPtr(ag), Result: r,
		})
	}
	add(1, 2, 3, 0, model.ResultHome, day(2024, 8, 17))
	add(3, 1, 0, 2, model.ResultAway, day(2024, 8, 24))
	add(2, 3, 1, 2, model.ResultAway, day(2024, 8, 31))
	add(1, 3, 2, 1, model.ResultHome, day(2024, 9, 14))
	add(2, 1, 0, 1, model.ResultAway, day(2024, 9, 21))
	return s
}

func newAssembler(store *repository.MemoryStore) *features.Assembler {
	logger := quietLogger()
	return features.NewAssembler(
		features.NewCalculator(store, logger),
		store,
		features.AssemblerOptions{AvgGoals: map[string]float64{"Premier League": 2.8}},
		logger,
	)
}

func newPredictionService(store *repository.MemoryStore, preds *fakePredictions, fixtures *fakeFixtures) *PredictionService {
	cfg := testConfig()
	return NewPredictionService(newAssembler(store), classifier.NewBaseline(), preds, fixtures, store, &cfg.Prediction, quietLogger())
}

// fakeSource 固定返回一批原始比赛
type fakeSource struct {
	matches []*interfaces.RawMatch
	calls   int
}

func (f *fakeSource) GetName() string { return "fake" }

func (f *fakeSource) FetchSeason(_ context.Context, _, _ string) ([]*interfaces.RawMatch, error) {
	f.calls++
	return f.matches, nil
}

// fakePredictions 内存预测仓储
type fakePredictions struct {
	list []*model.Prediction
}

func (f *fakePredictions) CreatePrediction(_ context.Context, p *model.Prediction) error {
	p.ID = uint64(len(f.list) + 1)
	f.list = append(f.list, p)
	return nil
}

func (f *fakePredictions) GetByUUID(_ context.Context, id string) (*model.Prediction, error) {
	for _, p := range f.list {
		if p.PredictionUUID == id {
			return p, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakePredictions) ListPending(_ context.Context, _ int) ([]*model.Prediction, error) {
	var out []*model.Prediction
	for _, p := range f.list {
		if p.ActualResult == nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePredictions) UpdateOutcome(_ context.Context, id, matchID uint64, actual model.ResultCode, correct bool) error {
	for _, p := range f.list {
		if p.ID == id {
			mid := matchID
			p.MatchID, p.ActualResult, p.Correct = &mid, &actual, &correct
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (f *fakePredictions) ListPredictions(_ context.Context, leagueID uint64, _, _ int) ([]*model.Prediction, int64, error) {
	var out []*model.Prediction
	for _, p := range f.list {
		if leagueID == 0 || p.LeagueID == leagueID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePredictions) Accuracy(_ context.Context) (correct, total int64, err error) {
	for _, p := range f.list {
		if p.ActualResult == nil {
			continue
		}
		total++
		if p.Correct != nil && *p.Correct {
			correct++
		}
	}
	return correct, total, nil
}

// fakeFixtures 内存赛程仓储
type fakeFixtures struct {
	list []*model.Fixture
}

// UpsertFixture 按 (league, date, home, away) 幂等，已存在时只更新状态与球场
func (f *fakeFixtures) UpsertFixture(_ context.Context, fx *model.Fixture) error {
	if fx.Status == "" {
		fx.Status = repository.FixtureScheduled
	}
	for _, old := range f.list {
		if old.LeagueID == fx.LeagueID && old.Date.Equal(fx.Date) &&
			old.HomeTeamID == fx.HomeTeamID && old.AwayTeamID == fx.AwayTeamID {
			old.Status, old.Venue = fx.Status, fx.Venue
			fx.ID = old.ID
			return nil
		}
	}
	if fx.ID == 0 {
		fx.ID = uint64(len(f.list) + 1)
	}
	f.list = append(f.list, fx)
	return nil
}

func (f *fakeFixtures) ListFixtures(_ context.Context, filter repository.FixtureFilter, _ int) ([]*model.Fixture, error) {
	var out []*model.Fixture
	for _, fx := range f.list {
		if filter.LeagueID != 0 && fx.LeagueID != filter.LeagueID {
			continue
		}
		if filter.Status != "" && fx.Status != filter.Status {
			continue
		}
		if !filter.From.IsZero() && fx.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && fx.Date.After(filter.To) {
			continue
		}
		out = append(out, fx)
	}
	return out, nil
}

func (f *fakeFixtures) GetFixtureByID(_ context.Context, id uint64) (*model.Fixture, error) {
	for _, fx := range f.list {
		if fx.ID == id {
			return fx, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (f *fakeFixtures) UpdateStatus(_ context.Context, id uint64, status string) error {
	fx, err := f.GetFixtureByID(context.Background(), id)
	if err != nil {
		return err
	}
	fx.Status = status
	return nil
}
