package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MatchForecast/internal/config"
	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/repository"

	"github.com/sirupsen/logrus"
)

// IngestReport 单个联赛赛季的同步结果
type IngestReport struct {
	League   string `json:"league"`
	Season   string `json:"season"`
	Fetched  int    `json:"fetched"`
	Invalid  int    `json:"invalid"`
	Inserted int64  `json:"inserted"`
}

// FixtureReport 赛程同步结果
type FixtureReport struct {
	Fetched   int `json:"fetched"`
	Skipped   int `json:"skipped"` // 未配置联赛或不在时间窗内
	Saved     int `json:"saved"`
	DaysAhead int `json:"days_ahead"`
}

// IngestService 历史比赛与赛程同步：数据源 → 球队映射 → 幂等入库
type IngestService struct {
	source   interfaces.HistorySource
	matches  repository.MatchRepository
	catalog  repository.CatalogRepository
	fixtures repository.FixtureRepository
	cfg      *config.Config
	logger   *logrus.Logger
	now      func() time.Time
}

// NewIngestService 创建同步服务
func NewIngestService(
	source interfaces.HistorySource,
	matches repository.MatchRepository,
	catalog repository.CatalogRepository,
	fixtures repository.FixtureRepository,
	cfg *config.Config,
	logger *logrus.Logger,
) *IngestService {
	return &IngestService{
		source:   source,
		matches:  matches,
		catalog:  catalog,
		fixtures: fixtures,
		cfg:      cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// EnsureLeagues 把配置中的联赛写入 leagues 表
func (s *IngestService) EnsureLeagues(ctx context.Context) error {
	for _, lc := range s.cfg.Leagues {
		l := &model.League{Name: lc.Name, Country: lc.Country, Code: lc.Code}
		if err := s.catalog.EnsureLeague(ctx, l); err != nil {
			return fmt.Errorf("初始化联赛%s失败: %w", lc.Name, err)
		}
	}
	return nil
}

// SyncLeague 同步某联赛配置中的全部赛季
func (s *IngestService) SyncLeague(ctx context.Context, leagueName string) ([]*IngestReport, error) {
	lc, ok := s.cfg.LeagueByName(leagueName)
	if !ok {
		return nil, fmt.Errorf("%w: 未配置联赛%s", ErrInvalidRequest, leagueName)
	}
	reports := make([]*IngestReport, 0, len(lc.Seasons))
	for _, season := range lc.Seasons {
		r, err := s.SyncSeason(ctx, lc.Name, season)
		if err != nil {
			return reports, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// SyncAll 同步全部配置联赛，单个联赛失败只记录日志
func (s *IngestService) SyncAll(ctx context.Context) error {
	var failed []string
	for _, lc := range s.cfg.Leagues {
		if _, err := s.SyncLeague(ctx, lc.Name); err != nil {
			s.logger.WithError(err).WithField("league", lc.Name).Error("联赛同步失败")
			failed = append(failed, lc.Name)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("以下联赛同步失败: %s", strings.Join(failed, ", "))
	}
	return nil
}

// SyncSeason 拉取一个赛季并入库；重复比赛由唯一键忽略，重复执行结果不变
func (s *IngestService) SyncSeason(ctx context.Context, leagueName, season string) (*IngestReport, error) {
	lc, ok := s.cfg.LeagueByName(leagueName)
	if !ok {
		return nil, fmt.Errorf("%w: 未配置联赛%s", ErrInvalidRequest, leagueName)
	}
	league := &model.League{Name: lc.Name, Country: lc.Country, Code: lc.Code}
	if err := s.catalog.EnsureLeague(ctx, league); err != nil {
		return nil, fmt.Errorf("初始化联赛失败: %w", err)
	}

	raws, err := s.source.FetchSeason(ctx, lc.Code, season)
	if err != nil {
		return nil, fmt.Errorf("%s拉取%s/%s失败: %w", s.source.GetName(), lc.Code, season, err)
	}
	report := &IngestReport{League: lc.Name, Season: season, Fetched: len(raws)}
	if len(raws) == 0 {
		s.logger.Warnf("%s %s 未拉取到比赛", lc.Name, season)
		return report, nil
	}

	teams := make(map[string]uint64)
	matches := make([]*model.Match, 0, len(raws))
	for _, raw := range raws {
		m, err := s.toMatch(ctx, raw, league.ID, teams)
		if err != nil {
			return nil, err
		}
		if m == nil {
			report.Invalid++
			continue
		}
		matches = append(matches, m)
	}

	inserted, err := s.matches.SaveMatches(ctx, dedupMatches(matches))
	if err != nil {
		return nil, fmt.Errorf("%s %s 入库失败: %w", lc.Name, season, err)
	}
	report.Inserted = inserted

	s.logger.WithFields(logrus.Fields{
		"league":   lc.Name,
		"season":   season,
		"fetched":  report.Fetched,
		"invalid":  report.Invalid,
		"inserted": report.Inserted,
	}).Info("赛季同步完成")
	return report, nil
}

// SyncFixtures 拉取未开赛赛程，写入今天起 days 天内、已配置联赛的比赛。
// days <= 0 时取 prediction.days_ahead。按 (league, date, home, away) 幂等。
func (s *IngestService) SyncFixtures(ctx context.Context, days int) (*FixtureReport, error) {
	fs, ok := s.source.(interfaces.FixtureSource)
	if !ok {
		return nil, fmt.Errorf("%w: 数据源%s不提供赛程", ErrInvalidRequest, s.source.GetName())
	}
	if days <= 0 {
		days = s.cfg.Prediction.DaysAhead
	}
	if days <= 0 {
		days = 7
	}

	raws, err := fs.FetchFixtures(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s拉取赛程失败: %w", s.source.GetName(), err)
	}
	report := &FixtureReport{Fetched: len(raws), DaysAhead: days}

	today := model.DateOnly(s.now())
	last := today.AddDate(0, 0, days)
	leagues := make(map[string]uint64)
	teams := make(map[uint64]map[string]uint64)
	for _, raw := range raws {
		date := model.DateOnly(raw.Date)
		home, away := normalizeTeamName(raw.HomeTeam), normalizeTeamName(raw.AwayTeam)
		lc, ok := s.cfg.LeagueByCode(raw.LeagueCode)
		if !ok || home == "" || away == "" || date.Before(today) || date.After(last) {
			report.Skipped++
			continue
		}

		leagueID, ok := leagues[lc.Code]
		if !ok {
			l := &model.League{Name: lc.Name, Country: lc.Country, Code: lc.Code}
			if err := s.catalog.EnsureLeague(ctx, l); err != nil {
				return report, fmt.Errorf("初始化联赛%s失败: %w", lc.Name, err)
			}
			leagueID = l.ID
			leagues[lc.Code] = leagueID
			teams[leagueID] = make(map[string]uint64)
		}
		homeID, err := s.teamID(ctx, home, leagueID, teams[leagueID])
		if err != nil {
			return report, err
		}
		awayID, err := s.teamID(ctx, away, leagueID, teams[leagueID])
		if err != nil {
			return report, err
		}

		f := &model.Fixture{
			LeagueID:   leagueID,
			Date:       date,
			HomeTeamID: homeID,
			AwayTeamID: awayID,
			Status:     repository.FixtureScheduled,
			Venue:      raw.Venue,
		}
		if err := s.fixtures.UpsertFixture(ctx, f); err != nil {
			return report, fmt.Errorf("保存赛程失败: %w", err)
		}
		report.Saved++
	}

	s.logger.WithFields(logrus.Fields{
		"fetched": report.Fetched,
		"skipped": report.Skipped,
		"saved":   report.Saved,
		"days":    days,
	}).Info("赛程同步完成")
	return report, nil
}

// toMatch 原始记录 → Match；赛果代码非法或缺少球队时返回 nil
func (s *IngestService) toMatch(ctx context.Context, raw *interfaces.RawMatch, leagueID uint64, teams map[string]uint64) (*model.Match, error) {
	result := model.ResultCode(strings.ToUpper(strings.TrimSpace(raw.Result)))
	home, away := normalizeTeamName(raw.HomeTeam), normalizeTeamName(raw.AwayTeam)
	if !result.Valid() || home == "" || away == "" || raw.Date.IsZero() {
		s.logger.WithFields(logrus.Fields{
			"home":   raw.HomeTeam,
			"away":   raw.AwayTeam,
			"result": raw.Result,
		}).Warn("跳过无效比赛记录")
		return nil, nil
	}

	homeID, err := s.teamID(ctx, home, leagueID, teams)
	if err != nil {
		return nil, err
	}
	awayID, err := s.teamID(ctx, away, leagueID, teams)
	if err != nil {
		return nil, err
	}

	m := &model.Match{
		LeagueID:          leagueID,
		Season:            raw.Season,
		Date:              model.DateOnly(raw.Date),
		HomeTeamID:        homeID,
		AwayTeamID:        awayID,
		HomeGoals:         raw.HomeGoals,
		AwayGoals:         raw.AwayGoals,
		Result:            result,
		HomeShots:         raw.HomeShots,
		AwayShots:         raw.AwayShots,
		HomeShotsOnTarget: raw.HomeShotsOnTarget,
		AwayShotsOnTarget: raw.AwayShotsOnTarget,
		HomeCorners:       raw.HomeCorners,
		AwayCorners:       raw.AwayCorners,
		HomeFouls:         raw.HomeFouls,
		AwayFouls:         raw.AwayFouls,
		HomeYellow:        raw.HomeYellow,
		AwayYellow:        raw.AwayYellow,
		HomeRed:           raw.HomeRed,
		AwayRed:           raw.AwayRed,
	}
	if !m.Consistent() {
		s.logger.WithFields(logrus.Fields{
			"home":   raw.HomeTeam,
			"away":   raw.AwayTeam,
			"date":   m.Date.Format("2006-01-02"),
			"result": result,
		}).Warn("比分与赛果代码不一致，以赛果代码为准")
	}
	return m, nil
}

func (s *IngestService) teamID(ctx context.Context, name string, leagueID uint64, cache map[string]uint64) (uint64, error) {
	key := teamKey(name)
	if id, ok := cache[key]; ok {
		return id, nil
	}
	t, err := s.catalog.EnsureTeam(ctx, name, leagueID)
	if err != nil {
		return 0, fmt.Errorf("获取球队%s失败: %w", name, err)
	}
	cache[key] = t.ID
	return t.ID, nil
}

// dedupMatches 同一批次内按唯一键去重，保留第一条
func dedupMatches(matches []*model.Match) []*model.Match {
	seen := make(map[model.MatchKey]struct{}, len(matches))
	out := make([]*model.Match, 0, len(matches))
	for _, m := range matches {
		k := m.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, m)
	}
	return out
}
