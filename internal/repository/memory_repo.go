package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

var (
	_ MatchRepository   = (*MemoryStore)(nil)
	_ CatalogRepository = (*MemoryStore)(nil)
)

// SaveMatches 内存版幂等入库
func (s *MemoryStore) SaveMatches(ctx context.Context, matches []*model.Match) (int64, error) {
	var inserted int64
	for _, m := range matches {
		if err := ctx.Err(); err != nil {
			return inserted, wrapErr("保存比赛失败", err)
		}
		if s.AddMatch(m) {
			inserted++
		}
	}
	return inserted, nil
}

// ListMatches 按日期升序导出
func (s *MemoryStore) ListMatches(ctx context.Context, q MatchQuery) ([]*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		if q.LeagueID != 0 && m.LeagueID != q.LeagueID {
			continue
		}
		if q.From != nil && m.Date.Before(model.DateOnly(*q.From)) {
			continue
		}
		if q.To != nil && m.Date.After(model.DateOnly(*q.To)) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// FindMatch 按 联赛+主客队+日期 查找
func (s *MemoryStore) FindMatch(ctx context.Context, leagueID, homeTeamID, awayTeamID uint64, date time.Time) (*model.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	day := model.DateOnly(date)
	for _, m := range s.matches {
		if m.LeagueID == leagueID && m.HomeTeamID == homeTeamID && m.AwayTeamID == awayTeamID && m.Date.Equal(day) {
			return m, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

// EnsureLeague 按名称 upsert
func (s *MemoryStore) EnsureLeague(ctx context.Context, l *model.League) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing := s.leagueByNameLocked(l.Name); existing != nil {
		existing.Country, existing.Code = l.Country, l.Code
		l.ID = existing.ID
		return nil
	}
	if l.ID == 0 {
		l.ID = uint64(len(s.leagues)) + 1
		for s.leagues[l.ID] != nil {
			l.ID++
		}
	}
	s.leagues[l.ID] = l
	return nil
}

// EnsureTeam 按 (name, league_id) get-or-create
func (s *MemoryStore) EnsureTeam(ctx context.Context, name string, leagueID uint64) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		if t.LeagueID == leagueID && strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}
	t := &model.Team{ID: uint64(len(s.teams)) + 1, Name: name, LeagueID: leagueID}
	for s.teams[t.ID] != nil {
		t.ID++
	}
	s.teams[t.ID] = t
	return t, nil
}

// TeamByID 按 ID 查球队
func (s *MemoryStore) TeamByID(ctx context.Context, id uint64) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.teams[id]; ok {
		return t, nil
	}
	return nil, interfaces.ErrNotFound
}

// ListTeams 某联赛全部球队，按名称排序
func (s *MemoryStore) ListTeams(ctx context.Context, leagueID uint64) ([]*model.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapErr("查询球队列表失败", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var teams []*model.Team
	for _, t := range s.teams {
		if t.LeagueID == leagueID {
			teams = append(teams, t)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })
	return teams, nil
}

// ListCatalog 全部联赛与球队，按 ID 升序
func (s *MemoryStore) ListCatalog(ctx context.Context) ([]*model.League, []*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	leagues := make([]*model.League, 0, len(s.leagues))
	for _, l := range s.leagues {
		leagues = append(leagues, l)
	}
	teams := make([]*model.Team, 0, len(s.teams))
	for _, t := range s.teams {
		teams = append(teams, t)
	}
	sort.Slice(leagues, func(i, j int) bool { return leagues[i].ID < leagues[j].ID })
	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })
	return leagues, teams, nil
}

// Summary 内存快照只有联赛、球队、比赛三类数据
func (s *MemoryStore) Summary(ctx context.Context) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &Summary{
		Leagues: int64(len(s.leagues)),
		Teams:   int64(len(s.teams)),
		Matches: int64(len(s.matches)),
	}, nil
}
