package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

// MemoryStore 内存快照，实现 MatchStore 与 LeagueCatalog。
// 批量构建训练集时先从数据库整体加载，之后只读；测试也直接使用它。
type MemoryStore struct {
	mu      sync.RWMutex
	leagues map[uint64]*model.League
	teams   map[uint64]*model.Team
	matches []*model.Match // date ASC, id ASC
	keys    map[model.MatchKey]struct{}
	nextID  uint64
}

// NewMemoryStore 创建空快照
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		leagues: make(map[uint64]*model.League),
		teams:   make(map[uint64]*model.Team),
		keys:    make(map[model.MatchKey]struct{}),
	}
}

// AddLeague 登记联赛
func (s *MemoryStore) AddLeague(l *model.League) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leagues[l.ID] = l
}

// AddTeam 登记球队
func (s *MemoryStore) AddTeam(t *model.Team) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.teams[t.ID] = t
}

// AddMatch 加入一场比赛；重复键直接忽略并返回 false。ID 为 0 时自动分配。
func (s *MemoryStore) AddMatch(m *model.Match) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	m.Date = model.DateOnly(m.Date)
	k := m.Key()
	if _, dup := s.keys[k]; dup {
		return false
	}
	s.keys[k] = struct{}{}

	if m.ID == 0 {
		s.nextID++
		m.ID = s.nextID
	} else if m.ID > s.nextID {
		s.nextID = m.ID
	}
	if m.HomeTeam == nil {
		m.HomeTeam = s.teams[m.HomeTeamID]
	}
	if m.AwayTeam == nil {
		m.AwayTeam = s.teams[m.AwayTeamID]
	}

	i := sort.Search(len(s.matches), func(i int) bool {
		return matchAfter(s.matches[i], m)
	})
	s.matches = append(s.matches, nil)
	copy(s.matches[i+1:], s.matches[i:])
	s.matches[i] = m
	return true
}

// matchAfter a 是否排在 b 之后（date, id 升序）
func matchAfter(a, b *model.Match) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.ID > b.ID
}

// Matches 全部比赛（date ASC）的副本
func (s *MemoryStore) Matches() []*model.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Match, len(s.matches))
	copy(out, s.matches)
	return out
}

// MatchesBefore 参考日之前的比赛，严格小于，date DESC, id DESC
func (s *MemoryStore) MatchesBefore(ctx context.Context, f interfaces.MatchFilter) ([]*model.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapErr("查询历史比赛失败", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	before := model.DateOnly(f.Before)
	var out []*model.Match
	for i := len(s.matches) - 1; i >= 0; i-- {
		m := s.matches[i]
		if !m.Date.Before(before) || !matchesFilter(m, f) {
			continue
		}
		out = append(out, m)
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
	}
	return out, nil
}

func matchesFilter(m *model.Match, f interfaces.MatchFilter) bool {
	if f.LeagueID != 0 && m.LeagueID != f.LeagueID {
		return false
	}
	if f.TeamID == 0 {
		return true
	}
	if f.OpponentID != 0 {
		return (m.HomeTeamID == f.TeamID && m.AwayTeamID == f.OpponentID) ||
			(m.HomeTeamID == f.OpponentID && m.AwayTeamID == f.TeamID)
	}
	switch f.Venue {
	case model.VenueHome:
		return m.HomeTeamID == f.TeamID
	case model.VenueAway:
		return m.AwayTeamID == f.TeamID
	default:
		return m.Involves(f.TeamID)
	}
}

// MatchesInSeason 某联赛某赛季全部比赛，date ASC, id ASC；联赛不存在时返回空
func (s *MemoryStore) MatchesInSeason(ctx context.Context, leagueName, season string) ([]*model.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapErr("查询赛季比赛失败", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	l := s.leagueByNameLocked(leagueName)
	if l == nil {
		return nil, nil
	}
	var out []*model.Match
	for _, m := range s.matches {
		if m.LeagueID == l.ID && m.Season == season {
			out = append(out, m)
		}
	}
	return out, nil
}

// Seasons 按赛季最后比赛日期倒序
func (s *MemoryStore) Seasons(ctx context.Context, leagueName string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, wrapErr("查询赛季列表失败", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	l := s.leagueByNameLocked(leagueName)
	if l == nil {
		return nil, nil
	}
	last := make(map[string]time.Time)
	for _, m := range s.matches {
		if m.LeagueID != l.ID {
			continue
		}
		if d, ok := last[m.Season]; !ok || m.Date.After(d) {
			last[m.Season] = m.Date
		}
	}
	seasons := make([]string, 0, len(last))
	for code := range last {
		seasons = append(seasons, code)
	}
	sort.Slice(seasons, func(i, j int) bool {
		a, b := last[seasons[i]], last[seasons[j]]
		if !a.Equal(b) {
			return a.After(b)
		}
		return seasons[i] > seasons[j]
	})
	return seasons, nil
}

// LeagueByID 按 ID 查联赛
func (s *MemoryStore) LeagueByID(ctx context.Context, id uint64) (*model.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.leagues[id]; ok {
		return l, nil
	}
	return nil, interfaces.ErrNotFound
}

// LeagueByName 按名称（不区分大小写）查联赛
func (s *MemoryStore) LeagueByName(ctx context.Context, name string) (*model.League, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l := s.leagueByNameLocked(name); l != nil {
		return l, nil
	}
	return nil, interfaces.ErrNotFound
}

func (s *MemoryStore) leagueByNameLocked(name string) *model.League {
	for _, l := range s.leagues {
		if strings.EqualFold(l.Name, name) {
			return l
		}
	}
	return nil
}

// LoadMemoryStore 从数据库整体加载一份快照。时间点特征需要完整历史，这里不做日期过滤。
func LoadMemoryStore(ctx context.Context, matches MatchRepository, catalog CatalogRepository) (*MemoryStore, error) {
	s := NewMemoryStore()
	leagues, teams, err := catalog.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	for _, l := range leagues {
		s.AddLeague(l)
	}
	for _, t := range teams {
		s.AddTeam(t)
	}
	list, err := matches.ListMatches(ctx, MatchQuery{})
	if err != nil {
		return nil, err
	}
	for _, m := range list {
		s.AddMatch(m)
	}
	return s, nil
}
