package league

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"MatchForecast/internal/model"
)

// Entry 积分榜中一支球队的累计数据
type Entry struct {
	TeamID       uint64
	Team         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
	Points       int
	Results      []model.Outcome // 按加入顺序（调用方保证日期升序），最近的在最后
}

// GoalDifference 净胜球
func (e *Entry) GoalDifference() int {
	return e.GoalsFor - e.GoalsAgainst
}

// Form 最近 n 场结果，最近的在最后；不足 n 场不补位
func (e *Entry) Form(n int) string {
	res := e.Results
	if n > 0 && len(res) > n {
		res = res[len(res)-n:]
	}
	var b strings.Builder
	for _, r := range res {
		b.WriteString(string(r))
	}
	return b.String()
}

type creditKey struct {
	match  model.MatchKey
	teamID uint64
}

// Table 联赛积分累计器。比赛按 (league, season, home, away, date) 去重，
// 同一场比赛对同一支球队只记一次。非并发安全，每次计算新建一个。
type Table struct {
	entries  map[uint64]*Entry
	order    []*Entry
	credited map[creditKey]struct{}
	warned   map[model.MatchKey]struct{}
	logger   *logrus.Logger
}

// NewTable 创建空积分表，logger 为空时使用 logrus 标准 logger
func NewTable(logger *logrus.Logger) *Table {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Table{
		entries:  make(map[uint64]*Entry),
		credited: make(map[creditKey]struct{}),
		warned:   make(map[model.MatchKey]struct{}),
		logger:   logger,
	}
}

// Add 按 venue 记入一场比赛：VenueAll 记两队，VenueHome 只记主队，VenueAway 只记客队
func (t *Table) Add(m *model.Match, venue model.Venue) {
	switch venue {
	case model.VenueHome:
		t.Credit(m, m.HomeTeamID)
	case model.VenueAway:
		t.Credit(m, m.AwayTeamID)
	default:
		t.Credit(m, m.HomeTeamID)
		t.Credit(m, m.AwayTeamID)
	}
}

// Credit 把一场比赛记到 teamID 名下。赛果代码非法的比赛跳过；比分缺失按 0 计。
// 返回是否实际记入。
func (t *Table) Credit(m *model.Match, teamID uint64) bool {
	if m == nil || !m.Involves(teamID) {
		return false
	}
	key := creditKey{match: m.Key(), teamID: teamID}
	if _, dup := t.credited[key]; dup {
		return false
	}
	t.credited[key] = struct{}{}

	outcome, ok := m.OutcomeFor(teamID)
	t.checkConsistency(m)
	if !ok {
		return false
	}

	e := t.entry(teamID, m.TeamName(teamID))
	scored, conceded := m.GoalsFor(teamID)
	e.Played++
	e.GoalsFor += scored
	e.GoalsAgainst += conceded
	e.Points += outcome.Points()
	switch outcome {
	case model.OutcomeWin:
		e.Won++
	case model.OutcomeDraw:
		e.Drawn++
	default:
		e.Lost++
	}
	e.Results = append(e.Results, outcome)
	return true
}

// Register 预先登记球队，决定并列时的先后顺序
func (t *Table) Register(teamID uint64, name string) {
	t.entry(teamID, name)
}

func (t *Table) entry(teamID uint64, name string) *Entry {
	if e, ok := t.entries[teamID]; ok {
		return e
	}
	e := &Entry{TeamID: teamID, Team: name}
	t.entries[teamID] = e
	t.order = append(t.order, e)
	return e
}

func (t *Table) checkConsistency(m *model.Match) {
	if m.Consistent() {
		return
	}
	k := m.Key()
	if _, done := t.warned[k]; done {
		return
	}
	t.warned[k] = struct{}{}
	home, away, _ := m.Score()
	t.logger.WithFields(logrus.Fields{
		"match_id":   m.ID,
		"result":     m.Result,
		"home_goals": home,
		"away_goals": away,
	}).Warn("比分与赛果代码不一致，按赛果代码计分")
}

// Len 表中球队数
func (t *Table) Len() int {
	return len(t.order)
}

// Ranked 排序结果：积分降序 → 净胜球降序 → 进球降序，再相同则保持首次出现顺序
func (t *Table) Ranked() []*Entry {
	ranked := make([]*Entry, len(t.order))
	copy(ranked, t.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		return a.GoalsFor > b.GoalsFor
	})
	return ranked
}

// Position 返回 teamID 的名次（从 1 开始）；不在表中时返回 0, nil
func Position(ranked []*Entry, teamID uint64) (int, *Entry) {
	for i, e := range ranked {
		if e.TeamID == teamID {
			return i + 1, e
		}
	}
	return 0, nil
}

// Dedup 按去重键保留首次出现的比赛，保持原有顺序
func Dedup(matches []*model.Match) []*model.Match {
	seen := make(map[model.MatchKey]struct{}, len(matches))
	out := make([]*model.Match, 0, len(matches))
	for _, m := range matches {
		if m == nil {
			continue
		}
		k := m.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, m)
	}
	return out
}
