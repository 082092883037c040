package model

import (
	"fmt"
)

// MatchKey 比赛去重键 (league, season, home, away, date)
type MatchKey struct {
	LeagueID   uint64
	Season     string
	HomeTeamID uint64
	AwayTeamID uint64
	Date       string
}

// Key 返回去重键，日期按天归一
func (m *Match) Key() MatchKey {
	return MatchKey{
		LeagueID:   m.LeagueID,
		Season:     m.Season,
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
		Date:       DateOnly(m.Date).Format("2006-01-02"),
	}
}

// Score 返回比分，缺失的进球数按 0 处理；ok=false 表示至少一方进球缺失
func (m *Match) Score() (home, away int, ok bool) {
	ok = m.HomeGoals != nil && m.AwayGoals != nil
	return IntValue(m.HomeGoals), IntValue(m.AwayGoals), ok
}

// Consistent 赛果代码与比分是否一致。只做检查，不修正历史数据。
func (m *Match) Consistent() bool {
	home, away, ok := m.Score()
	if !ok || !m.Result.Valid() {
		return false
	}
	switch {
	case home > away:
		return m.Result == ResultHome
	case home < away:
		return m.Result == ResultAway
	default:
		return m.Result == ResultDraw
	}
}

// Involves 该球队是否参与了本场比赛
func (m *Match) Involves(teamID uint64) bool {
	return m.HomeTeamID == teamID || m.AwayTeamID == teamID
}

// OutcomeFor 按赛果代码换算为 teamID 视角的胜平负；赛果代码非法或球队未参赛时 ok=false
func (m *Match) OutcomeFor(teamID uint64) (Outcome, bool) {
	if !m.Result.Valid() || !m.Involves(teamID) {
		return "", false
	}
	if m.Result == ResultDraw {
		return OutcomeDraw, true
	}
	isHome := m.HomeTeamID == teamID
	if (m.Result == ResultHome) == isHome {
		return OutcomeWin, true
	}
	return OutcomeLoss, true
}

// GoalsFor 返回 teamID 的进球与失球
func (m *Match) GoalsFor(teamID uint64) (scored, conceded int) {
	home, away, _ := m.Score()
	if m.HomeTeamID == teamID {
		return home, away
	}
	return away, home
}

// TeamName 返回主/客队名称，未加载关联时退化为 "team#<id>"
func (m *Match) TeamName(teamID uint64) string {
	if m.HomeTeam != nil && m.HomeTeam.ID == teamID {
		return m.HomeTeam.Name
	}
	if m.AwayTeam != nil && m.AwayTeam.ID == teamID {
		return m.AwayTeam.Name
	}
	return fmt.Sprintf("team#%d", teamID)
}

// IntValue 可空整数取值，nil 视为 0
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// IntPtr 便于构造可空字段
func IntPtr(v int) *int {
	return &v
}
