package features

import (
	"context"
	"fmt"
	"time"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

// H2HStats 两队交锋统计，胜负以 team1 视角
type H2HStats struct {
	Matches       int     `json:"h2h_matches"`
	Team1Wins     int     `json:"team1_wins"`
	Draws         int     `json:"draws"`
	Team2Wins     int     `json:"team2_wins"`
	Team1GoalsAvg float64 `json:"team1_goals_avg"`
	Team2GoalsAvg float64 `json:"team2_goals_avg"`
	TotalGoalsAvg float64 `json:"total_goals_avg"`
	Team1WinRate  float64 `json:"team1_win_rate"`
}

// HeadToHead before 之前最近 n 场交锋（主客不限）
func (c *Calculator) HeadToHead(ctx context.Context, team1, team2 uint64, before time.Time, n int) (*H2HStats, error) {
	matches, err := c.recent(ctx, interfaces.MatchFilter{
		TeamID:     team1,
		OpponentID: team2,
		Before:     refDate(before),
		Limit:      window(n, DefaultH2HMatches),
	})
	if err != nil {
		return nil, fmt.Errorf("计算交锋记录失败 %d-%d: %w", team1, team2, err)
	}

	stats := &H2HStats{}
	var goals1, goals2 int
	for _, m := range matches {
		outcome, ok := m.OutcomeFor(team1)
		c.warnIfInconsistent(m)
		if !ok {
			continue
		}
		scored, conceded := m.GoalsFor(team1)
		stats.Matches++
		goals1 += scored
		goals2 += conceded
		switch outcome {
		case model.OutcomeWin:
			stats.Team1Wins++
		case model.OutcomeDraw:
			stats.Draws++
		default:
			stats.Team2Wins++
		}
	}

	played := float64(stats.Matches)
	stats.Team1GoalsAvg = ratio(float64(goals1), played)
	stats.Team2GoalsAvg = ratio(float64(goals2), played)
	stats.TotalGoalsAvg = ratio(float64(goals1+goals2), played)
	stats.Team1WinRate = ratio(float64(stats.Team1Wins), played)
	return stats, nil
}
