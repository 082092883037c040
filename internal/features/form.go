package features

import (
	"context"
	"fmt"
	"time"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

// FormStats 球队近 N 场状态
type FormStats struct {
	MatchesPlayed         int     `json:"matches_played"`
	Points                int     `json:"points"`
	Wins                  int     `json:"wins"`
	Draws                 int     `json:"draws"`
	Losses                int     `json:"losses"`
	GoalsScored           int     `json:"goals_scored"`
	GoalsConceded         int     `json:"goals_conceded"`
	GoalsPerMatch         float64 `json:"goals_per_match"`
	GoalsConcededPerMatch float64 `json:"goals_conceded_per_match"`
	PointsPerMatch        float64 `json:"points_per_match"`
	WinRate               float64 `json:"win_rate"`
	CleanSheets           int     `json:"clean_sheets"`
	CleanSheetRate        float64 `json:"clean_sheet_rate"`
}

// TeamForm 球队在 before 之前最近 n 场（venue 过滤）的状态；没有比赛时返回全零
func (c *Calculator) TeamForm(ctx context.Context, teamID uint64, before time.Time, n int, venue model.Venue) (*FormStats, error) {
	matches, err := c.recent(ctx, interfaces.MatchFilter{
		TeamID: teamID,
		Venue:  venue,
		Before: refDate(before),
		Limit:  window(n, DefaultFormMatches),
	})
	if err != nil {
		return nil, fmt.Errorf("计算球队状态失败 team=%d: %w", teamID, err)
	}

	stats := &FormStats{}
	for _, m := range matches {
		outcome, ok := m.OutcomeFor(teamID)
		c.warnIfInconsistent(m)
		if !ok {
			continue
		}
		scored, conceded := m.GoalsFor(teamID)
		stats.MatchesPlayed++
		stats.GoalsScored += scored
		stats.GoalsConceded += conceded
		stats.Points += outcome.Points()
		switch outcome {
		case model.OutcomeWin:
			stats.Wins++
		case model.OutcomeDraw:
			stats.Draws++
		default:
			stats.Losses++
		}
		if conceded == 0 {
			stats.CleanSheets++
		}
	}

	played := float64(stats.MatchesPlayed)
	stats.GoalsPerMatch = ratio(float64(stats.GoalsScored), played)
	stats.GoalsConcededPerMatch = ratio(float64(stats.GoalsConceded), played)
	stats.PointsPerMatch = ratio(float64(stats.Points), played)
	stats.WinRate = ratio(float64(stats.Wins), played)
	stats.CleanSheetRate = ratio(float64(stats.CleanSheets), played)
	return stats, nil
}
