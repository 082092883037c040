package features

import (
	"context"
	"fmt"
	"time"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/league"
	"MatchForecast/internal/model"
)

// PositionStats 参考日时球队在联赛中的排名
type PositionStats struct {
	Position           int     `json:"position"`
	Teams              int     `json:"teams"`
	Points             int     `json:"points"`
	GoalDifference     int     `json:"goal_difference"`
	GoalsFor           int     `json:"goals_for"`
	GoalsAgainst       int     `json:"goals_against"`
	PositionPercentile float64 `json:"position_percentile"`
}

// LeagueTable 用 before 之前该联赛全部比赛重建积分榜
func (c *Calculator) LeagueTable(ctx context.Context, leagueID uint64, before time.Time) ([]*league.Entry, error) {
	matches, err := c.recent(ctx, interfaces.MatchFilter{
		LeagueID: leagueID,
		Before:   refDate(before),
	})
	if err != nil {
		return nil, fmt.Errorf("重建积分榜失败 league=%d: %w", leagueID, err)
	}
	tbl := league.NewTable(c.logger)
	// 查询结果为倒序，按时间正序累计以确定首次出现顺序
	for i := len(matches) - 1; i >= 0; i-- {
		tbl.Add(matches[i], model.VenueAll)
	}
	return tbl.Ranked(), nil
}

// LeaguePosition 单支球队的排名；没有比赛的球队排在 (球队数+1)
func (c *Calculator) LeaguePosition(ctx context.Context, teamID, leagueID uint64, before time.Time) (*PositionStats, error) {
	ranked, err := c.LeagueTable(ctx, leagueID, before)
	if err != nil {
		return nil, err
	}
	return PositionIn(ranked, teamID), nil
}

// PositionIn 从已排好序的积分榜中取出 teamID 的排名
func PositionIn(ranked []*league.Entry, teamID uint64) *PositionStats {
	teams := len(ranked)
	pos, e := league.Position(ranked, teamID)
	if e == nil {
		return &PositionStats{Position: teams + 1, Teams: teams}
	}
	return &PositionStats{
		Position:           pos,
		Teams:              teams,
		Points:             e.Points,
		GoalDifference:     e.GoalDifference(),
		GoalsFor:           e.GoalsFor,
		GoalsAgainst:       e.GoalsAgainst,
		PositionPercentile: ratio(float64(teams-pos+1), float64(teams)),
	}
}
