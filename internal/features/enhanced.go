package features

import (
	"context"
	"fmt"
	"time"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

// DisciplineStats 纪律统计，discipline_score 越低越好
type DisciplineStats struct {
	Matches         int     `json:"matches"`
	AvgYellowCards  float64 `json:"avg_yellow_cards"`
	AvgRedCards     float64 `json:"avg_red_cards"`
	AvgFouls        float64 `json:"avg_fouls"`
	DisciplineScore float64 `json:"discipline_score"`
}

// AttackStats 进攻威胁统计，命中率与转化率为百分比
type AttackStats struct {
	Matches          int     `json:"matches"`
	AvgShots         float64 `json:"avg_shots"`
	AvgShotsOnTarget float64 `json:"avg_shots_on_target"`
	ShotAccuracy     float64 `json:"shot_accuracy"`
	AvgCorners       float64 `json:"avg_corners"`
	ConversionRate   float64 `json:"conversion_rate"`
}

// InjuryStats 伤停影响
type InjuryStats struct {
	TotalInjuries int     `json:"total_injuries"`
	MajorInjuries int     `json:"major_injuries"`
	ImpactScore   float64 `json:"injury_impact_score"`
}

// side 取 teamID 一方的技术统计，缺失按 0
type side struct {
	shots, onTarget, corners, fouls, yellow, red, goals int
}

func sideOf(m *model.Match, teamID uint64) side {
	if m.HomeTeamID == teamID {
		return side{
			shots:    model.IntValue(m.HomeShots),
			onTarget: model.IntValue(m.HomeShotsOnTarget),
			corners:  model.IntValue(m.HomeCorners),
			fouls:    model.IntValue(m.HomeFouls),
			yellow:   model.IntValue(m.HomeYellow),
			red:      model.IntValue(m.HomeRed),
			goals:    model.IntValue(m.HomeGoals),
		}
	}
	return side{
		shots:    model.IntValue(m.AwayShots),
		onTarget: model.IntValue(m.AwayShotsOnTarget),
		corners:  model.IntValue(m.AwayCorners),
		fouls:    model.IntValue(m.AwayFouls),
		yellow:   model.IntValue(m.AwayYellow),
		red:      model.IntValue(m.AwayRed),
		goals:    model.IntValue(m.AwayGoals),
	}
}

func (c *Calculator) teamSides(ctx context.Context, teamID uint64, before time.Time, n int) ([]side, error) {
	matches, err := c.recent(ctx, interfaces.MatchFilter{
		TeamID: teamID,
		Before: refDate(before),
		Limit:  window(n, DefaultDisciplineMatches),
	})
	if err != nil {
		return nil, err
	}
	sides := make([]side, 0, len(matches))
	for _, m := range matches {
		sides = append(sides, sideOf(m, teamID))
	}
	return sides, nil
}

// DisciplineRecord 近 n 场（默认10）黄牌、红牌、犯规；score = (Y + 3R + 0.1F) / 场次
func (c *Calculator) DisciplineRecord(ctx context.Context, teamID uint64, before time.Time, n int) (*DisciplineStats, error) {
	sides, err := c.teamSides(ctx, teamID, before, n)
	if err != nil {
		return nil, fmt.Errorf("计算纪律统计失败 team=%d: %w", teamID, err)
	}
	var yellow, red, fouls int
	for _, s := range sides {
		yellow += s.yellow
		red += s.red
		fouls += s.fouls
	}
	played := float64(len(sides))
	return &DisciplineStats{
		Matches:         len(sides),
		AvgYellowCards:  ratio(float64(yellow), played),
		AvgRedCards:     ratio(float64(red), played),
		AvgFouls:        ratio(float64(fouls), played),
		DisciplineScore: ratio(float64(yellow)+float64(red)*3+float64(fouls)*0.1, played),
	}, nil
}

// AttackingThreat 近 n 场（默认10）射门、射正、角球、转化率
func (c *Calculator) AttackingThreat(ctx context.Context, teamID uint64, before time.Time, n int) (*AttackStats, error) {
	sides, err := c.teamSides(ctx, teamID, before, n)
	if err != nil {
		return nil, fmt.Errorf("计算进攻统计失败 team=%d: %w", teamID, err)
	}
	var shots, onTarget, corners, goals int
	for _, s := range sides {
		shots += s.shots
		onTarget += s.onTarget
		corners += s.corners
		goals += s.goals
	}
	played := float64(len(sides))
	return &AttackStats{
		Matches:          len(sides),
		AvgShots:         ratio(float64(shots), played),
		AvgShotsOnTarget: ratio(float64(onTarget), played),
		ShotAccuracy:     ratio(float64(onTarget)*100, float64(shots)),
		AvgCorners:       ratio(float64(corners), played),
		ConversionRate:   ratio(float64(goals)*100, float64(shots)),
	}, nil
}

// InjuryImpact 伤停影响 = 伤停人数*0.5 + 重伤人数*2；src 为 nil 时 available=false
func InjuryImpact(ctx context.Context, src interfaces.InjurySource, teamID uint64) (stats *InjuryStats, available bool, err error) {
	if src == nil {
		return &InjuryStats{}, false, nil
	}
	report, err := src.TeamInjuries(ctx, teamID)
	if err != nil {
		return nil, true, fmt.Errorf("查询伤停失败 team=%d: %w", teamID, err)
	}
	stats = &InjuryStats{TotalInjuries: report.TotalInjuries, MajorInjuries: report.MajorInjuries}
	if report.TotalInjuries > 0 {
		stats.ImpactScore = float64(report.TotalInjuries)*0.5 + float64(report.MajorInjuries)*2
	}
	return stats, true, nil
}
