package features

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

// BaseColumns 基础特征列，顺序即模型输入顺序，不可随意调整
var BaseColumns = []string{
	"home_points_last5",
	"home_goals_per_match",
	"home_goals_conceded_per_match",
	"home_win_rate",
	"home_form_home_points",
	"home_clean_sheet_rate",
	"away_points_last5",
	"away_goals_per_match",
	"away_goals_conceded_per_match",
	"away_win_rate",
	"away_form_away_points",
	"away_clean_sheet_rate",
	"home_position",
	"away_position",
	"position_diff",
	"home_points_total",
	"away_points_total",
	"home_goal_difference",
	"away_goal_difference",
	"h2h_matches",
	"h2h_home_wins",
	"h2h_draws",
	"h2h_away_wins",
	"h2h_home_win_rate",
	"h2h_avg_goals",
	"form_diff",
	"goals_diff",
	"league_avg_goals",
}

// EnhancedColumns 增强特征列，追加在 BaseColumns 之后
var EnhancedColumns = []string{
	"home_discipline_score",
	"home_avg_yellow_cards",
	"home_avg_red_cards",
	"away_discipline_score",
	"away_avg_yellow_cards",
	"away_avg_red_cards",
	"home_avg_shots",
	"home_shot_accuracy",
	"home_conversion_rate",
	"away_avg_shots",
	"away_shot_accuracy",
	"away_conversion_rate",
	"home_injury_impact",
	"away_injury_impact",
	"shots_differential",
	"accuracy_differential",
	"discipline_differential",
	"injury_differential",
	"injury_data_available",
}

// Columns 返回特征列（enhanced 时包含增强列）
func Columns(enhanced bool) []string {
	cols := make([]string, 0, len(BaseColumns)+len(EnhancedColumns))
	cols = append(cols, BaseColumns...)
	if enhanced {
		cols = append(cols, EnhancedColumns...)
	}
	return cols
}

// Windows 各计算器窗口大小，<=0 使用默认值
type Windows struct {
	Form       int
	H2H        int
	Discipline int
}

// AssemblerOptions 组装器可选配置
type AssemblerOptions struct {
	Windows  Windows
	AvgGoals map[string]float64     // 联赛名称 → 场均进球
	Injuries interfaces.InjurySource // 可为 nil，表示伤停数据不可用
}

// Assembler 把各计算器结果拼成扁平特征向量
type Assembler struct {
	calc     *Calculator
	leagues  interfaces.LeagueCatalog
	windows  Windows
	avgGoals map[string]float64
	injuries interfaces.InjurySource
	logger   *logrus.Logger
}

// NewAssembler 创建特征组装器
func NewAssembler(calc *Calculator, leagues interfaces.LeagueCatalog, opts AssemblerOptions, logger *logrus.Logger) *Assembler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	avg := make(map[string]float64, len(opts.AvgGoals))
	for name, v := range opts.AvgGoals {
		avg[strings.ToLower(name)] = v
	}
	return &Assembler{
		calc:     calc,
		leagues:  leagues,
		windows:  opts.Windows,
		avgGoals: avg,
		injuries: opts.Injuries,
		logger:   logger,
	}
}

// InjuriesAvailable 是否接入了伤停数据
func (a *Assembler) InjuriesAvailable() bool {
	return a.injuries != nil
}

// MatchFeatures 基础特征：状态×4、交锋×1、排名×2，外加联赛场均进球
func (a *Assembler) MatchFeatures(ctx context.Context, homeID, awayID, leagueID uint64, date time.Time) (*model.FeatureVector, error) {
	v := model.NewFeatureVector(BaseColumns)
	if err := a.fillBase(ctx, v, homeID, awayID, leagueID, date); err != nil {
		return nil, err
	}
	return v, nil
}

// EnhancedMatchFeatures 基础特征 + 纪律、进攻、伤停及差值
func (a *Assembler) EnhancedMatchFeatures(ctx context.Context, homeID, awayID, leagueID uint64, date time.Time) (*model.FeatureVector, error) {
	v := model.NewFeatureVector(Columns(true))
	if err := a.fillBase(ctx, v, homeID, awayID, leagueID, date); err != nil {
		return nil, err
	}
	if err := a.fillEnhanced(ctx, v, homeID, awayID, date); err != nil {
		return nil, err
	}
	return v, nil
}

// Features 按 enhanced 选择基础或增强特征
func (a *Assembler) Features(ctx context.Context, homeID, awayID, leagueID uint64, date time.Time, enhanced bool) (*model.FeatureVector, error) {
	if enhanced {
		return a.EnhancedMatchFeatures(ctx, homeID, awayID, leagueID, date)
	}
	return a.MatchFeatures(ctx, homeID, awayID, leagueID, date)
}

func (a *Assembler) fillBase(ctx context.Context, v *model.FeatureVector, homeID, awayID, leagueID uint64, date time.Time) error {
	formN := window(a.windows.Form, DefaultFormMatches)

	homeForm, err := a.calc.TeamForm(ctx, homeID, date, formN, model.VenueAll)
	if err != nil {
		return err
	}
	awayForm, err := a.calc.TeamForm(ctx, awayID, date, formN, model.VenueAll)
	if err != nil {
		return err
	}
	homeAtHome, err := a.calc.TeamForm(ctx, homeID, date, formN, model.VenueHome)
	if err != nil {
		return err
	}
	awayAway, err := a.calc.TeamForm(ctx, awayID, date, formN, model.VenueAway)
	if err != nil {
		return err
	}
	h2h, err := a.calc.HeadToHead(ctx, homeID, awayID, date, window(a.windows.H2H, DefaultH2HMatches))
	if err != nil {
		return err
	}
	// 两队排名来自同一张重建的积分榜
	ranked, err := a.calc.LeagueTable(ctx, leagueID, date)
	if err != nil {
		return err
	}
	homePos := PositionIn(ranked, homeID)
	awayPos := PositionIn(ranked, awayID)

	v.Set("home_points_last5", float64(homeForm.Points))
	v.Set("home_goals_per_match", homeForm.GoalsPerMatch)
	v.Set("home_goals_conceded_per_match", homeForm.GoalsConcededPerMatch)
	v.Set("home_win_rate", homeForm.WinRate)
	v.Set("home_form_home_points", float64(homeAtHome.Points))
	v.Set("home_clean_sheet_rate", homeForm.CleanSheetRate)

	v.Set("away_points_last5", float64(awayForm.Points))
	v.Set("away_goals_per_match", awayForm.GoalsPerMatch)
	v.Set("away_goals_conceded_per_match", awayForm.GoalsConcededPerMatch)
	v.Set("away_win_rate", awayForm.WinRate)
	v.Set("away_form_away_points", float64(awayAway.Points))
	v.Set("away_clean_sheet_rate", awayForm.CleanSheetRate)

	v.Set("home_position", float64(homePos.Position))
	v.Set("away_position", float64(awayPos.Position))
	v.Set("position_diff", float64(awayPos.Position-homePos.Position))
	v.Set("home_points_total", float64(homePos.Points))
	v.Set("away_points_total", float64(awayPos.Points))
	v.Set("home_goal_difference", float64(homePos.GoalDifference))
	v.Set("away_goal_difference", float64(awayPos.GoalDifference))

	v.Set("h2h_matches", float64(h2h.Matches))
	v.Set("h2h_home_wins", float64(h2h.Team1Wins))
	v.Set("h2h_draws", float64(h2h.Draws))
	v.Set("h2h_away_wins", float64(h2h.Team2Wins))
	v.Set("h2h_home_win_rate", h2h.Team1WinRate)
	v.Set("h2h_avg_goals", h2h.TotalGoalsAvg)

	v.Set("form_diff", float64(homeForm.Points-awayForm.Points))
	v.Set("goals_diff", (homeForm.GoalsPerMatch-homeForm.GoalsConcededPerMatch)-
		(awayForm.GoalsPerMatch-awayForm.GoalsConcededPerMatch))

	avg, err := a.leagueAvgGoals(ctx, leagueID)
	if err != nil {
		return err
	}
	v.Set("league_avg_goals", avg)
	return nil
}

// leagueAvgGoals 联赛不存在或未配置时记 0，只有存储故障才返回错误
func (a *Assembler) leagueAvgGoals(ctx context.Context, leagueID uint64) (float64, error) {
	if a.leagues == nil {
		return 0, nil
	}
	l, err := a.leagues.LeagueByID(ctx, leagueID)
	if errors.Is(err, interfaces.ErrNotFound) {
		a.logger.WithField("league_id", leagueID).Warn("联赛不存在，league_avg_goals 置 0")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("查询联赛失败 league=%d: %w", leagueID, err)
	}
	avg, ok := a.avgGoals[strings.ToLower(l.Name)]
	if !ok {
		a.logger.WithField("league", l.Name).Warn("未配置联赛场均进球，league_avg_goals 置 0")
		return 0, nil
	}
	return avg, nil
}

func (a *Assembler) fillEnhanced(ctx context.Context, v *model.FeatureVector, homeID, awayID uint64, date time.Time) error {
	n := window(a.windows.Discipline, DefaultDisciplineMatches)

	homeDisc, err := a.calc.DisciplineRecord(ctx, homeID, date, n)
	if err != nil {
		return err
	}
	awayDisc, err := a.calc.DisciplineRecord(ctx, awayID, date, n)
	if err != nil {
		return err
	}
	homeAtk, err := a.calc.AttackingThreat(ctx, homeID, date, n)
	if err != nil {
		return err
	}
	awayAtk, err := a.calc.AttackingThreat(ctx, awayID, date, n)
	if err != nil {
		return err
	}
	homeInj, available, err := InjuryImpact(ctx, a.injuries, homeID)
	if err != nil {
		return err
	}
	awayInj, _, err := InjuryImpact(ctx, a.injuries, awayID)
	if err != nil {
		return err
	}

	v.Set("home_discipline_score", homeDisc.DisciplineScore)
	v.Set("home_avg_yellow_cards", homeDisc.AvgYellowCards)
	v.Set("home_avg_red_cards", homeDisc.AvgRedCards)
	v.Set("away_discipline_score", awayDisc.DisciplineScore)
	v.Set("away_avg_yellow_cards", awayDisc.AvgYellowCards)
	v.Set("away_avg_red_cards", awayDisc.AvgRedCards)

	v.Set("home_avg_shots", homeAtk.AvgShots)
	v.Set("home_shot_accuracy", homeAtk.ShotAccuracy)
	v.Set("home_conversion_rate", homeAtk.ConversionRate)
	v.Set("away_avg_shots", awayAtk.AvgShots)
	v.Set("away_shot_accuracy", awayAtk.ShotAccuracy)
	v.Set("away_conversion_rate", awayAtk.ConversionRate)

	v.Set("home_injury_impact", homeInj.ImpactScore)
	v.Set("away_injury_impact", awayInj.ImpactScore)

	v.Set("shots_differential", homeAtk.AvgShots-awayAtk.AvgShots)
	v.Set("accuracy_differential", homeAtk.ShotAccuracy-awayAtk.ShotAccuracy)
	v.Set("discipline_differential", awayDisc.DisciplineScore-homeDisc.DisciplineScore)
	v.Set("injury_differential", awayInj.ImpactScore-homeInj.ImpactScore)
	if available {
		v.Set("injury_data_available", 1)
	}
	return nil
}
