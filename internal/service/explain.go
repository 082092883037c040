package service

import (
	"fmt"

	"MatchForecast/internal/model"
)

// side 一方球队在特征向量中的列前缀与展示名
type side struct {
	prefix string
	name   string
}

// hasHistory 近期无任何比赛时，状态、进失球三列全为 0
func (s side) hasHistory(v *model.FeatureVector) bool {
	return v.Value(s.prefix+"_points_last5") != 0 ||
		v.Value(s.prefix+"_goals_per_match") != 0 ||
		v.Value(s.prefix+"_goals_conceded_per_match") != 0
}

// Explain 根据特征生成可读的预测理由，规则按展示顺序排列。
// 没有历史比赛的一方不参与状态类规则。
func Explain(v *model.FeatureVector, homeName, awayName string) []string {
	home := side{prefix: "home", name: orDefault(homeName, "Home team")}
	away := side{prefix: "away", name: orDefault(awayName, "Away team")}
	homeKnown, awayKnown := home.hasHistory(v), away.hasHistory(v)

	var lines []string
	if homeKnown {
		lines = appendForm(lines, home.name, v.Value("home_points_last5"))
	}
	if awayKnown {
		lines = appendForm(lines, away.name, v.Value("away_points_last5"))
	}

	if p := v.Value("home_form_home_points"); p >= 12 {
		lines = append(lines, fmt.Sprintf("%s strong at home (%.0f/15 points)", home.name, p))
	}
	if awayKnown {
		switch p := v.Value("away_form_away_points"); {
		case p >= 12:
			lines = append(lines, fmt.Sprintf("%s strong away from home (%.0f/15 points)", away.name, p))
		case p <= 3:
			lines = append(lines, fmt.Sprintf("%s struggles away from home (%.0f/15 points)", away.name, p))
		}
	}

	homePos, awayPos := v.Value("home_position"), v.Value("away_position")
	if homePos > 0 && awayPos > 0 {
		switch diff := awayPos - homePos; {
		case diff > 5:
			lines = append(lines, fmt.Sprintf("%s significantly higher in table (position %.0f vs %.0f)", home.name, homePos, awayPos))
		case diff < -5:
			lines = append(lines, fmt.Sprintf("%s significantly higher in table (position %.0f vs %.0f)", away.name, awayPos, homePos))
		}
	}

	if n := v.Value("h2h_matches"); n >= 3 {
		hw, aw := v.Value("h2h_home_wins"), v.Value("h2h_away_wins")
		switch {
		case hw >= aw+2:
			lines = append(lines, fmt.Sprintf("%s dominant in recent H2H (%.0f wins in last %.0f)", home.name, hw, n))
		case aw >= hw+2:
			lines = append(lines, fmt.Sprintf("%s dominant in recent H2H (%.0f wins in last %.0f)", away.name, aw, n))
		}
	}

	if g := v.Value("home_goals_per_match"); g >= 2.0 {
		lines = append(lines, fmt.Sprintf("%s scoring well (%.1f goals/match)", home.name, g))
	}
	if g := v.Value("away_goals_per_match"); g >= 2.0 {
		lines = append(lines, fmt.Sprintf("%s scoring well (%.1f goals/match)", away.name, g))
	}
	if c := v.Value("home_goals_conceded_per_match"); homeKnown && c <= 0.5 {
		lines = append(lines, fmt.Sprintf("%s strong defensively (%.1f goals conceded/match)", home.name, c))
	}
	if c := v.Value("away_goals_conceded_per_match"); c >= 2.0 {
		lines = append(lines, fmt.Sprintf("%s vulnerable defensively (%.1f goals conceded/match)", away.name, c))
	}

	if len(lines) == 0 {
		lines = append(lines, "Limited historical data available for detailed analysis")
	}
	return lines
}

func appendForm(lines []string, who string, points float64) []string {
	switch {
	case points >= 12:
		return append(lines, fmt.Sprintf("%s in excellent form (%.0f points from last 5 matches)", who, points))
	case points >= 9:
		return append(lines, fmt.Sprintf("%s in good form (%.0f points from last 5)", who, points))
	case points <= 3:
		return append(lines, fmt.Sprintf("%s in poor form (%.0f points from last 5)", who, points))
	}
	return lines
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
