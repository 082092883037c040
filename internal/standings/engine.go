package standings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/league"
	"MatchForecast/internal/model"
)

// DefaultFormLength 近况字符串与近况表的默认场次
const DefaultFormLength = 5

// 积分榜视图
const (
	ViewOverall = "overall"
	ViewHome    = "home"
	ViewAway    = "away"
	ViewForm    = "form"
)

// Row 积分榜一行
type Row struct {
	Rank           int    `json:"rank"`
	TeamID         uint64 `json:"team_id"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
	Form           string `json:"form"`
}

// Table 某联赛某赛季的一张积分榜
type Table struct {
	League      string `json:"league"`
	Season      string `json:"season"`
	SeasonLabel string `json:"season_label"`
	View        string `json:"view"`
	Rows        []*Row `json:"rows"`
}

// SeasonOption 可选赛季
type SeasonOption struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

// Engine 积分榜引擎：每次请求都从整季比赛全量重算，不保存任何中间状态
type Engine struct {
	store  interfaces.MatchStore
	logger *logrus.Logger
}

// NewEngine 创建积分榜引擎
func NewEngine(store interfaces.MatchStore, logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{store: store, logger: logger}
}

// FormatSeasonLabel "2425" → "2024-25"；含 "-" 或长度不是4的原样返回
func FormatSeasonLabel(code string) string {
	if strings.Contains(code, "-") || len(code) != 4 {
		return code
	}
	return "20" + code[:2] + "-" + code[2:]
}

// CurrentSeason 最近一场比赛所在的赛季；联赛没有比赛时返回 ErrNotFound
func (e *Engine) CurrentSeason(ctx context.Context, leagueName string) (string, error) {
	seasons, err := e.store.Seasons(ctx, leagueName)
	if err != nil {
		return "", fmt.Errorf("查询当前赛季失败 league=%s: %w", leagueName, err)
	}
	if len(seasons) == 0 {
		return "", interfaces.ErrNotFound
	}
	return seasons[0], nil
}

// AvailableSeasons 可选赛季（最近的在前）及展示名
func (e *Engine) AvailableSeasons(ctx context.Context, leagueName string) ([]SeasonOption, error) {
	seasons, err := e.store.Seasons(ctx, leagueName)
	if err != nil {
		return nil, fmt.Errorf("查询赛季列表失败 league=%s: %w", leagueName, err)
	}
	opts := make([]SeasonOption, 0, len(seasons))
	for _, s := range seasons {
		opts = append(opts, SeasonOption{Code: s, Label: FormatSeasonLabel(s)})
	}
	return opts, nil
}

// Standings 总积分榜
func (e *Engine) Standings(ctx context.Context, leagueName, season string) (*Table, error) {
	return e.venueTable(ctx, leagueName, season, model.VenueAll, ViewOverall)
}

// HomeStandings 主场积分榜，胜平负与积分只看主场比赛
func (e *Engine) HomeStandings(ctx context.Context, leagueName, season string) (*Table, error) {
	return e.venueTable(ctx, leagueName, season, model.VenueHome, ViewHome)
}

// AwayStandings 客场积分榜
func (e *Engine) AwayStandings(ctx context.Context, leagueName, season string) (*Table, error) {
	return e.venueTable(ctx, leagueName, season, model.VenueAway, ViewAway)
}

// View 按视图名取积分榜，n 只对近况表生效
func (e *Engine) View(ctx context.Context, leagueName, season, view string, n int) (*Table, error) {
	switch view {
	case "", ViewOverall:
		return e.Standings(ctx, leagueName, season)
	case ViewHome:
		return e.HomeStandings(ctx, leagueName, season)
	case ViewAway:
		return e.AwayStandings(ctx, leagueName, season)
	case ViewForm:
		return e.FormTable(ctx, leagueName, season, n)
	default:
		return nil, fmt.Errorf("未知积分榜视图: %s", view)
	}
}

func (e *Engine) venueTable(ctx context.Context, leagueName, season string, venue model.Venue, view string) (*Table, error) {
	table, matches, err := e.load(ctx, leagueName, season, view)
	if err != nil || len(matches) == 0 {
		return table, err
	}
	tbl := league.NewTable(e.logger)
	for _, m := range matches {
		tbl.Add(m, venue)
	}
	table.Rows = toRows(tbl.Ranked(), DefaultFormLength)
	return table, nil
}

// FormTable 近况表：每队只取本赛季最后 n 场独立计算积分
func (e *Engine) FormTable(ctx context.Context, leagueName, season string, n int) (*Table, error) {
	if n <= 0 {
		n = DefaultFormLength
	}
	table, matches, err := e.load(ctx, leagueName, season, ViewForm)
	if err != nil || len(matches) == 0 {
		return table, err
	}

	perTeam := make(map[uint64][]*model.Match)
	var order []uint64
	for _, m := range matches {
		for _, id := range []uint64{m.HomeTeamID, m.AwayTeamID} {
			if _, ok := perTeam[id]; !ok {
				order = append(order, id)
			}
			perTeam[id] = append(perTeam[id], m)
		}
	}

	tbl := league.NewTable(e.logger)
	for _, id := range order {
		list := perTeam[id]
		if len(list) > n {
			list = list[len(list)-n:]
		}
		for _, m := range list {
			tbl.Credit(m, id)
		}
	}
	table.Rows = toRows(tbl.Ranked(), n)
	return table, nil
}

// load 解析赛季（为空取当前赛季）并取出去重后的整季比赛（date ASC）
func (e *Engine) load(ctx context.Context, leagueName, season, view string) (*Table, []*model.Match, error) {
	if season == "" {
		current, err := e.CurrentSeason(ctx, leagueName)
		if errors.Is(err, interfaces.ErrNotFound) {
			return &Table{League: leagueName, View: view, Rows: []*Row{}}, nil, nil
		}
		if err != nil {
			return nil, nil, err
		}
		season = current
	}
	table := &Table{
		League:      leagueName,
		Season:      season,
		SeasonLabel: FormatSeasonLabel(season),
		View:        view,
		Rows:        []*Row{},
	}
	matches, err := e.store.MatchesInSeason(ctx, leagueName, season)
	if err != nil {
		return nil, nil, fmt.Errorf("查询赛季比赛失败 league=%s season=%s: %w", leagueName, season, err)
	}
	return table, league.Dedup(matches), nil
}

func toRows(ranked []*league.Entry, formLen int) []*Row {
	rows := make([]*Row, 0, len(ranked))
	for i, e := range ranked {
		rows = append(rows, &Row{
			Rank:           i + 1,
			TeamID:         e.TeamID,
			Team:           e.Team,
			Played:         e.Played,
			Won:            e.Won,
			Drawn:          e.Drawn,
			Lost:           e.Lost,
			GoalsFor:       e.GoalsFor,
			GoalsAgainst:   e.GoalsAgainst,
			GoalDifference: e.GoalDifference(),
			Points:         e.Points,
			Form:           e.Form(formLen),
		})
	}
	return rows
}
