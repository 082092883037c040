package interfaces

import (
	"context"
	"time"

	"MatchForecast/internal/model"
)

// MatchFilter 时间点查询条件：只返回 date < Before 的比赛，按日期倒序
type MatchFilter struct {
	TeamID     uint64      // 0 表示不限球队
	OpponentID uint64      // 非 0 时只取 TeamID 与 OpponentID 之间的交锋（主客不限）
	Venue      model.Venue // 相对 TeamID 的主客场过滤，OpponentID 非 0 时忽略
	LeagueID   uint64      // 0 表示不限联赛
	Before     time.Time   // 严格小于，参考日当天的比赛不算
	Limit      int         // <=0 表示不限
}

// MatchStore 计算器依赖的只读比赛仓储
type MatchStore interface {
	// MatchesBefore 按 filter 查询参考日之前的比赛，date DESC, id DESC
	MatchesBefore(ctx context.Context, filter MatchFilter) ([]*model.Match, error)
	// MatchesInSeason 某联赛某赛季全部比赛，date ASC, id ASC，带主客队信息
	MatchesInSeason(ctx context.Context, leagueName, season string) ([]*model.Match, error)
	// Seasons 某联赛出现过的赛季代码，按赛季最后一场比赛日期倒序
	Seasons(ctx context.Context, leagueName string) ([]string, error)
}

// LeagueCatalog 联赛元数据查询
type LeagueCatalog interface {
	LeagueByID(ctx context.Context, id uint64) (*model.League, error)
	LeagueByName(ctx context.Context, name string) (*model.League, error)
}

// InjuryReport 某队当前伤停统计
type InjuryReport struct {
	TotalInjuries int
	MajorInjuries int
}

// InjurySource 伤停数据（可选能力）。未接入时调用方拿到 nil，特征显式标记为不可用。
type InjurySource interface {
	TeamInjuries(ctx context.Context, teamID uint64) (*InjuryReport, error)
}
