package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MatchQuery 批量导出比赛的筛选条件（数据集构建用）
type MatchQuery struct {
	LeagueID uint64     // 0 表示全部联赛
	From     *time.Time // 起始日期（含）
	To       *time.Time // 截止日期（含）
}

// MatchRepository 比赛仓储：实现计算器使用的只读 MatchStore，外加入库与导出
type MatchRepository interface {
	interfaces.MatchStore
	// SaveMatches 幂等入库，按唯一键冲突直接忽略，返回实际插入条数
	SaveMatches(ctx context.Context, matches []*model.Match) (int64, error)
	// ListMatches 按日期升序导出
	ListMatches(ctx context.Context, q MatchQuery) ([]*model.Match, error)
	// FindMatch 按 联赛+主客队+日期 查找已完赛比赛
	FindMatch(ctx context.Context, leagueID, homeTeamID, awayTeamID uint64, date time.Time) (*model.Match, error)
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository 创建比赛仓储
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

// wrapErr 统一错误类型：记录不存在 → ErrNotFound，其余 → ErrStoreUnavailable
func wrapErr(op string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, interfaces.ErrNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, interfaces.ErrStoreUnavailable, err)
}

// MatchesBefore 参考日之前的比赛，严格小于，date DESC, id DESC
func (r *matchRepository) MatchesBefore(ctx context.Context, f interfaces.MatchFilter) ([]*model.Match, error) {
	db := r.db.WithContext(ctx).Model(&model.Match{}).
		Where("date < ?", model.DateOnly(f.Before))

	switch {
	case f.TeamID != 0 && f.OpponentID != 0:
		db = db.Where("((home_team_id = ? AND away_team_id = ?) OR (home_team_id = ? AND away_team_id = ?))",
			f.TeamID, f.OpponentID, f.OpponentID, f.TeamID)
	case f.TeamID != 0 && f.Venue == model.VenueHome:
		db = db.Where("home_team_id = ?", f.TeamID)
	case f.TeamID != 0 && f.Venue == model.VenueAway:
		db = db.Where("away_team_id = ?", f.TeamID)
	case f.TeamID != 0:
		db = db.Where("(home_team_id = ? OR away_team_id = ?)", f.TeamID, f.TeamID)
	}
	if f.LeagueID != 0 {
		db = db.Where("league_id = ?", f.LeagueID)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}

	var list []*model.Match
	if err := db.Order("date DESC, id DESC").Find(&list).Error; err != nil {
		return nil, wrapErr("查询历史比赛失败", err)
	}
	return list, nil
}

// MatchesInSeason 某联赛某赛季全部比赛（带主客队），date ASC, id ASC；联赛不存在时返回空
func (r *matchRepository) MatchesInSeason(ctx context.Context, leagueName, season string) ([]*model.Match, error) {
	var list []*model.Match
	err := r.db.WithContext(ctx).Model(&model.Match{}).
		Joins("JOIN leagues ON leagues.id = matches.league_id").
		Where("LOWER(leagues.name) = LOWER(?) AND matches.season = ?", leagueName, season).
		Preload("HomeTeam").
		Preload("AwayTeam").
		Order("matches.date ASC, matches.id ASC").
		Find(&list).Error
	if err != nil {
		return nil, wrapErr("查询赛季比赛失败", err)
	}
	return list, nil
}

// Seasons 按赛季最后比赛日期倒序返回赛季代码
func (r *matchRepository) Seasons(ctx context.Context, leagueName string) ([]string, error) {
	var rows []struct {
		Season   string
		LastDate time.Time
	}
	err := r.db.WithContext(ctx).Model(&model.Match{}).
		Select("matches.season AS season, MAX(matches.date) AS last_date").
		Joins("JOIN leagues ON leagues.id = matches.league_id").
		Where("LOWER(leagues.name) = LOWER(?)", leagueName).
		Group("matches.season").
		Order("last_date DESC, matches.season DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, wrapErr("查询赛季列表失败", err)
	}
	seasons := make([]string, 0, len(rows))
	for _, row := range rows {
		seasons = append(seasons, row.Season)
	}
	return seasons, nil
}

// SaveMatches 通用入库逻辑（所有数据源共用），唯一键冲突时 DO NOTHING
func (r *matchRepository) SaveMatches(ctx context.Context, matches []*model.Match) (int64, error) {
	if len(matches) == 0 {
		return 0, nil
	}
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return 0, wrapErr("开启事务失败", tx.Error)
	}
	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	var inserted int64
	for _, m := range matches {
		m.Date = model.DateOnly(m.Date)
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "league_id"}, {Name: "season"}, {Name: "date"},
				{Name: "home_team_id"}, {Name: "away_team_id"},
			},
			DoNothing: true,
		}).Omit("HomeTeam", "AwayTeam").Create(m)
		if res.Error != nil {
			tx.Rollback()
			return 0, wrapErr(fmt.Sprintf("保存比赛失败 %d-%d@%s", m.HomeTeamID, m.AwayTeamID, m.Date.Format("2006-01-02")), res.Error)
		}
		inserted += res.RowsAffected
	}

	if err := tx.Commit().Error; err != nil {
		return 0, wrapErr("提交事务失败", err)
	}
	return inserted, nil
}

// ListMatches 按日期升序导出比赛
func (r *matchRepository) ListMatches(ctx context.Context, q MatchQuery) ([]*model.Match, error) {
	db := r.db.WithContext(ctx).Model(&model.Match{})
	if q.LeagueID != 0 {
		db = db.Where("league_id = ?", q.LeagueID)
	}
	if q.From != nil {
		db = db.Where("date >= ?", model.DateOnly(*q.From))
	}
	if q.To != nil {
		db = db.Where("date <= ?", model.DateOnly(*q.To))
	}
	var list []*model.Match
	if err := db.Preload("HomeTeam").Preload("AwayTeam").Order("date ASC, id ASC").Find(&list).Error; err != nil {
		return nil, wrapErr("导出比赛失败", err)
	}
	return list, nil
}

// FindMatch 按 联赛+主客队+日期 查找已完赛比赛
func (r *matchRepository) FindMatch(ctx context.Context, leagueID, homeTeamID, awayTeamID uint64, date time.Time) (*model.Match, error) {
	var m model.Match
	err := r.db.WithContext(ctx).
		Where("league_id = ? AND home_team_id = ? AND away_team_id = ? AND date = ?",
			leagueID, homeTeamID, awayTeamID, model.DateOnly(date)).
		First(&m).Error
	if err != nil {
		return nil, wrapErr("查询比赛失败", err)
	}
	return &m, nil
}
