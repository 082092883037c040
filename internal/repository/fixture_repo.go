package repository

import (
	"context"
	"time"

	"MatchForecast/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 赛程状态
const (
	FixtureScheduled = "scheduled"
	FixtureFinished  = "finished"
	FixturePostponed = "postponed"
)

// FixtureFilter 赛程筛选条件
type FixtureFilter struct {
	LeagueID uint64    // 0 表示全部联赛
	Status   string    // 为空表示不限
	From     time.Time // 起始日期（含），零值不限
	To       time.Time // 截止日期（含），零值不限
}

// FixtureRepository 赛程仓储
type FixtureRepository interface {
	// UpsertFixture 按 (league, date, home, away) 幂等写入，已存在时更新状态与球场
	UpsertFixture(ctx context.Context, f *model.Fixture) error
	// ListFixtures 按日期升序查询赛程
	ListFixtures(ctx context.Context, filter FixtureFilter, limit int) ([]*model.Fixture, error)
	// GetFixtureByID 通过 ID 获取赛程
	GetFixtureByID(ctx context.Context, id uint64) (*model.Fixture, error)
	// UpdateStatus 更新赛程状态
	UpdateStatus(ctx context.Context, id uint64, status string) error
}

type fixtureRepository struct {
	db *gorm.DB
}

// NewFixtureRepository 创建 FixtureRepository 实例
func NewFixtureRepository(db *gorm.DB) FixtureRepository {
	return &fixtureRepository{db: db}
}

func (r *fixtureRepository) UpsertFixture(ctx context.Context, f *model.Fixture) error {
	f.Date = model.DateOnly(f.Date)
	if f.Status == "" {
		f.Status = FixtureScheduled
	}
	f.LastUpdated = time.Now()
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "league_id"}, {Name: "date"}, {Name: "home_team_id"}, {Name: "away_team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "venue", "last_updated"}),
	}).Create(f).Error; err != nil {
		return wrapErr("保存赛程失败", err)
	}
	return nil
}

// ListFixtures 按过滤条件查询赛程
func (r *fixtureRepository) ListFixtures(ctx context.Context, filter FixtureFilter, limit int) ([]*model.Fixture, error) {
	if limit <= 0 {
		limit = 500
	}
	db := r.db.WithContext(ctx).Model(&model.Fixture{})
	if filter.LeagueID != 0 {
		db = db.Where("league_id = ?", filter.LeagueID)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		db = db.Where("date >= ?", model.DateOnly(filter.From))
	}
	if !filter.To.IsZero() {
		db = db.Where("date <= ?", model.DateOnly(filter.To))
	}
	var list []*model.Fixture
	if err := db.Order("date ASC, id ASC").Limit(limit).Find(&list).Error; err != nil {
		return nil, wrapErr("查询赛程失败", err)
	}
	return list, nil
}

// GetFixtureByID 通过 ID 获取赛程
func (r *fixtureRepository) GetFixtureByID(ctx context.Context, id uint64) (*model.Fixture, error) {
	var f model.Fixture
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&f).Error; err != nil {
		return nil, wrapErr("查询赛程失败", err)
	}
	return &f, nil
}

// UpdateStatus 更新赛程状态
func (r *fixtureRepository) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if err := r.db.WithContext(ctx).Model(&model.Fixture{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "last_updated": time.Now()}).Error; err != nil {
		return wrapErr("更新赛程状态失败", err)
	}
	return nil
}
