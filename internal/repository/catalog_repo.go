package repository

import (
	"context"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Summary 数据库概况
type Summary struct {
	Leagues     int64 `json:"leagues"`
	Teams       int64 `json:"teams"`
	Matches     int64 `json:"matches"`
	Fixtures    int64 `json:"fixtures"`
	Predictions int64 `json:"predictions"`
}

// CatalogRepository 联赛/球队元数据仓储
type CatalogRepository interface {
	interfaces.LeagueCatalog
	// EnsureLeague 按名称 upsert 联赛（国家、代码以配置为准）
	EnsureLeague(ctx context.Context, l *model.League) error
	// EnsureTeam 按 (name, league_id) get-or-create，返回稳定 ID
	EnsureTeam(ctx context.Context, name string, leagueID uint64) (*model.Team, error)
	// TeamByID 按 ID 查球队
	TeamByID(ctx context.Context, id uint64) (*model.Team, error)
	// ListTeams 某联赛全部球队，按名称排序
	ListTeams(ctx context.Context, leagueID uint64) ([]*model.Team, error)
	// ListCatalog 全部联赛与球队
	ListCatalog(ctx context.Context) ([]*model.League, []*model.Team, error)
	// Summary 各表计数
	Summary(ctx context.Context) (*Summary, error)
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建元数据仓储
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) LeagueByID(ctx context.Context, id uint64) (*model.League, error) {
	var l model.League
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&l).Error; err != nil {
		return nil, wrapErr("查询联赛失败", err)
	}
	return &l, nil
}

func (r *catalogRepository) LeagueByName(ctx context.Context, name string) (*model.League, error) {
	var l model.League
	if err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&l).Error; err != nil {
		return nil, wrapErr("查询联赛失败", err)
	}
	return &l, nil
}

func (r *catalogRepository) EnsureLeague(ctx context.Context, l *model.League) error {
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"country", "code"}),
	}).Create(l).Error; err != nil {
		return wrapErr("保存联赛失败", err)
	}
	if l.ID == 0 {
		if err := r.db.WithContext(ctx).Model(l).Where("name = ?", l.Name).Select("id").First(l).Error; err != nil {
			return wrapErr("查询联赛ID失败", err)
		}
	}
	return nil
}

func (r *catalogRepository) EnsureTeam(ctx context.Context, name string, leagueID uint64) (*model.Team, error) {
	t := &model.Team{Name: name, LeagueID: leagueID}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}, {Name: "league_id"}},
		DoNothing: true,
	}).Create(t).Error; err != nil {
		return nil, wrapErr("保存球队失败", err)
	}
	if t.ID == 0 {
		if err := r.db.WithContext(ctx).Where("name = ? AND league_id = ?", name, leagueID).First(t).Error; err != nil {
			return nil, wrapErr("查询球队ID失败", err)
		}
	}
	return t, nil
}

func (r *catalogRepository) TeamByID(ctx context.Context, id uint64) (*model.Team, error) {
	var t model.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, wrapErr("查询球队失败", err)
	}
	return &t, nil
}

func (r *catalogRepository) ListTeams(ctx context.Context, leagueID uint64) ([]*model.Team, error) {
	var teams []*model.Team
	if err := r.db.WithContext(ctx).Where("league_id = ?", leagueID).Order("name ASC").Find(&teams).Error; err != nil {
		return nil, wrapErr("查询球队列表失败", err)
	}
	return teams, nil
}

func (r *catalogRepository) ListCatalog(ctx context.Context) ([]*model.League, []*model.Team, error) {
	var leagues []*model.League
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&leagues).Error; err != nil {
		return nil, nil, wrapErr("查询联赛列表失败", err)
	}
	var teams []*model.Team
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&teams).Error; err != nil {
		return nil, nil, wrapErr("查询球队列表失败", err)
	}
	return leagues, teams, nil
}

func (r *catalogRepository) Summary(ctx context.Context) (*Summary, error) {
	s := &Summary{}
	counts := []struct {
		model interface{}
		dst   *int64
	}{
		{&model.League{}, &s.Leagues},
		{&model.Team{}, &s.Teams},
		{&model.Match{}, &s.Matches},
		{&model.Fixture{}, &s.Fixtures},
		{&model.Prediction{}, &s.Predictions},
	}
	for _, c := range counts {
		if err := r.db.WithContext(ctx).Model(c.model).Count(c.dst).Error; err != nil {
			return nil, wrapErr("统计失败", err)
		}
	}
	return s, nil
}
