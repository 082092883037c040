package repository

import (
	"context"

	"MatchForecast/internal/model"

	"gorm.io/gorm"
)

// PredictionRepository 预测记录持久化
type PredictionRepository interface {
	CreatePrediction(ctx context.Context, p *model.Prediction) error
	GetByUUID(ctx context.Context, predictionUUID string) (*model.Prediction, error)
	// ListPending 尚未回填实际结果、且比赛日期已过的预测
	ListPending(ctx context.Context, limit int) ([]*model.Prediction, error)
	// UpdateOutcome 回填实际赛果与是否命中
	UpdateOutcome(ctx context.Context, id uint64, matchID uint64, actual model.ResultCode, correct bool) error
	// ListPredictions 分页查询，leagueID 为 0 时不限
	ListPredictions(ctx context.Context, leagueID uint64, page, pageSize int) ([]*model.Prediction, int64, error)
	// Accuracy 已回填预测的命中数与总数
	Accuracy(ctx context.Context) (correct, total int64, err error)
}

type predictionRepository struct {
	db *gorm.DB
}

// NewPredictionRepository 创建预测仓储
func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) CreatePrediction(ctx context.Context, p *model.Prediction) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		return wrapErr("保存预测失败", err)
	}
	return nil
}

func (r *predictionRepository) GetByUUID(ctx context.Context, predictionUUID string) (*model.Prediction, error) {
	var p model.Prediction
	if err := r.db.WithContext(ctx).Where("prediction_uuid = ?", predictionUUID).First(&p).Error; err != nil {
		return nil, wrapErr("查询预测失败", err)
	}
	return &p, nil
}

func (r *predictionRepository) ListPending(ctx context.Context, limit int) ([]*model.Prediction, error) {
	if limit <= 0 {
		limit = 500
	}
	var list []*model.Prediction
	if err := r.db.WithContext(ctx).
		Where("actual_result IS NULL AND match_date < CURRENT_DATE").
		Order("match_date ASC").
		Limit(limit).
		Find(&list).Error; err != nil {
		return nil, wrapErr("查询待回填预测失败", err)
	}
	return list, nil
}

func (r *predictionRepository) UpdateOutcome(ctx context.Context, id uint64, matchID uint64, actual model.ResultCode, correct bool) error {
	if err := r.db.WithContext(ctx).Model(&model.Prediction{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"match_id":      matchID,
			"actual_result": actual,
			"correct":       correct,
		}).Error; err != nil {
		return wrapErr("回填预测结果失败", err)
	}
	return nil
}

func (r *predictionRepository) ListPredictions(ctx context.Context, leagueID uint64, page, pageSize int) ([]*model.Prediction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}
	db := r.db.WithContext(ctx).Model(&model.Prediction{})
	if leagueID != 0 {
		db = db.Where("league_id = ?", leagueID)
	}
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, wrapErr("统计预测失败", err)
	}
	var list []*model.Prediction
	if err := db.Order("created_at DESC").Offset((page - 1) * pageSize).Limit(pageSize).Find(&list).Error; err != nil {
		return nil, 0, wrapErr("查询预测失败", err)
	}
	return list, total, nil
}

func (r *predictionRepository) Accuracy(ctx context.Context) (correct, total int64, err error) {
	db := r.db.WithContext(ctx).Model(&model.Prediction{}).Where("actual_result IS NOT NULL")
	if err = db.Count(&total).Error; err != nil {
		return 0, 0, wrapErr("统计准确率失败", err)
	}
	if err = r.db.WithContext(ctx).Model(&model.Prediction{}).Where("correct = ?", true).Count(&correct).Error; err != nil {
		return 0, 0, wrapErr("统计准确率失败", err)
	}
	return correct, total, nil
}
