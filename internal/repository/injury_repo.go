package repository

import (
	"context"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"

	"gorm.io/gorm"
)

type injuryRepository struct {
	db *gorm.DB
}

// NewInjurySource 伤停表存在时返回数据源，否则返回 nil（能力缺失，而不是查询时报错）
func NewInjurySource(db *gorm.DB) interfaces.InjurySource {
	if !db.Migrator().HasTable(&model.TeamInjury{}) {
		return nil
	}
	return &injuryRepository{db: db}
}

// TeamInjuries 统计 status=out 的伤停人数及其中的重伤人数
func (r *injuryRepository) TeamInjuries(ctx context.Context, teamID uint64) (*interfaces.InjuryReport, error) {
	var row struct {
		Total int
		Major int
	}
	err := r.db.WithContext(ctx).Model(&model.TeamInjury{}).
		Select("COUNT(*) AS total, COALESCE(SUM(CASE WHEN severity = 'major' THEN 1 ELSE 0 END), 0) AS major").
		Where("team_id = ? AND status = ?", teamID, "out").
		Scan(&row).Error
	if err != nil {
		return nil, wrapErr("查询伤停失败", err)
	}
	return &interfaces.InjuryReport{TotalInjuries: row.Total, MajorInjuries: row.Major}, nil
}
