package model

import (
	"time"

	"gorm.io/datatypes"
)

// Prediction 对应 predictions 表，记录每次赛前预测，赛后回填实际结果用于统计准确率。
// FixtureID/MatchID 至少有一个非空：对赛程预测时写 FixtureID，对历史比赛回测时写 MatchID。
type Prediction struct {
	ID              uint64         `gorm:"column:id;primaryKey;autoIncrement"`
	PredictionUUID  string         `gorm:"column:prediction_uuid;type:varchar(64);uniqueIndex;not null"`
	FixtureID       *uint64        `gorm:"column:fixture_id;type:bigint;index"`
	MatchID         *uint64        `gorm:"column:match_id;type:bigint;index"`
	LeagueID        uint64         `gorm:"column:league_id;type:bigint;not null"`
	HomeTeamID      uint64         `gorm:"column:home_team_id;type:bigint;not null"`
	AwayTeamID      uint64         `gorm:"column:away_team_id;type:bigint;not null"`
	MatchDate       time.Time      `gorm:"column:match_date;type:date;not null;index"`
	HomeWinProb     float64        `gorm:"column:home_win_prob;type:numeric(6,4);not null"`
	DrawProb        float64        `gorm:"column:draw_prob;type:numeric(6,4);not null"`
	AwayWinProb     float64        `gorm:"column:away_win_prob;type:numeric(6,4);not null"`
	PredictedResult ResultCode     `gorm:"column:predicted_result;type:varchar(1);not null"`
	ActualResult    *ResultCode    `gorm:"column:actual_result;type:varchar(1)"`
	Correct         *bool          `gorm:"column:correct"`
	ConfidenceLevel string         `gorm:"column:confidence_level;type:varchar(8)"`
	ModelVersion    string         `gorm:"column:model_version;type:varchar(32)"`
	Features        datatypes.JSON `gorm:"column:features;type:jsonb"` // 预测时的特征快照，仅供审计
	CreatedAt       time.Time      `gorm:"column:created_at;type:timestamp;default:now()"`
}

func (Prediction) TableName() string { return "predictions" }

// TeamInjury 伤停表（可选）。表不存在时伤病特征整体视为不可用，而不是报错。
type TeamInjury struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	TeamID     uint64    `gorm:"column:team_id;type:bigint;not null;index"`
	PlayerName string    `gorm:"column:player_name;type:varchar(128)"`
	InjuryType string    `gorm:"column:injury_type;type:varchar(64)"`
	Severity   string    `gorm:"column:severity;type:varchar(16)"` // minor/major
	Status     string    `gorm:"column:status;type:varchar(16)"`   // out/doubtful/fit
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamp;default:now()"`
}

func (TeamInjury) TableName() string { return "team_injuries" }
