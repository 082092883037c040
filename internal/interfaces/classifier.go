package interfaces

import (
	"context"

	"MatchForecast/internal/model"
)

// Probabilities 三分类概率：客胜/平/主胜
type Probabilities struct {
	AwayWin float64 `json:"away_win"`
	Draw    float64 `json:"draw"`
	HomeWin float64 `json:"home_win"`
}

// FeatureImportance 特征重要性（可选输出）
type FeatureImportance struct {
	Name       string  `json:"name"`
	Importance float64 `json:"importance"`
}

// Classifier 外部分类模型，对引擎是黑盒：输入扁平特征，输出三分类概率
type Classifier interface {
	Version() string
	Predict(ctx context.Context, features *model.FeatureVector) (*Probabilities, error)
}

// ImportanceRanker 部分模型额外提供特征重要性排序
type ImportanceRanker interface {
	Importance(ctx context.Context) ([]FeatureImportance, error)
}
