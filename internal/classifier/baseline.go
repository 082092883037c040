package classifier

import (
	"context"
	"errors"
	"math"
	"sort"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

var (
	_ interfaces.Classifier       = (*Baseline)(nil)
	_ interfaces.ImportanceRanker = (*Baseline)(nil)
)

// BaselineVersion 基线模型版本号
const BaselineVersion = "baseline-v1"

type weight struct {
	name  string
	value float64
}

// 基线模型权重：正值偏向主队。固定顺序累加，保证同一输入结果逐位一致
var baselineWeights = []weight{
	{"form_diff", 0.08},
	{"position_diff", 0.05},
	{"goals_diff", 0.35},
	{"h2h_home_win_rate", 0.30},
	{"home_win_rate", 0.40},
	{"away_win_rate", -0.40},
}

const (
	homeAdvantage = 0.25
	drawBias      = 0.0
	drawDecay     = 0.35
)

// Baseline 未配置外部模型时的确定性基线：线性打分 + softmax
type Baseline struct{}

// NewBaseline 创建基线分类器
func NewBaseline() *Baseline {
	return &Baseline{}
}

func (b *Baseline) Version() string {
	return BaselineVersion
}

// Predict 对主客队强弱差打分；差距越大平局概率越低
func (b *Baseline) Predict(_ context.Context, features *model.FeatureVector) (*interfaces.Probabilities, error) {
	score := homeAdvantage
	for _, w := range baselineWeights {
		score += w.value * features.Value(w.name)
	}
	home := score / 2
	away := -score / 2
	draw := drawBias - drawDecay*math.Abs(score)

	m := math.Max(home, math.Max(away, draw))
	eh, ed, ea := math.Exp(home-m), math.Exp(draw-m), math.Exp(away-m)
	sum := eh + ed + ea
	return &interfaces.Probabilities{HomeWin: eh / sum, Draw: ed / sum, AwayWin: ea / sum}, nil
}

// Importance 按权重绝对值排序
func (b *Baseline) Importance(context.Context) ([]interfaces.FeatureImportance, error) {
	var total float64
	for _, w := range baselineWeights {
		total += math.Abs(w.value)
	}
	list := make([]interfaces.FeatureImportance, 0, len(baselineWeights))
	for _, w := range baselineWeights {
		list = append(list, interfaces.FeatureImportance{Name: w.name, Importance: math.Abs(w.value) / total})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Importance != list[j].Importance {
			return list[i].Importance > list[j].Importance
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}

// ErrInvalidProbabilities 模型输出不是合法的概率分布
var ErrInvalidProbabilities = errors.New("invalid class probabilities")

// Normalize 校验非负并归一到和为 1
func Normalize(p *interfaces.Probabilities) error {
	if p.HomeWin < 0 || p.Draw < 0 || p.AwayWin < 0 {
		return ErrInvalidProbabilities
	}
	sum := p.HomeWin + p.Draw + p.AwayWin
	if sum <= 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return ErrInvalidProbabilities
	}
	p.HomeWin /= sum
	p.Draw /= sum
	p.AwayWin /= sum
	return nil
}
