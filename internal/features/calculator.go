package features

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
)

// 默认窗口
const (
	DefaultFormMatches       = 5
	DefaultH2HMatches        = 5
	DefaultDisciplineMatches = 10
)

// Calculator 时间点统计计算器：所有查询只看参考日之前（严格小于）的比赛。
// 无内部可变状态，可被多个 goroutine 并发调用。
type Calculator struct {
	store  interfaces.MatchStore
	logger *logrus.Logger
}

// NewCalculator 创建计算器，store 显式传入
func NewCalculator(store interfaces.MatchStore, logger *logrus.Logger) *Calculator {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Calculator{store: store, logger: logger}
}

// recent 查询参考日之前的比赛，并再次校验严格小于与去重
func (c *Calculator) recent(ctx context.Context, f interfaces.MatchFilter) ([]*model.Match, error) {
	list, err := c.store.MatchesBefore(ctx, f)
	if err != nil {
		return nil, err
	}
	before := model.DateOnly(f.Before)
	seen := make(map[model.MatchKey]struct{}, len(list))
	out := list[:0:0]
	for _, m := range list {
		if !model.DateOnly(m.Date).Before(before) {
			continue
		}
		k := m.Key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, m)
	}
	return out, nil
}

// warnIfInconsistent 比分与赛果不一致时记录告警，不修正
func (c *Calculator) warnIfInconsistent(m *model.Match) {
	if m.Consistent() {
		return
	}
	home, away, _ := m.Score()
	c.logger.WithFields(logrus.Fields{
		"match_id":   m.ID,
		"result":     m.Result,
		"home_goals": home,
		"away_goals": away,
	}).Warn("比分与赛果代码不一致")
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func window(n, def int) int {
	if n <= 0 {
		return def
	}
	return n
}

func refDate(t time.Time) time.Time {
	return model.DateOnly(t)
}
