package adapter

import (
	"fmt"

	"MatchForecast/internal/config"
	"MatchForecast/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// SourceRegistry 已初始化的历史数据源实例
type SourceRegistry struct {
	sources map[string]interfaces.HistorySource
	logger  *logrus.Logger
}

// NewSourceRegistry 用配置实例化所有已注册的数据源
func NewSourceRegistry(cfg *config.SyncConfig, logger *logrus.Logger) *SourceRegistry {
	r := &SourceRegistry{
		sources: make(map[string]interfaces.HistorySource),
		logger:  logger,
	}
	for _, name := range ListFactories() {
		factory, _ := GetFactory(name)
		src := factory(cfg, logger)
		if src == nil {
			logger.WithField("source", name).Error("工厂函数返回nil数据源实例")
			continue
		}
		r.sources[name] = src
		logger.WithField("source", name).Info("数据源初始化成功")
	}
	return r
}

// Add 手动加入数据源（测试或自定义数据源）
func (r *SourceRegistry) Add(src interfaces.HistorySource) {
	r.sources[src.GetName()] = src
}

// Get 按名称获取数据源
func (r *SourceRegistry) Get(name string) (interfaces.HistorySource, error) {
	src, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("数据源%s未初始化（已初始化：%v）", name, r.Names())
	}
	return src, nil
}

// Names 已初始化的数据源名称
func (r *SourceRegistry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for n := range r.sources {
		names = append(names, n)
	}
	return names
}
