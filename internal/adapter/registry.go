// internal/adapter/registry.go
package adapter

import (
	"fmt"
	"sort"

	"MatchForecast/internal/config"
	"MatchForecast/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// Factory 数据源工厂函数签名
type Factory func(cfg *config.SyncConfig, logger *logrus.Logger) interfaces.HistorySource

// 全局工厂函数注册表，由各数据源包的 init 注册
var factoryRegistry = make(map[string]Factory)

// Register 供数据源 init 函数调用，注册工厂函数
func Register(name string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("数据源%s的工厂函数不能为nil", name))
	}
	if _, exists := factoryRegistry[name]; exists {
		logrus.Warnf("数据源%s已注册，将覆盖原有实现", name)
	}
	factoryRegistry[name] = factory
}

// GetFactory 获取指定数据源的工厂函数
func GetFactory(name string) (Factory, bool) {
	factory, ok := factoryRegistry[name]
	return factory, ok
}

// ListFactories 列出所有已注册的数据源名称（有序）
func ListFactories() []string {
	names := make([]string, 0, len(factoryRegistry))
	for n := range factoryRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
