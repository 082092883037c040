package classifier

import (
	"MatchForecast/internal/config"
	"MatchForecast/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// New 配置了模型服务地址时使用远程模型，否则退回基线模型
func New(cfg *config.PredictionConfig, logger *logrus.Logger) interfaces.Classifier {
	if cfg.ClassifierURL == "" {
		logger.Warn("未配置模型服务地址，使用基线模型")
		return NewBaseline()
	}
	logger.WithField("url", cfg.ClassifierURL).Info("使用远程模型服务")
	return NewRemote(RemoteConfig{
		URL:     cfg.ClassifierURL,
		APIKey:  cfg.ClassifierKey,
		Timeout: cfg.Timeout,
		Proxy:   cfg.Proxy,
	}, logger)
}
