package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（与 config/config.yaml 对应）
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`     // 服务器配置
	Database   DatabaseConfig   `mapstructure:"database"`   // PostgreSQL配置
	Features   FeatureConfig    `mapstructure:"features"`   // 特征窗口参数
	Prediction PredictionConfig `mapstructure:"prediction"` // 预测与分类器配置
	Sync       SyncConfig       `mapstructure:"sync"`       // 数据同步与定时任务
	Leagues    []LeagueConfig   `mapstructure:"leagues"`    // 联赛静态元数据
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig PostgreSQL数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN（URL形式）
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	LogSQL          bool          `mapstructure:"log_sql"`           // 是否打印SQL
}

// FeatureConfig 特征计算窗口
type FeatureConfig struct {
	FormMatches       int `mapstructure:"form_matches"`       // 近期状态场次，默认5
	H2HMatches        int `mapstructure:"h2h_matches"`        // 交锋场次，默认5
	DisciplineMatches int `mapstructure:"discipline_matches"` // 纪律/进攻统计场次，默认10
	StandingsForm     int `mapstructure:"standings_form"`     // 积分榜近况表场次，默认5
}

// PredictionConfig 预测配置
type PredictionConfig struct {
	HighConfidence   float64 `mapstructure:"high_confidence"`   // 高置信度阈值
	MediumConfidence float64 `mapstructure:"medium_confidence"` // 中置信度阈值
	ClassifierURL    string  `mapstructure:"classifier_url"`    // 外部模型服务地址，为空则用基线模型
	ClassifierKey    string  `mapstructure:"classifier_key"`    // 模型服务鉴权
	Timeout          int     `mapstructure:"timeout"`           // 请求超时（秒）
	Proxy            string  `mapstructure:"proxy"`             // 代理地址
	Enhanced         bool    `mapstructure:"enhanced"`          // 是否使用增强特征
	DaysAhead        int     `mapstructure:"days_ahead"`        // 预测未来多少天的赛程
}

// SyncConfig 数据同步配置
type SyncConfig struct {
	Source       string `mapstructure:"source"`        // 历史数据源名称
	BaseURL      string `mapstructure:"base_url"`      // football-data.co.uk 地址
	Timeout      int    `mapstructure:"timeout"`       // 请求超时（秒）
	Proxy        string `mapstructure:"proxy"`         // 代理地址
	HistoryCron  string `mapstructure:"history_cron"`  // 历史数据同步Cron表达式
	ResultsCron  string `mapstructure:"results_cron"`  // 预测结果回填Cron表达式
	PredictCron  string `mapstructure:"predict_cron"`  // 赛程预测Cron表达式
	FixturesCron string `mapstructure:"fixtures_cron"` // 赛程同步Cron表达式
}

// LeagueConfig 单个联赛静态配置
type LeagueConfig struct {
	Key      string   `mapstructure:"key"`       // 内部键，如 premier_league
	Name     string   `mapstructure:"name"`      // 联赛名称（与 leagues.name 一致）
	Country  string   `mapstructure:"country"`   // 国家
	Code     string   `mapstructure:"code"`      // football-data.co.uk 代码
	AvgGoals float64  `mapstructure:"avg_goals"` // 联赛场均进球
	Seasons  []string `mapstructure:"seasons"`   // 需要同步的赛季代码
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在）
	_ = godotenv.Load()

	// 2. 读取 config.yaml
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	setDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	cfg.normalize()
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("features.form_matches", 5)
	v.SetDefault("features.h2h_matches", 5)
	v.SetDefault("features.discipline_matches", 10)
	v.SetDefault("features.standings_form", 5)
	v.SetDefault("prediction.high_confidence", 0.65)
	v.SetDefault("prediction.medium_confidence", 0.50)
	v.SetDefault("prediction.timeout", 10)
	v.SetDefault("prediction.days_ahead", 7)
	v.SetDefault("sync.source", "football-data")
	v.SetDefault("sync.base_url", "https://www.football-data.co.uk")
	v.SetDefault("sync.timeout", 30)
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("CLASSIFIER_URL"); v != "" {
		cfg.Prediction.ClassifierURL = v
	}
	if v := os.Getenv("CLASSIFIER_KEY"); v != "" {
		cfg.Prediction.ClassifierKey = v
	}
	if v := os.Getenv("SYNC_PROXY"); v != "" {
		cfg.Sync.Proxy = v
	}
}

// normalize 兜底非法数值
func (c *Config) normalize() {
	if c.Features.FormMatches <= 0 {
		c.Features.FormMatches = 5
	}
	if c.Features.H2HMatches <= 0 {
		c.Features.H2HMatches = 5
	}
	if c.Features.DisciplineMatches <= 0 {
		c.Features.DisciplineMatches = 10
	}
	if c.Features.StandingsForm <= 0 {
		c.Features.StandingsForm = 5
	}
	c.Sync.BaseURL = strings.TrimRight(c.Sync.BaseURL, "/")
}

// LeagueByName 按联赛名称（不区分大小写）或内部键查找
func (c *Config) LeagueByName(name string) (LeagueConfig, bool) {
	for _, l := range c.Leagues {
		if strings.EqualFold(l.Name, name) || strings.EqualFold(l.Key, name) {
			return l, true
		}
	}
	return LeagueConfig{}, false
}

// LeagueByCode 按 football-data.co.uk 代码查找联赛配置（如 E0）
func (c *Config) LeagueByCode(code string) (LeagueConfig, bool) {
	for _, l := range c.Leagues {
		if strings.EqualFold(l.Code, code) {
			return l, true
		}
	}
	return LeagueConfig{}, false
}

// AvgGoals 联赛场均进球常量，未配置时 ok=false
func (c *Config) AvgGoals(leagueName string) (float64, bool) {
	l, ok := c.LeagueByName(leagueName)
	if !ok || l.AvgGoals <= 0 {
		return 0, false
	}
	return l.AvgGoals, true
}

// AvgGoalsMap 联赛名称 → 场均进球，供特征组装器使用
func (c *Config) AvgGoalsMap() map[string]float64 {
	m := make(map[string]float64, len(c.Leagues))
	for _, l := range c.Leagues {
		if l.AvgGoals > 0 {
			m[l.Name] = l.AvgGoals
		}
	}
	return m
}
