package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"MatchForecast/internal/adapter"
	_ "MatchForecast/internal/adapter/footballdata"
	"MatchForecast/internal/api"
	"MatchForecast/internal/classifier"
	"MatchForecast/internal/config"
	cronrunner "MatchForecast/internal/cron"
	"MatchForecast/internal/database"
	"MatchForecast/internal/features"
	"MatchForecast/internal/repository"
	"MatchForecast/internal/service"
	"MatchForecast/internal/standings"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. 加载配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}

	// 2. 初始化日志
	logrusLogger := logrus.New()
	logrusLogger.SetLevel(logrus.InfoLevel)
	logrusLogger.Info("配置文件加载成功")

	// 3. 初始化 PostgreSQL 连接并迁移表结构
	db, err := database.Open(&cfg.Database, logrusLogger)
	if err != nil {
		logrusLogger.Fatalf("%v", err)
	}
	if err := database.Migrate(db); err != nil {
		logrusLogger.Fatalf("数据库表结构迁移失败: %v", err)
	}
	logrusLogger.Info("数据库表结构检查完成（不存在则已创建）")

	// 4. 仓储
	matchRepo := repository.NewMatchRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	fixtureRepo := repository.NewFixtureRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)
	injuries := repository.NewInjurySource(db)
	if injuries == nil {
		logrusLogger.Info("未发现伤停表，伤病特征标记为不可用")
	}

	// 5. 特征、模型与服务
	calc := features.NewCalculator(matchRepo, logrusLogger)
	assembler := features.NewAssembler(calc, catalogRepo, features.AssemblerOptions{
		Windows: features.Windows{
			Form:       cfg.Features.FormMatches,
			H2H:        cfg.Features.H2HMatches,
			Discipline: cfg.Features.DisciplineMatches,
		},
		AvgGoals: cfg.AvgGoalsMap(),
		Injuries: injuries,
	}, logrusLogger)
	clf := classifier.New(&cfg.Prediction, logrusLogger)

	sources := adapter.NewSourceRegistry(&cfg.Sync, logrusLogger)
	source, err := sources.Get(cfg.Sync.Source)
	if err != nil {
		logrusLogger.Fatalf("初始化数据源失败: %v", err)
	}
	ingestSvc := service.NewIngestService(source, matchRepo, catalogRepo, fixtureRepo, cfg, logrusLogger)
	predictionSvc := service.NewPredictionService(assembler, clf, predictionRepo, fixtureRepo, catalogRepo, &cfg.Prediction, logrusLogger)
	resultSvc := service.NewResultService(matchRepo, predictionRepo, fixtureRepo, logrusLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := ingestSvc.EnsureLeagues(ctx); err != nil {
		logrusLogger.Fatalf("%v", err)
	}

	// 6. 定时任务
	runner := cronrunner.New(logrusLogger, ctx)
	jobs := []struct {
		name string
		spec string
		job  func(context.Context) error
	}{
		{"history_sync", cfg.Sync.HistoryCron, ingestSvc.SyncAll},
		{"fixtures_sync", cfg.Sync.FixturesCron, func(ctx context.Context) error {
			_, err := ingestSvc.SyncFixtures(ctx, cfg.Prediction.DaysAhead)
			return err
		}},
		{"result_sync", cfg.Sync.ResultsCron, func(ctx context.Context) error {
			_, err := resultSvc.Run(ctx)
			return err
		}},
		{"predict_upcoming", cfg.Sync.PredictCron, func(ctx context.Context) error {
			_, err := predictionSvc.PredictUpcoming(ctx, 0, cfg.Prediction.DaysAhead)
			return err
		}},
	}
	for _, j := range jobs {
		if _, err := runner.Add(j.name, j.spec, j.job); err != nil {
			logrusLogger.Fatalf("注册定时任务%s失败: %v", j.name, err)
		}
	}
	runner.Start()
	defer runner.Stop()

	// 7. 配置Gin运行模式（从配置读取：debug/release）
	gin.SetMode(cfg.Server.Mode)
	r := gin.Default()

	// 注册ppof 方便调试和监测性能问题
	pprof.Register(r)
	logrusLogger.Infof("Gin运行模式: %s", cfg.Server.Mode)

	// 8. 注册API路由
	api.RegisterRoutes(r, api.Handlers{
		Standings:   api.NewStandingsHandler(standings.NewEngine(matchRepo, logrusLogger), cfg.Features.StandingsForm, logrusLogger),
		Teams:       api.NewTeamHandler(catalogRepo, logrusLogger),
		Features:    api.NewFeatureHandler(assembler, logrusLogger),
		Predictions: api.NewPredictionHandler(predictionSvc, catalogRepo, logrusLogger),
		Sync:        api.NewSyncHandler(ingestSvc, resultSvc, logrusLogger),
		Status:      api.NewStatusHandler(catalogRepo, clf.Version, logrusLogger),
	})

	// 9. 启动服务（从配置读取端口），收到退出信号后优雅关闭
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Server.Port), Handler: r}
	go func() {
		logrusLogger.Infof("服务启动成功，端口：%d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrusLogger.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	logrusLogger.Info("收到退出信号，正在关闭服务…")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrusLogger.WithError(err).Error("服务关闭失败")
	}
}
