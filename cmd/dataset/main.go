// dataset 从数据库导出训练集 CSV：每场已完赛比赛一行，特征只使用比赛日之前的数据。
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"MatchForecast/internal/config"
	"MatchForecast/internal/database"
	"MatchForecast/internal/features"
	"MatchForecast/internal/repository"

	"github.com/sirupsen/logrus"
)

func main() {
	fs := flag.NewFlagSet("dataset", flag.ExitOnError)
	out := fs.String("out", "training_data.csv", "output CSV path, - for stdout")
	leagueName := fs.String("league", "", "only export matches of this league (empty for all)")
	from := fs.String("from", "", "first match date to export, YYYY-MM-DD")
	to := fs.String("to", "", "last match date to export, YYYY-MM-DD")
	enhanced := fs.Bool("enhanced", false, "include discipline, attacking and injury features")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("加载配置文件失败: %v", err)
	}
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, logger, exportOptions{
		out:      *out,
		league:   *leagueName,
		from:     *from,
		to:       *to,
		enhanced: *enhanced,
	}); err != nil {
		logger.Fatalf("导出训练集失败: %v", err)
	}
}

type exportOptions struct {
	out      string
	league   string
	from     string
	to       string
	enhanced bool
}

func run(ctx context.Context, cfg *config.Config, logger *logrus.Logger, opts exportOptions) error {
	db, err := database.Open(&cfg.Database, logger)
	if err != nil {
		return err
	}
	matchRepo := repository.NewMatchRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	// 时间点特征需要完整历史，整体加载到内存后再按条件挑选要导出的比赛
	start := time.Now()
	store, err := repository.LoadMemoryStore(ctx, matchRepo, catalogRepo)
	if err != nil {
		return fmt.Errorf("加载比赛快照失败: %w", err)
	}
	logger.Infof("已加载 %d 场比赛，耗时 %s", len(store.Matches()), time.Since(start))

	q, err := buildQuery(ctx, store, opts)
	if err != nil {
		return err
	}
	matches, err := store.ListMatches(ctx, q)
	if err != nil {
		return err
	}

	assembler := features.NewAssembler(features.NewCalculator(store, logger), store, features.AssemblerOptions{
		Windows: features.Windows{
			Form:       cfg.Features.FormMatches,
			H2H:        cfg.Features.H2HMatches,
			Discipline: cfg.Features.DisciplineMatches,
		},
		AvgGoals: cfg.AvgGoalsMap(),
		Injuries: repository.NewInjurySource(db),
	}, logger)
	builder := features.NewDatasetBuilder(assembler, opts.enhanced, logger)

	rows, err := builder.Build(ctx, matches)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if opts.out != "-" {
		f, err := os.Create(opts.out)
		if err != nil {
			return fmt.Errorf("创建输出文件失败: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := builder.WriteCSV(w, rows); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"rows": len(rows), "out": opts.out}).Info("训练集导出完成")
	return nil
}

func buildQuery(ctx context.Context, store *repository.MemoryStore, opts exportOptions) (repository.MatchQuery, error) {
	var q repository.MatchQuery
	if opts.league != "" {
		l, err := store.LeagueByName(ctx, opts.league)
		if err != nil {
			return q, fmt.Errorf("联赛%s不存在: %w", opts.league, err)
		}
		q.LeagueID = l.ID
	}
	for _, p := range []struct {
		raw string
		dst **time.Time
	}{{opts.from, &q.From}, {opts.to, &q.To}} {
		if p.raw == "" {
			continue
		}
		t, err := time.Parse("2006-01-02", p.raw)
		if err != nil {
			return q, fmt.Errorf("日期格式应为 YYYY-MM-DD: %s", p.raw)
		}
		*p.dst = &t
	}
	return q, nil
}
