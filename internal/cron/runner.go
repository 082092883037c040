package cronrunner

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Runner 定时任务：历史同步、结果回填、赛程预测
type Runner struct {
	cron    *cron.Cron
	logger  *logrus.Logger
	baseCtx context.Context
}

// New 创建带秒字段的调度器
func New(logger *logrus.Logger, baseCtx context.Context) *Runner {
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	return &Runner{
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// Add 注册任务；spec 为空时跳过，返回 0
func (r *Runner) Add(name, spec string, job func(context.Context) error) (cron.EntryID, error) {
	if spec == "" {
		r.logger.WithField("job", name).Info("未配置定时表达式，跳过")
		return 0, nil
	}
	id, err := r.cron.AddFunc(spec, func() {
		start := time.Now()
		entry := r.logger.WithField("job", name)
		if err := job(r.baseCtx); err != nil {
			entry.WithError(err).Error("定时任务执行失败")
			return
		}
		entry.WithField("elapsed", time.Since(start).String()).Info("定时任务执行完成")
	})
	if err != nil {
		return 0, err
	}
	r.logger.WithFields(logrus.Fields{"job": name, "spec": spec}).Info("定时任务已注册")
	return id, nil
}

// Len 已注册任务数
func (r *Runner) Len() int {
	return len(r.cron.Entries())
}

func (r *Runner) Start() {
	r.logger.Info("cron started")
	r.cron.Start()
}

// Stop 等待正在执行的任务结束
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("cron stopped")
}
