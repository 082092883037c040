package service

import (
	"context"
	"errors"
	"fmt"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/repository"

	"github.com/sirupsen/logrus"
)

// ResultService 赛后回填：比赛入库后把实际赛果写回预测记录，并把赛程标记为已完赛
type ResultService struct {
	matches     repository.MatchRepository
	predictions repository.PredictionRepository
	fixtures    repository.FixtureRepository
	logger      *logrus.Logger
}

// NewResultService 创建回填服务
func NewResultService(
	matches repository.MatchRepository,
	predictions repository.PredictionRepository,
	fixtures repository.FixtureRepository,
	logger *logrus.Logger,
) *ResultService {
	return &ResultService{
		matches:     matches,
		predictions: predictions,
		fixtures:    fixtures,
		logger:      logger,
	}
}

// Run 处理比赛日已过且尚未回填的预测，返回更新条数。比赛尚未入库的预测留待下次。
func (s *ResultService) Run(ctx context.Context) (int, error) {
	pending, err := s.predictions.ListPending(ctx, 500)
	if err != nil {
		return 0, fmt.Errorf("ListPending: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	updated := 0
	for _, p := range pending {
		m, err := s.matches.FindMatch(ctx, p.LeagueID, p.HomeTeamID, p.AwayTeamID, p.MatchDate)
		if err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				continue
			}
			return updated, fmt.Errorf("FindMatch: %w", err)
		}
		if !m.Result.Valid() {
			s.logger.WithField("match_id", m.ID).Warn("比赛赛果代码非法，跳过回填")
			continue
		}

		correct := p.PredictedResult == m.Result
		if err := s.predictions.UpdateOutcome(ctx, p.ID, m.ID, m.Result, correct); err != nil {
			s.logger.WithError(err).WithField("prediction_id", p.ID).Warn("UpdateOutcome")
			continue
		}
		updated++

		if p.FixtureID != nil {
			if err := s.fixtures.UpdateStatus(ctx, *p.FixtureID, repository.FixtureFinished); err != nil {
				s.logger.WithError(err).WithField("fixture_id", *p.FixtureID).Warn("UpdateStatus")
			}
		}
	}

	if updated > 0 {
		s.logger.Infof("结果回填：更新 %d/%d 条预测", updated, len(pending))
	}
	return updated, nil
}
