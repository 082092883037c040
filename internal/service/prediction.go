package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"MatchForecast/internal/config"
	"MatchForecast/internal/features"
	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// ErrInvalidRequest 请求参数不合法
var ErrInvalidRequest = errors.New("invalid request")

// 置信度等级
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// MatchRequest 单场预测请求
type MatchRequest struct {
	HomeTeamID uint64
	AwayTeamID uint64
	LeagueID   uint64
	Date       time.Time // 零值表示今天
	FixtureID  *uint64
}

// PredictionResult 单场预测输出
type PredictionResult struct {
	PredictionUUID  string                   `json:"prediction_uuid"`
	FixtureID       *uint64                  `json:"fixture_id,omitempty"`
	LeagueID        uint64                   `json:"league_id"`
	HomeTeamID      uint64                   `json:"home_team_id"`
	AwayTeamID      uint64                   `json:"away_team_id"`
	HomeTeam        string                   `json:"home_team"`
	AwayTeam        string                   `json:"away_team"`
	Date            string                   `json:"date"`
	Probabilities   interfaces.Probabilities `json:"probabilities"`
	Predicted       model.ResultCode         `json:"predicted_result"`
	Outcome         string                   `json:"predicted_outcome"`
	Confidence      float64                  `json:"confidence"`
	ConfidenceLevel string                   `json:"confidence_level"`
	Explanation     []string                 `json:"explanation"`
	ModelVersion    string                   `json:"model_version"`
	Features        *model.FeatureVector     `json:"features"`
}

// PredictionService 赛前预测：特征组装 → 分类器 → 解释 → 持久化
type PredictionService struct {
	assembler   *features.Assembler
	classifier  interfaces.Classifier
	predictions repository.PredictionRepository
	fixtures    repository.FixtureRepository
	catalog     repository.CatalogRepository
	cfg         *config.PredictionConfig
	logger      *logrus.Logger
	now         func() time.Time
}

// NewPredictionService 创建预测服务
func NewPredictionService(
	assembler *features.Assembler,
	classifier interfaces.Classifier,
	predictions repository.PredictionRepository,
	fixtures repository.FixtureRepository,
	catalog repository.CatalogRepository,
	cfg *config.PredictionConfig,
	logger *logrus.Logger,
) *PredictionService {
	return &PredictionService{
		assembler:   assembler,
		classifier:  classifier,
		predictions: predictions,
		fixtures:    fixtures,
		catalog:     catalog,
		cfg:         cfg,
		logger:      logger,
		now:         time.Now,
	}
}

// PredictMatch 预测单场比赛并保存预测记录
func (s *PredictionService) PredictMatch(ctx context.Context, req MatchRequest) (*PredictionResult, error) {
	if req.HomeTeamID == 0 || req.AwayTeamID == 0 || req.LeagueID == 0 {
		return nil, fmt.Errorf("%w: 球队与联赛不能为空", ErrInvalidRequest)
	}
	if req.HomeTeamID == req.AwayTeamID {
		return nil, fmt.Errorf("%w: 主客队不能相同", ErrInvalidRequest)
	}
	if req.Date.IsZero() {
		req.Date = s.now()
	}
	date := model.DateOnly(req.Date)

	vec, err := s.assembler.Features(ctx, req.HomeTeamID, req.AwayTeamID, req.LeagueID, date, s.cfg.Enhanced)
	if err != nil {
		return nil, fmt.Errorf("计算特征失败: %w", err)
	}
	probs, err := s.classifier.Predict(ctx, vec)
	if err != nil {
		return nil, fmt.Errorf("模型预测失败: %w", err)
	}

	predicted, confidence := Argmax(probs)
	homeName, awayName := s.teamName(ctx, req.HomeTeamID), s.teamName(ctx, req.AwayTeamID)
	res := &PredictionResult{
		PredictionUUID:  uuid.New().String(),
		FixtureID:       req.FixtureID,
		LeagueID:        req.LeagueID,
		HomeTeamID:      req.HomeTeamID,
		AwayTeamID:      req.AwayTeamID,
		HomeTeam:        homeName,
		AwayTeam:        awayName,
		Date:            date.Format("2006-01-02"),
		Probabilities:   *probs,
		Predicted:       predicted,
		Outcome:         OutcomeLabel(predicted),
		Confidence:      confidence,
		ConfidenceLevel: ConfidenceLevel(confidence, s.cfg.HighConfidence, s.cfg.MediumConfidence),
		Explanation:     Explain(vec, homeName, awayName),
		ModelVersion:    s.classifier.Version(),
		Features:        vec,
	}

	if err := s.save(ctx, res, date); err != nil {
		return nil, err
	}
	s.logger.WithFields(logrus.Fields{
		"prediction_uuid": res.PredictionUUID,
		"home":            res.HomeTeam,
		"away":            res.AwayTeam,
		"predicted":       res.Predicted,
		"confidence":      res.ConfidenceLevel,
	}).Info("预测完成")
	return res, nil
}

// PredictUpcoming 预测未来 days 天内的未开赛赛程；leagueID 为 0 表示全部联赛。
// 单场特征缺失只记日志跳过，存储不可用时中止。
func (s *PredictionService) PredictUpcoming(ctx context.Context, leagueID uint64, days int) ([]*PredictionResult, error) {
	if days <= 0 {
		days = s.cfg.DaysAhead
	}
	if days <= 0 {
		days = 7
	}
	today := model.DateOnly(s.now())
	fixtures, err := s.fixtures.ListFixtures(ctx, repository.FixtureFilter{
		LeagueID: leagueID,
		Status:   repository.FixtureScheduled,
		From:     today,
		To:       today.AddDate(0, 0, days),
	}, 0)
	if err != nil {
		return nil, fmt.Errorf("查询赛程失败: %w", err)
	}

	results := make([]*PredictionResult, 0, len(fixtures))
	for _, f := range fixtures {
		fixtureID := f.ID
		res, err := s.PredictMatch(ctx, MatchRequest{
			HomeTeamID: f.HomeTeamID,
			AwayTeamID: f.AwayTeamID,
			LeagueID:   f.LeagueID,
			Date:       f.Date,
			FixtureID:  &fixtureID,
		})
		if err != nil {
			if errors.Is(err, interfaces.ErrStoreUnavailable) {
				return results, err
			}
			s.logger.WithError(err).WithField("fixture_id", f.ID).Warn("赛程预测失败")
			continue
		}
		results = append(results, res)
	}
	s.logger.Infof("赛程预测完成：%d/%d 场", len(results), len(fixtures))
	return results, nil
}

// FeatureImportance 分类器支持时返回特征重要性，否则返回 nil
func (s *PredictionService) FeatureImportance(ctx context.Context) ([]interfaces.FeatureImportance, error) {
	ranker, ok := s.classifier.(interfaces.ImportanceRanker)
	if !ok {
		return nil, nil
	}
	return ranker.Importance(ctx)
}

// History 分页查询预测记录
func (s *PredictionService) History(ctx context.Context, leagueID uint64, page, pageSize int) ([]*model.Prediction, int64, error) {
	return s.predictions.ListPredictions(ctx, leagueID, page, pageSize)
}

// GetPrediction 按 UUID 查询预测
func (s *PredictionService) GetPrediction(ctx context.Context, predictionUUID string) (*model.Prediction, error) {
	return s.predictions.GetByUUID(ctx, predictionUUID)
}

// Accuracy 已回填预测的命中率
func (s *PredictionService) Accuracy(ctx context.Context) (correct, total int64, rate float64, err error) {
	correct, total, err = s.predictions.Accuracy(ctx)
	if err != nil {
		return 0, 0, 0, err
	}
	if total > 0 {
		rate = float64(correct) / float64(total)
	}
	return correct, total, rate, nil
}

func (s *PredictionService) save(ctx context.Context, res *PredictionResult, date time.Time) error {
	snapshot, err := json.Marshal(res.Features)
	if err != nil {
		return fmt.Errorf("序列化特征快照失败: %w", err)
	}
	p := &model.Prediction{
		PredictionUUID:  res.PredictionUUID,
		FixtureID:       res.FixtureID,
		LeagueID:        res.LeagueID,
		HomeTeamID:      res.HomeTeamID,
		AwayTeamID:      res.AwayTeamID,
		MatchDate:       date,
		HomeWinProb:     res.Probabilities.HomeWin,
		DrawProb:        res.Probabilities.Draw,
		AwayWinProb:     res.Probabilities.AwayWin,
		PredictedResult: res.Predicted,
		ConfidenceLevel: res.ConfidenceLevel,
		ModelVersion:    res.ModelVersion,
		Features:        datatypes.JSON(snapshot),
	}
	if err := s.predictions.CreatePrediction(ctx, p); err != nil {
		return fmt.Errorf("保存预测失败: %w", err)
	}
	return nil
}

func (s *PredictionService) teamName(ctx context.Context, id uint64) string {
	t, err := s.catalog.TeamByID(ctx, id)
	if err != nil {
		s.logger.WithError(err).WithField("team_id", id).Debug("查询球队名称失败")
		return ""
	}
	return t.Name
}

// Argmax 概率最高的赛果；并列时按 客胜、平、主胜 的顺序取先出现者
func Argmax(p *interfaces.Probabilities) (model.ResultCode, float64) {
	best, prob := model.ResultAway, p.AwayWin
	if p.Draw > prob {
		best, prob = model.ResultDraw, p.Draw
	}
	if p.HomeWin > prob {
		best, prob = model.ResultHome, p.HomeWin
	}
	return best, prob
}

// ConfidenceLevel 按最高概率分级
func ConfidenceLevel(p, high, medium float64) string {
	if high <= 0 {
		high = 0.65
	}
	if medium <= 0 {
		medium = 0.50
	}
	switch {
	case p >= high:
		return ConfidenceHigh
	case p >= medium:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// OutcomeLabel 赛果代码 → 展示文案
func OutcomeLabel(r model.ResultCode) string {
	switch r {
	case model.ResultHome:
		return "Home Win"
	case model.ResultDraw:
		return "Draw"
	default:
		return "Away Win"
	}
}
