package api

import (
	"errors"
	"net/http"
	"strconv"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// PredictionHandler 预测接口
type PredictionHandler struct {
	svc     *service.PredictionService
	leagues interfaces.LeagueCatalog
	logger  *logrus.Logger
}

// NewPredictionHandler 创建 PredictionHandler
func NewPredictionHandler(svc *service.PredictionService, leagues interfaces.LeagueCatalog, logger *logrus.Logger) *PredictionHandler {
	return &PredictionHandler{svc: svc, leagues: leagues, logger: logger}
}

// predictMatchRequest POST /api/predictions/match 请求体
type predictMatchRequest struct {
	HomeTeamID uint64 `json:"home_team_id" binding:"required"`
	AwayTeamID uint64 `json:"away_team_id" binding:"required"`
	LeagueID   uint64 `json:"league_id" binding:"required"`
	Date       string `json:"date"` // YYYY-MM-DD，为空取今天
}

// PredictMatch 单场预测 POST /api/predictions/match
func (h *PredictionHandler) PredictMatch(c *gin.Context) {
	var req predictMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD")
		return
	}
	res, err := h.svc.PredictMatch(c.Request.Context(), service.MatchRequest{
		HomeTeamID: req.HomeTeamID,
		AwayTeamID: req.AwayTeamID,
		LeagueID:   req.LeagueID,
		Date:       date,
	})
	if err != nil {
		respondError(c, h.logger, "预测失败", err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PredictUpcoming 批量预测未来赛程 POST /api/predictions/upcoming?league=Premier League&days=7
// league 可以是联赛 ID 或名称，为空表示全部联赛
func (h *PredictionHandler) PredictUpcoming(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
	if err != nil || days < 0 {
		badRequest(c, "days must be a non-negative integer")
		return
	}
	ctx := c.Request.Context()

	var leagueID uint64
	if q := c.Query("league"); q != "" {
		if id, err := parseID(q); err == nil {
			leagueID = id
		} else {
			l, err := h.leagues.LeagueByName(ctx, q)
			if err != nil {
				if errors.Is(err, interfaces.ErrNotFound) {
					c.JSON(http.StatusNotFound, gin.H{"error": "unknown league: " + q})
					return
				}
				respondError(c, h.logger, "查询联赛失败", err)
				return
			}
			leagueID = l.ID
		}
	}

	results, err := h.svc.PredictUpcoming(ctx, leagueID, days)
	if err != nil {
		respondError(c, h.logger, "赛程预测失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": len(results), "predictions": results})
}

// ListPredictions 预测记录 GET /api/predictions?league_id=1&page=1&page_size=20
func (h *PredictionHandler) ListPredictions(c *gin.Context) {
	var leagueID uint64
	if q := c.Query("league_id"); q != "" {
		id, err := parseID(q)
		if err != nil {
			badRequest(c, "league_id must be numeric")
			return
		}
		leagueID = id
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	list, total, err := h.svc.History(c.Request.Context(), leagueID, page, pageSize)
	if err != nil {
		respondError(c, h.logger, "查询预测记录失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total, "page": page, "list": list})
}

// GetPrediction 预测详情 GET /api/predictions/:uuid
func (h *PredictionHandler) GetPrediction(c *gin.Context) {
	p, err := h.svc.GetPrediction(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		respondError(c, h.logger, "查询预测失败", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// Accuracy 命中率 GET /api/predictions/accuracy
func (h *PredictionHandler) Accuracy(c *gin.Context) {
	correct, total, rate, err := h.svc.Accuracy(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "统计准确率失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"correct": correct, "total": total, "accuracy": rate})
}

// Importance 特征重要性 GET /api/predictions/importance；模型不支持时返回空列表
func (h *PredictionHandler) Importance(c *gin.Context) {
	list, err := h.svc.FeatureImportance(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "查询特征重要性失败", err)
		return
	}
	if list == nil {
		list = []interfaces.FeatureImportance{}
	}
	c.JSON(http.StatusOK, gin.H{"features": list})
}
