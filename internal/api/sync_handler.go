package api

import (
	"net/http"
	"strconv"

	"MatchForecast/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// SyncHandler 手动触发数据同步
type SyncHandler struct {
	ingest  *service.IngestService
	results *service.ResultService
	logger  *logrus.Logger
}

// NewSyncHandler 创建 SyncHandler
func NewSyncHandler(ingest *service.IngestService, results *service.ResultService, logger *logrus.Logger) *SyncHandler {
	return &SyncHandler{ingest: ingest, results: results, logger: logger}
}

// SyncHistory 下载并入库历史比赛
// POST /sync/history/:league?season=2425，season 为空时同步配置中的全部赛季
func (h *SyncHandler) SyncHistory(c *gin.Context) {
	leagueName := c.Param("league")
	ctx := c.Request.Context()

	if season := c.Query("season"); season != "" {
		report, err := h.ingest.SyncSeason(ctx, leagueName, season)
		if err != nil {
			respondError(c, h.logger, "同步历史比赛失败", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reports": []*service.IngestReport{report}})
		return
	}

	reports, err := h.ingest.SyncLeague(ctx, leagueName)
	if err != nil {
		respondError(c, h.logger, "同步历史比赛失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": reports})
}

// SyncFixtures 同步未开赛赛程 POST /sync/fixtures?days=7，days 为空时取配置
func (h *SyncHandler) SyncFixtures(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "0"))
	if err != nil || days < 0 {
		badRequest(c, "days must be a non-negative integer")
		return
	}
	report, err := h.ingest.SyncFixtures(c.Request.Context(), days)
	if err != nil {
		respondError(c, h.logger, "同步赛程失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// SyncResults 回填已完赛预测 POST /sync/results
func (h *SyncHandler) SyncResults(c *gin.Context) {
	updated, err := h.results.Run(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "回填预测结果失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}
