package api

import (
	"net/http"

	"MatchForecast/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatusHandler 数据概况
type StatusHandler struct {
	catalog      repository.CatalogRepository
	modelVersion func() string
	logger       *logrus.Logger
}

// NewStatusHandler 创建 StatusHandler
func NewStatusHandler(catalog repository.CatalogRepository, modelVersion func() string, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{catalog: catalog, modelVersion: modelVersion, logger: logger}
}

// GetStatus GET /api/status
func (h *StatusHandler) GetStatus(c *gin.Context) {
	summary, err := h.catalog.Summary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "查询数据概况失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary, "model_version": h.modelVersion()})
}
