package api

import (
	"net/http"
	"strconv"

	"MatchForecast/internal/features"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// FeatureHandler 单场特征查询（调试与外部建模用）
type FeatureHandler struct {
	assembler *features.Assembler
	logger    *logrus.Logger
}

// NewFeatureHandler 创建 FeatureHandler
func NewFeatureHandler(assembler *features.Assembler, logger *logrus.Logger) *FeatureHandler {
	return &FeatureHandler{assembler: assembler, logger: logger}
}

// GetFeatures GET /api/features?home=1&away=2&league=1&date=2025-01-18&enhanced=true
func (h *FeatureHandler) GetFeatures(c *gin.Context) {
	homeID, err1 := parseID(c.Query("home"))
	awayID, err2 := parseID(c.Query("away"))
	leagueID, err3 := parseID(c.Query("league"))
	if err1 != nil || err2 != nil || err3 != nil {
		badRequest(c, "home, away and league must be numeric ids")
		return
	}
	if homeID == awayID {
		badRequest(c, "home and away must differ")
		return
	}
	date, err := parseDate(c.Query("date"))
	if err != nil {
		badRequest(c, "date must be YYYY-MM-DD")
		return
	}
	enhanced, _ := strconv.ParseBool(c.DefaultQuery("enhanced", "false"))

	vec, err := h.assembler.Features(c.Request.Context(), homeID, awayID, leagueID, date, enhanced)
	if err != nil {
		respondError(c, h.logger, "计算特征失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"date":                  date.Format("2006-01-02"),
		"enhanced":              enhanced,
		"injury_data_available": h.assembler.InjuriesAvailable(),
		"columns":               vec.Names(),
		"features":              vec,
	})
}
