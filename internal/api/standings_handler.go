package api

import (
	"net/http"
	"strconv"

	"MatchForecast/internal/standings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StandingsHandler 积分榜查询接口
type StandingsHandler struct {
	engine  *standings.Engine
	formLen int
	logger  *logrus.Logger
}

// NewStandingsHandler 创建 StandingsHandler
func NewStandingsHandler(engine *standings.Engine, formLen int, logger *logrus.Logger) *StandingsHandler {
	if formLen <= 0 {
		formLen = standings.DefaultFormLength
	}
	return &StandingsHandler{engine: engine, formLen: formLen, logger: logger}
}

// GetStandings 积分榜
// GET /api/leagues/:league/standings?season=2425&view=overall|home|away|form&n=5
// season 为空时取最近赛季；联赛没有任何比赛时返回空表
func (h *StandingsHandler) GetStandings(c *gin.Context) {
	leagueName := c.Param("league")
	view := c.DefaultQuery("view", standings.ViewOverall)
	switch view {
	case standings.ViewOverall, standings.ViewHome, standings.ViewAway, standings.ViewForm:
	default:
		badRequest(c, "view must be one of overall, home, away, form")
		return
	}
	n, err := strconv.Atoi(c.DefaultQuery("n", strconv.Itoa(h.formLen)))
	if err != nil || n <= 0 {
		badRequest(c, "n must be a positive integer")
		return
	}

	table, err := h.engine.View(c.Request.Context(), leagueName, c.Query("season"), view, n)
	if err != nil {
		respondError(c, h.logger, "查询积分榜失败", err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// ListSeasons 可选赛季 GET /api/leagues/:league/seasons
func (h *StandingsHandler) ListSeasons(c *gin.Context) {
	leagueName := c.Param("league")
	seasons, err := h.engine.AvailableSeasons(c.Request.Context(), leagueName)
	if err != nil {
		respondError(c, h.logger, "查询赛季失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"league": leagueName, "seasons": seasons})
}
