package api

import (
	"errors"
	"net/http"

	"MatchForecast/internal/interfaces"
	"MatchForecast/internal/model"
	"MatchForecast/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type teamView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TeamHandler 球队列表，预测接口需要的球队 ID 从这里查
type TeamHandler struct {
	catalog repository.CatalogRepository
	logger  *logrus.Logger
}

// NewTeamHandler 创建 TeamHandler
func NewTeamHandler(catalog repository.CatalogRepository, logger *logrus.Logger) *TeamHandler {
	return &TeamHandler{catalog: catalog, logger: logger}
}

// ListTeams GET /api/leagues/:league/teams，league 可以是名称或 ID
func (h *TeamHandler) ListTeams(c *gin.Context) {
	ctx := c.Request.Context()
	param := c.Param("league")

	var (
		league *model.League
		err    error
	)
	if id, perr := parseID(param); perr == nil {
		league, err = h.catalog.LeagueByID(ctx, id)
	} else {
		league, err = h.catalog.LeagueByName(ctx, param)
	}
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown league: " + param})
			return
		}
		respondError(c, h.logger, "查询联赛失败", err)
		return
	}

	teams, err := h.catalog.ListTeams(ctx, league.ID)
	if err != nil {
		respondError(c, h.logger, "查询球队列表失败", err)
		return
	}
	views := make([]teamView, 0, len(teams))
	for _, t := range teams {
		views = append(views, teamView{ID: t.ID, Name: t.Name})
	}
	c.JSON(http.StatusOK, gin.H{
		"league_id": league.ID,
		"league":    league.Name,
		"teams":     views,
		"total":     len(views),
	})
}
