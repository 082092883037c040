package api

import (
	"github.com/gin-gonic/gin"
)

// Handlers 全部路由处理器
type Handlers struct {
	Standings   *StandingsHandler
	Teams       *TeamHandler
	Features    *FeatureHandler
	Predictions *PredictionHandler
	Sync        *SyncHandler
	Status      *StatusHandler
}

// RegisterRoutes 注册 API 路由
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/api/status", h.Status.GetStatus)

	r.GET("/api/leagues/:league/standings", h.Standings.GetStandings)
	r.GET("/api/leagues/:league/seasons", h.Standings.ListSeasons)
	r.GET("/api/leagues/:league/teams", h.Teams.ListTeams)

	r.GET("/api/features", h.Features.GetFeatures)

	r.POST("/api/predictions/match", h.Predictions.PredictMatch)
	r.POST("/api/predictions/upcoming", h.Predictions.PredictUpcoming)
	r.GET("/api/predictions", h.Predictions.ListPredictions)
	r.GET("/api/predictions/accuracy", h.Predictions.Accuracy)
	r.GET("/api/predictions/importance", h.Predictions.Importance)
	r.GET("/api/predictions/:uuid", h.Predictions.GetPrediction)

	// 同步接口（也由定时任务调用）
	r.POST("/sync/history/:league", h.Sync.SyncHistory)
	r.POST("/sync/fixtures", h.Sync.SyncFixtures)
	r.POST("/sync/results", h.Sync.SyncResults)
}
