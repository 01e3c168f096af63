package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/pkf/internal/middleware"
)

type RouterDeps struct {
	Documents      *DocumentHandler
	Scores         *ScoreHandler
	Graph          *GraphHandler
	Insights       *InsightHandler
	Contradictions *ContradictionHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	userGroup := api.Group("")
	userGroup.Use(middleware.UserID())

	userGroup.POST("/documents", deps.Documents.Paste)
	userGroup.GET("/documents", deps.Documents.List)
	userGroup.GET("/documents/:id", deps.Documents.Get)
	userGroup.GET("/documents/:id/chunks", deps.Documents.Chunks)
	userGroup.DELETE("/documents/:id", deps.Documents.Delete)
	userGroup.POST("/documents/:id/reprocess", deps.Documents.Reprocess)

	userGroup.GET("/documents/:id/score", deps.Scores.Get)
	userGroup.POST("/documents/:id/score", deps.Scores.Rescore)
	userGroup.GET("/documents/:id/redundancies", deps.Scores.Redundancies)
	userGroup.GET("/scores", deps.Scores.List)

	userGroup.GET("/graph", deps.Graph.Summary)
	userGroup.POST("/graph/rebuild", deps.Graph.Rebuild)
	userGroup.GET("/concepts/:id/related", deps.Graph.Related)
	userGroup.GET("/concepts/:id/evolution", deps.Graph.Evolution)

	userGroup.POST("/insights/snippet", deps.Insights.AnalyzeSnippet)
	userGroup.GET("/documents/:id/insights", deps.Insights.DocumentInsights)

	userGroup.GET("/contradictions", deps.Contradictions.List)
	userGroup.PUT("/contradictions/:id/confirm", deps.Contradictions.Confirm)
}
