package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/pkf/internal/pkg/errcode"
	"github.com/xxxsen/pkf/internal/pkg/response"
	"github.com/xxxsen/pkf/internal/service"
)

type InsightHandler struct {
	insights *service.InsightService
}

func NewInsightHandler(insights *service.InsightService) *InsightHandler {
	return &InsightHandler{insights: insights}
}

type snippetRequest struct {
	Text                string `json:"text"`
	EnableRepetition    *bool  `json:"enable_repetition"`
	EnableCognitiveLoad *bool  `json:"enable_cognitive_load"`
	EnableMisinfo       *bool  `json:"enable_misinfo"`
	EnableAI            *bool  `json:"enable_ai"`
}

// snippetFlags turns the optional request toggles into detector flags.
// Omitted toggles leave the detector on.
func (req *snippetRequest) snippetFlags() service.SnippetFlags {
	flags := service.DefaultSnippetFlags()
	if req.EnableRepetition != nil {
		flags.Repetition = *req.EnableRepetition
	}
	if req.EnableCognitiveLoad != nil {
		flags.CognitiveLoad = *req.EnableCognitiveLoad
	}
	if req.EnableMisinfo != nil {
		flags.Misinformation = *req.EnableMisinfo
	}
	if req.EnableAI != nil {
		flags.AIStyle = *req.EnableAI
	}
	return flags
}

// AnalyzeSnippet flags signals on a live snippet without persisting
// anything.
func (h *InsightHandler) AnalyzeSnippet(c *gin.Context) {
	var req snippetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		response.Error(c, errcode.ErrInvalid, "text required")
		return
	}
	insights := h.insights.AnalyzeSnippet(c.Request.Context(), getUserID(c), req.Text, req.snippetFlags())
	response.Success(c, insights)
}

func (h *InsightHandler) DocumentInsights(c *gin.Context) {
	insights, err := h.insights.DocumentInsights(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, insights)
}
