package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/pkf/internal/pkg/response"
	"github.com/xxxsen/pkf/internal/service"
)

type ScoreHandler struct {
	scoring *service.ScoringService
}

func NewScoreHandler(scoring *service.ScoringService) *ScoreHandler {
	return &ScoreHandler{scoring: scoring}
}

func (h *ScoreHandler) Get(c *gin.Context) {
	score, err := h.scoring.GetScore(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, score)
}

func (h *ScoreHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	scores, err := h.scoring.ListScores(c.Request.Context(), getUserID(c), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, scores)
}

// Rescore recomputes every signal for one document on demand.
func (h *ScoreHandler) Rescore(c *gin.Context) {
	score, err := h.scoring.ScoreDocument(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, score)
}

func (h *ScoreHandler) Redundancies(c *gin.Context) {
	detections, err := h.scoring.ListRedundancies(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, detections)
}
