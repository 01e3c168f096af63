package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/pkf/internal/pkg/response"
	"github.com/xxxsen/pkf/internal/service"
)

type GraphHandler struct {
	graph *service.GraphService
}

func NewGraphHandler(graph *service.GraphService) *GraphHandler {
	return &GraphHandler{graph: graph}
}

func (h *GraphHandler) Summary(c *gin.Context) {
	summary, err := h.graph.GetSummary(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summary)
}

func (h *GraphHandler) Rebuild(c *gin.Context) {
	summary, err := h.graph.Rebuild(c.Request.Context(), getUserID(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, summary)
}

func (h *GraphHandler) Related(c *gin.Context) {
	related, err := h.graph.RelatedConcepts(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, related)
}

func (h *GraphHandler) Evolution(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	evolutions, err := h.graph.Evolution(c.Request.Context(), getUserID(c), c.Param("id"), limit)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, evolutions)
}
