package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/pkf/internal/pkg/errcode"
	"github.com/xxxsen/pkf/internal/pkg/response"
	"github.com/xxxsen/pkf/internal/service"
)

type ContradictionHandler struct {
	contradictions *service.ContradictionService
}

func NewContradictionHandler(contradictions *service.ContradictionService) *ContradictionHandler {
	return &ContradictionHandler{contradictions: contradictions}
}

func (h *ContradictionHandler) List(c *gin.Context) {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)
	detections, err := h.contradictions.List(c.Request.Context(), getUserID(c), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, detections)
}

type confirmRequest struct {
	Confirmed *bool `json:"confirmed"`
}

func (h *ContradictionHandler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if err := h.contradictions.Confirm(c.Request.Context(), getUserID(c), c.Param("id"), req.Confirmed); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"updated": true})
}
