package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/pkf/internal/pkg/errcode"
	"github.com/xxxsen/pkf/internal/pkg/response"
	"github.com/xxxsen/pkf/internal/service"
)

type DocumentHandler struct {
	documents *service.DocumentService
}

func NewDocumentHandler(documents *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

type pasteRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
	Title       string `json:"title"`
	SourceURL   string `json:"source_url"`
	SourceName  string `json:"source_name"`
	Author      string `json:"author"`
}

func (h *DocumentHandler) Paste(c *gin.Context) {
	var req pasteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Content == "" {
		response.Error(c, errcode.ErrInvalid, "content required")
		return
	}
	doc, err := h.documents.Paste(c.Request.Context(), getUserID(c), service.PasteRequest{
		Content:     req.Content,
		ContentType: req.ContentType,
		Title:       req.Title,
		SourceURL:   req.SourceURL,
		SourceName:  req.SourceName,
		Author:      req.Author,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) List(c *gin.Context) {
	limit := uint(queryInt(c, "limit", 20))
	offset := uint(queryInt(c, "offset", 0))
	docs, err := h.documents.List(c.Request.Context(), getUserID(c), limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, docs)
}

func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.documents.Get(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}

func (h *DocumentHandler) Chunks(c *gin.Context) {
	chunks, err := h.documents.Chunks(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, chunks)
}

func (h *DocumentHandler) Delete(c *gin.Context) {
	if err := h.documents.Delete(c.Request.Context(), getUserID(c), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

func (h *DocumentHandler) Reprocess(c *gin.Context) {
	doc, err := h.documents.Reprocess(c.Request.Context(), getUserID(c), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, doc)
}
