package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/labbench/backend/internal/application/dilution"
	"github.com/labbench/backend/internal/interfaces/http/middleware"
)

// DilutionHandler handles standard solution preparations and the notebook they are recorded in
type DilutionHandler struct {
	BaseHandler
	service *dilution.Service
}

// NewDilutionHandler creates a new DilutionHandler
func NewDilutionHandler(service *dilution.Service) *DilutionHandler {
	return &DilutionHandler{service: service}
}

// Run carries out a preparation
// POST /dilutions
func (h *DilutionHandler) Run(c *gin.Context) {
	var req dilution.ProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	entry, err := h.service.Run(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// Get returns one notebook entry
// GET /dilutions/:id
func (h *DilutionHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notebook entry ID format")
		return
	}

	entry, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// List returns notebook entries, newest first
// GET /dilutions?search=&page=&page_size=
func (h *DilutionHandler) List(c *gin.Context) {
	var req dilution.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}
