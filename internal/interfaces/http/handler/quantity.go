package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/labbench/backend/internal/application/dilution"
	"github.com/labbench/backend/internal/interfaces/http/middleware"
)

// QuantityHandler answers one-off calculations that leave no notebook trace
type QuantityHandler struct {
	BaseHandler
	service *dilution.Service
}

// NewQuantityHandler creates a new QuantityHandler
func NewQuantityHandler(service *dilution.Service) *QuantityHandler {
	return &QuantityHandler{service: service}
}

// Molarity computes the molarity of a weighed solute made up to a volume
// POST /quantities/molarity
func (h *QuantityHandler) Molarity(c *gin.Context) {
	var req dilution.MolarityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	q, err := h.service.Molarity(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, q)
}

// Convert re-expresses a reading in another unit
// POST /quantities/convert
func (h *QuantityHandler) Convert(c *gin.Context) {
	var req dilution.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	resp, err := h.service.Convert(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Units lists the unit codes Convert accepts
// GET /quantities/units
func (h *QuantityHandler) Units(c *gin.Context) {
	h.Success(c, h.service.Units())
}
