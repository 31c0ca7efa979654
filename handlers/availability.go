package handlers

import (
	"net/http"

	"github.com/Waleed-420/E-Clinical/services/availability"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler exposes the slot availability read API.
type AvailabilityHandler struct {
	Svc *availability.Service
}

func NewAvailabilityHandler(svc *availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Svc: svc}
}

// GetAvailability handles GET /api/doctors/:id/availability?date=YYYY-MM-DD.
// The response carries both the flat slot list and the grouped per-interval
// view.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	result, err := h.Svc.Resolve(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "availability": result})
}
