package handlers

import (
	"net/http"

	"github.com/Waleed-420/E-Clinical/services/booking"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes appointment booking and lifecycle endpoints.
type BookingHandler struct {
	Svc    booking.BookingService
	Logger *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Svc: svc, Logger: logger}
}

// BookAppointment handles POST /api/appointments.
func (h *BookingHandler) BookAppointment(c *gin.Context) {
	var req booking.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, utils.InvalidInput("invalid request body: %v", err))
		return
	}

	appt, err := h.Svc.Book(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "appointment": appt})
}

// ListAppointments handles GET /api/appointments?patientId=|doctorId=.
func (h *BookingHandler) ListAppointments(c *gin.Context) {
	patientID := c.Query("patientId")
	doctorID := c.Query("doctorId")

	var err error
	var appts interface{}
	switch {
	case patientID != "":
		appts, err = h.Svc.ListByPatient(c.Request.Context(), patientID)
	case doctorID != "":
		appts, err = h.Svc.ListByDoctor(c.Request.Context(), doctorID)
	default:
		err = utils.InvalidInput("patientId or doctorId query parameter is required")
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "appointments": appts})
}

// UpdateAppointmentStatus handles PATCH /api/appointments/:id/status.
func (h *BookingHandler) UpdateAppointmentStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, utils.InvalidInput("status is required"))
		return
	}

	appt, err := h.Svc.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "appointment": appt})
}
