package handlers

import (
	"context"
	"net/http"
	"strconv"

	doctorRepo "github.com/Waleed-420/E-Clinical/database/repository/doctor"
	"github.com/Waleed-420/E-Clinical/models"
	"github.com/Waleed-420/E-Clinical/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// availabilityInvalidator drops a doctor's cached availability after a
// write that changes it.
type availabilityInvalidator interface {
	InvalidateDoctor(ctx context.Context, doctorID string)
}

// DoctorHandler exposes doctor profile and schedule management. The
// doctor record is the single owner of the weekly schedule.
type DoctorHandler struct {
	Repo         doctorRepo.DoctorRepository
	Availability availabilityInvalidator
}

func NewDoctorHandler(repo doctorRepo.DoctorRepository, avail availabilityInvalidator) *DoctorHandler {
	return &DoctorHandler{Repo: repo, Availability: avail}
}

// RegisterDoctor handles POST /api/doctors.
func (h *DoctorHandler) RegisterDoctor(c *gin.Context) {
	var body struct {
		Name      string  `json:"name" binding:"required"`
		Email     string  `json:"email" binding:"required,email"`
		Specialty string  `json:"specialty" binding:"required"`
		Fee       float64 `json:"fee" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, utils.InvalidInput("invalid request body: %v", err))
		return
	}

	doc := &models.Doctor{
		ID:        uuid.New().String(),
		Name:      body.Name,
		Email:     body.Email,
		Specialty: body.Specialty,
		Fee:       body.Fee,
	}
	if err := h.Repo.Create(c.Request.Context(), doc); err != nil {
		utils.RespondError(c, utils.StoreFailure(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "doctor": doc})
}

// GetDoctor handles GET /api/doctors/:id.
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	doc, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, utils.StoreFailure(err))
		return
	}
	if doc == nil {
		utils.RespondError(c, utils.NotFound("doctor %s not found", c.Param("id")))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "doctor": doc})
}

// UpdateSchedule handles PUT /api/doctors/:id/schedule. The weekly
// schedule is replaced wholesale; keys are ISO weekdays "1" (Monday)
// through "7" (Sunday). Interval shapes are not validated here beyond the
// weekday keys: the grid generator skips malformed intervals on read.
func (h *DoctorHandler) UpdateSchedule(c *gin.Context) {
	var body struct {
		Schedule map[string][]models.ScheduleInterval `json:"schedule" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, utils.InvalidInput("invalid request body: %v", err))
		return
	}
	for day := range body.Schedule {
		n, err := strconv.Atoi(day)
		if err != nil || n < 1 || n > 7 {
			utils.RespondError(c, utils.InvalidInput("schedule keys must be ISO weekdays 1-7, got %q", day))
			return
		}
	}

	err := h.Repo.UpdateSchedule(c.Request.Context(), c.Param("id"), body.Schedule)
	if err == doctorRepo.ErrNoDoctor {
		utils.RespondError(c, utils.NotFound("doctor %s not found", c.Param("id")))
		return
	}
	if err != nil {
		utils.RespondError(c, utils.StoreFailure(err))
		return
	}
	if h.Availability != nil {
		h.Availability.InvalidateDoctor(c.Request.Context(), c.Param("id"))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "schedule updated"})
}
