package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates all route handlers for registration.
type HandlerBundle struct {
	// Auth endpoints.
	SignupHandler     gin.HandlerFunc
	SigninHandler     gin.HandlerFunc
	CheckEmailHandler gin.HandlerFunc

	// Doctor endpoints.
	RegisterDoctorHandler gin.HandlerFunc
	GetDoctorHandler      gin.HandlerFunc
	UpdateScheduleHandler gin.HandlerFunc

	// Availability and booking endpoints.
	GetAvailabilityHandler         gin.HandlerFunc
	BookAppointmentHandler         gin.HandlerFunc
	ListAppointmentsHandler        gin.HandlerFunc
	UpdateAppointmentStatusHandler gin.HandlerFunc
}
