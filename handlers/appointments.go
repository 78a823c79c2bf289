package handlers

import (
	"net/http"

	appointmentRepo "clinicvoice/database/repository/appointment"
	"clinicvoice/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AppointmentHandler exposes booked appointments to operators.
type AppointmentHandler struct {
	Repo   appointmentRepo.AppointmentRepository
	Logger *zap.Logger
}

func NewAppointmentHandler(repo appointmentRepo.AppointmentRepository, logger *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{Repo: repo, Logger: logger}
}

// ListAppointments handles GET /api/appointments.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	appointments, err := h.Repo.List(c.Request.Context())
	if err != nil {
		getLogger(c, h.Logger).Error("ListAppointments: failed to read store", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to load appointments", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":        len(appointments),
		"appointments": appointments,
	})
}
