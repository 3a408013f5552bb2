package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	listByDate *booking.ListAppointmentsByDate
	setStatus  *booking.UpdateAppointmentStatus
	reconcile  *booking.ReconcileConsumptions
}

func NewAppointmentHandler(
	listByDate *booking.ListAppointmentsByDate,
	setStatus *booking.UpdateAppointmentStatus,
	reconcile *booking.ReconcileConsumptions,
) *AppointmentHandler {
	return &AppointmentHandler{
		listByDate: listByDate,
		setStatus:  setStatus,
		reconcile:  reconcile,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	list, err := h.listByDate.Execute(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}
	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}

	ap, err := h.setStatus.Execute(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Status)
	if err != nil {
		httperr.FromError(c, err, "failed_to_update_status", "Erro ao atualizar agendamento.")
		return
	}
	httpresp.OK(c, ap)
}

// ======================================================
// RECONCILE (manual trigger of the background job)
// ======================================================

func (h *AppointmentHandler) Reconcile(c *gin.Context) {
	report, err := h.reconcile.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "reconcile_failed", "Erro ao reconciliar horários.")
		return
	}
	httpresp.OK(c, report)
}
