package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/slots"
)

// SlotsHandler is the admin side of availability: the general pool and
// each service's own calendar.
type SlotsHandler struct {
	mutator *slots.Mutator
}

func NewSlotsHandler(mutator *slots.Mutator) *SlotsHandler {
	return &SlotsHandler{mutator: mutator}
}

type SlotRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

type AvailabilityRequest struct {
	IsAvailable *bool `json:"is_available"`
}

type LayerAvailabilityRequest struct {
	Layer       string `json:"layer"`
	SlotID      string `json:"slot_id"`
	IsAvailable *bool  `json:"is_available"`
}

type TimeAvailabilityRequest struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	IsAvailable *bool  `json:"is_available"`
}

func actor(c *gin.Context) slots.Actor {
	return slots.Actor{UserID: middleware.UserID(c)}
}

// --------- General pool ---------

func (h *SlotsHandler) ListGeneral(c *gin.Context) {
	rows, err := h.mutator.ListGeneralSlots(c.Request.Context(), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_slots", "Erro ao listar horários.")
		return
	}
	httpresp.List(c, rows)
}

func (h *SlotsHandler) AddGeneral(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}

	slot, err := h.mutator.AddGeneralSlot(c.Request.Context(), actor(c), req.Date, req.Time)
	if err != nil {
		httperr.FromError(c, err, "failed_to_add_slot", "Erro ao adicionar horário.")
		return
	}
	httpresp.Created(c, slot)
}

func (h *SlotsHandler) RemoveGeneral(c *gin.Context) {
	if err := h.mutator.RemoveGeneralSlot(c.Request.Context(), actor(c), c.Param("id")); err != nil {
		httperr.FromError(c, err, "failed_to_remove_slot", "Erro ao remover horário.")
		return
	}
	httpresp.NoContent(c)
}

func (h *SlotsHandler) ToggleGeneral(c *gin.Context) {
	h.toggle(c, scheduling.LayerGeneral)
}

func (h *SlotsHandler) ToggleGeneralByTime(c *gin.Context) {
	var req TimeAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}

	if err := h.mutator.ToggleGeneralByTime(c.Request.Context(), actor(c), req.Date, req.Time, *req.IsAvailable); err != nil {
		httperr.FromError(c, err, "failed_to_toggle_slot", "Erro ao atualizar horário.")
		return
	}
	httpresp.NoContent(c)
}

// --------- Service calendar ---------

func (h *SlotsHandler) ListService(c *gin.Context) {
	rows, err := h.mutator.ListServiceSlots(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_list_slots", "Erro ao listar horários.")
		return
	}
	httpresp.List(c, rows)
}

func (h *SlotsHandler) AddService(c *gin.Context) {
	var req SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}

	slot, err := h.mutator.AddServiceSlot(c.Request.Context(), actor(c), c.Param("id"), req.Date, req.Time)
	if err != nil {
		httperr.FromError(c, err, "failed_to_add_slot", "Erro ao adicionar horário.")
		return
	}
	httpresp.Created(c, slot)
}

func (h *SlotsHandler) RemoveService(c *gin.Context) {
	err := h.mutator.RemoveServiceSlot(c.Request.Context(), actor(c), c.Param("id"), c.Param("slotId"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_remove_slot", "Erro ao remover horário.")
		return
	}
	httpresp.NoContent(c)
}

func (h *SlotsHandler) ToggleService(c *gin.Context) {
	h.toggle(c, scheduling.LayerService)
}

// Toggle addresses any row by layer and id.
func (h *SlotsHandler) Toggle(c *gin.Context) {
	var req LayerAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil || req.SlotID == "" {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}

	layer, err := scheduling.ParseLayer(req.Layer)
	if err != nil {
		httperr.FromError(c, err, "invalid_layer", "Camada inválida.")
		return
	}

	if err := h.mutator.ToggleAvailability(c.Request.Context(), actor(c), layer, req.SlotID, *req.IsAvailable); err != nil {
		httperr.FromError(c, err, "failed_to_toggle_slot", "Erro ao atualizar horário.")
		return
	}
	httpresp.NoContent(c)
}

func (h *SlotsHandler) toggle(c *gin.Context, layer scheduling.Layer) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}

	if err := h.mutator.ToggleAvailability(c.Request.Context(), actor(c), layer, c.Param("id"), *req.IsAvailable); err != nil {
		httperr.FromError(c, err, "failed_to_toggle_slot", "Erro ao atualizar horário.")
		return
	}
	httpresp.NoContent(c)
}
