package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewServiceHandler(repo catalog.Repository, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{repo: repo, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name     string  `json:"name"`
	Duration string  `json:"duration"`
	Price    float64 `json:"price"`
}

type UpdateServiceRequest struct {
	Name     *string  `json:"name,omitempty"`
	Duration *string  `json:"duration,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	svc, err := h.repo.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_service", "Erro ao carregar serviço.")
		return
	}
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}
	if err := catalog.ValidateService(req.Name, req.Price); err != nil {
		httperr.FromError(c, err, "invalid_service", "Serviço inválido.")
		return
	}

	svc := models.Service{
		Name:     strings.TrimSpace(req.Name),
		Duration: strings.TrimSpace(req.Duration),
		Price:    req.Price,
	}
	if err := h.repo.CreateService(c.Request.Context(), &svc); err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(middleware.UserID(c)),
		Action:   "service_created",
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: req,
	})

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	svc, err := h.repo.GetService(ctx, c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "failed_to_get_service", "Erro ao carregar serviço.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}

	if req.Name != nil {
		svc.Name = strings.TrimSpace(*req.Name)
	}
	if req.Duration != nil {
		svc.Duration = strings.TrimSpace(*req.Duration)
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if err := catalog.ValidateService(svc.Name, svc.Price); err != nil {
		httperr.FromError(c, err, "invalid_service", "Serviço inválido.")
		return
	}

	if err := h.repo.SaveService(ctx, svc); err != nil {
		httperr.FromError(c, err, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(middleware.UserID(c)),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &svc.ID,
		Metadata: req,
	})

	httpresp.OK(c, svc)
}

// Delete keeps the service's slots and appointments.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.repo.DeleteService(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err, "failed_to_delete_service", "Erro ao remover serviço.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(middleware.UserID(c)),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &id,
	})

	httpresp.NoContent(c)
}
