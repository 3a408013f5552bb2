package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

type SettingsHandler struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
}

func NewSettingsHandler(repo catalog.Repository, audit *audit.Dispatcher) *SettingsHandler {
	return &SettingsHandler{repo: repo, audit: audit}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.repo.ListSettings(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_get_settings", "Erro ao carregar configurações.")
		return
	}

	out := make(map[string]string, len(settings))
	for _, s := range settings {
		out[s.Key] = s.Value
	}
	httpresp.OK(c, out)
}

// Update takes a partial map of known keys.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}
	if err := catalog.ValidateSettings(req); err != nil {
		httperr.FromError(c, err, "invalid_settings", "Configuração inválida.")
		return
	}

	ctx := c.Request.Context()
	for k, v := range req {
		if err := h.repo.UpsertSetting(ctx, k, v); err != nil {
			httperr.Internal(c, "failed_to_update_settings", "Erro ao salvar configurações.")
			return
		}
	}

	h.audit.Dispatch(audit.Event{
		UserID:   audit.Ref(middleware.UserID(c)),
		Action:   "settings_updated",
		Entity:   "salon_settings",
		Metadata: req,
	})

	h.Get(c)
}
