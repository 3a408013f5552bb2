package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/availability"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	resolver *availability.Resolver
	book     *booking.BookAppointment
	catalog  catalog.Repository
	checkout *payment.Checkout
}

func NewPublicHandler(
	resolver *availability.Resolver,
	book *booking.BookAppointment,
	catalog catalog.Repository,
	checkout *payment.Checkout,
) *PublicHandler {
	return &PublicHandler{
		resolver: resolver,
		book:     book,
		catalog:  catalog,
		checkout: checkout,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicBookRequest struct {
	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone"`
	ServiceID   string `json:"service_id"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM
}

////////////////////////////////////////////////////////
// SERVICES + SETTINGS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListServices(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	httpresp.List(c, services)
}

func (h *PublicHandler) Settings(c *gin.Context) {
	settings, err := h.catalog.ListSettings(c.Request.Context())
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

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Dates(c *gin.Context) {
	serviceID := c.Param("id")

	dates, err := h.resolver.ResolveDates(c.Request.Context(), serviceID)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Erro ao calcular datas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_id": serviceID,
		"dates":      dates,
	})
}

func (h *PublicHandler) Times(c *gin.Context) {
	serviceID := c.Param("id")
	date := strings.TrimSpace(c.Query("date"))

	times, err := h.resolver.ResolveTimes(c.Request.Context(), serviceID, date)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	// configured: the service's own calendar drives this date.
	configured, err := h.resolver.HasServiceConfiguration(c.Request.Context(), serviceID, date)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_id": serviceID,
		"date":       date,
		"times":      times,
		"configured": configured,
	})
}

func (h *PublicHandler) Suggestion(c *gin.Context) {
	ctx := c.Request.Context()
	serviceID := c.Param("id")

	s, err := h.resolver.SuggestSlot(ctx, serviceID)
	if err != nil {
		httperr.Internal(c, "suggestion_failed", "Erro ao sugerir horário.")
		return
	}

	// A configured service with a null suggestion is fully booked, which
	// the client shows differently from a service using the general pool.
	configured, err := h.resolver.HasAnyServiceConfiguration(ctx, serviceID)
	if err != nil {
		httperr.Internal(c, "suggestion_failed", "Erro ao sugerir horário.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestion": s,
		"configured": configured,
	})
}

////////////////////////////////////////////////////////
// BOOK
////////////////////////////////////////////////////////

func (h *PublicHandler) Book(c *gin.Context) {
	var req PublicBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, httperr.CodeValidation, "Dados inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), booking.BookInput{
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ServiceID:   req.ServiceID,
		Date:        strings.TrimSpace(req.Date),
		Time:        strings.TrimSpace(req.Time),
	})
	if err != nil {
		httperr.FromError(c, err, "booking_failed", "Erro ao realizar agendamento.")
		return
	}

	httpresp.Created(c, ap)
}

func (h *PublicHandler) Checkout(c *gin.Context) {
	link, err := h.checkout.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.FromError(c, err, "checkout_failed", "Erro ao gerar pagamento.")
		return
	}
	httpresp.OK(c, link)
}
