package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/payment"
	"github.com/BruksfildServices01/salon-scheduler/internal/testutil"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type server struct {
	t     *testing.T
	r     *gin.Engine
	token string
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	if err := dbpkg.Seed(db, "admin@salon.com", "Admin@123"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{JWTSecret: "test-secret"}
	checkout, err := payment.NewMercadoPago("", nil, nil)
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       db,
		Config:   cfg,
		Locker:   lock.NewLocalLocker(lock.Options{TTL: time.Second}),
		Notifier: notify.LogOnly{},
		Checkout: checkout,
		Today:    timezone.Fixed("2025-03-01"),
	})

	return &server{t: t, r: r}
}

func (s *server) do(method, path string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			s.t.Fatalf("encode: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func (s *server) login() {
	s.t.Helper()

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@salon.com",
		"password": "Admin@123",
	})
	if w.Code != http.StatusOK {
		s.t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	decode(s.t, w, &resp)
	s.token = resp.Token
}

func (s *server) firstServiceID() string {
	s.t.Helper()

	var list struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	decode(s.t, s.do(http.MethodGet, "/api/public/services", nil), &list)
	if len(list.Data) == 0 {
		s.t.Fatalf("no seeded services")
	}
	return list.Data[0].ID
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	if w := s.do(http.MethodGet, "/health", nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "admin@salon.com",
		"password": "nope",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	if w := s.do(http.MethodGet, "/api/admin/slots?date=2025-03-10", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestBookingFlow(t *testing.T) {
	s := newServer(t)
	s.login()
	serviceID := s.firstServiceID()

	// general slot, then duplicate
	w := s.do(http.MethodPost, "/api/admin/slots", map[string]string{"date": "2025-03-10", "time": "09:00"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add general: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodPost, "/api/admin/slots", map[string]string{"date": "2025-03-10", "time": "09:00"})
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate: expected 409, got %d", w.Code)
	}
	var errBody struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &errBody)
	if errBody.Code != "duplicate_slot" {
		t.Fatalf("expected duplicate_slot, got %q", errBody.Code)
	}

	// move it into the service calendar
	w = s.do(http.MethodPost, "/api/admin/services/"+serviceID+"/slots", map[string]string{"date": "2025-03-10", "time": "09:00"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add service slot: %d %s", w.Code, w.Body.String())
	}

	var general struct {
		Total int `json:"total"`
	}
	decode(t, s.do(http.MethodGet, "/api/admin/slots?date=2025-03-10", nil), &general)
	if general.Total != 0 {
		t.Fatalf("general pool should be empty, got %d", general.Total)
	}

	var times struct {
		Times []string `json:"times"`
	}
	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/times?date=2025-03-10", nil), &times)
	if len(times.Times) != 1 || times.Times[0] != "09:00" {
		t.Fatalf("expected [09:00], got %v", times.Times)
	}

	var dates struct {
		Dates []string `json:"dates"`
	}
	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/dates", nil), &dates)
	if len(dates.Dates) != 1 || dates.Dates[0] != "2025-03-10" {
		t.Fatalf("expected [2025-03-10], got %v", dates.Dates)
	}

	var suggestion struct {
		Suggestion *struct {
			Date string `json:"date"`
			Time string `json:"time"`
		} `json:"suggestion"`
	}
	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/suggestion", nil), &suggestion)
	if suggestion.Suggestion == nil || suggestion.Suggestion.Time != "09:00" {
		t.Fatalf("unexpected suggestion %+v", suggestion.Suggestion)
	}

	// book it
	book := map[string]string{
		"client_name": "Ana",
		"service_id":  serviceID,
		"date":        "2025-03-10",
		"time":        "09:00",
	}
	w = s.do(http.MethodPost, "/api/public/appointments", book)
	if w.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", w.Code, w.Body.String())
	}
	var ap struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, w, &ap)
	if ap.Status != "pending" {
		t.Fatalf("expected pending, got %q", ap.Status)
	}

	w = s.do(http.MethodPost, "/api/public/appointments", book)
	if w.Code != http.StatusConflict {
		t.Fatalf("second booking: expected 409, got %d", w.Code)
	}

	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/times?date=2025-03-10", nil), &times)
	if len(times.Times) != 0 {
		t.Fatalf("slot should be consumed, got %v", times.Times)
	}

	// admin views
	var list struct {
		Data []struct {
			ID          string `json:"id"`
			ServiceName string `json:"service_name"`
		} `json:"data"`
	}
	decode(t, s.do(http.MethodGet, "/api/admin/appointments?date=2025-03-10", nil), &list)
	if len(list.Data) != 1 || list.Data[0].ID != ap.ID || list.Data[0].ServiceName == "" {
		t.Fatalf("unexpected list %+v", list.Data)
	}

	w = s.do(http.MethodPatch, "/api/admin/appointments/"+ap.ID+"/status", map[string]string{"status": "confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodPatch, "/api/admin/appointments/"+ap.ID+"/status", map[string]string{"status": "pending"})
	if w.Code != http.StatusConflict {
		t.Fatalf("back to pending: expected 409, got %d", w.Code)
	}

	// checkout is off without a token
	w = s.do(http.MethodPost, "/api/public/appointments/"+ap.ID+"/checkout", nil)
	if w.Code != http.StatusNotImplemented {
		t.Fatalf("checkout: expected 501, got %d", w.Code)
	}

	// nothing left to reconcile
	var report struct {
		Checked int `json:"checked"`
	}
	decode(t, s.do(http.MethodPost, "/api/admin/consumptions/reconcile", nil), &report)
	if report.Checked != 0 {
		t.Fatalf("expected nothing to reconcile, got %d", report.Checked)
	}
}

func TestBook_InvalidInput(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodPost, "/api/public/appointments", map[string]string{
		"client_name": "Ana",
		"service_id":  "x",
		"date":        "2025-03-10",
		"time":        "9:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestSettingsAndServices(t *testing.T) {
	s := newServer(t)
	s.login()

	w := s.do(http.MethodPatch, "/api/admin/settings", map[string]string{"card_enabled": "false"})
	if w.Code != http.StatusOK {
		t.Fatalf("settings: %d %s", w.Code, w.Body.String())
	}
	var settings map[string]string
	decode(t, s.do(http.MethodGet, "/api/public/settings", nil), &settings)
	if settings["card_enabled"] != "false" || settings["salon_address"] == "" {
		t.Fatalf("unexpected settings %v", settings)
	}

	if w := s.do(http.MethodPatch, "/api/admin/settings", map[string]string{"theme": "dark"}); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown key: expected 400, got %d", w.Code)
	}

	w = s.do(http.MethodPost, "/api/admin/services", map[string]any{"name": "Hidratação", "duration": "40min", "price": 70})
	if w.Code != http.StatusCreated {
		t.Fatalf("create service: %d %s", w.Code, w.Body.String())
	}
	var svc struct {
		ID string `json:"id"`
	}
	decode(t, w, &svc)

	if w := s.do(http.MethodPatch, "/api/admin/services/"+svc.ID, map[string]any{"price": 75}); w.Code != http.StatusOK {
		t.Fatalf("update service: %d", w.Code)
	}
	if w := s.do(http.MethodDelete, "/api/admin/services/"+svc.ID, nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete service: %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/admin/services/"+svc.ID, nil); w.Code != http.StatusNotFound {
		t.Fatalf("deleted service: expected 404, got %d", w.Code)
	}
}

func TestToggleAvailability_ByLayer(t *testing.T) {
	s := newServer(t)
	s.login()

	w := s.do(http.MethodPost, "/api/admin/slots", map[string]string{"date": "2025-03-10", "time": "10:00"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add general: %d", w.Code)
	}
	var slot struct {
		ID string `json:"id"`
	}
	decode(t, w, &slot)

	w = s.do(http.MethodPatch, "/api/admin/availability", map[string]any{"layer": "general", "slot_id": slot.ID, "is_available": false})
	if w.Code != http.StatusNoContent {
		t.Fatalf("toggle: %d %s", w.Code, w.Body.String())
	}

	var list struct {
		Data []struct {
			IsAvailable bool `json:"is_available"`
		} `json:"data"`
	}
	decode(t, s.do(http.MethodGet, "/api/admin/slots?date=2025-03-10", nil), &list)
	if len(list.Data) != 1 || list.Data[0].IsAvailable {
		t.Fatalf("expected one unavailable row, got %+v", list.Data)
	}

	w = s.do(http.MethodPatch, "/api/admin/availability", map[string]any{"layer": "weekly", "slot_id": slot.ID, "is_available": true})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad layer: expected 400, got %d", w.Code)
	}
}

func TestAvailability_ConfiguredFlags(t *testing.T) {
	s := newServer(t)
	s.login()
	serviceID := s.firstServiceID()

	w := s.do(http.MethodPost, "/api/admin/slots", map[string]string{"date": "2025-03-10", "time": "10:00"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add general: %d %s", w.Code, w.Body.String())
	}

	type timesBody struct {
		Times      []string `json:"times"`
		Configured bool     `json:"configured"`
	}
	type suggestionBody struct {
		Suggestion *struct {
			Time string `json:"time"`
		} `json:"suggestion"`
		Configured bool `json:"configured"`
	}

	// general pool only
	var times timesBody
	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/times?date=2025-03-10", nil), &times)
	if times.Configured || len(times.Times) != 1 {
		t.Fatalf("expected general pool times, got %+v", times)
	}
	var suggestion suggestionBody
	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/suggestion", nil), &suggestion)
	if suggestion.Configured || suggestion.Suggestion != nil {
		t.Fatalf("expected unconfigured service, got %+v", suggestion)
	}

	// own calendar on another day, then book its only slot
	w = s.do(http.MethodPost, "/api/admin/services/"+serviceID+"/slots", map[string]string{"date": "2025-03-11", "time": "09:00"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add service slot: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodPost, "/api/public/appointments", map[string]string{
		"client_name": "Ana",
		"service_id":  serviceID,
		"date":        "2025-03-11",
		"time":        "09:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", w.Code, w.Body.String())
	}

	times = timesBody{}
	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/times?date=2025-03-11", nil), &times)
	if !times.Configured || len(times.Times) != 0 {
		t.Fatalf("expected configured day with nothing free, got %+v", times)
	}
	times = timesBody{}
	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/times?date=2025-03-10", nil), &times)
	if times.Configured {
		t.Fatalf("2025-03-10 has no service rows, got %+v", times)
	}

	suggestion = suggestionBody{}
	decode(t, s.do(http.MethodGet, "/api/public/services/"+serviceID+"/suggestion", nil), &suggestion)
	if !suggestion.Configured || suggestion.Suggestion != nil {
		t.Fatalf("expected configured service with no free slot, got %+v", suggestion)
	}
}

func TestBook_PastDateRejected(t *testing.T) {
	s := newServer(t)
	s.login()
	serviceID := s.firstServiceID()

	w := s.do(http.MethodPost, "/api/admin/slots", map[string]string{"date": "2025-02-20", "time": "09:00"})
	if w.Code != http.StatusCreated {
		t.Fatalf("add general: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/public/appointments", map[string]string{
		"client_name": "Ana",
		"service_id":  serviceID,
		"date":        "2025-02-20",
		"time":        "09:00",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("past date: expected 409, got %d %s", w.Code, w.Body.String())
	}
	var errBody struct {
		Code string `json:"error_code"`
	}
	decode(t, w, &errBody)
	if errBody.Code != "slot_unavailable" {
		t.Fatalf("expected slot_unavailable, got %q", errBody.Code)
	}
}
