package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	"github.com/BruksfildServices01/registrar-queue/internal/auth"
	"github.com/BruksfildServices01/registrar-queue/internal/config"
	"github.com/BruksfildServices01/registrar-queue/internal/db"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/infra/lock"
	"github.com/BruksfildServices01/registrar-queue/internal/infra/memory"
	"github.com/BruksfildServices01/registrar-queue/internal/metrics"
)

const adminEmail = "admin@registrar.local"

type testServer struct {
	t       *testing.T
	handler http.Handler
	store   *memory.Store
}

func newTestServer(t *testing.T, ping func(context.Context) error) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := memory.New()
	log := zerolog.Nop()

	if err := db.Seed(context.Background(), s, s, db.AdminAccount{
		Name:     "Admin",
		Email:    adminEmail,
		Password: "admin-pass",
	}, log); err != nil {
		t.Fatalf("seed: %v", err)
	}

	dispatcher := audit.NewDispatcher(audit.New(s), log)
	t.Cleanup(dispatcher.Close)

	reg := prometheus.NewRegistry()
	cfg := &config.Config{CORSAllowedOrigin: "*"}

	r := gin.New()
	RegisterRoutes(r, Deps{
		Config:   cfg,
		Stores:   Stores{Appointments: s, Users: s, Catalog: s, Audit: s},
		Locker:   lock.NewLocalLocker(time.Second),
		Issuer:   auth.NewIssuer("test-secret", time.Hour),
		Audit:    dispatcher,
		Metrics:  metrics.NewCollector(reg),
		Gatherer: reg,
		Ping:     ping,
		Log:      log,
	})

	return &testServer{t: t, handler: r, store: s}
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			ts.t.Fatalf("encode: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
	return out
}

type authBody struct {
	Token string `json:"token"`
	User  struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user"`
}

type appointmentBody struct {
	Appointment struct {
		ID          string `json:"id"`
		Date        string `json:"date"`
		QueueNumber *int   `json:"queueNumber"`
	} `json:"appointment"`
}

type appointmentsBody struct {
	Appointments []struct {
		ID                string `json:"id"`
		GlobalQueueNumber *int   `json:"globalQueueNumber"`
	} `json:"appointments"`
}

func (ts *testServer) signup(name string) string {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name":     name,
		"email":    name + "@example.com",
		"password": "secret1",
		"role":     "admin",
	})
	if w.Code != http.StatusCreated {
		ts.t.Fatalf("signup %s: %d %s", name, w.Code, w.Body.String())
	}
	body := decode[authBody](ts.t, w)
	if body.User.Role != "client" {
		ts.t.Fatalf("self-registered accounts must be clients, got %s", body.User.Role)
	}
	return body.Token
}

func (ts *testServer) login(email, password string) string {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": password,
	})
	if w.Code != http.StatusOK {
		ts.t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	return decode[authBody](ts.t, w).Token
}

func (ts *testServer) book(token, date string) appointmentBody {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/api/appointments", token, map[string]any{
		"name":    "Citizen",
		"email":   "citizen@example.com",
		"service": "Birth Certificate",
		"date":    date,
	})
	if w.Code != http.StatusCreated {
		ts.t.Fatalf("book: %d %s", w.Code, w.Body.String())
	}
	return decode[appointmentBody](ts.t, w)
}

func TestQueueLifecycleOverHTTP(t *testing.T) {
	ts := newTestServer(t, nil)

	alice := ts.signup("alice")
	bob := ts.signup("bob")
	carol := ts.signup("carol")

	a := ts.book(alice, "2024-01-10")
	b := ts.book(bob, "2024-01-10")
	c := ts.book(carol, "2024-01-10")

	for i, ap := range []appointmentBody{a, b, c} {
		if ap.Appointment.QueueNumber == nil || *ap.Appointment.QueueNumber != i+1 {
			t.Fatalf("booking %d: expected queue number %d, got %v", i, i+1, ap.Appointment.QueueNumber)
		}
	}

	w := ts.do(http.MethodDelete, "/api/appointments/"+b.Appointment.ID, bob, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}
	if msg := decode[map[string]string](t, w)["message"]; msg != "Appointment cancelled successfully" {
		t.Fatalf("unexpected message %q", msg)
	}

	w = ts.do(http.MethodGet, "/api/queue/current", carol, nil)
	cur := decode[struct {
		QueueNumber *int `json:"queueNumber"`
	}](t, w)
	if cur.QueueNumber == nil || *cur.QueueNumber != 2 {
		t.Fatalf("carol should be second after bob cancelled, got %v", cur.QueueNumber)
	}
}

func TestCurrentQueueWithoutAppointment(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signup("dave")

	w := ts.do(http.MethodGet, "/api/queue/current", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var raw map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	if v, ok := raw["queueNumber"]; !ok || v != nil {
		t.Fatalf("expected explicit null queueNumber, got %v", raw)
	}
	if raw["message"] != "No active appointments" {
		t.Fatalf("unexpected message: %v", raw)
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	ts := newTestServer(t, nil)
	alice := ts.signup("alice")
	mallory := ts.signup("mallory")

	ap := ts.book(alice, "2024-01-10")
	path := "/api/appointments/" + ap.Appointment.ID

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		if w := ts.do(method, path, mallory, nil); w.Code != http.StatusNotFound {
			t.Fatalf("%s by non-owner: expected 404, got %d", method, w.Code)
		}
	}

	w := ts.do(http.MethodPut, path, mallory, map[string]any{
		"name": "x", "email": "x@example.com", "service": "s", "date": "2024-01-11",
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("update by non-owner: expected 404, got %d", w.Code)
	}
}

func TestAdminGlobalQueue(t *testing.T) {
	ts := newTestServer(t, nil)
	alice := ts.signup("alice")

	later := ts.book(alice, "2024-01-12")
	earlier := ts.book(alice, "2024-01-10")

	if w := ts.do(http.MethodGet, "/api/queue/all", alice, nil); w.Code != http.StatusForbidden {
		t.Fatalf("client on admin view: expected 403, got %d", w.Code)
	}

	admin := ts.login(adminEmail, "admin-pass")
	w := ts.do(http.MethodGet, "/api/queue/all", admin, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin queue: %d %s", w.Code, w.Body.String())
	}

	body := decode[appointmentsBody](t, w)
	if len(body.Appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(body.Appointments))
	}
	if body.Appointments[0].ID != earlier.Appointment.ID || body.Appointments[1].ID != later.Appointment.ID {
		t.Fatalf("global queue must follow date order")
	}
	for i, ap := range body.Appointments {
		if ap.GlobalQueueNumber == nil || *ap.GlobalQueueNumber != i+1 {
			t.Fatalf("position %d: unexpected global number %v", i, ap.GlobalQueueNumber)
		}
	}
}

func TestValidationAndAuthErrors(t *testing.T) {
	ts := newTestServer(t, nil)
	token := ts.signup("erin")

	w := ts.do(http.MethodPost, "/api/appointments", token, map[string]any{"name": "only"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: expected 400, got %d", w.Code)
	}

	w = ts.do(http.MethodPost, "/api/appointments", token, map[string]any{
		"name": "n", "email": "n@example.com", "service": "s", "date": "January 10",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", w.Code)
	}

	if w := ts.do(http.MethodGet, "/api/appointments/my-appointments", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", w.Code)
	}

	w = ts.do(http.MethodPost, "/api/auth/signup", "", map[string]any{
		"name": "erin", "email": "erin@example.com", "password": "secret1",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate signup: expected 400, got %d", w.Code)
	}

	w = ts.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "erin@example.com", "password": "wrong-pass",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", w.Code)
	}
}

func TestCatalogRoutes(t *testing.T) {
	ts := newTestServer(t, nil)

	w := ts.do(http.MethodGet, "/api/services", "", nil)
	services := decode[struct {
		Services []struct {
			ID string `json:"id"`
		} `json:"services"`
	}](t, w)
	if len(services.Services) != 4 {
		t.Fatalf("expected seeded services, got %d", len(services.Services))
	}

	if w := ts.do(http.MethodGet, "/api/services/nope", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("unknown service: expected 404, got %d", w.Code)
	}

	admin := ts.login(adminEmail, "admin-pass")
	w = ts.do(http.MethodPost, "/api/admin/availability", admin, map[string]any{
		"date": "2024-01-10", "time": "09:00",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("availability: %d %s", w.Code, w.Body.String())
	}
	slots := decode[struct {
		Availability struct {
			Slots int `json:"slots"`
		} `json:"availability"`
	}](t, w)
	if slots.Availability.Slots != 10 {
		t.Fatalf("expected default of 10 slots, got %d", slots.Availability.Slots)
	}
}

func TestAvailabilityKeepsExplicitZeroSlots(t *testing.T) {
	ts := newTestServer(t, nil)
	admin := ts.login(adminEmail, "admin-pass")

	type body struct {
		Availability struct {
			ID    string `json:"id"`
			Slots int    `json:"slots"`
		} `json:"availability"`
	}

	w := ts.do(http.MethodPost, "/api/admin/availability", admin, map[string]any{
		"date": "2024-01-10", "time": "10:00", "slots": 0,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("availability: %d %s", w.Code, w.Body.String())
	}
	first := decode[body](t, w)
	if first.Availability.Slots != 0 {
		t.Fatalf("explicit 0 must be kept, got %d", first.Availability.Slots)
	}

	// the same date and time again replaces the count on the stored record
	w = ts.do(http.MethodPost, "/api/admin/availability", admin, map[string]any{
		"date": "2024-01-10", "time": "10:00", "slots": 4,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("availability again: %d %s", w.Code, w.Body.String())
	}
	second := decode[body](t, w)
	if second.Availability.Slots != 4 || second.Availability.ID != first.Availability.ID {
		t.Fatalf("expected slot %s updated to 4, got %+v", first.Availability.ID, second.Availability)
	}

	if w := ts.do(http.MethodPost, "/api/admin/availability", admin, map[string]any{
		"date": "2024-01-10", "time": "11:00", "slots": -1,
	}); w.Code != http.StatusBadRequest {
		t.Fatalf("negative slots: expected 400, got %d", w.Code)
	}
}

func TestCreateServiceRejectsDuplicateID(t *testing.T) {
	ts := newTestServer(t, nil)
	admin := ts.login(adminEmail, "admin-pass")

	svc := map[string]any{"id": "passport", "name": "Passport"}
	if w := ts.do(http.MethodPost, "/api/admin/services", admin, svc); w.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}

	w := ts.do(http.MethodPost, "/api/admin/services", admin, svc)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d %s", w.Code, w.Body.String())
	}
	if got := decode[httperr.HTTPError](t, w); got.Code != "service_already_exists" {
		t.Fatalf("error code = %q", got.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, nil)
	if w := ts.do(http.MethodGet, "/api/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}

	token := ts.signup("frank")
	ts.book(token, "2024-01-10")

	w := ts.do(http.MethodGet, "/metrics", "", nil)
	if !bytes.Contains(w.Body.Bytes(), []byte("registrar_queue_renumber_total")) {
		t.Fatalf("expected renumber metrics, got %s", w.Body.String())
	}

	down := newTestServer(t, func(context.Context) error { return errors.New("down") })
	if w := down.do(http.MethodGet, "/health", "", nil); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when the store is down, got %d", w.Code)
	}
}
