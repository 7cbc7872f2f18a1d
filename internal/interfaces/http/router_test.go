package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/application/dashboard"
	"github.com/jhoicas/stock-console/internal/application/dto"
	"github.com/jhoicas/stock-console/internal/application/journal"
	"github.com/jhoicas/stock-console/internal/application/notify"
	"github.com/jhoicas/stock-console/internal/application/operation"
	"github.com/jhoicas/stock-console/internal/application/selector"
	"github.com/jhoicas/stock-console/internal/application/session"
	"github.com/jhoicas/stock-console/internal/infrastructure/excel"
	"github.com/jhoicas/stock-console/internal/infrastructure/stockapi"
	apphttp "github.com/jhoicas/stock-console/internal/interfaces/http"
	"github.com/jhoicas/stock-console/pkg/i18n"
	pkgjwt "github.com/jhoicas/stock-console/pkg/jwt"
	"github.com/jhoicas/stock-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend falso
// ──────────────────────────────────────────────────────────────────────────────

type fakeBackend struct {
	t       *testing.T
	token   string
	expired atomic.Bool
	calls   atomic.Int32

	mu      sync.Mutex
	created []map[string]any
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.calls.Add(1)
	write := func(status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}

	if r.URL.Path == "/api/auth/login" {
		write(http.StatusOK, map[string]string{"access_token": b.token, "token_type": "bearer"})
		return
	}
	if b.expired.Load() || r.Header.Get("Authorization") != "Bearer "+b.token {
		write(http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
		return
	}

	switch {
	case r.URL.Path == "/api/auth/me":
		write(http.StatusOK, map[string]any{"id": "u1", "email": "op@example.com", "is_active": true, "created_at": "2024-01-01T10:00:00"})
	case r.URL.Path == "/api/stock/summary":
		write(http.StatusOK, map[string]int{"total_products": 12, "total_stock": 340, "total_defect": 5})
	case r.URL.Path == "/api/products/":
		write(http.StatusOK, map[string]any{
			"items": []map[string]any{{"id": "p1", "barcode": "4607001", "gtin": "04607001", "seller_sku": "TS-1", "brand": "Acme", "stock_quantity": 10, "defect_quantity": 1}},
			"total": 1, "page": 1, "page_size": 20, "pages": 1,
		})
	case r.URL.Path == "/api/stock/movements" && r.Method == http.MethodGet:
		write(http.StatusOK, map[string]any{"items": []any{}, "total": 0, "page": 1, "page_size": 20, "pages": 0})
	case r.URL.Path == "/api/stock/movements" && r.Method == http.MethodPost:
		var body map[string]any
		require.NoError(b.t, json.NewDecoder(r.Body).Decode(&body))
		b.mu.Lock()
		b.created = append(b.created, body)
		b.mu.Unlock()
		body["id"] = "m1"
		body["user_id"] = "u1"
		body["created_at"] = "2024-01-10T09:30:00"
		write(http.StatusCreated, body)
	case r.URL.Path == "/api/sources/":
		write(http.StatusOK, []map[string]any{{"id": "s1", "name": "ПВЗ Центр"}})
	case r.URL.Path == "/api/distribution-centers/":
		write(http.StatusOK, []map[string]any{{"id": "dc1", "code": "KLD", "name": "Коледино", "marketplace": "WB"}})
	default:
		write(http.StatusNotFound, map[string]string{"detail": "Not Found"})
	}
}

func (b *fakeBackend) Created() []map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]map[string]any(nil), b.created...)
}

type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) Delete(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Consola armada como en cmd/console
// ──────────────────────────────────────────────────────────────────────────────

type console struct {
	app     *fiber.App
	backend *fakeBackend
	tokens  *memTokens
}

func newConsole(t *testing.T) *console {
	t.Helper()
	token, err := pkgjwt.Generate("backend-secret", "u1", time.Hour)
	require.NoError(t, err)

	backend := &fakeBackend{t: t, token: token}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	log := logger.Nop()
	texts := i18n.New("ru")
	hub := notify.NewHub(log, 0)

	client := stockapi.NewClient(stockapi.Config{BaseURL: srv.URL, PathPrefix: "/api", Timeout: 2 * time.Second}, hub, texts, log)
	tokens := &memTokens{}
	store := session.NewStore(stockapi.NewAuthRepository(client), tokens, log)
	client.BindSession(store, store.Teardown)

	page := dashboard.New(
		dashboard.NewSummaryView(stockapi.NewStockRepository(client)),
		dashboard.NewProductsView(stockapi.NewProductRepository(client)),
	)
	journalView := journal.NewView(stockapi.NewMovementRepository(client))
	form := operation.NewForm(operation.Deps{
		Movements:           stockapi.NewMovementRepository(client),
		Products:            stockapi.NewProductRepository(client),
		Sources:             stockapi.NewSourceRepository(client),
		DistributionCenters: stockapi.NewDistributionCenterRepository(client),
		Notifier:            hub,
		Texts:               texts,
		Log:                 log,
		Search:              selector.Config{Debounce: time.Millisecond},
	})
	store.OnEnd(form.Close)
	store.OnEnd(page.Reset)
	store.OnEnd(journalView.Reset)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Session:   store,
		Dashboard: page,
		Journal:   journalView,
		Export:    journal.NewExportService(journalView, texts, log, excel.NewJournalExporter()),
		Form:      form,
		Hub:       hub,
		Texts:     texts,
	})
	return &console{app: app, backend: backend, tokens: tokens}
}

func (c *console) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (c *console) login(t *testing.T) {
	t.Helper()
	resp := c.do(t, http.MethodPost, "/api/console/session/login", dto.LoginRequest{Email: "op@example.com", Password: "secret"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s := decode[dto.SessionResponse](t, resp)
	require.True(t, s.Authenticated)
	require.Equal(t, "op@example.com", s.User.Email)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestConsole_SinSesionRetorna401(t *testing.T) {
	c := newConsole(t)

	resp := c.do(t, http.MethodGet, "/api/console/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", decode[dto.ErrorResponse](t, resp).Code)
	assert.Zero(t, c.backend.calls.Load(), "sin sesión no se llama al backend")
}

func TestConsole_LoginVacioEsInvalido(t *testing.T) {
	c := newConsole(t)
	resp := c.do(t, http.MethodPost, "/api/console/session/login", dto.LoginRequest{Email: " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, c.backend.calls.Load())
}

func TestConsole_Dashboard(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp := c.do(t, http.MethodGet, "/api/console/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardResponse](t, resp)

	require.NotNil(t, out.Summary)
	assert.Equal(t, 340, out.Summary.TotalStock)
	require.NotNil(t, out.Products)
	require.Len(t, out.Products.Items, 1)
	assert.Equal(t, "4607001", out.Products.Items[0].Barcode)
	assert.Empty(t, out.Errors)
}

func TestConsole_RegistrarEnvioACentro(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp := c.do(t, http.MethodPost, "/api/console/operation/open?from=journal", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "editing", decode[dto.FormResponse](t, resp).State)

	resp = c.do(t, http.MethodPatch, "/api/console/operation/draft", map[string]any{
		"operation_type": "shipment_rc", "product_id": "p1", "quantity": 5, "source_id": "s1",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	form := decode[dto.FormResponse](t, resp)
	assert.True(t, form.Fields.DistributionCenter)
	assert.False(t, form.Fields.Source)

	// Sin centro: bloqueado antes de llamar al backend.
	resp = c.do(t, http.MethodPost, "/api/console/operation/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	verr := decode[dto.ErrorResponse](t, resp)
	assert.Contains(t, verr.Fields, "distribution_center_id")
	assert.Empty(t, c.backend.Created())

	resp = c.do(t, http.MethodPatch, "/api/console/operation/draft", map[string]any{"distribution_center_id": "dc1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = c.do(t, http.MethodPost, "/api/console/operation/submit", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.SubmitResponse](t, resp)
	assert.Equal(t, "m1", out.Movement.ID)
	assert.Equal(t, "Отгрузка в РЦ", out.Movement.OperationLabel)
	require.Len(t, out.Refreshes, 2)
	for _, r := range out.Refreshes {
		assert.True(t, r.OK, r.View)
	}

	created := c.backend.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "dc1", created[0]["distribution_center_id"])
	assert.NotContains(t, created[0], "source_id", "el origen oculto no se envía")

	resp = c.do(t, http.MethodGet, "/api/console/operation", nil)
	assert.Equal(t, "closed", decode[dto.FormResponse](t, resp).State)

	resp = c.do(t, http.MethodGet, "/api/console/notifications", nil)
	notes := decode[dto.NotificationListResponse](t, resp)
	require.NotEmpty(t, notes.Items)
	assert.Equal(t, "Операция «Отгрузка в РЦ» выполнена", notes.Items[0].Message)
}

func TestConsole_CantidadNoEntera(t *testing.T) {
	c := newConsole(t)
	c.login(t)
	c.do(t, http.MethodPost, "/api/console/operation/open", nil)

	resp := c.do(t, http.MethodPatch, "/api/console/operation/draft", map[string]any{"quantity": 2.5})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, decode[dto.ErrorResponse](t, resp).Fields, "quantity")
}

func TestConsole_SelectorYReferencias(t *testing.T) {
	c := newConsole(t)
	c.login(t)
	c.do(t, http.MethodPost, "/api/console/operation/open", nil)

	resp := c.do(t, http.MethodPost, "/api/console/operation/product-search", dto.ProductSearchRequest{Query: "4607"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	require.Eventually(t, func() bool {
		resp := c.do(t, http.MethodGet, "/api/console/operation/product-options", nil)
		return len(decode[dto.SelectorResponse](t, resp).Options) == 1
	}, 2*time.Second, 10*time.Millisecond)

	resp = c.do(t, http.MethodPost, "/api/console/operation/product", dto.SelectProductRequest{ProductID: "p1"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "p1", decode[dto.FormResponse](t, resp).Draft.ProductID)

	resp = c.do(t, http.MethodGet, "/api/console/operation/distribution-centers", nil)
	dcs := decode[[]dto.DistributionCenterResponse](t, resp)
	require.Len(t, dcs, 1)
	assert.Equal(t, "Коледино (WB)", dcs[0].Label)
}

func TestConsole_OperacionConDialogoCerrado(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp := c.do(t, http.MethodPost, "/api/console/operation/submit", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "FORM_CLOSED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestConsole_JournalFiltrosYExport(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	resp := c.do(t, http.MethodPut, "/api/console/journal/filters", dto.JournalFiltersDTO{OperationType: "write_off", DateFrom: "2024-01-01"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.JournalResponse](t, resp)
	assert.Equal(t, "write_off", out.Filters.OperationType)
	assert.Empty(t, out.Filters.DateFrom, "rango incompleto ignorado")
	assert.Equal(t, 1, out.Page)

	resp = c.do(t, http.MethodPut, "/api/console/journal/filters", dto.JournalFiltersDTO{DateFrom: "01/01/2024", DateTo: "2024-01-31"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = c.do(t, http.MethodGet, "/api/console/journal/export?format=xlsx", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
	assert.Equal(t, "0", resp.Header.Get("X-Export-Rows"))

	resp = c.do(t, http.MethodGet, "/api/console/journal/export?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestConsole_401DelBackendCierraLaSesion(t *testing.T) {
	c := newConsole(t)
	c.login(t)
	c.do(t, http.MethodPost, "/api/console/operation/open", nil)

	c.backend.expired.Store(true)
	resp := c.do(t, http.MethodGet, "/api/console/dashboard", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = c.do(t, http.MethodGet, "/api/console/session", nil)
	s := decode[dto.SessionResponse](t, resp)
	assert.False(t, s.Authenticated)
	assert.Nil(t, s.User)
	token, _ := c.tokens.Load(context.Background())
	assert.Empty(t, token, "el token persistido se borra")

	// Las llamadas siguientes fallan localmente hasta un nuevo login.
	before := c.backend.calls.Load()
	resp = c.do(t, http.MethodGet, "/api/console/journal", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, before, c.backend.calls.Load())

	resp = c.do(t, http.MethodGet, "/api/console/notifications", nil)
	var messages []string
	for _, n := range decode[dto.NotificationListResponse](t, resp).Items {
		messages = append(messages, n.Message)
	}
	assert.True(t, containsPrefix(messages, "Сессия истекла"), "%v", messages)

	// El diálogo abierto se cerró con la sesión.
	c.backend.expired.Store(false)
	c.login(t)
	resp = c.do(t, http.MethodGet, "/api/console/operation", nil)
	assert.Equal(t, "closed", decode[dto.FormResponse](t, resp).State)
}

func TestConsole_LogoutIdempotente(t *testing.T) {
	c := newConsole(t)
	c.login(t)

	for i := 0; i < 2; i++ {
		resp := c.do(t, http.MethodPost, "/api/console/session/logout", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.False(t, decode[dto.SessionResponse](t, resp).Authenticated)
	}
}

func containsPrefix(items []string, prefix string) bool {
	for _, s := range items {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
