package tickets

import (
	"bytes"
	"comandas_server/repository"
	"comandas_server/services"
	"comandas_server/structs"
	"comandas_server/structs/tables"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	router chi.Router
	store  *repository.MemoryStore
	sm     *services.ServiceManager
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := gecho.NewLogger(gecho.NewConfig(gecho.WithLogLevel(gecho.ParseLogLevel("error"))))
	cfg := &structs.Config{
		Server:  &structs.ServerConfig{Environment: "test"},
		Cache:   &structs.CacheConfig{Enabled: false, CatalogTTL: time.Minute},
		Auth:    &structs.AuthConfig{AccessTokenSecret: "test-secret", AccessTokenExpiry: time.Hour},
		Tickets: &structs.TicketsConfig{MaxNumber: 10},
		Storage: &structs.StorageConfig{Backend: "memory"},
	}
	store := repository.NewMemoryStore()
	sm := services.NewServiceManager(logger, cfg, nil, store)

	r := chi.NewRouter()
	NewTicketRoutesManager(logger, sm.TicketService).RegisterRoutes(r)
	return &harness{router: r, store: store, sm: sm}
}

func (h *harness) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	return rec
}

// body returns the response without insignificant whitespace.
func body(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.Compact(&buf, rec.Body.Bytes()))
	return buf.String()
}

func (h *harness) product(t *testing.T, name, price string) uuid.UUID {
	t.Helper()
	p := tables.Product{ID: uuid.New(), Name: name, Category: "Drinks", Price: decimal.RequireFromString(price), Active: true}
	require.NoError(t, h.store.CreateProduct(context.Background(), &p))
	return p.ID
}

func TestOpenTicketStatusCodes(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets", `{"number":3}`).Code)
	assert.Equal(t, http.StatusConflict, h.do(http.MethodPost, "/tickets", `{"number":3}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/tickets", `{"number":11}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/tickets", `{"number":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/tickets", `{"number":4,"table":2}`).Code)
	assert.Equal(t, http.StatusNotFound,
		h.do(http.MethodPost, "/tickets", fmt.Sprintf(`{"number":5,"customer_id":%q}`, uuid.New())).Code)
}

func TestTicketFlowOverHTTP(t *testing.T) {
	h := newHarness(t)
	beer := h.product(t, "Cerveja", "8.50")

	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets", `{"number":7}`).Code)

	addBody := fmt.Sprintf(`{"product_id":%q}`, beer)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets/7/items", addBody).Code)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets/7/items", addBody).Code)

	ticket, err := h.sm.TicketService.Get(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, ticket.Items, 1)
	assert.Equal(t, 2, ticket.Items[0].Quantity)

	rec := h.do(http.MethodPost, "/tickets/7/close", `{"method":"cash","tendered":"10.00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body(t, rec), "17")

	rec = h.do(http.MethodPost, "/tickets/7/close", `{"method":"cash","tendered":"20.00"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body(t, rec), `"change":"3"`)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/tickets/7", "").Code)
	assert.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets", `{"number":7}`).Code)
}

func TestCloseEmptyTicketIsBadRequest(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets", `{"number":2}`).Code)

	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/tickets/2/close", `{"method":"pix"}`).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodPost, "/tickets/2/close", `{"method":"cheque"}`).Code)

	open, err := h.sm.TicketService.ListOpen(context.Background())
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

func TestRevertedWriteIsServiceUnavailable(t *testing.T) {
	h := newHarness(t)
	fries := h.product(t, "Batata", "22.00")
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets", `{"number":1}`).Code)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets/1/items", fmt.Sprintf(`{"product_id":%q}`, fries)).Code)

	ticket, err := h.sm.TicketService.Get(context.Background(), 1)
	require.NoError(t, err)
	itemID := ticket.Items[0].ID

	h.store.FailNext("update line item quantity", errors.New("connection reset by peer"))
	rec := h.do(http.MethodPut, fmt.Sprintf("/tickets/1/items/%s", itemID), `{"quantity":5}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	ticket, err = h.sm.TicketService.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, ticket.Items[0].Quantity)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodDelete, fmt.Sprintf("/tickets/1/items/%s", uuid.New()), "").Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/tickets/abc", "").Code)
}

func TestBoardListsEverySlot(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, http.StatusOK, h.do(http.MethodPost, "/tickets", `{"number":4}`).Code)

	rec := h.do(http.MethodGet, "/tickets/board", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, body(t, rec), `"number":10`)
	assert.Contains(t, body(t, rec), `"open":true`)
}
