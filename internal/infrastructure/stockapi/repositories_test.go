package stockapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/internal/infrastructure/stockapi"
)

func TestMovements_List_FiltrosEnQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api/stock/movements", r.URL.Path)
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "20", q.Get("page_size"))
		assert.Equal(t, "write_off", q.Get("operation_type"))
		assert.Equal(t, "p9", q.Get("product_id"))
		assert.Equal(t, "2024-01-01", q.Get("date_from"))
		assert.Equal(t, "2024-01-31", q.Get("date_to"))
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{{
				"id": "m1", "operation_type": "write_off", "product_id": "p9", "quantity": 3,
				"user_id": "u1", "created_at": "2024-01-10T08:00:00", "product_barcode": "4601",
			}},
			"total": 1, "page": 1, "page_size": 20, "pages": 1,
		})
	}))
	defer srv.Close()

	op := entity.OperationWriteOff
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	c, _, _ := newClient(t, srv.URL, "tok")
	page, err := stockapi.NewMovementRepository(c).List(context.Background(), entity.PageQuery{},
		entity.MovementFilter{OperationType: &op, ProductID: "p9", DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, entity.OperationWriteOff, page.Items[0].OperationType)
	assert.Equal(t, "4601", page.Items[0].ProductBarcode)
}

func TestMovements_List_RangoIncompletoNoSeEnvia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.False(t, q.Has("date_from"))
		assert.False(t, q.Has("date_to"))
		assert.False(t, q.Has("operation_type"))
		writeJSON(w, http.StatusOK, map[string]any{"items": []any{}, "total": 0, "page": 1, "page_size": 20, "pages": 1})
	}))
	defer srv.Close()

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c, _, _ := newClient(t, srv.URL, "tok")
	page, err := stockapi.NewMovementRepository(c).List(context.Background(), entity.PageQuery{},
		entity.MovementFilter{DateFrom: &from})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestMovements_Create_OmiteCamposVacios(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{
			"operation_type":         "shipment_rc",
			"product_id":             "p1",
			"quantity":               float64(5),
			"distribution_center_id": "dc1",
		}, body)

		writeJSON(w, http.StatusCreated, map[string]any{
			"id": "m7", "operation_type": "shipment_rc", "product_id": "p1", "quantity": 5,
			"distribution_center_id": "dc1", "user_id": "u1", "created_at": "2024-02-01T12:00:00Z",
		})
	}))
	defer srv.Close()

	c, _, _ := newClient(t, srv.URL, "tok")
	mv, err := stockapi.NewMovementRepository(c).Create(context.Background(), entity.NewMovement{
		OperationType:        entity.OperationShipmentRC,
		ProductID:            "p1",
		Quantity:             5,
		DistributionCenterID: "dc1",
	})
	require.NoError(t, err)
	assert.Equal(t, "m7", mv.ID)
	assert.Equal(t, "dc1", mv.DistributionCenterID)
	assert.Empty(t, mv.SourceID)
}

func TestAuth_LoginSinBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "op@example.com", body["email"])
		assert.Equal(t, "secret", body["password"])
		writeJSON(w, http.StatusOK, map[string]string{"access_token": "jwt-123", "token_type": "bearer"})
	}))
	defer srv.Close()

	c, _, _ := newClient(t, srv.URL, "")
	tok, err := stockapi.NewAuthRepository(c).Login(context.Background(), "op@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-123", tok)
}

func TestAuth_Me(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"id": "u1", "email": "op@example.com", "is_active": true, "created_at": "2024-01-01T00:00:00",
		})
	}))
	defer srv.Close()

	c, _, _ := newClient(t, srv.URL, "tok")
	u, err := stockapi.NewAuthRepository(c).Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "op@example.com", u.Email)
	assert.True(t, u.IsActive)
}

func TestReferencias(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/sources/":
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "s1", "name": "ПВЗ Ленина", "description": nil}})
		case "/api/distribution-centers/":
			writeJSON(w, http.StatusOK, []map[string]any{{"id": "d1", "code": "KLD", "name": "Коледино", "marketplace": "WB"}})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c, _, _ := newClient(t, srv.URL, "tok")
	sources, err := stockapi.NewSourceRepository(c).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Source{{ID: "s1", Name: "ПВЗ Ленина"}}, sources)

	dcs, err := stockapi.NewDistributionCenterRepository(c).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Коледино (WB)", dcs[0].Label())
}
