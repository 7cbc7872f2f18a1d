package stockapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/internal/domain/repository"
)

// Verificar en tiempo de compilación que los adaptadores implementan los puertos.
var (
	_ repository.AuthRepository               = (*AuthRepository)(nil)
	_ repository.ProductRepository            = (*ProductRepository)(nil)
	_ repository.MovementRepository           = (*MovementRepository)(nil)
	_ repository.StockRepository              = (*StockRepository)(nil)
	_ repository.SourceRepository             = (*SourceRepository)(nil)
	_ repository.DistributionCenterRepository = (*DistributionCenterRepository)(nil)
)

// DateLayout formato de fechas en los filtros del journal.
const DateLayout = "2006-01-02"

func pageValues(q entity.PageQuery) url.Values {
	q = q.Normalize()
	v := url.Values{}
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	return v
}

// ── Auth ──────────────────────────────────────────────────────────────────────

// AuthRepository /auth/login y /auth/me.
type AuthRepository struct{ c *Client }

func NewAuthRepository(c *Client) *AuthRepository { return &AuthRepository{c: c} }

// Login intercambia credenciales por un access token. No requiere sesión.
func (r *AuthRepository) Login(ctx context.Context, email, password string) (string, error) {
	var out tokenWire
	err := r.c.do(ctx, request{
		resource: "auth",
		method:   http.MethodPost,
		path:     "/auth/login",
		body:     loginWire{Email: email, Password: password},
	}, &out)
	if err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", fmt.Errorf("stockapi: login sin access_token: %w", domain.ErrServer)
	}
	return out.AccessToken, nil
}

// Me usuario dueño del token vigente.
func (r *AuthRepository) Me(ctx context.Context) (*entity.User, error) {
	var out userWire
	err := r.c.do(ctx, request{resource: "auth", method: http.MethodGet, path: "/auth/me", auth: true}, &out)
	if err != nil {
		return nil, err
	}
	return &entity.User{ID: out.ID, Email: out.Email, IsActive: out.IsActive, CreatedAt: out.CreatedAt.Time}, nil
}

// ── Products ──────────────────────────────────────────────────────────────────

// ProductRepository GET /products/.
type ProductRepository struct{ c *Client }

func NewProductRepository(c *Client) *ProductRepository { return &ProductRepository{c: c} }

func (r *ProductRepository) List(ctx context.Context, q entity.PageQuery, barcode string) (*entity.Page[entity.Product], error) {
	v := pageValues(q)
	if b := strings.TrimSpace(barcode); b != "" {
		v.Set("barcode", b)
	}
	var out pageWire[productWire]
	err := r.c.do(ctx, request{resource: "products", method: http.MethodGet, path: "/products/", query: v, auth: true}, &out)
	if err != nil {
		return nil, err
	}
	return toPage(out, productWire.toEntity), nil
}

// ── Movements ─────────────────────────────────────────────────────────────────

// MovementRepository GET/POST /stock/movements.
type MovementRepository struct{ c *Client }

func NewMovementRepository(c *Client) *MovementRepository { return &MovementRepository{c: c} }

func (r *MovementRepository) List(ctx context.Context, q entity.PageQuery, f entity.MovementFilter) (*entity.Page[entity.Movement], error) {
	var out pageWire[movementWire]
	err := r.c.do(ctx, request{
		resource: "movements",
		method:   http.MethodGet,
		path:     "/stock/movements",
		query:    movementValues(q, f),
		auth:     true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return toPage(out, movementWire.toEntity), nil
}

func movementValues(q entity.PageQuery, f entity.MovementFilter) url.Values {
	v := pageValues(q)
	if f.OperationType != nil {
		v.Set("operation_type", f.OperationType.String())
	}
	if f.ProductID != "" {
		v.Set("product_id", f.ProductID)
	}
	if f.HasDateRange() {
		v.Set("date_from", f.DateFrom.Format(DateLayout))
		v.Set("date_to", f.DateTo.Format(DateLayout))
	}
	if b := strings.TrimSpace(f.Barcode); b != "" {
		v.Set("barcode", b)
	}
	return v
}

// Create una única llamada; sin reintentos.
func (r *MovementRepository) Create(ctx context.Context, m entity.NewMovement) (*entity.Movement, error) {
	var out movementWire
	err := r.c.do(ctx, request{
		resource: "movements",
		method:   http.MethodPost,
		path:     "/stock/movements",
		body:     newMovementCreateWire(m),
		auth:     true,
	}, &out)
	if err != nil {
		return nil, err
	}
	mv := out.toEntity()
	return &mv, nil
}

// ── Stock ─────────────────────────────────────────────────────────────────────

// StockRepository GET /stock/summary.
type StockRepository struct{ c *Client }

func NewStockRepository(c *Client) *StockRepository { return &StockRepository{c: c} }

func (r *StockRepository) Summary(ctx context.Context) (*entity.StockSummary, error) {
	var out summaryWire
	err := r.c.do(ctx, request{resource: "stock", method: http.MethodGet, path: "/stock/summary", auth: true}, &out)
	if err != nil {
		return nil, err
	}
	return &entity.StockSummary{
		TotalProducts: out.TotalProducts,
		TotalStock:    out.TotalStock,
		TotalDefect:   out.TotalDefect,
	}, nil
}

// ── Referencias ───────────────────────────────────────────────────────────────

// SourceRepository GET /sources/.
type SourceRepository struct{ c *Client }

func NewSourceRepository(c *Client) *SourceRepository { return &SourceRepository{c: c} }

func (r *SourceRepository) List(ctx context.Context) ([]entity.Source, error) {
	var out []sourceWire
	err := r.c.do(ctx, request{resource: "sources", method: http.MethodGet, path: "/sources/", auth: true}, &out)
	if err != nil {
		return nil, err
	}
	items := make([]entity.Source, 0, len(out))
	for _, w := range out {
		items = append(items, entity.Source{ID: w.ID, Name: w.Name, Description: deref(w.Description)})
	}
	return items, nil
}

// DistributionCenterRepository GET /distribution-centers/.
type DistributionCenterRepository struct{ c *Client }

func NewDistributionCenterRepository(c *Client) *DistributionCenterRepository {
	return &DistributionCenterRepository{c: c}
}

func (r *DistributionCenterRepository) List(ctx context.Context) ([]entity.DistributionCenter, error) {
	var out []dcWire
	err := r.c.do(ctx, request{resource: "distribution_centers", method: http.MethodGet, path: "/distribution-centers/", auth: true}, &out)
	if err != nil {
		return nil, err
	}
	items := make([]entity.DistributionCenter, 0, len(out))
	for _, w := range out {
		items = append(items, entity.DistributionCenter{ID: w.ID, Code: w.Code, Name: w.Name, Marketplace: w.Marketplace})
	}
	return items, nil
}
