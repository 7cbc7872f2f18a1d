// Package dashboard contiene las vistas de la página principal: resumen de stock
// y tabla de productos con búsqueda por código de barras.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/internal/domain/repository"
)

// loadOrder ordena las cargas de una vista: solo se adopta una respuesta más nueva
// que la última adoptada y emitida después del último Reset. Requiere el lock de la vista.
type loadOrder struct {
	issued  uint64
	applied uint64
}

func (o *loadOrder) next() uint64 {
	o.issued++
	return o.issued
}

func (o *loadOrder) adopt(seq uint64) bool {
	if seq <= o.applied {
		return false
	}
	o.applied = seq
	return true
}

func (o *loadOrder) reset() { o.applied = o.issued }

// ── Resumen ───────────────────────────────────────────────────────────────────

// SummaryView KPIs globales del almacén.
type SummaryView struct {
	repo repository.StockRepository
	now  func() time.Time

	mu       sync.RWMutex
	order    loadOrder
	summary  *entity.StockSummary
	loadedAt time.Time
}

// NewSummaryView construye la vista.
func NewSummaryView(repo repository.StockRepository) *SummaryView {
	return &SummaryView{repo: repo, now: time.Now}
}

// Name clave i18n de la vista.
func (v *SummaryView) Name() string { return "view.stock_summary" }

// Load pide el resumen. Si falla, se conservan los datos anteriores.
// Una respuesta superada por otra carga o por un Reset no se adopta.
func (v *SummaryView) Load(ctx context.Context) (*entity.StockSummary, error) {
	v.mu.Lock()
	seq := v.order.next()
	v.mu.Unlock()

	s, err := v.repo.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.order.adopt(seq) {
		return s, nil
	}
	v.summary = s
	v.loadedAt = v.now()
	return s, nil
}

// Capture el resumen no tiene parámetros; recargar es volver a pedirlo.
func (v *SummaryView) Capture() func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := v.Load(ctx)
		return err
	}
}

// Current últimos datos cargados (nil si nunca cargó).
func (v *SummaryView) Current() (*entity.StockSummary, time.Time) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.summary, v.loadedAt
}

// Reset olvida los datos (fin de sesión).
func (v *SummaryView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.order.reset()
	v.summary = nil
	v.loadedAt = time.Time{}
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductQuery parámetros de la tabla de productos.
type ProductQuery struct {
	Page     int
	PageSize int
	Barcode  string
}

func defaultProductQuery() ProductQuery {
	return ProductQuery{Page: 1, PageSize: entity.DefaultPageSize}
}

// ProductsView tabla paginada de productos.
type ProductsView struct {
	repo repository.ProductRepository

	mu     sync.RWMutex
	order  loadOrder
	query  ProductQuery
	result *entity.Page[entity.Product]
}

// NewProductsView construye la vista en página 1 de 20.
func NewProductsView(repo repository.ProductRepository) *ProductsView {
	return &ProductsView{repo: repo, query: defaultProductQuery()}
}

func (v *ProductsView) Name() string { return "view.products" }

// Query parámetros vigentes.
func (v *ProductsView) Query() ProductQuery {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// Current última página cargada.
func (v *ProductsView) Current() *entity.Page[entity.Product] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.result
}

// Reload recarga con los parámetros vigentes.
func (v *ProductsView) Reload(ctx context.Context) (*entity.Page[entity.Product], error) {
	return v.load(ctx, v.Query())
}

// Search filtra por código de barras y vuelve a la página 1 conservando el tamaño.
func (v *ProductsView) Search(ctx context.Context, barcode string) (*entity.Page[entity.Product], error) {
	q := v.Query()
	q.Barcode = strings.TrimSpace(barcode)
	q.Page = 1
	return v.load(ctx, q)
}

// SetPage cambia página y tamaño conservando la búsqueda.
func (v *ProductsView) SetPage(ctx context.Context, page, pageSize int) (*entity.Page[entity.Product], error) {
	q := v.Query()
	norm := entity.PageQuery{Page: page, PageSize: pageSize}.Normalize()
	q.Page, q.PageSize = norm.Page, norm.PageSize
	return v.load(ctx, q)
}

// Capture congela los parámetros actuales para la recarga posterior a una operación.
func (v *ProductsView) Capture() func(ctx context.Context) error {
	q := v.Query()
	return func(ctx context.Context) error {
		_, err := v.load(ctx, q)
		return err
	}
}

// Reset vuelve a los parámetros por defecto y olvida los datos.
func (v *ProductsView) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.order.reset()
	v.query = defaultProductQuery()
	v.result = nil
}

// load pide la página; los parámetros solo se adoptan si la carga tuvo éxito
// y no fue superada por otra carga o por un Reset.
func (v *ProductsView) load(ctx context.Context, q ProductQuery) (*entity.Page[entity.Product], error) {
	v.mu.Lock()
	seq := v.order.next()
	v.mu.Unlock()

	page, err := v.repo.List(ctx, entity.PageQuery{Page: q.Page, PageSize: q.PageSize}, q.Barcode)
	if err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", err)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.order.adopt(seq) {
		return page, nil
	}
	v.query = q
	v.result = page
	return page, nil
}
