// Package journal vista del journal de movimientos: filtros, paginación y exportación.
package journal

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/internal/domain/repository"
)

// Query filtros y paginación vigentes.
type Query struct {
	Page    entity.PageQuery
	Filters entity.MovementFilter
}

func defaultQuery() Query {
	return Query{Page: entity.PageQuery{Page: 1, PageSize: entity.DefaultPageSize}}
}

// View journal paginado. Los parámetros solo cambian cuando la carga tiene éxito.
type View struct {
	repo repository.MovementRepository

	mu     sync.RWMutex
	query  Query
	result *entity.Page[entity.Movement]

	// issued/applied: solo se adopta una carga más nueva que la última adoptada
	issued  uint64
	applied uint64
}

// NewView construye la vista en página 1 de 20 sin filtros.
func NewView(repo repository.MovementRepository) *View {
	return &View{repo: repo, query: defaultQuery()}
}

func (v *View) Name() string { return "view.journal" }

// Query parámetros vigentes.
func (v *View) Query() Query {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.query
}

// Current última página cargada.
func (v *View) Current() *entity.Page[entity.Movement] {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.result
}

// Reload recarga con los parámetros vigentes.
func (v *View) Reload(ctx context.Context) (*entity.Page[entity.Movement], error) {
	return v.load(ctx, v.Query())
}

// ApplyFilters reemplaza los filtros y vuelve a la página 1 conservando el tamaño.
func (v *View) ApplyFilters(ctx context.Context, f entity.MovementFilter) (*entity.Page[entity.Movement], error) {
	if f.OperationType != nil && !f.OperationType.Valid() {
		return nil, fmt.Errorf("journal: tipo de operación inválido")
	}
	f.Barcode = strings.TrimSpace(f.Barcode)
	f.ProductID = strings.TrimSpace(f.ProductID)
	if !f.HasDateRange() {
		// El rango solo aplica con ambos extremos.
		f.DateFrom, f.DateTo = nil, nil
	}

	q := v.Query()
	q.Filters = f
	q.Page.Page = 1
	return v.load(ctx, q)
}

// ResetFilters quita los filtros y vuelve a página 1 de 20.
func (v *View) ResetFilters(ctx context.Context) (*entity.Page[entity.Movement], error) {
	return v.load(ctx, defaultQuery())
}

// SetPage cambia página y tamaño conservando los filtros.
func (v *View) SetPage(ctx context.Context, page, pageSize int) (*entity.Page[entity.Movement], error) {
	q := v.Query()
	q.Page = entity.PageQuery{Page: page, PageSize: pageSize}.Normalize()
	return v.load(ctx, q)
}

// Capture congela los parámetros actuales para la recarga posterior a una operación.
func (v *View) Capture() func(ctx context.Context) error {
	q := v.Query()
	return func(ctx context.Context) error {
		_, err := v.load(ctx, q)
		return err
	}
}

// Reset vuelve a los valores por defecto y olvida los datos (fin de sesión).
func (v *View) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.applied = v.issued
	v.query = defaultQuery()
	v.result = nil
}

func (v *View) load(ctx context.Context, q Query) (*entity.Page[entity.Movement], error) {
	v.mu.Lock()
	v.issued++
	seq := v.issued
	v.mu.Unlock()

	page, err := v.repo.List(ctx, q.Page.Normalize(), q.Filters)
	if err != nil {
		return nil, fmt.Errorf("journal: movimientos: %w", err)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if seq <= v.applied {
		// Superada por una carga más nueva o por un Reset.
		return page, nil
	}
	v.applied = seq
	v.query = q
	v.result = page
	return page, nil
}
