package dashboard

import (
	"context"
	"time"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// Dashboard página principal: resumen + tabla de productos.
type Dashboard struct {
	Summary  *SummaryView
	Products *ProductsView
}

// New arma la página.
func New(summary *SummaryView, products *ProductsView) *Dashboard {
	return &Dashboard{Summary: summary, Products: products}
}

// Snapshot resultado de cargar la página. Un error en una sección no invalida la otra.
type Snapshot struct {
	Summary     *entity.StockSummary
	SummaryAt   time.Time
	SummaryErr  error
	Query       ProductQuery
	Products    *entity.Page[entity.Product]
	ProductsErr error
}

// Load recarga ambas secciones en paralelo con los parámetros vigentes.
func (d *Dashboard) Load(ctx context.Context) Snapshot {
	type summaryResult struct {
		err error
	}
	type productsResult struct {
		err error
	}

	summaryCh := make(chan summaryResult, 1)
	productsCh := make(chan productsResult, 1)

	go func() {
		_, err := d.Summary.Load(ctx)
		summaryCh <- summaryResult{err}
	}()
	go func() {
		_, err := d.Products.Reload(ctx)
		productsCh <- productsResult{err}
	}()

	sr := <-summaryCh
	pr := <-productsCh
	return d.snapshot(sr.err, pr.err)
}

// Current estado sin llamar al backend.
func (d *Dashboard) Current() Snapshot {
	return d.snapshot(nil, nil)
}

func (d *Dashboard) snapshot(summaryErr, productsErr error) Snapshot {
	s, at := d.Summary.Current()
	return Snapshot{
		Summary:     s,
		SummaryAt:   at,
		SummaryErr:  summaryErr,
		Query:       d.Products.Query(),
		Products:    d.Products.Current(),
		ProductsErr: productsErr,
	}
}

// Reset olvida datos y parámetros (fin de sesión).
func (d *Dashboard) Reset() {
	d.Summary.Reset()
	d.Products.Reset()
}
