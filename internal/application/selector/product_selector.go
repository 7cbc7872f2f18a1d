// Package selector contiene los selectores con búsqueda del formulario de operación:
// productos (búsqueda remota con debounce) y listas de referencia (orígenes, centros).
package selector

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/internal/domain/repository"
	"github.com/jhoicas/stock-console/pkg/logger"
	"github.com/jhoicas/stock-console/pkg/metrics"
)

// minChars por debajo nunca se consulta al backend, aunque la config pida menos.
const minChars = 2

// Config parámetros de búsqueda.
type Config struct {
	Debounce time.Duration // ventana que se reinicia con cada tecla
	MinChars int           // por debajo no se busca
	PageSize int
}

func (c Config) withDefaults() Config {
	if c.Debounce < 0 {
		c.Debounce = 0
	}
	if c.MinChars < minChars {
		c.MinChars = minChars
	}
	if c.PageSize <= 0 {
		c.PageSize = entity.DefaultPageSize
	}
	return c
}

// Option producto ofrecido en el desplegable.
type Option struct {
	ID      string
	Label   string
	Product entity.Product
}

// State foto del selector para la UI.
type State struct {
	Query      string
	Options    []Option
	Loading    bool
	Empty      bool // búsqueda hecha sin resultados
	SelectedID string
	Err        error
}

// ProductSelector búsqueda de productos por código de barras.
//
// Cada búsqueda emitida recibe un número de secuencia creciente; una respuesta
// solo se aplica si trae el último número emitido. Las búsquedas reemplazadas se
// cancelan por contexto.
type ProductSelector struct {
	repo     repository.ProductRepository
	cfg      Config
	log      *logger.Logger
	onSelect func(id string)

	baseCtx context.Context
	stop    context.CancelFunc

	mu       sync.Mutex
	closed   bool
	query    string
	timer    *time.Timer
	pending  uint64 // entrada vigente del debounce
	issued   uint64 // última búsqueda emitida
	inflight context.CancelFunc
	options  []Option
	loading  bool
	empty    bool
	selected string
	lastErr  error
}

// NewProductSelector construye el selector. onSelect recibe el id elegido ("" al limpiar).
func NewProductSelector(repo repository.ProductRepository, cfg Config, log *logger.Logger, onSelect func(id string)) *ProductSelector {
	ctx, cancel := context.WithCancel(context.Background())
	return &ProductSelector{
		repo:     repo,
		cfg:      cfg.withDefaults(),
		log:      log.Named("product_selector"),
		onSelect: onSelect,
		baseCtx:  ctx,
		stop:     cancel,
	}
}

// Input registra lo que el operador escribió.
func (s *ProductSelector) Input(query string) error {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return domain.ErrSelectorClosed
	}

	s.query = query
	s.pending++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if utf8.RuneCountInString(query) < s.cfg.MinChars {
		// Invalida cualquier respuesta en vuelo: "a" nunca muestra resultados de "ab".
		s.issued++
		s.cancelInflight()
		s.options = nil
		s.loading = false
		s.empty = false
		s.lastErr = nil
		metrics.Searches.WithLabelValues("skipped").Inc()
		return nil
	}

	token := s.pending
	s.timer = time.AfterFunc(s.cfg.Debounce, func() { s.fire(token, query) })
	return nil
}

func (s *ProductSelector) fire(token uint64, query string) {
	s.mu.Lock()
	if s.closed || token != s.pending {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.issued++
	seq := s.issued
	s.cancelInflight()
	ctx, cancel := context.WithCancel(s.baseCtx)
	s.inflight = cancel
	s.loading = true
	s.mu.Unlock()

	metrics.Searches.WithLabelValues("issued").Inc()
	page, err := s.repo.List(ctx, entity.PageQuery{Page: 1, PageSize: s.cfg.PageSize}, query)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || seq != s.issued {
		metrics.Searches.WithLabelValues("stale").Inc()
		s.log.Debug().Uint64("seq", seq).Str("query", query).Msg("respuesta obsoleta descartada")
		return
	}
	s.inflight = nil
	s.loading = false
	if err != nil {
		s.options = nil
		s.empty = false
		s.lastErr = err
		return
	}
	metrics.Searches.WithLabelValues("applied").Inc()
	s.lastErr = nil
	s.options = make([]Option, 0, len(page.Items))
	for _, p := range page.Items {
		s.options = append(s.options, Option{ID: p.ID, Label: p.OptionLabel(), Product: p})
	}
	s.empty = len(s.options) == 0
}

func (s *ProductSelector) cancelInflight() {
	if s.inflight != nil {
		s.inflight()
		s.inflight = nil
	}
}

// Select elige una de las opciones visibles y la entrega al formulario.
func (s *ProductSelector) Select(id string) (Option, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Option{}, domain.ErrSelectorClosed
	}
	var chosen *Option
	for i := range s.options {
		if s.options[i].ID == id {
			chosen = &s.options[i]
			break
		}
	}
	if chosen == nil {
		s.mu.Unlock()
		return Option{}, fmt.Errorf("selector: producto %q no está entre las opciones: %w", id, domain.ErrNotFound)
	}
	opt := *chosen
	s.selected = id
	s.mu.Unlock()

	if s.onSelect != nil {
		s.onSelect(id)
	}
	return opt, nil
}

// Clear borra selección, texto y opciones.
func (s *ProductSelector) Clear() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.resetLocked()
	s.mu.Unlock()

	if s.onSelect != nil {
		s.onSelect("")
	}
}

func (s *ProductSelector) resetLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.pending++
	s.issued++
	s.cancelInflight()
	s.query = ""
	s.options = nil
	s.loading = false
	s.empty = false
	s.selected = ""
	s.lastErr = nil
}

// Close detiene timers y búsquedas en vuelo; las respuestas tardías se ignoran.
func (s *ProductSelector) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.resetLocked()
	s.closed = true
	s.stop()
}

// State foto actual.
func (s *ProductSelector) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	opts := make([]Option, len(s.options))
	copy(opts, s.options)
	return State{
		Query:      s.query,
		Options:    opts,
		Loading:    s.loading,
		Empty:      s.empty,
		SelectedID: s.selected,
		Err:        s.lastErr,
	}
}
