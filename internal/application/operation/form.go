// Package operation implementa el diálogo de registro de movimientos: borrador,
// validación condicional por tipo, envío único y recarga de las vistas dependientes.
package operation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/internal/application/selector"
	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/internal/domain/repository"
	"github.com/jhoicas/stock-console/pkg/i18n"
	"github.com/jhoicas/stock-console/pkg/logger"
	"github.com/jhoicas/stock-console/pkg/metrics"
)

// State estado del diálogo.
type State int

const (
	StateClosed State = iota
	StateEditing
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Deps colaboradores del formulario.
type Deps struct {
	Movements           repository.MovementRepository
	Products            repository.ProductRepository
	Sources             repository.SourceRepository
	DistributionCenters repository.DistributionCenterRepository
	Notifier            ports.Notifier
	Texts               *i18n.Catalog
	Log                 *logger.Logger
	Search              selector.Config
}

// Snapshot foto del formulario para la UI.
type Snapshot struct {
	State      State
	Generation uint64
	Draft      Draft
	Fields     Fields
}

// SubmitResult resultado de un envío aceptado por el backend.
type SubmitResult struct {
	Movement  *entity.Movement
	Refreshes []RefreshResult
	Detached  bool // el diálogo se cerró mientras se enviaba
}

type dialog struct {
	reloaders []reloader
	products  *selector.ProductSelector
	sources   *selector.ReferenceList[entity.Source]
	dcs       *selector.ReferenceList[entity.DistributionCenter]
}

// Form máquina de estados Closed → Editing → Submitting.
//
// Cada apertura incrementa la generación; un envío en vuelo solo puede tocar el
// formulario si la generación no cambió (cerrar durante el envío lo desacopla).
type Form struct {
	deps Deps
	log  *logger.Logger

	mu     sync.Mutex
	state  State
	gen    uint64
	draft  Draft
	dialog *dialog
}

// NewForm construye el formulario cerrado.
func NewForm(deps Deps) *Form {
	if deps.Texts == nil {
		deps.Texts = i18n.New("")
	}
	return &Form{deps: deps, log: deps.Log.Named("operation_form")}
}

// Open abre el diálogo con un borrador vacío y congela los parámetros de las
// vistas dependientes. Si ya está abierto no hace nada y devuelve false.
func (f *Form) Open(views ...View) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateClosed {
		return false
	}

	f.gen++
	gen := f.gen
	f.draft = Draft{}
	f.dialog = &dialog{
		reloaders: capture(views),
		products: selector.NewProductSelector(f.deps.Products, f.deps.Search, f.deps.Log, func(id string) {
			f.setProduct(gen, id)
		}),
		sources: selector.NewReferenceList(f.deps.Sources.List),
		dcs:     selector.NewReferenceList(f.deps.DistributionCenters.List),
	}
	f.state = StateEditing
	f.log.Debug().Uint64("generation", gen).Int("views", len(views)).Msg("diálogo abierto")
	return true
}

func (f *Form) setProduct(gen uint64, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.state != StateEditing {
		return
	}
	f.draft.ProductID = id
}

// Patch aplica cambios al borrador. Cambiar el tipo no borra origen ni centro.
func (f *Form) Patch(p Patch) error {
	if p.OperationType != nil && !p.OperationType.Valid() {
		return domain.ValidationErrors{FieldOperationType: f.deps.Texts.T(i18n.MsgUnknownOption)}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	f.draft.apply(p)
	return nil
}

func (f *Form) editableLocked() error {
	switch f.state {
	case StateClosed:
		return domain.ErrFormClosed
	case StateSubmitting:
		return domain.ErrSubmitInProgress
	}
	return nil
}

// Snapshot estado, borrador y campos visibles.
func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	d := f.draft.clone()
	return Snapshot{State: f.state, Generation: f.gen, Draft: d, Fields: d.Fields()}
}

// Fields campos condicionales visibles para el tipo elegido.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft.Fields()
}

// ProductSelector selector de productos del diálogo abierto.
func (f *Form) ProductSelector() (*selector.ProductSelector, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dialog == nil {
		return nil, domain.ErrFormClosed
	}
	return f.dialog.products, nil
}

// Sources orígenes para el desplegable (cacheados mientras dure el diálogo).
func (f *Form) Sources(ctx context.Context) ([]entity.Source, error) {
	f.mu.Lock()
	d := f.dialog
	f.mu.Unlock()
	if d == nil {
		return nil, domain.ErrFormClosed
	}
	return d.sources.Items(ctx)
}

// DistributionCenters centros para el desplegable (cacheados mientras dure el diálogo).
func (f *Form) DistributionCenters(ctx context.Context) ([]entity.DistributionCenter, error) {
	f.mu.Lock()
	d := f.dialog
	f.mu.Unlock()
	if d == nil {
		return nil, domain.ErrFormClosed
	}
	return d.dcs.Items(ctx)
}

// Submit valida y envía el borrador. Un borrador inválido no llega al backend.
func (f *Form) Submit(ctx context.Context) (*SubmitResult, error) {
	f.mu.Lock()
	if err := f.editableLocked(); err != nil {
		f.mu.Unlock()
		if errors.Is(err, domain.ErrSubmitInProgress) {
			metrics.Submissions.WithLabelValues("", "busy").Inc()
		}
		return nil, err
	}
	if verrs := f.draft.Validate(f.deps.Texts); verrs != nil {
		f.mu.Unlock()
		metrics.Submissions.WithLabelValues(opLabel(f.draft), "invalid").Inc()
		return nil, verrs
	}
	payload := f.draft.payload()
	gen := f.gen
	dlg := f.dialog
	f.state = StateSubmitting
	f.mu.Unlock()

	opType := payload.OperationType.String()
	movement, err := f.deps.Movements.Create(ctx, payload)

	f.mu.Lock()
	detached := f.gen != gen
	if err != nil {
		if !detached {
			f.state = StateEditing
		}
		f.mu.Unlock()
		metrics.Submissions.WithLabelValues(opType, "failed").Inc()
		f.log.Warn().Err(err).Str("operation_type", opType).Bool("detached", detached).Msg("movimiento rechazado")
		f.notifyFailure(err)
		return nil, fmt.Errorf("operation: crear movimiento: %w", err)
	}
	if !detached {
		f.state = StateClosed
		f.draft = Draft{}
		f.dialog = nil
	}
	f.mu.Unlock()

	if !detached {
		dlg.products.Close()
	}
	metrics.Submissions.WithLabelValues(opType, "ok").Inc()
	f.log.Info().Str("movement_id", movement.ID).Str("operation_type", opType).Int("quantity", movement.Quantity).Msg("movimiento registrado")
	f.notify(ports.LevelSuccess, f.deps.Texts.T(i18n.MsgMovementCreated, f.deps.Texts.T(payload.OperationType.LabelKey())))

	return &SubmitResult{
		Movement:  movement,
		Refreshes: f.refreshAll(ctx, dlg.reloaders),
		Detached:  detached,
	}, nil
}

// notifyFailure evita duplicar lo que el cliente HTTP ya notificó (red, 5xx, 401).
func (f *Form) notifyFailure(err error) {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrServer),
		errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNotAuthenticated):
		return
	}
	detail := domain.DetailOf(err)
	if detail == "" {
		detail = err.Error()
	}
	f.notify(ports.LevelError, f.deps.Texts.T(i18n.MsgMovementFailed, detail))
}

// Close descarta el borrador desde cualquier estado.
func (f *Form) Close() {
	f.mu.Lock()
	if f.state == StateClosed {
		f.mu.Unlock()
		return
	}
	dlg := f.dialog
	f.state = StateClosed
	f.gen++
	f.draft = Draft{}
	f.dialog = nil
	f.mu.Unlock()

	if dlg != nil {
		dlg.products.Close()
	}
	f.log.Debug().Msg("diálogo cerrado")
}

func (f *Form) notify(level ports.Level, msg string) {
	if f.deps.Notifier != nil {
		f.deps.Notifier.Notify(level, msg)
	}
}

func opLabel(d Draft) string {
	if d.OperationType == nil || !d.OperationType.Valid() {
		return ""
	}
	return d.OperationType.String()
}
