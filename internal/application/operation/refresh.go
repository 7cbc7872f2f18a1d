package operation

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/pkg/i18n"
	"github.com/jhoicas/stock-console/pkg/metrics"
)

// View vista que depende de los movimientos (resumen, productos, journal).
// Capture congela sus parámetros actuales y devuelve la recarga correspondiente.
type View interface {
	Name() string
	Capture() func(ctx context.Context) error
}

// RefreshResult resultado de recargar una vista tras el envío.
type RefreshResult struct {
	View string
	Err  error
}

type reloader struct {
	name   string
	reload func(ctx context.Context) error
}

func capture(views []View) []reloader {
	out := make([]reloader, 0, len(views))
	for _, v := range views {
		if v == nil {
			continue
		}
		out = append(out, reloader{name: v.Name(), reload: v.Capture()})
	}
	return out
}

// refreshAll recarga todas las vistas en paralelo; un fallo no afecta a las demás
// ni al movimiento ya creado.
func (f *Form) refreshAll(ctx context.Context, reloaders []reloader) []RefreshResult {
	results := make([]RefreshResult, len(reloaders))
	var wg sync.WaitGroup
	for i, r := range reloaders {
		wg.Add(1)
		go func(i int, r reloader) {
			defer wg.Done()
			err := r.reload(ctx)
			results[i] = RefreshResult{View: r.name, Err: err}
			if err != nil {
				metrics.ViewRefreshes.WithLabelValues(r.name, "failed").Inc()
				f.log.Warn().Err(err).Str("view", r.name).Msg("no se pudo recargar la vista")
				f.notify(ports.LevelError, f.deps.Texts.T(i18n.MsgRefreshFailed, f.deps.Texts.T(r.name)))
				return
			}
			metrics.ViewRefreshes.WithLabelValues(r.name, "ok").Inc()
		}(i, r)
	}
	wg.Wait()
	return results
}
