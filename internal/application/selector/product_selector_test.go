package selector_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/application/selector"
	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del repositorio de productos
// ──────────────────────────────────────────────────────────────────────────────

type searchCall struct {
	query   string
	release chan struct{}
}

// fakeProducts registra las búsquedas; si gated, cada llamada espera a que el
// test la libere para poder forzar respuestas fuera de orden.
type fakeProducts struct {
	gated bool

	mu    sync.Mutex
	calls []*searchCall
	err   error
}

func (f *fakeProducts) List(ctx context.Context, q entity.PageQuery, barcode string) (*entity.Page[entity.Product], error) {
	call := &searchCall{query: barcode, release: make(chan struct{})}
	f.mu.Lock()
	f.calls = append(f.calls, call)
	err := f.err
	f.mu.Unlock()

	if f.gated {
		<-call.release
	}
	if err != nil {
		return nil, err
	}
	items := []entity.Product{}
	if barcode != "none" {
		items = append(items, entity.Product{ID: "id-" + barcode, Barcode: barcode, Brand: "Nova"})
	}
	return &entity.Page[entity.Product]{Items: items, Total: len(items), Page: 1, PageSize: q.PageSize, Pages: 1}, nil
}

func (f *fakeProducts) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.query)
	}
	return out
}

func (f *fakeProducts) call(i int) *searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[i]
}

func newSelector(repo *fakeProducts, debounce time.Duration, onSelect func(string)) *selector.ProductSelector {
	return selector.NewProductSelector(repo, selector.Config{Debounce: debounce, MinChars: 2, PageSize: 20}, logger.Nop(), onSelect)
}

// ──────────────────────────────────────────────────────────────────────────────
// Umbral y debounce
// ──────────────────────────────────────────────────────────────────────────────

func TestInput_MenosDeDosCaracteresNoBusca(t *testing.T) {
	repo := &fakeProducts{}
	s := newSelector(repo, time.Millisecond, nil)
	defer s.Close()

	require.NoError(t, s.Input("a"))
	time.Sleep(30 * time.Millisecond)

	assert.Empty(t, repo.queries())
	st := s.State()
	assert.Empty(t, st.Options)
	assert.False(t, st.Empty)
}

func TestInput_MinCharsMenorADosSeIgnora(t *testing.T) {
	repo := &fakeProducts{}
	s := selector.NewProductSelector(repo, selector.Config{Debounce: time.Millisecond, MinChars: 1}, logger.Nop(), nil)
	defer s.Close()

	require.NoError(t, s.Input("a"))
	time.Sleep(30 * time.Millisecond)

	assert.Empty(t, repo.queries(), "un carácter nunca llega al backend")
}

func TestInput_DebounceSoloBuscaLaUltima(t *testing.T) {
	repo := &fakeProducts{}
	s := newSelector(repo, 40*time.Millisecond, nil)
	defer s.Close()

	require.NoError(t, s.Input("ab"))
	require.NoError(t, s.Input("abc"))

	require.Eventually(t, func() bool { return len(s.State().Options) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(80 * time.Millisecond)

	assert.Equal(t, []string{"abc"}, repo.queries())
	assert.Equal(t, "id-abc", s.State().Options[0].ID)
	assert.Equal(t, "abc | - | Nova", s.State().Options[0].Label)
}

func TestInput_SinResultadosEsEstadoVacio(t *testing.T) {
	repo := &fakeProducts{}
	s := newSelector(repo, time.Millisecond, nil)
	defer s.Close()

	require.NoError(t, s.Input("none"))
	require.Eventually(t, func() bool { return s.State().Empty }, time.Second, 5*time.Millisecond)
	assert.NoError(t, s.State().Err)
}

func TestInput_ErrorDeBusqueda(t *testing.T) {
	repo := &fakeProducts{err: domain.ErrNetwork}
	s := newSelector(repo, time.Millisecond, nil)
	defer s.Close()

	require.NoError(t, s.Input("46"))
	require.Eventually(t, func() bool { return s.State().Err != nil }, time.Second, 5*time.Millisecond)
	assert.True(t, errors.Is(s.State().Err, domain.ErrNetwork))
	assert.False(t, s.State().Loading)
}

// ──────────────────────────────────────────────────────────────────────────────
// Respuestas fuera de orden
// ──────────────────────────────────────────────────────────────────────────────

func TestRespuestaTardiaNoPisaLaUltima(t *testing.T) {
	repo := &fakeProducts{gated: true}
	s := newSelector(repo, time.Millisecond, nil)
	defer s.Close()

	require.NoError(t, s.Input("ab"))
	require.Eventually(t, func() bool { return len(repo.queries()) == 1 }, time.Second, time.Millisecond)

	require.NoError(t, s.Input("abc"))
	require.Eventually(t, func() bool { return len(repo.queries()) == 2 }, time.Second, time.Millisecond)

	// "abc" responde primero, "ab" después.
	close(repo.call(1).release)
	require.Eventually(t, func() bool { return len(s.State().Options) == 1 }, time.Second, time.Millisecond)
	close(repo.call(0).release)
	time.Sleep(30 * time.Millisecond)

	opts := s.State().Options
	require.Len(t, opts, 1)
	assert.Equal(t, "id-abc", opts[0].ID)
}

func TestBajarDelUmbralDescartaBusquedaEnVuelo(t *testing.T) {
	repo := &fakeProducts{gated: true}
	s := newSelector(repo, time.Millisecond, nil)
	defer s.Close()

	require.NoError(t, s.Input("ab"))
	require.Eventually(t, func() bool { return len(repo.queries()) == 1 }, time.Second, time.Millisecond)
	require.NoError(t, s.Input("a"))
	close(repo.call(0).release)
	time.Sleep(30 * time.Millisecond)

	assert.Empty(t, s.State().Options)
}

// ──────────────────────────────────────────────────────────────────────────────
// Selección, limpieza y cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestSelectYClear(t *testing.T) {
	repo := &fakeProducts{}
	var got []string
	s := newSelector(repo, time.Millisecond, func(id string) { got = append(got, id) })
	defer s.Close()

	require.NoError(t, s.Input("4601"))
	require.Eventually(t, func() bool { return len(s.State().Options) == 1 }, time.Second, 5*time.Millisecond)

	_, err := s.Select("otro")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	opt, err := s.Select("id-4601")
	require.NoError(t, err)
	assert.Equal(t, "4601", opt.Product.Barcode)
	assert.Equal(t, "id-4601", s.State().SelectedID)

	s.Clear()
	st := s.State()
	assert.Empty(t, st.SelectedID)
	assert.Empty(t, st.Options)
	assert.Empty(t, st.Query)
	assert.Equal(t, []string{"id-4601", ""}, got)
}

func TestClose_CancelaDebouncePendiente(t *testing.T) {
	repo := &fakeProducts{}
	s := newSelector(repo, 30*time.Millisecond, nil)

	require.NoError(t, s.Input("abc"))
	s.Close()
	time.Sleep(80 * time.Millisecond)

	assert.Empty(t, repo.queries())
	assert.ErrorIs(t, s.Input("abcd"), domain.ErrSelectorClosed)
}

func TestClose_IgnoraRespuestaEnVuelo(t *testing.T) {
	repo := &fakeProducts{gated: true}
	s := newSelector(repo, time.Millisecond, nil)

	require.NoError(t, s.Input("abc"))
	require.Eventually(t, func() bool { return len(repo.queries()) == 1 }, time.Second, time.Millisecond)
	s.Close()
	close(repo.call(0).release)
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, s.State().Options)
}
