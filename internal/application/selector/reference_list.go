package selector

import (
	"context"
	"sync"
)

// ReferenceList lista completa (orígenes o centros) que se pide una vez y se
// reutiliza mientras dure el diálogo.
type ReferenceList[T any] struct {
	fetch func(ctx context.Context) ([]T, error)

	mu     sync.Mutex
	items  []T
	loaded bool
}

// NewReferenceList construye la lista sobre la función de carga del repositorio.
func NewReferenceList[T any](fetch func(ctx context.Context) ([]T, error)) *ReferenceList[T] {
	return &ReferenceList[T]{fetch: fetch}
}

// Items devuelve la lista, cargándola en el primer uso. Un error no se cachea.
func (l *ReferenceList[T]) Items(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.loaded {
		return l.items, nil
	}
	return l.loadLocked(ctx)
}

// Reload fuerza una nueva carga.
func (l *ReferenceList[T]) Reload(ctx context.Context) ([]T, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loadLocked(ctx)
}

func (l *ReferenceList[T]) loadLocked(ctx context.Context) ([]T, error) {
	items, err := l.fetch(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	l.items = items
	l.loaded = true
	return items, nil
}
