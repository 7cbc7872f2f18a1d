package selector_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/application/selector"
	"github.com/jhoicas/stock-console/internal/domain/entity"
)

func TestReferenceList_CargaUnaVez(t *testing.T) {
	calls := 0
	l := selector.NewReferenceList(func(context.Context) ([]entity.Source, error) {
		calls++
		return []entity.Source{{ID: "s1", Name: "ПВЗ"}}, nil
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		items, err := l.Items(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	}
	assert.Equal(t, 1, calls)

	_, err := l.Reload(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestReferenceList_ErrorNoSeCachea(t *testing.T) {
	fail := true
	l := selector.NewReferenceList(func(context.Context) ([]entity.DistributionCenter, error) {
		if fail {
			return nil, errors.New("boom")
		}
		return nil, nil
	})

	_, err := l.Items(context.Background())
	assert.Error(t, err)

	fail = false
	items, err := l.Items(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
