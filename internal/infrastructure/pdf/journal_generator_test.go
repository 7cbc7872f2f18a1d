package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/internal/domain/entity"
)

func TestJournalGenerator_Export(t *testing.T) {
	doc := ports.JournalExport{
		Title:   "Movement journal",
		Filters: "Filters: Write-off",
		Columns: ports.JournalColumns{CreatedAt: "Date", Operation: "Operation", Quantity: "Qty"},
		Rows: []ports.JournalRow{
			{CreatedAt: "10.01.2024 09:30", OperationLabel: "Write-off", Movement: entity.Movement{OperationType: entity.OperationWriteOff, Quantity: 2}},
			{CreatedAt: "10.01.2024 10:00", OperationLabel: "Receipt", Movement: entity.Movement{OperationType: entity.OperationReceipt, Quantity: 7}},
		},
	}

	g := NewJournalGenerator(Fonts{})
	data, err := g.Export(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Equal(t, "pdf", g.Format())
}

func TestJournalGenerator_FuenteInexistente(t *testing.T) {
	g := NewJournalGenerator(Fonts{Regular: "/no/existe.ttf"})
	_, err := g.Export(context.Background(), ports.JournalExport{Title: "x"})
	assert.Error(t, err)
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, 82, hexColor("#52c41a").Red)
	assert.Equal(t, 196, hexColor("#52c41a").Green)
	assert.Equal(t, 26, hexColor("#52c41a").Blue)
	assert.Same(t, colorGray, hexColor("nope"))
}
