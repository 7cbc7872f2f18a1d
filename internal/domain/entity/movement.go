package entity

import "time"

// Movement registro inmutable del journal, emitido por el backend.
type Movement struct {
	ID                   string
	OperationType        OperationType
	ProductID            string
	Quantity             int
	SourceID             string
	DistributionCenterID string
	UserID               string
	Notes                string
	CreatedAt            time.Time

	// Datos de presentación que el backend adjunta.
	ProductBarcode string
	ProductGTIN    string
	SourceName     string
	DCName         string
}

// NewMovement datos para crear un movimiento. Los campos condicionales vacíos no se envían.
type NewMovement struct {
	OperationType        OperationType
	ProductID            string
	Quantity             int
	SourceID             string
	DistributionCenterID string
	Notes                string
}

// MovementFilter filtros del journal. DateFrom/DateTo solo aplican juntos.
type MovementFilter struct {
	OperationType *OperationType
	ProductID     string
	Barcode       string
	DateFrom      *time.Time
	DateTo        *time.Time
}

// HasDateRange indica si el rango de fechas está completo.
func (f MovementFilter) HasDateRange() bool {
	return f.DateFrom != nil && f.DateTo != nil
}
