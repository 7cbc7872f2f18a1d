package operation

import (
	"strings"

	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/pkg/i18n"
)

// Nombres de campo usados en ValidationErrors.
const (
	FieldOperationType      = "operation_type"
	FieldProduct            = "product_id"
	FieldQuantity           = "quantity"
	FieldSource             = "source_id"
	FieldDistributionCenter = "distribution_center_id"
	FieldNotes              = "notes"
)

// Draft borrador del diálogo. Vive solo mientras el formulario está abierto.
type Draft struct {
	OperationType        *entity.OperationType
	ProductID            string
	Quantity             *int
	SourceID             string
	DistributionCenterID string
	Notes                string
}

// Patch cambios parciales al borrador; nil deja el campo como está.
type Patch struct {
	OperationType        *entity.OperationType
	ProductID            *string
	Quantity             *int
	SourceID             *string
	DistributionCenterID *string
	Notes                *string
}

func (d *Draft) apply(p Patch) {
	if p.OperationType != nil {
		op := *p.OperationType
		d.OperationType = &op
	}
	if p.ProductID != nil {
		d.ProductID = strings.TrimSpace(*p.ProductID)
	}
	if p.Quantity != nil {
		q := *p.Quantity
		d.Quantity = &q
	}
	if p.SourceID != nil {
		d.SourceID = strings.TrimSpace(*p.SourceID)
	}
	if p.DistributionCenterID != nil {
		d.DistributionCenterID = strings.TrimSpace(*p.DistributionCenterID)
	}
	if p.Notes != nil {
		d.Notes = strings.TrimSpace(*p.Notes)
	}
}

// Fields visibilidad de los campos condicionales.
type Fields struct {
	Source             bool
	DistributionCenter bool
}

// Fields según la política del tipo elegido; sin tipo no se muestra ninguno.
func (d Draft) Fields() Fields {
	if d.OperationType == nil {
		return Fields{}
	}
	p := d.OperationType.Policy()
	return Fields{Source: p.SourceRequired, DistributionCenter: p.DCRequired}
}

// Validate devuelve nil si el borrador se puede enviar. Los campos ocultos no se validan.
func (d Draft) Validate(texts *i18n.Catalog) domain.ValidationErrors {
	errs := domain.ValidationErrors{}
	switch {
	case d.OperationType == nil:
		errs[FieldOperationType] = texts.T(i18n.MsgRequired)
	case !d.OperationType.Valid():
		errs[FieldOperationType] = texts.T(i18n.MsgUnknownOption)
	}
	if d.ProductID == "" {
		errs[FieldProduct] = texts.T(i18n.MsgRequired)
	}
	switch {
	case d.Quantity == nil:
		errs[FieldQuantity] = texts.T(i18n.MsgRequired)
	case *d.Quantity < 1:
		errs[FieldQuantity] = texts.T(i18n.MsgPositiveInt)
	}

	fields := d.Fields()
	if fields.Source && d.SourceID == "" {
		errs[FieldSource] = texts.T(i18n.MsgRequired)
	}
	if fields.DistributionCenter && d.DistributionCenterID == "" {
		errs[FieldDistributionCenter] = texts.T(i18n.MsgRequired)
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// payload excluye los campos condicionales que la política oculta.
func (d Draft) payload() entity.NewMovement {
	m := entity.NewMovement{
		OperationType: *d.OperationType,
		ProductID:     d.ProductID,
		Quantity:      *d.Quantity,
		Notes:         d.Notes,
	}
	fields := d.Fields()
	if fields.Source {
		m.SourceID = d.SourceID
	}
	if fields.DistributionCenter {
		m.DistributionCenterID = d.DistributionCenterID
	}
	return m
}

func (d Draft) clone() Draft {
	out := d
	if d.OperationType != nil {
		op := *d.OperationType
		out.OperationType = &op
	}
	if d.Quantity != nil {
		q := *d.Quantity
		out.Quantity = &q
	}
	return out
}
