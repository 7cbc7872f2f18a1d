package dto

import (
	"encoding/json"

	"github.com/jhoicas/stock-console/internal/application/operation"
	"github.com/jhoicas/stock-console/internal/application/selector"
	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/pkg/i18n"
)

// OperationTypeResponse tipo de operación con su política de campos.
type OperationTypeResponse struct {
	Code           entity.OperationType `json:"code"`
	Label          string               `json:"label"`
	Color          string               `json:"color"`
	SourceRequired bool                 `json:"source_required"`
	DCRequired     bool                 `json:"dc_required"`
}

// OperationTypesFromCatalog tabla completa en orden de presentación.
func OperationTypesFromCatalog(texts *i18n.Catalog) []OperationTypeResponse {
	types := entity.OperationTypes()
	out := make([]OperationTypeResponse, 0, len(types))
	for _, t := range types {
		p := t.Policy()
		out = append(out, OperationTypeResponse{
			Code:           t,
			Label:          texts.T(t.LabelKey()),
			Color:          t.Color(),
			SourceRequired: p.SourceRequired,
			DCRequired:     p.DCRequired,
		})
	}
	return out
}

// DraftPatchRequest body de PATCH /api/console/operation/draft. Campos ausentes no cambian.
type DraftPatchRequest struct {
	OperationType        *entity.OperationType `json:"operation_type"`
	ProductID            *string               `json:"product_id"`
	Quantity             *json.Number          `json:"quantity"`
	SourceID             *string               `json:"source_id"`
	DistributionCenterID *string               `json:"distribution_center_id"`
	Notes                *string               `json:"notes"`
}

// ToPatch convierte el body; una cantidad que no es entero es error de validación.
func (r DraftPatchRequest) ToPatch(texts *i18n.Catalog) (operation.Patch, error) {
	p := operation.Patch{
		OperationType:        r.OperationType,
		ProductID:            r.ProductID,
		SourceID:             r.SourceID,
		DistributionCenterID: r.DistributionCenterID,
		Notes:                r.Notes,
	}
	if r.Quantity != nil {
		n, err := r.Quantity.Int64()
		if err != nil {
			return p, domain.ValidationErrors{operation.FieldQuantity: texts.T(i18n.MsgPositiveInt)}
		}
		q := int(n)
		p.Quantity = &q
	}
	return p, nil
}

// DraftDTO borrador actual.
type DraftDTO struct {
	OperationType        *entity.OperationType `json:"operation_type"`
	ProductID            string                `json:"product_id"`
	Quantity             *int                  `json:"quantity"`
	SourceID             string                `json:"source_id"`
	DistributionCenterID string                `json:"distribution_center_id"`
	Notes                string                `json:"notes"`
}

// FieldsDTO campos condicionales visibles.
type FieldsDTO struct {
	Source             bool `json:"source"`
	DistributionCenter bool `json:"distribution_center"`
}

// FormResponse estado del diálogo de operación.
type FormResponse struct {
	State      string    `json:"state"`
	Generation uint64    `json:"generation"`
	Draft      DraftDTO  `json:"draft"`
	Fields     FieldsDTO `json:"fields"`
}

// FormFromSnapshot convierte la foto del formulario.
func FormFromSnapshot(s operation.Snapshot) FormResponse {
	return FormResponse{
		State:      s.State.String(),
		Generation: s.Generation,
		Draft: DraftDTO{
			OperationType:        s.Draft.OperationType,
			ProductID:            s.Draft.ProductID,
			Quantity:             s.Draft.Quantity,
			SourceID:             s.Draft.SourceID,
			DistributionCenterID: s.Draft.DistributionCenterID,
			Notes:                s.Draft.Notes,
		},
		Fields: FieldsDTO{Source: s.Fields.Source, DistributionCenter: s.Fields.DistributionCenter},
	}
}

// RefreshDTO resultado de recargar una vista tras el envío.
type RefreshDTO struct {
	View  string `json:"view"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// SubmitResponse movimiento creado y recargas.
type SubmitResponse struct {
	Movement  MovementResponse `json:"movement"`
	Refreshes []RefreshDTO     `json:"refreshes"`
	Detached  bool             `json:"detached"`
}

// SubmitFromResult convierte el resultado del envío.
func SubmitFromResult(r *operation.SubmitResult, texts *i18n.Catalog) SubmitResponse {
	out := SubmitResponse{
		Movement:  MovementFromEntity(*r.Movement, texts),
		Refreshes: make([]RefreshDTO, 0, len(r.Refreshes)),
		Detached:  r.Detached,
	}
	for _, rf := range r.Refreshes {
		d := RefreshDTO{View: rf.View, OK: rf.Err == nil}
		if rf.Err != nil {
			d.Error = rf.Err.Error()
		}
		out.Refreshes = append(out.Refreshes, d)
	}
	return out
}

// ProductSearchRequest texto escrito en el selector.
type ProductSearchRequest struct {
	Query string `json:"query"`
}

// SelectProductRequest producto elegido entre las opciones.
type SelectProductRequest struct {
	ProductID string `json:"product_id"`
}

// ProductOptionDTO opción del desplegable.
type ProductOptionDTO struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Product ProductResponse `json:"product"`
}

// SelectorResponse estado del selector de productos.
type SelectorResponse struct {
	Query      string             `json:"query"`
	Options    []ProductOptionDTO `json:"options"`
	Loading    bool               `json:"loading"`
	Empty      bool               `json:"empty"`
	SelectedID string             `json:"selected_id,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// SelectorFromState convierte la foto del selector.
func SelectorFromState(s selector.State) SelectorResponse {
	out := SelectorResponse{
		Query:      s.Query,
		Options:    make([]ProductOptionDTO, 0, len(s.Options)),
		Loading:    s.Loading,
		Empty:      s.Empty,
		SelectedID: s.SelectedID,
	}
	for _, o := range s.Options {
		out.Options = append(out.Options, ProductOptionDTO{ID: o.ID, Label: o.Label, Product: ProductFromEntity(o.Product)})
	}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	return out
}

// SourceResponse origen (ПВЗ).
type SourceResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DistributionCenterResponse centro de distribución (РЦ).
type DistributionCenterResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	Marketplace string `json:"marketplace,omitempty"`
	Label       string `json:"label"`
}

// SourcesFromEntity convierte la lista.
func SourcesFromEntity(items []entity.Source) []SourceResponse {
	out := make([]SourceResponse, 0, len(items))
	for _, s := range items {
		out = append(out, SourceResponse{ID: s.ID, Name: s.Name, Description: s.Description})
	}
	return out
}

// DistributionCentersFromEntity convierte la lista.
func DistributionCentersFromEntity(items []entity.DistributionCenter) []DistributionCenterResponse {
	out := make([]DistributionCenterResponse, 0, len(items))
	for _, d := range items {
		out = append(out, DistributionCenterResponse{ID: d.ID, Code: d.Code, Name: d.Name, Marketplace: d.Marketplace, Label: d.Label()})
	}
	return out
}
