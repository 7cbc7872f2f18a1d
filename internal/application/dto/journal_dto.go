package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/stock-console/internal/application/journal"
	"github.com/jhoicas/stock-console/internal/domain"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/pkg/i18n"
)

// DateLayout formato de las fechas de filtro (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// MovementResponse fila del journal con etiqueta y color ya resueltos.
type MovementResponse struct {
	ID                   string               `json:"id"`
	OperationType        entity.OperationType `json:"operation_type"`
	OperationLabel       string               `json:"operation_label"`
	Color                string               `json:"color"`
	ProductID            string               `json:"product_id"`
	ProductBarcode       string               `json:"product_barcode,omitempty"`
	ProductGTIN          string               `json:"product_gtin,omitempty"`
	Quantity             int                  `json:"quantity"`
	SourceID             string               `json:"source_id,omitempty"`
	SourceName           string               `json:"source_name,omitempty"`
	DistributionCenterID string               `json:"distribution_center_id,omitempty"`
	DCName               string               `json:"dc_name,omitempty"`
	UserID               string               `json:"user_id,omitempty"`
	Notes                string               `json:"notes,omitempty"`
	CreatedAt            time.Time            `json:"created_at"`
}

// MovementListResponse página del journal.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	PageResponse
}

// JournalFiltersDTO filtros del journal; las fechas en YYYY-MM-DD.
type JournalFiltersDTO struct {
	OperationType string `json:"operation_type,omitempty"`
	ProductID     string `json:"product_id,omitempty"`
	Barcode       string `json:"barcode,omitempty"`
	DateFrom      string `json:"date_from,omitempty"`
	DateTo        string `json:"date_to,omitempty"`
}

// JournalResponse filtros vigentes + página cargada.
type JournalResponse struct {
	Filters  JournalFiltersDTO     `json:"filters"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
	Result   *MovementListResponse `json:"result"`
}

// MovementFromEntity convierte la entidad con los textos del catálogo.
func MovementFromEntity(m entity.Movement, texts *i18n.Catalog) MovementResponse {
	return MovementResponse{
		ID:                   m.ID,
		OperationType:        m.OperationType,
		OperationLabel:       texts.T(m.OperationType.LabelKey()),
		Color:                m.OperationType.Color(),
		ProductID:            m.ProductID,
		ProductBarcode:       m.ProductBarcode,
		ProductGTIN:          m.ProductGTIN,
		Quantity:             m.Quantity,
		SourceID:             m.SourceID,
		SourceName:           m.SourceName,
		DistributionCenterID: m.DistributionCenterID,
		DCName:               m.DCName,
		UserID:               m.UserID,
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
	}
}

// MovementPageFromEntity convierte una página del journal.
func MovementPageFromEntity(p *entity.Page[entity.Movement], texts *i18n.Catalog) *MovementListResponse {
	if p == nil {
		return nil
	}
	out := &MovementListResponse{
		Items:        make([]MovementResponse, 0, len(p.Items)),
		PageResponse: PageResponse{Page: p.Page, PageSize: p.PageSize, Total: p.Total, Pages: p.Pages},
	}
	for _, m := range p.Items {
		out.Items = append(out.Items, MovementFromEntity(m, texts))
	}
	return out
}

// ToFilter valida y convierte los filtros. Un rango incompleto se ignora más adelante.
func (f JournalFiltersDTO) ToFilter() (entity.MovementFilter, error) {
	var out entity.MovementFilter
	if s := strings.TrimSpace(f.OperationType); s != "" {
		op, err := entity.ParseOperationType(s)
		if err != nil {
			return out, fmt.Errorf("%v: %w", err, domain.ErrInvalidInput)
		}
		out.OperationType = &op
	}
	out.ProductID = f.ProductID
	out.Barcode = f.Barcode

	var err error
	if out.DateFrom, err = parseDate(f.DateFrom); err != nil {
		return out, err
	}
	if out.DateTo, err = parseDate(f.DateTo); err != nil {
		return out, err
	}
	return out, nil
}

func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("fecha %q no es YYYY-MM-DD: %w", s, domain.ErrInvalidInput)
	}
	return &t, nil
}

// JournalFromQuery arma la respuesta con los filtros vigentes.
func JournalFromQuery(q journal.Query, page *entity.Page[entity.Movement], texts *i18n.Catalog) JournalResponse {
	f := JournalFiltersDTO{ProductID: q.Filters.ProductID, Barcode: q.Filters.Barcode}
	if q.Filters.OperationType != nil {
		f.OperationType = q.Filters.OperationType.String()
	}
	if q.Filters.DateFrom != nil {
		f.DateFrom = q.Filters.DateFrom.Format(DateLayout)
	}
	if q.Filters.DateTo != nil {
		f.DateTo = q.Filters.DateTo.Format(DateLayout)
	}
	return JournalResponse{
		Filters:  f,
		Page:     q.Page.Page,
		PageSize: q.Page.PageSize,
		Result:   MovementPageFromEntity(page, texts),
	}
}
