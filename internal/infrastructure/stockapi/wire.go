package stockapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/stock-console/internal/domain/entity"
)

// apiTime acepta fechas con y sin zona; el backend serializa datetimes naive.
type apiTime struct {
	time.Time
}

var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func (t *apiTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	for _, layout := range apiTimeLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("fecha no reconocida %q", s)
}

type pageWire[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Pages    int `json:"pages"`
}

func toPage[W any, E any](w pageWire[W], conv func(W) E) *entity.Page[E] {
	items := make([]E, 0, len(w.Items))
	for _, it := range w.Items {
		items = append(items, conv(it))
	}
	return &entity.Page[E]{
		Items:    items,
		Total:    w.Total,
		Page:     w.Page,
		PageSize: w.PageSize,
		Pages:    w.Pages,
	}
}

type productWire struct {
	ID             string  `json:"id"`
	Barcode        string  `json:"barcode"`
	GTIN           string  `json:"gtin"`
	SellerSKU      *string `json:"seller_sku"`
	Size           *string `json:"size"`
	Brand          *string `json:"brand"`
	Color          *string `json:"color"`
	StockQuantity  int     `json:"stock_quantity"`
	DefectQuantity int     `json:"defect_quantity"`
	CreatedAt      apiTime `json:"created_at"`
	UpdatedAt      apiTime `json:"updated_at"`
}

func (w productWire) toEntity() entity.Product {
	return entity.Product{
		ID:          w.ID,
		Barcode:     w.Barcode,
		GTIN:        w.GTIN,
		SellerSKU:   deref(w.SellerSKU),
		Size:        deref(w.Size),
		Brand:       deref(w.Brand),
		Color:       deref(w.Color),
		Stock:       w.StockQuantity,
		DefectStock: w.DefectQuantity,
		CreatedAt:   w.CreatedAt.Time,
		UpdatedAt:   w.UpdatedAt.Time,
	}
}

type movementWire struct {
	ID                   string               `json:"id"`
	OperationType        entity.OperationType `json:"operation_type"`
	ProductID            string               `json:"product_id"`
	Quantity             int                  `json:"quantity"`
	SourceID             *string              `json:"source_id"`
	DistributionCenterID *string              `json:"distribution_center_id"`
	UserID               string               `json:"user_id"`
	Notes                *string              `json:"notes"`
	CreatedAt            apiTime              `json:"created_at"`
	ProductBarcode       *string              `json:"product_barcode"`
	ProductGTIN          *string              `json:"product_gtin"`
	SourceName           *string              `json:"source_name"`
	DCName               *string              `json:"dc_name"`
}

func (w movementWire) toEntity() entity.Movement {
	return entity.Movement{
		ID:                   w.ID,
		OperationType:        w.OperationType,
		ProductID:            w.ProductID,
		Quantity:             w.Quantity,
		SourceID:             deref(w.SourceID),
		DistributionCenterID: deref(w.DistributionCenterID),
		UserID:               w.UserID,
		Notes:                deref(w.Notes),
		CreatedAt:            w.CreatedAt.Time,
		ProductBarcode:       deref(w.ProductBarcode),
		ProductGTIN:          deref(w.ProductGTIN),
		SourceName:           deref(w.SourceName),
		DCName:               deref(w.DCName),
	}
}

// movementCreateWire cuerpo de POST /stock/movements. Los opcionales vacíos se omiten.
type movementCreateWire struct {
	OperationType        entity.OperationType `json:"operation_type"`
	ProductID            string               `json:"product_id"`
	Quantity             int                  `json:"quantity"`
	SourceID             *string              `json:"source_id,omitempty"`
	DistributionCenterID *string              `json:"distribution_center_id,omitempty"`
	Notes                *string              `json:"notes,omitempty"`
}

func newMovementCreateWire(m entity.NewMovement) movementCreateWire {
	return movementCreateWire{
		OperationType:        m.OperationType,
		ProductID:            m.ProductID,
		Quantity:             m.Quantity,
		SourceID:             ptr(m.SourceID),
		DistributionCenterID: ptr(m.DistributionCenterID),
		Notes:                ptr(m.Notes),
	}
}

type summaryWire struct {
	TotalProducts int `json:"total_products"`
	TotalStock    int `json:"total_stock"`
	TotalDefect   int `json:"total_defect"`
}

type sourceWire struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type dcWire struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Marketplace string `json:"marketplace"`
}

type userWire struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	IsActive  bool    `json:"is_active"`
	CreatedAt apiTime `json:"created_at"`
}

type loginWire struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenWire struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
