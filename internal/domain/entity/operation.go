package entity

import (
	"fmt"
)

// OperationType tipo de movimiento de stock. Conjunto cerrado.
type OperationType int

const (
	OperationReceipt OperationType = iota
	OperationReceiptDefect
	OperationShipmentRC
	OperationReturnPickup
	OperationReturnDefect
	OperationSelfPurchase
	OperationWriteOff
	OperationRestoration
	OperationUtilization

	operationTypeCount
)

var operationCodes = [...]string{
	OperationReceipt:       "receipt",
	OperationReceiptDefect: "receipt_defect",
	OperationShipmentRC:    "shipment_rc",
	OperationReturnPickup:  "return_pickup",
	OperationReturnDefect:  "return_defect",
	OperationSelfPurchase:  "self_purchase",
	OperationWriteOff:      "write_off",
	OperationRestoration:   "restoration",
	OperationUtilization:   "utilization",
}

// FieldPolicy campos condicionales que exige un tipo de operación.
type FieldPolicy struct {
	SourceRequired bool `json:"source_required"`
	DCRequired     bool `json:"dc_required"`
}

var operationPolicies = [...]FieldPolicy{
	OperationReceipt:       {},
	OperationReceiptDefect: {},
	OperationShipmentRC:    {DCRequired: true},
	OperationReturnPickup:  {SourceRequired: true},
	OperationReturnDefect:  {SourceRequired: true},
	OperationSelfPurchase:  {SourceRequired: true},
	OperationWriteOff:      {},
	OperationRestoration:   {},
	OperationUtilization:   {},
}

// Color de la etiqueta en el journal.
var operationColors = [...]string{
	OperationReceipt:       "#52c41a",
	OperationReceiptDefect: "#fa8c16",
	OperationShipmentRC:    "#1890ff",
	OperationReturnPickup:  "#52c41a",
	OperationReturnDefect:  "#fa8c16",
	OperationSelfPurchase:  "#52c41a",
	OperationWriteOff:      "#ff4d4f",
	OperationRestoration:   "#52c41a",
	OperationUtilization:   "#ff4d4f",
}

// Agregar un tipo sin su código, política o color rompe la compilación.
var (
	_ = [1]struct{}{}[len(operationCodes)-int(operationTypeCount)]
	_ = [1]struct{}{}[len(operationPolicies)-int(operationTypeCount)]
	_ = [1]struct{}{}[len(operationColors)-int(operationTypeCount)]
)

// OperationTypes todos los tipos en el orden en que se muestran.
func OperationTypes() []OperationType {
	out := make([]OperationType, 0, operationTypeCount)
	for t := OperationType(0); t < operationTypeCount; t++ {
		out = append(out, t)
	}
	return out
}

// ParseOperationType convierte el código de wire ("shipment_rc") al enum.
func ParseOperationType(s string) (OperationType, error) {
	for i, code := range operationCodes {
		if code == s {
			return OperationType(i), nil
		}
	}
	return 0, fmt.Errorf("tipo de operación desconocido %q", s)
}

// Valid indica si t pertenece al conjunto cerrado.
func (t OperationType) Valid() bool {
	return t >= 0 && t < operationTypeCount
}

// String código de wire.
func (t OperationType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("OperationType(%d)", int(t))
	}
	return operationCodes[t]
}

// Policy función total tipo -> campos condicionales.
func (t OperationType) Policy() FieldPolicy {
	if !t.Valid() {
		return FieldPolicy{}
	}
	return operationPolicies[t]
}

// Color hex de la etiqueta; gris para valores fuera del conjunto.
func (t OperationType) Color() string {
	if !t.Valid() {
		return "#8c8c8c"
	}
	return operationColors[t]
}

// LabelKey clave del catálogo i18n con el nombre visible.
func (t OperationType) LabelKey() string {
	return "op." + t.String()
}

func (t OperationType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("tipo de operación inválido %d", int(t))
	}
	return []byte(operationCodes[t]), nil
}

func (t *OperationType) UnmarshalText(b []byte) error {
	v, err := ParseOperationType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
