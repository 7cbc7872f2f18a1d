package domain

import (
	"errors"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrNotAuthenticated = errors.New("sin sesión activa")
	ErrNetwork          = errors.New("error de red")
	ErrServer           = errors.New("error del servidor")
	ErrRejected         = errors.New("operación rechazada por el backend")

	ErrFormClosed       = errors.New("el formulario no está abierto")
	ErrSubmitInProgress = errors.New("hay un envío en curso")
	ErrSelectorClosed   = errors.New("el selector fue cerrado")
)

// ValidationErrors errores por campo. Nunca sale del formulario hacia el backend.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Is permite errors.Is(err, ErrInvalidInput).
func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalidInput
}

// Detailer errores que traen el mensaje original del backend.
type Detailer interface {
	BackendDetail() string
}

// DetailOf devuelve el mensaje del backend contenido en err, o "".
func DetailOf(err error) string {
	var d Detailer
	if errors.As(err, &d) {
		return d.BackendDetail()
	}
	return ""
}
