// Package i18n concentra los textos visibles por el operador (notificaciones y
// etiquetas de operaciones) sobre golang.org/x/text. El idioma por defecto es ruso,
// que es el de los usuarios del almacén.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"golang.org/x/text/number"
)

// Claves de mensajes.
const (
	MsgNetworkError    = "notify.network_error"
	MsgServerError     = "notify.server_error"
	MsgSessionExpired  = "notify.session_expired"
	MsgMovementCreated = "notify.movement_created"
	MsgMovementFailed  = "notify.movement_failed"
	MsgRefreshFailed   = "notify.refresh_failed"
	MsgLoadFailed      = "notify.load_failed"
	MsgRequired        = "validation.required"
	MsgPositiveInt     = "validation.positive_int"
	MsgUnknownOption   = "validation.unknown_option"
	MsgNoData          = "common.no_data"
)

var supported = []language.Tag{language.Russian, language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

var builder = catalog.NewBuilder(catalog.Fallback(language.Russian))

var messages = map[string][3]string{
	//                   ru                                  en                                   es
	MsgNetworkError:    {"Ошибка сети", "Network error", "Error de red"},
	MsgServerError:     {"Ошибка сервера", "Server error", "Error del servidor"},
	MsgSessionExpired:  {"Сессия истекла, войдите снова", "Session expired, please sign in again", "La sesión expiró, inicie sesión de nuevo"},
	MsgMovementCreated: {"Операция «%s» выполнена", "Operation \"%s\" recorded", "Operación «%s» registrada"},
	MsgMovementFailed:  {"Не удалось выполнить операцию: %s", "Operation failed: %s", "No se pudo registrar la operación: %s"},
	MsgRefreshFailed:   {"Не удалось обновить «%s»", "Could not refresh \"%s\"", "No se pudo actualizar «%s»"},
	MsgLoadFailed:      {"Не удалось загрузить «%s»", "Could not load \"%s\"", "No se pudo cargar «%s»"},
	MsgRequired:        {"Обязательное поле", "Required field", "Campo obligatorio"},
	MsgPositiveInt:     {"Количество должно быть целым числом больше нуля", "Quantity must be a positive integer", "La cantidad debe ser un entero positivo"},
	MsgUnknownOption:   {"Значение не найдено", "Unknown value", "Valor desconocido"},
	MsgNoData:          {"Нет данных", "No data", "Sin datos"},

	"op.receipt":        {"Приёмка", "Receipt", "Recepción"},
	"op.receipt_defect": {"Приёмка брака", "Defect receipt", "Recepción de defectuosos"},
	"op.shipment_rc":    {"Отгрузка в РЦ", "Shipment to DC", "Envío a CD"},
	"op.return_pickup":  {"Возврат с ПВЗ", "Return from pickup point", "Devolución desde punto de recogida"},
	"op.return_defect":  {"Возврат брака", "Defect return", "Devolución de defectuosos"},
	"op.self_purchase":  {"Самовыкуп", "Self-purchase", "Autocompra"},
	"op.write_off":      {"Списание в брак", "Write-off", "Baja por defecto"},
	"op.restoration":    {"Восстановление", "Restoration", "Restauración"},
	"op.utilization":    {"Утилизация", "Utilization", "Eliminación"},

	"view.stock_summary": {"Сводка по складу", "Stock summary", "Resumen de stock"},
	"view.products":      {"Товары", "Products", "Productos"},
	"view.journal":       {"Журнал операций", "Movement journal", "Diario de movimientos"},

	"col.created_at": {"Дата", "Date", "Fecha"},
	"col.operation":  {"Операция", "Operation", "Operación"},
	"col.barcode":    {"Баркод", "Barcode", "Código de barras"},
	"col.gtin":       {"GTIN", "GTIN", "GTIN"},
	"col.quantity":   {"Кол-во", "Qty", "Cant."},
	"col.source":     {"Источник", "Source", "Origen"},
	"col.dc":         {"РЦ", "DC", "CD"},
	"col.notes":      {"Комментарий", "Notes", "Notas"},
	"export.filters": {"Фильтры: %s", "Filters: %s", "Filtros: %s"},
}

func init() {
	for key, texts := range messages {
		for i, tag := range supported {
			if err := builder.SetString(tag, key, texts[i]); err != nil {
				panic("i18n: " + key + ": " + err.Error())
			}
		}
	}
}

// Catalog imprime mensajes en un idioma fijo.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New elige el idioma soportado más cercano a locale (ru si no hay coincidencia).
func New(locale string) *Catalog {
	_, idx, conf := matcher.Match(language.Make(locale))
	if conf == language.No {
		idx = 0
	}
	tag := supported[idx]
	return &Catalog{tag: tag, printer: message.NewPrinter(tag, message.Catalog(builder))}
}

// Tag idioma efectivo.
func (c *Catalog) Tag() language.Tag { return c.tag }

// T traduce key aplicando args como en fmt.Sprintf.
func (c *Catalog) T(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}

// Number formatea un entero con la agrupación del idioma.
func (c *Catalog) Number(n int) string {
	return c.printer.Sprint(number.Decimal(n))
}
