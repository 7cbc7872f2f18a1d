package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-console/internal/application/dto"
	"github.com/jhoicas/stock-console/internal/application/journal"
	"github.com/jhoicas/stock-console/internal/domain/entity"
	"github.com/jhoicas/stock-console/pkg/i18n"
)

// JournalHandler journal de movimientos: filtros, paginación y exportación.
type JournalHandler struct {
	view   *journal.View
	export *journal.ExportService
	texts  *i18n.Catalog
}

// NewJournalHandler construye el handler.
func NewJournalHandler(view *journal.View, export *journal.ExportService, texts *i18n.Catalog) *JournalHandler {
	return &JournalHandler{view: view, export: export, texts: texts}
}

func (h *JournalHandler) respond(c *fiber.Ctx, page *entity.Page[entity.Movement]) error {
	return c.JSON(dto.JournalFromQuery(h.view.Query(), page, h.texts))
}

// Get godoc
// @Summary      Cargar el journal con los filtros vigentes
// @Tags         journal
// @Produce      json
// @Success      200  {object}  dto.JournalResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/console/journal [get]
func (h *JournalHandler) Get(c *fiber.Ctx) error {
	page, err := h.view.Reload(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, page)
}

// PutFilters godoc
// @Summary      Aplicar filtros
// @Description  Vuelve a la página 1 conservando el tamaño. El rango de fechas solo aplica con ambos extremos.
// @Tags         journal
// @Accept       json
// @Produce      json
// @Param        body  body  dto.JournalFiltersDTO  true  "Filtros"
// @Success      200   {object}  dto.JournalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/console/journal/filters [put]
func (h *JournalHandler) PutFilters(c *fiber.Ctx) error {
	var in dto.JournalFiltersDTO
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	filter, err := in.ToFilter()
	if err != nil {
		return writeError(c, err)
	}
	page, err := h.view.ApplyFilters(c.Context(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, page)
}

// DeleteFilters godoc
// @Summary      Quitar filtros (página 1 de 20)
// @Tags         journal
// @Produce      json
// @Success      200  {object}  dto.JournalResponse
// @Router       /api/console/journal/filters [delete]
func (h *JournalHandler) DeleteFilters(c *fiber.Ctx) error {
	page, err := h.view.ResetFilters(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, page)
}

// PutPage godoc
// @Summary      Cambiar de página conservando filtros
// @Tags         journal
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PageRequest  true  "page, page_size"
// @Success      200   {object}  dto.JournalResponse
// @Router       /api/console/journal/page [put]
func (h *JournalHandler) PutPage(c *fiber.Ctx) error {
	var in dto.PageRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	page, err := h.view.SetPage(c.Context(), in.Page, in.PageSize)
	if err != nil {
		return writeError(c, err)
	}
	return h.respond(c, page)
}

// Export godoc
// @Summary      Exportar el journal filtrado
// @Tags         journal
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  false  "xlsx | pdf"  default(xlsx)
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/console/journal/export [get]
func (h *JournalHandler) Export(c *fiber.Ctx) error {
	file, err := h.export.Export(c.Context(), c.Query("format", "xlsx"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+file.Name+`"`)
	c.Set("X-Export-Rows", strconv.Itoa(file.Rows))
	if file.Truncated {
		c.Set("X-Export-Truncated", "true")
	}
	return c.Send(file.Data)
}
