package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-console/internal/application/dto"
	"github.com/jhoicas/stock-console/internal/application/operation"
	"github.com/jhoicas/stock-console/pkg/i18n"
)

// OperationHandler diálogo de registro de movimientos.
type OperationHandler struct {
	form  *operation.Form
	texts *i18n.Catalog
	// vistas que se recargan tras un envío, según desde dónde se abrió el diálogo
	views map[string][]operation.View
}

// NewOperationHandler construye el handler. views["dashboard"] y views["journal"]
// son las vistas dependientes de cada página.
func NewOperationHandler(form *operation.Form, texts *i18n.Catalog, views map[string][]operation.View) *OperationHandler {
	return &OperationHandler{form: form, texts: texts, views: views}
}

func (h *OperationHandler) state(c *fiber.Ctx) error {
	return c.JSON(dto.FormFromSnapshot(h.form.Snapshot()))
}

// Types godoc
// @Summary      Tipos de operación con su política de campos
// @Tags         operation
// @Produce      json
// @Success      200  {array}  dto.OperationTypeResponse
// @Router       /api/console/operation/types [get]
func (h *OperationHandler) Types(c *fiber.Ctx) error {
	return c.JSON(dto.OperationTypesFromCatalog(h.texts))
}

// Open godoc
// @Summary      Abrir el diálogo
// @Description  Congela los parámetros de las vistas de la página de origen. Si ya está abierto no hace nada.
// @Tags         operation
// @Produce      json
// @Param        from  query  string  false  "dashboard | journal"  default(dashboard)
// @Success      200   {object}  dto.FormResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/console/operation/open [post]
func (h *OperationHandler) Open(c *fiber.Ctx) error {
	views, ok := h.views[c.Query("from", "dashboard")]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "from debe ser dashboard o journal"})
	}
	h.form.Open(views...)
	return h.state(c)
}

// Get godoc
// @Summary      Estado del diálogo
// @Tags         operation
// @Produce      json
// @Success      200  {object}  dto.FormResponse
// @Router       /api/console/operation [get]
func (h *OperationHandler) Get(c *fiber.Ctx) error {
	return h.state(c)
}

// PatchDraft godoc
// @Summary      Editar el borrador
// @Tags         operation
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DraftPatchRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.FormResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/console/operation/draft [patch]
func (h *OperationHandler) PatchDraft(c *fiber.Ctx) error {
	var in dto.DraftPatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	patch, err := in.ToPatch(h.texts)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.form.Patch(patch); err != nil {
		return writeError(c, err)
	}
	return h.state(c)
}

// Submit godoc
// @Summary      Registrar el movimiento
// @Description  Valida, envía una única vez y recarga las vistas dependientes con los parámetros congelados al abrir.
// @Tags         operation
// @Produce      json
// @Success      201  {object}  dto.SubmitResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/console/operation/submit [post]
func (h *OperationHandler) Submit(c *fiber.Ctx) error {
	res, err := h.form.Submit(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitFromResult(res, h.texts))
}

// Close godoc
// @Summary      Cerrar el diálogo descartando el borrador
// @Tags         operation
// @Produce      json
// @Success      200  {object}  dto.FormResponse
// @Router       /api/console/operation/close [post]
func (h *OperationHandler) Close(c *fiber.Ctx) error {
	h.form.Close()
	return h.state(c)
}

// ProductSearch godoc
// @Summary      Escribir en el selector de productos
// @Description  Menos de 2 caracteres limpia las opciones; si no, busca tras el debounce.
// @Tags         operation
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProductSearchRequest  true  "Texto"
// @Success      202   {object}  dto.SelectorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/console/operation/product-search [post]
func (h *OperationHandler) ProductSearch(c *fiber.Ctx) error {
	var in dto.ProductSearchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sel, err := h.form.ProductSelector()
	if err != nil {
		return writeError(c, err)
	}
	if err := sel.Input(in.Query); err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.SelectorFromState(sel.State()))
}

// ProductOptions godoc
// @Summary      Opciones actuales del selector
// @Tags         operation
// @Produce      json
// @Success      200  {object}  dto.SelectorResponse
// @Router       /api/console/operation/product-options [get]
func (h *OperationHandler) ProductOptions(c *fiber.Ctx) error {
	sel, err := h.form.ProductSelector()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SelectorFromState(sel.State()))
}

// SelectProduct godoc
// @Summary      Elegir un producto de las opciones
// @Tags         operation
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SelectProductRequest  true  "product_id"
// @Success      200   {object}  dto.FormResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/console/operation/product [post]
func (h *OperationHandler) SelectProduct(c *fiber.Ctx) error {
	var in dto.SelectProductRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	sel, err := h.form.ProductSelector()
	if err != nil {
		return writeError(c, err)
	}
	if _, err := sel.Select(in.ProductID); err != nil {
		return writeError(c, err)
	}
	return h.state(c)
}

// ClearProduct godoc
// @Summary      Limpiar el selector de productos
// @Tags         operation
// @Produce      json
// @Success      200  {object}  dto.FormResponse
// @Router       /api/console/operation/product [delete]
func (h *OperationHandler) ClearProduct(c *fiber.Ctx) error {
	sel, err := h.form.ProductSelector()
	if err != nil {
		return writeError(c, err)
	}
	sel.Clear()
	return h.state(c)
}

// Sources godoc
// @Summary      Orígenes (ПВЗ) para el diálogo
// @Tags         operation
// @Produce      json
// @Success      200  {array}  dto.SourceResponse
// @Router       /api/console/operation/sources [get]
func (h *OperationHandler) Sources(c *fiber.Ctx) error {
	items, err := h.form.Sources(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.SourcesFromEntity(items))
}

// DistributionCenters godoc
// @Summary      Centros de distribución (РЦ) para el diálogo
// @Tags         operation
// @Produce      json
// @Success      200  {array}  dto.DistributionCenterResponse
// @Router       /api/console/operation/distribution-centers [get]
func (h *OperationHandler) DistributionCenters(c *fiber.Ctx) error {
	items, err := h.form.DistributionCenters(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DistributionCentersFromEntity(items))
}
