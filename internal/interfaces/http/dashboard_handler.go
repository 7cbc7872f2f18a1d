package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-console/internal/application/dashboard"
	"github.com/jhoicas/stock-console/internal/application/dto"
	"github.com/jhoicas/stock-console/internal/domain"
)

// DashboardHandler página principal: resumen de stock y tabla de productos.
type DashboardHandler struct {
	page *dashboard.Dashboard
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(page *dashboard.Dashboard) *DashboardHandler {
	return &DashboardHandler{page: page}
}

// Get godoc
// @Summary      Cargar el dashboard
// @Description  Recarga resumen y productos en paralelo. Un fallo en una sección se informa en errors sin invalidar la otra.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/console/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	snap := h.page.Load(c.Context())
	if err := sessionLost(snap.SummaryErr, snap.ProductsErr); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DashboardFromSnapshot(snap))
}

// PutQuery godoc
// @Summary      Buscar o paginar productos
// @Description  Con barcode presente se busca y se vuelve a la página 1; sin barcode se cambia de página conservando la búsqueda.
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DashboardQueryRequest  true  "page, page_size, barcode"
// @Success      200   {object}  dto.DashboardResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/console/dashboard/query [put]
func (h *DashboardHandler) PutQuery(c *fiber.Ctx) error {
	var in dto.DashboardQueryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	var err error
	if in.Barcode != nil {
		_, err = h.page.Products.Search(c.Context(), *in.Barcode)
	} else {
		_, err = h.page.Products.SetPage(c.Context(), in.Page, in.PageSize)
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DashboardFromSnapshot(h.page.Current()))
}

// sessionLost devuelve el primer error que implica pérdida de sesión.
func sessionLost(errs ...error) error {
	for _, err := range errs {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotAuthenticated) {
			return err
		}
	}
	return nil
}
