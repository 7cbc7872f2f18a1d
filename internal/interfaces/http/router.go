package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-console/internal/application/dashboard"
	"github.com/jhoicas/stock-console/internal/application/journal"
	"github.com/jhoicas/stock-console/internal/application/notify"
	"github.com/jhoicas/stock-console/internal/application/operation"
	"github.com/jhoicas/stock-console/internal/application/session"
	"github.com/jhoicas/stock-console/pkg/i18n"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session   *session.Store
	Dashboard *dashboard.Dashboard
	Journal   *journal.View
	Export    *journal.ExportService
	Form      *operation.Form
	Hub       *notify.Hub
	Texts     *i18n.Catalog
}

// Router registra las rutas de la consola bajo /api/console.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/console")

	// Sesión (público)
	sessionHandler := NewSessionHandler(deps.Session)
	api.Post("/session/login", sessionHandler.Login)
	api.Post("/session/logout", sessionHandler.Logout)
	api.Get("/session", sessionHandler.Get)

	// Notificaciones (público: incluye el aviso de sesión vencida)
	notificationHandler := NewNotificationHandler(deps.Hub)
	api.Get("/notifications", notificationHandler.List)

	// Rutas protegidas (requieren sesión contra el backend)
	protected := api.Group("/", RequireSession(deps.Session))

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	protected.Get("/dashboard", dashboardHandler.Get)
	protected.Put("/dashboard/query", dashboardHandler.PutQuery)

	// Journal
	journalHandler := NewJournalHandler(deps.Journal, deps.Export, deps.Texts)
	protected.Get("/journal", journalHandler.Get)
	protected.Put("/journal/filters", journalHandler.PutFilters)
	protected.Delete("/journal/filters", journalHandler.DeleteFilters)
	protected.Put("/journal/page", journalHandler.PutPage)
	protected.Get("/journal/export", journalHandler.Export)

	// Diálogo de operación
	operationHandler := NewOperationHandler(deps.Form, deps.Texts, map[string][]operation.View{
		"dashboard": {deps.Dashboard.Summary, deps.Dashboard.Products},
		"journal":   {deps.Dashboard.Summary, deps.Journal},
	})
	op := protected.Group("/operation")
	op.Get("/types", operationHandler.Types)
	op.Get("/", operationHandler.Get)
	op.Post("/open", operationHandler.Open)
	op.Patch("/draft", operationHandler.PatchDraft)
	op.Post("/submit", operationHandler.Submit)
	op.Post("/close", operationHandler.Close)
	op.Post("/product-search", operationHandler.ProductSearch)
	op.Get("/product-options", operationHandler.ProductOptions)
	op.Post("/product", operationHandler.SelectProduct)
	op.Delete("/product", operationHandler.ClearProduct)
	op.Get("/sources", operationHandler.Sources)
	op.Get("/distribution-centers", operationHandler.DistributionCenters)
}
