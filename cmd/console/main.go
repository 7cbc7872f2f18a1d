package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stock-console/internal/application/dashboard"
	"github.com/jhoicas/stock-console/internal/application/journal"
	"github.com/jhoicas/stock-console/internal/application/notify"
	"github.com/jhoicas/stock-console/internal/application/operation"
	"github.com/jhoicas/stock-console/internal/application/ports"
	"github.com/jhoicas/stock-console/internal/application/selector"
	"github.com/jhoicas/stock-console/internal/application/session"
	"github.com/jhoicas/stock-console/internal/domain/repository"
	"github.com/jhoicas/stock-console/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/stock-console/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-console/internal/infrastructure/postgres"
	"github.com/jhoicas/stock-console/internal/infrastructure/stockapi"
	"github.com/jhoicas/stock-console/internal/infrastructure/telegram"
	"github.com/jhoicas/stock-console/internal/infrastructure/tokenstore"
	httpRouter "github.com/jhoicas/stock-console/internal/interfaces/http"
	"github.com/jhoicas/stock-console/pkg/config"
	"github.com/jhoicas/stock-console/pkg/i18n"
	"github.com/jhoicas/stock-console/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.API.BaseURL).
		Msg("iniciando consola")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	texts := i18n.New(cfg.App.Locale)

	// Notificaciones: siempre al log; a Telegram solo si hay token y chat.
	sinks := []ports.NotificationSink{notify.NewLogSink(log)}
	if cfg.Telegram.Enabled() {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			log.Error().Err(err).Msg("bot de Telegram; se continúa sin el sink")
		} else {
			sinks = append(sinks, telegram.NewSink(bot, cfg.Telegram.ChatID, ports.Level(cfg.Telegram.MinLevel), cfg.App.Name))
			log.Info().Str("bot", bot.Self.UserName).Msg("sink de Telegram activo")
		}
	}
	hub := notify.NewHub(log, 0, sinks...)
	hub.Start(ctx)

	client := stockapi.NewClient(stockapi.Config{
		BaseURL:    cfg.API.BaseURL,
		PathPrefix: cfg.API.PathPrefix,
		Timeout:    cfg.API.Timeout,
	}, hub, texts, log)

	tokens, closeTokens := tokenRepository(ctx, cfg, log)
	defer closeTokens()

	store := session.NewStore(stockapi.NewAuthRepository(client), tokens, log)
	client.BindSession(store, store.Teardown)

	products := stockapi.NewProductRepository(client)
	movements := stockapi.NewMovementRepository(client)

	page := dashboard.New(
		dashboard.NewSummaryView(stockapi.NewStockRepository(client)),
		dashboard.NewProductsView(products),
	)
	journalView := journal.NewView(movements)
	exportSvc := journal.NewExportService(journalView, texts, log,
		excel.NewJournalExporter(),
		infrapdf.NewJournalGenerator(infrapdf.Fonts{
			Regular: cfg.Export.FontPath,
			Bold:    cfg.Export.BoldFontPath,
		}),
	)
	form := operation.NewForm(operation.Deps{
		Movements:           movements,
		Products:            products,
		Sources:             stockapi.NewSourceRepository(client),
		DistributionCenters: stockapi.NewDistributionCenterRepository(client),
		Notifier:            hub,
		Texts:               texts,
		Log:                 log,
		Search: selector.Config{
			Debounce: cfg.Search.Debounce,
			MinChars: cfg.Search.MinChars,
			PageSize: cfg.Search.PageSize,
		},
	})

	// Al terminar la sesión se descarta todo lo que era del operador.
	store.OnEnd(form.Close)
	store.OnEnd(page.Reset)
	store.OnEnd(journalView.Reset)

	restoreCtx, cancelRestore := context.WithTimeout(ctx, cfg.API.Timeout)
	if err := store.Restore(restoreCtx); err != nil {
		log.Warn().Err(err).Msg("no se pudo restaurar la sesión; se requiere login")
	}
	cancelRestore()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.API.Timeout + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.DocsPath); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.DocsPath,
			Path:     "docs",
			Title:    "Stock Console API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":        "ok",
			"service":       cfg.App.Name,
			"authenticated": store.Authenticated(),
		})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Session:   store,
		Dashboard: page,
		Journal:   journalView,
		Export:    exportSvc,
		Form:      form,
		Hub:       hub,
		Texts:     texts,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	form.Close()
	stop()
	hub.Wait()

	log.Info().Msg("consola detenida")
}

// tokenRepository elige dónde persistir el token según SESSION_STORE.
func tokenRepository(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.TokenRepository, func()) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		rdb, err := tokenstore.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sesión persistida en Redis")
		return tokenstore.NewRedisStore(rdb, cfg.Session.Name, 0), func() { _ = rdb.Close() }

	case config.SessionStorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		if err := postgres.Migrate(pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("sesión persistida en PostgreSQL")
		return postgres.NewTokenRepository(pool, cfg.Session.Name), pool.Close

	default:
		log.Info().Str("path", cfg.Session.FilePath).Msg("sesión persistida en archivo")
		return tokenstore.NewFileStore(cfg.Session.FilePath), func() {}
	}
}
