package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/afero"

	"github.com/jmorales/ventaspro-api/internal/application/auth"
	"github.com/jmorales/ventaspro-api/internal/application/migration"
	"github.com/jmorales/ventaspro-api/internal/application/ports"
	"github.com/jmorales/ventaspro-api/internal/application/sales"
	"github.com/jmorales/ventaspro-api/internal/application/session"
	"github.com/jmorales/ventaspro-api/internal/application/treasury"
	"github.com/jmorales/ventaspro-api/internal/application/usecase"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/afip"
	infraai "github.com/jmorales/ventaspro-api/internal/infrastructure/ai"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/localstore"
	"github.com/jmorales/ventaspro-api/internal/infrastructure/postgres"
	httpRouter "github.com/jmorales/ventaspro-api/internal/interfaces/http"
	"github.com/jmorales/ventaspro-api/pkg/config"
	"github.com/jmorales/ventaspro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend local (modo invitado): colecciones JSON en disco.
	localStore, err := localstore.Open(afero.NewOsFs(), cfg.Store.DataDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir backend local")
	}
	guest, err := session.New(ctx, session.ModeLocal, "", localStore, log)
	if err != nil {
		log.Fatal().Err(err).Msg("sesión invitado")
	}

	// Backend remoto (PostgreSQL): opcional, la app corre sin él.
	var mgr *session.Manager
	var authUC *auth.AuthUseCase
	if cfg.DB.Enabled() {
		pgPool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pgPool.Close()
		if err := postgres.EnsureSchema(ctx, pgPool); err != nil {
			log.Fatal().Err(err).Msg("esquema de PostgreSQL")
		}
		mgr = session.NewManager(guest, pgPool, log)
		authUC = auth.NewAuthUseCase(postgres.NewUserRepository(pgPool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	} else {
		log.Warn().Msg("sin PostgreSQL configurado: solo modo local")
		mgr = session.NewManager(guest, nil, log)
		authUC = auth.NewAuthUseCase(nil, auth.JWTConfig{})
	}
	defer mgr.Close()

	// Facturación electrónica: stub AFIP (CAE simulado).
	var invoicer ports.Invoicer
	if cfg.AFIP.Enabled {
		invoicer = afip.NewInvoiceService(cfg.AFIP.PuntoVenta, cfg.AFIP.Environment, log)
	}

	// Análisis de negocio con IA (opcional, degrada a texto estático).
	var llm ports.LLMService
	if cfg.AI.AnthropicAPIKey != "" {
		llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
	}

	reportUC := usecase.NewReportUseCase()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "VentasPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Manager:        mgr,
		AuthUC:         authUC,
		ProductUC:      usecase.NewProductUseCase(),
		ImportUC:       sales.NewImportProductsUseCase(log),
		CompleteSaleUC: sales.NewCompleteSaleUseCase(invoicer, log),
		CustomerPayUC:  sales.NewCustomerPaymentUseCase(log),
		MethodUC:       usecase.NewPaymentMethodUseCase(),
		TransferUC:     treasury.NewTransferUseCase(log),
		ExpenseUC:      treasury.NewAddExpenseUseCase(log),
		SupplierUC:     usecase.NewSupplierUseCase(),
		CustomerUC:     usecase.NewCustomerUseCase(),
		SettingsUC:     usecase.NewSettingsUseCase(),
		ReportUC:       reportUC,
		AIUC:           usecase.NewAIUseCase(llm, reportUC),
		MigrationUC:    migration.New(log),
		JWTSecret:      cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
