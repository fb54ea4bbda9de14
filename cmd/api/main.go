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

	"github.com/petverde/green-pos/internal/application/auth"
	"github.com/petverde/green-pos/internal/application/billing"
	"github.com/petverde/green-pos/internal/application/catalog"
	"github.com/petverde/green-pos/internal/application/ledger"
	"github.com/petverde/green-pos/internal/application/reporting"
	"github.com/petverde/green-pos/internal/application/scheduling"
	infrapdf "github.com/petverde/green-pos/internal/infrastructure/pdf"
	"github.com/petverde/green-pos/internal/infrastructure/postgres"
	httpRouter "github.com/petverde/green-pos/internal/interfaces/http"
	"github.com/petverde/green-pos/pkg/config"
	"github.com/petverde/green-pos/pkg/logger"
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

	if err := postgres.Migrate(cfg.DB, cfg.Inventory.MigrationsDir); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	serviceTypeRepo := postgres.NewServiceTypeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Motor del libro de inventario: todo cambio de existencias pasa por aquí
	ledgerUC := ledger.NewUseCase(txRunner, productRepo, movementRepo, ledger.Policy{
		BlockNegative: cfg.Inventory.BlockNegative,
	}, log)

	productUC := catalog.NewUseCase(productRepo, ledgerUC)
	kardexUC := reporting.NewKardexUseCase(productRepo, movementRepo, documentRepo)

	documentUC := billing.NewDocumentUseCase(txRunner, ledgerUC, documentRepo, customerRepo, productRepo, settingRepo)
	settlementUC := billing.NewSettlementUseCase(txRunner)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	settingUC := billing.NewSettingUseCase(settingRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	pdfUC := billing.NewPDFUseCase(documentRepo, customerRepo, productRepo, settingRepo, pdfGenerator)

	appointmentUC := scheduling.NewUseCase(txRunner, documentUC, appointmentRepo, serviceTypeRepo, customerRepo, documentRepo)
	serviceTypeUC := scheduling.NewServiceTypeUseCase(serviceTypeRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Green POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		ProductUC:     productUC,
		LedgerUC:      ledgerUC,
		KardexUC:      kardexUC,
		CustomerUC:    customerUC,
		DocumentUC:    documentUC,
		SettlementUC:  settlementUC,
		PDFUC:         pdfUC,
		SettingUC:     settingUC,
		AppointmentUC: appointmentUC,
		ServiceTypeUC: serviceTypeUC,
		JWTSecret:     cfg.JWT.Secret,
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
