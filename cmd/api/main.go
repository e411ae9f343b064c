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
	"github.com/shopspring/decimal"

	_ "github.com/jdcamargo/cotizador-api/docs"
	"github.com/jdcamargo/cotizador-api/internal/application/auth"
	"github.com/jdcamargo/cotizador-api/internal/application/billing"
	"github.com/jdcamargo/cotizador-api/internal/domain/numbering"
	infradocx "github.com/jdcamargo/cotizador-api/internal/infrastructure/docx"
	infrapdf "github.com/jdcamargo/cotizador-api/internal/infrastructure/pdf"
	"github.com/jdcamargo/cotizador-api/internal/infrastructure/postgres"
	httpRouter "github.com/jdcamargo/cotizador-api/internal/interfaces/http"
	"github.com/jdcamargo/cotizador-api/pkg/config"
	"github.com/jdcamargo/cotizador-api/pkg/logger"
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
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	numberer := numbering.New(cfg.Business.QuotePrefix, cfg.Business.InvoicePrefix)
	taxRate := decimal.NewFromFloat(cfg.Business.VATRate)

	quoteUC := billing.NewQuoteUseCase(txRunner, docRepo, clientRepo, numberer, taxRate)
	convertUC := billing.NewConvertQuoteUseCase(txRunner, docRepo, clientRepo, numberer, taxRate)
	clientUC := billing.NewClientUseCase(clientRepo, docRepo)
	docUC := billing.NewDocumentUseCase(docRepo, clientRepo)

	company := billing.CompanyInfo{
		Name:         cfg.Company.Name,
		Address:      cfg.Company.Address,
		Email:        cfg.Company.Email,
		Phone:        cfg.Company.Phone,
		SIREN:        cfg.Company.SIREN,
		SIRET:        cfg.Company.SIRET,
		VATNumber:    cfg.Company.VATNumber,
		IBAN:         cfg.Company.IBAN,
		BIC:          cfg.Company.BIC,
		PaymentTerms: cfg.Company.PaymentTerms,
	}
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(company, taxRate)
	docxGenerator := infradocx.NewGenerator(company, taxRate)
	exportUC := billing.NewExportUseCase(docRepo, clientRepo, pdfGenerator, docxGenerator)

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
		Title:    "Cotizador API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		ClientUC:  clientUC,
		QuoteUC:   quoteUC,
		ConvertUC: convertUC,
		DocUC:     docUC,
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
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
