package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jdcamargo/cotizador-api/internal/application/auth"
	"github.com/jdcamargo/cotizador-api/internal/application/billing"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	ClientUC  *billing.ClientUseCase
	QuoteUC   *billing.QuoteUseCase
	ConvertUC *billing.ConvertQuoteUseCase
	DocUC     *billing.DocumentUseCase
	ExportUC  *billing.ExportUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clients (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", RequireRole(entity.RoleAdmin), clientHandler.Delete)

	// Quotes (protegido)
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.ConvertUC, deps.DocUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Put("/:id/items", quoteHandler.ReplaceItems)
	quotes.Post("/:id/save", quoteHandler.Save)
	quotes.Post("/:id/convert", quoteHandler.Convert)
	quotes.Delete("/:id", quoteHandler.Delete)

	// Invoices (protegido; solo lectura, nacen por conversión)
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.DocUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Exportación PDF/DOCX (protegido; cualquier kind)
	documents := protected.Group("/documents")
	exportHandler := NewExportHandler(deps.ExportUC)
	documents.Get("/:id/pdf", exportHandler.PDF)
	documents.Get("/:id/docx", exportHandler.DOCX)
}
