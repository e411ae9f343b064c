// seed crea datos mínimos de demostración: un usuario admin, un cliente y
// una cotización de ejemplo ya guardada (con número asignado).
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que el API (DATABASE_URL o DB_*).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jdcamargo/cotizador-api/internal/application/auth"
	"github.com/jdcamargo/cotizador-api/internal/application/billing"
	"github.com/jdcamargo/cotizador-api/internal/application/dto"
	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/numbering"
	"github.com/jdcamargo/cotizador-api/internal/infrastructure/postgres"
	"github.com/jdcamargo/cotizador-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	docRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	clientUC := billing.NewClientUseCase(clientRepo, docRepo)
	quoteUC := billing.NewQuoteUseCase(
		txRunner, docRepo, clientRepo,
		numbering.New(cfg.Business.QuotePrefix, cfg.Business.InvoicePrefix),
		decimal.NewFromFloat(cfg.Business.VATRate),
	)

	// Usuario admin de demo (idempotente: si ya existe, se reutiliza)
	admin, err := authUC.RegisterUser(dto.RegisterRequest{
		Email:    "admin@example.com",
		Password: "admin-password-demo",
		Name:     "Admin",
		Role:     "admin",
	})
	switch {
	case err == nil:
		fmt.Println("usuario admin creado:", admin.Email)
	case err == domain.ErrEmailAlreadyExists:
		fmt.Println("usuario admin ya existe, omitido")
	default:
		fail("crear usuario admin: %v", err)
	}

	client, err := clientUC.Create(dto.CreateClientRequest{
		Name:    "St Aubin Sur Mer",
		SIRET:   "12345678900011",
		Address: "14750 Saint-Aubin-sur-Mer",
		Email:   "contact@staubin.example",
	})
	if err == domain.ErrDuplicate {
		fmt.Println("cliente de demo ya existe, omitido")
		return
	}
	if err != nil {
		fail("crear cliente de demo: %v", err)
	}
	fmt.Println("cliente creado:", client.Name)

	draft, err := quoteUC.CreateQuote(ctx, dto.CreateQuoteRequest{
		ClientID: client.ID,
		Items: []dto.LineItemRequest{
			{Description: "Installation électrique", UnitPrice: decimal.NewFromInt(500)},
			{Description: "Mise aux normes tableau", UnitPrice: decimal.NewFromInt(300)},
		},
	})
	if err != nil {
		fail("crear cotización de demo: %v", err)
	}
	saved, err := quoteUC.SaveQuote(ctx, draft.ID)
	if err != nil {
		fail("guardar cotización de demo: %v", err)
	}
	fmt.Println("cotización creada:", saved.Number)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
