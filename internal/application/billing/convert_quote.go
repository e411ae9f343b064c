package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jdcamargo/cotizador-api/internal/application/dto"
	"github.com/jdcamargo/cotizador-api/internal/domain"
	domainbilling "github.com/jdcamargo/cotizador-api/internal/domain/billing"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/domain/numbering"
	"github.com/jdcamargo/cotizador-api/internal/domain/repository"
)

// ConvertQuoteUseCase convierte una cotización SAVED en factura.
//
// En una sola transacción: consecutivo de la serie de facturas para
// (cliente, mes actual) → número FA → copia por valor de las líneas →
// factura con fecha de hoy, orden de compra, fecha de intervención opcional
// y referencia a la cotización →
// la cotización queda CONVERTED (transición de una sola vía, sin reversa).
// Ediciones posteriores de la cotización no tocan la factura: las líneas se
// copian con IDs nuevos al momento de convertir.
type ConvertQuoteUseCase struct {
	txRunner   BillingTxRunner
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
	numberer   numbering.Numberer
	taxRate    decimal.Decimal
	now        func() time.Time
}

// NewConvertQuoteUseCase construye el caso de uso.
func NewConvertQuoteUseCase(
	txRunner BillingTxRunner,
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	numberer numbering.Numberer,
	taxRate decimal.Decimal,
) *ConvertQuoteUseCase {
	return &ConvertQuoteUseCase{
		txRunner:   txRunner,
		docRepo:    docRepo,
		clientRepo: clientRepo,
		numberer:   numberer,
		taxRate:    taxRate,
		now:        time.Now,
	}
}

// Convert genera la factura a partir de la cotización.
//   - Cotización CONVERTED → ErrAlreadyConverted.
//   - Cotización DRAFT (sin número) → ErrInvalidInput: primero debe guardarse.
//   - ID de factura o inexistente → ErrInvalidInput / ErrNotFound.
//   - Fecha de intervención mal formada → ErrInvalidInput.
func (uc *ConvertQuoteUseCase) Convert(ctx context.Context, quoteID string, in dto.ConvertQuoteRequest) (*dto.DocumentResponse, error) {
	var interventionDate time.Time
	if in.InterventionDate != "" {
		parsed, err := time.Parse("2006-01-02", in.InterventionDate)
		if err != nil {
			return nil, fmt.Errorf("fecha de intervención %q inválida (formato YYYY-MM-DD): %w",
				in.InterventionDate, domain.ErrInvalidInput)
		}
		interventionDate = parsed
	}

	quote, err := uc.docRepo.GetByID(quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.Kind != entity.KindQuote {
		return nil, domain.ErrInvalidInput
	}
	if quote.Status == entity.StatusConverted {
		return nil, domain.ErrAlreadyConverted
	}
	if quote.Status != entity.StatusSaved {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(quote.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	var invoice *entity.Document
	var invoiceItems []*entity.LineItem

	err = uc.txRunner.RunBilling(ctx, func(docRepo repository.DocumentRepository, counterRepo repository.CounterRepository) error {
		// Releer la cotización dentro de la tx: dos conversiones
		// concurrentes no deben producir dos facturas.
		current, err := docRepo.GetByID(quoteID)
		if err != nil {
			return err
		}
		if current == nil {
			return domain.ErrNotFound
		}
		if current.Status == entity.StatusConverted {
			return domain.ErrAlreadyConverted
		}

		// Copia por valor de las líneas, recalculando totales con el Ledger
		// para que la factura nunca arrastre totales desactualizados.
		quoteItems, err := docRepo.GetItemsByDocumentID(quoteID)
		if err != nil {
			return err
		}
		ledger := domainbilling.NewLedger(uc.taxRate)
		for _, it := range quoteItems {
			if err := ledger.Add(entity.LineItem{Description: it.Description, UnitPrice: it.UnitPrice}); err != nil {
				return err
			}
		}
		subtotal, tax, total := ledger.Totals()

		seq, err := counterRepo.Next(entity.KindInvoice, current.ClientID, numbering.Period(now))
		if err != nil {
			return err
		}
		number, err := uc.numberer.Format(entity.KindInvoice, client.Name, now, seq)
		if err != nil {
			return err
		}

		invoice = &entity.Document{
			ID:               uuid.New().String(),
			Kind:             entity.KindInvoice,
			Number:           number,
			ClientID:         current.ClientID,
			Date:             now,
			Status:           entity.StatusSaved,
			OrderRef:         in.OrderRef,
			InterventionDate: interventionDate,
			SourceQuoteID:    current.ID,
			NetTotal:         subtotal,
			TaxTotal:         tax,
			GrandTotal:       total,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := docRepo.Create(invoice); err != nil {
			return err
		}
		invoiceItems = make([]*entity.LineItem, 0, len(quoteItems))
		for _, it := range ledger.Items() {
			it.ID = uuid.New().String()
			it.DocumentID = invoice.ID
			item := it
			if err := docRepo.CreateItem(&item); err != nil {
				return err
			}
			invoiceItems = append(invoiceItems, &item)
		}

		current.Status = entity.StatusConverted
		current.LinkedInvoiceID = invoice.ID
		current.UpdatedAt = now
		return docRepo.Update(current)
	})
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(invoice, client.Name, invoiceItems), nil
}
