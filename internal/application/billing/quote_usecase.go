package billing

import (
	"context"
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

// QuoteUseCase ciclo de vida de las cotizaciones:
// DRAFT (crear, editar líneas) → SAVED (asignar número) → CONVERTED (vía
// ConvertQuoteUseCase). La asignación de número y la escritura del documento
// ocurren en una sola transacción.
type QuoteUseCase struct {
	txRunner   BillingTxRunner
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
	numberer   numbering.Numberer
	taxRate    decimal.Decimal
	now        func() time.Time
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	txRunner BillingTxRunner,
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	numberer numbering.Numberer,
	taxRate decimal.Decimal,
) *QuoteUseCase {
	return &QuoteUseCase{
		txRunner:   txRunner,
		docRepo:    docRepo,
		clientRepo: clientRepo,
		numberer:   numberer,
		taxRate:    taxRate,
		now:        time.Now,
	}
}

// buildLedger valida las líneas entrantes y calcula totales.
func (uc *QuoteUseCase) buildLedger(items []dto.LineItemRequest) (*domainbilling.Ledger, error) {
	ledger := domainbilling.NewLedger(uc.taxRate)
	for _, it := range items {
		if it.Description == "" {
			return nil, domain.ErrInvalidInput
		}
		if err := ledger.Add(entity.LineItem{Description: it.Description, UnitPrice: it.UnitPrice}); err != nil {
			return nil, err
		}
	}
	return ledger, nil
}

// CreateQuote crea una cotización en DRAFT (sin número asignado).
func (uc *QuoteUseCase) CreateQuote(ctx context.Context, in dto.CreateQuoteRequest) (*dto.DocumentResponse, error) {
	if in.ClientID == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	ledger, err := uc.buildLedger(in.Items)
	if err != nil {
		return nil, err
	}
	subtotal, tax, total := ledger.Totals()

	now := uc.now()
	doc := &entity.Document{
		ID:         uuid.New().String(),
		Kind:       entity.KindQuote,
		ClientID:   in.ClientID,
		Status:     entity.StatusDraft,
		NetTotal:   subtotal,
		TaxTotal:   tax,
		GrandTotal: total,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	items := ledger.Items()

	err = uc.txRunner.RunBilling(ctx, func(docRepo repository.DocumentRepository, _ repository.CounterRepository) error {
		if err := docRepo.Create(doc); err != nil {
			return err
		}
		return createItems(docRepo, doc.ID, items)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(doc, client.Name)
}

// ReplaceItems reemplaza las líneas de una cotización DRAFT o SAVED y
// recalcula los totales. Una cotización CONVERTED o una factura no admite
// mutaciones (ErrImmutableDocument). Editar líneas de una cotización SAVED
// no toca su número ni su fecha.
func (uc *QuoteUseCase) ReplaceItems(ctx context.Context, id string, in dto.ReplaceItemsRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.Kind != entity.KindQuote || doc.Status == entity.StatusConverted {
		return nil, domain.ErrImmutableDocument
	}
	ledger, err := uc.buildLedger(in.Items)
	if err != nil {
		return nil, err
	}
	doc.NetTotal, doc.TaxTotal, doc.GrandTotal = ledger.Totals()
	doc.UpdatedAt = uc.now()
	items := ledger.Items()

	err = uc.txRunner.RunBilling(ctx, func(docRepo repository.DocumentRepository, _ repository.CounterRepository) error {
		if err := docRepo.DeleteItemsByDocument(doc.ID); err != nil {
			return err
		}
		if err := createItems(docRepo, doc.ID, items); err != nil {
			return err
		}
		return docRepo.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, doc.ID)
}

// SaveQuote asigna número y fecha a una cotización DRAFT (DRAFT → SAVED).
// El consecutivo se obtiene del contador (quote, cliente, mes actual) y el
// número se formatea con el nombre del cliente al momento de emitir; dentro
// de la misma transacción, de modo que un fallo al persistir revierte también
// el incremento del contador.
func (uc *QuoteUseCase) SaveQuote(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	if doc.Kind != entity.KindQuote {
		return nil, domain.ErrInvalidInput
	}
	if doc.Status != entity.StatusDraft {
		return nil, domain.ErrConflict // ya tiene número asignado
	}
	client, err := uc.clientRepo.GetByID(doc.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	err = uc.txRunner.RunBilling(ctx, func(docRepo repository.DocumentRepository, counterRepo repository.CounterRepository) error {
		seq, err := counterRepo.Next(entity.KindQuote, doc.ClientID, numbering.Period(now))
		if err != nil {
			return err
		}
		number, err := uc.numberer.Format(entity.KindQuote, client.Name, now, seq)
		if err != nil {
			return err
		}
		doc.Number = number
		doc.Date = now
		doc.Status = entity.StatusSaved
		doc.UpdatedAt = now
		return docRepo.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return uc.response(doc, client.Name)
}

// DeleteQuote elimina una cotización DRAFT o SAVED con sus líneas.
// Una cotización convertida no puede borrarse (la factura la referencia) y
// las facturas tampoco: la conversión es de una sola vía.
func (uc *QuoteUseCase) DeleteQuote(ctx context.Context, id string) error {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	if doc.Kind != entity.KindQuote || doc.Status == entity.StatusConverted {
		return domain.ErrConflict
	}
	return uc.txRunner.RunBilling(ctx, func(docRepo repository.DocumentRepository, _ repository.CounterRepository) error {
		if err := docRepo.DeleteItemsByDocument(id); err != nil {
			return err
		}
		return docRepo.Delete(id)
	})
}

// Get obtiene la cotización con sus líneas.
func (uc *QuoteUseCase) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(doc.ClientID); client != nil {
		clientName = client.Name
	}
	items, err := uc.docRepo.GetItemsByDocumentID(id)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, clientName, items), nil
}

func (uc *QuoteUseCase) response(doc *entity.Document, clientName string) (*dto.DocumentResponse, error) {
	items, err := uc.docRepo.GetItemsByDocumentID(doc.ID)
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, clientName, items), nil
}

// createItems persiste las líneas con ID nuevo, respetando el orden.
func createItems(docRepo repository.DocumentRepository, documentID string, items []entity.LineItem) error {
	for i := range items {
		items[i].ID = uuid.New().String()
		items[i].DocumentID = documentID
		if err := docRepo.CreateItem(&items[i]); err != nil {
			return err
		}
	}
	return nil
}
