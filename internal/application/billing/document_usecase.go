package billing

import (
	"context"

	"github.com/jdcamargo/cotizador-api/internal/application/dto"
	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/domain/repository"
)

// DocumentUseCase consultas de lectura sobre cotizaciones y facturas.
type DocumentUseCase struct {
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(docRepo repository.DocumentRepository, clientRepo repository.ClientRepository) *DocumentUseCase {
	return &DocumentUseCase{docRepo: docRepo, clientRepo: clientRepo}
}

// Get obtiene un documento por ID con sus líneas y el nombre del cliente.
func (uc *DocumentUseCase) Get(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.docRepo.GetItemsByDocumentID(id)
	if err != nil {
		return nil, err
	}
	clientName := ""
	if client, _ := uc.clientRepo.GetByID(doc.ClientID); client != nil {
		clientName = client.Name
	}
	return toDocumentResponse(doc, clientName, items), nil
}

// List lista documentos de un kind con paginación.
func (uc *DocumentUseCase) List(ctx context.Context, kind entity.DocumentKind, limit, offset int) ([]*dto.DocumentResponse, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	docs, err := uc.docRepo.ListByKind(kind, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		out = append(out, toDocumentResponse(doc, "", nil))
	}
	return out, nil
}

// toDocumentResponse arma la respuesta completa de un documento.
func toDocumentResponse(doc *entity.Document, clientName string, items []*entity.LineItem) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:              doc.ID,
		Kind:            string(doc.Kind),
		Number:          doc.Number,
		ClientID:        doc.ClientID,
		ClientName:      clientName,
		Status:          doc.Status,
		OrderRef:        doc.OrderRef,
		SourceQuoteID:   doc.SourceQuoteID,
		LinkedInvoiceID: doc.LinkedInvoiceID,
		NetTotal:        doc.NetTotal,
		TaxTotal:        doc.TaxTotal,
		GrandTotal:      doc.GrandTotal,
		Items:           make([]dto.LineItemResponse, 0, len(items)),
	}
	if !doc.Date.IsZero() {
		resp.Date = doc.Date.Format("2006-01-02")
	}
	if !doc.InterventionDate.IsZero() {
		resp.InterventionDate = doc.InterventionDate.Format("2006-01-02")
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:          it.ID,
			Position:    it.Position,
			Description: it.Description,
			UnitPrice:   it.UnitPrice,
		})
	}
	return resp
}
