package billing

import (
	"context"
	"fmt"

	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/domain/repository"
)

// ExportUseCase genera la representación exportable (PDF o DOCX) de un
// documento. Solo se exportan documentos con número asignado: un DRAFT aún
// no es un documento emitido.
type ExportUseCase struct {
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
	pdfGen     DocumentPDFGenerator
	docxGen    DocumentDOCXGenerator
}

// NewExportUseCase construye el caso de uso inyectando los generadores.
func NewExportUseCase(
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	pdfGen DocumentPDFGenerator,
	docxGen DocumentDOCXGenerator,
) *ExportUseCase {
	return &ExportUseCase{docRepo: docRepo, clientRepo: clientRepo, pdfGen: pdfGen, docxGen: docxGen}
}

// ExportPDF genera el PDF del documento. Retorna (bytes, filename, error).
func (uc *ExportUseCase) ExportPDF(ctx context.Context, id string) ([]byte, string, error) {
	doc, client, items, err := uc.load(id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdfGen.GenerateDocumentPDF(ctx, doc, client, items)
	if err != nil {
		return nil, "", fmt.Errorf("export: generación PDF fallida: %w", err)
	}
	return data, exportFilename(doc, "pdf"), nil
}

// ExportDOCX genera el .docx del documento. Retorna (bytes, filename, error).
func (uc *ExportUseCase) ExportDOCX(ctx context.Context, id string) ([]byte, string, error) {
	doc, client, items, err := uc.load(id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.docxGen.GenerateDocumentDOCX(ctx, doc, client, items)
	if err != nil {
		return nil, "", fmt.Errorf("export: generación DOCX fallida: %w", err)
	}
	return data, exportFilename(doc, "docx"), nil
}

// load recupera documento, cliente y líneas, validando que sea exportable.
func (uc *ExportUseCase) load(id string) (*entity.Document, *entity.Client, []*entity.LineItem, error) {
	doc, err := uc.docRepo.GetByID(id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("export: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	if doc.Status == entity.StatusDraft || doc.Number == "" {
		return nil, nil, nil, fmt.Errorf("%w: el documento está en DRAFT, guárdelo antes de exportar", domain.ErrInvalidInput)
	}
	client, err := uc.clientRepo.GetByID(doc.ClientID)
	if err != nil || client == nil {
		return nil, nil, nil, fmt.Errorf("export: obtener cliente: %w", domain.ErrNotFound)
	}
	items, err := uc.docRepo.GetItemsByDocumentID(id)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("export: obtener líneas: %w", err)
	}
	return doc, client, items, nil
}

// exportFilename arma el nombre de archivo: cotizacion_<número>_<YYYYMMDD>.<ext>
// o factura_<número>_<YYYYMMDD>.<ext>.
func exportFilename(doc *entity.Document, ext string) string {
	word := "cotizacion"
	if doc.Kind == entity.KindInvoice {
		word = "factura"
	}
	return fmt.Sprintf("%s_%s_%s.%s", word, doc.Number, doc.Date.Format("20060102"), ext)
}
