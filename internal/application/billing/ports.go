package billing

import (
	"context"

	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/domain/repository"
)

// BillingTxRunner ejecuta una función dentro de una transacción que incluye
// el repositorio de documentos y el contador secuencial. La asignación de
// número y la escritura del documento comparten la transacción: si algo
// falla, el incremento del contador también se revierte (sin incrementos
// parciales ni números huérfanos).
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		counterRepo repository.CounterRepository,
	) error) error
}

// CompanyInfo identidad de la empresa emisora para los documentos exportados.
// Viene de configuración (no de la base de datos): la aplicación factura para
// una sola empresa.
type CompanyInfo struct {
	Name         string
	Address      string
	Email        string
	Phone        string
	SIREN        string
	SIRET        string
	VATNumber    string
	IBAN         string
	BIC          string
	PaymentTerms string
}

// DocumentPDFGenerator produce la representación PDF de un documento
// finalizado. El core entrega campos ya redondeados; el generador solo
// resuelve el layout visual.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document, client *entity.Client, items []*entity.LineItem) ([]byte, error)
}

// DocumentDOCXGenerator produce la representación Word (.docx) de un
// documento finalizado.
type DocumentDOCXGenerator interface {
	GenerateDocumentDOCX(ctx context.Context, doc *entity.Document, client *entity.Client, items []*entity.LineItem) ([]byte, error)
}
