package billing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcamargo/cotizador-api/internal/application/dto"
	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
)

type stubPDFGen struct{ lastDoc *entity.Document }

func (g *stubPDFGen) GenerateDocumentPDF(_ context.Context, doc *entity.Document, _ *entity.Client, _ []*entity.LineItem) ([]byte, error) {
	g.lastDoc = doc
	return []byte("%PDF-fake"), nil
}

type stubDOCXGen struct{}

func (stubDOCXGen) GenerateDocumentDOCX(_ context.Context, _ *entity.Document, _ *entity.Client, _ []*entity.LineItem) ([]byte, error) {
	return []byte("PK-fake"), nil
}

func newExportFixture(t *testing.T) (*quoteFixture, *ExportUseCase, *stubPDFGen) {
	t.Helper()
	f := newQuoteFixture(t)
	pdfGen := &stubPDFGen{}
	export := NewExportUseCase(
		&memDocRepo{store: f.store},
		&memClientRepo{store: f.store},
		pdfGen,
		stubDOCXGen{},
	)
	return f, export, pdfGen
}

func TestExportPDF_NombreDeArchivoPorKind(t *testing.T) {
	f, export, _ := newExportFixture(t)
	saved := f.createSavedQuote(t, 500)

	data, filename, err := export.ExportPDF(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "cotizacion_SA.STAUBINSURMER.112025001_20251114.pdf", filename)

	invoice, err := f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{})
	require.NoError(t, err)

	_, filename, err = export.ExportPDF(context.Background(), invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "factura_FA.STAUBINSURMER.112025001_20251114.pdf", filename)
}

func TestExportDOCX_ExtensionCorrecta(t *testing.T) {
	f, export, _ := newExportFixture(t)
	saved := f.createSavedQuote(t, 100)

	data, filename, err := export.ExportDOCX(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.Equal(t, "cotizacion_SA.STAUBINSURMER.112025001_20251114.docx", filename)
}

func TestExport_DraftRechazado(t *testing.T) {
	f, export, _ := newExportFixture(t)
	draft, err := f.quotes.CreateQuote(context.Background(), dto.CreateQuoteRequest{
		ClientID: f.clientID,
		Items:    []dto.LineItemRequest{{Description: "x", UnitPrice: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)

	_, _, err = export.ExportPDF(context.Background(), draft.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un DRAFT sin número no es exportable")
}

func TestExport_DocumentoInexistente(t *testing.T) {
	_, export, _ := newExportFixture(t)
	_, _, err := export.ExportPDF(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
