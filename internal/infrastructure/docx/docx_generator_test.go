package docx_test

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/jdcamargo/cotizador-api/internal/application/billing"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/infrastructure/docx"
)

func testDocument(kind entity.DocumentKind, number string) (*entity.Document, *entity.Client, []*entity.LineItem) {
	doc := &entity.Document{
		ID:         "doc-1",
		Kind:       kind,
		Number:     number,
		ClientID:   "client-1",
		Date:       time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC),
		Status:     entity.StatusSaved,
		NetTotal:   decimal.NewFromInt(800),
		TaxTotal:   decimal.NewFromInt(160),
		GrandTotal: decimal.NewFromInt(960),
	}
	client := &entity.Client{ID: "client-1", Name: "St Aubin Sur Mer", Address: "14750 Saint-Aubin-sur-Mer"}
	items := []*entity.LineItem{
		{ID: "i1", DocumentID: "doc-1", Position: 0, Description: "Installation électrique", UnitPrice: decimal.NewFromInt(500)},
		{ID: "i2", DocumentID: "doc-1", Position: 1, Description: "Mise aux normes", UnitPrice: decimal.NewFromInt(300)},
	}
	return doc, client, items
}

// readPart abre una parte del paquete ZIP por nombre.
func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			content, err := io.ReadAll(rc)
			require.NoError(t, err)
			return string(content)
		}
	}
	t.Fatalf("parte %s no encontrada en el paquete", name)
	return ""
}

func TestGenerateDocumentDOCX_PaqueteValido(t *testing.T) {
	gen := docx.NewGenerator(appbilling.CompanyInfo{
		Name:  "Électricité Durand",
		SIRET: "98765432100022",
		IBAN:  "FR76 3000 6000 0112 3456 7890 189",
	}, decimal.NewFromFloat(0.20))
	doc, client, items := testDocument(entity.KindQuote, "SA.STAUBINSURMER.112025001")

	data, err := gen.GenerateDocumentDOCX(context.Background(), doc, client, items)
	require.NoError(t, err)
	require.NotEmpty(t, data)

	// Las tres partes mínimas del OOXML deben existir.
	ct := readPart(t, data, "[Content_Types].xml")
	assert.Contains(t, ct, "wordprocessingml.document.main+xml")
	rels := readPart(t, data, "_rels/.rels")
	assert.Contains(t, rels, "word/document.xml")

	body := readPart(t, data, "word/document.xml")
	assert.Contains(t, body, "DEVIS SA.STAUBINSURMER.112025001")
	assert.Contains(t, body, "Installation électrique")
	assert.Contains(t, body, "Mise aux normes")
	assert.Contains(t, body, "Total HT : 800,00 €")
	assert.Contains(t, body, "TVA (20 %) : 160,00 €")
	assert.Contains(t, body, "TOTAL TTC : 960,00 €")
	assert.Contains(t, body, "Devis valable 30 jours")
}

func TestGenerateDocumentDOCX_FacturaIncluyeCondiciones(t *testing.T) {
	gen := docx.NewGenerator(appbilling.CompanyInfo{
		Name:         "Électricité Durand",
		IBAN:         "FR76 3000 6000 0112 3456 7890 189",
		BIC:          "AGRIFRPP",
		PaymentTerms: "Paiement à 30 jours",
	}, decimal.NewFromFloat(0.20))
	doc, client, items := testDocument(entity.KindInvoice, "FA.STAUBINSURMER.112025001")
	doc.OrderRef = "BC-2025-042"
	doc.InterventionDate = time.Date(2025, time.November, 20, 0, 0, 0, 0, time.UTC)

	data, err := gen.GenerateDocumentDOCX(context.Background(), doc, client, items)
	require.NoError(t, err)

	body := readPart(t, data, "word/document.xml")
	assert.Contains(t, body, "FACTURE FA.STAUBINSURMER.112025001")
	assert.Contains(t, body, "Référence bon de commande : BC-2025-042")
	assert.Contains(t, body, "Date d'intervention : 20/11/2025")
	assert.Contains(t, body, "IBAN : FR76 3000 6000 0112 3456 7890 189")
	assert.Contains(t, body, "Conditions de paiement : Paiement à 30 jours")
	assert.NotContains(t, body, "Devis valable")
}

// La etiqueta de TVA sale de la tasa configurada, no de un literal: un
// despliegue con tasa reducida imprime su porcentaje real.
func TestGenerateDocumentDOCX_EtiquetaTVASegunTasa(t *testing.T) {
	gen := docx.NewGenerator(appbilling.CompanyInfo{Name: "Électricité Durand"}, decimal.NewFromFloat(0.10))
	doc, client, items := testDocument(entity.KindQuote, "SA.STAUBINSURMER.112025001")

	data, err := gen.GenerateDocumentDOCX(context.Background(), doc, client, items)
	require.NoError(t, err)

	body := readPart(t, data, "word/document.xml")
	assert.Contains(t, body, "TVA (10 %) :")
	assert.NotContains(t, body, "TVA (20 %)")
}
