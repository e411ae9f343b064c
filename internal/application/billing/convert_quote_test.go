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

func TestConvert_GeneraFacturaConSerieIndependiente(t *testing.T) {
	f := newQuoteFixture(t)
	primera := f.createSavedQuote(t, 500, 300) // SA...001
	segunda := f.createSavedQuote(t, 100)      // SA...002

	invoice, err := f.convert.Convert(context.Background(), primera.ID, dto.ConvertQuoteRequest{
		OrderRef: "BC-2025-042",
	})
	require.NoError(t, err)

	// La serie de facturas es independiente de la de cotizaciones: aunque ya
	// existen dos SA para este cliente/mes, la primera FA arranca en 001.
	assert.Equal(t, "FA.STAUBINSURMER.112025001", invoice.Number)
	assert.Equal(t, string(entity.KindInvoice), invoice.Kind)
	assert.Equal(t, entity.StatusSaved, invoice.Status)
	assert.Equal(t, "BC-2025-042", invoice.OrderRef)
	assert.Equal(t, primera.ID, invoice.SourceQuoteID)
	assert.Equal(t, "2025-11-14", invoice.Date)

	// Totales copiados por valor de las líneas de la cotización.
	assert.Equal(t, "800.00", invoice.NetTotal.StringFixed(2))
	assert.Equal(t, "160.00", invoice.TaxTotal.StringFixed(2))
	assert.Equal(t, "960.00", invoice.GrandTotal.StringFixed(2))
	require.Len(t, invoice.Items, 2)

	// La cotización queda CONVERTED con la referencia a su factura.
	quote, err := f.quotes.Get(context.Background(), primera.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusConverted, quote.Status)
	assert.Equal(t, invoice.ID, quote.LinkedInvoiceID)

	// La segunda cotización no se ve afectada.
	otra, err := f.quotes.Get(context.Background(), segunda.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSaved, otra.Status)
}

func TestConvert_SegundaVezAlreadyConverted(t *testing.T) {
	f := newQuoteFixture(t)
	saved := f.createSavedQuote(t, 100)

	_, err := f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{})
	require.NoError(t, err)

	_, err = f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{})
	assert.ErrorIs(t, err, domain.ErrAlreadyConverted)
}

func TestConvert_DraftDebeGuardarsePrimero(t *testing.T) {
	f := newQuoteFixture(t)
	draft, err := f.quotes.CreateQuote(context.Background(), dto.CreateQuoteRequest{
		ClientID: f.clientID,
		Items:    []dto.LineItemRequest{{Description: "x", UnitPrice: decimal.NewFromInt(10)}},
	})
	require.NoError(t, err)

	_, err = f.convert.Convert(context.Background(), draft.ID, dto.ConvertQuoteRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "un DRAFT sin número no puede facturarse")
}

func TestConvert_FacturaNoEsConvertible(t *testing.T) {
	f := newQuoteFixture(t)
	saved := f.createSavedQuote(t, 100)
	invoice, err := f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{})
	require.NoError(t, err)

	_, err = f.convert.Convert(context.Background(), invoice.ID, dto.ConvertQuoteRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConvert_IDInexistente(t *testing.T) {
	f := newQuoteFixture(t)
	_, err := f.convert.Convert(context.Background(), "no-existe", dto.ConvertQuoteRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Las líneas de la factura son una copia por valor: no comparten ID con las
// de la cotización, y el estado CONVERTED impide que la cotización cambie
// después, así que la factura nunca puede divergir de lo facturado.
func TestConvert_LineasCopiadasPorValor(t *testing.T) {
	f := newQuoteFixture(t)
	saved := f.createSavedQuote(t, 500, 300)

	invoice, err := f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{})
	require.NoError(t, err)

	quote, err := f.quotes.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	require.Len(t, invoice.Items, len(quote.Items))
	for i := range invoice.Items {
		assert.NotEqual(t, quote.Items[i].ID, invoice.Items[i].ID, "cada línea de la factura tiene ID propio")
		assert.Equal(t, quote.Items[i].Description, invoice.Items[i].Description)
		assert.True(t, quote.Items[i].UnitPrice.Equal(invoice.Items[i].UnitPrice))
	}
}

// Varias cotizaciones del mismo cliente y mes consumen la serie FA en orden.
func TestConvert_SerieFacturasConsecutiva(t *testing.T) {
	f := newQuoteFixture(t)
	q1 := f.createSavedQuote(t, 100)
	q2 := f.createSavedQuote(t, 200)

	inv1, err := f.convert.Convert(context.Background(), q1.ID, dto.ConvertQuoteRequest{})
	require.NoError(t, err)
	inv2, err := f.convert.Convert(context.Background(), q2.ID, dto.ConvertQuoteRequest{})
	require.NoError(t, err)

	assert.Equal(t, "FA.STAUBINSURMER.112025001", inv1.Number)
	assert.Equal(t, "FA.STAUBINSURMER.112025002", inv2.Number)
}

// La fecha de intervención es opcional: si viene, se persiste en la factura
// y sale en la respuesta; si no viene, el campo queda vacío.
func TestConvert_FechaDeIntervencionOpcional(t *testing.T) {
	f := newQuoteFixture(t)
	conFecha := f.createSavedQuote(t, 100)
	sinFecha := f.createSavedQuote(t, 200)

	invoice, err := f.convert.Convert(context.Background(), conFecha.ID, dto.ConvertQuoteRequest{
		OrderRef:         "BC-2025-042",
		InterventionDate: "2025-11-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-11-20", invoice.InterventionDate)

	otra, err := f.convert.Convert(context.Background(), sinFecha.ID, dto.ConvertQuoteRequest{})
	require.NoError(t, err)
	assert.Empty(t, otra.InterventionDate)
}

// Una fecha mal formada se rechaza antes de tocar nada: la cotización sigue
// SAVED y el contador FA no avanza.
func TestConvert_FechaDeIntervencionInvalida(t *testing.T) {
	f := newQuoteFixture(t)
	saved := f.createSavedQuote(t, 100)

	_, err := f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{
		InterventionDate: "20/11/2025",
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	quote, err := f.quotes.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSaved, quote.Status)

	invoice, err := f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{
		InterventionDate: "2025-11-20",
	})
	require.NoError(t, err)
	assert.Equal(t, "FA.STAUBINSURMER.112025001", invoice.Number)
}

// Si la actualización de la cotización falla al final de la transacción, no
// queda ni factura ni incremento del contador FA.
func TestConvert_FalloRevierteFacturaYContador(t *testing.T) {
	f := newQuoteFixture(t)
	saved := f.createSavedQuote(t, 100)

	f.store.failNextUpdate = true
	_, err := f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{})
	require.ErrorIs(t, err, domain.ErrStorage)

	quote, err := f.quotes.Get(context.Background(), saved.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSaved, quote.Status, "la cotización sigue SAVED tras el rollback")
	assert.Empty(t, quote.LinkedInvoiceID)

	invoice, err := f.convert.Convert(context.Background(), saved.ID, dto.ConvertQuoteRequest{})
	require.NoError(t, err)
	assert.Equal(t, "FA.STAUBINSURMER.112025001", invoice.Number,
		"el contador FA no debe quedar avanzado por la transacción fallida")
}
