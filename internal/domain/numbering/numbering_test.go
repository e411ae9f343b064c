package numbering_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/domain/numbering"
)

// ──────────────────────────────────────────────────────────────────────────────
// Vectores de referencia del formato de numeración.
//
// El formato <PREFIJO>.<CLIENTE>.<MMYYYY><seq 03d> es un contrato externo:
// los números ya emitidos viven en PDFs y correos de clientes. Si alguien
// cambia el separador, el padding o la normalización, estos tests fallan
// antes de que salga un número incompatible.
// ──────────────────────────────────────────────────────────────────────────────

var testDate = time.Date(2025, time.November, 14, 10, 30, 0, 0, time.UTC)

func TestFormat_PrimeraCotizacionDelMes(t *testing.T) {
	n := numbering.New("", "")
	got, err := n.Format(entity.KindQuote, "Staubin Sur Mer", testDate, 1)
	require.NoError(t, err)
	assert.Equal(t, "SA.STAUBINSURMER.112025001", got)
}

func TestFormat_SegundaCotizacionMismoMes(t *testing.T) {
	n := numbering.New("", "")
	got, err := n.Format(entity.KindQuote, "Staubin Sur Mer", testDate, 2)
	require.NoError(t, err)
	assert.Equal(t, "SA.STAUBINSURMER.112025002", got)
}

func TestFormat_PrimeraFacturaUsaPrefijoFA(t *testing.T) {
	n := numbering.New("", "")
	got, err := n.Format(entity.KindInvoice, "Staubin Sur Mer", testDate, 1)
	require.NoError(t, err)
	assert.Equal(t, "FA.STAUBINSURMER.112025001", got)
}

// La secuencia 1000 no se trunca: se rinde con su ancho natural.
func TestFormat_SecuenciaMilSinTruncar(t *testing.T) {
	n := numbering.New("", "")
	got, err := n.Format(entity.KindQuote, "ACME", testDate, 1000)
	require.NoError(t, err)
	assert.Equal(t, "SA.ACME.1120251000", got)
}

func TestFormat_PaddingTresDigitos(t *testing.T) {
	n := numbering.New("", "")
	got, err := n.Format(entity.KindQuote, "ACME", testDate, 7)
	require.NoError(t, err)
	assert.Equal(t, "SA.ACME.112025007", got)
}

// Mismo input dos veces → exactamente el mismo string (función pura).
func TestFormat_Determinista(t *testing.T) {
	n := numbering.New("", "")
	a, err1 := n.Format(entity.KindInvoice, "Société Générale", testDate, 42)
	b, err2 := n.Format(entity.KindInvoice, "Société Générale", testDate, 42)
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, a, b)
}

func TestFormat_PrefijosPersonalizados(t *testing.T) {
	n := numbering.New("DV", "FC")
	quote, _ := n.Format(entity.KindQuote, "ACME", testDate, 1)
	invoice, _ := n.Format(entity.KindInvoice, "ACME", testDate, 1)
	assert.Equal(t, "DV.ACME.112025001", quote)
	assert.Equal(t, "FC.ACME.112025001", invoice)
}

// ── Errores de validación ─────────────────────────────────────────────────────

func TestFormat_ErrorSiClienteVacio(t *testing.T) {
	n := numbering.New("", "")
	_, err := n.Format(entity.KindQuote, "   ", testDate, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"un nombre sin caracteres alfanuméricos no puede generar número")
}

func TestFormat_ErrorSiSecuenciaCero(t *testing.T) {
	n := numbering.New("", "")
	_, err := n.Format(entity.KindQuote, "ACME", testDate, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormat_ErrorSiKindDesconocido(t *testing.T) {
	n := numbering.New("", "")
	_, err := n.Format(entity.DocumentKind("RECEIPT"), "ACME", testDate, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Normalización del nombre ──────────────────────────────────────────────────

func TestNormalizeClientName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Staubin Sur Mer", "STAUBINSURMER"},
		{"S.A.R.L. Dupont & Fils", "SARLDUPONTFILS"},
		{"Société Générale", "SOCIETEGENERALE"},     // diacríticos plegados
		{"café-restaurant 21", "CAFERESTAURANT21"},  // dígitos se conservan
		{"  espacios   múltiples  ", "ESPACIOSMULTIPLES"},
		{"!!!", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, numbering.NormalizeClientName(c.in), "input %q", c.in)
	}
}

func TestPeriod_FormatoMMYYYY(t *testing.T) {
	assert.Equal(t, "112025", numbering.Period(testDate))
	assert.Equal(t, "012026", numbering.Period(time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC)))
}
