package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEuros_FormatoFrances(t *testing.T) {
	assert.Equal(t, "800,00 €", FormatEuros(decimal.NewFromInt(800)))
	assert.Equal(t, "1 234,56 €", FormatEuros(decimal.NewFromFloat(1234.56)))
	assert.Equal(t, "1 234 567,80 €", FormatEuros(decimal.NewFromFloat(1234567.8)))
	assert.Equal(t, "0,00 €", FormatEuros(decimal.Zero))
	assert.Equal(t, "-1 500,00 €", FormatEuros(decimal.NewFromInt(-1500)))
}

func TestVATLabel_SegunTasaConfigurada(t *testing.T) {
	assert.Equal(t, "TVA (20 %)", VATLabel(decimal.NewFromFloat(0.20)))
	assert.Equal(t, "TVA (10 %)", VATLabel(decimal.NewFromFloat(0.10)))
	assert.Equal(t, "TVA (5,5 %)", VATLabel(decimal.NewFromFloat(0.055)))
	// Tasa expresada como porcentaje o vacía: misma normalización que NewLedger.
	assert.Equal(t, "TVA (20 %)", VATLabel(decimal.NewFromInt(20)))
	assert.Equal(t, "TVA (20 %)", VATLabel(decimal.Zero))
}
