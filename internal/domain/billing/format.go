package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatEuros formatea un monto en formato francés: "1234.56" → "1 234,56 €".
// Separador de miles con espacio y coma decimal, siempre a 2 decimales.
func FormatEuros(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	intPart, decPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, decPart = s[:i], s[i+1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3+8)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 && intPart[i-1] != '-' {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	out := string(buf)
	if decPart != "" {
		out += "," + decPart
	}
	return out + " €"
}

// VATLabel arma la etiqueta de la línea de impuesto a partir de la tasa
// configurada: 0.20 → "TVA (20 %)", 0.055 → "TVA (5,5 %)". Acepta la misma
// normalización que NewLedger (tasa no positiva → DefaultTaxRate, porcentaje
// expresado >1 → fracción).
func VATLabel(rate decimal.Decimal) string {
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = DefaultTaxRate
	}
	if rate.GreaterThan(decimal.NewFromInt(1)) {
		rate = rate.Div(decimal.NewFromInt(100))
	}
	pct := rate.Mul(decimal.NewFromInt(100))
	return "TVA (" + strings.ReplaceAll(pct.String(), ".", ",") + " %)"
}
