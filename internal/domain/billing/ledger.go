// Package billing contiene los servicios de dominio de facturación:
// el libro de líneas (Ledger) y el cálculo de totales con IVA.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
)

// DefaultTaxRate es el IVA por defecto (20%).
var DefaultTaxRate = decimal.NewFromFloat(0.20)

// Ledger mantiene las líneas de un documento en orden de inserción y calcula
// subtotal, impuesto y total. Redondeo a 2 decimales con Round de
// shopspring/decimal (half away from zero, que para montos no negativos
// equivale a half-up).
type Ledger struct {
	items   []entity.LineItem
	taxRate decimal.Decimal
}

// NewLedger construye un libro vacío. Una tasa no positiva toma DefaultTaxRate.
// Tasas expresadas como porcentaje (>1, ej. 20) se normalizan a fracción.
func NewLedger(taxRate decimal.Decimal) *Ledger {
	if taxRate.LessThanOrEqual(decimal.Zero) {
		taxRate = DefaultTaxRate
	}
	if taxRate.GreaterThan(decimal.NewFromInt(1)) {
		taxRate = taxRate.Div(decimal.NewFromInt(100))
	}
	return &Ledger{taxRate: taxRate}
}

// Add agrega una línea al final. Precio negativo → ErrInvalidInput.
func (l *Ledger) Add(item entity.LineItem) error {
	if item.UnitPrice.LessThan(decimal.Zero) {
		return fmt.Errorf("billing: precio unitario %s negativo: %w",
			item.UnitPrice.StringFixed(2), domain.ErrInvalidInput)
	}
	item.Position = len(l.items)
	l.items = append(l.items, item)
	return nil
}

// Remove elimina la línea en el índice dado conservando el orden del resto.
func (l *Ledger) Remove(index int) error {
	if index < 0 || index >= len(l.items) {
		return fmt.Errorf("billing: índice %d con %d líneas: %w",
			index, len(l.items), domain.ErrIndexOutOfRange)
	}
	l.items = append(l.items[:index], l.items[index+1:]...)
	for i := range l.items {
		l.items[i].Position = i
	}
	return nil
}

// Items devuelve una copia de las líneas (el estado interno no se comparte).
func (l *Ledger) Items() []entity.LineItem {
	out := make([]entity.LineItem, len(l.items))
	copy(out, l.items)
	return out
}

// Len devuelve el número de líneas.
func (l *Ledger) Len() int { return len(l.items) }

// TaxRate devuelve la tasa efectiva del libro (fracción, ej. 0.20).
func (l *Ledger) TaxRate() decimal.Decimal { return l.taxRate }

// Totals calcula (subtotal, impuesto, total), todos redondeados a 2 decimales.
// Libro vacío → tres ceros. total = subtotal + impuesto, nunca desactualizado:
// se recalcula desde las líneas en cada llamada.
func (l *Ledger) Totals() (subtotal, tax, total decimal.Decimal) {
	for _, item := range l.items {
		subtotal = subtotal.Add(item.UnitPrice)
	}
	subtotal = subtotal.Round(2)
	tax = subtotal.Mul(l.taxRate).Round(2)
	total = subtotal.Add(tax).Round(2)
	return subtotal, tax, total
}
