package entity

import "github.com/shopspring/decimal"

// LineItem representa una línea de un documento (descripción + precio HT).
// El orden de inserción es significativo para el render (Position).
type LineItem struct {
	ID          string
	DocumentID  string
	Position    int
	Description string
	UnitPrice   decimal.Decimal // Precio unitario antes de impuestos
}
