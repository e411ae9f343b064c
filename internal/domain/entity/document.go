package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind distingue cotizaciones de facturas. Es un variante cerrado:
// el prefijo del número y las transiciones permitidas dependen de él.
type DocumentKind string

const (
	KindQuote   DocumentKind = "QUOTE"   // Cotización (prefijo SA)
	KindInvoice DocumentKind = "INVOICE" // Factura (prefijo FA)
)

// Valid reporta si el kind es uno de los dos valores cerrados.
func (k DocumentKind) Valid() bool {
	return k == KindQuote || k == KindInvoice
}

// Estados del ciclo de vida de una cotización.
// DRAFT → SAVED → CONVERTED (transición de una sola vía, sin reversa).
// Las facturas nacen en SAVED: su número se asigna al crearlas.
const (
	StatusDraft     = "DRAFT"     // Sin número asignado; líneas mutables
	StatusSaved     = "SAVED"     // Número y fecha asignados; líneas aún editables
	StatusConverted = "CONVERTED" // Terminal; ninguna mutación de líneas permitida
)

// Document representa la cabecera de una cotización o factura.
// El número es único dentro de su kind e inmutable después de asignarse.
// Los totales se recalculan con el Ledger cada vez que cambian las líneas;
// nunca se persisten desactualizados.
type Document struct {
	ID               string
	Kind             DocumentKind
	Number           string // Vacío mientras el documento está en DRAFT
	ClientID         string
	Date             time.Time // Fecha de emisión (se fija al asignar número)
	Status           string
	OrderRef         string    // Bon de commande; solo facturas
	InterventionDate time.Time // Fecha de intervención; opcional, solo facturas
	SourceQuoteID    string    // Cotización de origen; solo facturas
	LinkedInvoiceID  string    // Factura generada; solo cotizaciones convertidas
	NetTotal         decimal.Decimal
	TaxTotal         decimal.Decimal
	GrandTotal       decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
