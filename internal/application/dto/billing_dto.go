package dto

import "github.com/shopspring/decimal"

// CreateClientRequest body para POST /api/clients.
type CreateClientRequest struct {
	Name    string `json:"name"`
	SIRET   string `json:"siret,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// UpdateClientRequest body para PUT /api/clients/:id.
type UpdateClientRequest struct {
	Name    string `json:"name"`
	SIRET   string `json:"siret,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// ClientResponse cliente en respuestas.
type ClientResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	SIRET   string `json:"siret,omitempty"`
	Address string `json:"address,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// LineItemRequest línea de documento (descripción + precio HT).
type LineItemRequest struct {
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateQuoteRequest body para POST /api/quotes. La cotización nace en DRAFT
// (sin número); el número se asigna con POST /api/quotes/:id/save.
type CreateQuoteRequest struct {
	ClientID string            `json:"client_id"`
	Items    []LineItemRequest `json:"items"`
}

// ReplaceItemsRequest body para PUT /api/quotes/:id/items.
type ReplaceItemsRequest struct {
	Items []LineItemRequest `json:"items"`
}

// ConvertQuoteRequest body para POST /api/quotes/:id/convert.
// OrderRef es la referencia de orden de compra (bon de commande) de la
// factura; InterventionDate es la fecha de intervención opcional, en formato
// YYYY-MM-DD.
type ConvertQuoteRequest struct {
	OrderRef         string `json:"order_ref,omitempty"`
	InterventionDate string `json:"intervention_date,omitempty"`
}

// LineItemResponse línea en respuestas, en orden de inserción.
type LineItemResponse struct {
	ID          string          `json:"id"`
	Position    int             `json:"position"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// DocumentResponse cotización o factura con detalle completo.
type DocumentResponse struct {
	ID               string             `json:"id"`
	Kind             string             `json:"kind"` // QUOTE | INVOICE
	Number           string             `json:"number,omitempty"`
	ClientID         string             `json:"client_id"`
	ClientName       string             `json:"client_name,omitempty"`
	Date             string             `json:"date,omitempty"`
	Status           string             `json:"status"` // DRAFT | SAVED | CONVERTED
	OrderRef         string             `json:"order_ref,omitempty"`
	InterventionDate string             `json:"intervention_date,omitempty"`
	SourceQuoteID    string             `json:"source_quote_id,omitempty"`
	LinkedInvoiceID  string             `json:"linked_invoice_id,omitempty"`
	NetTotal         decimal.Decimal    `json:"net_total"`
	TaxTotal         decimal.Decimal    `json:"tax_total"`
	GrandTotal       decimal.Decimal    `json:"grand_total"`
	Items            []LineItemResponse `json:"items"`
}
