// Package numbering genera los identificadores legibles de los documentos.
// Formato: <PREFIJO>.<CLIENTE_NORMALIZADO>.<MMYYYY><secuencia 03d>
// Ejemplo: SA.STAUBINSURMER.112025001
//
// El paquete es puro: no consulta contadores ni hace I/O. El consecutivo lo
// aporta el caller (CounterRepository) y aquí solo se formatea.
package numbering

import (
	"fmt"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
)

// Prefijos por defecto (configurables vía BUSINESS config).
const (
	DefaultQuotePrefix   = "SA"
	DefaultInvoicePrefix = "FA"
)

// Numberer formatea números de documento. Valor inmutable; mismo input,
// mismo output siempre.
type Numberer struct {
	quotePrefix   string
	invoicePrefix string
}

// New construye un Numberer. Prefijos vacíos toman los valores por defecto.
func New(quotePrefix, invoicePrefix string) Numberer {
	if quotePrefix == "" {
		quotePrefix = DefaultQuotePrefix
	}
	if invoicePrefix == "" {
		invoicePrefix = DefaultInvoicePrefix
	}
	return Numberer{quotePrefix: quotePrefix, invoicePrefix: invoicePrefix}
}

// Format produce el identificador del documento.
// La secuencia se rellena a 3 dígitos; valores ≥ 1000 conservan su ancho
// natural (sin truncar).
func (n Numberer) Format(kind entity.DocumentKind, clientName string, date time.Time, seq int64) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("numbering: kind desconocido %q: %w", kind, domain.ErrInvalidInput)
	}
	if seq <= 0 {
		return "", fmt.Errorf("numbering: secuencia %d inválida: %w", seq, domain.ErrInvalidInput)
	}
	name := NormalizeClientName(clientName)
	if name == "" {
		return "", fmt.Errorf("numbering: nombre de cliente vacío: %w", domain.ErrInvalidInput)
	}
	prefix := n.quotePrefix
	if kind == entity.KindInvoice {
		prefix = n.invoicePrefix
	}
	return fmt.Sprintf("%s.%s.%s%03d", prefix, name, Period(date), seq), nil
}

// Period devuelve el período mes-año del contador en formato MMYYYY.
func Period(date time.Time) string {
	return date.Format("012006")
}

// NormalizeClientName normaliza el nombre del cliente para el identificador:
// mayúsculas, diacríticos plegados (É→E) y todo lo que no sea A-Z/0-9 eliminado.
// "Staubin Sur Mer" → "STAUBINSURMER".
func NormalizeClientName(name string) string {
	folded := foldDiacritics(name)
	out := make([]rune, 0, len(folded))
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z':
			out = append(out, r-'a'+'A')
		case (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			out = append(out, r)
		}
	}
	return string(out)
}

// foldDiacritics descompone (NFD), elimina las marcas combinantes y recompone.
func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}
