// Package pdf implementa la representación imprimible de cotizaciones
// (devis) y facturas (factures).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + SIRET  │  DEVIS/FACTURE N° + Fecha        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + dirección + contacto                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° | Désignation | Prix unitaire HT                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total HT / TVA / Total TTC                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: IBAN/BIC + condiciones de pago + mentions légales  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/shopspring/decimal"

	appbilling "github.com/jdcamargo/cotizador-api/internal/application/billing"
	domainbilling "github.com/jdcamargo/cotizador-api/internal/domain/billing"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 30, Green: 60, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appbilling.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.DocumentPDFGenerator usando Maroto v2.
// La identidad del emisor y la tasa de TVA se fijan al construir: hay un
// único emisor por despliegue y ambos vienen de configuración.
type MarotoPDFGenerator struct {
	company  appbilling.CompanyInfo
	vatLabel string
}

// NewMarotoPDFGenerator construye el generador con los datos del emisor y la
// tasa de TVA configurada (para la etiqueta de la línea de impuesto).
func NewMarotoPDFGenerator(company appbilling.CompanyInfo, vatRate decimal.Decimal) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company, vatLabel: domainbilling.VATLabel(vatRate)}
}

// GenerateDocumentPDF genera el PDF del devis o la factura y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.Document,
	client *entity.Client,
	items []*entity.LineItem,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(docTitle(doc.Kind)+" "+doc.Number, true).
		WithAuthor(g.company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.emitterRow())
	m.AddRows(clientRow(client))
	if doc.OrderRef != "" {
		m.AddRows(orderRefRow(doc.OrderRef))
	}
	if !doc.InterventionDate.IsZero() {
		m.AddRows(interventionDateRow(doc.InterventionDate))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range g.footerRows(doc) {
		m.AddRows(r)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func docTitle(kind entity.DocumentKind) string {
	if kind == entity.KindInvoice {
		return "FACTURE"
	}
	return "DEVIS"
}

// headerRow: emisor + SIRET (izq) y título + número + fecha (der).
func (g *MarotoPDFGenerator) headerRow(doc *entity.Document) core.Row {
	fecha := doc.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SIRET : "+g.company.SIRET, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(docTitle(doc.Kind), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date : "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// emitterRow: datos de contacto del emisor.
func (g *MarotoPDFGenerator) emitterRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ÉMETTEUR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Adresse : %s   |   Tél : %s   |   Email : %s",
				nonEmpty(g.company.Address, "—"),
				nonEmpty(g.company.Phone, "—"),
				nonEmpty(g.company.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clientRow: datos del destinatario.
func clientRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("SIRET : %s   |   %s",
				nonEmpty(client.SIRET, "—"),
				nonEmpty(client.Address, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// orderRefRow: referencia de bon de commande (solo facturas que la traen).
func orderRefRow(orderRef string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Référence bon de commande : "+orderRef, props.Text{
			Size: 8, Top: 1, Color: colorGray,
		}),
	))
}

// interventionDateRow: fecha de intervención opcional (solo facturas).
func interventionDateRow(date time.Time) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New("Date d'intervention : "+date.Format("02/01/2006"), props.Text{
			Size: 8, Top: 1, Color: colorGray,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N°", 1, align.Center),
		h("Désignation", 8, align.Left),
		h("Prix unitaire HT", 3, align.Right),
	)
}

// tableItemRows: una fila por línea del documento, en orden de inserción.
func tableItemRows(items []*entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(8).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				domainbilling.FormatEuros(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha. La etiqueta de TVA
// sale de la tasa configurada, no de un literal.
func (g *MarotoPDFGenerator) totalsRow(doc *entity.Document) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Total HT :"),
			label(g.vatLabel+" :"),
			grandLabel("TOTAL TTC :"),
		),
		col.New(4).Add(
			value(domainbilling.FormatEuros(doc.NetTotal)),
			value(domainbilling.FormatEuros(doc.TaxTotal)),
			grandValue(domainbilling.FormatEuros(doc.GrandTotal)),
		),
		col.New(1),
	)
}

// footerRows: datos bancarios, condiciones de pago y mentions légales.
func (g *MarotoPDFGenerator) footerRows(doc *entity.Document) []core.Row {
	rows := []core.Row{}

	if doc.Kind == entity.KindInvoice {
		if g.company.IBAN != "" {
			rows = append(rows, row.New(6).Add(col.New(12).Add(
				text.New(fmt.Sprintf("IBAN : %s   |   BIC : %s", g.company.IBAN, nonEmpty(g.company.BIC, "—")),
					props.Text{Size: 8, Top: 1, Color: colorGray}),
			)))
		}
		if g.company.PaymentTerms != "" {
			rows = append(rows, row.New(6).Add(col.New(12).Add(
				text.New("Conditions de paiement : "+g.company.PaymentTerms,
					props.Text{Size: 8, Top: 1, Color: colorGray}),
			)))
		}
	} else {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Devis valable 30 jours à compter de sa date d'émission.",
				props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}

	mentions := []string{}
	if g.company.SIREN != "" {
		mentions = append(mentions, "SIREN "+g.company.SIREN)
	}
	if g.company.VATNumber != "" {
		mentions = append(mentions, "TVA intracommunautaire "+g.company.VATNumber)
	}
	if len(mentions) > 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New(strings.Join(mentions, "   |   "),
				props.Text{Size: 6.5, Color: colorGray, Top: 2}),
		)))
	}

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
