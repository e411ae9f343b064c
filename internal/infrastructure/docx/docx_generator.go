// Package docx genera documentos Word (OOXML / WordprocessingML) para
// cotizaciones y facturas: el formato que el cliente final puede retocar
// antes de enviar. El .docx es un ZIP con un árbol XML fijo; las partes se
// construyen con etree y se empaquetan con archive/zip.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	appbilling "github.com/jdcamargo/cotizador-api/internal/application/billing"
	domainbilling "github.com/jdcamargo/cotizador-api/internal/domain/billing"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
)

const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsCT = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsR  = "http://schemas.openxmlformats.org/package/2006/relationships"
)

var _ appbilling.DocumentDOCXGenerator = (*Generator)(nil)

// Generator implementa billing.DocumentDOCXGenerator.
type Generator struct {
	company  appbilling.CompanyInfo
	vatLabel string
}

// NewGenerator construye el generador con los datos del emisor y la tasa de
// TVA configurada (para la etiqueta de la línea de impuesto).
func NewGenerator(company appbilling.CompanyInfo, vatRate decimal.Decimal) *Generator {
	return &Generator{company: company, vatLabel: domainbilling.VATLabel(vatRate)}
}

// GenerateDocumentDOCX arma el .docx del documento y devuelve sus bytes.
func (g *Generator) GenerateDocumentDOCX(
	_ context.Context,
	doc *entity.Document,
	client *entity.Client,
	items []*entity.LineItem,
) ([]byte, error) {
	body, err := g.buildDocumentXML(doc, client, items)
	if err != nil {
		return nil, fmt.Errorf("docx: construir document.xml: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", contentTypesXML()},
		{"_rels/.rels", relsXML()},
		{"word/document.xml", body},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, fmt.Errorf("docx: crear parte %s: %w", p.name, err)
		}
		if _, err := w.Write(p.data); err != nil {
			return nil, fmt.Errorf("docx: escribir parte %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("docx: cerrar paquete: %w", err)
	}
	return buf.Bytes(), nil
}

// buildDocumentXML arma word/document.xml: título, emisor, cliente, tabla de
// líneas y bloque de totales.
func (g *Generator) buildDocumentXML(doc *entity.Document, client *entity.Client, items []*entity.LineItem) ([]byte, error) {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)

	root := xml.CreateElement("w:document")
	root.CreateAttr("xmlns:w", nsW)
	body := root.CreateElement("w:body")

	title := docTitle(doc.Kind)
	addParagraph(body, title+" "+doc.Number, true, 32)
	addParagraph(body, "Date : "+doc.Date.Format("02/01/2006"), false, 20)
	if doc.OrderRef != "" {
		addParagraph(body, "Référence bon de commande : "+doc.OrderRef, false, 20)
	}
	if !doc.InterventionDate.IsZero() {
		addParagraph(body, "Date d'intervention : "+doc.InterventionDate.Format("02/01/2006"), false, 20)
	}
	addParagraph(body, "", false, 20)

	addParagraph(body, g.company.Name, true, 22)
	if g.company.Address != "" {
		addParagraph(body, g.company.Address, false, 20)
	}
	if g.company.SIRET != "" {
		addParagraph(body, "SIRET : "+g.company.SIRET, false, 20)
	}
	addParagraph(body, "", false, 20)

	addParagraph(body, "Client : "+client.Name, true, 22)
	if client.Address != "" {
		addParagraph(body, client.Address, false, 20)
	}
	addParagraph(body, "", false, 20)

	tbl := body.CreateElement("w:tbl")
	tblPr := tbl.CreateElement("w:tblPr")
	borders := tblPr.CreateElement("w:tblBorders")
	for _, side := range []string{"top", "left", "bottom", "right", "insideH", "insideV"} {
		b := borders.CreateElement("w:" + side)
		b.CreateAttr("w:val", "single")
		b.CreateAttr("w:sz", "4")
	}
	addTableRow(tbl, true, "N°", "Désignation", "Prix unitaire HT")
	for i, it := range items {
		addTableRow(tbl, false,
			fmt.Sprintf("%d", i+1),
			it.Description,
			domainbilling.FormatEuros(it.UnitPrice),
		)
	}

	addParagraph(body, "", false, 20)
	addParagraph(body, "Total HT : "+domainbilling.FormatEuros(doc.NetTotal), false, 22)
	addParagraph(body, g.vatLabel+" : "+domainbilling.FormatEuros(doc.TaxTotal), false, 22)
	addParagraph(body, "TOTAL TTC : "+domainbilling.FormatEuros(doc.GrandTotal), true, 24)

	if doc.Kind == entity.KindInvoice {
		addParagraph(body, "", false, 20)
		if g.company.IBAN != "" {
			addParagraph(body, fmt.Sprintf("IBAN : %s   BIC : %s", g.company.IBAN, g.company.BIC), false, 18)
		}
		if g.company.PaymentTerms != "" {
			addParagraph(body, "Conditions de paiement : "+g.company.PaymentTerms, false, 18)
		}
	} else {
		addParagraph(body, "", false, 20)
		addParagraph(body, "Devis valable 30 jours à compter de sa date d'émission.", false, 18)
	}

	body.CreateElement("w:sectPr")

	xml.Indent(0)
	return xml.WriteToBytes()
}

func docTitle(kind entity.DocumentKind) string {
	if kind == entity.KindInvoice {
		return "FACTURE"
	}
	return "DEVIS"
}

// addParagraph agrega un párrafo de un solo run. size en half-points.
func addParagraph(parent *etree.Element, textContent string, bold bool, size int) {
	p := parent.CreateElement("w:p")
	r := p.CreateElement("w:r")
	rPr := r.CreateElement("w:rPr")
	if bold {
		rPr.CreateElement("w:b")
	}
	sz := rPr.CreateElement("w:sz")
	sz.CreateAttr("w:val", fmt.Sprintf("%d", size))
	t := r.CreateElement("w:t")
	t.CreateAttr("xml:space", "preserve")
	t.SetText(textContent)
}

// addTableRow agrega una fila de tabla con una celda por valor.
func addTableRow(tbl *etree.Element, header bool, cells ...string) {
	tr := tbl.CreateElement("w:tr")
	for _, c := range cells {
		tc := tr.CreateElement("w:tc")
		tc.CreateElement("w:tcPr")
		p := tc.CreateElement("w:p")
		r := p.CreateElement("w:r")
		if header {
			r.CreateElement("w:rPr").CreateElement("w:b")
		}
		t := r.CreateElement("w:t")
		t.CreateAttr("xml:space", "preserve")
		t.SetText(c)
	}
}

func contentTypesXML() []byte {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	types := xml.CreateElement("Types")
	types.CreateAttr("xmlns", nsCT)

	def := types.CreateElement("Default")
	def.CreateAttr("Extension", "rels")
	def.CreateAttr("ContentType", "application/vnd.openxmlformats-package.relationships+xml")

	ov := types.CreateElement("Override")
	ov.CreateAttr("PartName", "/word/document.xml")
	ov.CreateAttr("ContentType", "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml")

	out, _ := xml.WriteToBytes()
	return out
}

func relsXML() []byte {
	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	rels := xml.CreateElement("Relationships")
	rels.CreateAttr("xmlns", nsR)

	rel := rels.CreateElement("Relationship")
	rel.CreateAttr("Id", "rId1")
	rel.CreateAttr("Type", "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument")
	rel.CreateAttr("Target", "word/document.xml")

	out, _ := xml.WriteToBytes()
	return out
}
