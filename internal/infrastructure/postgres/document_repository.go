package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jdcamargo/cotizador-api/internal/domain"
	"github.com/jdcamargo/cotizador-api/internal/domain/entity"
	"github.com/jdcamargo/cotizador-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación de DocumentRepository (usable con pool o tx).
// Cabeceras en documents, líneas en document_items. El número vive como NULL
// mientras el documento está en DRAFT; el índice único parcial sobre
// (kind, number) garantiza que dos documentos de la misma serie nunca
// compartan número.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

const documentColumns = `
	id, kind, COALESCE(number, ''), client_id, date, status,
	COALESCE(order_ref, ''), intervention_date,
	COALESCE(source_quote_id, ''), COALESCE(linked_invoice_id, ''),
	net_total, tax_total, grand_total, created_at, updated_at`

// Create persiste la cabecera de un documento.
func (r *DocumentRepo) Create(doc *entity.Document) error {
	query := `
		INSERT INTO documents (id, kind, number, client_id, date, status,
		                       order_ref, intervention_date, source_quote_id, linked_invoice_id,
		                       net_total, tax_total, grand_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, string(doc.Kind), nullIfEmpty(doc.Number), doc.ClientID, nullIfZeroTime(doc.Date), doc.Status,
		nullIfEmpty(doc.OrderRef), nullIfZeroTime(doc.InterventionDate),
		nullIfEmpty(doc.SourceQuoteID), nullIfEmpty(doc.LinkedInvoiceID),
		doc.NetTotal, doc.TaxTotal, doc.GrandTotal, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert document", err)
	}
	return nil
}

// Update actualiza la cabecera (número, fecha, estado, enlaces y totales).
func (r *DocumentRepo) Update(doc *entity.Document) error {
	query := `
		UPDATE documents
		SET number = $2, date = $3, status = $4, order_ref = $5, intervention_date = $6,
		    linked_invoice_id = $7, net_total = $8, tax_total = $9, grand_total = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, nullIfEmpty(doc.Number), nullIfZeroTime(doc.Date), doc.Status, nullIfEmpty(doc.OrderRef),
		nullIfZeroTime(doc.InterventionDate),
		nullIfEmpty(doc.LinkedInvoiceID), doc.NetTotal, doc.TaxTotal, doc.GrandTotal, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("update document", err)
	}
	return nil
}

// GetByID obtiene un documento por ID. Retorna (nil, nil) si no existe.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	doc, err := r.scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get document", err)
	}
	return doc, nil
}

// ListByKind lista documentos de un kind, los más recientes primero.
func (r *DocumentRepo) ListByKind(kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + `
		FROM documents WHERE kind = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, string(kind), limit, offset)
	if err != nil {
		return nil, storageErr("list documents", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		doc, err := r.scanDocument(rows)
		if err != nil {
			return nil, storageErr("scan document", err)
		}
		list = append(list, doc)
	}
	return list, rows.Err()
}

// Delete elimina la cabecera. Las líneas caen por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return storageErr("delete document", err)
	}
	return nil
}

// CountByClient cuenta los documentos (de ambos kinds) de un cliente.
func (r *DocumentRepo) CountByClient(clientID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM documents WHERE client_id = $1`, clientID).Scan(&n)
	if err != nil {
		return 0, storageErr("count documents by client", err)
	}
	return n, nil
}

// CreateItem persiste una línea del documento.
func (r *DocumentRepo) CreateItem(item *entity.LineItem) error {
	query := `
		INSERT INTO document_items (id, document_id, position, description, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.DocumentID, item.Position, item.Description, item.UnitPrice,
	)
	if err != nil {
		return storageErr("insert document item", err)
	}
	return nil
}

// GetItemsByDocumentID lista las líneas de un documento en orden de inserción.
func (r *DocumentRepo) GetItemsByDocumentID(documentID string) ([]*entity.LineItem, error) {
	query := `
		SELECT id, document_id, position, description, unit_price
		FROM document_items WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, storageErr("list document items", err)
	}
	defer rows.Close()
	var list []*entity.LineItem
	for rows.Next() {
		var it entity.LineItem
		if err := rows.Scan(&it.ID, &it.DocumentID, &it.Position, &it.Description, &it.UnitPrice); err != nil {
			return nil, storageErr("scan document item", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// DeleteItemsByDocument borra todas las líneas de un documento.
func (r *DocumentRepo) DeleteItemsByDocument(documentID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM document_items WHERE document_id = $1`, documentID)
	if err != nil {
		return storageErr("delete document items", err)
	}
	return nil
}

// scanDocument lee una fila con documentColumns. date e intervention_date
// pueden ser NULL (DRAFT / factura sin fecha de intervención).
func (r *DocumentRepo) scanDocument(row pgx.Row) (*entity.Document, error) {
	var doc entity.Document
	var kind string
	var date, interventionDate *time.Time
	err := row.Scan(
		&doc.ID, &kind, &doc.Number, &doc.ClientID, &date, &doc.Status,
		&doc.OrderRef, &interventionDate, &doc.SourceQuoteID, &doc.LinkedInvoiceID,
		&doc.NetTotal, &doc.TaxTotal, &doc.GrandTotal, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	doc.Kind = entity.DocumentKind(kind)
	if date != nil {
		doc.Date = *date
	}
	if interventionDate != nil {
		doc.InterventionDate = *interventionDate
	}
	return &doc, nil
}

// nullIfZeroTime convierte el zero value de time.Time en NULL: un DRAFT no
// tiene fecha de emisión.
func nullIfZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
