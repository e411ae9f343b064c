package repository

import "github.com/jdcamargo/cotizador-api/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para cotizaciones y
// facturas con sus líneas.
type DocumentRepository interface {
	Create(doc *entity.Document) error
	// Update persiste número, fecha, estado, totales, referencias de
	// conversión y updated_at. El número nunca cambia después de asignado.
	Update(doc *entity.Document) error
	GetByID(id string) (*entity.Document, error)
	ListByKind(kind entity.DocumentKind, limit, offset int) ([]*entity.Document, error)
	Delete(id string) error
	// CountByClient cuenta documentos que referencian al cliente (guard de borrado).
	CountByClient(clientID string) (int, error)

	CreateItem(item *entity.LineItem) error
	GetItemsByDocumentID(documentID string) ([]*entity.LineItem, error)
	DeleteItemsByDocument(documentID string) error
}
