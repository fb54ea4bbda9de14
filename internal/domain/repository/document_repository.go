package repository

import (
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/ledger"
)

// DocumentRepository puerto de persistencia para facturas y notas crédito
// (tabla única con discriminador kind).
type DocumentRepository interface {
	Create(d *entity.Document) error
	CreateLine(l *entity.DocumentLine) error
	Update(d *entity.Document) error
	// Delete elimina cabecera y líneas (solo documentos pending).
	Delete(id string) error
	GetByID(id string) (*entity.Document, error)
	GetLines(documentID string) ([]*entity.DocumentLine, error)
	ListByCustomer(customerID string) ([]*entity.Document, error)
	// ListCreditNotesByCustomer devuelve las notas crédito validadas del
	// cliente en orden de creación ascendente (FIFO de aplicación).
	ListCreditNotesByCustomer(customerID string) ([]*entity.Document, error)
	// SaleEntriesByProduct devuelve las líneas de venta de facturas del
	// producto como deducciones implícitas para el kardex retroactivo.
	SaleEntriesByProduct(productID string) ([]ledger.SaleEntry, error)
}
