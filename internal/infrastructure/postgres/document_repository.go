package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/ledger"
	"github.com/petverde/green-pos/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, kind, number, customer_id, date, subtotal, tax, discount, total, status, payment_method, COALESCE(notes, ''), COALESCE(reference_document_id, ''), COALESCE(reason, ''), stock_restored, COALESCE(created_by, ''), created_at, updated_at`

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL
// (tabla única para facturas y notas crédito, discriminada por kind).
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create inserta la cabecera del documento.
func (r *DocumentRepo) Create(d *entity.Document) error {
	query := `
		INSERT INTO documents (id, kind, number, customer_id, date, subtotal, tax, discount, total, status, payment_method, notes, reference_document_id, reason, stock_restored, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Kind, d.Number, d.CustomerID, d.Date,
		d.Subtotal, d.Tax, d.Discount, d.Total,
		d.Status, d.PaymentMethod, nullIfEmpty(d.Notes),
		nullIfEmpty(d.ReferenceDocumentID), nullIfEmpty(d.Reason), d.StockRestored,
		nullIfEmpty(d.CreatedBy), d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// CreateLine inserta una línea del documento.
func (r *DocumentRepo) CreateLine(l *entity.DocumentLine) error {
	query := `
		INSERT INTO document_lines (id, document_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.DocumentID, l.ProductID, l.Quantity, l.UnitPrice,
	)
	if err != nil {
		return fmt.Errorf("insert document line: %w", err)
	}
	return nil
}

// Update actualiza la cabecera (método de pago, descuento, totales, estado,
// bitácora de notas).
func (r *DocumentRepo) Update(d *entity.Document) error {
	query := `
		UPDATE documents SET subtotal = $2, tax = $3, discount = $4, total = $5, status = $6, payment_method = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.Subtotal, d.Tax, d.Discount, d.Total,
		d.Status, d.PaymentMethod, nullIfEmpty(d.Notes), d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	return nil
}

// Delete elimina cabecera y líneas (solo documentos pending; lo valida el
// caso de uso).
func (r *DocumentRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM document_lines WHERE document_id = $1`, id); err != nil {
		return fmt.Errorf("delete document lines: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) scanOne(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	err := row.Scan(
		&d.ID, &d.Kind, &d.Number, &d.CustomerID, &d.Date,
		&d.Subtotal, &d.Tax, &d.Discount, &d.Total,
		&d.Status, &d.PaymentMethod, &d.Notes,
		&d.ReferenceDocumentID, &d.Reason, &d.StockRestored,
		&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan document: %w", err)
	}
	return &d, nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetLines devuelve las líneas del documento.
func (r *DocumentRepo) GetLines(documentID string) ([]*entity.DocumentLine, error) {
	query := `
		SELECT id, document_id, product_id, quantity, unit_price
		FROM document_lines WHERE document_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentLine
	for rows.Next() {
		var l entity.DocumentLine
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.ProductID, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan document line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *DocumentRepo) list(query string, args ...any) ([]*entity.Document, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(
			&d.ID, &d.Kind, &d.Number, &d.CustomerID, &d.Date,
			&d.Subtotal, &d.Tax, &d.Discount, &d.Total,
			&d.Status, &d.PaymentMethod, &d.Notes,
			&d.ReferenceDocumentID, &d.Reason, &d.StockRestored,
			&d.CreatedBy, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// ListByCustomer lista los documentos del cliente, más recientes primero.
func (r *DocumentRepo) ListByCustomer(customerID string) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE customer_id = $1 ORDER BY created_at DESC`
	return r.list(query, customerID)
}

// ListCreditNotesByCustomer devuelve las notas crédito validadas del cliente
// en orden de creación ascendente (FIFO de aplicación).
func (r *DocumentRepo) ListCreditNotesByCustomer(customerID string) ([]*entity.Document, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE customer_id = $1 AND kind = 'credit_note' AND status = 'validated'
		ORDER BY created_at, id`
	return r.list(query, customerID)
}

// SaleEntriesByProduct devuelve las líneas de venta de facturas del producto
// como deducciones implícitas para el kardex retroactivo.
func (r *DocumentRepo) SaleEntriesByProduct(productID string) ([]ledger.SaleEntry, error) {
	query := `
		SELECT d.id, d.number, l.product_id, l.quantity, d.date
		FROM document_lines l
		JOIN documents d ON d.id = l.document_id
		WHERE l.product_id = $1 AND d.kind = 'invoice'
		ORDER BY d.date, d.id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("sale entries: %w", err)
	}
	defer rows.Close()
	var list []ledger.SaleEntry
	for rows.Next() {
		var s ledger.SaleEntry
		if err := rows.Scan(&s.DocumentID, &s.DocumentNumber, &s.ProductID, &s.Quantity, &s.Date); err != nil {
			return nil, fmt.Errorf("scan sale entry: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
