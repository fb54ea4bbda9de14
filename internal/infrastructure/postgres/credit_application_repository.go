package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

var _ repository.CreditApplicationRepository = (*CreditApplicationRepo)(nil)

// CreditApplicationRepo implementación del puerto
// CreditApplicationRepository sobre PostgreSQL. Append-only.
type CreditApplicationRepo struct {
	q Querier
}

// NewCreditApplicationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCreditApplicationRepository(q Querier) *CreditApplicationRepo {
	return &CreditApplicationRepo{q: q}
}

// Create inserta una aplicación de nota crédito.
func (r *CreditApplicationRepo) Create(a *entity.CreditApplication) error {
	query := `
		INSERT INTO credit_applications (id, credit_note_id, invoice_id, amount_applied, applied_at, applied_by)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.CreditNoteID, a.InvoiceID, a.AmountApplied, a.AppliedAt, nullIfEmpty(a.AppliedBy),
	)
	if err != nil {
		return fmt.Errorf("insert credit application: %w", err)
	}
	return nil
}

// SumByCreditNote devuelve el total ya consumido de una nota.
func (r *CreditApplicationRepo) SumByCreditNote(creditNoteID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount_applied), 0) FROM credit_applications WHERE credit_note_id = $1`,
		creditNoteID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum credit applications: %w", err)
	}
	return sum, nil
}

func (r *CreditApplicationRepo) list(query string, arg string) ([]*entity.CreditApplication, error) {
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list credit applications: %w", err)
	}
	defer rows.Close()
	var list []*entity.CreditApplication
	for rows.Next() {
		var a entity.CreditApplication
		if err := rows.Scan(&a.ID, &a.CreditNoteID, &a.InvoiceID, &a.AmountApplied, &a.AppliedAt, &a.AppliedBy); err != nil {
			return nil, fmt.Errorf("scan credit application: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

const creditApplicationColumns = `id, credit_note_id, invoice_id, amount_applied, applied_at, COALESCE(applied_by, '')`

// ListByCreditNote lista las aplicaciones de una nota, más antiguas primero.
func (r *CreditApplicationRepo) ListByCreditNote(creditNoteID string) ([]*entity.CreditApplication, error) {
	query := `SELECT ` + creditApplicationColumns + ` FROM credit_applications WHERE credit_note_id = $1 ORDER BY applied_at, id`
	return r.list(query, creditNoteID)
}

// ListByInvoice lista las aplicaciones recibidas por una factura.
func (r *CreditApplicationRepo) ListByInvoice(invoiceID string) ([]*entity.CreditApplication, error) {
	query := `SELECT ` + creditApplicationColumns + ` FROM credit_applications WHERE invoice_id = $1 ORDER BY applied_at, id`
	return r.list(query, invoiceID)
}
