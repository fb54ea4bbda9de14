package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

var _ repository.SettingRepository = (*SettingRepo)(nil)

const settingColumns = `id, business_name, COALESCE(nit, ''), COALESCE(address, ''), COALESCE(phone, ''), COALESCE(email, ''), invoice_prefix, next_invoice_number, iva_responsable, tax_rate, updated_at`

// SettingRepo implementación del puerto SettingRepository sobre PostgreSQL.
// La tabla settings tiene una única fila (id = 1), sembrada por migración.
type SettingRepo struct {
	q Querier
}

// NewSettingRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSettingRepository(q Querier) *SettingRepo {
	return &SettingRepo{q: q}
}

func (r *SettingRepo) scanOne(row pgx.Row) (*entity.Setting, error) {
	var s entity.Setting
	err := row.Scan(
		&s.ID, &s.BusinessName, &s.NIT, &s.Address, &s.Phone, &s.Email,
		&s.InvoicePrefix, &s.NextInvoiceNumber, &s.IVAResponsable, &s.TaxRate, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan setting: %w", err)
	}
	return &s, nil
}

// Get obtiene la fila de configuración.
func (r *SettingRepo) Get() (*entity.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings WHERE id = 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query))
}

// GetForUpdate obtiene la fila de configuración bloqueándola (SELECT FOR
// UPDATE): serializa la asignación del consecutivo de documentos.
func (r *SettingRepo) GetForUpdate() (*entity.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM settings WHERE id = 1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query))
}

// Update escribe la fila de configuración (consecutivo incluido).
func (r *SettingRepo) Update(s *entity.Setting) error {
	query := `
		UPDATE settings SET business_name = $1, nit = $2, address = $3, phone = $4, email = $5, invoice_prefix = $6, next_invoice_number = $7, iva_responsable = $8, tax_rate = $9, updated_at = now()
		WHERE id = 1`
	_, err := r.q.Exec(context.Background(), query,
		s.BusinessName, nullIfEmpty(s.NIT), nullIfEmpty(s.Address), nullIfEmpty(s.Phone), nullIfEmpty(s.Email),
		s.InvoicePrefix, s.NextInvoiceNumber, s.IVAResponsable, s.TaxRate,
	)
	if err != nil {
		return fmt.Errorf("update setting: %w", err)
	}
	return nil
}
