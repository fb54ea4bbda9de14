package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/petverde/green-pos/internal/domain"
	"github.com/petverde/green-pos/internal/domain/entity"
	"github.com/petverde/green-pos/internal/domain/repository"
)

var _ repository.ServiceTypeRepository = (*ServiceTypeRepo)(nil)

const serviceTypeColumns = `id, code, name, COALESCE(description, ''), pricing_mode, base_price, profit_percentage, active, created_at, updated_at`

// ServiceTypeRepo implementación del puerto ServiceTypeRepository sobre PostgreSQL.
type ServiceTypeRepo struct {
	q Querier
}

// NewServiceTypeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceTypeRepository(q Querier) *ServiceTypeRepo {
	return &ServiceTypeRepo{q: q}
}

// Create inserta un tipo de servicio.
func (r *ServiceTypeRepo) Create(st *entity.ServiceType) error {
	query := `
		INSERT INTO service_types (id, code, name, description, pricing_mode, base_price, profit_percentage, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		st.ID, st.Code, st.Name, nullIfEmpty(st.Description),
		st.PricingMode, st.BasePrice, st.ProfitPercentage, st.Active,
		st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: código %s", domain.ErrDuplicate, st.Code)
		}
		return fmt.Errorf("insert service type: %w", err)
	}
	return nil
}

// Update actualiza un tipo de servicio.
func (r *ServiceTypeRepo) Update(st *entity.ServiceType) error {
	query := `
		UPDATE service_types SET name = $2, description = $3, pricing_mode = $4, base_price = $5, profit_percentage = $6, active = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		st.ID, st.Name, nullIfEmpty(st.Description),
		st.PricingMode, st.BasePrice, st.ProfitPercentage, st.Active, st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update service type: %w", err)
	}
	return nil
}

// GetByCode obtiene un tipo de servicio por código.
func (r *ServiceTypeRepo) GetByCode(code string) (*entity.ServiceType, error) {
	query := `SELECT ` + serviceTypeColumns + ` FROM service_types WHERE code = $1`
	var st entity.ServiceType
	err := r.q.QueryRow(context.Background(), query, code).Scan(
		&st.ID, &st.Code, &st.Name, &st.Description,
		&st.PricingMode, &st.BasePrice, &st.ProfitPercentage, &st.Active,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service type: %w", err)
	}
	return &st, nil
}

// List lista tipos de servicio, opcionalmente solo los activos.
func (r *ServiceTypeRepo) List(activeOnly bool) ([]*entity.ServiceType, error) {
	query := `SELECT ` + serviceTypeColumns + ` FROM service_types`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list service types: %w", err)
	}
	defer rows.Close()
	var list []*entity.ServiceType
	for rows.Next() {
		var st entity.ServiceType
		if err := rows.Scan(
			&st.ID, &st.Code, &st.Name, &st.Description,
			&st.PricingMode, &st.BasePrice, &st.ProfitPercentage, &st.Active,
			&st.CreatedAt, &st.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service type: %w", err)
		}
		list = append(list, &st)
	}
	return list, rows.Err()
}
