package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	q Querier
}

// NewCompanyRepository construye el adaptador de persistencia para empresas.
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO companies (company_code) VALUES ($1)`, company.Code); err != nil {
		return mapWriteError("insert company", err)
	}
	return nil
}

// GetByCode obtiene una empresa por código (sin contenedores).
func (r *CompanyRepo) GetByCode(ctx context.Context, code string) (*entity.Company, error) {
	var c entity.Company
	err := r.q.QueryRow(ctx, `SELECT company_code FROM companies WHERE company_code = $1`, code).Scan(&c.Code)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return &c, nil
}
