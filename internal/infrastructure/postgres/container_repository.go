package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

var _ repository.ContainerRepository = (*ContainerRepo)(nil)

// ContainerRepo implementación del puerto ContainerRepository sobre PostgreSQL.
type ContainerRepo struct {
	q Querier
}

// NewContainerRepository construye el adaptador de contenedores.
func NewContainerRepository(q Querier) *ContainerRepo {
	return &ContainerRepo{q: q}
}

const containerColumns = `id, company_code, name, target, pos_threshold, neg_threshold`

// Create inserta el contenedor y asigna el ID generado.
func (r *ContainerRepo) Create(ctx context.Context, c *entity.Container) error {
	query := `
		INSERT INTO containers (company_code, name, target, pos_threshold, neg_threshold)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, c.CompanyCode, c.Name, c.Target, c.PosThreshold, c.NegThreshold).Scan(&c.ID)
	if err != nil {
		return mapWriteError("insert container", err)
	}
	return nil
}

// GetByID obtiene un contenedor.
func (r *ContainerRepo) GetByID(ctx context.Context, id int64) (*entity.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE id = $1`
	var c entity.Container
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.CompanyCode, &c.Name, &c.Target, &c.PosThreshold, &c.NegThreshold)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get container: %w", err)
	}
	return &c, nil
}

// ListByCompany contenedores de la empresa ordenados por id.
func (r *ContainerRepo) ListByCompany(ctx context.Context, companyCode string) ([]*entity.Container, error) {
	query := `SELECT ` + containerColumns + ` FROM containers WHERE company_code = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyCode)
	if err != nil {
		return nil, fmt.Errorf("list containers: %w", err)
	}
	defer rows.Close()

	var out []*entity.Container
	for rows.Next() {
		var c entity.Container
		if err := rows.Scan(&c.ID, &c.CompanyCode, &c.Name, &c.Target, &c.PosThreshold, &c.NegThreshold); err != nil {
			return nil, fmt.Errorf("scan container: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// Update reemplaza nombre y montos. La empresa dueña no se modifica.
func (r *ContainerRepo) Update(ctx context.Context, c *entity.Container) error {
	query := `
		UPDATE containers SET name = $2, target = $3, pos_threshold = $4, neg_threshold = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Target, c.PosThreshold, c.NegThreshold)
	if err != nil {
		return mapWriteError("update container", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update container %d: %w", c.ID, errNoRowsAffected)
	}
	return nil
}
