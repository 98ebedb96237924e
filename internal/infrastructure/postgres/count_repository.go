package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

var _ repository.CountRepository = (*CountRepo)(nil)

// CountRepo persiste conteos. Solo INSERT y SELECT: no hay UPDATE ni DELETE.
type CountRepo struct {
	q Querier
}

// NewCountRepository construye el adaptador de conteos.
func NewCountRepository(q Querier) *CountRepo {
	return &CountRepo{q: q}
}

// Create inserta el conteo y asigna el ID generado.
func (r *CountRepo) Create(ctx context.Context, c *entity.Count) error {
	query := `
		INSERT INTO counts (container_id, cash, time, timestamp, note, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		c.ContainerID, c.Cash, c.Time, c.Timestamp, nullString(c.Note), c.UserID,
	).Scan(&c.ID)
	if err != nil {
		return mapWriteError("insert count", err)
	}
	return nil
}

// ListByContainer conteos del rango inclusivo, más recientes primero, con el nombre del usuario.
func (r *CountRepo) ListByContainer(ctx context.Context, containerID int64, w entity.CountWindow) ([]*entity.Count, error) {
	query := `
		SELECT c.id, c.container_id, c.cash, c.time, c.timestamp, c.note, c.user_id,
		       COALESCE(u.first_name, ''), COALESCE(u.last_name, '')
		FROM counts c
		LEFT JOIN users u ON u.id = c.user_id
		WHERE c.container_id = $1 AND c.timestamp BETWEEN $2 AND $3
		ORDER BY c.timestamp DESC, c.id DESC`
	rows, err := r.q.Query(ctx, query, containerID, w.Start, w.End)
	if err != nil {
		return nil, fmt.Errorf("list counts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Count
	for rows.Next() {
		var (
			c    entity.Count
			note *string
		)
		if err := rows.Scan(&c.ID, &c.ContainerID, &c.Cash, &c.Time, &c.Timestamp, &note, &c.UserID, &c.FirstName, &c.LastName); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		c.Note = derefString(note)
		out = append(out, &c)
	}
	return out, rows.Err()
}
