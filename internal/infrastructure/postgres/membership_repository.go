package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo persiste company_admins / company_users. Un usuario tiene a lo sumo
// una fila entre ambas tablas (user_id es PK en cada una y Put borra la otra variante).
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador de membresías.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

// Get devuelve la membresía del usuario (Role == RoleNone si no tiene).
func (r *MembershipRepo) Get(ctx context.Context, userID string) (entity.Membership, error) {
	query := `
		SELECT a.company_code, a.email_receiver, cu.company_code, cu.active
		FROM (SELECT $1::text AS user_id) x
		LEFT JOIN company_admins a ON a.user_id = x.user_id
		LEFT JOIN company_users cu ON cu.user_id = x.user_id`
	var (
		adminCode, memberCode *string
		emailReceiver, active *bool
	)
	if err := r.q.QueryRow(ctx, query, userID).Scan(&adminCode, &emailReceiver, &memberCode, &active); err != nil {
		return entity.Membership{}, fmt.Errorf("get membership: %w", err)
	}
	switch {
	case adminCode != nil:
		return entity.NewAdmin(userID, *adminCode, emailReceiver != nil && *emailReceiver), nil
	case memberCode != nil:
		return entity.NewMember(userID, *memberCode, active != nil && *active), nil
	}
	return entity.Membership{UserID: userID}, nil
}

// Put reemplaza la variante anterior en una sola sentencia: borra la fila de la otra tabla
// y hace upsert en la tabla destino.
func (r *MembershipRepo) Put(ctx context.Context, m entity.Membership) error {
	if err := m.Validate(); err != nil {
		return err
	}
	var query string
	var flag bool
	switch m.Role {
	case entity.RoleAdmin:
		query = `
			WITH gone AS (DELETE FROM company_users WHERE user_id = $1)
			INSERT INTO company_admins (user_id, company_code, email_receiver)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET company_code = EXCLUDED.company_code, email_receiver = EXCLUDED.email_receiver`
		flag = m.EmailReceiver
	case entity.RoleMember:
		query = `
			WITH gone AS (DELETE FROM company_admins WHERE user_id = $1)
			INSERT INTO company_users (user_id, company_code, active)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id) DO UPDATE
			SET company_code = EXCLUDED.company_code, active = EXCLUDED.active`
		flag = m.Active
	default:
		return fmt.Errorf("put membership: rol %s no persistible", m.Role)
	}
	if _, err := r.q.Exec(ctx, query, m.UserID, m.CompanyCode, flag); err != nil {
		return mapWriteError("put membership", err)
	}
	return nil
}

// ListEmailReceivers administradores de la empresa con email_receiver y email cargado.
func (r *MembershipRepo) ListEmailReceivers(ctx context.Context, companyCode string) ([]*entity.User, error) {
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.super_admin
		FROM company_admins a
		JOIN users u ON u.id = a.user_id
		WHERE a.company_code = $1 AND a.email_receiver AND u.email IS NOT NULL
		ORDER BY u.id`
	rows, err := r.q.Query(ctx, query, companyCode)
	if err != nil {
		return nil, fmt.Errorf("list email receivers: %w", err)
	}
	defer rows.Close()

	var out []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.SuperAdmin); err != nil {
			return nil, fmt.Errorf("scan email receiver: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
