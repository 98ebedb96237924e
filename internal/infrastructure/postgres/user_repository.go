package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const profileSelect = `
	SELECT u.id, u.email, u.password, u.first_name, u.last_name, u.super_admin,
	       a.company_code, a.email_receiver, cu.company_code, cu.active
	FROM users u
	LEFT JOIN company_admins a ON a.user_id = u.id
	LEFT JOIN company_users cu ON cu.user_id = u.id`

// Create persiste un nuevo usuario. id o email repetidos devuelven domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password, first_name, last_name, super_admin)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		user.ID, nullString(user.Email), nullString(user.PasswordHash),
		user.FirstName, user.LastName, user.SuperAdmin,
	)
	if err != nil {
		return mapWriteError("insert user", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
		SELECT id, email, password, first_name, last_name, super_admin
		FROM users WHERE id = $1`
	var (
		u           entity.User
		email, hash *string
	)
	err := r.q.QueryRow(ctx, query, id).Scan(&u.ID, &email, &hash, &u.FirstName, &u.LastName, &u.SuperAdmin)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	u.Email, u.PasswordHash = derefString(email), derefString(hash)
	return &u, nil
}

// Update reemplaza los campos del perfil.
func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET email = $2, password = $3, first_name = $4, last_name = $5, super_admin = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		user.ID, nullString(user.Email), nullString(user.PasswordHash),
		user.FirstName, user.LastName, user.SuperAdmin,
	)
	if err != nil {
		return mapWriteError("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update user %s: %w", user.ID, errNoRowsAffected)
	}
	return nil
}

// GetProfile usuario + membresía en una sola consulta.
func (r *UserRepo) GetProfile(ctx context.Context, id string) (*entity.UserProfile, error) {
	row := r.q.QueryRow(ctx, profileSelect+` WHERE u.id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user profile: %w", err)
	}
	return p, nil
}

// ListByCompany usuarios con cualquier membresía en la empresa.
func (r *UserRepo) ListByCompany(ctx context.Context, companyCode string) ([]*entity.UserProfile, error) {
	query := profileSelect + `
		WHERE a.company_code = $1 OR cu.company_code = $1
		ORDER BY u.last_name, u.first_name, u.id`
	rows, err := r.q.Query(ctx, query, companyCode)
	if err != nil {
		return nil, fmt.Errorf("list users by company: %w", err)
	}
	defer rows.Close()

	var out []*entity.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*entity.UserProfile, error) {
	var (
		p                     entity.UserProfile
		email, hash           *string
		adminCode, memberCode *string
		emailReceiver, active *bool
	)
	err := row.Scan(
		&p.User.ID, &email, &hash, &p.User.FirstName, &p.User.LastName, &p.User.SuperAdmin,
		&adminCode, &emailReceiver, &memberCode, &active,
	)
	if err != nil {
		return nil, err
	}
	p.User.Email, p.User.PasswordHash = derefString(email), derefString(hash)
	switch {
	case adminCode != nil:
		p.Membership = entity.NewAdmin(p.User.ID, *adminCode, emailReceiver != nil && *emailReceiver)
	case memberCode != nil:
		p.Membership = entity.NewMember(p.User.ID, *memberCode, active != nil && *active)
	}
	return &p, nil
}
