package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
	"github.com/jhoicas/CashCount-api/pkg/jwt"
)

// UserUseCase aplica las reglas de identidad y membresía.
// Toda escritura que toca más de una fila corre en una sola transacción.
type UserUseCase struct {
	tx     ports.TxRunner
	users  repository.UserRepository
	hasher ports.PasswordHasher
	tokens auth.TokenIssuer
	alerts ports.AlertPublisher
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(tx ports.TxRunner, users repository.UserRepository, hasher ports.PasswordHasher, tokens auth.TokenIssuer, alerts ports.AlertPublisher) *UserUseCase {
	return &UserUseCase{tx: tx, users: users, hasher: hasher, tokens: tokens, alerts: alerts}
}

// CreateUser crea el usuario y, si companyCode no está vacío, su membresía, todo en una transacción.
// Sin empresa (alta por super admin) se exigen email y password; lo mismo para un administrador de empresa.
func (uc *UserUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest, companyCode string) (*dto.UserResponse, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: id requerido", domain.ErrInvalidInput)
	}
	needsCredential := companyCode == "" || in.CompanyAdmin
	if needsCredential && (in.Email == "" || in.Password == "") {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}

	user := &entity.User{
		ID:         id,
		Email:      strings.TrimSpace(in.Email),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		SuperAdmin: in.SuperAdmin,
	}
	if in.Password != "" {
		hash, err := uc.hasher.Hash(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	var m entity.Membership
	if companyCode != "" {
		if in.CompanyAdmin {
			m = entity.NewAdmin(id, companyCode, in.EmailReceiver)
		} else {
			active := true
			if in.Active != nil {
				active = *in.Active
			}
			m = entity.NewMember(id, companyCode, active)
		}
	}

	err := uc.tx.Run(ctx, func(s repository.Store) error {
		if err := s.Users.Create(ctx, user); err != nil {
			return err
		}
		if m.Role == entity.RoleNone {
			return nil
		}
		return s.Memberships.Put(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(&entity.UserProfile{User: *user, Membership: m}), nil
}

// GetUser devuelve el usuario normalizado. Si scope no está vacío, el usuario debe
// pertenecer a esa empresa; de lo contrario se responde NotFound sin revelar si existe.
func (uc *UserUseCase) GetUser(ctx context.Context, id, scope string) (*dto.UserResponse, error) {
	p, err := uc.users.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || (scope != "" && !p.Membership.BelongsTo(scope)) {
		return nil, domain.ErrUserNotFound
	}
	return dto.ToUserResponse(p), nil
}

// ListUsers usuarios con cualquier membresía en la empresa. Lista vacía = NotFound.
func (uc *UserUseCase) ListUsers(ctx context.Context, companyCode string) (*dto.UserListResponse, error) {
	list, err := uc.users.ListByCompany(ctx, companyCode)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	out := &dto.UserListResponse{Users: make([]dto.UserResponse, 0, len(list))}
	for _, p := range list {
		out.Users = append(out.Users, *dto.ToUserResponse(p))
	}
	return out, nil
}

// PromoteToAdmin convierte la membresía en administrador (o ajusta emailReceiver).
func (uc *UserUseCase) PromoteToAdmin(ctx context.Context, id, companyCode string, emailReceiver bool) (*dto.UserResponse, error) {
	return uc.transition(ctx, id, companyCode, func(p *entity.UserProfile) (entity.Membership, error) {
		if p.User.Email == "" || !p.User.HasCredential() {
			return entity.Membership{}, fmt.Errorf("%w: un administrador requiere email y password", domain.ErrInvalidInput)
		}
		return entity.NewAdmin(id, companyCode, emailReceiver), nil
	})
}

// DemoteToUser convierte la membresía en usuario de empresa (o ajusta active).
func (uc *UserUseCase) DemoteToUser(ctx context.Context, id, companyCode string, active bool) (*dto.UserResponse, error) {
	return uc.transition(ctx, id, companyCode, func(*entity.UserProfile) (entity.Membership, error) {
		return entity.NewMember(id, companyCode, active), nil
	})
}

func (uc *UserUseCase) transition(ctx context.Context, id, companyCode string, next func(*entity.UserProfile) (entity.Membership, error)) (*dto.UserResponse, error) {
	var out *entity.UserProfile
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := loadForCompany(ctx, s, id, companyCode)
		if err != nil {
			return err
		}
		m, err := next(p)
		if err != nil {
			return err
		}
		if !entity.CanTransition(p.Membership.Role, m.Role) {
			return fmt.Errorf("%w: transición %s → %s", domain.ErrInvalidInput, p.Membership.Role, m.Role)
		}
		if err := s.Memberships.Put(ctx, m); err != nil {
			return err
		}
		p.Membership = m
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(out), nil
}

// UpdateProfile actualización parcial del perfil. Si el usuario se edita a sí mismo
// (callerID == id) se devuelve un token nuevo con los datos actualizados.
func (uc *UserUseCase) UpdateProfile(ctx context.Context, callerID, id string, upd entity.ProfileUpdate) (*dto.UserUpdateResponse, error) {
	if upd.IsEmpty() {
		return nil, domain.ErrNoData
	}
	var out *entity.UserProfile
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := s.Users.GetProfile(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrUserNotFound
		}
		if err := uc.applyProfile(p, upd); err != nil {
			return err
		}
		if err := s.Users.Update(ctx, &p.User); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.updateResponse(callerID, out)
}

// UpdateCompanyUser actualiza el perfil y aplica la intención de rol en la empresa.
// Sin emailReceiver/active se conserva el valor previo (por defecto false/true).
// Un administrador de empresa no puede tocar super admins ni editar el perfil de
// usuarios que aún no pertenecen a su empresa.
func (uc *UserUseCase) UpdateCompanyUser(ctx context.Context, caller *jwt.Identity, id, companyCode string, in dto.UpdateCompanyUserRequest) (*dto.UserUpdateResponse, error) {
	upd := entity.ProfileUpdate{Email: in.Email, FirstName: in.FirstName, LastName: in.LastName, Password: in.Password}
	var out *entity.UserProfile
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		p, err := loadForCompany(ctx, s, id, companyCode)
		if err != nil {
			return err
		}
		if !canManage(caller, p, companyCode, !upd.IsEmpty()) {
			return domain.ErrUserNotFound
		}
		prev := p.Membership
		if !upd.IsEmpty() {
			if err := uc.applyProfile(p, upd); err != nil {
				return err
			}
			if err := s.Users.Update(ctx, &p.User); err != nil {
				return err
			}
		}

		var m entity.Membership
		if in.CompanyAdmin {
			if p.User.Email == "" || !p.User.HasCredential() {
				return fmt.Errorf("%w: un administrador requiere email y password", domain.ErrInvalidInput)
			}
			recv := prev.Role == entity.RoleAdmin && prev.EmailReceiver
			if in.EmailReceiver != nil {
				recv = *in.EmailReceiver
			}
			m = entity.NewAdmin(id, companyCode, recv)
		} else {
			active := prev.Role != entity.RoleMember || prev.Active
			if in.Active != nil {
				active = *in.Active
			}
			m = entity.NewMember(id, companyCode, active)
		}
		if err := s.Memberships.Put(ctx, m); err != nil {
			return err
		}
		p.Membership = m
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	callerID := ""
	if caller != nil {
		callerID = caller.ID
	}
	return uc.updateResponse(callerID, out)
}

// canManage decide si caller puede operar sobre p dentro de companyCode.
// editsProfile indica que la petición cambia email, nombres o password.
func canManage(caller *jwt.Identity, p *entity.UserProfile, companyCode string, editsProfile bool) bool {
	if caller == nil {
		return false
	}
	if caller.SuperAdmin {
		return true
	}
	if !auth.IsCompanyAdmin(caller, companyCode) || p.User.SuperAdmin {
		return false
	}
	return !editsProfile || p.Membership.BelongsTo(companyCode)
}

// ResetPassword genera una credencial nueva y la envía por correo. El email debe coincidir;
// usuario inexistente y email distinto responden igual.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id, email string) error {
	mismatch := fmt.Errorf("%w: el email no corresponde al usuario", domain.ErrInvalidInput)
	var (
		user  entity.User
		plain string
	)
	err := uc.tx.Run(ctx, func(s repository.Store) error {
		u, err := s.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if u == nil || u.Email == "" || !strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return mismatch
		}
		plain, err = auth.GeneratePassword(auth.ResetPasswordLength)
		if err != nil {
			return err
		}
		hash, err := uc.hasher.Hash(plain)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
		if err := s.Users.Update(ctx, u); err != nil {
			return err
		}
		user = *u
		return nil
	})
	if err != nil {
		return err
	}
	uc.alerts.PublishPasswordReset(user, plain)
	return nil
}

func (uc *UserUseCase) applyProfile(p *entity.UserProfile, upd entity.ProfileUpdate) error {
	u := &p.User
	if upd.Email != nil {
		u.Email = strings.TrimSpace(*upd.Email)
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.SuperAdmin != nil {
		u.SuperAdmin = *upd.SuperAdmin
	}
	if upd.Password != nil {
		if *upd.Password == "" {
			return fmt.Errorf("%w: password vacío", domain.ErrInvalidInput)
		}
		hash, err := uc.hasher.Hash(*upd.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if p.Membership.IsAdmin() && u.Email == "" {
		return fmt.Errorf("%w: un administrador requiere email", domain.ErrInvalidInput)
	}
	return nil
}

func (uc *UserUseCase) updateResponse(callerID string, p *entity.UserProfile) (*dto.UserUpdateResponse, error) {
	out := &dto.UserUpdateResponse{User: *dto.ToUserResponse(p)}
	if callerID != "" && callerID == p.User.ID && uc.tokens != nil {
		tok, err := uc.tokens.Issue(auth.IdentityOf(p))
		if err != nil {
			return nil, err
		}
		out.Token = tok
	}
	return out, nil
}

// loadForCompany carga el perfil y exige que no tenga membresía en otra empresa.
func loadForCompany(ctx context.Context, s repository.Store, id, companyCode string) (*entity.UserProfile, error) {
	p, err := s.Users.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	if p.Membership.Role != entity.RoleNone && !p.Membership.BelongsTo(companyCode) {
		return nil, domain.ErrUserNotFound
	}
	return p, nil
}
