package dto

import "github.com/jhoicas/CashCount-api/internal/domain/entity"

// LoginRequest credenciales de inicio de sesión (id de usuario + password).
type LoginRequest struct {
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token firmado + instantánea del usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest alta de usuario. CompanyAdmin/EmailReceiver/Active solo aplican
// cuando la ruta trae companyCode.
type CreateUserRequest struct {
	ID            string `json:"id" validate:"required,min=1,max=50"`
	Email         string `json:"email" validate:"omitempty,email,max=100"`
	Password      string `json:"password" validate:"omitempty,min=5,max=72"`
	FirstName     string `json:"firstName" validate:"required,min=1,max=50"`
	LastName      string `json:"lastName" validate:"required,min=1,max=50"`
	SuperAdmin    bool   `json:"superAdmin"`
	CompanyAdmin  bool   `json:"companyAdmin"`
	EmailReceiver bool   `json:"emailReceiver"`
	Active        *bool  `json:"active"`
}

// UpdateProfileRequest actualización parcial del perfil (lista blanca).
type UpdateProfileRequest struct {
	Email      *string `json:"email" validate:"omitempty,email,max=100"`
	FirstName  *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName   *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	Password   *string `json:"password" validate:"omitempty,min=5,max=72"`
	SuperAdmin *bool   `json:"superAdmin"`
}

// ToEntity convierte a la actualización de dominio.
func (r UpdateProfileRequest) ToEntity() entity.ProfileUpdate {
	return entity.ProfileUpdate{
		Email:      r.Email,
		FirstName:  r.FirstName,
		LastName:   r.LastName,
		Password:   r.Password,
		SuperAdmin: r.SuperAdmin,
	}
}

// UpdateCompanyUserRequest perfil + intención de rol dentro de una empresa.
// CompanyAdmin=true promueve (o ajusta emailReceiver); false degrada (o ajusta active).
type UpdateCompanyUserRequest struct {
	Email         *string `json:"email" validate:"omitempty,email,max=100"`
	FirstName     *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName      *string `json:"lastName" validate:"omitempty,min=1,max=50"`
	Password      *string `json:"password" validate:"omitempty,min=5,max=72"`
	CompanyAdmin  bool    `json:"companyAdmin"`
	EmailReceiver *bool   `json:"emailReceiver"`
	Active        *bool   `json:"active"`
}

// ResetPasswordRequest el email debe coincidir con el registrado.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// UserResponse salida de un usuario (sin password). Los campos de empresa se omiten
// según la forma: super admin sin empresa, admin de empresa o usuario de empresa.
type UserResponse struct {
	ID               string  `json:"id"`
	Email            *string `json:"email"`
	FirstName        string  `json:"firstName"`
	LastName         string  `json:"lastName"`
	SuperAdmin       bool    `json:"superAdmin"`
	AdminCompanyCode *string `json:"adminCompanyCode,omitempty"`
	UserCompanyCode  *string `json:"userCompanyCode,omitempty"`
	EmailReceiver    *bool   `json:"emailReceiver,omitempty"`
	Active           *bool   `json:"active,omitempty"`
}

// UserListResponse usuarios de una empresa.
type UserListResponse struct {
	Users []UserResponse `json:"users"`
}

// UserUpdateResponse incluye un token nuevo cuando el usuario se edita a sí mismo.
type UserUpdateResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token,omitempty"`
}

// ToUserResponse normaliza el perfil a una de las tres formas.
func ToUserResponse(p *entity.UserProfile) *UserResponse {
	if p == nil {
		return nil
	}
	out := &UserResponse{
		ID:         p.User.ID,
		FirstName:  p.User.FirstName,
		LastName:   p.User.LastName,
		SuperAdmin: p.User.SuperAdmin,
	}
	if p.User.Email != "" {
		email := p.User.Email
		out.Email = &email
	}
	m := p.Membership
	switch m.Role {
	case entity.RoleAdmin:
		code, recv, active := m.CompanyCode, m.EmailReceiver, true
		out.AdminCompanyCode = &code
		out.UserCompanyCode = &code
		out.EmailReceiver = &recv
		out.Active = &active
	case entity.RoleMember:
		code, active := m.CompanyCode, m.Active
		out.UserCompanyCode = &code
		out.Active = &active
	}
	return out
}
