package entity

import "fmt"

// Role es el estado de la relación usuario↔empresa. Sustituye la inferencia por
// "qué fila existe" (company_admins vs company_users) por una unión etiquetada explícita.
type Role int

const (
	RoleNone Role = iota
	RoleMember
	RoleAdmin
)

func (r Role) String() string {
	switch r {
	case RoleNone:
		return "none"
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Membership vincula un usuario con una empresa como miembro o como administrador.
// Active solo aplica a RoleMember; EmailReceiver solo a RoleAdmin.
type Membership struct {
	UserID        string
	CompanyCode   string
	Role          Role
	Active        bool
	EmailReceiver bool
}

// NewMember construye una membresía de usuario de empresa.
func NewMember(userID, companyCode string, active bool) Membership {
	return Membership{UserID: userID, CompanyCode: companyCode, Role: RoleMember, Active: active}
}

// NewAdmin construye una membresía de administrador de empresa.
func NewAdmin(userID, companyCode string, emailReceiver bool) Membership {
	return Membership{UserID: userID, CompanyCode: companyCode, Role: RoleAdmin, EmailReceiver: emailReceiver}
}

// IsAdmin indica si es administrador de la empresa.
func (m Membership) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// IsActive: los administradores están implícitamente activos.
func (m Membership) IsActive() bool {
	switch m.Role {
	case RoleAdmin:
		return true
	case RoleMember:
		return m.Active
	}
	return false
}

// BelongsTo indica si la membresía es de la empresa dada.
func (m Membership) BelongsTo(companyCode string) bool {
	return m.Role != RoleNone && m.CompanyCode == companyCode
}

// Validate verifica que la membresía sea coherente.
func (m Membership) Validate() error {
	if m.Role == RoleNone {
		return nil
	}
	if m.UserID == "" || m.CompanyCode == "" {
		return fmt.Errorf("membresía incompleta: user=%q company=%q", m.UserID, m.CompanyCode)
	}
	if m.Role != RoleMember && m.Role != RoleAdmin {
		return fmt.Errorf("rol desconocido: %s", m.Role)
	}
	return nil
}

// CanTransition aplica la máquina de estados None/Member/Admin.
// Ninguna transición lleva de vuelta a None: quitar la membresía no es una transición de rol.
func CanTransition(from, to Role) bool {
	if to == RoleNone {
		return false
	}
	switch from {
	case RoleNone, RoleMember, RoleAdmin:
		return true
	}
	return false
}
