package auth

import (
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/pkg/jwt"
)

// IdentityOf construye la instantánea que se firma en el token.
func IdentityOf(p *entity.UserProfile) jwt.Identity {
	id := jwt.Identity{
		ID:         p.User.ID,
		Email:      p.User.Email,
		FirstName:  p.User.FirstName,
		LastName:   p.User.LastName,
		SuperAdmin: p.User.SuperAdmin,
	}
	m := p.Membership
	switch m.Role {
	case entity.RoleAdmin:
		id.AdminCompanyCode = m.CompanyCode
		id.UserCompanyCode = m.CompanyCode
		id.EmailReceiver = m.EmailReceiver
		id.Active = true
	case entity.RoleMember:
		id.UserCompanyCode = m.CompanyCode
		id.Active = m.Active
	}
	return id
}
