package auth

import "github.com/jhoicas/CashCount-api/pkg/jwt"

// CanAccessCompany indica si la identidad puede operar sobre la empresa:
// super admin o cualquier membresía en ella.
func CanAccessCompany(id *jwt.Identity, companyCode string) bool {
	if id == nil {
		return false
	}
	if id.SuperAdmin {
		return true
	}
	return companyCode != "" && (id.AdminCompanyCode == companyCode || id.UserCompanyCode == companyCode)
}

// IsCompanyAdmin super admin o administrador de esa empresa.
func IsCompanyAdmin(id *jwt.Identity, companyCode string) bool {
	if id == nil {
		return false
	}
	return id.SuperAdmin || (companyCode != "" && id.AdminCompanyCode == companyCode)
}
