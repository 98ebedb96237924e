package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/pkg/jwt"
)

// LocalIdentity clave de c.Locals con la identidad verificada del token.
const LocalIdentity = "identity"

// TokenVerifier recupera la identidad de un token; false = anónimo.
type TokenVerifier interface {
	Verify(token string) (*jwt.Identity, bool)
}

// Authenticate decodifica el token (Authorization: Bearer <token> o el token solo) y guarda la
// identidad en c.Locals. Un token ausente o inválido no corta la petición: queda anónima y
// deciden los Require*.
func Authenticate(tokens TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return c.Next()
		}
		if parts := strings.SplitN(raw, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			raw = strings.TrimSpace(parts[1])
		}
		if id, ok := tokens.Verify(raw); ok {
			c.Locals(LocalIdentity, id)
		}
		return c.Next()
	}
}

// GetIdentity devuelve la identidad del contexto o nil si la petición es anónima.
func GetIdentity(c *fiber.Ctx) *jwt.Identity {
	id, _ := c.Locals(LocalIdentity).(*jwt.Identity)
	return id
}

// GetUserID devuelve el id del usuario autenticado ("" si anónimo).
func GetUserID(c *fiber.Ctx) string {
	if id := GetIdentity(c); id != nil {
		return id.ID
	}
	return ""
}

// Predicados puros sobre la identidad; los middlewares Require* los envuelven.

// IsLoggedIn hay identidad.
func IsLoggedIn(id *jwt.Identity) bool { return id != nil }

// IsAdmin super admin o admin de la empresa.
func IsAdmin(id *jwt.Identity, companyCode string) bool { return auth.IsCompanyAdmin(id, companyCode) }

// IsCorrectUserOrAdmin IsAdmin o es el mismo usuario.
func IsCorrectUserOrAdmin(id *jwt.Identity, companyCode, userID string) bool {
	return IsAdmin(id, companyCode) || (id != nil && userID != "" && id.ID == userID)
}

// IsSuperAdmin super admin de la plataforma.
func IsSuperAdmin(id *jwt.Identity) bool { return id != nil && id.SuperAdmin }

func gate(allow func(c *fiber.Ctx) bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !allow(c) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "no autorizado"})
		}
		return c.Next()
	}
}

// RequireLoggedIn exige cualquier identidad válida.
func RequireLoggedIn() fiber.Handler {
	return gate(func(c *fiber.Ctx) bool { return IsLoggedIn(GetIdentity(c)) })
}

// RequireAdmin exige super admin o admin de la empresa indicada en el parámetro de ruta.
func RequireAdmin(companyParam string) fiber.Handler {
	return gate(func(c *fiber.Ctx) bool { return IsAdmin(GetIdentity(c), c.Params(companyParam)) })
}

// RequireCorrectUserOrAdmin exige ser admin de la empresa o el propio usuario.
func RequireCorrectUserOrAdmin(companyParam, userParam string) fiber.Handler {
	return gate(func(c *fiber.Ctx) bool {
		return IsCorrectUserOrAdmin(GetIdentity(c), c.Params(companyParam), c.Params(userParam))
	})
}

// RequireSuperAdmin exige super admin.
func RequireSuperAdmin() fiber.Handler {
	return gate(func(c *fiber.Ctx) bool { return IsSuperAdmin(GetIdentity(c)) })
}
