package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	apphttp "github.com/jhoicas/CashCount-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/CashCount-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "cashcount-test"
)

var (
	superAdmin = pkgjwt.Identity{ID: "root", Email: "root@test.com", FirstName: "Root", LastName: "Admin", SuperAdmin: true}
	barbAdmin  = pkgjwt.Identity{ID: "barb", Email: "barb@test.com", FirstName: "Barb", LastName: "Tasty", AdminCompanyCode: "testco", UserCompanyCode: "testco", EmailReceiver: true, Active: true}
	bobMember  = pkgjwt.Identity{ID: "bob", FirstName: "Bob", LastName: "Testy", UserCompanyCode: "testco", Active: true}
	zedOther   = pkgjwt.Identity{ID: "zed", FirstName: "Zed", LastName: "Other", UserCompanyCode: "otherco", Active: true}
)

func newTokens(t *testing.T) *pkgjwt.Service {
	t.Helper()
	svc, err := pkgjwt.NewService(testJWTSecret, testIssuer, 0)
	require.NoError(t, err)
	return svc
}

// tokenFor genera un JWT con la identidad indicada.
func tokenFor(t *testing.T, tokens *pkgjwt.Service, id pkgjwt.Identity) string {
	t.Helper()
	tok, err := tokens.Issue(id)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// buildGateApp monta las cuatro compuertas sobre un handler que responde 200.
func buildGateApp(tokens *pkgjwt.Service) *fiber.App {
	app := fiber.New()
	ok := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true, "user": apphttp.GetUserID(c)})
	}
	app.Use(apphttp.Authenticate(tokens))
	app.Get("/logged", apphttp.RequireLoggedIn(), ok)
	app.Get("/admin/:companyCode", apphttp.RequireAdmin("companyCode"), ok)
	app.Get("/user/:companyCode/:id", apphttp.RequireCorrectUserOrAdmin("companyCode", "id"), ok)
	app.Get("/super", apphttp.RequireSuperAdmin(), ok)
	return app
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de compuertas
// ──────────────────────────────────────────────────────────────────────────────

func TestGates_Matrix(t *testing.T) {
	tokens := newTokens(t)
	app := buildGateApp(tokens)

	cases := []struct {
		name string
		path string
		who  *pkgjwt.Identity
		want int
	}{
		{"anónimo no pasa LoggedIn", "/logged", nil, fiber.StatusUnauthorized},
		{"miembro pasa LoggedIn", "/logged", &bobMember, fiber.StatusOK},
		{"admin de su empresa", "/admin/testco", &barbAdmin, fiber.StatusOK},
		{"admin de otra empresa", "/admin/otherco", &barbAdmin, fiber.StatusUnauthorized},
		{"miembro no es admin", "/admin/testco", &bobMember, fiber.StatusUnauthorized},
		{"super admin es admin de todas", "/admin/otherco", &superAdmin, fiber.StatusOK},
		{"el propio usuario", "/user/testco/bob", &bobMember, fiber.StatusOK},
		{"otro usuario de la empresa", "/user/testco/barb", &bobMember, fiber.StatusUnauthorized},
		{"admin ve a su miembro", "/user/testco/bob", &barbAdmin, fiber.StatusOK},
		{"usuario de otra empresa", "/user/testco/bob", &zedOther, fiber.StatusUnauthorized},
		{"super admin", "/super", &superAdmin, fiber.StatusOK},
		{"admin de empresa no es super admin", "/super", &barbAdmin, fiber.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			header := ""
			if tc.who != nil {
				header = tokenFor(t, tokens, *tc.who)
			}
			resp := get(t, app, tc.path, header)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestAuthenticate_InvalidTokenIsAnonymous(t *testing.T) {
	app := buildGateApp(newTokens(t))

	resp := get(t, app, "/logged", "Bearer token.invalido.aqui")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "UNAUTHORIZED", out.Code)
}

func TestAuthenticate_TokenFromOtherSecret(t *testing.T) {
	app := buildGateApp(newTokens(t))
	other, err := pkgjwt.NewService("otro-secret-completamente-distinto", testIssuer, 0)
	require.NoError(t, err)

	resp := get(t, app, "/super", tokenFor(t, other, superAdmin))
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "un token firmado con otro secreto no otorga identidad")
}

func TestAuthenticate_RawTokenWithoutBearer(t *testing.T) {
	tokens := newTokens(t)
	app := buildGateApp(tokens)
	tok, err := tokens.Issue(bobMember)
	require.NoError(t, err)

	resp := get(t, app, "/logged", tok)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "bob", out["user"])
}

func TestPredicates_NilIdentity(t *testing.T) {
	assert.False(t, apphttp.IsLoggedIn(nil))
	assert.False(t, apphttp.IsAdmin(nil, "testco"))
	assert.False(t, apphttp.IsCorrectUserOrAdmin(nil, "testco", "bob"))
	assert.False(t, apphttp.IsSuperAdmin(nil))
	assert.False(t, apphttp.IsCorrectUserOrAdmin(&bobMember, "testco", ""), "id vacío nunca coincide")
}
