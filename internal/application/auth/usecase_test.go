package auth_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/CashCount-api/pkg/jwt"
)

func newLoginFixture(t *testing.T) (*auth.AuthUseCase, *pkgjwt.Service) {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	s := db.Store()
	hasher := auth.NewBcryptHasher(4)

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)
	require.NoError(t, s.Companies.Create(ctx, &entity.Company{Code: "testco"}))
	require.NoError(t, s.Users.Create(ctx, &entity.User{ID: "barb", Email: "barb@test.com", PasswordHash: hash, FirstName: "Barb", LastName: "Tasty"}))
	require.NoError(t, s.Memberships.Put(ctx, entity.NewAdmin("barb", "testco", true)))
	require.NoError(t, s.Users.Create(ctx, &entity.User{ID: "bob", FirstName: "Bob", LastName: "Testy"}))
	require.NoError(t, s.Memberships.Put(ctx, entity.NewMember("bob", "testco", true)))

	tokens, err := pkgjwt.NewService("test-secret-key-for-unit-tests", "cashcount-test", 0)
	require.NoError(t, err)
	return auth.NewAuthUseCase(s.Users, hasher, tokens), tokens
}

func TestLogin_IssuesTokenWithMembership(t *testing.T) {
	uc, tokens := newLoginFixture(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{ID: "barb", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "testco", *out.User.AdminCompanyCode)

	id, ok := tokens.Verify(out.Token)
	require.True(t, ok, "el token emitido debe verificar")
	assert.Equal(t, "barb", id.ID)
	assert.Equal(t, "testco", id.AdminCompanyCode)
	assert.True(t, id.EmailReceiver)
	assert.True(t, id.Active)
}

func TestLogin_FailuresLookAlike(t *testing.T) {
	uc, _ := newLoginFixture(t)
	ctx := context.Background()

	cases := []dto.LoginRequest{
		{ID: "barb", Password: "incorrecta"},
		{ID: "ghost", Password: "secret123"},
		{ID: "bob", Password: "cualquiera"},
	}
	for _, in := range cases {
		_, err := uc.Login(ctx, in)
		assert.ErrorIs(t, err, domain.ErrUnauthorized, "login de %s", in.ID)
	}
}

func TestBcryptHasher(t *testing.T) {
	h := auth.NewBcryptHasher(4)
	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$04$"))
	assert.True(t, h.Compare(hash, "secret123"))
	assert.False(t, h.Compare(hash, "otra"))
	assert.False(t, h.Compare("", "secret123"), "sin hash no hay credencial")
}

func TestGeneratePassword(t *testing.T) {
	a, err := auth.GeneratePassword(auth.ResetPasswordLength)
	require.NoError(t, err)
	b, err := auth.GeneratePassword(auth.ResetPasswordLength)
	require.NoError(t, err)
	assert.Len(t, a, 10)
	assert.NotEqual(t, a, b)
}

func TestScope(t *testing.T) {
	admin := &pkgjwt.Identity{ID: "barb", AdminCompanyCode: "testco", UserCompanyCode: "testco"}
	member := &pkgjwt.Identity{ID: "bob", UserCompanyCode: "testco"}
	root := &pkgjwt.Identity{ID: "root", SuperAdmin: true}

	assert.True(t, auth.CanAccessCompany(member, "testco"))
	assert.False(t, auth.CanAccessCompany(member, "otherco"))
	assert.False(t, auth.CanAccessCompany(nil, "testco"))
	assert.True(t, auth.CanAccessCompany(root, "otherco"))

	assert.True(t, auth.IsCompanyAdmin(admin, "testco"))
	assert.False(t, auth.IsCompanyAdmin(member, "testco"))
	assert.False(t, auth.IsCompanyAdmin(admin, ""), "sin empresa no hay admin")
	assert.True(t, auth.IsCompanyAdmin(root, "otherco"))
}
