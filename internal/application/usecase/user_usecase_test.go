package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/usecase"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

func newUserUC(f *fixture) *usecase.UserUseCase {
	return usecase.NewUserUseCase(f.db, f.db.Store().Users, f.hasher, f.tokens, f.alerts)
}

func adminReq(id string) dto.CreateUserRequest {
	return dto.CreateUserRequest{
		ID: id, Email: id + "@test.com", Password: "secret123",
		FirstName: "Barb", LastName: "Tasty", CompanyAdmin: true, EmailReceiver: true,
	}
}

func memberReq(id string) dto.CreateUserRequest {
	return dto.CreateUserRequest{ID: id, FirstName: "Bob", LastName: "Testy"}
}

func TestCreateUser_AdminShape(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)

	out, err := uc.CreateUser(context.Background(), adminReq("barb"), "testco")
	require.NoError(t, err)
	require.NotNil(t, out.AdminCompanyCode)
	assert.Equal(t, "testco", *out.AdminCompanyCode)
	assert.Equal(t, "testco", *out.UserCompanyCode)
	assert.True(t, *out.EmailReceiver)
	assert.True(t, *out.Active, "un admin siempre figura activo")

	got, err := uc.GetUser(context.Background(), "barb", "testco")
	require.NoError(t, err)
	assert.Equal(t, out, got, "lo creado y lo leído deben tener la misma forma")
}

func TestCreateUser_MemberWithoutCredential(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)

	out, err := uc.CreateUser(context.Background(), memberReq("bob"), "testco")
	require.NoError(t, err)
	assert.Nil(t, out.Email)
	assert.Nil(t, out.AdminCompanyCode)
	assert.Equal(t, "testco", *out.UserCompanyCode)
	assert.True(t, *out.Active, "active por defecto es true")

	u, err := f.db.Store().Users.GetByID(context.Background(), "bob")
	require.NoError(t, err)
	assert.False(t, u.HasCredential())
}

func TestCreateUser_SuperAdminRequiresCredential(t *testing.T) {
	uc := newUserUC(newFixture(t))

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{ID: "root", FirstName: "R", LastName: "T"}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := adminReq("root")
	in.CompanyAdmin = false
	in.SuperAdmin = true
	out, err := uc.CreateUser(context.Background(), in, "")
	require.NoError(t, err)
	assert.True(t, out.SuperAdmin)
	assert.Nil(t, out.UserCompanyCode)
	assert.Nil(t, out.Active)
}

func TestCreateUser_AdminRequiresEmail(t *testing.T) {
	uc := newUserUC(newFixture(t))
	in := adminReq("barb")
	in.Email = ""
	_, err := uc.CreateUser(context.Background(), in, "testco")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUser_DuplicateAndUnknownCompany(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, memberReq("bob"), "testco")
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, memberReq("bob"), "testco")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.CreateUser(ctx, memberReq("ana"), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	u, err := f.db.Store().Users.GetByID(ctx, "ana")
	require.NoError(t, err)
	assert.Nil(t, u, "el alta fallida no debe dejar al usuario sin membresía")
}

func TestGetUser_OtherCompanyIsNotFound(t *testing.T) {
	uc := newUserUC(newFixture(t))
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, memberReq("bob"), "testco")
	require.NoError(t, err)

	_, err = uc.GetUser(ctx, "bob", "otherco")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = uc.GetUser(ctx, "ghost", "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	uc := newUserUC(newFixture(t))
	ctx := context.Background()

	_, err := uc.ListUsers(ctx, "testco")
	assert.ErrorIs(t, err, domain.ErrNotFound, "empresa sin usuarios")

	_, err = uc.CreateUser(ctx, adminReq("barb"), "testco")
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, memberReq("bob"), "testco")
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, memberReq("zed"), "otherco")
	require.NoError(t, err)

	out, err := uc.ListUsers(ctx, "testco")
	require.NoError(t, err)
	require.Len(t, out.Users, 2)
	ids := []string{out.Users[0].ID, out.Users[1].ID}
	assert.ElementsMatch(t, []string{"barb", "bob"}, ids)
}

func TestPromoteDemote_KeepsSingleMembership(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()

	in := memberReq("bob")
	in.Email = "bob@test.com"
	in.Password = "secret123"
	_, err := uc.CreateUser(ctx, in, "testco")
	require.NoError(t, err)

	out, err := uc.PromoteToAdmin(ctx, "bob", "testco", true)
	require.NoError(t, err)
	assert.Equal(t, "testco", *out.AdminCompanyCode)

	m, err := f.db.Store().Memberships.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, m.Role)

	out, err = uc.DemoteToUser(ctx, "bob", "testco", false)
	require.NoError(t, err)
	assert.Nil(t, out.AdminCompanyCode)
	assert.False(t, *out.Active)

	list, err := f.db.Store().Users.ListByCompany(ctx, "testco")
	require.NoError(t, err)
	assert.Len(t, list, 1, "promover y degradar no debe duplicar filas")
}

func TestPromote_RequiresCredential(t *testing.T) {
	uc := newUserUC(newFixture(t))
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, memberReq("bob"), "testco")
	require.NoError(t, err)

	_, err = uc.PromoteToAdmin(ctx, "bob", "testco", false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPromote_ForeignCompanyIsUserNotFound(t *testing.T) {
	uc := newUserUC(newFixture(t))
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, adminReq("barb"), "testco")
	require.NoError(t, err)

	_, err = uc.PromoteToAdmin(ctx, "barb", "otherco", true)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile_SelfGetsFreshToken(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()
	in := adminReq("root")
	in.CompanyAdmin = false
	in.SuperAdmin = true
	_, err := uc.CreateUser(ctx, in, "")
	require.NoError(t, err)

	out, err := uc.UpdateProfile(ctx, "root", "root", entity.ProfileUpdate{FirstName: strPtr("Rooty")})
	require.NoError(t, err)
	assert.Equal(t, "Rooty", out.User.FirstName)
	require.NotEmpty(t, out.Token)

	id, ok := f.tokens.Verify(out.Token)
	require.True(t, ok)
	assert.Equal(t, "Rooty", id.FirstName)

	out, err = uc.UpdateProfile(ctx, "someone-else", "root", entity.ProfileUpdate{LastName: strPtr("T")})
	require.NoError(t, err)
	assert.Empty(t, out.Token)
}

func TestUpdateProfile_EmptyAndUnknown(t *testing.T) {
	uc := newUserUC(newFixture(t))
	ctx := context.Background()

	_, err := uc.UpdateProfile(ctx, "", "bob", entity.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrNoData)
	_, err = uc.UpdateProfile(ctx, "", "ghost", entity.ProfileUpdate{FirstName: strPtr("x")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUpdateProfile_PasswordIsRehashed(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, adminReq("barb"), "testco")
	require.NoError(t, err)

	_, err = uc.UpdateProfile(ctx, "", "barb", entity.ProfileUpdate{Password: strPtr("nueva-clave")})
	require.NoError(t, err)

	u, err := f.db.Store().Users.GetByID(ctx, "barb")
	require.NoError(t, err)
	assert.NotEqual(t, "nueva-clave", u.PasswordHash)
	assert.True(t, f.hasher.Compare(u.PasswordHash, "nueva-clave"))
}

func TestUpdateProfile_AdminCannotDropEmail(t *testing.T) {
	uc := newUserUC(newFixture(t))
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, adminReq("barb"), "testco")
	require.NoError(t, err)

	_, err = uc.UpdateProfile(ctx, "", "barb", entity.ProfileUpdate{Email: strPtr("")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateCompanyUser_DefaultsToPreviousFlags(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()
	in := memberReq("bob")
	in.Active = boolPtr(false)
	_, err := uc.CreateUser(ctx, in, "testco")
	require.NoError(t, err)

	out, err := uc.UpdateCompanyUser(ctx, testcoAdmin, "bob", "testco", dto.UpdateCompanyUserRequest{FirstName: strPtr("Robert")})
	require.NoError(t, err)
	assert.Equal(t, "Robert", out.User.FirstName)
	assert.False(t, *out.User.Active, "sin active se conserva el valor previo")

	out, err = uc.UpdateCompanyUser(ctx, testcoAdmin, "bob", "testco", dto.UpdateCompanyUserRequest{Active: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, *out.User.Active)
}

func TestUpdateCompanyUser_PromoteWithCredentialInSameCall(t *testing.T) {
	uc := newUserUC(newFixture(t))
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, memberReq("bob"), "testco")
	require.NoError(t, err)

	out, err := uc.UpdateCompanyUser(ctx, testcoAdmin, "bob", "testco", dto.UpdateCompanyUserRequest{
		Email:        strPtr("bob@test.com"),
		Password:     strPtr("secret123"),
		CompanyAdmin: true,
	})
	require.NoError(t, err)
	require.NotNil(t, out.User.AdminCompanyCode)
	assert.False(t, *out.User.EmailReceiver)
}

func TestUpdateCompanyUser_PromoteWithoutCredentialRollsBack(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, memberReq("bob"), "testco")
	require.NoError(t, err)

	_, err = uc.UpdateCompanyUser(ctx, testcoAdmin, "bob", "testco", dto.UpdateCompanyUserRequest{
		FirstName:    strPtr("Robert"),
		CompanyAdmin: true,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := f.db.Store().Users.GetByID(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.FirstName, "el cambio de perfil se revierte junto con el rol")
}

func TestUpdateCompanyUser_CompanyAdminCannotTouchSuperAdmin(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{
		ID: "root", Email: "root@test.com", Password: "rootpass", FirstName: "Root", LastName: "Admin", SuperAdmin: true,
	}, "")
	require.NoError(t, err)

	_, err = uc.UpdateCompanyUser(ctx, testcoAdmin, "root", "testco", dto.UpdateCompanyUserRequest{Password: strPtr("pwned123")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.UpdateCompanyUser(ctx, testcoAdmin, "root", "testco", dto.UpdateCompanyUserRequest{Active: boolPtr(true)})
	assert.ErrorIs(t, err, domain.ErrUserNotFound, "tampoco puede afiliarlo a su empresa")

	login := auth.NewAuthUseCase(f.db.Store().Users, f.hasher, f.tokens)
	_, err = login.Login(ctx, dto.LoginRequest{ID: "root", Password: "pwned123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = login.Login(ctx, dto.LoginRequest{ID: "root", Password: "rootpass"})
	assert.NoError(t, err, "la credencial original sigue vigente")

	p, err := f.db.Store().Users.GetProfile(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleNone, p.Membership.Role)
}

func TestUpdateCompanyUser_ProfileEditRequiresMembershipInCompany(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{
		ID: "loner", Email: "loner@test.com", Password: "secret123", FirstName: "Lo", LastName: "Ner",
	}, "")
	require.NoError(t, err)

	_, err = uc.UpdateCompanyUser(ctx, testcoAdmin, "loner", "testco", dto.UpdateCompanyUserRequest{Password: strPtr("pwned123")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	out, err := uc.UpdateCompanyUser(ctx, testcoAdmin, "loner", "testco", dto.UpdateCompanyUserRequest{})
	require.NoError(t, err, "sin cambios de perfil puede sumarlo como miembro")
	assert.Equal(t, "testco", *out.User.UserCompanyCode)
}

func TestUpdateCompanyUser_SuperAdminCallerMayEditAnyone(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{
		ID: "root", Email: "root@test.com", Password: "rootpass", FirstName: "Root", LastName: "Admin", SuperAdmin: true,
	}, "")
	require.NoError(t, err)

	out, err := uc.UpdateCompanyUser(ctx, superAdmin, "root", "testco", dto.UpdateCompanyUserRequest{FirstName: strPtr("Rooty")})
	require.NoError(t, err)
	assert.Equal(t, "Rooty", out.User.FirstName)
	assert.NotEmpty(t, out.Token, "editarse a sí mismo devuelve token nuevo")
}

func TestUpdateCompanyUser_AnonymousOrForeignCallerRejected(t *testing.T) {
	uc := newUserUC(newFixture(t))
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, memberReq("bob"), "testco")
	require.NoError(t, err)

	_, err = uc.UpdateCompanyUser(ctx, nil, "bob", "testco", dto.UpdateCompanyUserRequest{Active: boolPtr(false)})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.UpdateCompanyUser(ctx, otherMember, "bob", "testco", dto.UpdateCompanyUserRequest{Active: boolPtr(false)})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResetPassword(t *testing.T) {
	f := newFixture(t)
	uc := newUserUC(f)
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, adminReq("barb"), "testco")
	require.NoError(t, err)

	errUnknown := uc.ResetPassword(ctx, "ghost", "barb@test.com")
	errMismatch := uc.ResetPassword(ctx, "barb", "otro@test.com")
	assert.ErrorIs(t, errUnknown, domain.ErrInvalidInput)
	assert.Equal(t, errUnknown.Error(), errMismatch.Error(), "no se revela si el usuario existe")

	require.NoError(t, uc.ResetPassword(ctx, "barb", "BARB@test.com"))
	plain := f.alerts.resets["barb"]
	require.Len(t, plain, 10)

	u, err := f.db.Store().Users.GetByID(ctx, "barb")
	require.NoError(t, err)
	assert.True(t, f.hasher.Compare(u.PasswordHash, plain))
	assert.False(t, f.hasher.Compare(u.PasswordHash, "secret123"))
}
