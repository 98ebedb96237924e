package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

func TestCanTransition(t *testing.T) {
	roles := []entity.Role{entity.RoleNone, entity.RoleMember, entity.RoleAdmin}
	for _, from := range roles {
		assert.False(t, entity.CanTransition(from, entity.RoleNone), "%s → none no es una transición", from)
		assert.True(t, entity.CanTransition(from, entity.RoleMember), "%s → member", from)
		assert.True(t, entity.CanTransition(from, entity.RoleAdmin), "%s → admin", from)
	}
	assert.False(t, entity.CanTransition(entity.Role(9), entity.RoleAdmin))
}

func TestMembership_IsActive(t *testing.T) {
	assert.True(t, entity.NewAdmin("u", "co", false).IsActive(), "admin siempre activo")
	assert.True(t, entity.NewMember("u", "co", true).IsActive())
	assert.False(t, entity.NewMember("u", "co", false).IsActive())
	assert.False(t, entity.Membership{}.IsActive())
}

func TestMembership_BelongsTo(t *testing.T) {
	m := entity.NewMember("u", "A", true)
	assert.True(t, m.BelongsTo("A"))
	assert.False(t, m.BelongsTo("B"))
	assert.False(t, entity.Membership{CompanyCode: "A"}.BelongsTo("A"), "sin rol no pertenece")
}

func TestMembership_Validate(t *testing.T) {
	assert.NoError(t, entity.Membership{}.Validate())
	assert.NoError(t, entity.NewAdmin("u", "co", true).Validate())
	assert.Error(t, entity.NewMember("", "co", true).Validate())
	assert.Error(t, entity.Membership{UserID: "u", CompanyCode: "co", Role: entity.Role(7)}.Validate())
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "none", entity.RoleNone.String())
	assert.Equal(t, "member", entity.RoleMember.String())
	assert.Equal(t, "admin", entity.RoleAdmin.String())
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Bob Testy", (&entity.User{FirstName: "Bob", LastName: "Testy"}).DisplayName())
	assert.Equal(t, "Bob", (&entity.User{FirstName: "Bob"}).DisplayName())
	assert.Equal(t, "Testy", (&entity.User{LastName: "Testy"}).DisplayName())
}
