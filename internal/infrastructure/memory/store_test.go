package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/memory"
)

func seed(t *testing.T, db *memory.DB) repository.Store {
	t.Helper()
	ctx := context.Background()
	s := db.Store()
	require.NoError(t, s.Companies.Create(ctx, &entity.Company{Code: "A"}))
	require.NoError(t, s.Users.Create(ctx, &entity.User{ID: "bob", Email: "bob@test.com", FirstName: "Bob", LastName: "Testy"}))
	return s
}

func TestRun_RollbackOnError(t *testing.T) {
	db := memory.New()
	s := seed(t, db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := db.Run(ctx, func(tx repository.Store) error {
		require.NoError(t, tx.Users.Create(ctx, &entity.User{ID: "ana", FirstName: "Ana", LastName: "X"}))
		require.NoError(t, tx.Memberships.Put(ctx, entity.NewMember("ana", "A", true)))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	u, err := s.Users.GetByID(ctx, "ana")
	require.NoError(t, err)
	assert.Nil(t, u, "el usuario no debe quedar sin su membresía")
}

func TestMembershipPut_ReplacesVariant(t *testing.T) {
	db := memory.New()
	s := seed(t, db)
	ctx := context.Background()

	require.NoError(t, s.Memberships.Put(ctx, entity.NewMember("bob", "A", true)))
	require.NoError(t, s.Memberships.Put(ctx, entity.NewAdmin("bob", "A", true)))

	m, err := s.Memberships.Get(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, m.Role)

	list, err := s.Users.ListByCompany(ctx, "A")
	require.NoError(t, err)
	assert.Len(t, list, 1, "una sola fila por usuario")

	recv, err := s.Memberships.ListEmailReceivers(ctx, "A")
	require.NoError(t, err)
	require.Len(t, recv, 1)
	assert.Equal(t, "bob", recv[0].ID)
}

func TestForeignKeysAndUniqueness(t *testing.T) {
	db := memory.New()
	s := seed(t, db)
	ctx := context.Background()

	assert.ErrorIs(t, s.Memberships.Put(ctx, entity.NewMember("bob", "ZZ", true)), domain.ErrNotFound)
	assert.ErrorIs(t, s.Containers.Create(ctx, &entity.Container{CompanyCode: "ZZ", Name: "x"}), domain.ErrNotFound)
	assert.ErrorIs(t, s.Users.Create(ctx, &entity.User{ID: "bob"}), domain.ErrConflict)
	assert.ErrorIs(t, s.Users.Create(ctx, &entity.User{ID: "otro", Email: "BOB@test.com"}), domain.ErrConflict)
	assert.ErrorIs(t, s.Companies.Create(ctx, &entity.Company{Code: "A"}), domain.ErrConflict)
}

func TestCounts_WindowAndOrder(t *testing.T) {
	db := memory.New()
	s := seed(t, db)
	ctx := context.Background()

	c := &entity.Container{CompanyCode: "A", Name: "Caja 1", Target: decimal.NewFromInt(500)}
	require.NoError(t, s.Containers.Create(ctx, c))

	for _, ts := range []int64{100, 300, 200, 300} {
		require.NoError(t, s.Counts.Create(ctx, &entity.Count{ContainerID: c.ID, Cash: decimal.NewFromInt(1), Time: "t", Timestamp: ts, UserID: "bob"}))
	}

	list, err := s.Counts.ListByContainer(ctx, c.ID, entity.CountWindow{Start: 150, End: 300})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(300), list[0].Timestamp)
	assert.Greater(t, list[0].ID, list[1].ID, "empate en timestamp: el más nuevo primero")
	assert.Equal(t, int64(200), list[2].Timestamp)
	assert.Equal(t, "Bob", list[0].FirstName)
}
