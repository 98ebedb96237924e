package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/CashCount-api/pkg/jwt"
)

type fakeAlerts struct {
	mu       sync.Mutex
	variance []dto.VarianceAlert
	resets   map[string]string
}

func (f *fakeAlerts) PublishVarianceAlert(a dto.VarianceAlert) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.variance = append(f.variance, a)
}

func (f *fakeAlerts) PublishPasswordReset(u entity.User, plain string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.resets == nil {
		f.resets = map[string]string{}
	}
	f.resets[u.ID] = plain
}

type fixture struct {
	db     *memory.DB
	hasher *auth.BcryptHasher
	tokens *pkgjwt.Service
	alerts *fakeAlerts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := pkgjwt.NewService("test-secret-key-for-unit-tests", "cashcount-test", 0)
	require.NoError(t, err)
	f := &fixture{db: memory.New(), hasher: auth.NewBcryptHasher(4), tokens: tokens, alerts: &fakeAlerts{}}
	require.NoError(t, f.db.Store().Companies.Create(context.Background(), &entity.Company{Code: "testco"}))
	require.NoError(t, f.db.Store().Companies.Create(context.Background(), &entity.Company{Code: "otherco"}))
	return f
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }
