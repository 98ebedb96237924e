package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/CashCount-api/internal/infrastructure/migration"
)

func TestDriverURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/cash?sslmode=disable", migration.DriverURL("postgres://u:p@db:5432/cash?sslmode=disable"))
	assert.Equal(t, "pgx5://u@db/cash", migration.DriverURL("postgresql://u@db/cash"))
	assert.Equal(t, "pgx5://ya/listo", migration.DriverURL("pgx5://ya/listo"))
}
