package ports

import (
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// CountReportGenerator renderiza el historial de conteos de un contenedor (PDF).
type CountReportGenerator interface {
	GenerateCountReport(container *entity.Container, counts []*entity.Count, w entity.CountWindow) ([]byte, error)
}
