package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/ledger"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
)

// CountHandler alta y consulta de conteos.
type CountHandler struct {
	uc *ledger.CountUseCase
}

// NewCountHandler construye el handler.
func NewCountHandler(uc *ledger.CountUseCase) *CountHandler {
	return &CountHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar conteo (evalúa varianza y avisa a los administradores)
// @Tags         counts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        containerId  path  int                     true  "ID del contenedor"
// @Param        body         body  dto.CreateCountRequest  true  "Conteo"
// @Success      201  {object}  dto.CountResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/containers/{containerId}/count [post]
func (h *CountHandler) Create(c *fiber.Ctx) error {
	id, err := paramInt64(c, "containerId")
	if err != nil {
		return err
	}
	var in dto.CreateCountRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Submit(c.UserContext(), GetIdentity(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar conteos en un rango de timestamps (ms)
// @Tags         counts
// @Produce      json
// @Security     BearerAuth
// @Param        containerId  path   int  true   "ID del contenedor"
// @Param        startTime    query  int  false  "Desde (inclusive)"
// @Param        endTime      query  int  false  "Hasta (inclusive)"
// @Success      200  {object}  dto.CountListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/containers/{containerId}/counts [get]
func (h *CountHandler) List(c *fiber.Ctx) error {
	id, w, err := countQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), GetIdentity(c), id, w)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Report godoc
// @Summary      Reporte PDF de conteos
// @Tags         counts
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        containerId  path   int  true   "ID del contenedor"
// @Param        startTime    query  int  false  "Desde (inclusive)"
// @Param        endTime      query  int  false  "Hasta (inclusive)"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/containers/{containerId}/counts/report [get]
func (h *CountHandler) Report(c *fiber.Ctx) error {
	id, w, err := countQuery(c)
	if err != nil {
		return err
	}
	pdf, err := h.uc.Report(c.UserContext(), GetIdentity(c), id, w)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="conteos-%d.pdf"`, id))
	return c.Send(pdf)
}

func countQuery(c *fiber.Ctx) (int64, entity.CountWindow, error) {
	id, err := paramInt64(c, "containerId")
	if err != nil {
		return 0, entity.CountWindow{}, err
	}
	start, err := queryInt64(c, "startTime")
	if err != nil {
		return 0, entity.CountWindow{}, err
	}
	end, err := queryInt64(c, "endTime")
	if err != nil {
		return 0, entity.CountWindow{}, err
	}
	w, err := ledger.Window(start, end)
	if err != nil {
		return 0, entity.CountWindow{}, &requestError{resp: dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}}
	}
	return id, w, nil
}
