package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/usecase"
)

// ContainerHandler maneja las peticiones HTTP para contenedores.
type ContainerHandler struct {
	uc *usecase.ContainerUseCase
}

// NewContainerHandler construye el handler.
func NewContainerHandler(uc *usecase.ContainerUseCase) *ContainerHandler {
	return &ContainerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear contenedor
// @Tags         containers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyCode  path  string                      true  "Código de empresa"
// @Param        body         body  dto.CreateContainerRequest  true  "Nombre, objetivo y umbrales"
// @Success      201  {object}  dto.ContainerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/containers/{companyCode}/new [post]
func (h *ContainerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContainerRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), c.Params("companyCode"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar contenedores de una empresa
// @Tags         containers
// @Produce      json
// @Security     BearerAuth
// @Param        companyCode  path  string  true  "Código de empresa"
// @Success      200  {object}  dto.ContainerListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/containers/{companyCode}/all [get]
func (h *ContainerHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetIdentity(c), c.Params("companyCode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener contenedor
// @Tags         containers
// @Produce      json
// @Security     BearerAuth
// @Param        containerId  path  int  true  "ID del contenedor"
// @Success      200  {object}  dto.ContainerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/containers/{containerId} [get]
func (h *ContainerHandler) Get(c *fiber.Ctx) error {
	id, err := paramInt64(c, "containerId")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), GetIdentity(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar contenedor
// @Tags         containers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        containerId  path  int                         true  "ID del contenedor"
// @Param        companyCode  path  string                      true  "Empresa dueña"
// @Param        body         body  dto.UpdateContainerRequest  true  "Campos a modificar"
// @Success      200  {object}  dto.ContainerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/containers/{containerId}/company/{companyCode} [patch]
func (h *ContainerHandler) Update(c *fiber.Ctx) error {
	id, err := paramInt64(c, "containerId")
	if err != nil {
		return err
	}
	var in dto.UpdateContainerRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, c.Params("companyCode"), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
