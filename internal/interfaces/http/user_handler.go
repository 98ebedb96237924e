package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/usecase"
)

// UserHandler maneja login, alta y edición de usuarios.
type UserHandler struct {
	auth  *auth.AuthUseCase
	users *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(a *auth.AuthUseCase, u *usecase.UserUseCase) *UserHandler {
	return &UserHandler{auth: a, users: u}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "id, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.auth.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateAdmin godoc
// @Summary      Crear usuario sin empresa (super admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateUserRequest  true  "Usuario; email y password obligatorios"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/createAdmin [post]
func (h *UserHandler) CreateAdmin(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.users.CreateUser(c.UserContext(), in, "")
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateInCompany godoc
// @Summary      Crear usuario o administrador de empresa
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        companyCode  path  string                 true  "Código de empresa"
// @Param        body         body  dto.CreateUserRequest  true  "Usuario + companyAdmin/emailReceiver/active"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/create/{companyCode} [post]
func (h *UserHandler) CreateInCompany(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	in.SuperAdmin = false
	out, err := h.users.CreateUser(c.UserContext(), in, c.Params("companyCode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateProfile godoc
// @Summary      Editar perfil (super admin); devuelve token nuevo si se edita a sí mismo
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                    true  "ID de usuario"
// @Param        body  body  dto.UpdateProfileRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.UserUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id} [patch]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.users.UpdateProfile(c.UserContext(), GetUserID(c), c.Params("id"), in.ToEntity())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateCompanyUser godoc
// @Summary      Editar usuario de empresa y su rol
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id           path  string                        true  "ID de usuario"
// @Param        companyCode  path  string                        true  "Código de empresa"
// @Param        body         body  dto.UpdateCompanyUserRequest  true  "Perfil + companyAdmin/emailReceiver/active"
// @Success      200   {object}  dto.UserUpdateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/company/{companyCode} [patch]
func (h *UserHandler) UpdateCompanyUser(c *fiber.Ctx) error {
	var in dto.UpdateCompanyUserRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.users.UpdateCompanyUser(c.UserContext(), GetIdentity(c), c.Params("id"), c.Params("companyCode"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ResetPassword godoc
// @Summary      Restablecer contraseña (se envía por correo)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de usuario"
// @Param        body  body  dto.ResetPasswordRequest  true  "Email registrado"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/reset_password [patch]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	if err := h.users.ResetPassword(c.UserContext(), c.Params("id"), in.Email); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "se envió una nueva contraseña al email registrado"})
}

// Get godoc
// @Summary      Obtener usuario
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        companyCode  path  string  true  "Código de empresa"
// @Param        id           path  string  true  "ID de usuario"
// @Success      200   {object}  dto.UserResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{companyCode}/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	scope := c.Params("companyCode")
	if caller := GetIdentity(c); caller != nil && (caller.SuperAdmin || caller.ID == id) {
		scope = ""
	}
	out, err := h.users.GetUser(c.UserContext(), id, scope)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar usuarios de una empresa
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        companyCode  path  string  true  "Código de empresa"
// @Success      200   {object}  dto.UserListResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{companyCode} [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.users.ListUsers(c.UserContext(), c.Params("companyCode"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
