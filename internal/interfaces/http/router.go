package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/ledger"
	"github.com/jhoicas/CashCount-api/internal/application/usecase"
	"github.com/jhoicas/CashCount-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	CompanyUC   *usecase.CompanyUseCase
	ContainerUC *usecase.ContainerUseCase
	CountUC     *ledger.CountUseCase
	Tokens      TokenVerifier
	Logger      *logger.Logger
}

// Router registra las rutas de la API bajo /api.
// Authenticate corre en todas las rutas; cada ruta declara su predicado de acceso.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", RequestID(), AccessLog(log), Authenticate(deps.Tokens))

	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC)
	users := api.Group("/users")
	users.Post("/login", userHandler.Login)
	users.Post("/createAdmin", RequireSuperAdmin(), userHandler.CreateAdmin)
	users.Post("/create/:companyCode", RequireAdmin("companyCode"), userHandler.CreateInCompany)
	users.Patch("/:id/company/:companyCode", RequireAdmin("companyCode"), userHandler.UpdateCompanyUser)
	users.Patch("/:id/reset_password", userHandler.ResetPassword)
	users.Patch("/:id", RequireSuperAdmin(), userHandler.UpdateProfile)
	users.Get("/:companyCode/:id", RequireCorrectUserOrAdmin("companyCode", "id"), userHandler.Get)
	users.Get("/:companyCode", RequireAdmin("companyCode"), userHandler.List)

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := api.Group("/companies")
	companies.Post("/new", RequireSuperAdmin(), companyHandler.Create)
	companies.Get("/:companyCode", RequireAdmin("companyCode"), companyHandler.Get)

	containerHandler := NewContainerHandler(deps.ContainerUC)
	countHandler := NewCountHandler(deps.CountUC)
	containers := api.Group("/containers")
	containers.Post("/:companyCode/new", RequireAdmin("companyCode"), containerHandler.Create)
	containers.Get("/:companyCode/all", RequireLoggedIn(), containerHandler.List)
	containers.Patch("/:containerId/company/:companyCode", RequireAdmin("companyCode"), containerHandler.Update)
	containers.Post("/:containerId/count", RequireLoggedIn(), countHandler.Create)
	containers.Get("/:containerId/counts/report", RequireLoggedIn(), countHandler.Report)
	containers.Get("/:containerId/counts", RequireLoggedIn(), countHandler.List)
	containers.Get("/:containerId", RequireLoggedIn(), containerHandler.Get)
}

// NewApp construye la app Fiber con el manejo de errores JSON y recuperación de panics.
func NewApp(name string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ErrorHandler: ErrorHandler,
		// Los parámetros de ruta terminan guardados en el store en memoria.
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	return app
}
