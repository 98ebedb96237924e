package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/ledger"
	"github.com/jhoicas/CashCount-api/internal/application/notification"
	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/application/usecase"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/mail"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/memory"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/migration"
	infrapdf "github.com/jhoicas/CashCount-api/internal/infrastructure/pdf"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/CashCount-api/internal/interfaces/http"
	"github.com/jhoicas/CashCount-api/pkg/config"
	"github.com/jhoicas/CashCount-api/pkg/jwt"
	"github.com/jhoicas/CashCount-api/pkg/logger"
	"github.com/jhoicas/CashCount-api/pkg/money"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		store repository.Store
		tx    ports.TxRunner
	)
	switch cfg.DB.Driver {
	case config.DriverMemory:
		// Solo demo: los datos se pierden al reiniciar.
		db := memory.New()
		store, tx = db.Store(), db
		log.Warn().Msg("usando almacenamiento en memoria")
	default:
		if cfg.Migrations.OnStart {
			runMigrations(cfg, log)
		}
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		store, tx = postgres.NewStore(pool), postgres.NewTxRunner(pool)
	}

	tokens, err := jwt.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		log.Fatal().Err(err).Msg("servicio de tokens")
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	formatter := money.Default()

	// Avisos: SMTP si hay host configurado; si no, solo se registran en el log.
	var notifier ports.Notifier = mail.NewLogNotifier(log)
	if cfg.SMTP.Enabled() {
		notifier = mail.NewSMTPNotifier(cfg.SMTP, formatter)
	}
	dispatcher := notification.NewDispatcher(log, notification.Options{
		Workers:   cfg.Notify.Workers,
		QueueSize: cfg.Notify.QueueSize,
	})
	dispatcher.Start()
	publisher := notification.NewPublisher(dispatcher, notifier, store.Memberships, log)

	authUC := auth.NewAuthUseCase(store.Users, hasher, tokens)
	userUC := usecase.NewUserUseCase(tx, store.Users, hasher, tokens, publisher)
	companyUC := usecase.NewCompanyUseCase(store.Companies, store.Containers)
	containerUC := usecase.NewContainerUseCase(tx, store.Companies, store.Containers)
	countUC := ledger.NewCountUseCase(tx, store.Containers, store.Counts, publisher,
		infrapdf.NewMarotoPDFGenerator(formatter), log)

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "CashCount API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		CompanyUC:   companyUC,
		ContainerUC: containerUC,
		CountUC:     countUC,
		Tokens:      tokens,
		Logger:      log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// Después del servidor: ya no entran conteos nuevos, se vacía la cola de avisos.
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("avisos pendientes sin enviar")
	}
	stats := dispatcher.Stats()
	log.Info().
		Int64("processed", stats.Processed).
		Int64("failed", stats.Failed).
		Int64("dropped", stats.Dropped).
		Msg("aplicación detenida")
}

func runMigrations(cfg *config.Config, log *logger.Logger) {
	mg, err := migration.New(cfg.DB.ConnectionString(), cfg.Migrations.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("migrador")
	}
	defer mg.Close()
	if err := mg.Up(); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}
}
