// migrate aplica o revierte el esquema de migrations/ contra la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|steps N|version]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/CashCount-api/internal/infrastructure/migration"
	"github.com/jhoicas/CashCount-api/pkg/config"
	"github.com/jhoicas/CashCount-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	mg, err := migration.New(cfg.DB.ConnectionString(), cfg.Migrations.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("migrador")
	}
	defer mg.Close()

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		err = mg.Down()
	case "steps":
		if len(os.Args) < 3 {
			log.Fatal().Msg("uso: migrate steps N")
		}
		n, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("N debe ser un entero")
		}
		err = mg.Steps(n)
	case "version":
		v, dirty, verr := mg.Version()
		if verr != nil {
			log.Fatal().Err(verr).Msg("versión")
		}
		log.Info().Uint("version", v).Bool("dirty", dirty).Msg("estado del esquema")
		return
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido (up|down|steps|version)")
	}
	if err != nil {
		log.Fatal().Err(err).Msg(cmd)
	}
}
