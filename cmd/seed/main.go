// seed crea el super admin inicial y, opcionalmente, carga empresas y usuarios desde un CSV
// exportado de una planilla (UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/seed -id root -email root@empresa.com -password secreto [-csv usuarios.csv] [-latin1]
// Columnas del CSV: companyCode,id,firstName,lastName,email,password,role (role = admin|member).
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/CashCount-api/internal/application/auth"
	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/usecase"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/infrastructure/postgres"
	"github.com/jhoicas/CashCount-api/pkg/config"
	"github.com/jhoicas/CashCount-api/pkg/logger"
)

func main() {
	var (
		id       = flag.String("id", "", "id del super admin")
		email    = flag.String("email", "", "email del super admin")
		password = flag.String("password", "", "password del super admin")
		first    = flag.String("first", "Super", "nombre")
		last     = flag.String("last", "Admin", "apellido")
		csvPath  = flag.String("csv", "", "CSV opcional con empresas y usuarios")
		latin1   = flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	store := postgres.NewStore(pool)
	users := usecase.NewUserUseCase(postgres.NewTxRunner(pool), store.Users, auth.NewBcryptHasher(cfg.Auth.BcryptCost), nil, nil)
	companies := usecase.NewCompanyUseCase(store.Companies, store.Containers)

	if *id != "" {
		_, err := users.CreateUser(ctx, dto.CreateUserRequest{
			ID: *id, Email: *email, Password: *password, FirstName: *first, LastName: *last, SuperAdmin: true,
		}, "")
		switch {
		case errors.Is(err, domain.ErrConflict):
			log.Info().Str("id", *id).Msg("super admin ya existe")
		case err != nil:
			log.Fatal().Err(err).Msg("crear super admin")
		default:
			log.Info().Str("id", *id).Msg("super admin creado")
		}
	}

	if *csvPath == "" {
		return
	}
	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	var r io.Reader = f
	if *latin1 {
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	var created, skipped int
	for i, row := range rows {
		if len(row) < 7 {
			log.Warn().Int("line", i+1).Msg("fila incompleta, se omite")
			skipped++
			continue
		}
		if i == 0 && strings.EqualFold(strings.TrimSpace(row[0]), "companyCode") {
			continue
		}
		code := strings.TrimSpace(row[0])
		if _, err := companies.Create(ctx, dto.CreateCompanyRequest{CompanyCode: code}); err != nil && !errors.Is(err, domain.ErrConflict) {
			log.Fatal().Err(err).Str("company", code).Msg("crear empresa")
		}
		in := dto.CreateUserRequest{
			ID:           strings.TrimSpace(row[1]),
			FirstName:    strings.TrimSpace(row[2]),
			LastName:     strings.TrimSpace(row[3]),
			Email:        strings.TrimSpace(row[4]),
			Password:     row[5],
			CompanyAdmin: strings.EqualFold(strings.TrimSpace(row[6]), "admin"),
		}
		in.EmailReceiver = in.CompanyAdmin
		if _, err := users.CreateUser(ctx, in, code); err != nil {
			log.Warn().Err(err).Int("line", i+1).Str("id", in.ID).Msg("usuario omitido")
			skipped++
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("carga finalizada")
}
