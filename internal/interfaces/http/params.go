package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
)

func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	n, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || n <= 0 {
		return 0, &requestError{resp: dto.ErrorResponse{Code: "VALIDATION", Message: name + " inválido"}}
	}
	return n, nil
}

func queryInt64(c *fiber.Ctx, name string) (int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &requestError{resp: dto.ErrorResponse{Code: "VALIDATION", Message: name + " debe ser un timestamp numérico"}}
	}
	return n, nil
}
