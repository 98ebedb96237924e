package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Reportar los campos con su nombre JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// requestError error 400 con el cuerpo ya armado; lo escribe ErrorHandler.
type requestError struct {
	resp dto.ErrorResponse
}

func (e *requestError) Error() string { return e.resp.Message }

// bind parsea el cuerpo JSON y lo valida con las etiquetas `validate`.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return &requestError{resp: dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}}
	}
	if err := validate.Struct(out); err != nil {
		resp := dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				resp.Details = append(resp.Details, fieldMessage(fe))
			}
		}
		return &requestError{resp: resp}
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s es obligatorio", fe.Field())
	case "email":
		return fmt.Sprintf("%s debe ser un email válido", fe.Field())
	case "min", "max":
		return fmt.Sprintf("%s: longitud fuera de rango (%s=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s no cumple %s", fe.Field(), fe.Tag())
}
