package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a 400/401/404/409 con errors.Is.
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrNoData       = errors.New("no hay datos para actualizar")
	ErrUnauthorized = errors.New("no autorizado")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("usuario no encontrado")
	ErrConflict     = errors.New("conflicto con un recurso existente")
	ErrDependency   = errors.New("dependencia no disponible")
)

// IsNotFound agrupa los errores de "no existe".
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrUserNotFound)
}

// IsValidation agrupa los errores corregibles por el cliente.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrNoData)
}
