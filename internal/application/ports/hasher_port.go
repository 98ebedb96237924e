package ports

// PasswordHasher hashea y verifica credenciales.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}
