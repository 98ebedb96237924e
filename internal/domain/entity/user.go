package entity

// User representa una persona registrada. Email y PasswordHash son opcionales:
// un usuario sin credencial existe para registrar conteos pero no puede iniciar sesión.
type User struct {
	ID           string
	Email        string // "" = sin email (NULL en DB)
	PasswordHash string // bcrypt; "" = sin credencial
	FirstName    string
	LastName     string
	SuperAdmin   bool
}

// HasCredential indica si el usuario puede autenticarse.
func (u *User) HasCredential() bool {
	return u.PasswordHash != ""
}

// DisplayName nombre para mostrar en notificaciones y reportes.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserProfile es la vista resuelta de un usuario con su (única) membresía.
type UserProfile struct {
	User       User
	Membership Membership // Role == RoleNone si no pertenece a ninguna empresa
}

// ProfileUpdate actualización parcial de la lista blanca de campos del perfil.
// nil = no modificar. Password llega en claro y se hashea en el caso de uso.
type ProfileUpdate struct {
	Email      *string
	FirstName  *string
	LastName   *string
	Password   *string
	SuperAdmin *bool
}

// IsEmpty indica si no se pidió ningún cambio.
func (p ProfileUpdate) IsEmpty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.Password == nil && p.SuperAdmin == nil
}
