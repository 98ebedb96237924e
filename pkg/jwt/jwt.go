package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity es la instantánea de usuario + rol que viaja dentro del token.
// El middleware de autorización decide con estos datos sin consultar la DB.
type Identity struct {
	ID               string `json:"id"`
	Email            string `json:"email,omitempty"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	SuperAdmin       bool   `json:"superAdmin"`
	AdminCompanyCode string `json:"adminCompanyCode,omitempty"`
	UserCompanyCode  string `json:"userCompanyCode,omitempty"`
	EmailReceiver    bool   `json:"emailReceiver,omitempty"`
	Active           bool   `json:"active"`
}

// Claims incluye los claims estándar JWT más la identidad de la aplicación.
type Claims struct {
	jwt.RegisteredClaims
	User Identity `json:"cashCountUser"`
}

// ErrEmptySecret se devuelve al construir el servicio sin secreto.
var ErrEmptySecret = errors.New("jwt: secret vacío")

// Service firma y verifica tokens HS256 con un secreto inyectado en construcción.
type Service struct {
	secret     []byte
	issuer     string
	expMinutes int
	now        func() time.Time
}

// NewService construye el servicio de tokens. expMinutes <= 0 emite tokens sin vencimiento.
func NewService(secret, issuer string, expMinutes int) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Service{secret: []byte(secret), issuer: issuer, expMinutes: expMinutes, now: time.Now}, nil
}

// Issue serializa la identidad completa y la firma.
func (s *Service) Issue(id Identity) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   s.issuer,
			Subject:  id.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		User: id,
	}
	if s.expMinutes > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(time.Duration(s.expMinutes) * time.Minute))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma (y vencimiento si existe) y devuelve la identidad embebida.
func (s *Service) Parse(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.User.ID == "" {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &claims.User, nil
}

// Verify es la variante tolerante de Parse: un token inválido equivale a "sin identidad".
func (s *Service) Verify(tokenString string) (*Identity, bool) {
	id, err := s.Parse(tokenString)
	if err != nil {
		return nil, false
	}
	return id, true
}
