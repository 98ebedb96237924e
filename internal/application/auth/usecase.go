package auth

import (
	"context"

	"github.com/jhoicas/CashCount-api/internal/application/dto"
	"github.com/jhoicas/CashCount-api/internal/application/ports"
	"github.com/jhoicas/CashCount-api/internal/domain"
	"github.com/jhoicas/CashCount-api/internal/domain/entity"
	"github.com/jhoicas/CashCount-api/internal/domain/repository"
	"github.com/jhoicas/CashCount-api/pkg/jwt"
)

// TokenIssuer firma la identidad de un usuario.
type TokenIssuer interface {
	Issue(id jwt.Identity) (string, error)
}

// AuthUseCase caso de uso de autenticación.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher ports.PasswordHasher
	tokens TokenIssuer
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, hasher ports.PasswordHasher, tokens TokenIssuer) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: tokens}
}

// Login verifica id/password y devuelve token + usuario. Usuario inexistente, sin
// credencial o con password incorrecto responden igual (ErrUnauthorized).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.users.GetProfile(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.User.HasCredential() {
		return nil, domain.ErrUnauthorized
	}
	if !uc.hasher.Compare(profile.User.PasswordHash, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	return uc.Refresh(profile)
}

// Refresh emite un token nuevo para el perfil dado (login o auto-edición).
func (uc *AuthUseCase) Refresh(profile *entity.UserProfile) (*dto.LoginResponse, error) {
	token, err := uc.tokens.Issue(IdentityOf(profile))
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *dto.ToUserResponse(profile)}, nil
}
