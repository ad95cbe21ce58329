package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jmorales/ventaspro-api/internal/application/dto"
	"github.com/jmorales/ventaspro-api/internal/domain"
	"github.com/jmorales/ventaspro-api/internal/domain/entity"
	pkgjwt "github.com/jmorales/ventaspro-api/pkg/jwt"
)

// UserRepository puerto de persistencia de cuentas.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registro e inicio de sesión. Una identidad presente mueve la
// sesión al backend remoto; sin identidad la app sigue en modo invitado.
type AuthUseCase struct {
	users UserRepository
	jwt   JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(users UserRepository, jwt JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwt: jwt}
}

// Register crea la cuenta y devuelve el token. El primer rol es admin; las
// cuentas de vendedor se derivan bajando el rol en la sesión.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
		CreatedAt:    time.Now(),
	}
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return uc.issue(user)
}

// Login valida credenciales y devuelve el token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.issue(user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*dto.AuthResponse, error) {
	token, err := pkgjwt.Generate(uc.jwt.Secret, user.ID, user.Role, uc.jwt.Issuer, uc.jwt.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, Role: user.Role}, nil
}
