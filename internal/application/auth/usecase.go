package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/editorial-api/internal/application/dto"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
	"github.com/jhoicas/editorial-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y cambio de
// contraseña autogestionado.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrUsernameTaken si el nombre de usuario ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.NewValidation("username", "usuario y contraseña son obligatorios")
	}
	role := in.Role
	if role == "" {
		role = entity.RoleOperator
	}
	if role != entity.RoleAdmin && role != entity.RoleOperator {
		return nil, domain.NewValidation("role", "el rol debe ser admin u operator")
	}
	existing, _ := uc.userRepo.FindByUsername(in.Username)
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &entity.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login verifica username/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.NewValidation("username", "usuario y contraseña son obligatorios")
	}
	user, err := uc.userRepo.FindByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// GetByID obtiene un usuario por id.
func (uc *AuthUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("usuario %d: %w", id, domain.ErrUserNotFound)
	}
	return toUserResponse(user), nil
}

// ChangePassword cambia la contraseña del propio usuario verificando la actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID int64, in dto.ChangePasswordRequest) error {
	if in.OldPassword == "" || in.NewPassword == "" {
		return domain.NewValidation("new_password", "la contraseña actual y la nueva son obligatorias")
	}
	if len(in.NewPassword) < 6 {
		return domain.NewValidation("new_password", "la contraseña nueva debe tener al menos 6 caracteres")
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("usuario %d: %w", userID, domain.ErrUserNotFound)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.OldPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return uc.userRepo.UpdatePassword(userID, string(hash))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(dto.DateTimeLayout),
	}
}
