package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/application/usecase"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
	"github.com/tu-usuario/stock-kiosco/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta fn dentro de una transacción, con los repositorios
// ligados a ella. El registro crea usuario y categorías por defecto juntos:
// si una inserción falla no queda un usuario a medio inicializar.
type TxRunner interface {
	Run(ctx context.Context, fn func(users repository.UserRepository, categories repository.CategoryRepository) error) error
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	tx       TxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(tx TxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig) *UseCase {
	return &UseCase{tx: tx, userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea la cuenta: hashea el password con bcrypt, persiste el usuario
// junto con sus categorías por defecto y devuelve el token de sesión.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *UseCase) Register(ctx context.Context, in dto.RegistroRequest) (*dto.AuthResponse, error) {
	existing, err := uc.userRepo.FindByEmail(in.Email)
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
	role := in.Rol
	if role != entity.RoleAdmin {
		role = entity.RoleUsuario
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.tx.Run(ctx, func(users repository.UserRepository, categories repository.CategoryRepository) error {
		if err := users.Create(user); err != nil {
			return err
		}
		return usecase.SeedDefaultCategories(categories, user.ID)
	})
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, Usuario: *toUsuarioResponse(user)}, nil
}

// Login verifica email/password y devuelve token + usuario.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// misma respuesta que password incorrecto, no revela si el email existe
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{Token: token, Usuario: *toUsuarioResponse(user)}, nil
}

// Me devuelve el perfil del usuario autenticado.
func (uc *UseCase) Me(userID string) (*dto.UsuarioResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUsuarioResponse(user), nil
}

func toUsuarioResponse(u *entity.User) *dto.UsuarioResponse {
	if u == nil {
		return nil
	}
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Nombre:    u.Name,
		Email:     u.Email,
		Rol:       u.Role,
		CreatedAt: u.CreatedAt,
	}
}
