package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/stock-kiosco/internal/application/auth"
	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/application/usecase"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
	pkgjwt "github.com/tu-usuario/stock-kiosco/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// El txRunner falso respeta la semántica transaccional del registro: si fn
// falla se restaura el estado previo, así el test de rollback puede verificar
// que no queda un usuario sin sus categorías.
// ──────────────────────────────────────────────────────────────────────────────

type authStore struct {
	users      map[string]*entity.User // por email en minúsculas
	categories []*entity.Category

	failCategoryCreate bool
}

func newAuthStore() *authStore {
	return &authStore{users: map[string]*entity.User{}}
}

type fakeUserRepo struct{ store *authStore }

func (r *fakeUserRepo) Create(u *entity.User) error {
	key := strings.ToLower(u.Email)
	if _, ok := r.store.users[key]; ok {
		return domain.ErrEmailAlreadyExists
	}
	cp := *u
	r.store.users[key] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*entity.User, error) {
	u, ok := r.store.users[strings.ToLower(email)]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	for _, u := range r.store.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeCategoryRepo struct{ store *authStore }

func (r *fakeCategoryRepo) Create(c *entity.Category) error {
	if r.store.failCategoryCreate {
		return errors.New("fallo simulado en categorías")
	}
	cp := *c
	r.store.categories = append(r.store.categories, &cp)
	return nil
}

func (r *fakeCategoryRepo) GetByID(id, userID string) (*entity.Category, error) { return nil, nil }
func (r *fakeCategoryRepo) Update(c *entity.Category) error                     { return nil }
func (r *fakeCategoryRepo) Deactivate(id, userID string) error                  { return nil }
func (r *fakeCategoryRepo) ListWithCounts(userID string) ([]repository.CategoryWithCount, error) {
	return nil, nil
}
func (r *fakeCategoryRepo) NameExists(userID, name, excludeID string) (bool, error) {
	return false, nil
}

type fakeAuthTxRunner struct{ store *authStore }

func (r *fakeAuthTxRunner) Run(ctx context.Context, fn func(users repository.UserRepository, categories repository.CategoryRepository) error) error {
	// snapshot para simular rollback
	prevUsers := map[string]*entity.User{}
	for k, v := range r.store.users {
		cp := *v
		prevUsers[k] = &cp
	}
	prevCats := append([]*entity.Category(nil), r.store.categories...)

	err := fn(&fakeUserRepo{store: r.store}, &fakeCategoryRepo{store: r.store})
	if err != nil {
		r.store.users = prevUsers
		r.store.categories = prevCats
		return err
	}
	return nil
}

const (
	authTestSecret = "secreto-de-test-para-auth"
	authTestIssuer = "stock-kiosco-test"
)

func newAuthUseCase(store *authStore) *auth.UseCase {
	return auth.NewUseCase(&fakeAuthTxRunner{store: store}, &fakeUserRepo{store: store}, auth.JWTConfig{
		Secret:     authTestSecret,
		ExpMinutes: 60,
		Issuer:     authTestIssuer,
	})
}

func registroValido() dto.RegistroRequest {
	return dto.RegistroRequest{
		Nombre:   "Marta",
		Email:    "marta@kiosco.com",
		Password: "secreta123",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioYCategoriasPorDefecto(t *testing.T) {
	store := newAuthStore()
	uc := newAuthUseCase(store)

	resp, err := uc.Register(context.Background(), registroValido())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.Token, "el registro debe devolver un token de sesión")
	assert.Equal(t, "Marta", resp.Usuario.Nombre)
	assert.Equal(t, entity.RoleUsuario, resp.Usuario.Rol, "sin rol explícito cae a usuario")

	// El token debe ser parseable con el mismo secret
	userID, email, role, err := pkgjwt.Parse(authTestSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.Usuario.ID, userID)
	assert.Equal(t, "marta@kiosco.com", email)
	assert.Equal(t, entity.RoleUsuario, role)

	// Categorías por defecto sembradas para el usuario nuevo
	require.Len(t, store.categories, len(usecase.DefaultCategories), "deben sembrarse todas las categorías por defecto")
	for _, c := range store.categories {
		assert.Equal(t, resp.Usuario.ID, c.UserID)
	}

	// El password nunca se guarda en plano
	u, err := (&fakeUserRepo{store: store}).FindByEmail("marta@kiosco.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.NotEqual(t, "secreta123", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secreta123")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	store := newAuthStore()
	uc := newAuthUseCase(store)

	_, err := uc.Register(context.Background(), registroValido())
	require.NoError(t, err)

	_, err = uc.Register(context.Background(), registroValido())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolDesconocidoCaeAUsuario(t *testing.T) {
	store := newAuthStore()
	uc := newAuthUseCase(store)

	in := registroValido()
	in.Rol = "superadmin"
	resp, err := uc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUsuario, resp.Usuario.Rol)

	in2 := registroValido()
	in2.Email = "admin@kiosco.com"
	in2.Rol = entity.RoleAdmin
	resp2, err := uc.Register(context.Background(), in2)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp2.Usuario.Rol, "admin sí es un rol válido")
}

func TestRegister_RollbackSiFallanLasCategorias(t *testing.T) {
	store := newAuthStore()
	store.failCategoryCreate = true
	uc := newAuthUseCase(store)

	_, err := uc.Register(context.Background(), registroValido())
	require.Error(t, err)

	// La transacción revierte: no queda un usuario a medio inicializar
	u, err := (&fakeUserRepo{store: store}).FindByEmail("marta@kiosco.com")
	require.NoError(t, err)
	assert.Nil(t, u, "el usuario no debe quedar persistido si fallan las categorías")
	assert.Empty(t, store.categories)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	store := newAuthStore()
	uc := newAuthUseCase(store)
	_, err := uc.Register(context.Background(), registroValido())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "marta@kiosco.com", Password: "secreta123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "marta@kiosco.com", resp.Usuario.Email)
}

func TestLogin_PasswordIncorrecto(t *testing.T) {
	store := newAuthStore()
	uc := newAuthUseCase(store)
	_, err := uc.Register(context.Background(), registroValido())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "marta@kiosco.com", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Email inexistente y password incorrecto devuelven el mismo error, para no
// revelar qué emails están registrados.
func TestLogin_EmailInexistenteMismoError(t *testing.T) {
	store := newAuthStore()
	uc := newAuthUseCase(store)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@kiosco.com", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Me
// ──────────────────────────────────────────────────────────────────────────────

func TestMe_DevuelvePerfil(t *testing.T) {
	store := newAuthStore()
	uc := newAuthUseCase(store)
	resp, err := uc.Register(context.Background(), registroValido())
	require.NoError(t, err)

	me, err := uc.Me(resp.Usuario.ID)
	require.NoError(t, err)
	assert.Equal(t, "Marta", me.Nombre)
	assert.Equal(t, "marta@kiosco.com", me.Email)
}

func TestMe_UsuarioInexistente(t *testing.T) {
	store := newAuthStore()
	uc := newAuthUseCase(store)

	_, err := uc.Me("no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
