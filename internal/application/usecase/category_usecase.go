package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

// DefaultCategories el juego inicial que se crea al registrar un usuario.
var DefaultCategories = []entity.Category{
	{Name: "Bebidas", Color: "#3B82F6"},
	{Name: "Golosinas", Color: "#EC4899"},
	{Name: "Snacks", Color: "#F59E0B"},
	{Name: "Cigarrillos", Color: "#6B7280"},
	{Name: "Almacén", Color: "#10B981"},
	{Name: "Otros", Color: "#8B5CF6"},
}

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. El nombre es único por usuario.
func (uc *CategoryUseCase) Create(userID string, in dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	exists, err := uc.repo.NameExists(userID, in.Nombre, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	if in.Color == "" {
		in.Color = "#6B7280"
	}
	now := time.Now()
	category := &entity.Category{
		ID:          uuid.New().String(),
		UserID:      userID,
		Name:        in.Nombre,
		Description: in.Descripcion,
		Color:       in.Color,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoriaResponse(category, 0), nil
}

// GetByID obtiene una categoría del usuario.
func (uc *CategoryUseCase) GetByID(userID, id string) (*dto.CategoriaResponse, error) {
	category, err := uc.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoriaResponse(category, 0), nil
}

// Update actualiza una categoría del usuario.
func (uc *CategoryUseCase) Update(userID, id string, in dto.EditarCategoriaRequest) (*dto.CategoriaResponse, error) {
	category, err := uc.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil && *in.Nombre != category.Name {
		exists, err := uc.repo.NameExists(userID, *in.Nombre, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		category.Name = *in.Nombre
	}
	if in.Descripcion != nil {
		category.Description = *in.Descripcion
	}
	if in.Color != nil {
		category.Color = *in.Color
	}
	if in.Activo != nil {
		category.Active = *in.Activo
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoriaResponse(category, 0), nil
}

// List lista las categorías del usuario con el conteo de productos activos.
func (uc *CategoryUseCase) List(userID string) ([]dto.CategoriaResponse, error) {
	items, err := uc.repo.ListWithCounts(userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoriaResponse, 0, len(items))
	for i := range items {
		out = append(out, *toCategoriaResponse(&items[i].Category, items[i].ProductCount))
	}
	return out, nil
}

// Delete desactiva una categoría. Los productos quedan sin reasignar.
func (uc *CategoryUseCase) Delete(userID, id string) error {
	category, err := uc.repo.GetByID(id, userID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id, userID)
}

// SeedDefaults crea las categorías por defecto para un usuario nuevo.
func (uc *CategoryUseCase) SeedDefaults(userID string) error {
	return SeedDefaultCategories(uc.repo, userID)
}

// SeedDefaultCategories inserta el juego por defecto usando el repositorio
// dado, que puede estar ligado a la transacción del registro.
func SeedDefaultCategories(repo repository.CategoryRepository, userID string) error {
	now := time.Now()
	for _, c := range DefaultCategories {
		cat := c
		cat.ID = uuid.New().String()
		cat.UserID = userID
		cat.Active = true
		cat.CreatedAt = now
		cat.UpdatedAt = now
		if err := repo.Create(&cat); err != nil {
			return err
		}
	}
	return nil
}

func toCategoriaResponse(c *entity.Category, count int) *dto.CategoriaResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoriaResponse{
		ID:             c.ID,
		Nombre:         c.Name,
		Descripcion:    c.Description,
		Color:          c.Color,
		Activo:         c.Active,
		TotalProductos: count,
		CreatedAt:      c.CreatedAt,
	}
}
