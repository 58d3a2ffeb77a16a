package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor. El nombre es único por usuario.
func (uc *SupplierUseCase) Create(userID string, in dto.CrearProveedorRequest) (*dto.ProveedorResponse, error) {
	exists, err := uc.repo.NameExists(userID, in.Nombre, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      in.Nombre,
		Contact:   in.Contacto,
		Phone:     in.Telefono,
		Email:     in.Email,
		Address:   in.Direccion,
		Notes:     in.Notas,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toProveedorResponse(supplier), nil
}

// GetByID obtiene un proveedor del usuario.
func (uc *SupplierUseCase) GetByID(userID, id string) (*dto.ProveedorResponse, error) {
	supplier, err := uc.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toProveedorResponse(supplier), nil
}

// Update actualiza un proveedor del usuario.
func (uc *SupplierUseCase) Update(userID, id string, in dto.EditarProveedorRequest) (*dto.ProveedorResponse, error) {
	supplier, err := uc.repo.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil && *in.Nombre != supplier.Name {
		exists, err := uc.repo.NameExists(userID, *in.Nombre, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
		supplier.Name = *in.Nombre
	}
	if in.Contacto != nil {
		supplier.Contact = *in.Contacto
	}
	if in.Telefono != nil {
		supplier.Phone = *in.Telefono
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Direccion != nil {
		supplier.Address = *in.Direccion
	}
	if in.Notas != nil {
		supplier.Notes = *in.Notas
	}
	if in.Activo != nil {
		supplier.Active = *in.Activo
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toProveedorResponse(supplier), nil
}

// List lista los proveedores del usuario.
func (uc *SupplierUseCase) List(userID string, includeInactive bool) ([]dto.ProveedorResponse, error) {
	items, err := uc.repo.List(userID, includeInactive)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProveedorResponse, 0, len(items))
	for _, s := range items {
		out = append(out, *toProveedorResponse(s))
	}
	return out, nil
}

// Delete desactiva un proveedor. Los movimientos que lo referencian quedan.
func (uc *SupplierUseCase) Delete(userID, id string) error {
	supplier, err := uc.repo.GetByID(id, userID)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Deactivate(id, userID)
}

func toProveedorResponse(s *entity.Supplier) *dto.ProveedorResponse {
	if s == nil {
		return nil
	}
	return &dto.ProveedorResponse{
		ID:        s.ID,
		Nombre:    s.Name,
		Contacto:  s.Contact,
		Telefono:  s.Phone,
		Email:     s.Email,
		Direccion: s.Address,
		Notas:     s.Notes,
		Activo:    s.Active,
		CreatedAt: s.CreatedAt,
	}
}
