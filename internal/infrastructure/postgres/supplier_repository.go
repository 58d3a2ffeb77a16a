package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, usuario_id, nombre, contacto, telefono, email, direccion, notas, activo, created_at, updated_at`

// Create persiste un proveedor.
func (r *SupplierRepo) Create(s *entity.Supplier) error {
	query := `
		INSERT INTO proveedores (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.UserID, s.Name, s.Contact, s.Phone, s.Email, s.Address, s.Notes, s.Active, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor del usuario, o nil si no existe.
func (r *SupplierRepo) GetByID(id, userID string) (*entity.Supplier, error) {
	return r.get(`SELECT `+supplierColumns+` FROM proveedores WHERE id = $1 AND usuario_id = $2`, id, userID)
}

// GetActive obtiene el proveedor solo si está activo y es del usuario; nil si no.
func (r *SupplierRepo) GetActive(id, userID string) (*entity.Supplier, error) {
	return r.get(`SELECT `+supplierColumns+` FROM proveedores WHERE id = $1 AND usuario_id = $2 AND activo`, id, userID)
}

func (r *SupplierRepo) get(query, id, userID string) (*entity.Supplier, error) {
	var s entity.Supplier
	err := r.q.QueryRow(context.Background(), query, id, userID).Scan(
		&s.ID, &s.UserID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Address, &s.Notes, &s.Active, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &s, nil
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	query := `
		UPDATE proveedores SET nombre = $2, contacto = $3, telefono = $4, email = $5, direccion = $6, notas = $7,
			activo = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Name, s.Contact, s.Phone, s.Email, s.Address, s.Notes, s.Active, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// Deactivate desactiva un proveedor sin borrarlo: los movimientos de entrada
// lo siguen referenciando como histórico.
func (r *SupplierRepo) Deactivate(id, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE proveedores SET activo = false, updated_at = now() WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("deactivate proveedor: %w", err)
	}
	return nil
}

// List lista los proveedores del usuario, activos primero.
func (r *SupplierRepo) List(userID string, includeInactive bool) ([]*entity.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM proveedores WHERE usuario_id = $1`
	if !includeInactive {
		query += ` AND activo`
	}
	query += ` ORDER BY activo DESC, nombre ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Name, &s.Contact, &s.Phone, &s.Email, &s.Address, &s.Notes, &s.Active, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// NameExists verifica duplicados de nombre dentro del usuario.
func (r *SupplierRepo) NameExists(userID, name, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM proveedores
			WHERE usuario_id = $1 AND LOWER(nombre) = LOWER($2) AND ($3 = '' OR id <> $3)
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, userID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check nombre proveedor: %w", err)
	}
	return exists, nil
}
