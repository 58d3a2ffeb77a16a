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

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoryRepo) Create(c *entity.Category) error {
	query := `
		INSERT INTO categorias (id, usuario_id, nombre, descripcion, color, activo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.UserID, c.Name, c.Description, c.Color, c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría del usuario, o nil si no existe.
func (r *CategoryRepo) GetByID(id, userID string) (*entity.Category, error) {
	query := `
		SELECT id, usuario_id, nombre, descripcion, color, activo, created_at, updated_at
		FROM categorias WHERE id = $1 AND usuario_id = $2`
	var c entity.Category
	err := r.q.QueryRow(context.Background(), query, id, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.Color, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// Update actualiza una categoría.
func (r *CategoryRepo) Update(c *entity.Category) error {
	query := `
		UPDATE categorias SET nombre = $2, descripcion = $3, color = $4, activo = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Description, c.Color, c.Active, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// Deactivate desactiva una categoría sin borrarla.
func (r *CategoryRepo) Deactivate(id, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categorias SET activo = false, updated_at = now() WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("deactivate categoria: %w", err)
	}
	return nil
}

// ListWithCounts lista las categorías del usuario con el conteo de productos vivos.
func (r *CategoryRepo) ListWithCounts(userID string) ([]repository.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.usuario_id, c.nombre, c.descripcion, c.color, c.activo, c.created_at, c.updated_at,
			COUNT(p.id) FILTER (WHERE NOT p.eliminado)
		FROM categorias c
		LEFT JOIN productos p ON p.categoria_id = c.id
		WHERE c.usuario_id = $1
		GROUP BY c.id
		ORDER BY c.nombre ASC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryWithCount
	for rows.Next() {
		var it repository.CategoryWithCount
		c := &it.Category
		if err := rows.Scan(
			&c.ID, &c.UserID, &c.Name, &c.Description, &c.Color, &c.Active, &c.CreatedAt, &c.UpdatedAt,
			&it.ProductCount,
		); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// NameExists verifica duplicados de nombre dentro del usuario.
func (r *CategoryRepo) NameExists(userID, name, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categorias
			WHERE usuario_id = $1 AND LOWER(nombre) = LOWER($2) AND ($3 = '' OR id <> $3)
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, userID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check nombre categoria: %w", err)
	}
	return exists, nil
}
