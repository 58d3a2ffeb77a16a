package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, usuario_id, COALESCE(categoria_id, ''), COALESCE(proveedor_id, ''), nombre, descripcion,
		codigo_barras, sku, stock_actual, stock_minimo, unidad_medida, precio_compra, precio_venta,
		fecha_vencimiento, lote, ubicacion, activo, eliminado, created_at, updated_at`

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(p *entity.Product) error {
	query := `
		INSERT INTO productos (id, usuario_id, categoria_id, proveedor_id, nombre, descripcion, codigo_barras, sku,
			stock_actual, stock_minimo, unidad_medida, precio_compra, precio_venta, fecha_vencimiento, lote, ubicacion,
			activo, eliminado, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.UserID, p.CategoryID, p.SupplierID, p.Name, p.Description, p.Barcode, p.SKU,
		p.CurrentStock, p.MinStock, p.UnitMeasure, p.PurchasePrice, p.SalePrice, p.ExpiryDate, p.Batch, p.Location,
		p.Active, p.Deleted, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene el producto vivo del usuario, o nil si no existe.
func (r *ProductRepo) GetByID(id, userID string) (*entity.Product, error) {
	return r.get(id, userID, "")
}

// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la
// transacción. Solo tiene sentido llamarlo con un Querier transaccional.
func (r *ProductRepo) GetForUpdate(id, userID string) (*entity.Product, error) {
	return r.get(id, userID, " FOR UPDATE")
}

func (r *ProductRepo) get(id, userID, suffix string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM productos WHERE id = $1 AND usuario_id = $2 AND NOT eliminado` + suffix
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id, userID).Scan(
		&p.ID, &p.UserID, &p.CategoryID, &p.SupplierID, &p.Name, &p.Description,
		&p.Barcode, &p.SKU, &p.CurrentStock, &p.MinStock, &p.UnitMeasure, &p.PurchasePrice, &p.SalePrice,
		&p.ExpiryDate, &p.Batch, &p.Location, &p.Active, &p.Deleted, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return &p, nil
}

// Update actualiza un producto. No toca stock_actual: eso es del ledger.
func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE productos SET categoria_id = NULLIF($2, ''), proveedor_id = NULLIF($3, ''), nombre = $4, descripcion = $5,
			codigo_barras = $6, sku = $7, stock_minimo = $8, unidad_medida = $9, precio_compra = $10, precio_venta = $11,
			fecha_vencimiento = $12, lote = $13, ubicacion = $14, activo = $15, updated_at = $16
		WHERE id = $1 AND NOT eliminado`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.CategoryID, p.SupplierID, p.Name, p.Description,
		p.Barcode, p.SKU, p.MinStock, p.UnitMeasure, p.PurchasePrice, p.SalePrice,
		p.ExpiryDate, p.Batch, p.Location, p.Active, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	return nil
}

// UpdateStock fija el stock del producto. Lo llama solo el ledger, dentro de
// la transacción que insertó el movimiento.
func (r *ProductRepo) UpdateStock(id string, stock int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET stock_actual = $2, updated_at = now() WHERE id = $1`,
		id, stock,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return nil
}

// UpdatePurchasePrice actualiza solo el precio de compra (lo usan las entradas).
func (r *ProductRepo) UpdatePurchasePrice(id string, price decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET precio_compra = $2, updated_at = now() WHERE id = $1`,
		id, price,
	)
	if err != nil {
		return fmt.Errorf("update precio compra: %w", err)
	}
	return nil
}

// SoftDelete marca el producto como eliminado. El historial de movimientos queda.
func (r *ProductRepo) SoftDelete(id, userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE productos SET eliminado = true, activo = false, updated_at = now() WHERE id = $1 AND usuario_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("soft delete producto: %w", err)
	}
	return nil
}

// List lista productos vivos del usuario con filtros, orden y paginación.
func (r *ProductRepo) List(userID string, f repository.ProductFilter, limit, offset int) ([]repository.ProductListItem, error) {
	where, args := listWhere(userID, f)
	query := `
		SELECT p.id, p.usuario_id, COALESCE(p.categoria_id, ''), COALESCE(p.proveedor_id, ''), p.nombre, p.descripcion,
			p.codigo_barras, p.sku, p.stock_actual, p.stock_minimo, p.unidad_medida, p.precio_compra, p.precio_venta,
			p.fecha_vencimiento, p.lote, p.ubicacion, p.activo, p.eliminado, p.created_at, p.updated_at,
			COALESCE(c.nombre, ''), COALESCE(c.color, ''), COALESCE(pr.nombre, '')
		FROM productos p
		LEFT JOIN categorias c ON c.id = p.categoria_id
		LEFT JOIN proveedores pr ON pr.id = p.proveedor_id
		` + where + orderClause(f.Order) + fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []repository.ProductListItem
	for rows.Next() {
		var it repository.ProductListItem
		p := &it.Product
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.CategoryID, &p.SupplierID, &p.Name, &p.Description,
			&p.Barcode, &p.SKU, &p.CurrentStock, &p.MinStock, &p.UnitMeasure, &p.PurchasePrice, &p.SalePrice,
			&p.ExpiryDate, &p.Batch, &p.Location, &p.Active, &p.Deleted, &p.CreatedAt, &p.UpdatedAt,
			&it.CategoryName, &it.CategoryColor, &it.SupplierName,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, it)
	}
	return list, rows.Err()
}

// Count cuenta los productos vivos que matchean el filtro.
func (r *ProductRepo) Count(userID string, f repository.ProductFilter) (int, error) {
	where, args := listWhere(userID, f)
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM productos p `+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count productos: %w", err)
	}
	return total, nil
}

// BarcodeExists verifica duplicados de código de barras dentro del usuario.
func (r *ProductRepo) BarcodeExists(userID, barcode, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM productos
			WHERE usuario_id = $1 AND codigo_barras = $2 AND NOT eliminado AND ($3 = '' OR id <> $3)
		)`
	var exists bool
	if err := r.q.QueryRow(context.Background(), query, userID, barcode, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check codigo barras: %w", err)
	}
	return exists, nil
}

func listWhere(userID string, f repository.ProductFilter) (string, []any) {
	where := `WHERE p.usuario_id = $1 AND NOT p.eliminado`
	args := []any{userID}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where += fmt.Sprintf(` AND (p.nombre ILIKE $%d OR p.codigo_barras ILIKE $%d)`, len(args), len(args))
	}
	if f.CategoryID != "" {
		args = append(args, f.CategoryID)
		where += fmt.Sprintf(` AND p.categoria_id = $%d`, len(args))
	}
	return where, args
}

// orderClause traduce el orden pedido a un ORDER BY fijo; valores fuera de la
// lista caen al orden por nombre. Nunca interpola input del usuario.
func orderClause(order string) string {
	switch order {
	case "nombre_desc":
		return ` ORDER BY p.nombre DESC`
	case "precio_asc":
		return ` ORDER BY p.precio_venta ASC`
	case "precio_desc":
		return ` ORDER BY p.precio_venta DESC`
	case "stock_asc":
		return ` ORDER BY p.stock_actual ASC`
	case "stock_desc":
		return ` ORDER BY p.stock_actual DESC`
	case "reciente":
		return ` ORDER BY p.created_at DESC`
	default:
		return ` ORDER BY p.nombre ASC`
	}
}
