package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo se fija en
// la creación; después se mueve exclusivamente por el libro de movimientos.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, categories repository.CategoryRepository, suppliers repository.SupplierRepository) *ProductUseCase {
	return &ProductUseCase{products: products, categories: categories, suppliers: suppliers}
}

// Create crea un producto para el usuario. Valida que el código de barras no
// esté repetido y que la categoría y el proveedor, si vienen, sean del usuario.
func (uc *ProductUseCase) Create(userID string, in dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if in.StockActual < 0 || in.StockMinimo < 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.PrecioVenta.IsNegative() || in.PrecioCompra.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.CodigoBarras != "" {
		exists, err := uc.products.BarcodeExists(userID, in.CodigoBarras, "")
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.checkReferences(userID, in.CategoriaID, in.ProveedorID); err != nil {
		return nil, err
	}
	if in.UnidadMedida == "" {
		in.UnidadMedida = "unidad"
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		UserID:        userID,
		CategoryID:    in.CategoriaID,
		SupplierID:    in.ProveedorID,
		Name:          in.Nombre,
		Description:   in.Descripcion,
		Barcode:       in.CodigoBarras,
		SKU:           in.SKU,
		CurrentStock:  in.StockActual,
		MinStock:      in.StockMinimo,
		UnitMeasure:   in.UnidadMedida,
		PurchasePrice: in.PrecioCompra,
		SalePrice:     in.PrecioVenta,
		ExpiryDate:    in.FechaVencimiento,
		Batch:         in.Lote,
		Location:      in.Ubicacion,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return toProductoResponse(product), nil
}

// GetByID obtiene un producto del usuario.
func (uc *ProductUseCase) GetByID(userID, id string) (*dto.ProductoResponse, error) {
	product, err := uc.products.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductoResponse(product), nil
}

// Update actualiza un producto. No toca CurrentStock ni PrecioCompra por
// entradas: eso lo hace el ledger.
func (uc *ProductUseCase) Update(userID, id string, in dto.EditarProductoRequest) (*dto.ProductoResponse, error) {
	product, err := uc.products.GetByID(id, userID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.CodigoBarras != nil && *in.CodigoBarras != "" && *in.CodigoBarras != product.Barcode {
		exists, err := uc.products.BarcodeExists(userID, *in.CodigoBarras, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	catID, supID := product.CategoryID, product.SupplierID
	if in.CategoriaID != nil {
		catID = *in.CategoriaID
	}
	if in.ProveedorID != nil {
		supID = *in.ProveedorID
	}
	if catID != product.CategoryID || supID != product.SupplierID {
		if err := uc.checkReferences(userID, catID, supID); err != nil {
			return nil, err
		}
	}
	product.CategoryID = catID
	product.SupplierID = supID
	if in.Nombre != nil {
		product.Name = *in.Nombre
	}
	if in.Descripcion != nil {
		product.Description = *in.Descripcion
	}
	if in.CodigoBarras != nil {
		product.Barcode = *in.CodigoBarras
	}
	if in.SKU != nil {
		product.SKU = *in.SKU
	}
	if in.StockMinimo != nil {
		if *in.StockMinimo < 0 {
			return nil, domain.ErrInvalidQuantity
		}
		product.MinStock = *in.StockMinimo
	}
	if in.UnidadMedida != nil {
		product.UnitMeasure = *in.UnidadMedida
	}
	if in.PrecioCompra != nil {
		if in.PrecioCompra.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PrecioCompra
	}
	if in.PrecioVenta != nil {
		if in.PrecioVenta.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.PrecioVenta
	}
	if in.FechaVencimiento != nil {
		product.ExpiryDate = in.FechaVencimiento
	}
	if in.Lote != nil {
		product.Batch = *in.Lote
	}
	if in.Ubicacion != nil {
		product.Location = *in.Ubicacion
	}
	if in.Activo != nil {
		product.Active = *in.Activo
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return toProductoResponse(product), nil
}

// List lista productos del usuario con búsqueda, filtro por categoría,
// ordenamiento y paginación.
func (uc *ProductUseCase) List(userID string, in dto.ListarProductosRequest) (*dto.ListaProductosResponse, error) {
	in.DefaultPage()
	filter := repository.ProductFilter{
		Search:     in.Buscar,
		CategoryID: in.CategoriaID,
		Order:      in.Orden,
	}
	items, err := uc.products.List(userID, filter, in.Limit, in.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.products.Count(userID, filter)
	if err != nil {
		return nil, err
	}
	productos := make([]dto.ProductoResponse, 0, len(items))
	for i := range items {
		r := toProductoResponse(&items[i].Product)
		r.CategoriaNombre = items[i].CategoryName
		r.CategoriaColor = items[i].CategoryColor
		r.ProveedorNombre = items[i].SupplierName
		productos = append(productos, *r)
	}
	return &dto.ListaProductosResponse{
		Productos:  productos,
		Paginacion: dto.NewPaginacion(total, in.PageRequest),
	}, nil
}

// Delete hace borrado lógico del producto. El historial de movimientos queda.
func (uc *ProductUseCase) Delete(userID, id string) error {
	product, err := uc.products.GetByID(id, userID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.products.SoftDelete(id, userID)
}

func (uc *ProductUseCase) checkReferences(userID, categoryID, supplierID string) error {
	if categoryID != "" {
		cat, err := uc.categories.GetByID(categoryID, userID)
		if err != nil {
			return err
		}
		if cat == nil {
			return domain.ErrReferenceNotFound
		}
	}
	if supplierID != "" {
		sup, err := uc.suppliers.GetByID(supplierID, userID)
		if err != nil {
			return err
		}
		if sup == nil {
			return domain.ErrReferenceNotFound
		}
	}
	return nil
}

func toProductoResponse(p *entity.Product) *dto.ProductoResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductoResponse{
		ID:               p.ID,
		Nombre:           p.Name,
		Descripcion:      p.Description,
		CodigoBarras:     p.Barcode,
		SKU:              p.SKU,
		CategoriaID:      p.CategoryID,
		ProveedorID:      p.SupplierID,
		StockActual:      p.CurrentStock,
		StockMinimo:      p.MinStock,
		UnidadMedida:     p.UnitMeasure,
		PrecioCompra:     p.PurchasePrice,
		PrecioVenta:      p.SalePrice,
		FechaVencimiento: p.ExpiryDate,
		Lote:             p.Batch,
		Ubicacion:        p.Location,
		Activo:           p.Active,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
