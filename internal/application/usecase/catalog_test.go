package usecase_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-kiosco/internal/application/dto"
	"github.com/tu-usuario/stock-kiosco/internal/application/usecase"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

const (
	testUserID  = "00000000-0000-0000-0000-0000000000aa"
	otherUserID = "00000000-0000-0000-0000-0000000000bb"
)

func str(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProducts struct {
	items map[string]*entity.Product
}

func newFakeProducts() *fakeProducts { return &fakeProducts{items: map[string]*entity.Product{}} }

func (r *fakeProducts) Create(p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProducts) GetByID(id, userID string) (*entity.Product, error) {
	p, ok := r.items[id]
	if !ok || p.UserID != userID || p.Deleted {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProducts) GetForUpdate(id, userID string) (*entity.Product, error) {
	return r.GetByID(id, userID)
}

func (r *fakeProducts) Update(p *entity.Product) error {
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProducts) UpdateStock(id string, stock int) error {
	if p, ok := r.items[id]; ok {
		p.CurrentStock = stock
	}
	return nil
}

func (r *fakeProducts) UpdatePurchasePrice(id string, price decimal.Decimal) error {
	if p, ok := r.items[id]; ok {
		p.PurchasePrice = price
	}
	return nil
}

func (r *fakeProducts) SoftDelete(id, userID string) error {
	if p, ok := r.items[id]; ok && p.UserID == userID {
		p.Deleted = true
		p.Active = false
	}
	return nil
}

func (r *fakeProducts) List(userID string, f repository.ProductFilter, limit, offset int) ([]repository.ProductListItem, error) {
	var out []repository.ProductListItem
	for _, p := range r.items {
		if p.UserID != userID || p.Deleted {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) && p.Barcode != f.Search {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		out = append(out, repository.ProductListItem{Product: *p})
	}
	return out, nil
}

func (r *fakeProducts) Count(userID string, f repository.ProductFilter) (int, error) {
	items, _ := r.List(userID, f, 0, 0)
	return len(items), nil
}

func (r *fakeProducts) BarcodeExists(userID, barcode, excludeID string) (bool, error) {
	for _, p := range r.items {
		if p.UserID == userID && !p.Deleted && p.Barcode == barcode && p.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeCategories struct {
	items map[string]*entity.Category
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{items: map[string]*entity.Category{}}
}

func (r *fakeCategories) Create(c *entity.Category) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategories) GetByID(id, userID string) (*entity.Category, error) {
	c, ok := r.items[id]
	if !ok || c.UserID != userID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategories) Update(c *entity.Category) error {
	cp := *c
	r.items[c.ID] = &cp
	return nil
}

func (r *fakeCategories) Deactivate(id, userID string) error {
	if c, ok := r.items[id]; ok && c.UserID == userID {
		c.Active = false
	}
	return nil
}

func (r *fakeCategories) ListWithCounts(userID string) ([]repository.CategoryWithCount, error) {
	var out []repository.CategoryWithCount
	for _, c := range r.items {
		if c.UserID == userID {
			out = append(out, repository.CategoryWithCount{Category: *c})
		}
	}
	return out, nil
}

func (r *fakeCategories) NameExists(userID, name, excludeID string) (bool, error) {
	for _, c := range r.items {
		if c.UserID == userID && strings.EqualFold(c.Name, name) && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

type fakeSuppliers struct {
	items map[string]*entity.Supplier
}

func newFakeSuppliers() *fakeSuppliers { return &fakeSuppliers{items: map[string]*entity.Supplier{}} }

func (r *fakeSuppliers) Create(s *entity.Supplier) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSuppliers) GetByID(id, userID string) (*entity.Supplier, error) {
	s, ok := r.items[id]
	if !ok || s.UserID != userID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSuppliers) GetActive(id, userID string) (*entity.Supplier, error) {
	s, err := r.GetByID(id, userID)
	if err != nil || s == nil || !s.Active {
		return nil, err
	}
	return s, nil
}

func (r *fakeSuppliers) Update(s *entity.Supplier) error {
	cp := *s
	r.items[s.ID] = &cp
	return nil
}

func (r *fakeSuppliers) Deactivate(id, userID string) error {
	if s, ok := r.items[id]; ok && s.UserID == userID {
		s.Active = false
	}
	return nil
}

func (r *fakeSuppliers) List(userID string, includeInactive bool) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	for _, s := range r.items {
		if s.UserID != userID {
			continue
		}
		if !includeInactive && !s.Active {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSuppliers) NameExists(userID, name, excludeID string) (bool, error) {
	for _, s := range r.items {
		if s.UserID == userID && strings.EqualFold(s.Name, name) && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func newProductUC() (*usecase.ProductUseCase, *fakeProducts, *fakeCategories, *fakeSuppliers) {
	products := newFakeProducts()
	categories := newFakeCategories()
	suppliers := newFakeSuppliers()
	return usecase.NewProductUseCase(products, categories, suppliers), products, categories, suppliers
}

func crearProductoValido() dto.CrearProductoRequest {
	return dto.CrearProductoRequest{
		Nombre:       "Coca Cola 500ml",
		CodigoBarras: "7790895000782",
		StockActual:  10,
		StockMinimo:  5,
		PrecioCompra: decimal.NewFromInt(800),
		PrecioVenta:  decimal.NewFromInt(1200),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ProductUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_OK(t *testing.T) {
	uc, products, _, _ := newProductUC()

	resp, err := uc.Create(testUserID, crearProductoValido())
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Coca Cola 500ml", resp.Nombre)
	assert.Equal(t, 10, resp.StockActual)
	assert.Equal(t, "unidad", resp.UnidadMedida, "sin unidad explícita cae a unidad")
	assert.True(t, resp.Activo)

	stored, err := products.GetByID(resp.ID, testUserID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, testUserID, stored.UserID)
}

func TestProductCreate_CodigoBarrasDuplicado(t *testing.T) {
	uc, _, _, _ := newProductUC()

	_, err := uc.Create(testUserID, crearProductoValido())
	require.NoError(t, err)

	in := crearProductoValido()
	in.Nombre = "Otra gaseosa"
	_, err = uc.Create(testUserID, in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// El mismo código en otro usuario no choca
	_, err = uc.Create(otherUserID, in)
	assert.NoError(t, err, "los códigos de barras son únicos por usuario, no globales")
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	uc, _, _, _ := newProductUC()

	in := crearProductoValido()
	in.CategoriaID = "categoria-fantasma"
	_, err := uc.Create(testUserID, in)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

func TestProductCreate_CategoriaDeOtroUsuario(t *testing.T) {
	uc, _, categories, _ := newProductUC()
	require.NoError(t, categories.Create(&entity.Category{ID: "cat-ajena", UserID: otherUserID, Name: "Bebidas", Active: true}))

	in := crearProductoValido()
	in.CategoriaID = "cat-ajena"
	_, err := uc.Create(testUserID, in)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound,
		"una categoría de otro usuario cuenta como inexistente")
}

func TestProductCreate_StockNegativo(t *testing.T) {
	uc, _, _, _ := newProductUC()

	in := crearProductoValido()
	in.StockActual = -1
	_, err := uc.Create(testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestProductCreate_PrecioNegativo(t *testing.T) {
	uc, _, _, _ := newProductUC()

	in := crearProductoValido()
	in.PrecioVenta = decimal.NewFromInt(-5)
	_, err := uc.Create(testUserID, in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Parcial(t *testing.T) {
	uc, _, _, _ := newProductUC()
	created, err := uc.Create(testUserID, crearProductoValido())
	require.NoError(t, err)

	nuevoPrecio := decimal.NewFromInt(1500)
	resp, err := uc.Update(testUserID, created.ID, dto.EditarProductoRequest{
		Nombre:      str("Coca Cola 500ml retornable"),
		PrecioVenta: &nuevoPrecio,
	})
	require.NoError(t, err)

	assert.Equal(t, "Coca Cola 500ml retornable", resp.Nombre)
	assert.True(t, nuevoPrecio.Equal(resp.PrecioVenta))
	// Lo no enviado no se toca
	assert.Equal(t, "7790895000782", resp.CodigoBarras)
	assert.Equal(t, 10, resp.StockActual, "el update de producto nunca mueve stock")
}

func TestProductUpdate_NoExiste(t *testing.T) {
	uc, _, _, _ := newProductUC()

	_, err := uc.Update(testUserID, "no-existe", dto.EditarProductoRequest{Nombre: str("X")})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductUpdate_CodigoBarrasOcupado(t *testing.T) {
	uc, _, _, _ := newProductUC()
	_, err := uc.Create(testUserID, crearProductoValido())
	require.NoError(t, err)

	in2 := crearProductoValido()
	in2.Nombre = "Fanta 500ml"
	in2.CodigoBarras = "7790895001123"
	p2, err := uc.Create(testUserID, in2)
	require.NoError(t, err)

	_, err = uc.Update(testUserID, p2.ID, dto.EditarProductoRequest{CodigoBarras: str("7790895000782")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductDelete_BorradoLogico(t *testing.T) {
	uc, products, _, _ := newProductUC()
	created, err := uc.Create(testUserID, crearProductoValido())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(testUserID, created.ID))

	_, err = uc.GetByID(testUserID, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound, "un producto borrado deja de ser visible")

	// La fila sigue en el store, solo marcada
	raw := products.items[created.ID]
	require.NotNil(t, raw)
	assert.True(t, raw.Deleted)
}

func TestProductGetByID_DeOtroUsuario(t *testing.T) {
	uc, _, _, _ := newProductUC()
	created, err := uc.Create(testUserID, crearProductoValido())
	require.NoError(t, err)

	_, err = uc.GetByID(otherUserID, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound,
		"los productos de un usuario no son visibles para otro")
}

func TestProductList_FiltraPorBusqueda(t *testing.T) {
	uc, _, _, _ := newProductUC()
	_, err := uc.Create(testUserID, crearProductoValido())
	require.NoError(t, err)
	in2 := crearProductoValido()
	in2.Nombre = "Alfajor triple"
	in2.CodigoBarras = ""
	_, err = uc.Create(testUserID, in2)
	require.NoError(t, err)

	resp, err := uc.List(testUserID, dto.ListarProductosRequest{Buscar: "alfajor"})
	require.NoError(t, err)
	require.Len(t, resp.Productos, 1)
	assert.Equal(t, "Alfajor triple", resp.Productos[0].Nombre)
	assert.Equal(t, 1, resp.Paginacion.Total)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CategoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreDuplicado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategories())

	_, err := uc.Create(testUserID, dto.CrearCategoriaRequest{Nombre: "Bebidas"})
	require.NoError(t, err)

	_, err = uc.Create(testUserID, dto.CrearCategoriaRequest{Nombre: "bebidas"})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el nombre es único por usuario sin distinguir mayúsculas")
}

func TestCategoryCreate_ColorPorDefecto(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newFakeCategories())

	resp, err := uc.Create(testUserID, dto.CrearCategoriaRequest{Nombre: "Limpieza"})
	require.NoError(t, err)
	assert.Equal(t, "#6B7280", resp.Color)
}

func TestCategorySeedDefaults(t *testing.T) {
	categories := newFakeCategories()
	uc := usecase.NewCategoryUseCase(categories)

	require.NoError(t, uc.SeedDefaults(testUserID))

	list, err := uc.List(testUserID)
	require.NoError(t, err)
	assert.Len(t, list, len(usecase.DefaultCategories))

	nombres := make(map[string]bool)
	for _, c := range list {
		nombres[c.Nombre] = true
		assert.True(t, c.Activo)
	}
	assert.True(t, nombres["Bebidas"])
	assert.True(t, nombres["Golosinas"])
	assert.True(t, nombres["Otros"])
}

func TestCategoryDelete_Desactiva(t *testing.T) {
	categories := newFakeCategories()
	uc := usecase.NewCategoryUseCase(categories)

	resp, err := uc.Create(testUserID, dto.CrearCategoriaRequest{Nombre: "Bebidas"})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(testUserID, resp.ID))
	assert.False(t, categories.items[resp.ID].Active)

	assert.ErrorIs(t, uc.Delete(testUserID, "no-existe"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SupplierUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplierCreate_YListado(t *testing.T) {
	uc := usecase.NewSupplierUseCase(newFakeSuppliers())

	_, err := uc.Create(testUserID, dto.CrearProveedorRequest{Nombre: "Distribuidora Sur", Telefono: "11-5555-0001"})
	require.NoError(t, err)

	_, err = uc.Create(testUserID, dto.CrearProveedorRequest{Nombre: "Distribuidora Sur"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.List(testUserID, false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Distribuidora Sur", list[0].Nombre)
}

func TestSupplierDelete_DesactivaYFiltra(t *testing.T) {
	suppliers := newFakeSuppliers()
	uc := usecase.NewSupplierUseCase(suppliers)

	resp, err := uc.Create(testUserID, dto.CrearProveedorRequest{Nombre: "Distribuidora Sur"})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(testUserID, resp.ID))

	activos, err := uc.List(testUserID, false)
	require.NoError(t, err)
	assert.Empty(t, activos, "un proveedor desactivado no aparece en el listado por defecto")

	todos, err := uc.List(testUserID, true)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.False(t, todos[0].Activo)
}

func TestSupplierUpdate_Parcial(t *testing.T) {
	uc := usecase.NewSupplierUseCase(newFakeSuppliers())
	created, err := uc.Create(testUserID, dto.CrearProveedorRequest{Nombre: "Distribuidora Sur", Telefono: "11-5555-0001"})
	require.NoError(t, err)

	resp, err := uc.Update(testUserID, created.ID, dto.EditarProveedorRequest{Telefono: str("11-5555-9999")})
	require.NoError(t, err)
	assert.Equal(t, "11-5555-9999", resp.Telefono)
	assert.Equal(t, "Distribuidora Sur", resp.Nombre)
}
