// Package ledger implementa el libro de movimientos de stock: el único camino
// autorizado para cambiar el stock de un producto. Cada operación corre en una
// transacción con bloqueo de fila (SELECT FOR UPDATE) sobre el producto, de
// modo que dos operaciones concurrentes sobre el mismo producto se serializan
// y ninguna pierde la actualización de la otra.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

// UseCase registra entradas, salidas y ajustes de stock de forma transaccional.
type UseCase struct {
	tx           TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

// NewUseCase construye el caso de uso. productRepo y movementRepo van atados
// al pool (consultas fuera de transacción); tx abre transacciones propias.
func NewUseCase(tx TxRunner, productRepo repository.ProductRepository, movementRepo repository.MovementRepository) *UseCase {
	return &UseCase{tx: tx, productRepo: productRepo, movementRepo: movementRepo}
}

// EntryInput entrada de stock (compra a proveedor).
type EntryInput struct {
	ProductID     string
	Quantity      int
	UnitPrice     *decimal.Decimal // precio de compra; si > 0 actualiza el producto
	SupplierID    string
	InvoiceNumber string
	Notes         string
}

// ExitInput salida de stock (venta).
type ExitInput struct {
	ProductID string
	Quantity  int
	UnitPrice *decimal.Decimal // si es nil se usa el precio de venta del producto
	Notes     string
}

// AdjustmentInput ajuste de inventario (merma, rotura, recuento...).
// Quantity lleva signo: negativo descuenta, positivo suma.
type AdjustmentInput struct {
	ProductID string
	Quantity  int
	Reason    string
	Notes     string
}

// ProductStock foto del stock del producto después de aplicar el movimiento.
type ProductStock struct {
	ID           string
	Name         string
	StockBefore  int
	CurrentStock int
	Difference   int // solo relevante en ajustes; efecto con signo
}

// MovementResult asiento creado + stock actualizado, listo para serializar
// en la respuesta JSON.
type MovementResult struct {
	Movement entity.Movement
	Product  ProductStock
}

// movementPlan describe el efecto ya validado de una operación sobre el stock.
// delta lleva signo; quantity es la magnitud que se persiste en el asiento.
type movementPlan struct {
	movType             string
	reason              string
	delta               int
	quantity            int
	unitPrice           *decimal.Decimal
	supplierID          string
	invoiceNumber       string
	notes               string
	updatePurchasePrice bool
}

// RecordEntry registra una entrada: suma Quantity al stock del producto.
// Si UnitPrice viene y es positivo, actualiza además el precio de compra del
// producto dentro de la misma transacción.
func (uc *UseCase) RecordEntry(ctx context.Context, userID string, in EntryInput) (*MovementResult, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return uc.record(ctx, userID, in.ProductID, func(p *entity.Product, suppliers repository.SupplierRepository) (*movementPlan, error) {
		if in.SupplierID != "" {
			sup, err := suppliers.GetActive(in.SupplierID, userID)
			if err != nil {
				return nil, err
			}
			if sup == nil {
				return nil, domain.ErrReferenceNotFound
			}
		}
		return &movementPlan{
			movType:             entity.MovementTypeEntry,
			reason:              entity.ReasonPurchase,
			delta:               in.Quantity,
			quantity:            in.Quantity,
			unitPrice:           in.UnitPrice,
			supplierID:          in.SupplierID,
			invoiceNumber:       in.InvoiceNumber,
			notes:               in.Notes,
			updatePurchasePrice: in.UnitPrice != nil && in.UnitPrice.IsPositive(),
		}, nil
	})
}

// RecordExit registra una salida: descuenta Quantity del stock. Falla con
// InsufficientStockError si el stock disponible no alcanza; el error lleva
// disponible y solicitado para el mensaje al usuario.
func (uc *UseCase) RecordExit(ctx context.Context, userID string, in ExitInput) (*MovementResult, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	return uc.record(ctx, userID, in.ProductID, func(p *entity.Product, _ repository.SupplierRepository) (*movementPlan, error) {
		if p.CurrentStock < in.Quantity {
			return nil, &domain.InsufficientStockError{Disponible: p.CurrentStock, Solicitado: in.Quantity}
		}
		price := in.UnitPrice
		if price == nil {
			sale := p.SalePrice
			price = &sale
		}
		return &movementPlan{
			movType:   entity.MovementTypeExit,
			reason:    entity.ReasonSale,
			delta:     -in.Quantity,
			quantity:  in.Quantity,
			unitPrice: price,
			notes:     in.Notes,
		}, nil
	})
}

// RecordAdjustment registra un ajuste con signo. El asiento guarda la magnitud
// (valor absoluto) y el efecto firmado queda en las fotos de stock.
func (uc *UseCase) RecordAdjustment(ctx context.Context, userID string, in AdjustmentInput) (*MovementResult, error) {
	if in.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity == 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if !entity.ValidAdjustmentReason(in.Reason) {
		return nil, &domain.InvalidReasonError{Motivo: in.Reason, Permitidos: entity.AdjustmentReasons}
	}
	return uc.record(ctx, userID, in.ProductID, func(p *entity.Product, _ repository.SupplierRepository) (*movementPlan, error) {
		if p.CurrentStock+in.Quantity < 0 {
			return nil, &domain.NegativeStockError{StockActual: p.CurrentStock, Ajuste: in.Quantity}
		}
		qty := in.Quantity
		if qty < 0 {
			qty = -qty
		}
		return &movementPlan{
			movType:  entity.MovementTypeAdjustment,
			reason:   in.Reason,
			delta:    in.Quantity,
			quantity: qty,
			notes:    in.Notes,
		}, nil
	})
}

// record es la primitiva compartida por las tres operaciones: abre la
// transacción, bloquea la fila del producto, valida con plan, inserta el
// asiento y escribe el nuevo stock. Cualquier error hace rollback completo.
func (uc *UseCase) record(
	ctx context.Context,
	userID, productID string,
	plan func(p *entity.Product, suppliers repository.SupplierRepository) (*movementPlan, error),
) (*MovementResult, error) {
	var result *MovementResult
	err := uc.tx.Run(ctx, func(
		products repository.ProductRepository,
		movements repository.MovementRepository,
		suppliers repository.SupplierRepository,
	) error {
		p, err := products.GetForUpdate(productID, userID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}

		pl, err := plan(p, suppliers)
		if err != nil {
			return err
		}

		stockAfter := p.CurrentStock + pl.delta
		if stockAfter < 0 {
			return &domain.NegativeStockError{StockActual: p.CurrentStock, Ajuste: pl.delta}
		}

		mov := &entity.Movement{
			ID:            uuid.New().String(),
			ProductID:     p.ID,
			UserID:        userID,
			Type:          pl.movType,
			Quantity:      pl.quantity,
			Reason:        pl.reason,
			UnitPrice:     pl.unitPrice,
			StockBefore:   p.CurrentStock,
			StockAfter:    stockAfter,
			SupplierID:    pl.supplierID,
			InvoiceNumber: pl.invoiceNumber,
			Notes:         pl.notes,
			Date:          time.Now(),
		}
		if err := movements.Create(mov); err != nil {
			return err
		}
		if err := products.UpdateStock(p.ID, stockAfter); err != nil {
			return err
		}
		if pl.updatePurchasePrice {
			if err := products.UpdatePurchasePrice(p.ID, *pl.unitPrice); err != nil {
				return err
			}
		}

		result = &MovementResult{
			Movement: *mov,
			Product: ProductStock{
				ID:           p.ID,
				Name:         p.Name,
				StockBefore:  p.CurrentStock,
				CurrentStock: stockAfter,
				Difference:   pl.delta,
			},
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
