package ledger

import (
	"context"

	"github.com/tu-usuario/stock-kiosco/internal/domain"
	"github.com/tu-usuario/stock-kiosco/internal/domain/entity"
	"github.com/tu-usuario/stock-kiosco/internal/domain/repository"
)

// HistoryResult historial paginado de movimientos de un producto.
type HistoryResult struct {
	Product   *entity.Product
	Movements []repository.MovementListItem
	Total     int
}

// ListResult listado paginado de movimientos del usuario.
type ListResult struct {
	Movements []repository.MovementListItem
	Total     int
}

// History devuelve el historial de movimientos de un producto, más reciente
// primero. Verifica que el producto sea del usuario.
func (uc *UseCase) History(ctx context.Context, userID, productID string, limit, offset int) (*HistoryResult, error) {
	p, err := uc.productRepo.GetByID(productID, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	total, err := uc.movementRepo.CountByProduct(productID)
	if err != nil {
		return nil, err
	}
	items, err := uc.movementRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &HistoryResult{Product: p, Movements: items, Total: total}, nil
}

// List devuelve los movimientos del usuario filtrados por tipo y fechas.
func (uc *UseCase) List(ctx context.Context, userID string, f repository.MovementFilter, limit, offset int) (*ListResult, error) {
	total, err := uc.movementRepo.Count(userID, f)
	if err != nil {
		return nil, err
	}
	items, err := uc.movementRepo.List(userID, f, limit, offset)
	if err != nil {
		return nil, err
	}
	return &ListResult{Movements: items, Total: total}, nil
}

// Discrepancy inconsistencia detectada entre el libro y el stock del producto.
type Discrepancy struct {
	ProductID   string
	Description string
}

// VerifyContinuity repasa el libro de un producto en orden cronológico y
// comprueba que cada asiento encadena con el anterior y que el stock actual
// del producto coincide con el último stock_posterior. Devuelve las
// inconsistencias encontradas (vacío = libro sano).
func (uc *UseCase) VerifyContinuity(ctx context.Context, userID, productID string) ([]Discrepancy, error) {
	p, err := uc.productRepo.GetByID(productID, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	movs, err := uc.movementRepo.LedgerByProduct(productID)
	if err != nil {
		return nil, err
	}

	var out []Discrepancy
	for i, m := range movs {
		delta := m.StockAfter - m.StockBefore
		switch m.Type {
		case entity.MovementTypeEntry:
			if delta != m.Quantity {
				out = append(out, Discrepancy{ProductID: productID, Description: "entrada " + m.ID + ": stock_posterior no es stock_anterior + cantidad"})
			}
		case entity.MovementTypeExit:
			if delta != -m.Quantity {
				out = append(out, Discrepancy{ProductID: productID, Description: "salida " + m.ID + ": stock_posterior no es stock_anterior - cantidad"})
			}
		case entity.MovementTypeAdjustment:
			if delta != m.Quantity && delta != -m.Quantity {
				out = append(out, Discrepancy{ProductID: productID, Description: "ajuste " + m.ID + ": magnitud del asiento no coincide con el efecto"})
			}
		}
		if i > 0 && movs[i-1].StockAfter != m.StockBefore {
			out = append(out, Discrepancy{ProductID: productID, Description: "asiento " + m.ID + ": stock_anterior no encadena con el asiento previo"})
		}
	}
	if n := len(movs); n > 0 && movs[n-1].StockAfter != p.CurrentStock {
		out = append(out, Discrepancy{ProductID: productID, Description: "stock_actual del producto no coincide con el último asiento"})
	}
	return out, nil
}
