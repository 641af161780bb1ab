package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// UseCase ajustes manuales de stock y consultas del libro por bodega.
type UseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository // lecturas fuera de transacción
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, warehouseRepo repository.WarehouseRepository, stockRepo repository.StockRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, warehouseRepo: warehouseRepo, stockRepo: stockRepo}
}

// AdjustStock aplica una corrección manual (delta con signo) como incremento
// atómico y deja el movimiento de auditoría en la misma transacción. El
// resultado puede quedar negativo: el libro es de cantidades con signo.
func (uc *UseCase) AdjustStock(ctx context.Context, companyID, userID string, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.ProductID == "" || in.WarehouseID == "" || in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	var newQty decimal.Decimal
	err = uc.txRunner.RunInventory(ctx, func(
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		var err error
		newQty, err = stockRepo.Adjust(companyID, in.WarehouseID, in.ProductID, in.Delta)
		if err != nil {
			return err
		}
		return movementRepo.Create(&entity.StockMovement{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			WarehouseID: in.WarehouseID,
			ProductID:   in.ProductID,
			Type:        entity.StockMovementAdjustment,
			Quantity:    in.Delta,
			Notes:       in.Notes,
			CreatedAt:   time.Now(),
			CreatedBy:   userID,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.AdjustStockResponse{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		NewQuantity: newQty,
	}, nil
}

// ListStock lista las cantidades actuales de una bodega.
func (uc *UseCase) ListStock(ctx context.Context, companyID, warehouseID string, limit, offset int) (*dto.StockListResponse, error) {
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.stockRepo.ListByWarehouse(companyID, warehouseID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.StockResponse{
			ProductID:   s.ProductID,
			WarehouseID: s.WarehouseID,
			Quantity:    s.Quantity,
		})
	}
	return &dto.StockListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}
