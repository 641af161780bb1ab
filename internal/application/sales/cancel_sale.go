package sales

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

// CancelSaleUseCase revierte los efectos de una venta completada mediante una
// transacción compensatoria: restaura stock (padre y componentes), inserta el
// asiento inverso de caja y marca la venta como cancelled. Nunca borra filas:
// el historial queda como rastro de auditoría.
type CancelSaleUseCase struct {
	txRunner TxRunner
}

// NewCancelSaleUseCase construye el caso de uso.
func NewCancelSaleUseCase(txRunner TxRunner) *CancelSaleUseCase {
	return &CancelSaleUseCase{txRunner: txRunner}
}

// Cancel anula una venta. Precondición: status debe ser completed; la
// verificación corre dentro de la misma transacción que la reversión, con la
// fila de la venta bloqueada, para que la doble anulación sea imposible
// también bajo concurrencia (una doble reversión duplicaría el stock restaurado).
func (uc *CancelSaleUseCase) Cancel(ctx context.Context, companyID, userID, saleID string) (*dto.CancelSaleResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()

	err := uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
		sessionRepo repository.CashSessionRepository,
		cashTxRepo repository.CashTransactionRepository,
		linkRepo repository.ComponentLinkRepository,
	) error {
		sale, err := saleRepo.GetByIDForUpdate(saleID)
		if err != nil {
			return err
		}
		if sale == nil || sale.CompanyID != companyID {
			return domain.ErrNotFound
		}
		if sale.Status != entity.SaleStatusCompleted {
			return domain.ErrSaleAlreadyCancelled
		}

		items, err := saleRepo.GetItems(saleID)
		if err != nil {
			return err
		}
		payments, err := saleRepo.GetPayments(saleID)
		if err != nil {
			return err
		}

		// Restaurar stock con deltas inversos: +cantidad al padre y
		// +cantidadPorUnidad×cantidad a cada componente. La receta se lee con
		// el repo atado a la tx para ver el estado consistente del grafo.
		if sale.WarehouseID != "" {
			for _, item := range items {
				if err := uc.restoreStock(stockRepo, movementRepo, sale, item.ProductID, item.Quantity, userID, now); err != nil {
					return err
				}
				links, err := linkRepo.ListByParent(companyID, item.ProductID)
				if err != nil {
					return err
				}
				for _, link := range links {
					restored := link.QuantityPerUnit.Mul(item.Quantity)
					if err := uc.restoreStock(stockRepo, movementRepo, sale, link.ComponentProductID, restored, userID, now); err != nil {
						return err
					}
				}
			}
		}

		// Asiento inverso por cada pago cash de la venta original. Si la
		// sesión original ya cerró (rechaza asientos nuevos), el asiento cae
		// en la sesión abierta del usuario que anula; sin sesión abierta, la
		// reversión de stock procede y el efecto de caja se omite.
		if sale.CashRegisterSessionID != "" {
			target, err := uc.reversalSession(sessionRepo, companyID, userID, sale.CashRegisterSessionID)
			if err != nil {
				return err
			}
			if target != nil {
				for _, p := range payments {
					if p.Method != entity.PaymentMethodCash {
						continue
					}
					reversal := &entity.CashTransaction{
						ID:                    uuid.New().String(),
						CompanyID:             companyID,
						CashRegisterSessionID: target.ID,
						Type:                  entity.CashTxCancellation,
						Amount:                p.Amount.Neg(),
						Reference:             saleID,
						CreatedAt:             now,
					}
					if err := cashTxRepo.Create(reversal); err != nil {
						return err
					}
				}
			}
		}

		return saleRepo.UpdateStatus(saleID, entity.SaleStatusCancelled)
	})
	if err != nil {
		return nil, err
	}
	return &dto.CancelSaleResponse{Cancelled: true}, nil
}

func (uc *CancelSaleUseCase) restoreStock(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	sale *entity.Sale,
	productID string,
	quantity decimal.Decimal,
	userID string,
	now time.Time,
) error {
	if _, err := stockRepo.Adjust(sale.CompanyID, sale.WarehouseID, productID, quantity); err != nil {
		return err
	}
	return movementRepo.Create(&entity.StockMovement{
		ID:          uuid.New().String(),
		CompanyID:   sale.CompanyID,
		WarehouseID: sale.WarehouseID,
		ProductID:   productID,
		Type:        entity.StockMovementCancellation,
		Quantity:    quantity,
		Reference:   sale.ID,
		CreatedAt:   now,
		CreatedBy:   userID,
	})
}

// reversalSession elige la sesión que recibe el asiento compensatorio: la
// original si sigue abierta, si no la sesión abierta del usuario que anula.
func (uc *CancelSaleUseCase) reversalSession(
	sessionRepo repository.CashSessionRepository,
	companyID, userID, originalSessionID string,
) (*entity.CashRegisterSession, error) {
	original, err := sessionRepo.GetByIDForUpdate(companyID, originalSessionID)
	if err != nil {
		return nil, err
	}
	if original != nil && original.IsOpen() {
		return original, nil
	}
	return sessionRepo.GetOpenByUserForUpdate(companyID, userID)
}
