package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// defaultCurrency moneda por defecto para pagos sintetizados.
const defaultCurrency = "COP"

// CreateSaleUseCase orquesta la creación de una venta: cabecera, líneas,
// pagos, deltas de stock (padre + componentes de compuestos) y asiento de
// caja, todo en una sola transacción.
type CreateSaleUseCase struct {
	txRunner    TxRunner
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository // lecturas fuera de transacción
	resolver    *catalog.ComponentResolver
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	resolver *catalog.ComponentResolver,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:    txRunner,
		userRepo:    userRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		resolver:    resolver,
	}
}

// CreateSale persiste la venta y aplica sus efectos.
//  1. Resuelve la bodega asignada al usuario creador; sin asignación la venta
//     igual se persiste pero omite efectos de stock y caja (comportamiento
//     documentado, no una omisión).
//  2. Totales del caller tal cual (entrada confiable, sin re-verificación).
//  3. Líneas tal cual; por cada línea, delta −cantidad al padre y, si es
//     compuesto, −cantidadPorUnidad×cantidad a cada componente.
//  4. Pagos tal cual; sin desglose explícito se sintetiza uno por el total.
//  5. Con sesión de caja abierta y porción cash > 0: asiento sale en el libro
//     y la sesión queda referenciada en la venta.
//
// Los pasos 2–5 corren dentro de una única transacción.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Items) == 0 || in.PaymentMethod == "" {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}
	for _, p := range in.Payments {
		if p.Method == "" || p.Amount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	warehouseID := user.WarehouseID

	// Validar productos y resolver recetas fuera de la tx (solo lectura).
	productsByID := make(map[string]*entity.Product)
	recipes := make(map[string][]*entity.ComponentLink)
	for _, item := range in.Items {
		if _, seen := productsByID[item.ProductID]; seen {
			continue
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		productsByID[item.ProductID] = product
		if product.IsComposite {
			links, err := uc.resolver.Resolve(ctx, companyID, item.ProductID)
			if err != nil {
				return nil, err
			}
			recipes[item.ProductID] = links
		}
	}
	for _, item := range in.Items {
		if !productsByID[item.ProductID].AllowsFraction && !item.Quantity.IsInteger() {
			return nil, domain.ErrFractionNotAllowed
		}
	}

	now := time.Now()
	saleID := uuid.New().String()
	var sale *entity.Sale
	var items []*entity.SaleItem
	var payments []*entity.SalePayment

	err = uc.txRunner.RunSale(ctx, func(
		saleRepo repository.SaleRepository,
		stockRepo repository.StockRepository,
		movementRepo repository.StockMovementRepository,
		sessionRepo repository.CashSessionRepository,
		cashTxRepo repository.CashTransactionRepository,
		_ repository.ComponentLinkRepository,
	) error {
		// Sesión de caja abierta del usuario, bloqueada para que un cierre
		// concurrente no acepte asientos fuera de su ventana.
		var session *entity.CashRegisterSession
		if warehouseID != "" {
			var err error
			session, err = sessionRepo.GetOpenByUserForUpdate(companyID, userID)
			if err != nil {
				return err
			}
		}

		payments = buildPayments(saleID, in, now)
		cashAmount := entity.CashAmount(payments)

		sale = &entity.Sale{
			ID:                saleID,
			CompanyID:         companyID,
			UserID:            userID,
			WarehouseID:       warehouseID,
			TicketLabel:       in.TicketLabel,
			CustomerReference: in.CustomerReference,
			Subtotal:          in.Subtotal,
			Tax:               in.Tax,
			Discount:          in.Discount,
			Total:             in.Total,
			PaymentMethod:     in.PaymentMethod,
			Status:            entity.SaleStatusCompleted,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if session != nil && cashAmount.IsPositive() {
			sale.CashRegisterSessionID = session.ID
		}
		if err := saleRepo.Create(sale); err != nil {
			return err
		}

		for _, it := range in.Items {
			item := &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
				LineTotal: it.LineTotal,
				CreatedAt: now,
			}
			if err := saleRepo.CreateItem(item); err != nil {
				return err
			}
			items = append(items, item)
		}
		for _, p := range payments {
			if err := saleRepo.CreatePayment(p); err != nil {
				return err
			}
		}

		// Deltas de stock: padre y componentes se mueven en cada venta.
		if warehouseID != "" {
			for _, it := range in.Items {
				if err := uc.applyStockDelta(stockRepo, movementRepo, companyID, warehouseID, it.ProductID, it.Quantity.Neg(), saleID, userID, now); err != nil {
					return err
				}
				for _, link := range recipes[it.ProductID] {
					delta := link.QuantityPerUnit.Mul(it.Quantity).Neg()
					if err := uc.applyStockDelta(stockRepo, movementRepo, companyID, warehouseID, link.ComponentProductID, delta, saleID, userID, now); err != nil {
						return err
					}
				}
			}
		}

		// Asiento en el libro de caja por la porción cash del pago.
		if session != nil && cashAmount.IsPositive() {
			cashTx := &entity.CashTransaction{
				ID:                    uuid.New().String(),
				CompanyID:             companyID,
				CashRegisterSessionID: session.ID,
				Type:                  entity.CashTxSale,
				Amount:                cashAmount,
				Reference:             saleID,
				CreatedAt:             now,
			}
			if err := cashTxRepo.Create(cashTx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toSaleResponse(sale, items, payments), nil
}

func (uc *CreateSaleUseCase) applyStockDelta(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	companyID, warehouseID, productID string,
	delta decimal.Decimal,
	saleID, userID string,
	now time.Time,
) error {
	if _, err := stockRepo.Adjust(companyID, warehouseID, productID, delta); err != nil {
		return err
	}
	return movementRepo.Create(&entity.StockMovement{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		WarehouseID: warehouseID,
		ProductID:   productID,
		Type:        entity.StockMovementSale,
		Quantity:    delta,
		Reference:   saleID,
		CreatedAt:   now,
		CreatedBy:   userID,
	})
}

// buildPayments materializa el desglose de pagos; sin desglose explícito se
// sintetiza un único pago por el total bajo el método declarado. Las sumas se
// guardan tal cual aunque difieran del total (sin conciliación forzada aquí).
func buildPayments(saleID string, in dto.CreateSaleRequest, now time.Time) []*entity.SalePayment {
	if len(in.Payments) == 0 {
		return []*entity.SalePayment{{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			Method:    in.PaymentMethod,
			Amount:    in.Total,
			Currency:  defaultCurrency,
			CreatedAt: now,
		}}
	}
	payments := make([]*entity.SalePayment, 0, len(in.Payments))
	for _, p := range in.Payments {
		currency := p.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		payments = append(payments, &entity.SalePayment{
			ID:        uuid.New().String(),
			SaleID:    saleID,
			Method:    p.Method,
			Amount:    p.Amount,
			Currency:  currency,
			Reference: p.Reference,
			CreatedAt: now,
		})
	}
	return payments
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem, payments []*entity.SalePayment) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:                    sale.ID,
		WarehouseID:           sale.WarehouseID,
		CashRegisterSessionID: sale.CashRegisterSessionID,
		Subtotal:              sale.Subtotal,
		Tax:                   sale.Tax,
		Discount:              sale.Discount,
		Total:                 sale.Total,
		PaymentMethod:         sale.PaymentMethod,
		Status:                sale.Status,
		TicketLabel:           sale.TicketLabel,
		CreatedAt:             sale.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal,
		})
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, dto.SalePaymentResponse{
			ID:        p.ID,
			Method:    p.Method,
			Amount:    p.Amount,
			Currency:  p.Currency,
			Reference: p.Reference,
		})
	}
	return resp
}

// GetSale obtiene una venta por ID con líneas y pagos.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, companyID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.saleRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	payments, err := uc.saleRepo.GetPayments(id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items, payments), nil
}
