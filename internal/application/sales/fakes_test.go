package sales_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de ventas. Emulan la semántica de los
// adaptadores reales (incremento atómico, bloqueo por transacción única en el
// runner) sin tocar la base de datos.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	sales     map[string]*entity.Sale
	items     map[string][]*entity.SaleItem
	payments  map[string][]*entity.SalePayment
	stock     map[string]decimal.Decimal // clave company|warehouse|product
	movements []*entity.StockMovement
	sessions  map[string]*entity.CashRegisterSession
	cashTxs   []*entity.CashTransaction
	links     map[string][]*entity.ComponentLink // clave company|parent
	users     map[string]*entity.User
	products  map[string]*entity.Product
}

func newMemStore() *memStore {
	return &memStore{
		sales:    map[string]*entity.Sale{},
		items:    map[string][]*entity.SaleItem{},
		payments: map[string][]*entity.SalePayment{},
		stock:    map[string]decimal.Decimal{},
		sessions: map[string]*entity.CashRegisterSession{},
		links:    map[string][]*entity.ComponentLink{},
		users:    map[string]*entity.User{},
		products: map[string]*entity.Product{},
	}
}

func stockKey(companyID, warehouseID, productID string) string {
	return companyID + "|" + warehouseID + "|" + productID
}

// fakeTxRunner pasa los repos en memoria a fn; la atomicidad real la da la
// base de datos, aquí solo se ejercita la lógica.
type fakeTxRunner struct{ store *memStore }

var _ sales.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) RunSale(_ context.Context, fn func(
	saleRepo repository.SaleRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
	sessionRepo repository.CashSessionRepository,
	cashTxRepo repository.CashTransactionRepository,
	linkRepo repository.ComponentLinkRepository,
) error) error {
	return fn(
		&memSaleRepo{r.store}, &memStockRepo{r.store}, &memMovementRepo{r.store},
		&memSessionRepo{r.store}, &memCashTxRepo{r.store}, &memLinkRepo{r.store},
	)
}

// ── SaleRepository ──

type memSaleRepo struct{ s *memStore }

var _ repository.SaleRepository = (*memSaleRepo)(nil)

func (r *memSaleRepo) Create(sale *entity.Sale) error {
	cp := *sale
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *memSaleRepo) CreateItem(item *entity.SaleItem) error {
	cp := *item
	r.s.items[item.SaleID] = append(r.s.items[item.SaleID], &cp)
	return nil
}

func (r *memSaleRepo) CreatePayment(payment *entity.SalePayment) error {
	cp := *payment
	r.s.payments[payment.SaleID] = append(r.s.payments[payment.SaleID], &cp)
	return nil
}

func (r *memSaleRepo) GetByID(id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *sale
	return &cp, nil
}

func (r *memSaleRepo) GetByIDForUpdate(id string) (*entity.Sale, error) {
	return r.GetByID(id)
}

func (r *memSaleRepo) GetItems(saleID string) ([]*entity.SaleItem, error) {
	return r.s.items[saleID], nil
}

func (r *memSaleRepo) GetPayments(saleID string) ([]*entity.SalePayment, error) {
	return r.s.payments[saleID], nil
}

func (r *memSaleRepo) UpdateStatus(id, status string) error {
	if sale, ok := r.s.sales[id]; ok {
		sale.Status = status
		sale.UpdatedAt = time.Now()
	}
	return nil
}

func (r *memSaleRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if s.CompanyID == companyID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ── StockRepository / StockMovementRepository ──

type memStockRepo struct{ s *memStore }

var _ repository.StockRepository = (*memStockRepo)(nil)

func (r *memStockRepo) Adjust(companyID, warehouseID, productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	key := stockKey(companyID, warehouseID, productID)
	newQty := r.s.stock[key].Add(delta)
	r.s.stock[key] = newQty
	return newQty, nil
}

func (r *memStockRepo) Get(companyID, warehouseID, productID string) (*entity.WarehouseStock, error) {
	return &entity.WarehouseStock{
		CompanyID:   companyID,
		WarehouseID: warehouseID,
		ProductID:   productID,
		Quantity:    r.s.stock[stockKey(companyID, warehouseID, productID)],
	}, nil
}

func (r *memStockRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.WarehouseStock, error) {
	return nil, nil
}

type memMovementRepo struct{ s *memStore }

var _ repository.StockMovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(m *entity.StockMovement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByReference(companyID, reference string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.CompanyID == companyID && m.Reference == reference {
			out = append(out, m)
		}
	}
	return out, nil
}

// ── CashSessionRepository / CashTransactionRepository ──

type memSessionRepo struct{ s *memStore }

var _ repository.CashSessionRepository = (*memSessionRepo)(nil)

func (r *memSessionRepo) Create(session *entity.CashRegisterSession) error {
	cp := *session
	r.s.sessions[session.ID] = &cp
	return nil
}

func (r *memSessionRepo) GetByID(companyID, id string) (*entity.CashRegisterSession, error) {
	session, ok := r.s.sessions[id]
	if !ok || session.CompanyID != companyID {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (r *memSessionRepo) GetByIDForUpdate(companyID, id string) (*entity.CashRegisterSession, error) {
	return r.GetByID(companyID, id)
}

func (r *memSessionRepo) GetOpenByUser(companyID, userID string) (*entity.CashRegisterSession, error) {
	for _, session := range r.s.sessions {
		if session.CompanyID == companyID && session.UserID == userID && session.IsOpen() {
			cp := *session
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSessionRepo) GetOpenByUserForUpdate(companyID, userID string) (*entity.CashRegisterSession, error) {
	return r.GetOpenByUser(companyID, userID)
}

func (r *memSessionRepo) Close(id string, closingAmount decimal.Decimal, closedAt time.Time) error {
	if session, ok := r.s.sessions[id]; ok {
		session.Status = entity.SessionStatusClosed
		session.ClosingAmount = closingAmount
		session.ClosedAt = &closedAt
	}
	return nil
}

func (r *memSessionRepo) ListClosed(companyID, userID string, limit, offset int) ([]*entity.CashRegisterSession, error) {
	var out []*entity.CashRegisterSession
	for _, session := range r.s.sessions {
		if session.CompanyID != companyID || session.IsOpen() {
			continue
		}
		if userID != "" && session.UserID != userID {
			continue
		}
		out = append(out, session)
	}
	return out, nil
}

type memCashTxRepo struct{ s *memStore }

var _ repository.CashTransactionRepository = (*memCashTxRepo)(nil)

func (r *memCashTxRepo) Create(tx *entity.CashTransaction) error {
	cp := *tx
	r.s.cashTxs = append(r.s.cashTxs, &cp)
	return nil
}

func (r *memCashTxRepo) ListBySession(sessionID string) ([]*entity.CashTransaction, error) {
	var out []*entity.CashTransaction
	for _, tx := range r.s.cashTxs {
		if tx.CashRegisterSessionID == sessionID {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ── ComponentLinkRepository ──

type memLinkRepo struct{ s *memStore }

var _ repository.ComponentLinkRepository = (*memLinkRepo)(nil)

func (r *memLinkRepo) Create(link *entity.ComponentLink) error {
	cp := *link
	key := link.CompanyID + "|" + link.ParentProductID
	r.s.links[key] = append(r.s.links[key], &cp)
	return nil
}

func (r *memLinkRepo) ListByParent(companyID, parentProductID string) ([]*entity.ComponentLink, error) {
	return r.s.links[companyID+"|"+parentProductID], nil
}

func (r *memLinkRepo) Delete(companyID, id string) error {
	for key, links := range r.s.links {
		for i, l := range links {
			if l.ID == id {
				r.s.links[key] = append(links[:i], links[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// ── UserRepository / ProductRepository ──

type memUserRepo struct{ s *memStore }

var _ repository.UserRepository = (*memUserRepo)(nil)

func (r *memUserRepo) Create(user *entity.User) error {
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, user := range r.s.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) AssignWarehouse(userID, warehouseID string) error {
	if user, ok := r.s.users[userID]; ok {
		user.WarehouseID = warehouseID
	}
	return nil
}

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	product, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

func (r *memProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(product *entity.Product) error {
	cp := *product
	r.s.products[product.ID] = &cp
	return nil
}

func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

// nopCache caché siempre-miss para el resolver en tests.
type nopCache struct{}

func (nopCache) Get(_ context.Context, _, _ string) ([]*entity.ComponentLink, bool, error) {
	return nil, false, nil
}

func (nopCache) Set(_ context.Context, _, _ string, _ []*entity.ComponentLink, _ time.Duration) error {
	return nil
}

func (nopCache) Delete(_ context.Context, _, _ string) error { return nil }
