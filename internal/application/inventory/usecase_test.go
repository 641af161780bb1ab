package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/inventory"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

const (
	testCompany   = "company-1"
	testUser      = "user-1"
	testWarehouse = "warehouse-1"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ── Fakes ──

type memInvStore struct {
	stock     map[string]decimal.Decimal
	movements []*entity.StockMovement
	products  map[string]*entity.Product
	whs       map[string]*entity.Warehouse
}

func key(companyID, warehouseID, productID string) string {
	return companyID + "|" + warehouseID + "|" + productID
}

type memStockRepo struct{ s *memInvStore }

var _ repository.StockRepository = (*memStockRepo)(nil)

func (r *memStockRepo) Adjust(companyID, warehouseID, productID string, delta decimal.Decimal) (decimal.Decimal, error) {
	k := key(companyID, warehouseID, productID)
	newQty := r.s.stock[k].Add(delta)
	r.s.stock[k] = newQty
	return newQty, nil
}

func (r *memStockRepo) Get(companyID, warehouseID, productID string) (*entity.WarehouseStock, error) {
	return &entity.WarehouseStock{
		CompanyID: companyID, WarehouseID: warehouseID, ProductID: productID,
		Quantity: r.s.stock[key(companyID, warehouseID, productID)],
	}, nil
}

func (r *memStockRepo) ListByWarehouse(companyID, warehouseID string, limit, offset int) ([]*entity.WarehouseStock, error) {
	var out []*entity.WarehouseStock
	for k, qty := range r.s.stock {
		if len(k) > 0 && k[:len(companyID)+1+len(warehouseID)] == companyID+"|"+warehouseID {
			out = append(out, &entity.WarehouseStock{CompanyID: companyID, WarehouseID: warehouseID, Quantity: qty})
		}
	}
	return out, nil
}

type memMovementRepo struct{ s *memInvStore }

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

type memProductRepo struct{ s *memInvStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error  { r.s.products[p.ID] = p; return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.products[id], nil
}
func (r *memProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(p *entity.Product) error                   { return nil }
func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}

type memWarehouseRepo struct{ s *memInvStore }

var _ repository.WarehouseRepository = (*memWarehouseRepo)(nil)

func (r *memWarehouseRepo) Create(w *entity.Warehouse) error { r.s.whs[w.ID] = w; return nil }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r.s.whs[id], nil
}
func (r *memWarehouseRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Warehouse, error) {
	return nil, nil
}

type fakeInvTxRunner struct{ s *memInvStore }

var _ inventory.TxRunner = (*fakeInvTxRunner)(nil)

func (r *fakeInvTxRunner) RunInventory(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return fn(&memStockRepo{r.s}, &memMovementRepo{r.s})
}

func newFixture() (*memInvStore, *inventory.UseCase) {
	store := &memInvStore{
		stock:    map[string]decimal.Decimal{},
		products: map[string]*entity.Product{},
		whs:      map[string]*entity.Warehouse{},
	}
	store.products["prod-1"] = &entity.Product{ID: "prod-1", CompanyID: testCompany, SKU: "P1", Name: "Arroz"}
	store.whs[testWarehouse] = &entity.Warehouse{ID: testWarehouse, CompanyID: testCompany, Name: "Principal"}
	uc := inventory.NewUseCase(&fakeInvTxRunner{store}, &memProductRepo{store}, &memWarehouseRepo{store}, &memStockRepo{store})
	return store, uc
}

// ── AdjustStock ──

func TestAdjustStock_AplicaDeltaYDejaAuditoria(t *testing.T) {
	store, uc := newFixture()
	store.stock[key(testCompany, testWarehouse, "prod-1")] = dec("10")

	resp, err := uc.AdjustStock(context.Background(), testCompany, testUser, dto.AdjustStockRequest{
		ProductID: "prod-1", WarehouseID: testWarehouse, Delta: dec("-3"), Notes: "merma",
	})
	require.NoError(t, err)
	assert.True(t, resp.NewQuantity.Equal(dec("7")))

	require.Len(t, store.movements, 1)
	assert.Equal(t, entity.StockMovementAdjustment, store.movements[0].Type)
	assert.True(t, store.movements[0].Quantity.Equal(dec("-3")))
	assert.Equal(t, "merma", store.movements[0].Notes)
	assert.Equal(t, testUser, store.movements[0].CreatedBy)
}

// El ajuste puede dejar el stock negativo: libro con signo, no bloqueo.
func TestAdjustStock_PuedeQuedarNegativo(t *testing.T) {
	_, uc := newFixture()

	resp, err := uc.AdjustStock(context.Background(), testCompany, testUser, dto.AdjustStockRequest{
		ProductID: "prod-1", WarehouseID: testWarehouse, Delta: dec("-5"),
	})
	require.NoError(t, err)
	assert.True(t, resp.NewQuantity.Equal(dec("-5")),
		"la fila se crea perezosamente con el delta y admite negativos")
}

func TestAdjustStock_DeltaCero_RetornaInvalidInput(t *testing.T) {
	_, uc := newFixture()
	_, err := uc.AdjustStock(context.Background(), testCompany, testUser, dto.AdjustStockRequest{
		ProductID: "prod-1", WarehouseID: testWarehouse, Delta: decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_ProductoDeOtraEmpresa_RetornaForbidden(t *testing.T) {
	store, uc := newFixture()
	store.products["ajeno"] = &entity.Product{ID: "ajeno", CompanyID: "otra-empresa"}

	_, err := uc.AdjustStock(context.Background(), testCompany, testUser, dto.AdjustStockRequest{
		ProductID: "ajeno", WarehouseID: testWarehouse, Delta: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestAdjustStock_BodegaInexistente_RetornaNotFound(t *testing.T) {
	_, uc := newFixture()
	_, err := uc.AdjustStock(context.Background(), testCompany, testUser, dto.AdjustStockRequest{
		ProductID: "prod-1", WarehouseID: "no-existe", Delta: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
