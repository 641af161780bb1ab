package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/application/sales"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

const (
	testCompany   = "company-1"
	testUser      = "user-1"
	testWarehouse = "warehouse-1"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// buildFixture arma la tienda en memoria con un cajero con bodega asignada,
// un producto simple y un combo compuesto (2×simple + 1×insumo por unidad).
func buildFixture(t *testing.T) (*memStore, *sales.CreateSaleUseCase) {
	t.Helper()
	store := newMemStore()
	store.users[testUser] = &entity.User{
		ID: testUser, CompanyID: testCompany, Role: entity.RoleCashier, WarehouseID: testWarehouse,
	}
	store.products["simple-1"] = &entity.Product{
		ID: "simple-1", CompanyID: testCompany, SKU: "S1", Name: "Gaseosa",
		Price: dec("3000"), AllowsFraction: false,
	}
	store.products["insumo-1"] = &entity.Product{
		ID: "insumo-1", CompanyID: testCompany, SKU: "I1", Name: "Vaso",
		Price: dec("200"), AllowsFraction: false,
	}
	store.products["combo-1"] = &entity.Product{
		ID: "combo-1", CompanyID: testCompany, SKU: "C1", Name: "Combo almuerzo",
		Price: dec("12000"), IsComposite: true,
	}
	store.links[testCompany+"|combo-1"] = []*entity.ComponentLink{
		{ID: "l1", CompanyID: testCompany, ParentProductID: "combo-1", ComponentProductID: "simple-1", QuantityPerUnit: dec("2")},
		{ID: "l2", CompanyID: testCompany, ParentProductID: "combo-1", ComponentProductID: "insumo-1", QuantityPerUnit: dec("1")},
	}

	runner := &fakeTxRunner{store: store}
	resolver := catalog.NewComponentResolver(&memLinkRepo{store}, nopCache{})
	uc := sales.NewCreateSaleUseCase(runner, &memUserRepo{store}, &memProductRepo{store}, &memSaleRepo{store}, resolver)
	return store, uc
}

func openSession(store *memStore, id, userID string, opening decimal.Decimal) {
	store.sessions[id] = &entity.CashRegisterSession{
		ID: id, CompanyID: testCompany, UserID: userID, WarehouseID: testWarehouse,
		OpeningAmount: opening, Status: entity.SessionStatusOpen, OpenedAt: time.Now(),
	}
}

func TestCreateSale_SinItems_RetornaInvalidInput(t *testing.T) {
	_, uc := buildFixture(t)
	_, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CantidadNoPositiva_RetornaInvalidInput(t *testing.T) {
	_, uc := buildFixture(t)
	_, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "simple-1", Quantity: dec("0")}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_FraccionEnProductoNoFraccionable_Rechazada(t *testing.T) {
	_, uc := buildFixture(t)
	_, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		Total:         dec("4500"),
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "simple-1", Quantity: dec("1.5"), UnitPrice: dec("3000"), LineTotal: dec("4500")}},
	})
	assert.ErrorIs(t, err, domain.ErrFractionNotAllowed)
}

func TestCreateSale_ProductoInexistente_RetornaNotFound(t *testing.T) {
	_, uc := buildFixture(t)
	_, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		Total:         dec("100"),
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "no-existe", Quantity: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Escenario principal: combo con receta, pago cash, sesión abierta.
// El padre y cada componente reciben su delta, y el libro de caja el asiento.
func TestCreateSale_ComboDescuentaPadreYComponentes(t *testing.T) {
	store, uc := buildFixture(t)
	openSession(store, "session-1", testUser, dec("50000"))
	store.stock[stockKey(testCompany, testWarehouse, "simple-1")] = dec("10")

	resp, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		Subtotal:      dec("24000"),
		Total:         dec("24000"),
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "combo-1", Quantity: dec("2"), UnitPrice: dec("12000"), LineTotal: dec("24000")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCompleted, resp.Status)
	assert.Equal(t, "session-1", resp.CashRegisterSessionID)

	// Padre: −2. Componentes: simple −2×2=−4 (10−4=6), insumo −1×2=−2.
	assert.True(t, store.stock[stockKey(testCompany, testWarehouse, "combo-1")].Equal(dec("-2")),
		"el compuesto mueve su propia fila de stock")
	assert.True(t, store.stock[stockKey(testCompany, testWarehouse, "simple-1")].Equal(dec("6")))
	assert.True(t, store.stock[stockKey(testCompany, testWarehouse, "insumo-1")].Equal(dec("-2")),
		"el stock puede quedar negativo: libro con signo, no bloqueo")

	// Un movimiento de auditoría por cada fila tocada.
	assert.Len(t, store.movements, 3)

	// Asiento de caja por la porción cash.
	require.Len(t, store.cashTxs, 1)
	assert.Equal(t, entity.CashTxSale, store.cashTxs[0].Type)
	assert.True(t, store.cashTxs[0].Amount.Equal(dec("24000")))
	assert.Equal(t, resp.ID, store.cashTxs[0].Reference)
}

// Usuario sin bodega asignada: la venta se persiste pero no hay efectos de
// stock ni de caja.
func TestCreateSale_UsuarioSinBodega_SinEfectosDeStockNiCaja(t *testing.T) {
	store, uc := buildFixture(t)
	store.users["user-sin-bodega"] = &entity.User{
		ID: "user-sin-bodega", CompanyID: testCompany, Role: entity.RoleSeller,
	}
	openSession(store, "session-1", "user-sin-bodega", dec("0"))

	resp, err := uc.CreateSale(context.Background(), testCompany, "user-sin-bodega", dto.CreateSaleRequest{
		Total:         dec("3000"),
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "simple-1", Quantity: dec("1"), UnitPrice: dec("3000"), LineTotal: dec("3000")}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.WarehouseID)
	assert.Empty(t, resp.CashRegisterSessionID)
	assert.Empty(t, store.movements)
	assert.Empty(t, store.cashTxs)
	assert.Len(t, store.sales, 1, "la venta igual queda persistida")
}

// Pago dividido: solo la porción cash entra al libro de caja.
func TestCreateSale_PagoDividido_SoloCashAlLibro(t *testing.T) {
	store, uc := buildFixture(t)
	openSession(store, "session-1", testUser, dec("10000"))

	resp, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		Total:         dec("10000"),
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "simple-1", Quantity: dec("1"), UnitPrice: dec("10000"), LineTotal: dec("10000")}},
		Payments: []dto.SalePaymentRequest{
			{Method: entity.PaymentMethodCash, Amount: dec("6000")},
			{Method: entity.PaymentMethodCard, Amount: dec("4000")},
		},
	})
	require.NoError(t, err)
	require.Len(t, store.cashTxs, 1)
	assert.True(t, store.cashTxs[0].Amount.Equal(dec("6000")),
		"solo la porción cash afecta el cajón")
	assert.Len(t, store.payments[resp.ID], 2)
}

// Sin desglose de pagos se sintetiza uno por el total con el método declarado.
func TestCreateSale_SinDesglose_SintetizaPagoUnico(t *testing.T) {
	store, uc := buildFixture(t)

	resp, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		Total:         dec("3000"),
		PaymentMethod: entity.PaymentMethodCard,
		Items:         []dto.SaleItemRequest{{ProductID: "simple-1", Quantity: dec("1"), UnitPrice: dec("3000"), LineTotal: dec("3000")}},
	})
	require.NoError(t, err)
	payments := store.payments[resp.ID]
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentMethodCard, payments[0].Method)
	assert.True(t, payments[0].Amount.Equal(dec("3000")))
	assert.Equal(t, "COP", payments[0].Currency)
	assert.Empty(t, store.cashTxs, "venta con tarjeta no toca el cajón")
}

// Pago cash pero sin sesión abierta: la venta procede sin asiento de caja.
func TestCreateSale_CashSinSesionAbierta_SinAsiento(t *testing.T) {
	store, uc := buildFixture(t)

	resp, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		Total:         dec("3000"),
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "simple-1", Quantity: dec("1"), UnitPrice: dec("3000"), LineTotal: dec("3000")}},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.CashRegisterSessionID)
	assert.Empty(t, store.cashTxs)
}

// Producto fraccionable acepta cantidades decimales.
func TestCreateSale_ProductoFraccionable_AceptaDecimales(t *testing.T) {
	store, uc := buildFixture(t)
	store.products["granel-1"] = &entity.Product{
		ID: "granel-1", CompanyID: testCompany, SKU: "G1", Name: "Queso al peso",
		Price: dec("28000"), UnitMeasure: "kg", AllowsFraction: true,
	}

	_, err := uc.CreateSale(context.Background(), testCompany, testUser, dto.CreateSaleRequest{
		Total:         dec("7000"),
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []dto.SaleItemRequest{{ProductID: "granel-1", Quantity: dec("0.25"), UnitPrice: dec("28000"), LineTotal: dec("7000")}},
	})
	require.NoError(t, err)
	assert.True(t, store.stock[stockKey(testCompany, testWarehouse, "granel-1")].Equal(dec("-0.25")))
}

func TestGetSale_DeOtraEmpresa_RetornaNotFound(t *testing.T) {
	store, uc := buildFixture(t)
	store.sales["sale-x"] = &entity.Sale{ID: "sale-x", CompanyID: "otra-empresa"}

	_, err := uc.GetSale(context.Background(), testCompany, "sale-x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
