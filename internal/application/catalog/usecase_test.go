package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

const testCompany = "company-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ── Fakes ──

type memProductRepo struct {
	products map[string]*entity.Product
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *memProductRepo) GetByIDs(ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *memProductRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.CompanyID == companyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memLinkRepo struct {
	links     map[string][]*entity.ComponentLink // clave company|parent
	listCalls int
}

var _ repository.ComponentLinkRepository = (*memLinkRepo)(nil)

func (r *memLinkRepo) Create(link *entity.ComponentLink) error {
	key := link.CompanyID + "|" + link.ParentProductID
	r.links[key] = append(r.links[key], link)
	return nil
}

func (r *memLinkRepo) ListByParent(companyID, parentProductID string) ([]*entity.ComponentLink, error) {
	r.listCalls++
	return r.links[companyID+"|"+parentProductID], nil
}

func (r *memLinkRepo) Delete(companyID, id string) error {
	for key, links := range r.links {
		for i, l := range links {
			if l.ID == id {
				r.links[key] = append(links[:i], links[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

// mapCache caché en memoria que cuenta hits para verificar el cache-aside.
type mapCache struct {
	entries map[string][]*entity.ComponentLink
	hits    int
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]*entity.ComponentLink{}}
}

func (c *mapCache) Get(_ context.Context, companyID, productID string) ([]*entity.ComponentLink, bool, error) {
	links, ok := c.entries[companyID+"|"+productID]
	if ok {
		c.hits++
	}
	return links, ok, nil
}

func (c *mapCache) Set(_ context.Context, companyID, productID string, links []*entity.ComponentLink, _ time.Duration) error {
	c.entries[companyID+"|"+productID] = links
	return nil
}

func (c *mapCache) Delete(_ context.Context, companyID, productID string) error {
	delete(c.entries, companyID+"|"+productID)
	return nil
}

func newFixture() (*memProductRepo, *memLinkRepo, *mapCache, *catalog.UseCase) {
	productRepo := &memProductRepo{products: map[string]*entity.Product{}}
	linkRepo := &memLinkRepo{links: map[string][]*entity.ComponentLink{}}
	cache := newMapCache()
	resolver := catalog.NewComponentResolver(linkRepo, cache)
	return productRepo, linkRepo, cache, catalog.NewUseCase(productRepo, linkRepo, resolver)
}

func seedProduct(repo *memProductRepo, id string, composite bool) {
	repo.products[id] = &entity.Product{
		ID: id, CompanyID: testCompany, SKU: "sku-" + id, Name: "producto " + id,
		Price: dec("1000"), IsComposite: composite,
	}
}

// ── CreateProduct ──

func TestCreateProduct_SinSKU_RetornaInvalidInput(t *testing.T) {
	_, _, _, uc := newFixture()
	_, err := uc.CreateProduct(context.Background(), testCompany, dto.CreateProductRequest{Name: "sin sku"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateProduct_PrecioNegativo_RetornaInvalidInput(t *testing.T) {
	_, _, _, uc := newFixture()
	_, err := uc.CreateProduct(context.Background(), testCompany, dto.CreateProductRequest{
		SKU: "X1", Name: "precio malo", Price: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── AddComponent: validación de DAG ──

func TestAddComponent_Autoreferencia_Rechazada(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	seedProduct(productRepo, "combo", true)

	_, err := uc.AddComponent(context.Background(), testCompany, "combo", dto.AddComponentRequest{
		ComponentProductID: "combo", QuantityPerUnit: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrComponentCycle)
}

func TestAddComponent_CicloDirecto_Rechazado(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	seedProduct(productRepo, "a", true)
	seedProduct(productRepo, "b", true)

	_, err := uc.AddComponent(context.Background(), testCompany, "a", dto.AddComponentRequest{
		ComponentProductID: "b", QuantityPerUnit: dec("1"),
	})
	require.NoError(t, err)

	// b→a cerraría el ciclo a→b→a.
	_, err = uc.AddComponent(context.Background(), testCompany, "b", dto.AddComponentRequest{
		ComponentProductID: "a", QuantityPerUnit: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrComponentCycle)
}

func TestAddComponent_CicloLargo_Rechazado(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	for _, id := range []string{"a", "b", "c"} {
		seedProduct(productRepo, id, true)
	}
	// Cadena a→b→c.
	_, err := uc.AddComponent(context.Background(), testCompany, "a", dto.AddComponentRequest{
		ComponentProductID: "b", QuantityPerUnit: dec("1"),
	})
	require.NoError(t, err)
	_, err = uc.AddComponent(context.Background(), testCompany, "b", dto.AddComponentRequest{
		ComponentProductID: "c", QuantityPerUnit: dec("1"),
	})
	require.NoError(t, err)

	// c→a completaría el ciclo a tres saltos.
	_, err = uc.AddComponent(context.Background(), testCompany, "c", dto.AddComponentRequest{
		ComponentProductID: "a", QuantityPerUnit: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrComponentCycle)
}

func TestAddComponent_DiamanteSinCiclo_Permitido(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	for _, id := range []string{"raiz", "izq", "der", "hoja"} {
		seedProduct(productRepo, id, true)
	}
	// raiz→izq→hoja y raiz→der→hoja: DAG válido, hoja compartida.
	for _, pair := range [][2]string{{"raiz", "izq"}, {"raiz", "der"}, {"izq", "hoja"}, {"der", "hoja"}} {
		_, err := uc.AddComponent(context.Background(), testCompany, pair[0], dto.AddComponentRequest{
			ComponentProductID: pair[1], QuantityPerUnit: dec("1"),
		})
		require.NoError(t, err, "%s→%s no forma ciclo", pair[0], pair[1])
	}
}

func TestAddComponent_PadreNoCompuesto_Rechazado(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	seedProduct(productRepo, "simple", false)
	seedProduct(productRepo, "otro", false)

	_, err := uc.AddComponent(context.Background(), testCompany, "simple", dto.AddComponentRequest{
		ComponentProductID: "otro", QuantityPerUnit: dec("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"solo productos compuestos tienen receta")
}

func TestAddComponent_CantidadNoPositiva_Rechazada(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	seedProduct(productRepo, "combo", true)
	seedProduct(productRepo, "parte", false)

	_, err := uc.AddComponent(context.Background(), testCompany, "combo", dto.AddComponentRequest{
		ComponentProductID: "parte", QuantityPerUnit: dec("0"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ── Resolver: cache-aside e invalidación ──

func TestResolver_SegundaLecturaVieneDeCache(t *testing.T) {
	productRepo, linkRepo, cache, uc := newFixture()
	seedProduct(productRepo, "combo", true)
	seedProduct(productRepo, "parte", false)
	_, err := uc.AddComponent(context.Background(), testCompany, "combo", dto.AddComponentRequest{
		ComponentProductID: "parte", QuantityPerUnit: dec("2"),
	})
	require.NoError(t, err)

	first, err := uc.ListComponents(context.Background(), testCompany, "combo")
	require.NoError(t, err)
	callsAfterFirst := linkRepo.listCalls

	second, err := uc.ListComponents(context.Background(), testCompany, "combo")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, linkRepo.listCalls, "la segunda lectura no debe ir al repo")
	assert.Positive(t, cache.hits)
}

func TestAddComponent_InvalidaCacheDelPadre(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	seedProduct(productRepo, "combo", true)
	seedProduct(productRepo, "parte1", false)
	seedProduct(productRepo, "parte2", false)

	_, err := uc.AddComponent(context.Background(), testCompany, "combo", dto.AddComponentRequest{
		ComponentProductID: "parte1", QuantityPerUnit: dec("1"),
	})
	require.NoError(t, err)

	// Cachear la receta actual.
	links, err := uc.ListComponents(context.Background(), testCompany, "combo")
	require.NoError(t, err)
	require.Len(t, links, 1)

	// Agregar otro componente debe invalidar y la lectura siguiente ver ambos.
	_, err = uc.AddComponent(context.Background(), testCompany, "combo", dto.AddComponentRequest{
		ComponentProductID: "parte2", QuantityPerUnit: dec("3"),
	})
	require.NoError(t, err)

	links, err = uc.ListComponents(context.Background(), testCompany, "combo")
	require.NoError(t, err)
	assert.Len(t, links, 2, "la receta cacheada vieja no debe sobrevivir al cambio")
}

func TestRemoveComponent_InvalidaCache(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	seedProduct(productRepo, "combo", true)
	seedProduct(productRepo, "parte", false)
	link, err := uc.AddComponent(context.Background(), testCompany, "combo", dto.AddComponentRequest{
		ComponentProductID: "parte", QuantityPerUnit: dec("1"),
	})
	require.NoError(t, err)

	_, err = uc.ListComponents(context.Background(), testCompany, "combo")
	require.NoError(t, err)

	require.NoError(t, uc.RemoveComponent(context.Background(), testCompany, "combo", link.ID))

	links, err := uc.ListComponents(context.Background(), testCompany, "combo")
	require.NoError(t, err)
	assert.Empty(t, links)
}

// Producto simple: receta vacía sin error.
func TestListComponents_ProductoSimple_RecetaVacia(t *testing.T) {
	productRepo, _, _, uc := newFixture()
	seedProduct(productRepo, "simple", false)

	links, err := uc.ListComponents(context.Background(), testCompany, "simple")
	require.NoError(t, err)
	assert.Empty(t, links)
}
