package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// RecipeCache puerto de caché para recetas de productos compuestos
// (cache-aside; las recetas cambian poco y se leen en cada venta).
type RecipeCache interface {
	Get(ctx context.Context, companyID, productID string) ([]*entity.ComponentLink, bool, error)
	Set(ctx context.Context, companyID, productID string, links []*entity.ComponentLink, ttl time.Duration) error
	Delete(ctx context.Context, companyID, productID string) error
}

// recipeTTL vida de la receta en caché; la invalidación explícita al crear o
// borrar vínculos es la vía principal, el TTL es solo cota superior.
const recipeTTL = 15 * time.Minute

// ComponentResolver expande un producto compuesto a su receta fija de
// componentes con cantidad por unidad. Los productos simples resuelven a
// lista vacía.
type ComponentResolver struct {
	linkRepo repository.ComponentLinkRepository
	cache    RecipeCache
}

// NewComponentResolver construye el resolver. cache puede ser la
// implementación noop si no hay Redis configurado.
func NewComponentResolver(linkRepo repository.ComponentLinkRepository, cache RecipeCache) *ComponentResolver {
	return &ComponentResolver{linkRepo: linkRepo, cache: cache}
}

// Resolve devuelve los componentes directos del producto. En una venta de
// cantidad Q, cada componente recibe delta = −(QuantityPerUnit × Q) además del
// ajuste de la fila propia del padre; la anulación invierte ambos.
func (r *ComponentResolver) Resolve(ctx context.Context, companyID, productID string) ([]*entity.ComponentLink, error) {
	if cached, ok, err := r.cache.Get(ctx, companyID, productID); err == nil && ok {
		return cached, nil
	}
	links, err := r.linkRepo.ListByParent(companyID, productID)
	if err != nil {
		return nil, fmt.Errorf("resolver componentes: %w", err)
	}
	_ = r.cache.Set(ctx, companyID, productID, links, recipeTTL)
	return links, nil
}

// Invalidate descarta la receta cacheada de un producto (tras crear o borrar vínculos).
func (r *ComponentResolver) Invalidate(ctx context.Context, companyID, productID string) {
	_ = r.cache.Delete(ctx, companyID, productID)
}
