package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/PuntoVenta-api/internal/application/dto"
	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

// UseCase casos de uso del catálogo: productos y recetas de compuestos.
type UseCase struct {
	productRepo repository.ProductRepository
	linkRepo    repository.ComponentLinkRepository
	resolver    *ComponentResolver
}

// NewUseCase construye el caso de uso.
func NewUseCase(productRepo repository.ProductRepository, linkRepo repository.ComponentLinkRepository, resolver *ComponentResolver) *UseCase {
	return &UseCase{productRepo: productRepo, linkRepo: linkRepo, resolver: resolver}
}

// CreateProduct crea un producto simple o compuesto.
func (uc *UseCase) CreateProduct(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		SKU:            in.SKU,
		Name:           in.Name,
		Description:    in.Description,
		Price:          in.Price,
		IsComposite:    in.IsComposite,
		UnitMeasure:    in.UnitMeasure,
		AllowsFraction: in.AllowsFraction,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID (scoped a la empresa).
func (uc *UseCase) GetProduct(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// ListProducts lista productos de la empresa con paginación.
func (uc *UseCase) ListProducts(ctx context.Context, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.productRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// AddComponent agrega un componente a la receta de un producto compuesto.
// Rechaza autorreferencia y ciclos: el grafo padre→componente debe ser un DAG,
// validado aquí al crear el vínculo y no al vender.
func (uc *UseCase) AddComponent(ctx context.Context, companyID, parentID string, in dto.AddComponentRequest) (*dto.ComponentResponse, error) {
	if in.ComponentProductID == "" || !in.QuantityPerUnit.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.ComponentProductID == parentID {
		return nil, domain.ErrComponentCycle
	}

	parent, err := uc.productRepo.GetByID(parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, domain.ErrNotFound
	}
	if parent.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	// Solo productos compuestos poseen filas de receta como padre.
	if !parent.IsComposite {
		return nil, domain.ErrInvalidInput
	}

	component, err := uc.productRepo.GetByID(in.ComponentProductID)
	if err != nil {
		return nil, err
	}
	if component == nil || component.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}

	if err := uc.checkNoCycle(companyID, parentID, in.ComponentProductID); err != nil {
		return nil, err
	}

	link := &entity.ComponentLink{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		ParentProductID:    parentID,
		ComponentProductID: in.ComponentProductID,
		QuantityPerUnit:    in.QuantityPerUnit,
		UnitCost:           in.UnitCost,
		CreatedAt:          time.Now(),
	}
	if err := uc.linkRepo.Create(link); err != nil {
		return nil, err
	}
	uc.resolver.Invalidate(ctx, companyID, parentID)
	return &dto.ComponentResponse{
		ID:                 link.ID,
		ComponentProductID: link.ComponentProductID,
		QuantityPerUnit:    link.QuantityPerUnit,
		UnitCost:           link.UnitCost,
	}, nil
}

// ListComponents devuelve la receta directa de un producto.
func (uc *UseCase) ListComponents(ctx context.Context, companyID, parentID string) ([]dto.ComponentResponse, error) {
	links, err := uc.resolver.Resolve(ctx, companyID, parentID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComponentResponse, 0, len(links))
	for _, l := range links {
		out = append(out, dto.ComponentResponse{
			ID:                 l.ID,
			ComponentProductID: l.ComponentProductID,
			QuantityPerUnit:    l.QuantityPerUnit,
			UnitCost:           l.UnitCost,
		})
	}
	return out, nil
}

// RemoveComponent quita un vínculo de la receta e invalida la caché del padre.
func (uc *UseCase) RemoveComponent(ctx context.Context, companyID, parentID, linkID string) error {
	parent, err := uc.productRepo.GetByID(parentID)
	if err != nil {
		return err
	}
	if parent == nil || parent.CompanyID != companyID {
		return domain.ErrNotFound
	}
	if err := uc.linkRepo.Delete(companyID, linkID); err != nil {
		return err
	}
	uc.resolver.Invalidate(ctx, companyID, parentID)
	return nil
}

// checkNoCycle recorre el grafo de componentes desde el candidato: si desde él
// se alcanza al padre, el vínculo nuevo cerraría un ciclo.
func (uc *UseCase) checkNoCycle(companyID, parentID, componentID string) error {
	visited := map[string]bool{}
	queue := []string{componentID}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == parentID {
			return domain.ErrComponentCycle
		}
		if visited[current] {
			continue
		}
		visited[current] = true
		links, err := uc.linkRepo.ListByParent(companyID, current)
		if err != nil {
			return err
		}
		for _, l := range links {
			queue = append(queue, l.ComponentProductID)
		}
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		SKU:            p.SKU,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		IsComposite:    p.IsComposite,
		UnitMeasure:    p.UnitMeasure,
		AllowsFraction: p.AllowsFraction,
	}
}
