package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/PuntoVenta-api/internal/domain"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/repository"
)

var _ repository.ComponentLinkRepository = (*ComponentLinkRepo)(nil)

// ComponentLinkRepo implementación de la receta de compuestos sobre
// PostgreSQL (usable con pool o tx).
type ComponentLinkRepo struct {
	q Querier
}

// NewComponentLinkRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComponentLinkRepository(q Querier) *ComponentLinkRepo {
	return &ComponentLinkRepo{q: q}
}

// Create persiste un vínculo padre→componente. Un CHECK en la tabla rechaza
// la autorreferencia y el par (padre, componente) es único.
func (r *ComponentLinkRepo) Create(link *entity.ComponentLink) error {
	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	query := `
		INSERT INTO component_links (id, company_id, parent_product_id, component_product_id, quantity_per_unit, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		link.ID, link.CompanyID, link.ParentProductID, link.ComponentProductID,
		link.QuantityPerUnit, link.UnitCost, link.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert component link: %w", err)
	}
	return nil
}

// ListByParent devuelve los componentes directos del padre; vacío para simples.
func (r *ComponentLinkRepo) ListByParent(companyID, parentProductID string) ([]*entity.ComponentLink, error) {
	query := `
		SELECT id, company_id, parent_product_id, component_product_id, quantity_per_unit, unit_cost, created_at
		FROM component_links
		WHERE company_id = $1 AND parent_product_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, companyID, parentProductID)
	if err != nil {
		return nil, fmt.Errorf("list component links: %w", err)
	}
	defer rows.Close()
	var list []*entity.ComponentLink
	for rows.Next() {
		var l entity.ComponentLink
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.ParentProductID, &l.ComponentProductID,
			&l.QuantityPerUnit, &l.UnitCost, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan component link: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Delete elimina un vínculo de la receta.
func (r *ComponentLinkRepo) Delete(companyID, id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM component_links WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete component link: %w", err)
	}
	return nil
}
