package cache

import (
	"context"
	"time"

	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

var _ catalog.RecipeCache = (*Noop)(nil)

// Noop caché nula: siempre miss. Se usa cuando Redis no está configurado.
type Noop struct{}

// NewNoop construye la caché nula.
func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) Get(_ context.Context, _, _ string) ([]*entity.ComponentLink, bool, error) {
	return nil, false, nil
}

func (Noop) Set(_ context.Context, _, _ string, _ []*entity.ComponentLink, _ time.Duration) error {
	return nil
}

func (Noop) Delete(_ context.Context, _, _ string) error {
	return nil
}
