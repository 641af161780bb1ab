package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/PuntoVenta-api/internal/application/catalog"
	"github.com/jhoicas/PuntoVenta-api/internal/domain/entity"
)

var _ catalog.RecipeCache = (*RedisCache)(nil)

// RedisCache caché de recetas sobre Redis. Las recetas se serializan como
// JSON bajo la clave recipe:<empresa>:<producto>.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache construye la caché y verifica la conexión.
func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("conectar redis: %w", err)
	}
	return &RedisCache{client: client}, nil
}

func recipeKey(companyID, productID string) string {
	return fmt.Sprintf("recipe:%s:%s", companyID, productID)
}

// Get devuelve la receta cacheada; ok=false en miss.
func (c *RedisCache) Get(ctx context.Context, companyID, productID string) ([]*entity.ComponentLink, bool, error) {
	raw, err := c.client.Get(ctx, recipeKey(companyID, productID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("leer receta cacheada: %w", err)
	}
	var links []*entity.ComponentLink
	if err := json.Unmarshal(raw, &links); err != nil {
		// Entrada corrupta: tratar como miss y dejar que el TTL la expire.
		return nil, false, nil
	}
	return links, true, nil
}

// Set guarda la receta con TTL.
func (c *RedisCache) Set(ctx context.Context, companyID, productID string, links []*entity.ComponentLink, ttl time.Duration) error {
	raw, err := json.Marshal(links)
	if err != nil {
		return fmt.Errorf("serializar receta: %w", err)
	}
	if err := c.client.Set(ctx, recipeKey(companyID, productID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("guardar receta cacheada: %w", err)
	}
	return nil
}

// Delete invalida la receta cacheada.
func (c *RedisCache) Delete(ctx context.Context, companyID, productID string) error {
	if err := c.client.Del(ctx, recipeKey(companyID, productID)).Err(); err != nil {
		return fmt.Errorf("invalidar receta cacheada: %w", err)
	}
	return nil
}

// Close cierra la conexión con Redis.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
