// util/cache_service.go

package util

import (
	"context"

	"github.com/atriumhq/atrium/db"
	"github.com/atriumhq/atrium/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetEmployee(ctx context.Context, userID string) (*model.Employee, error) {
	return db.GetCachedEmployee(ctx, userID)
}

func (c *CacheService) SetEmployee(ctx context.Context, employee model.Employee) error {
	return db.CacheEmployee(ctx, &employee)
}

func (c *CacheService) DeleteEmployee(ctx context.Context, userID string) error {
	return db.DeleteCachedEmployee(ctx, userID)
}
