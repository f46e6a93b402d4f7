package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MatchCache is the slice of the redis wrapper the usecases need. A nil or
// unavailable cache is transparent: lookups miss, writes are dropped.
type MatchCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
	InvalidateUserMatches(ctx context.Context, userID string) error
	InvalidateJobMatches(ctx context.Context, jobID string) error
}

func matchCacheKey(userID, jobID uuid.UUID) string {
	return fmt.Sprintf("match:%s:%s", userID, jobID)
}

func fitCacheKey(userID, jobID uuid.UUID) string {
	return fmt.Sprintf("fit:%s:%s", userID, jobID)
}
