// Package sequence mints globally unique human-readable identifiers such as
// service ids (SRV-2026-007) and review codes (REV-2026-003). The counter
// increment must be a single atomic step: sampling "count of existing rows"
// lets two concurrent creations observe the same count and mint colliding
// ids.
package sequence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/spec-kit/field-crm/pkg/util/errorutil"
)

// Allocator mints unique identifiers per kind prefix.
type Allocator interface {
	Next(ctx context.Context, prefix string) (string, error)
}

// Known prefixes.
const (
	PrefixService = "SRV"
	PrefixReview  = "REV"
)

type redisAllocator struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisAllocator builds an allocator backed by redis INCR, which is
// atomic per key. Counters are scoped per prefix and calendar year.
func NewRedisAllocator(client *redis.Client) Allocator {
	return &redisAllocator{client: client, now: time.Now}
}

func (a *redisAllocator) Next(ctx context.Context, prefix string) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return "", apperrors.NewValidationError("sequence prefix required", nil)
	}
	year := a.now().Year()
	key := fmt.Sprintf("seq:%s:%d", prefix, year)
	n, err := a.client.Incr(ctx, key).Result()
	if err != nil {
		return "", apperrors.NewUnavailable("sequence counter unreachable", err)
	}
	return fmt.Sprintf("%s-%d-%03d", prefix, year, n), nil
}
