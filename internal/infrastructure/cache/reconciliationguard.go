// Package cache holds redis-backed coordination helpers.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"netbill/internal/shared/logger"
)

const guardKeyPrefix = "netbill:reconcile:"

// ReconciliationGuard serializes mark-paid runs per invoice across
// processes with a SetNX lease. It is advisory only: the conditional
// update on the invoice row remains the correctness backstop, the guard
// just avoids duplicate side-effect work under concurrent webhooks.
type ReconciliationGuard struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewReconciliationGuard(client *redis.Client, ttl time.Duration, logger logger.Interface) *ReconciliationGuard {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &ReconciliationGuard{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (g *ReconciliationGuard) Acquire(ctx context.Context, invoiceNumber string) (bool, error) {
	return g.client.SetNX(ctx, guardKeyPrefix+invoiceNumber, 1, g.ttl).Result()
}

func (g *ReconciliationGuard) Release(ctx context.Context, invoiceNumber string) {
	if err := g.client.Del(ctx, guardKeyPrefix+invoiceNumber).Err(); err != nil {
		// The TTL reclaims a leaked lease.
		g.logger.Warnw("failed to release reconciliation guard",
			"invoice", invoiceNumber, "error", err)
	}
}
