package worker

import (
	"context"
	"log"

	"catalog-service/internal/broker"
	"catalog-service/internal/models"
	"catalog-service/internal/redisclient"
)

// CodeCacheWorker consumes catalog lifecycle events and keeps the Redis
// product-code sets aligned with the pending and approved stores. The cache
// is a fast negative filter only; the dedup guard always confirms misses
// against the database, so a lost event degrades latency, not correctness.
type CodeCacheWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	redis        *redisclient.Client
}

// NewCodeCacheWorker creates a new code cache worker
func NewCodeCacheWorker(consumer *broker.Consumer, redis *redisclient.Client) *CodeCacheWorker {
	w := &CodeCacheWorker{
		consumer: consumer,
		redis:    redis,
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnItemSubmitted(w.handleItemSubmitted)
	eventHandler.OnItemsApproved(w.handleItemsApproved)
	eventHandler.OnItemsRejected(w.handleItemsRejected)
	eventHandler.OnItemsResubmitted(w.handleItemsResubmitted)
	eventHandler.OnItemsRemoved(w.handleItemsRemoved)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *CodeCacheWorker) Start(ctx context.Context) error {
	log.Println("Starting code cache worker...")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CodeCacheWorker) Stop() error {
	log.Println("Stopping code cache worker...")
	return w.consumer.Close()
}

func codes(refs []models.ItemRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.ProductCode
	}
	return out
}

func (w *CodeCacheWorker) handleItemSubmitted(ctx context.Context, event *models.ItemSubmittedEvent) error {
	return w.redis.AddCodes(ctx, models.StorePending, event.Item.ProductCode)
}

func (w *CodeCacheWorker) handleItemsApproved(ctx context.Context, event *models.ItemsApprovedEvent) error {
	return w.redis.MoveCodes(ctx, models.StorePending, models.StoreApproved, codes(event.Items)...)
}

// Rejected items sit in the correction store; their codes stay reserved for
// the original submitter but no longer live in the pending set.
func (w *CodeCacheWorker) handleItemsRejected(ctx context.Context, event *models.ItemsRejectedEvent) error {
	return w.redis.RemoveCodes(ctx, models.StorePending, codes(event.Items)...)
}

func (w *CodeCacheWorker) handleItemsResubmitted(ctx context.Context, event *models.ItemsResubmittedEvent) error {
	return w.redis.AddCodes(ctx, models.StorePending, codes(event.Items)...)
}

func (w *CodeCacheWorker) handleItemsRemoved(ctx context.Context, event *models.ItemsRemovedEvent) error {
	return w.redis.RemoveCodes(ctx, models.StoreApproved, codes(event.Items)...)
}
