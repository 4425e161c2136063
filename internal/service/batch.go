package service

import (
	"context"
	"strings"
	"time"

	"catalog-service/internal/derive"
	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"go.uber.org/zap"
)

// BatchFailure describes one row of a batch that was not inserted.
type BatchFailure struct {
	Index       int    `json:"index"`
	ProductCode string `json:"product_code"`
	Reason      string `json:"reason"`
}

// BatchResult summarizes a batch submission. Rows fail independently; an
// accepted row stays accepted even when a later row fails.
type BatchResult struct {
	Inserted int            `json:"inserted"`
	Failures []BatchFailure `json:"failures"`
}

// SubmitBatch registers many items at once. Deduplication is evaluated up
// front against both record stores and against the batch itself, then rows
// are inserted one by one. The batch is deliberately not one transaction:
// a bad row reports a failure and the rest of the file still loads.
func (s *LifecycleService) SubmitBatch(ctx context.Context, items []models.CatalogItem, actor models.Actor) (*BatchResult, error) {
	ctx, span := util.StartSpan(ctx, "LifecycleService.SubmitBatch")
	defer span.End()
	defer observe("submit_batch", time.Now())

	result := &BatchResult{}
	if len(items) == 0 {
		return result, nil
	}

	codes := make([]string, len(items))
	for i := range items {
		items[i].ProductCode = strings.TrimSpace(items[i].ProductCode)
		codes[i] = items[i].ProductCode
	}

	inBatch := FlagBatchDuplicates(codes)
	pending, approved, err := s.guard.FetchExistingCodes(ctx, codes)
	if err != nil {
		util.TransitionsFailedTotal.WithLabelValues("submit_batch", "store_error").Inc()
		return nil, err
	}

	for i := range items {
		item := &items[i]

		if err := validateRequired(item); err != nil {
			result.Failures = append(result.Failures, BatchFailure{
				Index: i, ProductCode: item.ProductCode, Reason: err.Error(),
			})
			continue
		}

		var origin string
		if _, ok := approved[item.ProductCode]; ok {
			origin = models.StoreApproved
		} else if _, ok := pending[item.ProductCode]; ok {
			origin = models.StorePending
		} else if _, ok := inBatch[i]; ok {
			origin = "batch"
		}
		if origin != "" {
			util.DuplicateCodesBlockedTotal.WithLabelValues(origin).Inc()
			dup := &models.DuplicateCodeError{Code: item.ProductCode, Origin: origin}
			result.Failures = append(result.Failures, BatchFailure{
				Index: i, ProductCode: item.ProductCode, Reason: dup.Error(),
			})
			continue
		}

		if _, dropped := derive.ParseSpecification(item.Specification); dropped > 0 {
			s.logger.Warn("Specification has malformed segments, dropping them",
				zap.String("product_code", item.ProductCode),
				zap.Int("dropped", dropped))
		}
		computeDerived(item)
		item.RegisteredBy = actor.Username

		if err := s.store.InsertPending(ctx, item); err != nil {
			classified := models.ClassifyStoreError(err)
			util.TransitionsFailedTotal.WithLabelValues("submit_batch", "store_error").Inc()
			if models.IsRetryable(classified) {
				// A transient failure mid-batch would silently drop every
				// remaining row; surface it so the caller can retry the file.
				return nil, classified
			}
			result.Failures = append(result.Failures, BatchFailure{
				Index: i, ProductCode: item.ProductCode, Reason: classified.Error(),
			})
			continue
		}

		util.ItemsSubmittedTotal.Inc()
		result.Inserted++

		event := &models.ItemSubmittedEvent{
			BaseEvent: baseEvent(models.EventTypeItemSubmitted),
			Item:      models.ItemRef{ItemID: item.ID, ProductCode: item.ProductCode},
			Actor:     actor,
		}
		if err := s.eventPublisher.PublishItemSubmitted(ctx, event); err != nil {
			s.logger.Error("Failed to publish ItemSubmitted event", zap.Error(err))
		}
	}

	s.logger.Info("Batch submission finished",
		zap.Int("total", len(items)),
		zap.Int("inserted", result.Inserted),
		zap.Int("failed", len(result.Failures)),
		zap.String("actor", actor.Username))
	return result, nil
}
