package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"catalog-service/internal/models"
	"catalog-service/internal/util"

	"go.uber.org/zap"
)

// ListMissingSupplyLabel returns the approved items still lacking a supply
// label, the backlog the fill operation works through.
func (s *LifecycleService) ListMissingSupplyLabel(ctx context.Context) ([]models.CatalogItem, error) {
	items, err := s.store.ListMissingSupplyLabel(ctx)
	if err != nil {
		return nil, models.ClassifyStoreError(err)
	}
	return items, nil
}

// normalizeSupplyLabels trims the proposed labels and drops blank ones; an
// empty label is not a fill.
func normalizeSupplyLabels(labels map[int64]string) map[int64]string {
	out := make(map[int64]string, len(labels))
	for id, label := range labels {
		if label = strings.TrimSpace(label); label != "" {
			out[id] = label
		}
	}
	return out
}

// FillSupplyLabels assigns supply labels to approved items that have none
// yet, in one transaction. Rows that already carry a label are left alone
// and reported in the returned count gap; existing labels are never
// overwritten through this path (UpdateApproved handles corrections).
func (s *LifecycleService) FillSupplyLabels(ctx context.Context, labels map[int64]string, actor models.Actor) (int, error) {
	ctx, span := util.StartSpan(ctx, "LifecycleService.FillSupplyLabels")
	defer span.End()
	defer observe("fill_supply_label", time.Now())

	labels = normalizeSupplyLabels(labels)
	if len(labels) == 0 {
		return 0, nil
	}

	ids := make([]int64, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fail := func(reason string, err error) (int, error) {
		util.TransitionsFailedTotal.WithLabelValues("fill_supply_label", reason).Inc()
		return 0, models.ClassifyStoreError(err)
	}

	tx, err := s.store.BeginTxx(ctx)
	if err != nil {
		return fail("begin", err)
	}
	defer tx.Rollback()

	filled := 0
	for _, id := range ids {
		changed, err := s.store.FillSupplyLabelTx(ctx, tx, id, labels[id], actor)
		if err != nil {
			return fail("edit", err)
		}
		if changed {
			filled++
		}
	}

	if err := tx.Commit(); err != nil {
		return fail("commit", err)
	}

	util.ItemsUpdatedTotal.Add(float64(filled))
	s.logger.Info("Supply labels filled",
		zap.Int("requested", len(labels)),
		zap.Int("filled", filled),
		zap.String("actor", actor.Username))
	return filled, nil
}
