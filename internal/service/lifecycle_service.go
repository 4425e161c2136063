package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"catalog-service/internal/broker"
	"catalog-service/internal/derive"
	"catalog-service/internal/models"
	"catalog-service/internal/store"
	"catalog-service/internal/util"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// LifecycleService orchestrates catalog item transitions between the four
// record stores. Each transition runs inside one database transaction: the
// destination insert, metadata stamps, audit entries and source delete all
// commit together or not at all.
type LifecycleService struct {
	store          *store.Store
	guard          *DedupGuard
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewLifecycleService creates a new lifecycle service
func NewLifecycleService(st *store.Store, guard *DedupGuard, eventPublisher *broker.EventPublisher) *LifecycleService {
	return &LifecycleService{
		store:          st,
		guard:          guard,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// FieldEdits maps store column names to new values for an edit operation.
type FieldEdits map[string]interface{}

// Business columns an editor may change. Identity, audit and rejection
// columns are immutable; derived fields are recomputed, never edited.
var editableColumns = map[string]struct{}{
	"reference":            {},
	"code_type":            {},
	"product_code":         {},
	"grp":                  {},
	"category":             {},
	"segment":              {},
	"family":               {},
	"subfamily":            {},
	"supply_label":         {},
	"item":                 {},
	"specification":        {},
	"brand":                {},
	"packaging":            {},
	"package_qty":          {},
	"quantity":             {},
	"unit":                 {},
	"commercial_packaging": {},
	"commercial_qty":       {},
}

// Required fields for registration; everything except reference and
// supply_label, with zero quantities treated as missing.
var requiredStringFields = []struct {
	column string
	value  func(*models.CatalogItem) string
}{
	{"grp", func(i *models.CatalogItem) string { return i.Group }},
	{"category", func(i *models.CatalogItem) string { return i.Category }},
	{"segment", func(i *models.CatalogItem) string { return i.Segment }},
	{"family", func(i *models.CatalogItem) string { return i.Family }},
	{"subfamily", func(i *models.CatalogItem) string { return i.Subfamily }},
	{"code_type", func(i *models.CatalogItem) string { return i.CodeType }},
	{"product_code", func(i *models.CatalogItem) string { return i.ProductCode }},
	{"item", func(i *models.CatalogItem) string { return i.Item }},
	{"specification", func(i *models.CatalogItem) string { return i.Specification }},
	{"brand", func(i *models.CatalogItem) string { return i.Brand }},
	{"packaging", func(i *models.CatalogItem) string { return i.Packaging }},
	{"unit", func(i *models.CatalogItem) string { return i.Unit }},
	{"commercial_packaging", func(i *models.CatalogItem) string { return i.CommercialPackaging }},
}

func validateRequired(item *models.CatalogItem) error {
	var missing []string
	for _, f := range requiredStringFields {
		if strings.TrimSpace(f.value(item)) == "" {
			missing = append(missing, f.column)
		}
	}
	if item.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if item.CommercialQty <= 0 {
		missing = append(missing, "commercial_qty")
	}
	if item.PackageQty <= 0 {
		missing = append(missing, "package_qty")
	}
	if len(missing) > 0 {
		return &models.ValidationError{Missing: missing}
	}
	return nil
}

// computeDerived refreshes all three derived fields from the item's current
// source attributes.
func computeDerived(item *models.CatalogItem) {
	item.Description = derive.Description(item.Specification)
	item.Synonym = derive.Synonym(item.Item, item.Description, item.Brand,
		item.Quantity, item.Unit, item.Packaging,
		item.CommercialQty, item.CommercialPackaging)
	item.Keywords = derive.Keywords(item.Subfamily, item.Item, item.Brand,
		item.Packaging, item.Quantity, item.Unit, item.Family)
}

func observe(operation string, start time.Time) {
	util.TransitionLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func baseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// uniqueIDs drops repeated ids, keeping first-seen order. A duplicated id in
// one request must count once against the copy and delete totals.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func itemRefs(items []models.CatalogItem) []models.ItemRef {
	refs := make([]models.ItemRef, len(items))
	for i, it := range items {
		refs[i] = models.ItemRef{ItemID: it.ID, ProductCode: it.ProductCode}
	}
	return refs
}

// Submit registers a new item into the pending store. Validation and the
// dedup guard run before any mutation; nothing is written on failure.
func (s *LifecycleService) Submit(ctx context.Context, item *models.CatalogItem, actor models.Actor) error {
	ctx, span := util.StartSpan(ctx, "LifecycleService.Submit")
	defer span.End()
	defer observe("submit", time.Now())

	item.ProductCode = strings.TrimSpace(item.ProductCode)
	if err := validateRequired(item); err != nil {
		util.TransitionsFailedTotal.WithLabelValues("submit", "validation").Inc()
		return err
	}

	exists, origin, err := s.guard.CheckCodeAvailable(ctx, item.ProductCode)
	if err != nil {
		util.TransitionsFailedTotal.WithLabelValues("submit", "store_error").Inc()
		return err
	}
	if exists {
		util.DuplicateCodesBlockedTotal.WithLabelValues(origin).Inc()
		return &models.DuplicateCodeError{Code: item.ProductCode, Origin: origin}
	}

	if _, dropped := derive.ParseSpecification(item.Specification); dropped > 0 {
		s.logger.Warn("Specification has malformed segments, dropping them",
			zap.String("product_code", item.ProductCode),
			zap.Int("dropped", dropped))
	}
	computeDerived(item)
	item.RegisteredBy = actor.Username

	if err := s.store.InsertPending(ctx, item); err != nil {
		util.TransitionsFailedTotal.WithLabelValues("submit", "store_error").Inc()
		return models.ClassifyStoreError(err)
	}

	util.ItemsSubmittedTotal.Inc()
	s.logger.Info("Item submitted",
		zap.Int64("item_id", item.ID),
		zap.String("product_code", item.ProductCode))

	event := &models.ItemSubmittedEvent{
		BaseEvent: baseEvent(models.EventTypeItemSubmitted),
		Item:      models.ItemRef{ItemID: item.ID, ProductCode: item.ProductCode},
		Actor:     actor,
	}
	if err := s.eventPublisher.PublishItemSubmitted(ctx, event); err != nil {
		s.logger.Error("Failed to publish ItemSubmitted event", zap.Error(err))
	}
	return nil
}

// Approve moves pending items into the approved catalog. The whole id set is
// one atomic unit: copy, approval stamp, one validation_log entry per id and
// the source delete commit together.
func (s *LifecycleService) Approve(ctx context.Context, ids []int64, actor models.Actor, note string) error {
	ctx, span := util.StartSpan(ctx, "LifecycleService.Approve")
	defer span.End()
	defer observe("approve", time.Now())

	ids = uniqueIDs(ids)
	items, err := s.moveBatch(ctx, moveRequest{
		operation:   "approve",
		source:      models.StorePending,
		destination: models.StoreApproved,
		ids:         ids,
		stamp: func(txc txContext) error {
			return s.store.StampApprovalTx(txc.ctx, txc.tx, ids, actor)
		},
		audit: func(txc txContext, item *models.CatalogItem) error {
			return s.store.InsertValidationLogTx(txc.ctx, txc.tx, &models.ValidationLog{
				ItemID:        item.ID,
				ProductCode:   item.ProductCode,
				Decision:      models.DecisionApproved,
				Origin:        models.StorePending,
				Destination:   models.StoreApproved,
				Observation:   note,
				ActorUsername: actor.Username,
				ActorName:     actor.Name,
			})
		},
	})
	if err != nil {
		return err
	}

	util.ItemsApprovedTotal.Add(float64(len(items)))
	s.logger.Info("Items approved",
		zap.Int("count", len(items)),
		zap.String("actor", actor.Username))

	event := &models.ItemsApprovedEvent{
		BaseEvent:   baseEvent(models.EventTypeItemsApproved),
		Items:       itemRefs(items),
		Actor:       actor,
		Observation: note,
	}
	if err := s.eventPublisher.PublishItemsApproved(ctx, event); err != nil {
		s.logger.Error("Failed to publish ItemsApproved event", zap.Error(err))
	}
	return nil
}

// Reject moves pending items into the correction store, stamping the
// rejection actor, timestamp and reason, with one rejection_log entry per id.
func (s *LifecycleService) Reject(ctx context.Context, ids []int64, actor models.Actor, reason string) error {
	ctx, span := util.StartSpan(ctx, "LifecycleService.Reject")
	defer span.End()
	defer observe("reject", time.Now())

	ids = uniqueIDs(ids)
	items, err := s.moveBatch(ctx, moveRequest{
		operation:   "reject",
		source:      models.StorePending,
		destination: models.StoreCorrection,
		ids:         ids,
		stamp: func(txc txContext) error {
			return s.store.StampRejectionTx(txc.ctx, txc.tx, ids, actor, reason)
		},
		audit: func(txc txContext, item *models.CatalogItem) error {
			return s.store.InsertRejectionLogTx(txc.ctx, txc.tx, &models.RejectionLog{
				ItemID:        item.ID,
				ProductCode:   item.ProductCode,
				Origin:        models.StorePending,
				Destination:   models.StoreCorrection,
				Reason:        reason,
				ActorUsername: actor.Username,
				ActorName:     actor.Name,
			})
		},
	})
	if err != nil {
		return err
	}

	util.ItemsRejectedTotal.Add(float64(len(items)))
	s.logger.Info("Items rejected",
		zap.Int("count", len(items)),
		zap.String("actor", actor.Username))

	event := &models.ItemsRejectedEvent{
		BaseEvent: baseEvent(models.EventTypeItemsRejected),
		Items:     itemRefs(items),
		Actor:     actor,
		Reason:    reason,
	}
	if err := s.eventPublisher.PublishItemsRejected(ctx, event); err != nil {
		s.logger.Error("Failed to publish ItemsRejected event", zap.Error(err))
	}
	return nil
}

// Remove archives approved items into the removed store with one removal_log
// entry per id, denormalizing product code and supply label for later lookup.
func (s *LifecycleService) Remove(ctx context.Context, ids []int64, actor models.Actor, reason string) error {
	ctx, span := util.StartSpan(ctx, "LifecycleService.Remove")
	defer span.End()
	defer observe("remove", time.Now())

	ids = uniqueIDs(ids)
	items, err := s.moveBatch(ctx, moveRequest{
		operation:   "remove",
		source:      models.StoreApproved,
		destination: models.StoreRemoved,
		ids:         ids,
		audit: func(txc txContext, item *models.CatalogItem) error {
			return s.store.InsertRemovalLogTx(txc.ctx, txc.tx, &models.RemovalLog{
				ItemID:        item.ID,
				ProductCode:   item.ProductCode,
				SupplyLabel:   item.SupplyLabel,
				Reason:        reason,
				ActorUsername: actor.Username,
				ActorName:     actor.Name,
			})
		},
	})
	if err != nil {
		return err
	}

	util.ItemsRemovedTotal.Add(float64(len(items)))
	s.logger.Info("Items removed from catalog",
		zap.Int("count", len(items)),
		zap.String("actor", actor.Username))

	event := &models.ItemsRemovedEvent{
		BaseEvent: baseEvent(models.EventTypeItemsRemoved),
		Items:     itemRefs(items),
		Actor:     actor,
		Reason:    reason,
	}
	if err := s.eventPublisher.PublishItemsRemoved(ctx, event); err != nil {
		s.logger.Error("Failed to publish ItemsRemoved event", zap.Error(err))
	}
	return nil
}

type txContext struct {
	ctx context.Context
	tx  *sqlx.Tx
}

type moveRequest struct {
	operation   string
	source      string
	destination string
	ids         []int64
	stamp       func(txContext) error
	audit       func(txContext, *models.CatalogItem) error
}

// moveBatch is the shared transition skeleton: lock and load the batch from
// the source store (missing ids abort with NotFoundError), copy the common
// columns to the destination, stamp stage metadata, append audit entries and
// delete the source rows, then commit. Any failure rolls the whole unit back.
func (s *LifecycleService) moveBatch(ctx context.Context, req moveRequest) ([]models.CatalogItem, error) {
	if len(req.ids) == 0 {
		return nil, nil
	}

	fail := func(reason string, err error) ([]models.CatalogItem, error) {
		util.TransitionsFailedTotal.WithLabelValues(req.operation, reason).Inc()
		return nil, models.ClassifyStoreError(err)
	}

	columns, err := s.store.CommonColumns(ctx, req.source, req.destination)
	if err != nil {
		return fail("schema", err)
	}

	tx, err := s.store.BeginTxx(ctx)
	if err != nil {
		return fail("begin", err)
	}
	defer tx.Rollback()
	txc := txContext{ctx: ctx, tx: tx}

	items, err := s.store.SelectByIDsTx(ctx, tx, req.source, req.ids)
	if err != nil {
		return fail("not_found", err)
	}

	if err := s.store.CopyCommonTx(ctx, tx, req.source, req.destination, columns, req.ids); err != nil {
		return fail("copy", err)
	}
	if req.stamp != nil {
		if err := req.stamp(txc); err != nil {
			return fail("stamp", err)
		}
	}
	for i := range items {
		if err := req.audit(txc, &items[i]); err != nil {
			return fail("audit", err)
		}
	}

	deleted, err := s.store.DeleteByIDsTx(ctx, tx, req.source, req.ids)
	if err != nil {
		return fail("delete", err)
	}
	if deleted != int64(len(req.ids)) {
		return fail("delete", fmt.Errorf("deleted %d of %d rows from %s", deleted, len(req.ids), req.source))
	}

	if err := tx.Commit(); err != nil {
		return fail("commit", err)
	}
	return items, nil
}

// EditAndResendToPending applies allow-listed edits to correction records,
// recomputes any derived field whose dependency columns changed, and returns
// the records to the pending queue with prior validation metadata cleared.
// One atomic unit for the whole id set.
func (s *LifecycleService) EditAndResendToPending(ctx context.Context, edits map[int64]FieldEdits, actor models.Actor) error {
	ctx, span := util.StartSpan(ctx, "LifecycleService.EditAndResendToPending")
	defer span.End()
	defer observe("resubmit", time.Now())

	if len(edits) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(edits))
	for id := range edits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	fail := func(reason string, err error) error {
		util.TransitionsFailedTotal.WithLabelValues("resubmit", reason).Inc()
		return models.ClassifyStoreError(err)
	}

	columns, err := s.store.CommonColumns(ctx, models.StoreCorrection, models.StorePending)
	if err != nil {
		return fail("schema", err)
	}

	tx, err := s.store.BeginTxx(ctx)
	if err != nil {
		return fail("begin", err)
	}
	defer tx.Rollback()

	items, err := s.store.SelectByIDsTx(ctx, tx, models.StoreCorrection, ids)
	if err != nil {
		return fail("not_found", err)
	}

	byID := make(map[int64]*models.CatalogItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	for _, id := range ids {
		before := byID[id]
		cols, vals, changed := s.sanitizeEdits(before, edits[id])

		if newCode, ok := edits[id]["product_code"]; ok {
			code := strings.TrimSpace(fmt.Sprint(newCode))
			if code != before.ProductCode {
				if err := s.checkCodeFree(ctx, code); err != nil {
					return fail("duplicate_code", err)
				}
				// Audit entries and events carry the corrected code.
				before.ProductCode = code
			}
		}

		if len(cols) > 0 {
			if err := s.store.ApplyEditsTx(ctx, tx, models.StoreCorrection, id, cols, vals, actor); err != nil {
				return fail("edit", err)
			}
		}

		if r := derive.Needed(changed); r.Any() {
			after, err := s.store.GetItemTx(ctx, tx, models.StoreCorrection, id)
			if err != nil {
				return fail("edit", err)
			}
			if err := s.refreshDerivedTx(ctx, tx, models.StoreCorrection, after, r, actor); err != nil {
				return fail("derive", err)
			}
		}
	}

	if err := s.store.CopyCommonTx(ctx, tx, models.StoreCorrection, models.StorePending, columns, ids); err != nil {
		return fail("copy", err)
	}
	if err := s.store.ClearValidationMetaTx(ctx, tx, ids); err != nil {
		return fail("stamp", err)
	}

	for _, id := range ids {
		item := byID[id]
		entry := &models.ValidationLog{
			ItemID:        item.ID,
			ProductCode:   item.ProductCode,
			Decision:      models.DecisionResubmitted,
			Origin:        models.StoreCorrection,
			Destination:   models.StorePending,
			Observation:   "resubmitted after correction",
			ActorUsername: actor.Username,
			ActorName:     actor.Name,
		}
		if err := s.store.InsertValidationLogTx(ctx, tx, entry); err != nil {
			return fail("audit", err)
		}
	}

	deleted, err := s.store.DeleteByIDsTx(ctx, tx, models.StoreCorrection, ids)
	if err != nil {
		return fail("delete", err)
	}
	if deleted != int64(len(ids)) {
		return fail("delete", fmt.Errorf("deleted %d of %d rows from %s", deleted, len(ids), models.StoreCorrection))
	}

	if err := tx.Commit(); err != nil {
		return fail("commit", err)
	}

	util.ItemsResubmittedTotal.Add(float64(len(items)))
	s.logger.Info("Items resubmitted for validation",
		zap.Int("count", len(items)),
		zap.String("actor", actor.Username))

	event := &models.ItemsResubmittedEvent{
		BaseEvent: baseEvent(models.EventTypeItemsResubmitted),
		Items:     itemRefs(items),
		Actor:     actor,
	}
	if err := s.eventPublisher.PublishItemsResubmitted(ctx, event); err != nil {
		s.logger.Error("Failed to publish ItemsResubmitted event", zap.Error(err))
	}
	return nil
}

// UpdateApproved edits an approved record in place. Derived fields whose
// dependency sets intersect the changed columns are recomputed, and an
// update_log entry with before/after snapshots is always written for a
// non-empty change set.
func (s *LifecycleService) UpdateApproved(ctx context.Context, id int64, edits FieldEdits, actor models.Actor) error {
	ctx, span := util.StartSpan(ctx, "LifecycleService.UpdateApproved")
	defer span.End()
	defer observe("update", time.Now())

	fail := func(reason string, err error) error {
		util.TransitionsFailedTotal.WithLabelValues("update", reason).Inc()
		return models.ClassifyStoreError(err)
	}

	tx, err := s.store.BeginTxx(ctx)
	if err != nil {
		return fail("begin", err)
	}
	defer tx.Rollback()

	before, err := s.store.GetItemTx(ctx, tx, models.StoreApproved, id)
	if err != nil {
		return fail("not_found", err)
	}

	cols, vals, changed := s.sanitizeEdits(before, edits)
	if len(changed) == 0 {
		return nil
	}

	if newCode, ok := edits["product_code"]; ok {
		code := strings.TrimSpace(fmt.Sprint(newCode))
		if code != before.ProductCode {
			if err := s.checkCodeFree(ctx, code); err != nil {
				return fail("duplicate_code", err)
			}
		}
	}

	if err := s.store.ApplyEditsTx(ctx, tx, models.StoreApproved, id, cols, vals, actor); err != nil {
		return fail("edit", err)
	}

	after, err := s.store.GetItemTx(ctx, tx, models.StoreApproved, id)
	if err != nil {
		return fail("edit", err)
	}
	if r := derive.Needed(changed); r.Any() {
		if err := s.refreshDerivedTx(ctx, tx, models.StoreApproved, after, r, actor); err != nil {
			return fail("derive", err)
		}
	}

	beforeSnap, err := json.Marshal(before)
	if err != nil {
		return fail("audit", err)
	}
	afterSnap, err := json.Marshal(after)
	if err != nil {
		return fail("audit", err)
	}

	entry := &models.UpdateLog{
		ItemID:         id,
		ProductCode:    before.ProductCode,
		ChangedColumns: strings.Join(changed, ","),
		Before:         beforeSnap,
		After:          afterSnap,
		ActorUsername:  actor.Username,
		ActorName:      actor.Name,
	}
	if err := s.store.InsertUpdateLogTx(ctx, tx, entry); err != nil {
		return fail("audit", err)
	}

	if err := tx.Commit(); err != nil {
		return fail("commit", err)
	}

	util.ItemsUpdatedTotal.Inc()
	s.logger.Info("Approved item updated",
		zap.Int64("item_id", id),
		zap.Strings("changed", changed),
		zap.String("actor", actor.Username))

	event := &models.ItemUpdatedEvent{
		BaseEvent:      baseEvent(models.EventTypeItemUpdated),
		Item:           models.ItemRef{ItemID: id, ProductCode: after.ProductCode},
		Actor:          actor,
		ChangedColumns: changed,
	}
	if err := s.eventPublisher.PublishItemUpdated(ctx, event); err != nil {
		s.logger.Error("Failed to publish ItemUpdated event", zap.Error(err))
	}
	return nil
}

// checkCodeFree re-runs the dedup guard for a code being changed by an edit.
func (s *LifecycleService) checkCodeFree(ctx context.Context, code string) error {
	exists, origin, err := s.guard.CheckCodeAvailable(ctx, code)
	if err != nil {
		return err
	}
	if exists {
		util.DuplicateCodesBlockedTotal.WithLabelValues(origin).Inc()
		return &models.DuplicateCodeError{Code: code, Origin: origin}
	}
	return nil
}

// refreshDerivedTx recomputes only the derived fields the plan marks stale
// and persists them on the given row.
func (s *LifecycleService) refreshDerivedTx(ctx context.Context, tx *sqlx.Tx, storeName string, item *models.CatalogItem, r derive.Recompute, actor models.Actor) error {
	var cols []string
	var vals []interface{}

	if r.Description {
		item.Description = derive.Description(item.Specification)
		cols = append(cols, "description")
		vals = append(vals, item.Description)
	}
	if r.Synonym {
		item.Synonym = derive.Synonym(item.Item, item.Description, item.Brand,
			item.Quantity, item.Unit, item.Packaging,
			item.CommercialQty, item.CommercialPackaging)
		cols = append(cols, "synonym")
		vals = append(vals, item.Synonym)
	}
	if r.Keywords {
		item.Keywords = derive.Keywords(item.Subfamily, item.Item, item.Brand,
			item.Packaging, item.Quantity, item.Unit, item.Family)
		cols = append(cols, "keywords")
		vals = append(vals, item.Keywords)
	}
	if len(cols) == 0 {
		return nil
	}
	return s.store.ApplyEditsTx(ctx, tx, storeName, item.ID, cols, vals, actor)
}

// sanitizeEdits filters an edit map down to the allow-listed columns whose
// value actually differs from the current record, preserving a deterministic
// column order. Non-editable columns are dropped with a warning.
func (s *LifecycleService) sanitizeEdits(current *models.CatalogItem, edits FieldEdits) (cols []string, vals []interface{}, changed []string) {
	keys := make([]string, 0, len(edits))
	for k := range edits {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, col := range keys {
		if _, ok := editableColumns[col]; !ok {
			s.logger.Warn("Ignoring non-editable column in edit request",
				zap.Int64("item_id", current.ID),
				zap.String("column", col))
			continue
		}
		val := edits[col]
		if cur, ok := currentColumnValue(current, col); ok && fmt.Sprint(cur) == fmt.Sprint(val) {
			continue
		}
		cols = append(cols, col)
		vals = append(vals, val)
		changed = append(changed, col)
	}
	return cols, vals, changed
}

// currentColumnValue maps an editable column name to the record's current value.
func currentColumnValue(item *models.CatalogItem, col string) (interface{}, bool) {
	switch col {
	case "reference":
		return item.Reference, true
	case "code_type":
		return item.CodeType, true
	case "product_code":
		return item.ProductCode, true
	case "grp":
		return item.Group, true
	case "category":
		return item.Category, true
	case "segment":
		return item.Segment, true
	case "family":
		return item.Family, true
	case "subfamily":
		return item.Subfamily, true
	case "supply_label":
		return item.SupplyLabel, true
	case "item":
		return item.Item, true
	case "specification":
		return item.Specification, true
	case "brand":
		return item.Brand, true
	case "packaging":
		return item.Packaging, true
	case "package_qty":
		return item.PackageQty, true
	case "quantity":
		return item.Quantity, true
	case "unit":
		return item.Unit, true
	case "commercial_packaging":
		return item.CommercialPackaging, true
	case "commercial_qty":
		return item.CommercialQty, true
	}
	return nil, false
}

// Query passthroughs for the presentation layer.

// ListStore returns the filtered contents of one record store.
func (s *LifecycleService) ListStore(ctx context.Context, storeName string, f store.Filter) ([]models.CatalogItem, error) {
	items, err := s.store.ListItems(ctx, storeName, f)
	if err != nil {
		return nil, models.ClassifyStoreError(err)
	}
	return items, nil
}

// GetItem returns one record from a store.
func (s *LifecycleService) GetItem(ctx context.Context, storeName string, id int64) (*models.CatalogItem, error) {
	return s.store.GetItem(ctx, storeName, id)
}

// ListRemoved returns the removed archive with each row's latest removal log.
func (s *LifecycleService) ListRemoved(ctx context.Context) ([]models.RemovedItem, error) {
	items, err := s.store.ListRemoved(ctx)
	if err != nil {
		return nil, models.ClassifyStoreError(err)
	}
	return items, nil
}

// History returns the combined validation/rejection trail.
func (s *LifecycleService) History(ctx context.Context, f store.HistoryFilter) ([]models.HistoryEntry, error) {
	entries, err := s.store.History(ctx, f)
	if err != nil {
		return nil, models.ClassifyStoreError(err)
	}
	return entries, nil
}
