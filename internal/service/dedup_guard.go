package service

import (
	"context"
	"fmt"
	"strings"

	"catalog-service/internal/models"
	"catalog-service/internal/redisclient"
	"catalog-service/internal/store"
	"catalog-service/internal/util"

	"go.uber.org/zap"
)

// codeStore is the slice of the storage collaborator the guard needs.
type codeStore interface {
	CodeExists(ctx context.Context, storeName, code string) (bool, error)
	FetchExistingCodes(ctx context.Context, codes []string) (pending, approved map[string]struct{}, err error)
	ListItems(ctx context.Context, storeName string, f store.Filter) ([]models.CatalogItem, error)
}

// codeCache is the slice of the Redis client the guard needs.
type codeCache interface {
	CodeInSet(ctx context.Context, store, code string) (bool, error)
	ReplaceCodes(ctx context.Context, store string, codes []string) error
}

// DedupGuard enforces product-code uniqueness across the active stores
// (pending and approved) before a registration is admitted. Redis holds a
// mirrored set of active codes as a fast path; the database remains the
// source of truth, so a cache miss always falls through to it.
type DedupGuard struct {
	store  codeStore
	redis  codeCache
	logger *zap.Logger
}

// NewDedupGuard creates a new dedup guard
func NewDedupGuard(st *store.Store, redis *redisclient.Client) *DedupGuard {
	return &DedupGuard{
		store:  st,
		redis:  redis,
		logger: util.GetLogger(),
	}
}

// CheckCodeAvailable reports whether a product code is already active and
// where. Approved takes priority in the reported origin: an approved code
// blocks registration unconditionally, a pending one is a softer conflict
// the caller explains differently.
func (g *DedupGuard) CheckCodeAvailable(ctx context.Context, code string) (exists bool, origin string, err error) {
	ctx, span := util.StartSpan(ctx, "DedupGuard.CheckCodeAvailable")
	defer span.End()

	code = strings.TrimSpace(code)
	if code == "" {
		return false, "", nil
	}

	for _, storeName := range []string{models.StoreApproved, models.StorePending} {
		hit, err := g.redis.CodeInSet(ctx, storeName, code)
		if err != nil {
			util.DedupCacheFallbacksTotal.Inc()
			g.logger.Warn("Dedup cache unavailable, using database only",
				zap.String("store", storeName),
				zap.Error(err))
			break
		}
		if !hit {
			continue
		}
		if storeName == models.StoreApproved {
			return true, storeName, nil
		}
		// The pending set can lag an approval the cache worker has not
		// applied yet. Before reporting a pending origin, confirm against
		// the approved store; approved always wins.
		approved, err := g.store.CodeExists(ctx, models.StoreApproved, code)
		if err != nil {
			break
		}
		if approved {
			return true, models.StoreApproved, nil
		}
		return true, models.StorePending, nil
	}

	// Cache misses are authoritative only in the database.
	for _, storeName := range []string{models.StoreApproved, models.StorePending} {
		found, err := g.store.CodeExists(ctx, storeName, code)
		if err != nil {
			return false, "", models.ClassifyStoreError(err)
		}
		if found {
			return true, storeName, nil
		}
	}
	return false, "", nil
}

// FetchExistingCodes answers a batch import in one round trip per store:
// which of the candidate codes are already pending, and which approved.
func (g *DedupGuard) FetchExistingCodes(ctx context.Context, codes []string) (pending, approved map[string]struct{}, err error) {
	ctx, span := util.StartSpan(ctx, "DedupGuard.FetchExistingCodes")
	defer span.End()

	normalized := make([]string, 0, len(codes))
	for _, c := range codes {
		if c = strings.TrimSpace(c); c != "" {
			normalized = append(normalized, c)
		}
	}

	pending, approved, err = g.store.FetchExistingCodes(ctx, normalized)
	if err != nil {
		return nil, nil, models.ClassifyStoreError(err)
	}
	return pending, approved, nil
}

// SyncCodesToRedis rebuilds the cached code sets from the database. Called at
// startup and whenever the cache is suspected stale.
func (g *DedupGuard) SyncCodesToRedis(ctx context.Context) error {
	g.logger.Info("Starting product-code sync to Redis")

	for _, storeName := range []string{models.StorePending, models.StoreApproved} {
		items, err := g.store.ListItems(ctx, storeName, store.Filter{})
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", storeName, err)
		}

		codes := make([]string, 0, len(items))
		for _, item := range items {
			codes = append(codes, item.ProductCode)
		}

		if err := g.redis.ReplaceCodes(ctx, storeName, codes); err != nil {
			return fmt.Errorf("failed to sync codes for %s: %w", storeName, err)
		}
		g.logger.Info("Code set synced",
			zap.String("store", storeName),
			zap.Int("count", len(codes)))
	}
	return nil
}

// FlagBatchDuplicates returns the indices of rows whose (non-empty, trimmed)
// product code appears more than once within the same batch. Callers flag
// these before the store-level guard runs.
func FlagBatchDuplicates(codes []string) map[int]struct{} {
	seen := make(map[string][]int, len(codes))
	for i, code := range codes {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		seen[code] = append(seen[code], i)
	}

	dups := make(map[int]struct{})
	for _, idxs := range seen {
		if len(idxs) > 1 {
			for _, i := range idxs {
				dups[i] = struct{}{}
			}
		}
	}
	return dups
}
