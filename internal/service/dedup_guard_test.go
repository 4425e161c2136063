package service

import (
	"context"
	"errors"
	"testing"

	"catalog-service/internal/models"
	"catalog-service/internal/store"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeCodeStore struct {
	codes map[string]map[string]struct{}
	err   error
}

func (f *fakeCodeStore) CodeExists(_ context.Context, storeName, code string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.codes[storeName][code]
	return ok, nil
}

func (f *fakeCodeStore) FetchExistingCodes(_ context.Context, codes []string) (map[string]struct{}, map[string]struct{}, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	pending := make(map[string]struct{})
	approved := make(map[string]struct{})
	for _, c := range codes {
		if _, ok := f.codes[models.StorePending][c]; ok {
			pending[c] = struct{}{}
		}
		if _, ok := f.codes[models.StoreApproved][c]; ok {
			approved[c] = struct{}{}
		}
	}
	return pending, approved, nil
}

func (f *fakeCodeStore) ListItems(context.Context, string, store.Filter) ([]models.CatalogItem, error) {
	return nil, f.err
}

type fakeCodeCache struct {
	sets map[string]map[string]struct{}
	err  error
}

func (f *fakeCodeCache) CodeInSet(_ context.Context, storeName, code string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	_, ok := f.sets[storeName][code]
	return ok, nil
}

func (f *fakeCodeCache) ReplaceCodes(_ context.Context, storeName string, codes []string) error {
	return f.err
}

func set(codes ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		s[c] = struct{}{}
	}
	return s
}

func newTestGuard(st codeStore, cache codeCache) *DedupGuard {
	return &DedupGuard{store: st, redis: cache, logger: zap.NewNop()}
}

func TestCheckCodeAvailableApprovedCacheHit(t *testing.T) {
	g := newTestGuard(
		&fakeCodeStore{codes: map[string]map[string]struct{}{}},
		&fakeCodeCache{sets: map[string]map[string]struct{}{
			models.StoreApproved: set("789"),
		}},
	)

	exists, origin, err := g.CheckCodeAvailable(context.Background(), "789")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, models.StoreApproved, origin)
}

func TestCheckCodeAvailableApprovedWinsOverStalePendingSet(t *testing.T) {
	// The cache worker has not yet moved the code out of the pending set,
	// but the database already holds it in the approved store. The reported
	// origin must be approved.
	g := newTestGuard(
		&fakeCodeStore{codes: map[string]map[string]struct{}{
			models.StoreApproved: set("789"),
		}},
		&fakeCodeCache{sets: map[string]map[string]struct{}{
			models.StorePending: set("789"),
		}},
	)

	exists, origin, err := g.CheckCodeAvailable(context.Background(), "789")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, models.StoreApproved, origin)
}

func TestCheckCodeAvailablePendingCacheHit(t *testing.T) {
	g := newTestGuard(
		&fakeCodeStore{codes: map[string]map[string]struct{}{}},
		&fakeCodeCache{sets: map[string]map[string]struct{}{
			models.StorePending: set("789"),
		}},
	)

	exists, origin, err := g.CheckCodeAvailable(context.Background(), "789")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, models.StorePending, origin)
}

func TestCheckCodeAvailableCacheDownFallsBackToDB(t *testing.T) {
	g := newTestGuard(
		&fakeCodeStore{codes: map[string]map[string]struct{}{
			models.StorePending: set("789"),
		}},
		&fakeCodeCache{err: errors.New("connection refused")},
	)

	exists, origin, err := g.CheckCodeAvailable(context.Background(), "789")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, models.StorePending, origin)
}

func TestCheckCodeAvailableMiss(t *testing.T) {
	g := newTestGuard(
		&fakeCodeStore{codes: map[string]map[string]struct{}{}},
		&fakeCodeCache{sets: map[string]map[string]struct{}{}},
	)

	exists, origin, err := g.CheckCodeAvailable(context.Background(), "789")
	assert.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, origin)

	// Blank codes never conflict.
	exists, _, err = g.CheckCodeAvailable(context.Background(), "   ")
	assert.NoError(t, err)
	assert.False(t, exists)
}
