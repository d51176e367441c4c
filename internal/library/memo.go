package library

import (
	"context"
	"encoding/json"
	"time"

	"github.com/citeguard/citeguard/internal/cache"
	"github.com/citeguard/citeguard/internal/model"
)

// memoStore wraps a ContentStore with a run-scoped memo so a source cited by
// several pairs is fetched once. Only successful fetches are cached; a
// failed fetch is retried when a later pair references the same source.
type memoStore struct {
	inner ContentStore
	cache cache.Cache
	ttl   time.Duration
}

// NewMemo adds run-scoped memoization to a content store.
func NewMemo(inner ContentStore, ttl time.Duration) ContentStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &memoStore{
		inner: inner,
		cache: cache.NewMemoryCache(ttl, ttl),
		ttl:   ttl,
	}
}

func (m *memoStore) FetchSourceContent(ctx context.Context, sourceID string) (*model.SourceContent, error) {
	key := cache.Key(sourceID)
	if raw, ok := m.cache.Get(key); ok {
		var src model.SourceContent
		if err := json.Unmarshal(raw, &src); err == nil {
			return &src, nil
		}
		// Corrupt entry: drop it and fall through to a fresh fetch.
		_ = m.cache.Delete(key)
	}

	src, err := m.inner.FetchSourceContent(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(src); err == nil {
		_ = m.cache.Set(key, raw, m.ttl)
	}
	return src, nil
}

func (m *memoStore) ListSources(ctx context.Context) ([]model.SourceSummary, error) {
	return m.inner.ListSources(ctx)
}
