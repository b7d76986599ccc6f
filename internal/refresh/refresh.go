// Package refresh keeps the SQLite catalog cache warm: one fetch at
// load, then hourly revalidation, the engine-side version of the
// shell's "revalidate every hour" fetch.
package refresh

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"pricewatch-engine/internal/catalog"
	"pricewatch-engine/internal/domain"
	"pricewatch-engine/internal/events"
	"pricewatch-engine/internal/scheduler"
	"pricewatch-engine/internal/store"
)

type Refresher struct {
	Client *catalog.Client
	DB     *sql.DB
	Hub    *events.Hub
	// MaxAge is how old a cached snapshot may get before Models fetches
	// a fresh one.
	MaxAge time.Duration

	sf singleflight.Group
}

// Models returns the normalized catalog, serving the cached snapshot
// while it is fresh. A fetch failure with no usable cache is fatal for
// that load; there is no retry here.
func (r *Refresher) Models(ctx context.Context) ([]domain.ProcessedModel, time.Time, error) {
	cached, fetchedAt, err := store.LoadSnapshot(ctx, r.DB)
	if err == nil && time.Since(fetchedAt) < r.MaxAge {
		return cached, fetchedAt, nil
	}
	if err != nil && !errors.Is(err, store.ErrNoSnapshot) {
		return nil, time.Time{}, err
	}

	fresh, freshAt, ferr := r.Refresh(ctx)
	if ferr != nil {
		// Stale beats nothing, but only when the cache exists at all.
		if err == nil {
			log.Printf("[refresh] fetch failed, serving stale snapshot from %s: %v", fetchedAt.Format(time.RFC3339), ferr)
			return cached, fetchedAt, nil
		}
		return nil, time.Time{}, ferr
	}
	return fresh, freshAt, nil
}

// Refresh fetches, normalizes and caches the catalog unconditionally.
// Concurrent callers collapse onto one fetch.
func (r *Refresher) Refresh(ctx context.Context) ([]domain.ProcessedModel, time.Time, error) {
	type result struct {
		models    []domain.ProcessedModel
		fetchedAt time.Time
	}

	v, err, _ := r.sf.Do("refresh", func() (any, error) {
		raw, err := r.Client.FetchModels(ctx)
		if err != nil {
			return nil, err
		}

		models := catalog.NormalizeAll(raw)
		fetchedAt := time.Now().UTC()

		snapID, err := store.SaveSnapshot(ctx, r.DB, models, fetchedAt)
		if err != nil {
			return nil, err
		}

		log.Printf("[refresh] ok models=%d snapshot=%s", len(models), snapID)
		if r.Hub != nil {
			r.Hub.Publish(events.MakeEvent("", events.TypeCatalogRefreshed, 1, map[string]any{
				"models":     len(models),
				"fetched_at": fetchedAt.Format(time.RFC3339),
			}))
		}
		return result{models: models, fetchedAt: fetchedAt}, nil
	})
	if err != nil {
		return nil, time.Time{}, err
	}
	res := v.(result)
	return res.models, res.fetchedAt, nil
}

// Start runs the revalidation loop until ctx is canceled.
func (r *Refresher) Start(ctx context.Context) {
	go scheduler.Every(ctx, r.MaxAge, "refresh", func(ctx context.Context) error {
		_, _, err := r.Refresh(ctx)
		return err
	})
}
