package refresh

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pricewatch-engine/internal/catalog"
	"pricewatch-engine/internal/domain"
	"pricewatch-engine/internal/store"
)

func testRefresher(t *testing.T, upstream http.HandlerFunc) *Refresher {
	t.Helper()

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db.Pool); err != nil {
		t.Fatal(err)
	}

	return &Refresher{
		Client: catalog.NewClient(srv.URL, 5*time.Second, catalog.NewHostLimiter(1000, 1000)),
		DB:     db.Pool,
		MaxAge: time.Hour,
	}
}

func TestModelsFetchesWhenEmpty(t *testing.T) {
	calls := 0
	r := testRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"data":[{"id":"a/m","name":"M","pricing":{"prompt":"0.000001","completion":"0.000002"}}]}`))
	})

	models, _, err := r.Models(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 1 || models[0].Provider != "A" {
		t.Fatalf("got %+v", models)
	}

	// Second call is served from the fresh cache, no new fetch.
	if _, _, err := r.Models(context.Background()); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Fatalf("calls=%d want 1", calls)
	}
}

func TestModelsFatalWithoutCache(t *testing.T) {
	r := testRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	if _, _, err := r.Models(context.Background()); err == nil {
		t.Fatal("want error when upstream is down and the cache is empty")
	}
}

// An expired snapshot still beats a failing upstream.
func TestModelsServesStaleOnFetchFailure(t *testing.T) {
	r := testRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	stale := []domain.ProcessedModel{{ID: "old/model", Name: "Old", Provider: "Old", Modality: "text"}}
	staleAt := time.Now().Add(-2 * time.Hour)
	if _, err := store.SaveSnapshot(context.Background(), r.DB, stale, staleAt); err != nil {
		t.Fatal(err)
	}

	models, fetchedAt, err := r.Models(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 1 || models[0].ID != "old/model" {
		t.Fatalf("got %+v", models)
	}
	if !fetchedAt.Before(time.Now().Add(-time.Hour)) {
		t.Fatalf("fetchedAt %v should be the stale timestamp", fetchedAt)
	}
}

func TestRefreshReplacesCache(t *testing.T) {
	payload := `{"data":[{"id":"a/one","name":"One","pricing":{"prompt":"0","completion":"0"}}]}`
	r := testRefresher(t, func(w http.ResponseWriter, req *http.Request) {
		_, _ = w.Write([]byte(payload))
	})

	if _, _, err := r.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	payload = `{"data":[{"id":"a/two","name":"Two","pricing":{"prompt":"0","completion":"0"}}]}`
	if _, _, err := r.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}

	models, _, err := store.LoadSnapshot(context.Background(), r.DB)
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 1 || models[0].ID != "a/two" {
		t.Fatalf("got %+v", models)
	}
}
