package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, 5*time.Second, NewHostLimiter(1000, 1000))
}

func TestFetchModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Fatalf("accept header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"openai/gpt-4o","name":"GPT-4o","pricing":{"prompt":"0.0000025","completion":"0.00001"},"context_length":128000,"architecture":{"modality":"text+image->text"}},
			{"id":"mistralai/mistral-7b","name":"Mistral 7B","pricing":{"prompt":"0","completion":"0"},"context_length":32768,"architecture":{"modality":"text->text"}}
		]}`))
	}))
	defer srv.Close()

	models, err := testClient(srv).FetchModels(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(models) != 2 {
		t.Fatalf("len=%d", len(models))
	}
	if models[0].ID != "openai/gpt-4o" || models[1].ID != "mistralai/mistral-7b" {
		t.Fatalf("order: %q, %q", models[0].ID, models[1].ID)
	}
	if models[1].Pricing.Prompt != "0" {
		t.Fatalf("free-tier price string got %q want \"0\"", models[1].Pricing.Prompt)
	}
}

// A non-2xx status is fatal for the load. No retry.
func TestFetchModelsStatusError(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := testClient(srv).FetchModels(context.Background()); err == nil {
		t.Fatal("want error on 429")
	}
	if attempts != 1 {
		t.Fatalf("attempts=%d want 1", attempts)
	}
}

func TestFetchModelsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv)
	c.APIKey = func() (string, error) { return "sk-test", nil }
	if _, err := c.FetchModels(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "Bearer sk-test" {
		t.Fatalf("auth header %q", gotAuth)
	}
}

func TestFetchModelsNoKeyMeansNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := testClient(srv)
	c.APIKey = func() (string, error) { return "", nil }
	if _, err := c.FetchModels(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotAuth != "" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
}
