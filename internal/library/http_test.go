package library

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/citeguard/citeguard/internal/model"
)

func defaultTestConfig() model.StoreConfig {
	return model.StoreConfig{
		Timeout:           2 * time.Second,
		UserAgent:         "citeguard-test",
		MaxBodyBytes:      1_000_000,
		RequestsPerSecond: 100,
		Burst:             10,
	}
}

func newTestStore(t *testing.T, handler http.Handler) (*HTTPStore, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := defaultTestConfig()
	cfg.BaseURL = server.URL
	store, err := NewHTTPStore(cfg)
	if err != nil {
		t.Fatalf("NewHTTPStore failed: %v", err)
	}
	return store, server
}

func TestHTTPStore_FetchSourceContent(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/library/sources/src-1/content" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"source_id":"src-1","title":"Экономика","full_text":"экономика развивается","length":40}`))
	}))

	src, err := store.FetchSourceContent(context.Background(), "src-1")
	if err != nil {
		t.Fatalf("FetchSourceContent failed: %v", err)
	}
	if src.Title != "Экономика" || src.FullText != "экономика развивается" {
		t.Errorf("Unexpected source: %+v", src)
	}
	if src.Length != len(src.FullText) {
		t.Errorf("Length %d does not match text length %d", src.Length, len(src.FullText))
	}
}

func TestHTTPStore_NotFound(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))

	_, err := store.FetchSourceContent(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestHTTPStore_ServerError(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := store.FetchSourceContent(context.Background(), "src-1")
	if err == nil {
		t.Fatal("Expected error for 500 response")
	}
}

func TestHTTPStore_HTMLSourceNormalized(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"source_id":"src-1","title":"Статья","content_type":"text/html",` +
			`"full_text":"<html><body><script>var x=1;</script><p>экономика развивается</p></body></html>"}`))
	}))

	src, err := store.FetchSourceContent(context.Background(), "src-1")
	if err != nil {
		t.Fatalf("FetchSourceContent failed: %v", err)
	}
	if strings.Contains(src.FullText, "<") || strings.Contains(src.FullText, "var x") {
		t.Errorf("Expected markup and scripts stripped, got %q", src.FullText)
	}
	if !strings.Contains(src.FullText, "экономика развивается") {
		t.Errorf("Visible text lost during normalization: %q", src.FullText)
	}
}

func TestHTTPStore_ListSources(t *testing.T) {
	store, _ := newTestStore(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/library/sources" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"sources":[{"id":"a","title":"Один","has_file":true},{"id":"b","title":"Два","has_file":false}]}`))
	}))

	sources, err := store.ListSources(context.Background())
	if err != nil {
		t.Fatalf("ListSources failed: %v", err)
	}
	if len(sources) != 2 || sources[0].ID != "a" || !sources[0].HasFile {
		t.Errorf("Unexpected sources: %+v", sources)
	}
}

func TestHTTPStore_RequiresBaseURL(t *testing.T) {
	if _, err := NewHTTPStore(defaultTestConfig()); err == nil {
		t.Fatal("Expected error for missing base URL")
	}
}
