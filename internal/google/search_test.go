package google

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/talent"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(zap.NewNop(), "test-key", "engine-1", 0)
	c.APIURL = srv.URL
	return c
}

func TestSearchSendsQueryParameters(t *testing.T) {
	var got map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		got = map[string]string{
			"key":   q.Get("key"),
			"cx":    q.Get("cx"),
			"q":     q.Get("q"),
			"num":   q.Get("num"),
			"start": q.Get("start"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[{"title":"Jan","link":"https://linkedin.com/in/jan","snippet":"AI"}]}`))
	})

	items, err := c.Search(context.Background(), "Grafik AI Warszawa site:linkedin.com", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(items) != 1 || items[0].Link != "https://linkedin.com/in/jan" {
		t.Fatalf("unexpected items: %+v", items)
	}

	want := map[string]string{
		"key":   "test-key",
		"cx":    "engine-1",
		"q":     "Grafik AI Warszawa site:linkedin.com",
		"num":   "10",
		"start": "",
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("param %s = %q, want %q", k, got[k], v)
		}
	}
}

func TestSearchMissingItemsYieldsEmptyList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"searchInformation":{"totalResults":"0"}}`))
	})

	items, err := c.Search(context.Background(), "q", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", items)
	}
}

func TestSearchHTTPErrorCarriesProviderMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	})

	_, err := c.Search(context.Background(), "q", 1)

	var apiErr *talent.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Fatalf("unexpected status: %d", apiErr.StatusCode)
	}
	if apiErr.Message != "API key not valid" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestSearchHTTPErrorWithoutMessageUsesBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"reason": "quota"}`))
	})

	_, err := c.Search(context.Background(), "q", 1)

	var apiErr *talent.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != `{"reason":"quota"}` {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestSearchHTTPErrorWithUnparseableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := c.Search(context.Background(), "q", 1)

	var apiErr *talent.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "" {
		t.Fatalf("expected empty message, got %q", apiErr.Message)
	}
	if !strings.Contains(err.Error(), "502") {
		t.Fatalf("expected status in error text: %v", err)
	}
}

func TestSearchSecondPageIsBestEffort(t *testing.T) {
	var mu sync.Mutex
	starts := []string{}
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		starts = append(starts, r.URL.Query().Get("start"))
		mu.Unlock()

		if r.URL.Query().Get("start") == "11" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"items":[{"title":"first","link":"https://a","snippet":"s"}]}`))
	})

	items, err := c.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("second page failure must be swallowed, got %v", err)
	}
	if len(items) != 1 || items[0].Title != "first" {
		t.Fatalf("unexpected items: %+v", items)
	}
	if len(starts) != 2 || starts[0] != "" || starts[1] != "11" {
		t.Fatalf("unexpected page requests: %v", starts)
	}
}

func TestSearchMergesPages(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("start") == "11" {
			w.Write([]byte(`{"items":[{"title":"second"}]}`))
			return
		}
		w.Write([]byte(`{"items":[{"title":"first"}]}`))
	})

	items, err := c.Search(context.Background(), "q", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || items[0].Title != "first" || items[1].Title != "second" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestSearchTransportErrorDoesNotLeakAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	closedURL := srv.URL + "/customsearch/v1"
	srv.Close()

	c := New(zap.NewNop(), "SECRET-SEARCH-KEY", "engine-1", 0)
	c.APIURL = closedURL

	_, err := c.Search(context.Background(), "Grafik AI site:linkedin.com", 1)
	if err == nil {
		t.Fatal("expected error for a closed server")
	}
	if strings.Contains(err.Error(), "SECRET-SEARCH-KEY") || strings.Contains(err.Error(), "key=") {
		t.Fatalf("error text leaks the request url: %v", err)
	}
	if !strings.HasPrefix(err.Error(), "google search request: ") {
		t.Fatalf("unexpected error text: %v", err)
	}
}

func TestSearchHTTPErrorBodyKeepsProviderFormatting(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("{\"zeta\": 1,\n \"alpha\": \"<b>&</b>\"}"))
	})

	_, err := c.Search(context.Background(), "q", 1)

	var apiErr *talent.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != `{"zeta":1,"alpha":"<b>&</b>"}` {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}
