package roapp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchProductsWalksPages(t *testing.T) {
	pages := map[string]string{
		"1": `{"data": [{"id": 1, "name": "PS5"}, {"id": 2, "name": "Xbox"}], "count": 3}`,
		"2": `{"data": [{"id": 3, "name": "Switch"}], "count": 3}`,
		"3": `{"data": [], "count": 3}`,
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("missing api key header, got %q", got)
		}
		if r.URL.Path != "/warehouse/goods" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}

		body, ok := pages[r.URL.Query().Get("page")]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, body)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "test-key")

	products, err := client.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("FetchProducts failed: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products across pages, got %d", len(products))
	}
	if int64(products[2].ID) != 3 {
		t.Fatalf("page order lost: %+v", products)
	}
}

func TestFetchCategories(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/warehouse/categories" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"data": [{"id": 1, "title": "Consoles"}, {"id": 2, "title": "Games", "parent_id": 1}]}`)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "test-key")

	categories, err := client.FetchCategories(context.Background())
	if err != nil {
		t.Fatalf("FetchCategories failed: %v", err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
}

func TestFetchProductNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "test-key")

	product, err := client.FetchProduct(context.Background(), 99)
	if err != nil {
		t.Fatalf("404 must not be an error: %v", err)
	}
	if product != nil {
		t.Fatalf("expected nil product for 404, got %+v", product)
	}
}

func TestFetchProductsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, "test-key")

	if _, err := client.FetchProducts(context.Background()); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}
