package handlers

import (
	"errors"
	"testing"

	"bitzone/internal/models"
)

func orderCatalog() map[int64]models.Product {
	return map[int64]models.Product{
		101: {RoappID: 101, Name: "PlayStation 5 Console", Price: 22999, Stock: 3},
		202: {RoappID: 202, Name: "DualSense Controller", Price: 2899, Stock: 10},
		303: {RoappID: 303, Name: "Limited Drop", Price: 999, Stock: 0},
	}
}

func TestBuildOrderItemsTotalsFromCatalogPrices(t *testing.T) {
	items, total, err := buildOrderItems([]createOrderItemRequest{
		{ProductID: 101, Quantity: 1},
		{ProductID: 202, Quantity: 2},
	}, orderCatalog())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	want := 22999 + 2*2899.0
	if total != want {
		t.Errorf("expected total %.2f, got %.2f", want, total)
	}
	if items[0].Name != "PlayStation 5 Console" || items[0].Price != 22999 {
		t.Errorf("item snapshot should come from the catalog, got %+v", items[0])
	}
}

func TestBuildOrderItemsRejectsUnknownProduct(t *testing.T) {
	_, _, err := buildOrderItems([]createOrderItemRequest{
		{ProductID: 999, Quantity: 1},
	}, orderCatalog())

	var notFound productNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected productNotFoundError, got %v", err)
	}
	if notFound.ProductID != 999 {
		t.Errorf("expected productId 999, got %d", notFound.ProductID)
	}
}

func TestBuildOrderItemsRejectsInsufficientStock(t *testing.T) {
	_, _, err := buildOrderItems([]createOrderItemRequest{
		{ProductID: 303, Quantity: 1},
	}, orderCatalog())

	var stockErr outOfStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected outOfStockError, got %v", err)
	}
	if stockErr.Available != 0 || stockErr.Requested != 1 {
		t.Errorf("unexpected stock error details: %+v", stockErr)
	}
}

func TestBuildOrderItemsRejectsNonPositiveQuantity(t *testing.T) {
	_, _, err := buildOrderItems([]createOrderItemRequest{
		{ProductID: 101, Quantity: 0},
	}, orderCatalog())
	if err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestBuildOrderItemsRejectsEmptyList(t *testing.T) {
	_, _, err := buildOrderItems(nil, orderCatalog())
	if err == nil {
		t.Fatal("expected error for empty item list")
	}
}

func TestMinorUnitsRoundsKopiykas(t *testing.T) {
	cases := []struct {
		amount float64
		want   int64
	}{
		{22999, 2299900},
		{0.01, 1},
		{10.555, 1056},
		{0, 0},
	}
	for _, tc := range cases {
		if got := minorUnits(tc.amount); got != tc.want {
			t.Errorf("minorUnits(%v) = %d, want %d", tc.amount, got, tc.want)
		}
	}
}
