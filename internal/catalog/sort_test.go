package catalog

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestResolveSortSearchWinsOverSortParam(t *testing.T) {
	order := ResolveSort(FilterRequest{Search: "playstation", Sort: SortPriceAsc})

	if order[0].Key != "score" {
		t.Fatalf("expected relevance sort while searching, got %v", order)
	}
	meta, ok := order[0].Value.(bson.M)
	if !ok || meta["$meta"] != "textScore" {
		t.Fatalf("expected textScore meta sort, got %v", order[0].Value)
	}
}

func TestResolveSortExplicitPriceOrder(t *testing.T) {
	cases := []struct {
		sortParam string
		key       string
		direction int
	}{
		{SortPriceAsc, "price", 1},
		{SortPriceDesc, "price", -1},
		{"", "createdAt", -1},
		{"alphabetical", "createdAt", -1},
	}

	for _, tc := range cases {
		order := ResolveSort(FilterRequest{Sort: tc.sortParam})
		if order[0].Key != tc.key || order[0].Value != tc.direction {
			t.Errorf("sort=%q resolved to %v, want %s %d", tc.sortParam, order, tc.key, tc.direction)
		}
	}
}

func TestPageSkipClampsAndOffsets(t *testing.T) {
	cases := []struct {
		page string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"-3", 0},
		{"abc", 0},
		{"1", 0},
		{"2", 20},
		{"5", 80},
	}

	for _, tc := range cases {
		if got := PageSkip(FilterRequest{Page: tc.page}); got != tc.want {
			t.Errorf("PageSkip(page=%q) = %d, want %d", tc.page, got, tc.want)
		}
	}
}

func TestPageSkipHugePageStaysNonNegative(t *testing.T) {
	for _, page := range []string{"9223372036854775807", "922337203685477580", "1000000000000000000"} {
		got := PageSkip(FilterRequest{Page: page})
		if got < 0 {
			t.Errorf("PageSkip(page=%q) = %d, skip must never go negative", page, got)
		}
	}
}
