package catalog

import (
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// PageSize is fixed; the storefront renders 20 cards per page.
const PageSize = 20

// Sort parameter values accepted from the client.
const (
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// ResolveSort picks the result ordering. An active search always sorts by
// descending text relevance, regardless of the sort parameter; otherwise an
// explicit price sort applies, with recency as the default.
func ResolveSort(req FilterRequest) bson.D {
	if strings.TrimSpace(req.Search) != "" {
		return bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}
	}

	switch strings.TrimSpace(req.Sort) {
	case SortPriceAsc:
		return bson.D{{Key: "price", Value: 1}}
	case SortPriceDesc:
		return bson.D{{Key: "price", Value: -1}}
	default:
		return bson.D{{Key: "createdAt", Value: -1}}
	}
}

// maxPage keeps (page-1)*PageSize inside int64 range; any parseable page
// beyond it gets the same empty result a merely huge page would.
const maxPage = (1<<63 - 1) / PageSize

// PageSkip converts the 1-based page parameter into a skip offset. Anything
// below 1, including unparseable input, is clamped to page 1; pages past
// maxPage are clamped down so the skip stays a valid offset.
func PageSkip(req FilterRequest) int64 {
	page, err := strconv.ParseInt(strings.TrimSpace(req.Page), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	return (page - 1) * PageSize
}
