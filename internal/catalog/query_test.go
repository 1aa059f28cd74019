package catalog

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bitzone/internal/models"
)

type fixture struct {
	name     string
	category string
	price    float64
}

// matches evaluates a composed query against a fixture the way Mongo would,
// covering the operator subset the composer can emit.
func matches(t *testing.T, query bson.M, f fixture) bool {
	t.Helper()

	if len(query) == 0 {
		return true
	}

	conds, ok := query["$and"].([]bson.M)
	if !ok {
		t.Fatalf("composed query is not an $and conjunction: %v", query)
	}

	for _, cond := range conds {
		if !matchCondition(t, cond, f) {
			return false
		}
	}
	return true
}

func matchCondition(t *testing.T, cond bson.M, f fixture) bool {
	t.Helper()

	for field, raw := range cond {
		switch field {
		case "$or":
			alternatives, ok := raw.([]bson.M)
			if !ok {
				t.Fatalf("$or is not a list of conditions: %v", raw)
			}
			matched := false
			for _, alt := range alternatives {
				if matchCondition(t, alt, f) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		case "$text":
			search, _ := raw.(bson.M)["$search"].(string)
			if !textMatches(search, f.name) {
				return false
			}
		case "price":
			bounds, ok := raw.(bson.M)
			if !ok {
				t.Fatalf("price condition is not a bounds document: %v", raw)
			}
			if v, ok := bounds["$gte"].(float64); ok && f.price < v {
				return false
			}
			if v, ok := bounds["$lte"].(float64); ok && f.price > v {
				return false
			}
		case "name":
			if !fieldMatches(t, raw, f.name) {
				return false
			}
		case "category":
			if !fieldMatches(t, raw, f.category) {
				return false
			}
		default:
			t.Fatalf("unexpected condition field %q", field)
		}
	}
	return true
}

func fieldMatches(t *testing.T, raw interface{}, value string) bool {
	t.Helper()

	cond, ok := raw.(bson.M)
	if !ok {
		t.Fatalf("field condition is not a document: %v", raw)
	}

	if not, ok := cond["$not"]; ok {
		rx, ok := not.(primitive.Regex)
		if !ok {
			t.Fatalf("$not does not hold a regex: %v", not)
		}
		return !compilePattern(t, rx.Pattern).MatchString(value)
	}

	pattern, ok := cond["$regex"].(string)
	if !ok {
		t.Fatalf("field condition has no $regex: %v", cond)
	}
	return compilePattern(t, pattern).MatchString(value)
}

func compilePattern(t *testing.T, pattern string) *regexp.Regexp {
	t.Helper()

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		t.Fatalf("composer emitted an invalid pattern %q: %v", pattern, err)
	}
	return re
}

// textMatches approximates Mongo's $text: any whitespace-separated search
// token found in the indexed name counts as a hit.
func textMatches(search, name string) bool {
	lower := strings.ToLower(name)
	for _, token := range strings.Fields(strings.ToLower(search)) {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func hasExclusion(query bson.M) bool {
	conds, ok := query["$and"].([]bson.M)
	if !ok {
		return false
	}
	for _, cond := range conds {
		for _, raw := range cond {
			if m, ok := raw.(bson.M); ok {
				if _, ok := m["$not"]; ok {
					return true
				}
			}
		}
	}
	return false
}

type fakeCategoryLookup map[int64]string

func (f fakeCategoryLookup) FindByID(_ context.Context, id int64) (*models.Category, error) {
	name, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &models.Category{RoappID: id, Name: name}, nil
}

type failingCategoryLookup struct{}

func (failingCategoryLookup) FindByID(context.Context, int64) (*models.Category, error) {
	return nil, errors.New("storage unavailable")
}

func mustCompose(t *testing.T, req FilterRequest, categories CategoryLookup) bson.M {
	t.Helper()

	query, err := ComposeQuery(context.Background(), req, categories)
	if err != nil {
		t.Fatalf("unexpected compose error: %v", err)
	}
	return query
}

/* =======================
   COMPOSER
======================= */

func TestComposeQueryEmptyRequestMatchesAll(t *testing.T) {
	query := mustCompose(t, FilterRequest{}, nil)
	if len(query) != 0 {
		t.Fatalf("expected match-all query, got %v", query)
	}

	if !matches(t, query, fixture{name: "Anything", category: "Whatever", price: 1}) {
		t.Fatal("match-all query rejected a product")
	}
}

func TestComposeQueryMalformedPriceBoundsAreOmitted(t *testing.T) {
	query := mustCompose(t, FilterRequest{
		MinPrice: "cheap",
		MaxPrice: "12x",
	}, nil)

	if len(query) != 0 {
		t.Fatalf("expected malformed bounds to degrade to match-all, got %v", query)
	}
}

func TestComposeQueryPartialPriceBound(t *testing.T) {
	query := mustCompose(t, FilterRequest{
		MinPrice: "oops",
		MaxPrice: "100",
	}, nil)

	if matches(t, query, fixture{name: "X", price: 150}) {
		t.Fatal("expected price above max bound to be rejected")
	}
	if !matches(t, query, fixture{name: "X", price: 50}) {
		t.Fatal("expected price under max bound to pass with broken min bound dropped")
	}
}

func TestComposeQueryInvertedPriceRangeMatchesNothing(t *testing.T) {
	query := mustCompose(t, FilterRequest{
		MinPrice: "500",
		MaxPrice: "100",
	}, nil)

	for _, price := range []float64{50, 100, 300, 500, 900} {
		if matches(t, query, fixture{name: "X", price: price}) {
			t.Fatalf("inverted range matched price %v", price)
		}
	}
}

func TestComposeQueryCategoryLookupHit(t *testing.T) {
	lookup := fakeCategoryLookup{7: "Consoles"}

	query := mustCompose(t, FilterRequest{Category: "7"}, lookup)

	if !matches(t, query, fixture{name: "PS5", category: "consoles"}) {
		t.Fatal("category match should be case-insensitive")
	}
	if matches(t, query, fixture{name: "PS5", category: "Games"}) {
		t.Fatal("different category label should not match")
	}
	if matches(t, query, fixture{name: "PS5", category: "Consoles and more"}) {
		t.Fatal("category match must be exact, not a substring")
	}
}

func TestComposeQueryCategoryLookupMissOmitsCondition(t *testing.T) {
	query := mustCompose(t, FilterRequest{Category: "99"}, fakeCategoryLookup{})
	if len(query) != 0 {
		t.Fatalf("unknown category id must not constrain the query, got %v", query)
	}

	query = mustCompose(t, FilterRequest{Category: "not-a-number"}, fakeCategoryLookup{})
	if len(query) != 0 {
		t.Fatalf("non-numeric category id must not constrain the query, got %v", query)
	}
}

func TestComposeQueryCategoryLookupFailurePropagates(t *testing.T) {
	query, err := ComposeQuery(context.Background(), FilterRequest{Category: "7"}, failingCategoryLookup{})
	if err == nil {
		t.Fatalf("lookup failure must fail the request, got query %v", query)
	}
	if query != nil {
		t.Fatalf("expected no query on lookup failure, got %v", query)
	}
}

func TestComposeQueryPlatformExclusionOnlyWithoutSearch(t *testing.T) {
	xboxConsole := fixture{name: "Xbox Series X", category: "Consoles"}

	browsing := mustCompose(t, FilterRequest{Platforms: "sony"}, nil)
	if !hasExclusion(browsing) {
		t.Fatal("expected complement exclusion while browsing")
	}
	if matches(t, browsing, xboxConsole) {
		t.Fatal("unselected platform product must be excluded while browsing")
	}

	searching := mustCompose(t, FilterRequest{
		Platforms: "sony",
		Search:    "xbox",
	}, nil)
	if hasExclusion(searching) {
		t.Fatal("active search must suppress the exclusion condition")
	}
}

func TestComposeQueryPlatformInclusionMatchesNameOrCategory(t *testing.T) {
	query := mustCompose(t, FilterRequest{Platforms: "sony"}, nil)

	if !matches(t, query, fixture{name: "DualSense Edge", category: "Accessories"}) {
		t.Fatal("expected name keyword hit to pass inclusion")
	}
	if !matches(t, query, fixture{name: "Vertical Stand", category: "PlayStation Accessories"}) {
		t.Fatal("expected category keyword hit to pass inclusion")
	}
}

func TestComposeQueryUnknownTagsContributeNoKeywords(t *testing.T) {
	query := mustCompose(t, FilterRequest{Platforms: "sega"}, nil)

	// Unknown tag: the inclusion predicate has no keywords and matches
	// nothing rather than widening the filter.
	if matches(t, query, fixture{name: "PlayStation 5", category: "Consoles"}) {
		t.Fatal("empty keyword set must not match everything")
	}
}

func TestComposeQueryConsolesWithoutGamesExcludesGames(t *testing.T) {
	query := mustCompose(t, FilterRequest{Types: "consoles"}, nil)

	cases := []struct {
		f    fixture
		want bool
	}{
		{fixture{name: "PlayStation 5 Console", category: "Consoles"}, true},
		{fixture{name: "Game for PS5", category: "Games"}, false},
		{fixture{name: "DualSense Controller", category: "Accessories"}, false},
	}

	for _, tc := range cases {
		if got := matches(t, query, tc.f); got != tc.want {
			t.Errorf("types=consoles: %q matched=%v, want %v", tc.f.name, got, tc.want)
		}
	}
}

func TestComposeQueryConsolesAndGamesHaveNoExclusion(t *testing.T) {
	query := mustCompose(t, FilterRequest{Types: "consoles,games"}, nil)

	if hasExclusion(query) {
		t.Fatal("selecting both paired types must not add an exclusion")
	}
	if !matches(t, query, fixture{name: "PlayStation 5 Console", category: "Consoles"}) {
		t.Fatal("console product must pass when both types selected")
	}
	if !matches(t, query, fixture{name: "Game for PS5", category: "Games"}) {
		t.Fatal("game product must pass when both types selected")
	}
}

func TestComposeQueryGamesWithoutConsolesExcludesConsoles(t *testing.T) {
	query := mustCompose(t, FilterRequest{Types: "games"}, nil)

	if matches(t, query, fixture{name: "Nintendo Switch Console", category: "Consoles"}) {
		t.Fatal("console-named product must be excluded for types=games")
	}
	if !matches(t, query, fixture{name: "Game for Switch", category: "Games"}) {
		t.Fatal("game product must pass for types=games")
	}
}

func TestComposeQueryAccessoriesAloneExcludesNothing(t *testing.T) {
	query := mustCompose(t, FilterRequest{Types: "accessories"}, nil)

	if hasExclusion(query) {
		t.Fatal("accessories alone has no paired exclusion")
	}
}

func TestComposeQueryPriceRangeWithDescendingSort(t *testing.T) {
	req := FilterRequest{MinPrice: "500", MaxPrice: "1500", Sort: SortPriceDesc}
	query := mustCompose(t, req, nil)

	prices := []float64{300, 600, 1200, 2000}
	var matched []float64
	for _, price := range prices {
		if matches(t, query, fixture{name: "Console", price: price}) {
			matched = append(matched, price)
		}
	}

	order := ResolveSort(req)
	if order[0].Key != "price" || order[0].Value != -1 {
		t.Fatalf("expected price descending sort, got %v", order)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(matched)))

	want := []float64{1200, 600}
	if len(matched) != len(want) {
		t.Fatalf("expected %v, got %v", want, matched)
	}
	for i := range want {
		if matched[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, matched)
		}
	}
}
