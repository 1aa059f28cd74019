package catalog

import (
	"context"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"bitzone/internal/models"
)

// FilterRequest carries the raw catalog query parameters exactly as received.
// All fields are optional; malformed values degrade to "no constraint".
type FilterRequest struct {
	Search    string
	Category  string
	MinPrice  string
	MaxPrice  string
	Platforms string
	Types     string
	Sort      string
	Page      string
}

// CategoryLookup resolves a carrier-assigned category id. A miss is
// (nil, nil), not an error.
type CategoryLookup interface {
	FindByID(ctx context.Context, id int64) (*models.Category, error)
}

// ComposeQuery assembles the Mongo filter for a catalog request as an AND of
// independent conditions. Exclusion heuristics are suppressed while free-text
// search is active: search is an explicit signal of intent that keyword
// guesses must not override. A category lookup miss omits the condition; a
// lookup failure fails the whole request.
func ComposeQuery(ctx context.Context, req FilterRequest, categories CategoryLookup) (bson.M, error) {
	conditions := make([]bson.M, 0, 6)

	if price := priceBounds(req.MinPrice, req.MaxPrice); len(price) > 0 {
		conditions = append(conditions, bson.M{"price": price})
	}

	if raw := strings.TrimSpace(req.Category); raw != "" && categories != nil {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			cat, err := categories.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if cat != nil {
				conditions = append(conditions, bson.M{"category": exactNameMatch(cat.Name)})
			}
		}
	}

	search := strings.TrimSpace(req.Search)
	if search != "" {
		conditions = append(conditions, bson.M{"$text": bson.M{"$search": search}})
	}

	if tags := splitTags(req.Platforms); len(tags) > 0 {
		conditions = append(conditions, platformConditions(tags, search == "")...)
	}

	if tags := splitTags(req.Types); len(tags) > 0 {
		conditions = append(conditions, typeConditions(tags, search == "")...)
	}

	if len(conditions) == 0 {
		return bson.M{}, nil
	}
	return bson.M{"$and": conditions}, nil
}

// priceBounds parses the optional bounds, dropping any value that is not
// numeric. min > max stays well-formed and simply matches nothing.
func priceBounds(minRaw, maxRaw string) bson.M {
	bounds := bson.M{}

	if v, err := strconv.ParseFloat(strings.TrimSpace(minRaw), 64); err == nil {
		bounds["$gte"] = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(maxRaw), 64); err == nil {
		bounds["$lte"] = v
	}

	return bounds
}

func splitTags(raw string) []string {
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// platformConditions always adds the inclusion OR across name and category.
// When search is empty it also excludes products whose name matches only an
// unselected platform.
func platformConditions(tags []string, allowExclusion bool) []bson.M {
	include := KeywordPattern(keywordsFor(platformKeywords, tags))

	out := []bson.M{{
		"$or": []bson.M{
			{"name": regexMatch(include)},
			{"category": regexMatch(include)},
		},
	}}

	if allowExclusion {
		rest := keywordsFor(platformKeywords, complementTags(platformKeywords, tags))
		if len(rest) > 0 {
			out = append(out, bson.M{"name": regexNotMatch(KeywordPattern(rest))})
		}
	}

	return out
}

// typeConditions mirrors the platform pattern but keys the exclusion off
// mutually exclusive tag pairs instead of a uniform complement: consoles
// without games drops game-named products, consoles without accessories drops
// accessory-named products, games without consoles drops console-named
// products. Accessories alone excludes nothing.
func typeConditions(tags []string, allowExclusion bool) []bson.M {
	selected := make(map[string]bool, len(tags))
	for _, tag := range tags {
		selected[tag] = true
	}

	include := KeywordPattern(keywordsFor(typeKeywords, tags))

	out := []bson.M{{
		"$or": []bson.M{
			{"name": regexMatch(include)},
			{"category": regexMatch(include)},
		},
	}}

	if !allowExclusion {
		return out
	}

	var excluded []string
	if selected["consoles"] {
		if !selected["games"] {
			excluded = append(excluded, "games")
		}
		if !selected["accessories"] {
			excluded = append(excluded, "accessories")
		}
	}
	if selected["games"] && !selected["consoles"] {
		excluded = append(excluded, "consoles")
	}

	rest := keywordsFor(typeKeywords, excluded)
	if len(rest) > 0 {
		out = append(out, bson.M{"name": regexNotMatch(KeywordPattern(rest))})
	}

	return out
}
