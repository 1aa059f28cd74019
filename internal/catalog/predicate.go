package catalog

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// matchNothing is a valid pattern no input can satisfy. An empty keyword list
// must match nothing, not everything, or a missing taxonomy entry would
// silently widen the filter.
const matchNothing = "a^"

// KeywordPattern builds a case-insensitive "contains any of these" regex
// alternation. Keywords are escaped literally; category names and keyword
// phrases must never be interpreted as pattern syntax.
func KeywordPattern(keywords []string) string {
	escaped := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		escaped = append(escaped, regexp.QuoteMeta(kw))
	}

	if len(escaped) == 0 {
		return matchNothing
	}
	return strings.Join(escaped, "|")
}

func regexMatch(pattern string) bson.M {
	return bson.M{"$regex": pattern, "$options": "i"}
}

func regexNotMatch(pattern string) bson.M {
	return bson.M{"$not": primitive.Regex{Pattern: pattern, Options: "i"}}
}

// exactNameMatch builds a whole-string case-insensitive equality condition.
func exactNameMatch(name string) bson.M {
	return bson.M{"$regex": "^" + regexp.QuoteMeta(name) + "$", "$options": "i"}
}
