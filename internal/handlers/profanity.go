package handlers

import (
	"regexp"

	"bitzone/internal/catalog"
)

// Words that block a review from being published. The pattern is built with
// the same escaped-alternation helper the catalog filters use, so the list
// can never produce a malformed regex.
var profanityWords = []string{
	"блять", "сука", "хуй", "підар", "мудак",
	"fuck", "shit", "bitch", "asshole",
}

var profanityPattern = regexp.MustCompile("(?i)" + catalog.KeywordPattern(profanityWords))

func containsProfanity(text string) bool {
	return profanityPattern.MatchString(text)
}
