package catalog

import (
	"regexp"
	"testing"
)

func TestKeywordPatternEmptyListMatchesNothing(t *testing.T) {
	pattern := KeywordPattern(nil)

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		t.Fatalf("empty-list pattern does not compile: %v", err)
	}

	for _, input := range []string{"", "a", "anything at all", "a^"} {
		if re.MatchString(input) {
			t.Fatalf("empty keyword list matched %q", input)
		}
	}
}

func TestKeywordPatternBlankKeywordsAreDropped(t *testing.T) {
	pattern := KeywordPattern([]string{"  ", "", "\t"})

	re := regexp.MustCompile("(?i)" + pattern)
	if re.MatchString("playstation") {
		t.Fatal("all-blank keyword list must match nothing")
	}
}

func TestKeywordPatternMatchesAnyAlternative(t *testing.T) {
	pattern := KeywordPattern([]string{"playstation", "ps5", "dualsense"})
	re := regexp.MustCompile("(?i)" + pattern)

	cases := []struct {
		input string
		want  bool
	}{
		{"PlayStation 5 Console", true},
		{"Sony PS5 Digital", true},
		{"DUALSENSE Edge", true},
		{"Xbox Series X", false},
	}

	for _, tc := range cases {
		if got := re.MatchString(tc.input); got != tc.want {
			t.Errorf("MatchString(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestKeywordPatternEscapesSpecialCharacters(t *testing.T) {
	// Category names flow through the same builder and are externally
	// supplied; pattern metacharacters must stay literal.
	pattern := KeywordPattern([]string{"games (ps5)", "c++ tools", "a.b"})

	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		t.Fatalf("escaped pattern does not compile: %v", err)
	}

	if !re.MatchString("Games (PS5) bundle") {
		t.Fatal("literal parentheses should match")
	}
	if !re.MatchString("best C++ tools") {
		t.Fatal("literal plus signs should match")
	}
	if re.MatchString("axb") {
		t.Fatal("dot must not act as a wildcard")
	}
}
