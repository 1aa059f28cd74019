package catalog

// Keyword taxonomy for the two filter tag families. Adding a tag is adding a
// map entry; the composer never needs to know tag names. All keywords are
// lowercase, matching is case-insensitive.

var platformKeywords = map[string][]string{
	"sony": {
		"playstation", "ps5", "ps4", "dualsense", "dualshock", "psvr",
	},
	"xbox": {
		"xbox", "series x", "series s", "game pass", "kinect",
	},
	"nintendo": {
		"nintendo", "switch", "joy-con", "joycon", "amiibo", "wii",
	},
	"steamdeck": {
		"steam deck", "steamdeck", "valve",
	},
}

var typeKeywords = map[string][]string{
	"consoles": {
		"console", "консоль", "приставка", "playstation 5", "playstation 4",
		"xbox series", "nintendo switch", "steam deck",
	},
	"games": {
		"game for", "гра", "диск", "edition", "deluxe", "remastered",
		"game of the year",
	},
	"accessories": {
		"controller", "gamepad", "геймпад", "headset", "навушники", "charging",
		"dock", "stand", "case", "cable", "joystick", "memory card",
	},
}

// keywordsFor collects keywords for the given tags. Unknown tags contribute
// nothing and are not an error.
func keywordsFor(family map[string][]string, tags []string) []string {
	var keywords []string
	for _, tag := range tags {
		keywords = append(keywords, family[tag]...)
	}
	return keywords
}

// complementTags returns every known tag of the family not present in the
// selection.
func complementTags(family map[string][]string, selected []string) []string {
	chosen := make(map[string]struct{}, len(selected))
	for _, tag := range selected {
		chosen[tag] = struct{}{}
	}

	var rest []string
	for tag := range family {
		if _, ok := chosen[tag]; !ok {
			rest = append(rest, tag)
		}
	}
	return rest
}
