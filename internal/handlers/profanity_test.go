package handlers

import "testing"

func TestContainsProfanity(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Чудова консоль, рекомендую!", false},
		{"Great console, works perfectly", false},
		{"what the FUCK is this delivery time", true},
		{"Ця сука не працює", true},
		{"", false},
	}

	for _, tc := range cases {
		if got := containsProfanity(tc.text); got != tc.want {
			t.Errorf("containsProfanity(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}
