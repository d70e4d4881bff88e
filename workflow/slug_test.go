package workflow

import (
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Empowering Communities Through Education", "empowering-communities-through-education"},
		{"  Café  Opening!! ", "cafe-opening"},
		{"Clean Water Reaches 10,000 Families", "clean-water-reaches-10-000-families"},
		{"---already-slugged---", "already-slugged"},
		{"Ünïcödé Tëst", "unicode-test"},
		{"تعلیم", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugifyDeterministic(t *testing.T) {
	title := "Youth Sports Program Launches in 2025"
	if Slugify(title) != Slugify(title) {
		t.Fatalf("slug must be deterministic")
	}
}

func TestSlugifyTruncates(t *testing.T) {
	got := Slugify(strings.Repeat("ab ", 150))
	if len(got) > MaxSlugLength {
		t.Fatalf("slug longer than %d: %d", MaxSlugLength, len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("truncated slug must not end with hyphen: %q", got)
	}
}
