package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncatePath fuzzes the TruncatePath function with random paths and widths.
func FuzzTruncatePath(f *testing.F) {
	seeds := []struct {
		path     string
		maxWidth int
	}{
		{"main.geojson", 40},
		{"/very/long/path/to/some/dataset.geojson", 20},
		{"", 0},
		{"short", -5},
		{"/data/census.2020.gpkg", 4},
		{"héllo/wörld.csv", 10},
	}
	for _, seed := range seeds {
		f.Add(seed.path, seed.maxWidth)
	}

	f.Fuzz(func(t *testing.T, path string, maxWidth int) {
		result := TruncatePath(path, maxWidth)

		if utf8.ValidString(path) && !utf8.ValidString(result) {
			t.Errorf("TruncatePath(%q, %d) produced invalid UTF-8", path, maxWidth)
		}
		if maxWidth > 3 && len([]rune(result)) > maxWidth && len([]rune(path)) > maxWidth {
			t.Errorf("TruncatePath(%q, %d) = %q exceeds width", path, maxWidth, result)
		}
	})
}

// FuzzParseBoolString fuzzes the ParseBoolString function with arbitrary strings.
func FuzzParseBoolString(f *testing.F) {
	for _, seed := range []string{"yes", "no", "true", "FALSE", "1", "0", "", "maybe"} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		value, err := ParseBoolString(s)
		if err != nil && value {
			t.Errorf("ParseBoolString(%q) returned true alongside an error", s)
		}
	})
}

// FuzzGetPlainLabel fuzzes the label mapping with arbitrary scores.
func FuzzGetPlainLabel(f *testing.F) {
	for _, seed := range []float64{0, 39.9, 40, 59.9, 60, 79.9, 80, 100, -5, 250} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, score float64) {
		label := GetPlainLabel(score)
		switch label {
		case GoodValue, FairValue, PoorValue, CriticalValue:
		default:
			t.Errorf("GetPlainLabel(%v) = %q is not a known label", score, label)
		}
		if score >= 80 && label != GoodValue {
			t.Errorf("GetPlainLabel(%v) = %q, want %q", score, label, GoodValue)
		}
	})
}
