package tokens

import (
	"strings"
	"testing"

	"github.com/randalmurphal/tokenlens/registry"
)

func approxModel(scale float64) *registry.Model {
	return &registry.Model{
		ID:       "m-approx",
		Provider: "Test",
		Strategy: registry.StrategyApprox,
		Scale:    scale,
	}
}

func TestCountEmptyText(t *testing.T) {
	c := NewCounter()

	models := map[string]*registry.Model{
		"nil model": nil,
		"approx":    approxModel(4),
		"exact": {
			ID:       "m-exact",
			Strategy: registry.StrategyExact,
			Encoding: "cl100k_base",
			Scale:    1,
		},
	}
	for name, m := range models {
		if got := c.Count("", m); got != 0 {
			t.Errorf("%s: Count(\"\") = %d, want 0", name, got)
		}
	}
}

func TestCountApprox(t *testing.T) {
	c := NewCounter()

	tests := []struct {
		text  string
		scale float64
		want  int
	}{
		{"aaaa", 4, 1},
		{"aaaaa", 4, 2},
		{"abc", 4, 1},
		{strings.Repeat("x", 400), 4, 100},
		{"hello world", 3.5, 4}, // ceil(11/3.5)
		// Multibyte text counts code points, not bytes (7 runes here).
		{"日本語テキスト", 2, 4},
	}
	for _, tt := range tests {
		if got := c.Count(tt.text, approxModel(tt.scale)); got != tt.want {
			t.Errorf("Count(%q, scale %g) = %d, want %d", tt.text, tt.scale, got, tt.want)
		}
	}
}

func TestCountNilModelUsesHeuristic(t *testing.T) {
	c := NewCounter()

	text := strings.Repeat("a", 10)
	want := 3 // ceil(10/4)
	if got := c.Count(text, nil); got != want {
		t.Errorf("Count with nil model = %d, want %d", got, want)
	}
}

func TestCountUnknownStrategyUsesHeuristic(t *testing.T) {
	c := NewCounter()

	m := &registry.Model{ID: "weird", Strategy: "magic", Scale: 1}
	if got, want := c.Count("aaaaaaaa", m), 2; got != want {
		t.Errorf("Count = %d, want %d", got, want)
	}
}

func TestCountExactBadEncodingFallsBack(t *testing.T) {
	c := NewCounter()

	m := &registry.Model{
		ID:       "m-bad",
		Strategy: registry.StrategyExact,
		Encoding: "no_such_encoding",
		Scale:    1,
	}
	text := "hello world, this is a test"
	if got, want := c.Count(text, m), Estimate(text); got != want {
		t.Errorf("Count with bad encoding = %d, want heuristic %d", got, want)
	}

	// A failed init must not poison later calls; repeat gives the same
	// fallback rather than a cached failure artifact.
	if got, want := c.Count(text, m), Estimate(text); got != want {
		t.Errorf("second Count with bad encoding = %d, want %d", got, want)
	}
}

func TestCountNeverNegative(t *testing.T) {
	c := NewCounter()

	texts := []string{"", "a", "hello", strings.Repeat("z", 1000), "日本語"}
	models := []*registry.Model{nil, approxModel(4), approxModel(0.5)}
	for _, text := range texts {
		for _, m := range models {
			if got := c.Count(text, m); got < 0 {
				t.Errorf("Count(%q) = %d, negative", text, got)
			}
		}
	}
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"a", 1},
		{"aaaa", 1},
		{"aaaaa", 2},
		{strings.Repeat("a", 100), 25},
	}
	for _, tt := range tests {
		if got := Estimate(tt.text); got != tt.want {
			t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
