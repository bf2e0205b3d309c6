package generator

import (
	"strings"
	"testing"
)

func TestPickFromPool(t *testing.T) {
	g := NewSeeded(1)
	pool := []string{"alpha", "beta", "gamma"}
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		w := g.Pick(pool)
		if w != "alpha" && w != "beta" && w != "gamma" {
			t.Fatalf("unexpected word %q", w)
		}
		seen[w] = true
	}
	if len(seen) != 3 {
		t.Fatalf("expected every word to be picked eventually, saw %v", seen)
	}
	if g.Pick(nil) != "" {
		t.Fatalf("expected empty pick from empty pool")
	}
}

func TestGibberishShape(t *testing.T) {
	g := NewSeeded(7)
	words := g.Gibberish(200)
	if len(words) != 200 {
		t.Fatalf("expected 200 words, got %d", len(words))
	}
	letters, symbols := 0, 0
	for _, w := range words {
		if len(w) < 8 || len(w) > 19 {
			t.Fatalf("gibberish length out of range: %q", w)
		}
		for _, ch := range w {
			switch {
			case strings.ContainsRune(gibberishLetters, ch):
				letters++
			case strings.ContainsRune(gibberishSymbols, ch):
				symbols++
			default:
				t.Fatalf("unexpected character %q in %q", ch, w)
			}
		}
	}
	ratio := float64(letters) / float64(letters+symbols)
	if ratio < 0.7 || ratio > 0.9 {
		t.Fatalf("expected about 80%% letters, got %.2f", ratio)
	}
}

func TestSeededIsDeterministic(t *testing.T) {
	a := NewSeeded(42).Gibberish(3)
	b := NewSeeded(42).Gibberish(3)
	if strings.Join(a, ",") != strings.Join(b, ",") {
		t.Fatalf("expected identical output for identical seeds")
	}
}
