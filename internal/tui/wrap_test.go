package tui

import (
	"strings"
	"testing"
)

func TestBuildStyledRunesCursor(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), 1, false, nil)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != correctStyle.Render("a") {
		t.Fatalf("expected correct style for first rune")
	}
	if runes[1].s != cursorStyle.Render("b") {
		t.Fatalf("expected cursor style for second rune")
	}
}

func TestBuildStyledRunesMissedCursor(t *testing.T) {
	runes := buildStyledRunes([]rune("ab"), 1, true, nil)
	if runes[1].s != incorrectStyle.Underline(true).Render("b") {
		t.Fatalf("expected incorrect style under the cursor")
	}
}

func TestBuildStyledRunesMissedSpaceDot(t *testing.T) {
	runes := buildStyledRunes([]rune("a b"), 1, true, nil)
	if runes[1].s != incorrectStyle.Underline(true).Render(string(missedSpace)) {
		t.Fatalf("expected red dot for a missed space")
	}
	if runes[1].isSpace {
		t.Fatalf("a marked space must not be a wrap point")
	}
}

func TestBuildStyledRunesWordHighlighting(t *testing.T) {
	runes := buildStyledRunes([]rune("one"), 1, false, []string{"two"})
	if len(runes) != 7 {
		t.Fatalf("expected word, separator and queue, got %d runes", len(runes))
	}
	if runes[2].s != currentWordStyle.Render("e") {
		t.Fatalf("expected current word style for untyped in current word")
	}
	if !runes[3].isSpace {
		t.Fatalf("expected a space between word and queue")
	}
	if runes[4].s != pendingStyle.Render("t") {
		t.Fatalf("expected pending style for queued word")
	}
}

func TestWrapStyledRunesBreaksAtSpaces(t *testing.T) {
	runes := buildStyledRunes([]rune("go"), 0, false, []string{"chan", "select"})
	out := wrapStyledRunes(runes, 8)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", out)
	}
}

func TestWrapStyledRunesWideRunes(t *testing.T) {
	runes := buildStyledRunes([]rune("日本語"), 0, false, nil)
	if runes[0].width != 2 {
		t.Fatalf("expected double width rune, got %d", runes[0].width)
	}
	out := wrapStyledRunes(runes, 4)
	if len(strings.Split(out, "\n")) != 2 {
		t.Fatalf("expected wide runes to wrap by width, got %q", out)
	}
}
