package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Char", "Accuracy", "Correct"}
	rows := [][]string{
		{"a", "97.50%", "12"},
		{"<space>", "8.00%", "3"},
	}
	rightAlign := map[int]bool{1: true, 2: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "Char    Accuracy Correct" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "------- -------- -------" {
		t.Fatalf("unexpected rule line: %q", lines[1])
	}
	if lines[2] != "a         97.50%      12" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
	if lines[3] != "<space>    8.00%       3" {
		t.Fatalf("unexpected row line: %q", lines[3])
	}
}

func TestFormatTableWideRunes(t *testing.T) {
	lines := formatTable([]string{"K", "N"}, [][]string{{"界", "1"}, {"a", "22"}}, map[int]bool{1: true})
	if lines[2] != "界  1" {
		t.Fatalf("unexpected wide row: %q", lines[2])
	}
	if lines[3] != "a  22" {
		t.Fatalf("unexpected narrow row: %q", lines[3])
	}
}
