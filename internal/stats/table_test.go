package stats

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTableAlignsColumns(t *testing.T) {
	tbl := newTable(column{title: "Char"}, column{title: "Accuracy", right: true}, column{title: "Correct", right: true})
	tbl.add("a", "97.50%", "12")
	tbl.add(charLabel(" "), "8.00%", "3")

	want := []string{
		"Char    Accuracy Correct",
		"a         97.50%      12",
		"<space>    8.00%       3",
	}
	if diff := cmp.Diff(want, tbl.lines()); diff != "" {
		t.Fatalf("unexpected table (-want +got):\n%s", diff)
	}
}

func TestTableWideRunes(t *testing.T) {
	tbl := newTable(column{title: "Char"}, column{title: "N", right: true})
	tbl.add("日", "1")
	tbl.add("a", "22")

	var buf bytes.Buffer
	if err := tbl.write(&buf); err != nil {
		t.Fatalf("write table: %v", err)
	}
	want := "Char  N\n日    1\na    22\n"
	if buf.String() != want {
		t.Fatalf("unexpected table:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestTableShortRow(t *testing.T) {
	tbl := newTable(column{title: "A"}, column{title: "B"})
	tbl.add("x")
	lines := tbl.lines()
	if lines[1] != "x  " {
		t.Fatalf("expected padded empty cell, got %q", lines[1])
	}
}
