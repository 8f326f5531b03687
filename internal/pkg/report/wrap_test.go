package report

import (
	"reflect"
	"strings"
	"testing"
)

// measureRunes treats every rune as one page unit
func measureRunes(s string) float64 {
	return float64(len([]rune(s)))
}

func TestWrapText_ShortLineUnchanged(t *testing.T) {
	lines := WrapText("uma nota curta", 30, measureRunes)
	if !reflect.DeepEqual(lines, []string{"uma nota curta"}) {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestWrapText_BreaksAtWhitespace(t *testing.T) {
	lines := WrapText("aluno demonstrou progresso na leitura", 20, measureRunes)

	want := []string{"aluno demonstrou", "progresso na leitura"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %#v, want %#v", lines, want)
	}
	for _, line := range lines {
		if measureRunes(line) > 20 {
			t.Fatalf("line %q exceeds width", line)
		}
	}
}

func TestWrapText_GreedyPacking(t *testing.T) {
	lines := WrapText("a b c d e f", 5, measureRunes)

	want := []string{"a b c", "d e f"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %#v, want %#v", lines, want)
	}
}

func TestWrapText_HardBreaksLongRun(t *testing.T) {
	word := strings.Repeat("x", 100)
	lines := WrapText(word, 20, measureRunes)

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %#v", len(lines), lines)
	}
	if len([]rune(lines[0])) != 45 || len([]rune(lines[1])) != 45 {
		t.Fatalf("expected 45-character segments, got %d and %d", len([]rune(lines[0])), len([]rune(lines[1])))
	}
	if lines[2] != strings.Repeat("x", 10) {
		t.Fatalf("unexpected tail: %q", lines[2])
	}
}

func TestWrapText_WideWordBelowHardBreakEmittedWhole(t *testing.T) {
	// Wider than the page but shorter than the hard-break limit: the word
	// is emitted as its own line instead of looping.
	word := strings.Repeat("y", 30)
	lines := WrapText(word, 20, measureRunes)

	if !reflect.DeepEqual(lines, []string{word}) {
		t.Fatalf("unexpected lines: %#v", lines)
	}
}

func TestWrapText_PreservesParagraphs(t *testing.T) {
	lines := WrapText("primeira\n\nsegunda", 30, measureRunes)

	want := []string{"primeira", "", "segunda"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("got %#v, want %#v", lines, want)
	}
}
