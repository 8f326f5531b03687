package report

import "strings"

// MeasureFunc returns the rendered width of a string in page units
type MeasureFunc func(s string) float64

// hardBreakLimit is the character count used to split a run of text that
// has no whitespace boundary before the overflow point.
const hardBreakLimit = 45

// WrapText splits text into lines that fit the printable width. Each
// logical line is packed greedily word by word; when adding a word would
// overflow, the line breaks at the preceding whitespace boundary. A single
// word wider than the printable width is hard-broken at hardBreakLimit
// characters.
func WrapText(text string, width float64, measure MeasureFunc) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, wrapLine(line, width, measure)...)
	}
	return out
}

func wrapLine(line string, width float64, measure MeasureFunc) []string {
	if strings.TrimSpace(line) == "" {
		return []string{""}
	}

	var lines []string
	words := strings.Fields(line)
	current := ""

	for i := 0; i < len(words); i++ {
		word := words[i]

		candidate := word
		if current != "" {
			candidate = current + " " + word
		}

		if measure(candidate) <= width {
			current = candidate
			continue
		}

		if current != "" {
			// Break at the last whitespace boundary before overflow and
			// reconsider the word on a fresh line.
			lines = append(lines, current)
			current = ""
			i--
			continue
		}

		head, tail := hardBreak(word)
		if tail == "" {
			// Shorter than the hard-break limit yet wider than the page:
			// emit it whole rather than loop forever.
			lines = append(lines, head)
			continue
		}
		lines = append(lines, head)
		words[i] = tail
		i--
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

// hardBreak splits a word at hardBreakLimit characters
func hardBreak(word string) (head, tail string) {
	runes := []rune(word)
	if len(runes) <= hardBreakLimit {
		return word, ""
	}
	return string(runes[:hardBreakLimit]), string(runes[hardBreakLimit:])
}
