// Package arabic prepares Arabic text for rendering inside an LTR document
// engine: contextual glyph shaping plus visual reordering of RTL runs.
package arabic

import (
	"regexp"
	"strings"

	"github.com/abdullahdiaa/garabic"
)

// Arabic, Arabic Supplement and Arabic Extended-A blocks.
var arabicPattern = regexp.MustCompile(`[\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}]`)

// ContainsArabic reports whether s holds at least one Arabic-range rune.
func ContainsArabic(s string) bool {
	return arabicPattern.MatchString(s)
}

// Normalize collapses runs of whitespace into single spaces and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ShapeResult is the outcome of a best-effort shaping pass. Both variants are
// success: Shaped=false means the original text was kept, either because it
// needed no shaping or because the shaper faulted and we fell back. A legible
// unshaped invoice beats a failed generation.
type ShapeResult struct {
	Text   string
	Shaped bool
}

// ShapeForDisplay converts logical Arabic text into the visually ordered,
// contextually shaped form the PDF engine expects. Non-Arabic input is
// returned unchanged.
func ShapeForDisplay(s string) ShapeResult {
	if s == "" || !ContainsArabic(s) {
		return ShapeResult{Text: s}
	}

	shaped, ok := shape(s)
	if !ok {
		return ShapeResult{Text: s}
	}
	return ShapeResult{Text: reorderRuns(shaped), Shaped: true}
}

// shape runs the external shaping library. The library is pure Go, so its
// only failure mode is a panic on malformed input; that is recovered here and
// reported as a fallback rather than allowed to abort the whole generation.
func shape(s string) (out string, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = s, false
		}
	}()
	return garabic.Shape(s), true
}

// reorderRuns applies a simplified bidi reordering: the line is split into
// directional runs, the run order is reversed, and runes inside each Arabic
// run are reversed. Latin and numeric runs keep their internal order.
func reorderRuns(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}

	type run struct {
		text   []rune
		arabic bool
	}

	var runs []run
	cur := run{arabic: isArabicRune(runes[0])}
	for _, r := range runes {
		a := isArabicRune(r)
		if isNeutralRune(r) {
			a = cur.arabic
		}
		if a != cur.arabic {
			runs = append(runs, cur)
			cur = run{arabic: a}
		}
		cur.text = append(cur.text, r)
	}
	runs = append(runs, cur)

	var b strings.Builder
	b.Grow(len(s))
	for i := len(runs) - 1; i >= 0; i-- {
		if runs[i].arabic {
			for j := len(runs[i].text) - 1; j >= 0; j-- {
				b.WriteRune(runs[i].text[j])
			}
		} else {
			b.WriteString(string(runs[i].text))
		}
	}
	return b.String()
}

func isArabicRune(r rune) bool {
	// Includes the presentation-form blocks the shaper emits.
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0x08A0 && r <= 0x08FF) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

func isNeutralRune(r rune) bool {
	switch r {
	case ' ', '\t', '.', ',', ':', ';', '-', '(', ')', '/':
		return true
	}
	return false
}
