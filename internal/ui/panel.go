package ui

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

func width(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, w int) string {
	if total <= 0 {
		total = 1
	}
	if w < 5 {
		w = 5
	}
	if done > total {
		done = total
	}
	filled := int(float64(done) / float64(total) * float64(w))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", w-filled)
	pct := int(float64(done)/float64(total)*100 + 0.5)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(out io.Writer, lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := width(ln); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		if vis := width(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(out, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(out, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(out, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

// Truncate shortens s to max display columns with an ellipsis.
func Truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}
