// Package overlay composites one rendered view on top of another,
// preserving ANSI styling in both layers. It is how dialogs float over
// the main layout without bubbletea knowing about z-ordering.
package overlay

import (
	"bytes"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/termenv"
)

var shadowStyle = termenv.String("░").Foreground(termenv.RGBColor("#333333"))

// PlaceOverlay draws fg over bg at cell position x,y. When center is
// set the position is ignored and fg is centered. When shadow is set a
// drop shadow is drawn below and to the right of fg first.
func PlaceOverlay(x, y int, fg, bg string, shadow, center bool) string {
	fgLines, fgWidth := splitLines(fg)
	bgLines, bgWidth := splitLines(bg)
	fgHeight := len(fgLines)
	bgHeight := len(bgLines)

	if shadow {
		var sb strings.Builder
		for i := 0; i <= fgHeight; i++ {
			sb.WriteString("  ")
			if i > 0 {
				sb.WriteString(strings.Repeat(shadowStyle.String(), fgWidth))
			}
			sb.WriteByte('\n')
		}
		fg = PlaceOverlay(0, 0, fg, sb.String(), false, false)
		fgLines, fgWidth = splitLines(fg)
		fgHeight = len(fgLines)
	}

	// The foreground covers everything; nothing of bg would show.
	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return fg
	}

	if center {
		x = (bgWidth - fgWidth) / 2
		y = (bgHeight - fgHeight) / 2
	}
	x = clamp(x, 0, bgWidth-fgWidth)
	y = clamp(y, 0, bgHeight-fgHeight)

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(strings.Repeat(" ", x-pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		lineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= lineWidth-pos {
			b.WriteString(strings.Repeat(" ", lineWidth-rightWidth-pos))
		}
		b.WriteString(right)
	}
	return b.String()
}

func splitLines(s string) ([]string, int) {
	lines := strings.Split(s, "\n")
	widest := 0
	for _, line := range lines {
		if w := ansi.PrintableRuneWidth(line); w > widest {
			widest = w
		}
	}
	return lines, widest
}

// cutLeft drops the first cutWidth printable cells from s, keeping any
// ANSI sequences that style what remains.
func cutLeft(s string, cutWidth int) string {
	var (
		pos    int
		inEsc  bool
		escBuf bytes.Buffer
		out    bytes.Buffer
	)
	for _, r := range s {
		var w int
		if r == ansi.Marker || inEsc {
			inEsc = true
			escBuf.WriteRune(r)
			if ansi.IsTerminator(r) {
				inEsc = false
				if bytes.HasSuffix(escBuf.Bytes(), []byte("[0m")) {
					escBuf.Reset()
				}
			}
		} else {
			w = runewidth.RuneWidth(r)
		}

		if pos >= cutWidth {
			if out.Len() == 0 {
				if escBuf.Len() > 0 {
					out.Write(escBuf.Bytes())
				}
				// A wide rune straddling the cut leaves a half cell.
				if pos-cutWidth > 1 {
					out.WriteByte(' ')
					continue
				}
			}
			out.WriteRune(r)
		}
		pos += w
	}
	return out.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
