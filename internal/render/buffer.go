package render

import "strings"

type line struct {
	text string
	// closed is set once a trailing block attribute has been applied.
	closed bool
}

// lineBuffer is the ordered list of output lines. The last line is always
// addressed as lines[len(lines)-1].
type lineBuffer struct {
	lines []line
}

func (b *lineBuffer) push(text string) {
	b.lines = append(b.lines, line{text: text})
}

func (b *lineBuffer) last() (string, bool) {
	if len(b.lines) == 0 {
		return "", false
	}
	l := b.lines[len(b.lines)-1]
	return l.text, !l.closed
}

func (b *lineBuffer) closeLast(text string) {
	idx := len(b.lines) - 1
	b.lines[idx] = line{text: text, closed: true}
}

func (b *lineBuffer) String() string {
	texts := make([]string, len(b.lines))
	for i, l := range b.lines {
		texts[i] = l.text
	}
	return strings.Join(texts, "\n")
}
