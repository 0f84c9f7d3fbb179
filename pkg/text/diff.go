package text

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// LineDiff renders a line-oriented diff of before and after, headed by
// "--- a/<path>" and "+++ b/<path>". Only changed lines are printed, each
// prefixed with "-" or "+". It returns "" when the two are equal.
func LineDiff(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}

	lines := newLineIndex()
	runesBefore := lines.encode(string(before))
	runesAfter := lines.encode(string(after))

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(runesBefore, runesAfter, false)

	var sb strings.Builder
	sb.WriteString("--- a/" + path + "\n")
	sb.WriteString("+++ b/" + path + "\n")
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range lines.decode(d.Text) {
			sb.WriteString(prefix)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// lineIndex maps each distinct line to a single rune so the diff runs per line.
type lineIndex struct {
	lines []string
	ids   map[string]rune
}

func newLineIndex() *lineIndex {
	return &lineIndex{ids: map[string]rune{}}
}

// surrogates are not valid runes and would not survive a string round trip
const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

func (li *lineIndex) encode(s string) []rune {
	var out []rune
	for len(s) > 0 {
		line := s
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			line = s[:i+1]
		}
		s = s[len(line):]

		id, ok := li.ids[line]
		if !ok {
			id = rune(len(li.lines) + 1)
			if id >= surrogateMin {
				id += surrogateMax - surrogateMin + 1
			}
			li.ids[line] = id
			li.lines = append(li.lines, line)
		}
		out = append(out, id)
	}
	return out
}

func (li *lineIndex) decode(s string) []string {
	var out []string
	for _, id := range s {
		idx := int(id) - 1
		if id > surrogateMax {
			idx -= surrogateMax - surrogateMin + 1
		}
		out = append(out, li.lines[idx])
	}
	return out
}
