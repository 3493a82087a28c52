// Package markup converts restricted inline emphasis syntax into safe HTML
// fragments: paragraphs, line breaks, bold, italic. Nothing else from the
// input can become structure; everything is escaped first.
package markup

import (
	"html"
	"html/template"
	"regexp"
	"strings"
)

var (
	boldRe = regexp.MustCompile(`\*\*(.+?)\*\*`)
	paraRe = regexp.MustCompile(`\n{2,}`)
)

// Render converts text into a trusted HTML fragment. Empty input yields an
// empty fragment. The result is deterministic and the function has no
// failure path; any input text is renderable.
//
// Escaping of the original input happens before the emphasis passes, so the
// only tags in the output are the ones this package emits.
func Render(text string) template.HTML {
	if text == "" {
		return ""
	}
	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = html.EscapeString(s)
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicize(s)

	blocks := paraRe.Split(s, -1)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		// Remaining single newlines are visible breaks within a paragraph.
		b = strings.ReplaceAll(b, "\n", "<br>")
		out = append(out, "<p>"+b+"</p>")
	}
	return template.HTML(strings.Join(out, "\n"))
}

// italicize wraps *X* spans in <em>. Only lone asterisks delimit italics: a
// star touching another star belongs to a bold marker (consumed or
// unmatched) and is left alone. RE2 has no lookaround, hence the scan.
func italicize(s string) string {
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '*' {
			b.WriteByte(s[i])
			i++
			continue
		}
		run := starRun(s, i)
		if run != 1 {
			b.WriteString(s[i : i+run])
			i += run
			continue
		}
		if end, ok := closingStar(s, i+1); ok {
			b.WriteString("<em>" + s[i+1:end] + "</em>")
			i = end + 1
			continue
		}
		b.WriteByte('*')
		i++
	}
	return b.String()
}

// starRun returns the length of the asterisk run starting at i.
func starRun(s string, i int) int {
	j := i
	for j < len(s) && s[j] == '*' {
		j++
	}
	return j - i
}

// closingStar finds the next lone asterisk after start that closes an italic
// span on the same line with non-blank content.
func closingStar(s string, start int) (int, bool) {
	for k := start; k < len(s); k++ {
		switch s[k] {
		case '\n':
			return 0, false
		case '*':
			if starRun(s, k) != 1 {
				return 0, false
			}
			if strings.TrimSpace(s[start:k]) == "" {
				return 0, false
			}
			return k, true
		}
	}
	return 0, false
}
