// Package template parses the four-section story template:
// title, source-language body, vocabulary glossary, translation.
package template

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/mithrel/hanashi/pkg/api"
)

// Chapter is the structured result of a successful parse. It carries no
// identity or timestamp; the library layer assigns those at import time.
type Chapter struct {
	Title       string
	Body        string
	Vocabulary  []api.VocabEntry
	Translation string
}

// ErrMalformedTemplate is returned when the template is missing a title or a
// body. Callers surface the message as the user-facing format hint.
var ErrMalformedTemplate = errors.New(
	"template must contain numbered sections: ### 1. Title / ### 2. body / ### 3. vocabulary / ### 4. translation")

// section is the parser's single piece of mutable state: which content
// category the current line belongs to.
type section int

const (
	sectionNone section = iota
	sectionTitle
	sectionBody
	sectionVocab
	sectionTranslation
)

var (
	headingRe  = regexp.MustCompile(`^#{2,3}\s*(.*)$`)
	numberedRe = regexp.MustCompile(`^#{2,3}\s*(\d+)\.(.*)$`)
	// Optional "Title:" label; the colon may be ASCII or full-width.
	titleLabelRe = regexp.MustCompile(`^Title\s*[:：]\s*`)
	// Bullet glossary line: optional * or - bullet, bold word, separator, meaning.
	vocabLineRe = regexp.MustCompile(`^\s*[*-]?\s*\*\*(.+?)\*\*\s*[:：]\s*(.+)$`)
)

const (
	vocabMarker       = "重要単語"
	translationMarker = "日本語訳"
)

// Parse scans text line by line and returns the structured chapter, or
// ErrMalformedTemplate when title or body are missing. It never returns a
// partially filled chapter alongside an error.
//
// Boundary lines change the active section and contribute no content.
// Precedence per line: numbered heading, then translation keyword, then
// vocabulary keyword.
func Parse(text string) (Chapter, error) {
	var (
		cur       = sectionNone
		title     string
		body      strings.Builder
		vocab     []api.VocabEntry
		transl    strings.Builder
		haveTitle = false // title captured (inline or fallback line)
	)

	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		if m := numberedRe.FindStringSubmatch(line); m != nil {
			n, _ := strconv.Atoi(m[1])
			switch n {
			case 1:
				cur = sectionTitle
				if t := strings.TrimSpace(titleLabelRe.ReplaceAllString(strings.TrimSpace(m[2]), "")); t != "" {
					title = t
					haveTitle = true
				}
			case 2:
				cur = sectionBody
			case 3:
				cur = sectionVocab
			case 4:
				cur = sectionTranslation
			}
			// Unknown numbers fall through without a section change;
			// the heading line itself is never collected.
			continue
		}
		if m := headingRe.FindStringSubmatch(line); m != nil {
			if strings.Contains(m[1], translationMarker) {
				cur = sectionTranslation
				continue
			}
			if strings.Contains(m[1], vocabMarker) {
				cur = sectionVocab
				continue
			}
			// A heading inside the translation section becomes a bold
			// sub-title on its own paragraph; elsewhere it falls through
			// to plain accumulation below.
			if cur == sectionTranslation {
				sub := strings.TrimSpace(titleLabelRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
				if sub != "" {
					transl.WriteString("**" + sub + "**\n\n")
				}
				continue
			}
		}

		switch cur {
		case sectionTitle:
			// Fallback for templates that put the title on the line after
			// the heading: keep only the first non-blank line.
			if !haveTitle && strings.TrimSpace(line) != "" {
				title = strings.TrimSpace(line)
				haveTitle = true
			}
		case sectionBody:
			body.WriteString(line)
			body.WriteString("\n")
		case sectionVocab:
			if m := vocabLineRe.FindStringSubmatch(line); m != nil {
				vocab = append(vocab, api.VocabEntry{
					Word:    strings.TrimSpace(m[1]),
					Meaning: strings.TrimSpace(m[2]),
				})
			}
			// Non-matching lines are tolerated, not errors.
		case sectionTranslation:
			transl.WriteString(line)
			transl.WriteString("\n")
		}
	}

	b := strings.TrimSpace(body.String())
	if title == "" || b == "" {
		return Chapter{}, ErrMalformedTemplate
	}
	return Chapter{
		Title:       title,
		Body:        b,
		Vocabulary:  vocab,
		Translation: strings.TrimSpace(transl.String()),
	}, nil
}
