package markup

import (
	"html/template"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender_EmptyInput(t *testing.T) {
	assert.Equal(t, template.HTML(""), Render(""))
}

func TestRender_Emphasis(t *testing.T) {
	t.Run("bold and italic in one paragraph", func(t *testing.T) {
		got := Render("Hello **world**, *today*!")
		assert.Equal(t, template.HTML("<p>Hello <strong>world</strong>, <em>today</em>!</p>"), got)
	})

	t.Run("bold is non-greedy", func(t *testing.T) {
		got := Render("**a** and **b**")
		assert.Equal(t, template.HTML("<p><strong>a</strong> and <strong>b</strong></p>"), got)
	})

	t.Run("unmatched single star stays literal", func(t *testing.T) {
		got := Render("a * b")
		assert.Equal(t, template.HTML("<p>a * b</p>"), got)
	})

	t.Run("unmatched double star stays literal", func(t *testing.T) {
		got := Render("a ** b")
		assert.Equal(t, template.HTML("<p>a ** b</p>"), got)
	})

	t.Run("italic does not cross lines", func(t *testing.T) {
		got := Render("a *b\nc* d")
		assert.Equal(t, template.HTML("<p>a *b<br>c* d</p>"), got)
	})
}

func TestRender_Paragraphs(t *testing.T) {
	t.Run("blank line separates paragraphs", func(t *testing.T) {
		got := Render("First paragraph.\n\nSecond paragraph.")
		assert.Equal(t, template.HTML("<p>First paragraph.</p>\n<p>Second paragraph.</p>"), got)
	})

	t.Run("many blank lines still one break", func(t *testing.T) {
		got := Render("a\n\n\n\nb")
		assert.Equal(t, template.HTML("<p>a</p>\n<p>b</p>"), got)
	})

	t.Run("single newline becomes br", func(t *testing.T) {
		got := Render("line one\nline two")
		assert.Equal(t, template.HTML("<p>line one<br>line two</p>"), got)
	})

	t.Run("surrounding whitespace trimmed per block", func(t *testing.T) {
		got := Render("  padded  \n\n  also padded  ")
		assert.Equal(t, template.HTML("<p>padded</p>\n<p>also padded</p>"), got)
	})
}

func TestRender_EscapesStructuralMarkup(t *testing.T) {
	t.Run("tags never pass through", func(t *testing.T) {
		got := string(Render(`<script>alert("x")</script>`))
		assert.NotContains(t, got, "<script>")
		assert.Contains(t, got, "&lt;script&gt;")
	})

	t.Run("emphasis still works around escaped text", func(t *testing.T) {
		got := string(Render("**<b>**"))
		assert.Equal(t, "<p><strong>&lt;b&gt;</strong></p>", got)
	})

	t.Run("ampersands escaped once", func(t *testing.T) {
		got := string(Render("fish & chips"))
		assert.Contains(t, got, "fish &amp; chips")
		assert.NotContains(t, got, "&amp;amp;")
	})
}

func TestRender_Deterministic(t *testing.T) {
	in := "Mixed **bold** and *italic*\n\nwith <i>tags</i> & breaks\nhere."
	assert.Equal(t, Render(in), Render(in))
}

func TestRender_CRLF(t *testing.T) {
	got := Render("a\r\n\r\nb")
	assert.Equal(t, template.HTML("<p>a</p>\n<p>b</p>"), got)
}

func TestRender_LongBody(t *testing.T) {
	// Paragraph order must match input order.
	in := strings.Join([]string{"one", "two", "three"}, "\n\n")
	got := string(Render(in))
	assert.Equal(t, "<p>one</p>\n<p>two</p>\n<p>three</p>", got)
}
