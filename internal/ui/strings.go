package ui

import (
	"strings"
)

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// blockEndTags are HTML tags whose close (or self-close) reads as a
// line break in plain text.
var blockEndTags = []string{"</p>", "</div>", "</li>", "</h1>", "</h2>", "</h3>", "<br>", "<br/>", "<br />"}

// stripHTML flattens a rich-text HTML fragment into plain terminal
// text. The backend stores whatever the web editor produced, so this
// only handles the structural tags and common entities.
func stripHTML(html string) string {
	s := html
	for _, tag := range blockEndTags {
		s = strings.ReplaceAll(s, tag, "\n")
		s = strings.ReplaceAll(s, strings.ToUpper(tag), "\n")
	}

	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}

	// Decode in fixed order, &amp; last, so double-escaped text like
	// &amp;lt; resolves to &lt; instead of decoding twice.
	out := b.String()
	for _, e := range []struct{ entity, text string }{
		{"&nbsp;", " "},
		{"&lt;", "<"},
		{"&gt;", ">"},
		{"&quot;", "\""},
		{"&#39;", "'"},
		{"&amp;", "&"},
	} {
		out = strings.ReplaceAll(out, e.entity, e.text)
	}

	// Collapse runs of blank lines left behind by nested block tags.
	lines := strings.Split(out, "\n")
	var kept []string
	blank := false
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" {
			if !blank && len(kept) > 0 {
				kept = append(kept, "")
			}
			blank = true
			continue
		}
		blank = false
		kept = append(kept, trimmed)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
