package ui

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits", "short", 10, "short"},
		{"exact", "exact", 5, "exact"},
		{"cut", "a longer label", 8, "a longe…"},
		{"one", "abc", 1, "…"},
		{"zero", "abc", 0, ""},
		{"runes", "日本語のテキスト", 4, "日本語…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.max); got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "no markup here", "no markup here"},
		{"paragraphs", "<p>first</p><p>second</p>", "first\nsecond"},
		{"nested", "<div><p>only</p></div>", "only"},
		{"breaks", "line one<br>line two", "line one\nline two"},
		{"inline", "<strong>bold</strong> and <em>italic</em>", "bold and italic"},
		{"entities", "a &amp; b &lt;c&gt; &quot;d&quot; &#39;e&#39;&nbsp;f", "a & b <c> \"d\" 'e' f"},
		{"double escaped", "&amp;lt;b&amp;gt; stays literal", "&lt;b&gt; stays literal"},
		{"uppercase", "<P>shout</P>", "shout"},
		{"empty", "", ""},
		{"only markup", "<p></p><div></div>", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripHTML(tt.in); got != tt.want {
				t.Fatalf("stripHTML(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
