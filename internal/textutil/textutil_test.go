package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeTerminalTextLeavesSafeInput(t *testing.T) {
	input := "Show HN: Ünïcode & emoji 🚀"
	if got := SanitizeTerminalText(input); got != input {
		t.Fatalf("expected %q to remain untouched, got %q", input, got)
	}
}

func TestSanitizeTerminalText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"csi colour", "bad\x1b[31mred\x1b[0m title", "badred title"},
		{"osc hyperlink", "click \x1b]8;;http://evil\x07here\x1b]8;;\x07", "click here"},
		{"newlines", "two\nlines\r", "two lines "},
		{"tabs", "a\tb", "a b"},
		{"bare controls", "x\x01y\x7fz", "x?y?z"},
		{"lone escape", "a\x1bb", "a?b"},
		{"c1 control", "a\u009bb", "a?b"},
		{"rlo override", "a\u202eb", "a⟪RLO⟫b"},
		{"zero width", "x\u200by", "x⟪ZWSP⟫y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeTerminalText(tt.in)
			if got != tt.want {
				t.Fatalf("SanitizeTerminalText(%q) = %q, want %q", tt.in, got, tt.want)
			}
			for _, r := range got {
				if r < 0x20 || r == 0x7f {
					t.Fatalf("control rune %U left in %q", r, got)
				}
			}
		})
	}
}

func TestSanitizeTerminalTextComposes(t *testing.T) {
	if got := SanitizeTerminalText("Cafe\u0301 Zu\u0308rich"); got != "Caf\u00e9 Z\u00fcrich" {
		t.Fatalf("expected NFC output, got %q", got)
	}
}

func TestPlainTextStripsTagsAndDecodesEntities(t *testing.T) {
	in := `Is it just me?<p>I keep seeing &quot;<i>rewrite it</i>&quot; &amp; nothing else.<p><a href="https://x.test">link</a><script>alert(1)</script>`
	got := PlainText(in)

	if strings.Contains(got, "<") || strings.Contains(got, "alert") {
		t.Fatalf("tags left in %q", got)
	}
	want := "Is it just me?\nI keep seeing \"rewrite it\" & nothing else.\nlink"
	if got != want {
		t.Fatalf("PlainText = %q, want %q", got, want)
	}
}

func TestPlainTextCollapsesWhitespace(t *testing.T) {
	got := PlainText("  spaced\t\tout   <br>  <br/> next ")
	if got != "spaced out\nnext" {
		t.Fatalf("unexpected %q", got)
	}
	if PlainText("") != "" {
		t.Fatalf("empty input should stay empty")
	}
}

func TestFirstLine(t *testing.T) {
	if got := FirstLine("<p>first</p><p>second</p>"); got != "first" {
		t.Fatalf("FirstLine = %q", got)
	}
	if got := FirstLine("only"); got != "only" {
		t.Fatalf("FirstLine = %q", got)
	}
}

func TestExpandTabs(t *testing.T) {
	if got := ExpandTabs("a\tbc\td", 4); got != "a   bc  d" {
		t.Fatalf("ExpandTabs = %q", got)
	}
	if got := ExpandTabs("no tabs", 4); got != "no tabs" {
		t.Fatalf("ExpandTabs changed plain text: %q", got)
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"abc", 3},
		{"你好", 4},
		{"", 0},
		{"ü", 1},
	}
	for _, tt := range tests {
		if got := DisplayWidth(tt.text); got != tt.want {
			t.Fatalf("DisplayWidth(%q)=%d want %d", tt.text, got, tt.want)
		}
	}
}
