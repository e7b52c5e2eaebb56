package render

import (
	"strings"

	statepkg "github.com/kk-code-lab/hnterm/internal/state"
)

// buildFooterHelpText returns the contextual footer hint string with leading/trailing padding.
func buildFooterHelpText(state statepkg.AppState) string {
	parts := buildFooterHelpSegments(state)
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, "  ") + " "
}

// buildFooterHelpSegments assembles context-aware help hints for the footer.
func buildFooterHelpSegments(state statepkg.AppState) []string {
	if state.Loading {
		return []string{"q: quit", "?: help"}
	}

	segments := []string{"↑/↓: select"}
	if it, ok := state.SelectedItem(); ok && it.HasURL() {
		segments = append(segments, "↵: open", "y: yank url")
	}
	if state.Total == 0 || len(state.Items) < state.Total {
		segments = append(segments, "m: more")
	}
	return append(segments, "?: help", "q: quit")
}
