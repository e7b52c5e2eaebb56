package render

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	textutil "github.com/kk-code-lab/hnterm/internal/textutil"
)

// helpKeyColumn is the cell width of the key column in the help overlay.
const helpKeyColumn = 14

type helpOverlayEntry struct {
	keys string
	desc string
}

type helpOverlaySection struct {
	title   string
	entries []helpOverlayEntry
}

var helpOverlaySections = []helpOverlaySection{
	{
		title: "Navigation",
		entries: []helpOverlayEntry{
			{keys: "↑ / k", desc: "Previous story"},
			{keys: "↓ / j", desc: "Next story"},
			{keys: "↵ / → / l", desc: "Open story in viewer"},
		},
	},
	{
		title: "Feed",
		entries: []helpOverlayEntry{
			{keys: "m / Space", desc: "Load more stories"},
			{keys: "y", desc: "Yank story URL to clipboard"},
		},
	},
	{
		title: "Exit",
		entries: []helpOverlayEntry{
			{keys: "q", desc: "Quit"},
			{keys: "Ctrl+C", desc: "Quit immediately"},
			{keys: "Ctrl+Z", desc: "Suspend to shell"},
			{keys: "?", desc: "Close this help"},
		},
	},
}

func buildHelpOverlayLines() []string {
	lines := make([]string, 0, 20)
	for i, section := range helpOverlaySections {
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, section.title)
		for _, entry := range section.entries {
			pad := max(helpKeyColumn-textutil.DisplayWidth(entry.keys), 0)
			lines = append(lines, "  "+entry.keys+strings.Repeat(" ", pad)+" "+entry.desc)
		}
	}
	return lines
}

func (r *Renderer) drawHelpOverlay(w, h int) {
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	for y := 0; y < h; y++ {
		r.fillRow(y, 0, w, baseStyle)
	}

	title := " Help "
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg).Bold(true)
	r.fillRow(0, 0, w, headerStyle)
	titleStart := max((w-r.measureTextWidth(title))/2, 0)
	r.drawTextLine(titleStart, 0, w-titleStart, title, headerStyle)

	row := 2
	for _, line := range buildHelpOverlayLines() {
		if row >= h-1 {
			break
		}
		text := r.truncateTextToWidth(strings.TrimRight(line, " "), w-4)
		r.drawTextLine(2, row, w-4, text, baseStyle)
		row++
	}

	if h > 1 {
		footerStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
		r.drawTextLine(0, h-1, w, r.truncateTextToWidth("? toggle · Esc/q close", w), footerStyle)
	}
}
