package render

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/hnterm/internal/remote"
	statepkg "github.com/kk-code-lab/hnterm/internal/state"
	textutil "github.com/kk-code-lab/hnterm/internal/textutil"
	"github.com/mattn/go-runewidth"
)

const (
	headerTitle = " Hacker News "
	feedName    = "top stories"

	// YankFlashDuration is how long the status line confirms a copy.
	YankFlashDuration = 2 * time.Second
)

// Renderer handles all UI rendering
type Renderer struct {
	screen        tcell.Screen
	theme         ColorTheme
	asciiWidth    [128]int
	runeWidthWide sync.Map // For non-ASCII runes
	now           func() time.Time
}

// NewRenderer creates a new renderer
func NewRenderer(screen tcell.Screen) *Renderer {
	r := &Renderer{
		screen: screen,
		theme:  GetColorTheme(),
		now:    time.Now,
	}
	for i := range r.asciiWidth {
		r.asciiWidth[i] = runewidth.RuneWidth(rune(i))
	}
	return r
}

// Render draws the entire UI based on state
func (r *Renderer) Render(state statepkg.AppState) {
	r.draw(state)
	r.screen.Show()
}

// Redraw repaints every cell, discarding whatever the terminal currently
// shows. Used after an external program had the screen.
func (r *Renderer) Redraw(state statepkg.AppState) {
	r.draw(state)
	r.screen.Sync()
}

func (r *Renderer) draw(state statepkg.AppState) {
	r.screen.Clear()
	w, h := r.screen.Size()
	if w <= 0 || h <= 0 {
		return
	}

	if state.HelpVisible {
		r.drawHelpOverlay(w, h)
		return
	}

	r.drawHeader(state, w)
	r.drawItemList(state, w, h)
	r.drawStatusLine(state, w, h)
	r.drawFooter(state, w, h)
}

// drawHeader renders the top bar with the feed name and counts
func (r *Renderer) drawHeader(state statepkg.AppState, w int) {
	headerStyle := tcell.StyleDefault.Background(r.theme.HeaderBg).Foreground(r.theme.HeaderFg)

	endX := r.drawTextLine(0, 0, w, headerTitle, headerStyle.Bold(true))
	endX = r.drawTextLine(endX, 0, w-endX, feedName, headerStyle)
	r.fillRow(0, endX, w, headerStyle)

	counts := formatFeedCounts(len(state.Items), state.Total, state.Cached)
	if counts == "" {
		return
	}
	counts += " "
	if endX+1+r.measureTextWidth(counts) <= w {
		r.drawTextRight(w, 0, counts, headerStyle)
	}
}

func (r *Renderer) listBounds(h int) (top, bottom int) {
	return 1, h - 2
}

// drawItemList renders one row per item starting at the scroll offset
func (r *Renderer) drawItemList(state statepkg.AppState, w, h int) {
	top, bottom := r.listBounds(h)
	baseStyle := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)

	if bottom <= top {
		return
	}

	if state.Loading || len(state.Items) == 0 {
		msg := "No stories"
		if state.Loading {
			msg = "Loading…"
		}
		y := top + (bottom-top)/2
		x := max((w-r.measureTextWidth(msg))/2, 0)
		r.drawTextLine(x, y, w-x, msg, baseStyle.Foreground(r.theme.MetaFg))
		return
	}

	rankWidth := len(fmt.Sprintf("%d", len(state.Items)))
	now := r.now()
	y := top
	for idx := state.ScrollOffset; idx < len(state.Items) && y < bottom; idx++ {
		r.drawItemRow(state.Items[idx], idx, rankWidth, idx == state.SelectedIndex, now, w, y)
		y++
	}
}

func (r *Renderer) drawItemRow(it remote.Item, idx, rankWidth int, selected bool, now time.Time, w, y int) {
	base := tcell.StyleDefault.Background(r.theme.Background).Foreground(r.theme.Foreground)
	rankStyle := base.Foreground(r.theme.RankFg)
	titleStyle := base.Foreground(r.theme.TitleFg)
	domainStyle := base.Foreground(r.theme.DomainFg)
	metaStyle := base.Foreground(r.theme.MetaFg)
	if selected {
		sel := tcell.StyleDefault.Background(r.theme.SelectionBg).Foreground(r.theme.SelectionFg)
		base, rankStyle, titleStyle, domainStyle, metaStyle = sel, sel, sel.Bold(true), sel, sel
	}

	marker := "  "
	if selected {
		marker = "» "
	}
	prefix := fmt.Sprintf("%s%*d. ", marker, rankWidth, idx+1)
	x := r.drawTextLine(0, y, w, prefix, rankStyle)

	title := textutil.SanitizeTerminalText(it.Title)
	domain := ""
	if d := formatDomain(it.URL); d != "" {
		domain = " (" + textutil.SanitizeTerminalText(d) + ")"
	}
	meta := "  " + textutil.SanitizeTerminalText(formatItemMeta(it, now)) + " "

	// The title keeps priority; meta is dropped before the domain is.
	avail := w - x
	titleWidth := r.measureTextWidth(title)
	domainWidth := r.measureTextWidth(domain)
	metaWidth := r.measureTextWidth(meta)
	if titleWidth+domainWidth+metaWidth > avail {
		meta, metaWidth = "", 0
	}
	if titleWidth+domainWidth > avail {
		domain, domainWidth = "", 0
	}
	title = r.truncateTextToWidth(title, avail)

	x = r.drawTextLine(x, y, w-x, title, titleStyle)
	x = r.drawTextLine(x, y, w-x, domain, domainStyle)
	r.fillRow(y, x, w, base)
	if metaWidth > 0 {
		r.drawTextRight(w, y, meta, metaStyle)
	}
}

// drawStatusLine shows a copy confirmation, the last error, or details of
// the selected item, in that order of precedence.
func (r *Renderer) drawStatusLine(state statepkg.AppState, w, h int) {
	y := h - 2
	if y < 1 {
		return
	}
	normalStyle := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	flashStyle := tcell.StyleDefault.Background(r.theme.FlashBg).Foreground(r.theme.FlashFg)
	errorStyle := normalStyle.Foreground(r.theme.ErrorFg)

	text, style := r.statusText(state)
	switch style {
	case statusFlash:
		r.fillRow(y, 0, w, flashStyle)
		r.drawTextLine(0, y, w, r.truncateTextToWidth(text, w), flashStyle)
	case statusError:
		r.fillRow(y, 0, w, normalStyle)
		r.drawTextLine(0, y, w, r.truncateTextToWidth(text, w), errorStyle)
	default:
		r.fillRow(y, 0, w, normalStyle)
		r.drawTextLine(0, y, w, r.truncateTextToWidth(text, w), normalStyle)
	}
}

type statusKind int

const (
	statusNormal statusKind = iota
	statusFlash
	statusError
)

func (r *Renderer) statusText(state statepkg.AppState) (string, statusKind) {
	if !state.LastYankTime.IsZero() && r.now().Sub(state.LastYankTime) < YankFlashDuration {
		if it, ok := state.SelectedItem(); ok && it.HasURL() {
			return " copied " + textutil.SanitizeTerminalText(it.URL), statusFlash
		}
		return " copied", statusFlash
	}
	if state.LastError != nil {
		return " error: " + textutil.SanitizeTerminalText(state.LastError.Error()), statusError
	}
	if state.Loading {
		return " fetching " + feedName + "…", statusNormal
	}
	it, ok := state.SelectedItem()
	if !ok {
		return "", statusNormal
	}
	if it.HasURL() {
		return " " + textutil.SanitizeTerminalText(it.URL), statusNormal
	}
	if first := textutil.FirstLine(it.Text); first != "" {
		return " " + textutil.SanitizeTerminalText(first), statusNormal
	}
	return fmt.Sprintf(" item %d has no link", it.ID), statusNormal
}

func (r *Renderer) drawFooter(state statepkg.AppState, w, h int) {
	y := h - 1
	if y < 1 {
		return
	}
	style := tcell.StyleDefault.Background(r.theme.FooterBg).Foreground(r.theme.FooterFg)
	helpText := textutil.SanitizeTerminalText(buildFooterHelpText(state))
	endX := r.drawTextLine(0, y, w, r.truncateTextToWidth(helpText, w), style)
	r.fillRow(y, endX, w, style)
}
