package state

import (
	"time"

	"github.com/kk-code-lab/hnterm/internal/remote"
)

// chromeLines is the number of rows taken by the header and status line.
const chromeLines = 3

// AppState represents the complete application state.
// It is owned by the main loop and only changed through Reduce.
type AppState struct {
	// Feed
	Items     []remote.Item
	Loading   bool // true until the first batch arrives
	Requested int
	Total     int
	Cached    int

	// Navigation
	SelectedIndex int // -1 when nothing is selected
	ScrollOffset  int

	// Terminal
	InputEnabled  bool
	QuitRequested bool
	HelpVisible   bool

	// Dimensions
	ScreenWidth  int
	ScreenHeight int

	// Status line
	LastYankTime time.Time // Time of last successful yank (for flash effect)
	LastError    error
}

// NewAppState returns the state the application starts in.
func NewAppState() AppState {
	return AppState{
		Loading:       true,
		SelectedIndex: -1,
		InputEnabled:  true,
	}
}

// SelectedItem returns the item under the cursor.
func (s AppState) SelectedItem() (remote.Item, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Items) {
		return remote.Item{}, false
	}
	return s.Items[s.SelectedIndex], true
}

// VisibleLines is the number of item rows that fit on screen.
func (s AppState) VisibleLines() int {
	return s.ScreenHeight - chromeLines
}

func (s *AppState) updateScrollVisibility() {
	visibleLines := s.VisibleLines()
	if s.SelectedIndex < 0 || visibleLines <= 0 {
		s.ScrollOffset = 0
		return
	}

	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+visibleLines {
		s.ScrollOffset = s.SelectedIndex - visibleLines + 1
	}

	maxOffset := max(len(s.Items)-visibleLines, 0)
	s.ScrollOffset = min(max(s.ScrollOffset, 0), maxOffset)
}
