package state

import (
	"time"

	"github.com/kk-code-lab/hnterm/internal/remote"
)

// Action is the base interface for all state mutations
type Action interface{}

// ===== FEED ACTIONS =====

// ItemsAction replaces the visible batch with the result of a page fetch.
type ItemsAction struct {
	Items     []remote.Item
	Requested int // page size the batch was requested with
	Total     int // length of the ranking at fetch time
	Cached    int // items held by the store after the fetch
}

// FetchMoreAction asks the orchestrator to grow the page and refetch.
type FetchMoreAction struct{}

// FetchFailedAction reports a page request that produced no batch.
type FetchFailedAction struct {
	Err error
}

// ErrorAction surfaces a failed side effect in the status line.
type ErrorAction struct {
	Err error
}

// ===== NAVIGATION ACTIONS =====

// NextSelectionAction moves the selection down one item.
type NextSelectionAction struct{}

// PrevSelectionAction moves the selection up one item.
type PrevSelectionAction struct{}

// ActivateAction opens the selected item.
type ActivateAction struct{}

// ClickRowAction selects the item drawn on list row Row (0 = first list row).
// A double click also activates it.
type ClickRowAction struct {
	Row    int
	Double bool
}

// OpenExternalAction is emitted by the reducer and handled by the orchestrator.
type OpenExternalAction struct {
	URL string
}

// ===== TERMINAL ACTIONS =====

// SetInputEnabledAction mirrors the input gate into state.
type SetInputEnabledAction struct {
	Enabled bool
}

// ResizeAction records new screen dimensions and re-clamps scrolling.
type ResizeAction struct {
	Width  int
	Height int
}

// SuspendAction stops the process for job control (Ctrl+Z).
type SuspendAction struct{}

// ===== VIEW ACTIONS =====

// YankURLAction copies the selected item's URL.
type YankURLAction struct{}

// CopyToClipboardAction is emitted by the reducer and handled by the orchestrator.
type CopyToClipboardAction struct {
	Text string
}

// YankedAction carries the clipboard outcome back into state.
type YankedAction struct {
	At  time.Time
	Err error
}

// HelpToggleAction shows or hides the key help overlay.
type HelpToggleAction struct{}

// ===== APPLICATION ACTIONS =====

// QuitAction ends the main loop.
type QuitAction struct{}
