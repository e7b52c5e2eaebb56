package input

import (
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	statepkg "github.com/kk-code-lab/hnterm/internal/state"
)

// InputHandler converts tcell events to Actions
type InputHandler struct {
	// helpVisible mirrors AppState.HelpVisible. The watcher goroutine reads it,
	// the main loop writes it after every reduce.
	helpVisible atomic.Bool

	// Mouse tracking, touched only by the goroutine calling Translate.
	buttonDown    bool
	lastClickRow  int
	lastClickTime time.Time
	now           func() time.Time
}

const doubleClickThreshold = 300 * time.Millisecond

// listTop is the screen row of the first list item.
const listTop = 1

// NewInputHandler creates a new input handler
func NewInputHandler() *InputHandler {
	return &InputHandler{now: time.Now, lastClickRow: -1}
}

// SetHelpVisible tells the handler whether the help overlay is open.
func (ih *InputHandler) SetHelpVisible(visible bool) {
	ih.helpVisible.Store(visible)
}

// Translate converts a tcell event into an Action. It returns nil for events
// with no binding.
func (ih *InputHandler) Translate(ev tcell.Event) statepkg.Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return ih.translateKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		return statepkg.ResizeAction{Width: w, Height: h}
	case *tcell.EventMouse:
		return ih.translateMouse(ev)
	default:
		return nil
	}
}

func (ih *InputHandler) translateKey(ev *tcell.EventKey) statepkg.Action {
	if ih.helpVisible.Load() {
		switch ev.Key() {
		case tcell.KeyCtrlC:
			return statepkg.QuitAction{}
		case tcell.KeyEscape:
			return statepkg.HelpToggleAction{}
		case tcell.KeyRune:
			switch ev.Rune() {
			case '?', 'q', 'Q':
				return statepkg.HelpToggleAction{}
			}
		}
		return nil
	}

	// Handle special keys first
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return statepkg.QuitAction{}
	case tcell.KeyCtrlZ:
		return statepkg.SuspendAction{}
	case tcell.KeyUp:
		return statepkg.PrevSelectionAction{}
	case tcell.KeyDown:
		return statepkg.NextSelectionAction{}
	case tcell.KeyEnter, tcell.KeyRight:
		return statepkg.ActivateAction{}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return statepkg.QuitAction{}
		case 'k':
			return statepkg.PrevSelectionAction{}
		case 'j':
			return statepkg.NextSelectionAction{}
		case 'l':
			return statepkg.ActivateAction{}
		case 'm', ' ':
			return statepkg.FetchMoreAction{}
		case 'y':
			return statepkg.YankURLAction{}
		case '?':
			return statepkg.HelpToggleAction{}
		}
	}
	return nil
}

// translateMouse maps a primary press on a list row to a selection and the
// wheel to selection moves. Drags and releases produce nothing.
func (ih *InputHandler) translateMouse(ev *tcell.EventMouse) statepkg.Action {
	buttons := ev.Buttons()
	if ih.helpVisible.Load() {
		ih.buttonDown = buttons&tcell.Button1 != 0
		return nil
	}

	switch {
	case buttons&tcell.WheelUp != 0:
		return statepkg.PrevSelectionAction{}
	case buttons&tcell.WheelDown != 0:
		return statepkg.NextSelectionAction{}
	case buttons&tcell.Button1 == 0:
		ih.buttonDown = false
		return nil
	case ih.buttonDown:
		return nil
	}
	ih.buttonDown = true

	_, y := ev.Position()
	row := y - listTop
	if row < 0 {
		return nil
	}

	now := ih.now()
	double := row == ih.lastClickRow && now.Sub(ih.lastClickTime) <= doubleClickThreshold
	if double {
		// A third click starts a new pair.
		ih.lastClickRow = -1
	} else {
		ih.lastClickRow = row
	}
	ih.lastClickTime = now
	return statepkg.ClickRowAction{Row: row, Double: double}
}
