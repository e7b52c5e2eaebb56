package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/hnterm/internal/config"
	"github.com/kk-code-lab/hnterm/internal/logging"
	"github.com/kk-code-lab/hnterm/internal/remote"
	statepkg "github.com/kk-code-lab/hnterm/internal/state"
	inputui "github.com/kk-code-lab/hnterm/internal/ui/input"
	renderui "github.com/kk-code-lab/hnterm/internal/ui/render"
)

var errClipboardUnavailable = errors.New("no clipboard utility available")

// Application represents the running app.
type Application struct {
	screen   tcell.Screen
	state    statepkg.AppState
	queue    *statepkg.Queue
	gate     *inputui.Gate
	input    *inputui.InputHandler
	renderer *renderui.Renderer
	coord    *remote.Coordinator

	viewerCmd    []string
	pageSize     int
	pageStep     int
	pollInterval time.Duration

	// generation numbers page requests; applied is the newest one reduced.
	generation uint64
	applied    uint64

	// needsSync forces a full repaint on the next render.
	needsSync bool

	clipboardWrite func(string) error
	now            func() time.Time

	cancel    context.CancelFunc
	closeOnce sync.Once
}

type options struct {
	viewerCmd    []string
	pageSize     int
	pageStep     int
	pollInterval time.Duration
}

// NewApplication opens the terminal and wires the fetch stack from cfg.
func NewApplication(cfg config.Config) (*Application, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	// Parse mouse sequences so clicks don't leak as key events.
	screen.EnableMouse()

	client := remote.NewClient(remote.ClientOptions{
		BaseURL:   cfg.Remote.BaseURL,
		UserAgent: cfg.Remote.UserAgent,
		Timeout:   cfg.Remote.Timeout,
		RateLimit: cfg.Remote.RateLimit,
	})
	coord := remote.NewCoordinator(remote.NewStore(client), cfg.Remote.MaxConcurrency)

	viewerCmd, ok := detectViewerCommand(cfg.Viewer.Command)
	if ok {
		logging.Info("viewer resolved", "cmd", viewerCmd)
	} else {
		logging.Warn("no viewer command found, links cannot be opened")
	}

	app := newApplication(screen, coord, options{
		viewerCmd:    viewerCmd,
		pageSize:     cfg.Feed.PageSize,
		pageStep:     cfg.Feed.PageStep,
		pollInterval: cfg.Input.PollInterval,
	})
	if clipboard.Unsupported {
		app.clipboardWrite = func(string) error { return errClipboardUnavailable }
	}
	return app, nil
}

func newApplication(screen tcell.Screen, coord *remote.Coordinator, opts options) *Application {
	if opts.pageSize <= 0 {
		opts.pageSize = config.Default().Feed.PageSize
	}
	if opts.pageStep <= 0 {
		opts.pageStep = config.Default().Feed.PageStep
	}

	app := &Application{
		screen:         screen,
		state:          statepkg.NewAppState(),
		queue:          statepkg.NewQueue(statepkg.DefaultQueueSize),
		gate:           inputui.NewGate(),
		input:          inputui.NewInputHandler(),
		renderer:       renderui.NewRenderer(screen),
		coord:          coord,
		viewerCmd:      opts.viewerCmd,
		pageSize:       opts.pageSize,
		pageStep:       opts.pageStep,
		pollInterval:   opts.pollInterval,
		clipboardWrite: clipboard.WriteAll,
		now:            time.Now,
	}
	w, h := screen.Size()
	app.reduce(statepkg.ResizeAction{Width: w, Height: h})
	return app
}

// Close cancels background work and restores the terminal. Safe to call
// more than once and from any goroutine.
func (app *Application) Close() error {
	app.closeOnce.Do(func() {
		if app.cancel != nil {
			app.cancel()
		}
		app.screen.Fini()
	})
	return nil
}

// goSafe runs fn on its own goroutine. A panic restores the terminal
// before it propagates.
func (app *Application) goSafe(fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				_ = app.Close()
				panic(r)
			}
		}()
		fn()
	}()
}
