package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/kk-code-lab/hnterm/internal/logging"
	"github.com/kk-code-lab/hnterm/internal/remote"
	statepkg "github.com/kk-code-lab/hnterm/internal/state"
	inputui "github.com/kk-code-lab/hnterm/internal/ui/input"
	renderui "github.com/kk-code-lab/hnterm/internal/ui/render"
)

// pageLoadedAction and pageFailedAction carry a page result back to the
// loop together with the request generation that produced it.
type pageLoadedAction struct {
	gen   uint64
	batch statepkg.ItemsAction
}

type pageFailedAction struct {
	gen uint64
	err error
}

// Run drives the application until the user quits or ctx is cancelled.
// The screen is finalised on return.
func (app *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	app.cancel = cancel
	defer app.Close()

	events := inputui.Pump(ctx, app.screen)
	watcher := inputui.NewWatcher(events, app.gate, app.input, app.queue, app.pollInterval)
	app.goSafe(func() { watcher.Run(ctx) })

	var sigContCh chan os.Signal
	if sigs := contSignals(); len(sigs) > 0 {
		sigContCh = make(chan os.Signal, 1)
		signal.Notify(sigContCh, sigs...)
		defer signal.Stop(sigContCh)
	}

	var flashTimer *time.Timer
	var flashCh <-chan time.Time
	defer func() {
		if flashTimer != nil {
			flashTimer.Stop()
		}
	}()

	app.requestPage(ctx)
	app.renderer.Render(app.state)

	for !app.state.QuitRequested {
		lastYank := app.state.LastYankTime

		select {
		case <-ctx.Done():
			return nil
		case action := <-app.queue.C():
			app.handleAction(ctx, action)
		case <-sigContCh:
			app.resumeAfterStop()
		case <-flashCh:
			flashCh = nil
		}

		// Repaint once more when the copy confirmation expires.
		if !app.state.LastYankTime.Equal(lastYank) {
			if flashTimer == nil {
				flashTimer = time.NewTimer(renderui.YankFlashDuration)
			} else {
				flashTimer.Reset(renderui.YankFlashDuration)
			}
			flashCh = flashTimer.C
		}

		app.render()
	}
	logging.Info("quit requested")
	return nil
}

func (app *Application) render() {
	if app.needsSync {
		app.needsSync = false
		app.renderer.Redraw(app.state)
		return
	}
	app.renderer.Render(app.state)
}

// handleAction resolves internal page results, then reduces the action and
// performs whatever follow-up it asks for.
func (app *Application) handleAction(ctx context.Context, action statepkg.Action) {
	switch a := action.(type) {
	case nil:
		return
	case pageLoadedAction:
		if a.gen < app.applied {
			logging.Debug("dropping stale page", "gen", a.gen, "applied", app.applied)
			return
		}
		app.applied = a.gen
		action = a.batch
	case pageFailedAction:
		if a.gen < app.applied {
			logging.Debug("dropping stale page failure", "gen", a.gen, "applied", app.applied, "err", a.err)
			return
		}
		action = statepkg.FetchFailedAction{Err: a.err}
	}

	for action != nil {
		follow := app.reduce(action)
		action = app.perform(ctx, follow)
	}
}

// reduce applies action to the state and returns the follow-up.
func (app *Application) reduce(action statepkg.Action) statepkg.Action {
	var follow statepkg.Action
	app.state, follow = statepkg.Reduce(app.state, action)
	app.input.SetHelpVisible(app.state.HelpVisible)
	if _, ok := action.(statepkg.ResizeAction); ok {
		app.needsSync = true
	}
	return follow
}

// perform carries out a follow-up effect. Effects that finish synchronously
// report back with another action for the reducer.
func (app *Application) perform(ctx context.Context, effect statepkg.Action) statepkg.Action {
	switch e := effect.(type) {
	case nil:
		return nil
	case statepkg.FetchMoreAction:
		app.fetchMore(ctx)
		return nil
	case statepkg.OpenExternalAction:
		return app.openExternal(e.URL)
	case statepkg.CopyToClipboardAction:
		return app.copyToClipboard(e.Text)
	case statepkg.SuspendAction:
		app.suspendToShell()
		return nil
	default:
		logging.Debug("unhandled follow-up", "action", fmt.Sprintf("%T", effect))
		return nil
	}
}

// requestPage fetches ranking positions [0, pageSize) in the background and
// queues the result under a fresh generation.
func (app *Application) requestPage(ctx context.Context) {
	app.generation++
	gen, size := app.generation, app.pageSize
	store := app.coord.Store()
	logging.Debug("requesting page", "gen", gen, "size", size)

	app.goSafe(func() {
		items, err := app.coord.FetchRange(ctx, 0, size)
		var rangeErr *remote.RangeError
		if errors.As(err, &rangeErr) && rangeErr.Len == 0 {
			items, err = []remote.Item{}, nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logging.Warn("page fetch failed", "gen", gen, "size", size, "err", err)
			app.queue.Dispatch(ctx, pageFailedAction{gen: gen, err: err})
			return
		}
		app.queue.Dispatch(ctx, pageLoadedAction{gen: gen, batch: statepkg.ItemsAction{
			Items:     items,
			Requested: size,
			Total:     len(store.Identifiers()),
			Cached:    store.CachedCount(),
		}})
	})
}

// fetchMore grows the page by one step and requests it again. With no
// ranking yet it re-requests the current page instead.
func (app *Application) fetchMore(ctx context.Context) {
	total := app.state.Total
	switch {
	case total == 0:
	case app.pageSize >= total && len(app.state.Items) > 0:
		logging.Debug("all stories loaded", "total", total)
		return
	default:
		app.pageSize = min(app.pageSize+app.pageStep, total)
	}
	app.requestPage(ctx)
}
