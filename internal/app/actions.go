package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/kk-code-lab/hnterm/internal/logging"
	statepkg "github.com/kk-code-lab/hnterm/internal/state"
)

var errNoViewer = errors.New("no viewer configured (set viewer.command or $BROWSER)")

// commandBuilder is swapped out in tests.
var commandBuilder = exec.Command

// withTerminalReleased hands the terminal to fn. Input is gated off before
// the screen is suspended and back on only after it has been resumed.
func (app *Application) withTerminalReleased(fn func()) error {
	app.gate.Disable()
	app.reduce(statepkg.SetInputEnabledAction{Enabled: false})
	defer func() {
		app.gate.Enable()
		app.reduce(statepkg.SetInputEnabledAction{Enabled: true})
		app.needsSync = true
	}()

	if err := app.screen.Suspend(); err != nil {
		return fmt.Errorf("failed to suspend screen: %w", err)
	}

	fn()

	if err := app.screen.Resume(); err != nil {
		return fmt.Errorf("failed to resume screen: %w", err)
	}
	// Keys typed at the viewer must not reach the list.
	if err := flushConsoleInput(); err != nil {
		logging.Debug("console input flush failed", "err", err)
	}
	// A resize while the terminal was away never reached the list.
	app.syncScreenSize()
	return nil
}

// syncScreenSize records the current screen dimensions in state.
func (app *Application) syncScreenSize() {
	if w, h := app.screen.Size(); w > 0 && h > 0 {
		app.reduce(statepkg.ResizeAction{Width: w, Height: h})
	}
}

// openExternal runs the viewer on url and blocks until it exits. Only a
// failure to launch is reported; the viewer's own exit status is not.
func (app *Application) openExternal(url string) statepkg.Action {
	if len(app.viewerCmd) == 0 {
		return statepkg.ErrorAction{Err: errNoViewer}
	}

	args := viewerArgsWithURL(app.viewerCmd, url)
	logging.Info("opening viewer", "cmd", args[0], "url", url)

	var runErr error
	if err := app.withTerminalReleased(func() { runErr = runViewer(args) }); err != nil {
		return statepkg.ErrorAction{Err: err}
	}

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
	case errors.As(runErr, &exitErr):
		logging.Debug("viewer exited", "cmd", args[0], "code", exitErr.ExitCode())
	default:
		return statepkg.ErrorAction{Err: fmt.Errorf("run viewer %s: %w", args[0], runErr)}
	}
	return nil
}

// runViewer binds the command to the controlling terminal when there is one
// so it works even if our stdio is redirected.
func runViewer(args []string) error {
	cmd := commandBuilder(args[0], args[1:]...)

	if runtime.GOOS != "windows" {
		if tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0); err == nil {
			defer func() {
				_ = tty.Close()
			}()
			cmd.Stdin = tty
			cmd.Stdout = tty
			cmd.Stderr = tty
			return cmd.Run()
		}
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func viewerArgsWithURL(viewerCmd []string, url string) []string {
	args := make([]string, len(viewerCmd)+1)
	copy(args, viewerCmd)
	args[len(viewerCmd)] = url
	return args
}

func (app *Application) copyToClipboard(text string) statepkg.Action {
	if err := app.clipboardWrite(text); err != nil {
		logging.Warn("clipboard write failed", "err", err)
		return statepkg.YankedAction{Err: fmt.Errorf("copy to clipboard: %w", err)}
	}
	return statepkg.YankedAction{At: app.now()}
}
