//go:build windows

package app

import "github.com/kk-code-lab/hnterm/internal/logging"

// On Windows there is no SIGTSTP/SIGCONT; treat suspend as no-op.
func (app *Application) suspendToShell() {
	logging.Debug("suspend is not supported on windows")
}

func (app *Application) resumeAfterStop() bool {
	// Nothing to resume; keep running.
	return false
}
