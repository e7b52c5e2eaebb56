//go:build !windows

package app

import (
	"syscall"

	"github.com/kk-code-lab/hnterm/internal/logging"
	statepkg "github.com/kk-code-lab/hnterm/internal/state"
)

// suspendToShell returns the terminal to the shell and stops the process.
// Execution continues here once the job is resumed with fg.
func (app *Application) suspendToShell() {
	err := app.withTerminalReleased(func() {
		// Stop only this process; signalling the whole group would also stop
		// a wrapper shell function and break job control.
		_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
	})
	if err != nil {
		app.reduce(statepkg.ErrorAction{Err: err})
		return
	}
	app.afterResume()
}

// resumeAfterStop reacquires the terminal after an external SIGSTOP/SIGCONT.
func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		// Already resumed by suspendToShell.
		return false
	}
	logging.Debug("resumed after stop")
	app.afterResume()
	return true
}

func (app *Application) afterResume() {
	// Re-enable mouse reporting after resume
	app.screen.EnableMouse()
	app.needsSync = true
	app.syncScreenSize()
}
