//go:build !windows

package app

// flushConsoleInput only has work to do on the Windows console.
func flushConsoleInput() error {
	return nil
}
