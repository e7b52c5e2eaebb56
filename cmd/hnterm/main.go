package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/hnterm/internal/app"
	"github.com/kk-code-lab/hnterm/internal/config"
	"github.com/kk-code-lab/hnterm/internal/logging"
)

func printHelp() {
	fmt.Print(`hnterm - Hacker News top stories in the terminal

USAGE:
    hnterm [OPTIONS]

OPTIONS:
    -h, --help    Show this help message and exit

CONFIGURATION:
    ~/.config/hnterm/config.toml, or the file named by HNTERM_CONFIG.
    Any key can be overridden with HNTERM_<SECTION>_<KEY>, for example
    HNTERM_VIEWER_COMMAND=w3m or HNTERM_FEED_PAGE_SIZE=30.
`)
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if len(os.Args) > 1 {
		switch arg := os.Args[1]; arg {
		case "-h", "--help":
			printHelp()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument: %s\n\n", arg)
			printHelp()
			os.Exit(1)
		}
	}

	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	if err := logging.Init(cfg.Log.Path, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	defer logging.Close()

	app, err := apppkg.NewApplication(cfg)
	if err != nil {
		logging.Error("startup failed", "err", err)
		fmt.Fprintf(os.Stderr, "Error initializing application: %v\n", err)
		return 1
	}
	defer func() {
		if r := recover(); r != nil {
			// Leave the terminal usable before the panic is printed.
			_ = app.Close()
			logging.Error("panic", "value", r)
			panic(r)
		}
		_ = app.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		logging.Error("run failed", "err", err)
		return 1
	}
	return 0
}
