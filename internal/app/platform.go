package app

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// textBrowsers are tried, in order, before the platform opener.
var textBrowsers = []string{"w3m", "lynx", "links", "carbonyl"}

func detectViewerCommand(configured string) ([]string, bool) {
	return detectViewerCommandInternal(runtime.GOOS, configured, os.Getenv, exec.LookPath)
}

func detectViewerCommandInternal(goos, configured string, getenv func(string) string, lookPath func(string) (string, error)) ([]string, bool) {
	candidates := []string{configured}
	// $BROWSER may list several commands, tried in order.
	listSep := ":"
	if strings.EqualFold(goos, "windows") {
		listSep = ";"
	}
	candidates = append(candidates, strings.Split(getenv("BROWSER"), listSep)...)

	for _, candidate := range candidates {
		args := parseCommand(candidate)
		if len(args) == 0 {
			continue
		}
		if resolved, ok := resolveExecutableWithLookup(args[0], lookPath); ok {
			args[0] = resolved
			return args, true
		}
	}

	defaults := make([][]string, 0, len(textBrowsers)+1)
	for _, name := range textBrowsers {
		defaults = append(defaults, []string{name})
	}
	switch strings.ToLower(goos) {
	case "windows":
		defaults = append(defaults, []string{"rundll32", "url.dll,FileProtocolHandler"})
	case "darwin":
		defaults = append(defaults, []string{"open"})
	default:
		defaults = append(defaults, []string{"xdg-open"})
	}

	for _, def := range defaults {
		if resolved, ok := resolveExecutableWithLookup(def[0], lookPath); ok {
			args := append([]string{resolved}, def[1:]...)
			return args, true
		}
	}

	return nil, false
}

// parseCommand splits a shell-like command line, honouring single and double
// quotes. A leading ~ in the program path is expanded.
func parseCommand(cmd string) []string {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		return nil
	}

	var args []string
	var current strings.Builder
	inSingle := false
	inDouble := false

	for _, r := range cmd {
		switch r {
		case '\'':
			if inDouble {
				current.WriteRune(r)
			} else {
				inSingle = !inSingle
			}
			continue
		case '"':
			if inSingle {
				current.WriteRune(r)
			} else {
				inDouble = !inDouble
			}
			continue
		default:
			if !inSingle && !inDouble && unicode.IsSpace(r) {
				if current.Len() > 0 {
					args = append(args, current.String())
					current.Reset()
				}
				continue
			}
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		args = append(args, current.String())
	}

	if len(args) > 0 {
		args[0] = expandUserPath(args[0])
	}

	return args
}

func expandUserPath(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	if len(path) == 1 {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return path
	}

	sep := path[1]
	if sep != '/' && sep != '\\' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[2:])
}

func resolveExecutableWithLookup(cmd string, lookPath func(string) (string, error)) (string, bool) {
	if cmd == "" {
		return "", false
	}

	if expanded := expandUserPath(cmd); expanded != cmd {
		cmd = expanded
	}

	path, err := lookPath(cmd)
	if err != nil {
		return "", false
	}
	return path, true
}
