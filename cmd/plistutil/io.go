package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/feather-lang/plist"
	"github.com/feather-lang/plist/format"
)

var errBinaryTerminal = errors.New("refusing to write a binary plist to a terminal; use -o")

// readInput decodes the file at name, or stdin for "-".
func (a *app) readInput(name string) (plist.Value, format.Format, error) {
	if name != "-" {
		v, f, err := format.ReadFile(name)
		if err != nil {
			return nil, f, fmt.Errorf("%s: %w", name, err)
		}
		a.logger.Debug("read input", "file", name, "format", f)
		return v, f, nil
	}
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return nil, format.None, fmt.Errorf("reading stdin: %w", err)
	}
	v, f, err := format.Sniff(data)
	if err != nil {
		return nil, f, fmt.Errorf("stdin: %w", err)
	}
	a.logger.Debug("read input", "file", "-", "format", f, "bytes", len(data))
	return v, f, nil
}

// writeOutput encodes v to the file at name, or stdout when name is empty
// or "-".
func (a *app) writeOutput(name string, v plist.Value, f format.Format, opts format.Options) error {
	if name != "" && name != "-" {
		if err := format.WriteFile(name, v, f, opts); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		a.logger.Debug("wrote output", "file", name, "format", f)
		return nil
	}
	if f == format.Binary && a.terminal() {
		return errBinaryTerminal
	}
	return format.Write(a.stdout, v, f, opts)
}

// terminal reports whether stdout is an interactive terminal.
func (a *app) terminal() bool {
	f, ok := a.stdout.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of the stdout terminal, or 0.
func (a *app) terminalWidth() int {
	f, ok := a.stdout.(*os.File)
	if !ok {
		return 0
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return w
}

// parseSteps turns path arguments into steps. "[n]" selects array index n;
// anything else is a dictionary key.
func parseSteps(args []string) ([]plist.Step, error) {
	steps := make([]plist.Step, 0, len(args))
	for _, s := range args {
		if inner, ok := strings.CutPrefix(s, "["); ok {
			if inner, ok = strings.CutSuffix(inner, "]"); ok {
				i, err := strconv.Atoi(inner)
				if err != nil || i < 0 {
					return nil, fmt.Errorf("bad index %q", s)
				}
				steps = append(steps, plist.IndexStep(i))
				continue
			}
		}
		steps = append(steps, plist.KeyStep(s))
	}
	return steps, nil
}
