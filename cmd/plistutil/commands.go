package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feather-lang/plist"
	"github.com/feather-lang/plist/format"
)

// narrowWidth is the terminal width below which print output is compacted.
const narrowWidth = 60

// outputFlags are shared by commands that write a plist.
type outputFlags struct {
	format    string
	output    string
	compact   bool
	indent    bool
	noNewline bool
}

func (o *outputFlags) register(cmd *cobra.Command, usage string) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "", usage)
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&o.compact, "compact", false, "omit indentation")
	cmd.Flags().BoolVar(&o.indent, "indent", false, "pretty-print JSON")
	cmd.Flags().BoolVar(&o.noNewline, "no-newline", false, "omit the trailing newline")
}

// resolve picks the output format and options. fallback applies when
// neither the flag nor the config names a format.
func (o *outputFlags) resolve(a *app, name string, fallback format.Format) (format.Format, format.Options, error) {
	f := fallback
	switch {
	case o.format != "":
		parsed, err := format.Parse(o.format)
		if err != nil {
			return format.None, 0, err
		}
		f = parsed
	case name != "":
		parsed, err := format.Parse(name)
		if err != nil {
			return format.None, 0, err
		}
		f = parsed
	}

	var opts format.Options
	if o.compact {
		opts |= format.Compact
	}
	if o.indent || a.cfg.Indent {
		opts |= format.Indent
	}
	if o.noNewline {
		opts |= format.NoNewline
	}
	return f, opts, nil
}

func (a *app) arena() *plist.Arena {
	return plist.NewArena(plist.WithLogger(a.logger))
}

// ------ convert ------

func (a *app) convertCommand() *cobra.Command {
	var (
		out  outputFlags
		sort bool
	)
	cmd := &cobra.Command{
		Use:   "convert [flags] <file|->",
		Short: "Convert a plist to another format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			f, opts, err := out.resolve(a, a.cfg.Format, format.XML)
			if err != nil {
				return err
			}
			if sort {
				root := a.arena().New(v)
				defer root.Free()
				if err := root.Sort(); err != nil {
					return err
				}
				if v, err = root.Value(); err != nil {
					return err
				}
			}
			return a.writeOutput(out.output, v, f, opts)
		},
	}
	out.register(cmd, "output format: xml, binary, json, openstep or print (default from config)")
	cmd.Flags().BoolVar(&sort, "sort", false, "sort dictionary keys")
	return cmd
}

// ------ print ------

func (a *app) printCommand() *cobra.Command {
	var full bool
	cmd := &cobra.Command{
		Use:   "print <file|->",
		Short: "Print a plist in human-readable form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, _, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			var opts format.Options
			if a.terminal() {
				if !full {
					opts |= format.PartialData
				}
				if w := a.terminalWidth(); w > 0 && w < narrowWidth {
					opts |= format.Compact
				}
			}
			return format.Write(a.stdout, v, format.Print, opts)
		},
	}
	cmd.Flags().BoolVar(&full, "full", false, "show data values in full on a terminal")
	return cmd
}

// ------ get ------

func (a *app) getCommand() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "get <file|-> [key|[index]]...",
		Short: "Print the value at a path",
		Long: `Print the value reached by walking the path from the root.
Each step is a dictionary key, or an array index written as [n].`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := parseSteps(args[1:])
			if err != nil {
				return err
			}
			v, _, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			root := a.arena().New(v)
			defer root.Free()
			node, err := plist.Resolve(root, steps...)
			if err != nil {
				return err
			}
			found, err := node.Value()
			if err != nil {
				return err
			}
			f, opts, err := out.resolve(a, "", format.Print)
			if err != nil {
				return err
			}
			return a.writeOutput(out.output, found, f, opts)
		},
	}
	out.register(cmd, "output format (default print)")
	return cmd
}

// ------ equal ------

func (a *app) equalCommand() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "equal <file> <file>",
		Short: "Compare two plists by value",
		Long:  "Exit with status 0 if both files hold equal values, 1 otherwise.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, _, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			y, _, err := a.readInput(args[1])
			if err != nil {
				return err
			}
			if !plist.Equal(x, y) {
				if !quiet {
					fmt.Fprintln(a.stdout, "different")
				}
				return errNotEqual
			}
			if !quiet {
				fmt.Fprintln(a.stdout, "equal")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "report only through the exit status")
	return cmd
}

// ------ merge ------

func (a *app) mergeCommand() *cobra.Command {
	var out outputFlags
	cmd := &cobra.Command{
		Use:   "merge <target> <source>...",
		Short: "Merge dictionaries into the first",
		Long: `Merge each source dictionary into the target in order. On a key
collision the later value wins. The result keeps the target's format
unless --format is given.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, detected, err := a.readInput(args[0])
			if err != nil {
				return err
			}
			arena := a.arena()
			target := arena.New(v)
			defer target.Free()
			for _, name := range args[1:] {
				sv, _, err := a.readInput(name)
				if err != nil {
					return err
				}
				source := arena.New(sv)
				if err := target.Merge(source); err != nil {
					source.Free()
					return fmt.Errorf("%s: %w", name, err)
				}
			}
			merged, err := target.Value()
			if err != nil {
				return err
			}
			f, opts, err := out.resolve(a, "", detected)
			if err != nil {
				return err
			}
			return a.writeOutput(out.output, merged, f, opts)
		},
	}
	out.register(cmd, "output format (default the target's)")
	return cmd
}
