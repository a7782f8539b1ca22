package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"iona/internal/config"
	"iona/internal/diag"
	"iona/internal/pipeline"
)

// exitCode is set by runMode and consulted by main after rootCmd.Execute
// returns: it is 1 when any parsed module's diagnostics include an error
// and 0 otherwise, which is distinct from cobra's own argument-parsing
// exit-1 behavior.
var exitCode int

// runMode is the shared RunE body for build/check/test: they differ only
// in the Mode recorded in the resolved Config, and this body runs the
// same pipeline for all three.
func runMode(mode config.Mode) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		singleFile, _ := cmd.Flags().GetBool("file")
		colorFlag, _ := cmd.Flags().GetString("color")

		var target string
		if len(args) > 0 {
			target = args[0]
		}

		cfg, err := config.Resolve(mode, target, verbose, singleFile, resolveColor(colorFlag))
		if err != nil {
			return err
		}

		d := pipeline.NewDriver(cfg.Dir)
		if cfg.Stdlib {
			if err := runBatch(d, cfg.Dir); err != nil {
				return err
			}
		} else if err := d.Run(cfg.EntryModule); err != nil {
			return err
		}

		for _, name := range sortedModuleNames(d) {
			bag := d.Bags[name]
			fmt.Fprint(os.Stderr, diag.RenderAllColor(bag, d.Files, cfg.Color))
			if cfg.Verbose && bag.HasErrors() {
				if trace := d.Traces[name]; len(trace) > 0 {
					fmt.Fprintf(os.Stderr, "  trace: %s\n", strings.Join(trace, " > "))
				}
			}
		}

		if cfg.Verbose {
			fmt.Fprint(os.Stderr, d.Timer.Summary())
		}

		if d.HasErrors() {
			exitCode = 1
		}
		return nil
	}
}

// resolveColor turns the --color flag (auto|on|off) into a concrete
// decision, auto-detecting a terminal on stderr the way the teacher's CLI
// does (golang.org/x/term.IsTerminal), not by guessing.
func resolveColor(mode string) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

var buildCmd = &cobra.Command{
	Use:   "build [path|stdlib]",
	Short: "Parse and aggregate a target, exiting 1 if any module failed",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMode(config.ModeBuild),
}

var checkCmd = &cobra.Command{
	Use:   "check [path|stdlib]",
	Short: "Parse and aggregate a target without emitting C, reporting diagnostics only",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMode(config.ModeCheck),
}

var testCmd = &cobra.Command{
	Use:   "test [path|stdlib]",
	Short: "Parse and aggregate a target in test mode",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMode(config.ModeTest),
}
