// Package main implements the iona CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"iona/internal/prof"
	"iona/internal/version"
)

var rootCmd = &cobra.Command{
	Use:                "iona",
	Short:              "iona language front-end: lex, parse and aggregate .iona modules",
	Long:               "iona compiles .iona source to C. This binary drives the front-end pipeline only: lexing, parsing and cross-module aggregation.",
	PersistentPreRunE:  startProfiling,
	PersistentPostRunE: stopProfiling,
}

func startProfiling(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Root().PersistentFlags().GetString("cpu-profile")
	if path == "" {
		return nil
	}
	if err := prof.StartCPU(path); err != nil {
		return fmt.Errorf("starting cpu profile: %w", err)
	}
	return nil
}

func stopProfiling(cmd *cobra.Command, _ []string) error {
	cpuPath, _ := cmd.Root().PersistentFlags().GetString("cpu-profile")
	if cpuPath != "" {
		prof.StopCPU()
	}
	memPath, _ := cmd.Root().PersistentFlags().GetString("mem-profile")
	if memPath == "" {
		return nil
	}
	if err := prof.WriteMem(memPath); err != nil {
		return fmt.Errorf("writing memory profile: %w", err)
	}
	return nil
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print the parser's trace stack alongside diagnostics")
	rootCmd.PersistentFlags().BoolP("file", "f", false, "single-file mode; recorded in the resolved config, imports are still followed")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to this path")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(testCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
	os.Exit(exitCode)
}
