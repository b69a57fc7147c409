// Package main implements the fregec CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"fregec/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "fregec [flags] <module-or-file>...",
	Short: "Compile Frege modules to Java via the host compiler",
	Long:  "fregec drives the Frege-to-Java pass pipeline and, in --make mode, rebuilds a module's dependency closure before invoking javac once over the whole generated set.",
	Args:  cobra.ArbitraryArgs,
	RunE:  buildExecution,
}

func init() {
	rootCmd.PersistentFlags().Bool("make", false, "rebuild a module's dependency closure instead of compiling single files")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "emit per-pass timing lines")
	rootCmd.PersistentFlags().Bool("ide", false, "retain diagnostics instead of printing after each pass")
	rootCmd.PersistentFlags().Bool("runjavac", false, "invoke the host compiler on generated output")
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Int("jobs", 0, "make-mode worker pool size (0 = number of CPUs)")
	rootCmd.PersistentFlags().String("output-dir", ".", "directory generated host sources are written under")
	rootCmd.PersistentFlags().StringSlice("source-path", nil, "directories searched for module names and relative file arguments")
	rootCmd.PersistentFlags().StringSlice("classpath", nil, "host compiler classpath entries")
	rootCmd.PersistentFlags().Bool("print-commands", false, "print the host-compiler command line before running it")
	rootCmd.PersistentFlags().String("ui", "auto", "make-mode progress display (auto|on|off)")
	rootCmd.PersistentFlags().String("ide-export", "", "dump retained IDE-mode diagnostics to this path as msgpack")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	rootCmd.Version = version.Version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
