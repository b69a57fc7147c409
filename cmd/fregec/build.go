package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fregec/internal/config"
	"fregec/internal/diag"
	"fregec/internal/driver"
	"fregec/internal/orchestrator"
	"fregec/internal/resolve"
	"fregec/internal/state"
)

var errBuildFailed = errors.New("fregec: build failed")

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

func buildExecution(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		_ = cmd.Usage()
		return errBuildFailed
	}

	flags := cmd.Flags()

	make_, err := flags.GetBool("make")
	if err != nil {
		return err
	}
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}
	ideMode, err := flags.GetBool("ide")
	if err != nil {
		return err
	}
	runJavac, err := flags.GetBool("runjavac")
	if err != nil {
		return err
	}
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return err
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return err
	}
	outputDir, err := flags.GetString("output-dir")
	if err != nil {
		return err
	}
	sourcePath, err := flags.GetStringSlice("source-path")
	if err != nil {
		return err
	}
	classPath, err := flags.GetStringSlice("classpath")
	if err != nil {
		return err
	}
	printCommands, err := flags.GetBool("print-commands")
	if err != nil {
		return err
	}
	uiFlag, err := flags.GetString("ui")
	if err != nil {
		return err
	}
	ideExportPath, err := flags.GetString("ide-export")
	if err != nil {
		return err
	}

	if manifest, ok, mErr := config.LoadFromDir("."); mErr == nil && ok {
		if len(sourcePath) == 0 {
			sourcePath = manifest.Build.SourcePath
		}
		if !flags.Changed("output-dir") && manifest.Build.OutputDir != "" {
			outputDir = manifest.Build.OutputDir
		}
		if len(classPath) == 0 {
			classPath = manifest.Build.ClassPath
		}
		if !flags.Changed("jobs") && manifest.Build.Jobs > 0 {
			jobs = manifest.Build.Jobs
		}
	}

	opts := state.Options{
		Make:          make_,
		Verbose:       verbose,
		IdeMode:       ideMode,
		RunJavac:      runJavac,
		OutputDir:     outputDir,
		SourcePath:    sourcePath,
		ClassPath:     classPath,
		Jobs:          jobs,
		Color:         resolveColor(colorFlag, os.Stderr),
		IDEExportPath: ideExportPath,
		PrintCommands: printCommands,
	}

	if make_ && shouldUseTUI(uiFlag) {
		var errs diag.Sink
		items := resolve.Resolve(args, opts.SourcePath, driver.Extension, &errs)
		o := orchestrator.New(opts, driver.Extension, jobs)
		res := runMakeWithUI(o, items, &errs)
		if opts.IdeMode && opts.IDEExportPath != "" {
			export := append(errs.Pending(), o.Diagnostics()...)
			if exportErr := diag.ExportIDE(opts.IDEExportPath, export); exportErr != nil {
				fmt.Fprintf(os.Stderr, "error: failed to export IDE diagnostics: %v\n", exportErr)
				return errBuildFailed
			}
		}
		if !opts.IdeMode {
			diag.Print(os.Stderr, errs.Drain(), opts.Color)
		}
		if !res.Success || errs.NumErrors() != 0 {
			return errBuildFailed
		}
		return nil
	}

	ok := driver.Run(driver.RunOptions{
		Options: opts,
		Args:    args,
		Stderr:  os.Stderr,
	})
	if !ok {
		return errBuildFailed
	}
	return nil
}

// resolveColor implements --color auto|on|off.
func resolveColor(mode string, f *os.File) bool {
	switch strings.ToLower(mode) {
	case "on":
		return true
	case "off":
		return false
	default:
		return term.IsTerminal(int(f.Fd()))
	}
}
