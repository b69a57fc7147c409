package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"fregec/internal/version"
)

var (
	versionShowHash bool
	versionShowDate bool

	commitColor  = color.New(color.FgRed, color.Bold)
	dateColor    = color.New(color.FgCyan, color.Bold)
	unknownColor = color.New(color.FgMagenta)
)

func init() {
	versionCmd.Flags().BoolVar(&versionShowHash, "hash", false, "include git commit hash")
	versionCmd.Flags().BoolVar(&versionShowDate, "date", false, "include build timestamp")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fregec build fingerprints",
	RunE: func(cmd *cobra.Command, _ []string) error {
		v := strings.TrimSpace(version.Version)
		if v == "" {
			v = "dev"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "fregec %s\n", v)
		if versionShowHash {
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", valueOrUnknown(version.GitCommit, commitColor))
		}
		if versionShowDate {
			fmt.Fprintf(cmd.OutOrStdout(), "built:  %s\n", valueOrUnknown(version.BuildDate, dateColor))
		}
		return nil
	},
}

func valueOrUnknown(s string, col *color.Color) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return unknownColor.Sprint("unknown")
	}
	return col.Sprint(s)
}
