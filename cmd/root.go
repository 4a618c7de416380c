// Package cmd implements the databuilder command tree.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asl-graph/databuilder/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:     "databuilder",
	Short:   "Convert raw sign-language landmark recordings into training examples",
	Version: version.Version,
}

// Execute runs the command tree.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to JSON config file")
}
