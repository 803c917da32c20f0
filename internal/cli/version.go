package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/datalake-metadata/dlmeta/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), versionLine())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = version.Library().String()
	rootCmd.SetVersionTemplate(versionLine() + "\n")
}

// versionLine is the machine-parseable version string.
func versionLine() string {
	commit, date := version.BuildInfo()
	return fmt.Sprintf("dlmeta %s (%s, %s) %s/%s", version.Library(), commit, date, runtime.GOOS, runtime.GOARCH)
}
