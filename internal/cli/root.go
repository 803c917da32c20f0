package cli

import (
	"github.com/spf13/cobra"

	"github.com/datalake-metadata/dlmeta/internal/logging"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

var rootCmd = &cobra.Command{
	Use:   "dlmeta",
	Short: "Validate and migrate datalake metadata documents",
	Long: `dlmeta checks metadata documents against the JSON Schema of the version
they declare and migrates them forward to a target version range.

Schemas come from the set bundled with dlmeta, a directory (--schemas) or a
PostgreSQL schema store (--database-url).

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags, unreadable input)
  3  - Panic or unexpected system error
  10 - Invalid configuration or version range
  11 - No schema for the document version
  12 - Document violates its schema
  13 - Target range unreachable with the registered migrations
  14 - Missing or malformed version field
  15 - Schema database connection failed`,
	SilenceUsage: true,
}

// globalFlags holds the persistent flag values shared by all commands.
type globalFlags struct {
	verbose     bool
	configPath  string
	schemasDir  string
	databaseURL string
}

var globals globalFlags

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&globals.verbose, "verbose", "v", false, "Enable verbose output for all commands")
	flags.StringVar(&globals.configPath, "config", "", "Path to dlmeta.yaml (default: ./dlmeta.yaml when present)")
	flags.StringVar(&globals.schemasDir, "schemas", "", "Load schemas from this directory instead of the bundled set")
	flags.StringVar(&globals.databaseURL, "database-url", "", "Load schemas from a PostgreSQL schema store ($DLMETA_DATABASE_URL)")
	rootCmd.MarkFlagsMutuallyExclusive("schemas", "database-url")
}

// newLogger returns a logger writing to the command's stderr.
func newLogger(cmd *cobra.Command) dlmeta.Logger {
	return logging.NewWriterLogger(cmd.ErrOrStderr(), globals.verbose)
}
