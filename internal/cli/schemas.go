package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/cobra"

	"github.com/datalake-metadata/dlmeta/internal/checksum"
	"github.com/datalake-metadata/dlmeta/internal/config"
	"github.com/datalake-metadata/dlmeta/internal/schema"
	"github.com/datalake-metadata/dlmeta/internal/ui"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "Inspect and publish metadata schemas",
}

var schemasListFlags struct {
	json bool
}

var schemasListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the schema versions of the configured source",
	Long: `List prints every schema version available from the configured source
(bundled, --schemas directory or --database-url store) with the checksum of
its normalized body. Equal checksums mean equal schemas regardless of
formatting.`,
	Args: cobra.NoArgs,
	RunE: runSchemasList,
}

var schemasPushFlags struct {
	from string
	yes  bool
}

var schemasPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload schemas to the PostgreSQL schema store",
	Long: `Push stores every local schema (bundled, or the directory given by --from)
in the database selected by --database-url, creating the table if needed.

Schemas whose normalized checksum matches the stored copy are left alone.
Replacing a stored schema with different content asks for confirmation;
--yes skips the question. Without a terminal and without --yes, changed
schemas are skipped.`,
	Example: `  dlmeta schemas push --database-url postgres://localhost/meta
  dlmeta schemas push --from ./schemas --yes`,
	Args: cobra.NoArgs,
	RunE: runSchemasPush,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	schemasCmd.AddCommand(schemasListCmd, schemasPushCmd)

	schemasListCmd.Flags().BoolVar(&schemasListFlags.json, "json", false, "Print the list as JSON")

	schemasPushCmd.Flags().StringVar(&schemasPushFlags.from, "from", "", "Directory to read schemas from (default: bundled schemas)")
	schemasPushCmd.Flags().BoolVarP(&schemasPushFlags.yes, "yes", "y", false, "Replace changed schemas without asking")
}

type schemaEntry struct {
	Version  string `json:"version"`
	Checksum string `json:"checksum"`
	Source   string `json:"source"`

	v *semver.Version
}

func runSchemasList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	src, closeSource, err := openSource(cmd.Context(), cfg, newLogger(cmd))
	if err != nil {
		return err
	}
	defer closeSource()

	entries, err := listSchemas(src)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if schemasListFlags.json {
		return writeJSON(out, entries)
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERSION\tCHECKSUM\tSOURCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Version, e.Checksum, e.Source)
	}
	return tw.Flush()
}

func listSchemas(src schema.Source) ([]schemaEntry, error) {
	versions, err := src.Versions()
	if err != nil {
		return nil, err
	}
	calc := checksum.New()
	entries := make([]schemaEntry, 0, len(versions))
	for _, v := range versions {
		raw, err := src.Raw(v)
		if err != nil {
			return nil, err
		}
		entries = append(entries, schemaEntry{
			Version:  v.String(),
			Checksum: calc.CalculateNormalized(raw),
			Source:   src.Location(),
			v:        v,
		})
	}
	return entries, nil
}

func runSchemasPush(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Schemas.DatabaseURL == "" {
		return fmt.Errorf("%w: schemas push needs --database-url or $%s", dlmeta.ErrInvalidConfig, config.EnvDatabaseURL)
	}
	logger := newLogger(cmd)
	ctx := cmd.Context()

	var local schema.Source = schema.Embedded()
	if schemasPushFlags.from != "" {
		local = schema.Dir(schemasPushFlags.from)
	}
	entries, err := listSchemas(local)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s contains no schemas", dlmeta.ErrSchemaNotFound, local.Location())
	}

	pool, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()
	store := newStore(pool, cfg)
	if err := store.EnsureTable(ctx); err != nil {
		return err
	}
	stored, err := store.List(ctx)
	if err != nil {
		return err
	}
	existing := make(map[string]string, len(stored))
	for _, rec := range stored {
		existing[rec.Version.String()] = rec.Checksum
	}

	out := cmd.OutOrStdout()
	theme := ui.NewTheme(out)
	approver := ui.ApproverFor(schemasPushFlags.yes, cmd.InOrStdin(), cmd.ErrOrStderr())

	pushed, skipped := 0, 0
	for _, e := range entries {
		sum, found := existing[e.Version]
		switch {
		case found && sum == e.Checksum:
			logger.Verbose("Schema %s unchanged", e.Version)
			continue
		case found:
			ok, err := approver.RequestApproval(ctx, fmt.Sprintf("Schema %s differs from the copy in %s. Replace it?", e.Version, store.Table()))
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, theme.Warn(fmt.Sprintf("%s skipped (stored copy differs)", e.Version)))
				skipped++
				continue
			}
		}

		raw, err := local.Raw(e.v)
		if err != nil {
			return err
		}
		if _, err := store.Put(ctx, e.v, raw); err != nil {
			return err
		}
		fmt.Fprintln(out, theme.OK(fmt.Sprintf("%s %s", e.Version, e.Checksum)))
		pushed++
	}

	logger.Info("Pushed %d schema(s) to %s, %d skipped", pushed, store.Table(), skipped)
	return nil
}
