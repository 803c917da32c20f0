package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/datalake-metadata/dlmeta/internal/codec"
	"github.com/datalake-metadata/dlmeta/internal/config"
	"github.com/datalake-metadata/dlmeta/internal/ui"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
	"github.com/datalake-metadata/dlmeta/pkg/metadata"
)

var migrateFlags struct {
	target string
	write  bool
	output string
	format string
	pretty bool
}

var migrateCmd = &cobra.Command{
	Use:   "migrate <file|->",
	Short: "Validate a document and migrate it to a target version range",
	Long: `Migrate validates a document, then applies the registered migrations in
order until its version matches the target range.

The target comes from --target, $DLMETA_TARGET or "target" in dlmeta.yaml.
The result is written to stdout unless --write (replace the input file) or
--output is given. Files are written indented in the format their extension
names; stdout gets compact JSON unless it is a terminal or --pretty is set.`,
	Example: `  dlmeta migrate metadata.json --target "=0.1.0"
  dlmeta migrate metadata.yaml --target ">=0.1.0" --write
  cat metadata.json | dlmeta migrate - --target "=0.1.*" --output new.json`,
	Args: cobra.ExactArgs(1),
	RunE: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	flags := migrateCmd.Flags()
	flags.StringVarP(&migrateFlags.target, "target", "t", "", "Target version range, e.g. \">=0.1.0\" or \"=0.1.*\"")
	flags.BoolVarP(&migrateFlags.write, "write", "w", false, "Replace the input file with the result")
	flags.StringVarP(&migrateFlags.output, "output", "o", "", "Write the result to this file")
	flags.StringVar(&migrateFlags.format, "format", "json", "Format of stdin input (json or yaml)")
	flags.BoolVar(&migrateFlags.pretty, "pretty", false, "Indent JSON output")
	migrateCmd.MarkFlagsMutuallyExclusive("write", "output")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	stdinFormat, err := parseFormat(migrateFlags.format)
	if err != nil {
		return err
	}
	if migrateFlags.write && args[0] == stdinArg {
		return fmt.Errorf("invalid argument: --write cannot be used with stdin input")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	target := migrateFlags.target
	if target == "" {
		target = cfg.Target
	}
	if target == "" {
		return fmt.Errorf("%w: no target range; pass --target or set target in %s", dlmeta.ErrInvalidConfig, config.ConfigFileName)
	}
	logger := newLogger(cmd)

	docs, err := readDocuments(cmd, args, stdinFormat)
	if err != nil {
		return err
	}
	if len(docs) != 1 {
		return fmt.Errorf("%w: %s is not a single document", dlmeta.ErrUnsupportedInput, args[0])
	}
	in := docs[0]
	doc, err := in.decode()
	if err != nil {
		return err
	}
	from, _ := doc.RawVersion()

	src, closeSource, err := openSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()
	client := metadata.New(metadata.WithResolver(src), metadata.WithLogger(logger))

	if _, err := client.LoadDocument(doc, target); err != nil {
		return fmt.Errorf("%s: %w", in.name, err)
	}
	to, _ := doc.RawVersion()
	logger.Info("%s: %s -> %s", in.name, from, to)

	switch {
	case migrateFlags.write:
		return writeDocument(in.name, doc, in.format)
	case migrateFlags.output != "":
		return writeDocument(migrateFlags.output, doc, codec.FormatFor(migrateFlags.output))
	default:
		out := cmd.OutOrStdout()
		return codec.EncodeAs(out, doc, codec.FormatJSON, migrateFlags.pretty || ui.IsTerminal(out))
	}
}

// writeDocument encodes doc, indented, before replacing path, so a failed
// encoding leaves the file untouched.
func writeDocument(path string, doc dlmeta.Document, format codec.Format) error {
	var buf bytes.Buffer
	if err := codec.EncodeAs(&buf, doc, format, true); err != nil {
		return err
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, buf.Bytes(), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

