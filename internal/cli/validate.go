package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/datalake-metadata/dlmeta/internal/ui"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
	"github.com/datalake-metadata/dlmeta/pkg/metadata"
)

var validateFlags struct {
	json   bool
	format string
}

var validateCmd = &cobra.Command{
	Use:   "validate <file|dir|->...",
	Short: "Validate metadata documents against their schemas",
	Long: `Validate checks every document against the schema of the version it declares.

Files ending in .yaml or .yml are read as YAML, anything else as JSON.
Directories are searched recursively for .json, .yaml and .yml files,
skipping hidden entries and *.schema.json. Use "-" to read one document
from stdin.

All documents are checked; the exit code is that of the first failure.`,
	Example: `  dlmeta validate metadata.json
  dlmeta validate ./datasets --json
  cat metadata.yaml | dlmeta validate - --format yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().BoolVar(&validateFlags.json, "json", false, "Print results as JSON")
	validateCmd.Flags().StringVar(&validateFlags.format, "format", "json", "Format of stdin input (json or yaml)")
}

type violationResult struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type validationResult struct {
	Path       string            `json:"path"`
	Version    string            `json:"version,omitempty"`
	Valid      bool              `json:"valid"`
	Error      string            `json:"error,omitempty"`
	Violations []violationResult `json:"violations,omitempty"`

	err error
}

func runValidate(cmd *cobra.Command, args []string) error {
	stdinFormat, err := parseFormat(validateFlags.format)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	docs, err := readDocuments(cmd, args, stdinFormat)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("%w: no documents found in %v", dlmeta.ErrUnsupportedInput, args)
	}

	src, closeSource, err := openSource(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()
	client := metadata.New(metadata.WithResolver(src), metadata.WithLogger(logger))

	results := make([]validationResult, 0, len(docs))
	for _, d := range docs {
		results = append(results, validateOne(client, d))
	}

	out := cmd.OutOrStdout()
	if validateFlags.json {
		if err := writeJSON(out, results); err != nil {
			return err
		}
	} else {
		printResults(out, results)
	}

	var firstErr error
	failed := 0
	for _, r := range results {
		if r.err != nil {
			failed++
			if firstErr == nil {
				firstErr = r.err
			}
		}
	}
	if firstErr != nil {
		return fmt.Errorf("%d of %d document(s) invalid, first failure in %s: %w",
			failed, len(results), firstFailure(results), firstErr)
	}
	logger.Verbose("%d document(s) valid", len(results))
	return nil
}

func validateOne(client *metadata.Client, d document) validationResult {
	r := validationResult{Path: d.name}

	doc, err := d.decode()
	if err == nil {
		r.Version, _ = doc.RawVersion()
		err = client.Validate(doc)
	}
	if err == nil {
		r.Valid = true
		return r
	}

	r.err = err
	r.Error = err.Error()
	var verr *dlmeta.ValidationError
	if errors.As(err, &verr) {
		r.Error = dlmeta.ErrSchemaValidation.Error()
		for _, v := range verr.Violations {
			r.Violations = append(r.Violations, violationResult{Path: v.Path, Message: v.Message})
		}
	}
	return r
}

func firstFailure(results []validationResult) string {
	for _, r := range results {
		if r.err != nil {
			return r.Path
		}
	}
	return ""
}

func printResults(out io.Writer, results []validationResult) {
	theme := ui.NewTheme(out)
	for _, r := range results {
		switch {
		case r.Valid:
			fmt.Fprintln(out, theme.OK(fmt.Sprintf("%s (%s)", r.Path, r.Version)))
		case len(r.Violations) > 0:
			fmt.Fprintln(out, theme.Fail(fmt.Sprintf("%s (%s): %s", r.Path, r.Version, r.Error)))
			for _, v := range r.Violations {
				fmt.Fprintln(out, theme.Muted.Render("    "+dlmeta.Violation{Path: v.Path, Message: v.Message}.String()))
			}
		default:
			fmt.Fprintln(out, theme.Fail(fmt.Sprintf("%s: %s", r.Path, r.Error)))
		}
	}
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
