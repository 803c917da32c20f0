package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/datalake-metadata/dlmeta/internal/codec"
	"github.com/datalake-metadata/dlmeta/internal/config"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// resetFlags restores every flag to its default and clears Changed, so
// commands can be executed repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type result struct {
	stdout string
	stderr string
	err    error
}

// execute runs dlmeta with args in a fresh working directory.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, env := range []string{config.EnvDatabaseURL, config.EnvSchemaDir, config.EnvTarget, "CI", "DLMETA_NON_INTERACTIVE"} {
		t.Setenv(env, "")
	}
	return executeHere(t, stdin, args...)
}

// executeHere runs dlmeta with args in the current working directory.
func executeHere(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// writeDoc writes doc to dir/name in the format the extension names.
func writeDoc(t *testing.T, dir, name string, doc dlmeta.Document) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	var buf bytes.Buffer
	require.NoError(t, codec.EncodeAs(&buf, doc, codec.FormatFor(name), true))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func readDoc(t *testing.T, path string) dlmeta.Document {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	doc, err := codec.Decode(data, codec.FormatFor(path))
	require.NoError(t, err)
	return doc
}
