package migrations

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalake-metadata/dlmeta/internal/engine"
	"github.com/datalake-metadata/dlmeta/internal/files/filesystem"
	"github.com/datalake-metadata/dlmeta/internal/registry"
	"github.com/datalake-metadata/dlmeta/internal/schema"
	"github.com/datalake-metadata/dlmeta/internal/testing/fixtures"
	"github.com/datalake-metadata/dlmeta/internal/testing/migrationtest"
	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
	"github.com/datalake-metadata/dlmeta/schemas"
)

func embeddedValidator() *schema.Validator {
	return schema.NewValidator(schema.NewFSResolver(filesystem.NewFSFileSystem(schemas.FS, ".", "embedded")))
}

func TestDefinitions_Order(t *testing.T) {
	defs := Definitions()
	require.NotEmpty(t, defs)

	for i := 1; i < len(defs); i++ {
		prev := semver.MustParse(defs[i-1].Target)
		cur := semver.MustParse(defs[i].Target)
		assert.True(t, cur.GreaterThan(prev), "migration %d must target a newer version than %d", i, i-1)
	}
}

func TestDefinitions_TargetsHaveSchemas(t *testing.T) {
	resolver := schema.NewFSResolver(filesystem.NewFSFileSystem(schemas.FS, ".", "embedded"))
	for _, d := range Definitions() {
		_, err := resolver.Resolve(semver.MustParse(d.Target))
		assert.NoError(t, err, "no embedded schema for %s", d.Target)
	}
}

func TestBuiltin_Contract(t *testing.T) {
	build := func(stamper dlmeta.VersionStamper) *registry.Registry { return Default(stamper) }

	applied := migrationtest.CheckEntries(t, build, embeddedValidator(), fixtures.V001())
	assert.Equal(t, len(Definitions()), applied)
}

func TestBuiltin_EngineContract(t *testing.T) {
	build := func(stamper dlmeta.VersionStamper) *registry.Registry { return Default(stamper) }

	out := migrationtest.CheckEngine(t, build, embeddedValidator(), fixtures.V001(), "=0.1.0")
	assert.Contains(t, out, "Sample_Sheets")
}

func TestSampleSheetsList(t *testing.T) {
	stamper := version.NewStamper(semver.MustParse("0.0.3-dev7+gabcdef"))
	m := Definitions()[0].Migration(stamper)
	doc := fixtures.V001()

	require.NoError(t, m(doc))

	assert.NotContains(t, doc, "Sample_Sheet")
	assert.Equal(t, []any{map[string]any{"path": "nanopore_sample_submission_sample_sheet_path"}}, doc["Sample_Sheets"])
	assert.Equal(t, "0.1.0-dev7+gabcdef", doc[dlmeta.VersionField])
}

func TestSampleSheetsList_AlreadyList(t *testing.T) {
	m := Definitions()[0].Migration(version.NewStamper(semver.MustParse("0.1.0")))
	doc := fixtures.NewDocument().
		Without("Sample_Sheet").
		Set("Sample_Sheets", []any{map[string]any{"path": "a"}}).
		Build()

	require.NoError(t, m(doc))
	assert.Equal(t, []any{map[string]any{"path": "a"}}, doc["Sample_Sheets"])
	assert.Equal(t, "0.1.0+0.1.0", doc[dlmeta.VersionField])
}

func TestSampleSheetsList_MissingSheets(t *testing.T) {
	m := Definitions()[0].Migration(version.NewStamper(nil))
	doc := fixtures.NewDocument().Without("Sample_Sheet").Build()

	err := m(doc)
	require.Error(t, err)
	assert.Equal(t, "0.0.1-alpha", doc[dlmeta.VersionField], "version must not be stamped on failure")
}

func TestDefault_MigratesToLatestSchema(t *testing.T) {
	reg := Default(version.NewStamper(semver.MustParse("0.1.0")))
	e := engine.New(reg, embeddedValidator())

	got, err := e.MigrateTo(fixtures.V001(), "=0.1.0")

	require.NoError(t, err)
	assert.Equal(t, "0.1.0+0.1.0", got[dlmeta.VersionField])
	require.NoError(t, embeddedValidator().Validate(got))
}

func TestDefault_NoPathBeyondLatest(t *testing.T) {
	e := engine.New(Default(version.NewStamper(nil)), embeddedValidator())

	_, err := e.MigrateTo(fixtures.V001(), "=0.2.0")

	var noPath *dlmeta.NoMigrationPathError
	require.ErrorAs(t, err, &noPath)
	assert.Equal(t, 1, noPath.Applied)
}

func TestDefault_StampedPrereleaseNotMigratedAgain(t *testing.T) {
	stamper := version.NewStamper(semver.MustParse("0.1.1-dev7+gabc"))
	e := engine.New(Default(stamper), embeddedValidator())

	migrated, err := e.MigrateTo(fixtures.V001(), ">=0.1.0-0")
	require.NoError(t, err)
	require.Equal(t, "0.1.0-dev7+gabc", migrated[dlmeta.VersionField])

	_, err = e.MigrateTo(migrated, "=0.2.0")

	var noPath *dlmeta.NoMigrationPathError
	require.ErrorAs(t, err, &noPath)
	assert.True(t, noPath.NothingApplied())
	assert.Equal(t, "0.1.0-dev7+gabc", noPath.Reached)
	assert.Contains(t, err.Error(), "no registered migration applies")
}

func TestDefinitions_SourcesExcludeTargetPrereleases(t *testing.T) {
	for _, d := range Definitions() {
		src := version.MustParseSpec(d.Source)
		assert.False(t, src.Check(semver.MustParse(d.Target+"-dev7")), "%s must not match a prerelease of %s", d.Source, d.Target)
		assert.False(t, src.Check(semver.MustParse(d.Target)), "%s must not match %s", d.Source, d.Target)
	}
}

func TestRegister_NilStamper(t *testing.T) {
	assert.Error(t, Register(registry.New(), nil))
}
