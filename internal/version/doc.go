// Package version reads, compares and stamps metadata document versions.
//
// Versions and range predicates are github.com/Masterminds/semver/v3 values.
// Ranges are always prerelease-inclusive: "<0.1.0" matches "0.0.1-alpha",
// because documents produced by development builds carry the library's
// prerelease tag and must still be selectable by migration ranges.
//
// # Provenance stamping
//
// Migrations write the new version through a Stamper. The stamper keeps the
// major.minor.patch the migration asks for and replaces the prerelease and
// build components with those of the running library:
//
//	library 0.0.3-dev7+gabcdef, proposed 0.0.2  ->  0.0.2-dev7+gabcdef
//	library 0.1.0,              proposed 0.1.0  ->  0.1.0+0.1.0
//
// A stable release has no build metadata, so its full version string is used
// as the build component instead.
package version
