package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Parse parses a semantic version string.
// A leading "v" and partial versions ("1.2") are rejected; document versions
// must be complete.
func Parse(s string) (*semver.Version, error) {
	v, err := semver.StrictNewVersion(s)
	if err != nil {
		return nil, &dlmeta.VersionError{Value: s, Err: err}
	}
	return v, nil
}

// Of returns the parsed version of a document.
func Of(doc dlmeta.Document) (*semver.Version, error) {
	raw, present := doc[dlmeta.VersionField]
	if !present || raw == nil {
		return nil, &dlmeta.VersionError{}
	}
	s, ok := raw.(string)
	if !ok {
		return nil, &dlmeta.VersionError{Value: raw}
	}
	return Parse(s)
}

// Truncate drops prerelease and build metadata, keeping major.minor.patch.
func Truncate(v *semver.Version) *semver.Version {
	return semver.New(v.Major(), v.Minor(), v.Patch(), "", "")
}

// Core returns the truncated version as "major.minor.patch".
func Core(v *semver.Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// ParseSpec parses a version range expression such as ">=0.0.1, <1.0.0" or
// "=0.1.*". The returned constraints match prerelease versions.
func ParseSpec(expr string) (*semver.Constraints, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", dlmeta.ErrInvalidVersionSpec)
	}
	c, err := semver.NewConstraint(expr)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", dlmeta.ErrInvalidVersionSpec, expr, err)
	}
	c.IncludePrerelease = true
	return c, nil
}

// MustParseSpec is like ParseSpec but panics on error.
// Intended for statically known ranges in migration registrations.
func MustParseSpec(expr string) *semver.Constraints {
	c, err := ParseSpec(expr)
	if err != nil {
		panic(err)
	}
	return c
}

// Advanced reports whether after is strictly greater than before at
// major.minor.patch precision.
func Advanced(before, after *semver.Version) bool {
	return Truncate(after).GreaterThan(Truncate(before))
}
