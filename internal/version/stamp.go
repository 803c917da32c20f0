package version

import (
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Build-time variables set via ldflags:
//
//	-X github.com/datalake-metadata/dlmeta/internal/version.buildVersion=0.1.1-dev3+g1a2b3c4
var (
	buildVersion = "0.1.0"
	commit       = "unknown"
	date         = "unknown"
)

var (
	libraryOnce sync.Once
	library     *semver.Version
)

// Library returns the version of the running library build.
// An unparsable build version falls back to 0.0.0-unknown.
func Library() *semver.Version {
	libraryOnce.Do(func() {
		v, err := semver.NewVersion(buildVersion)
		if err != nil {
			v = semver.New(0, 0, 0, "unknown", "")
		}
		library = v
	})
	return library
}

// BuildInfo returns the commit and date recorded at build time.
func BuildInfo() (commitHash, buildDate string) {
	return commit, date
}

// Stamper writes versions into documents, tagging them with the provenance
// of a library build.
type Stamper struct {
	library *semver.Version
}

// NewStamper returns a stamper that tags versions with lib's prerelease and
// build components. A nil lib uses Library().
func NewStamper(lib *semver.Version) *Stamper {
	if lib == nil {
		lib = Library()
	}
	return &Stamper{library: lib}
}

// Library returns the library version used for provenance.
func (s *Stamper) Library() *semver.Version { return s.library }

// Resolve computes the version that Stamp would write for proposed.
func (s *Stamper) Resolve(proposed *semver.Version) *semver.Version {
	build := s.library.Metadata()
	if build == "" {
		build = s.library.String()
	}
	return semver.New(proposed.Major(), proposed.Minor(), proposed.Patch(), s.library.Prerelease(), build)
}

// Stamp writes the resolved version of proposed into doc and returns it.
func (s *Stamper) Stamp(doc dlmeta.Document, proposed *semver.Version) *semver.Version {
	resolved := s.Resolve(proposed)
	doc[dlmeta.VersionField] = resolved.String()
	return resolved
}

var _ dlmeta.VersionStamper = (*Stamper)(nil)

// Stamp stamps doc with the running library's provenance.
func Stamp(doc dlmeta.Document, proposed *semver.Version) *semver.Version {
	return NewStamper(nil).Stamp(doc, proposed)
}
