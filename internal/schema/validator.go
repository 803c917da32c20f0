package schema

import (
	"errors"
	"sort"
	"strings"

	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"

	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Validator checks documents against the schema of their declared version.
// It is safe for concurrent use when the resolver is.
type Validator struct {
	resolver dlmeta.SchemaResolver
	formats  strfmt.Registry
}

// NewValidator creates a validator backed by resolver.
// Panics if resolver is nil.
func NewValidator(resolver dlmeta.SchemaResolver) *Validator {
	if resolver == nil {
		panic("resolver cannot be nil")
	}
	return &Validator{
		resolver: resolver,
		formats:  strfmt.Default,
	}
}

// Validate implements dlmeta.DocumentValidator.
//
// It returns a *dlmeta.VersionError when the version field is unusable, a
// *dlmeta.SchemaResolutionError when no schema exists for the version, and a
// *dlmeta.ValidationError listing every violation otherwise.
func (v *Validator) Validate(doc dlmeta.Document) error {
	ver, err := version.Of(doc)
	if err != nil {
		return err
	}

	s, err := v.resolver.Resolve(ver)
	if err != nil {
		return err
	}

	if err := validate.AgainstSchema(s, map[string]any(doc), v.formats); err != nil {
		return &dlmeta.ValidationError{
			Version:    ver.String(),
			Violations: violations(err),
		}
	}
	return nil
}

// violations flattens go-openapi composite errors into sorted violations.
func violations(err error) []dlmeta.Violation {
	var out []dlmeta.Violation

	var walk func(error)
	walk = func(e error) {
		var composite *oaerrors.CompositeError
		if errors.As(e, &composite) {
			for _, inner := range composite.Errors {
				walk(inner)
			}
			return
		}
		var ve *oaerrors.Validation
		if errors.As(e, &ve) {
			out = append(out, dlmeta.Violation{
				Path:    strings.TrimPrefix(ve.Name, "."),
				Message: ve.Error(),
			})
			return
		}
		out = append(out, dlmeta.Violation{Message: e.Error()})
	}
	walk(err)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Message < out[j].Message
	})
	return out
}
