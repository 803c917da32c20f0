package metadata

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/datalake-metadata/dlmeta/internal/codec"
	"github.com/datalake-metadata/dlmeta/internal/engine"
	"github.com/datalake-metadata/dlmeta/internal/logging"
	"github.com/datalake-metadata/dlmeta/internal/migrations"
	"github.com/datalake-metadata/dlmeta/internal/registry"
	"github.com/datalake-metadata/dlmeta/internal/schema"
	"github.com/datalake-metadata/dlmeta/internal/version"
	"github.com/datalake-metadata/dlmeta/pkg/dlmeta"
)

// Registry is an ordered list of migrations keyed by source version range.
type Registry = registry.Registry

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return registry.New() }

// DefaultRegistry returns a registry holding the bundled migrations,
// stamping versions with stamper.
func DefaultRegistry(stamper dlmeta.VersionStamper) *Registry {
	return migrations.Default(stamper)
}

// Client validates, migrates and serializes documents.
// A Client is safe for concurrent use once constructed.
type Client struct {
	validator dlmeta.DocumentValidator
	engine    *engine.Engine
}

type options struct {
	resolver  dlmeta.SchemaResolver
	validator dlmeta.DocumentValidator
	registry  *Registry
	stamper   dlmeta.VersionStamper
	logger    dlmeta.Logger
}

// Option configures a Client.
type Option func(*options)

// WithResolver sets the schema source. Defaults to the bundled schemas.
func WithResolver(r dlmeta.SchemaResolver) Option {
	return func(o *options) { o.resolver = r }
}

// WithValidator replaces schema validation entirely. It takes precedence
// over WithResolver.
func WithValidator(v dlmeta.DocumentValidator) Option {
	return func(o *options) { o.validator = v }
}

// WithRegistry sets the migrations. Defaults to DefaultRegistry.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithStamper sets the stamper used by the default registry. Ignored when
// WithRegistry is given.
func WithStamper(s dlmeta.VersionStamper) Option {
	return func(o *options) { o.stamper = s }
}

// WithLogger sets the logger for migration progress. Defaults to a NullLogger.
func WithLogger(l dlmeta.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates a Client.
func New(opts ...Option) *Client {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard
	}
	if o.validator == nil {
		if o.resolver == nil {
			o.resolver = schema.Embedded()
		}
		o.validator = schema.NewValidator(o.resolver)
	}
	if o.registry == nil {
		if o.stamper == nil {
			o.stamper = version.NewStamper(version.Library())
		}
		o.registry = migrations.Default(o.stamper)
	}
	return &Client{
		validator: o.validator,
		engine:    engine.New(o.registry, o.validator, engine.WithLogger(o.logger)),
	}
}

// Validate checks doc against the schema of its declared version.
//
// Errors:
//   - *dlmeta.VersionError when the version field is missing or malformed
//   - *dlmeta.SchemaResolutionError when no schema exists for the version
//   - *dlmeta.ValidationError when doc violates its schema
func (c *Client) Validate(doc dlmeta.Document) error {
	return c.validator.Validate(doc)
}

// Migrate advances doc in place until its version matches target, a range
// expression such as ">=0.1.0" or "=0.1.*". It returns doc itself.
// Migrate expects a valid document; Loads and LoadDocument validate first.
func (c *Client) Migrate(doc dlmeta.Document, target string) (dlmeta.Document, error) {
	return c.engine.MigrateTo(doc, target)
}

// LoadDocument validates doc and migrates it to target.
func (c *Client) LoadDocument(doc dlmeta.Document, target string) (dlmeta.Document, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", dlmeta.ErrUnsupportedInput)
	}
	if err := c.Validate(doc); err != nil {
		return nil, err
	}
	return c.Migrate(doc, target)
}

// Loads parses JSON text, validates it and migrates it to target.
func (c *Client) Loads(data []byte, target string) (dlmeta.Document, error) {
	doc, err := codec.DecodeJSON(data)
	if err != nil {
		return nil, err
	}
	return c.LoadDocument(doc, target)
}

// LoadsString is Loads for a string.
func (c *Client) LoadsString(text, target string) (dlmeta.Document, error) {
	return c.Loads([]byte(text), target)
}

// Load reads JSON text from r and delegates to Loads.
func (c *Client) Load(r io.Reader, target string) (dlmeta.Document, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return c.Loads(buf.Bytes(), target)
}

// Dumps serializes doc as compact JSON. No validation is performed.
func Dumps(doc dlmeta.Document) ([]byte, error) {
	return codec.Marshal(doc)
}

// Dump writes doc to w as compact JSON followed by a newline.
// No validation is performed.
func Dump(doc dlmeta.Document, w io.Writer) error {
	return codec.Encode(w, doc, false)
}

// Clone returns a deep copy of doc.
func Clone(doc dlmeta.Document) dlmeta.Document {
	return codec.Clone(doc)
}

var defaultClient = sync.OnceValue(func() *Client { return New() })

// Default returns the Client used by the package-level functions.
func Default() *Client { return defaultClient() }

// Validate checks doc with the default Client.
func Validate(doc dlmeta.Document) error { return Default().Validate(doc) }

// Migrate migrates doc with the default Client.
func Migrate(doc dlmeta.Document, target string) (dlmeta.Document, error) {
	return Default().Migrate(doc, target)
}

// LoadDocument validates and migrates doc with the default Client.
func LoadDocument(doc dlmeta.Document, target string) (dlmeta.Document, error) {
	return Default().LoadDocument(doc, target)
}

// Loads parses, validates and migrates data with the default Client.
func Loads(data []byte, target string) (dlmeta.Document, error) {
	return Default().Loads(data, target)
}

// LoadsString is Loads for a string.
func LoadsString(text, target string) (dlmeta.Document, error) {
	return Default().LoadsString(text, target)
}

// Load reads, validates and migrates a document with the default Client.
func Load(r io.Reader, target string) (dlmeta.Document, error) {
	return Default().Load(r, target)
}
