package draft4

import (
	"github.com/reoring/draft4/internal/resolver"
	"github.com/reoring/draft4/jsontree"
	"github.com/reoring/draft4/schemauri"
)

// RootMarker is the distinguished id that designates the inserted document as
// the root schema for Validate.
const RootMarker = "#"

// Validator is the schema store and validation entry point. It owns every
// successfully inserted document for its whole lifetime; the canonical-URI
// map holds references into those documents.
//
// A Validator is not safe for concurrent use: InsertSchema mutates the map
// Validate reads, and default insertion mutates the instance.
type Validator struct {
	docs           []*jsontree.Value
	refs           map[schemauri.URI]*jsontree.Value
	root           *jsontree.Value
	insertDefaults bool
}

// Option configures a Validator at construction time.
type Option func(*Validator)

// WithDefaultInsertion makes object validation insert schema-declared default
// values into the instance for properties the instance lacks. Off by default;
// when enabled, Validate mutates the instance it is given.
func WithDefaultInsertion() Option {
	return func(v *Validator) { v.insertDefaults = true }
}

// New returns an empty Validator.
func New(opts ...Option) *Validator {
	v := &Validator{refs: map[schemauri.URI]*jsontree.Value{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// InsertSchema registers a schema document under the given id and returns the
// canonical references the store still cannot resolve. A non-empty result is
// not an error: insert the documents defining those references (in any order)
// and retry. An empty result means the document was committed; inserting it
// under RootMarker additionally makes it the root schema.
//
// The document is deep-copied before resolution, so the caller keeps full
// ownership of the tree it passed in.
func (v *Validator) InsertSchema(doc *jsontree.Value, id string) ([]schemauri.URI, error) {
	base, err := schemauri.Parse(id)
	if err != nil {
		return nil, wiringf("schema id: %v", err)
	}

	owned := doc.Clone()
	res, err := resolver.Resolve(owned, base)
	if err != nil {
		return nil, wiringf("%v", err)
	}

	// References unresolved inside the document may already be satisfied by
	// earlier insertions. Whatever remains blocks the commit, leaving the
	// store untouched so the caller can load the missing schemas and retry.
	var undefined []schemauri.URI
	for _, r := range res.Undefined {
		if _, ok := v.refs[r]; !ok {
			undefined = append(undefined, r)
		}
	}
	if len(undefined) > 0 {
		return undefined, nil
	}

	for uri := range res.Schemas {
		if _, ok := v.refs[uri]; ok {
			return nil, wiringf("schema %s already present in validator", uri)
		}
	}

	v.docs = append(v.docs, owned)
	for uri, node := range res.Schemas {
		v.refs[uri] = node
	}
	if base == schemauri.MustParse(RootMarker) {
		v.root = owned
	}
	return nil, nil
}

// Validate checks instance against the root schema. It returns nil on
// success and a *Failure describing the first violated constraint otherwise.
// With default insertion enabled the instance may be mutated; see
// WithDefaultInsertion.
func (v *Validator) Validate(instance *jsontree.Value) error {
	if v.root == nil {
		return wiringf("no root-schema has been inserted, cannot validate an instance without it")
	}
	return v.validate(instance, v.root, "root")
}
