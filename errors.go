package draft4

import (
	"errors"
	"fmt"
)

// Failure kinds (exported consts for IDE completion and type safety by convention)
const (
	// KindSchemaWiring covers everything that makes the schema graph itself
	// unusable: duplicate schema identities, same-document dangling $refs,
	// dereferencing a URI absent from the store, validating without a root.
	KindSchemaWiring = "schema_wiring"
	// KindUnsupportedKeyword is reported when a schema uses a keyword the
	// engine declines to implement rather than silently ignore.
	KindUnsupportedKeyword = "unsupported_keyword"
	// KindInvalidType is a type-keyword mismatch.
	KindInvalidType = "invalid_type"
	// KindConstraint is any other violated constraint (bounds, sizes,
	// uniqueness, enum, required, dependencies, ...).
	KindConstraint = "constraint_violation"
	// KindBadInstance flags an instance value outside the recognized kinds;
	// it indicates a broken value tree, not a schema or instance problem.
	KindBadInstance = "bad_instance"
)

// Failure is the single error type produced by this package. Path is the
// human-readable instance location built by the recursion (for example
// root.items[2].name); it is empty for errors raised at insertion time.
type Failure struct {
	Kind    string
	Path    string
	Message string
}

func (f *Failure) Error() string {
	if f.Path == "" {
		return f.Kind + ": " + f.Message
	}
	return fmt.Sprintf("%s at %s: %s", f.Kind, f.Path, f.Message)
}

// AsFailure extracts a *Failure from an error using errors.As internally.
func AsFailure(err error) (*Failure, bool) {
	if err == nil {
		return nil, false
	}
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func wiringf(format string, args ...any) error {
	return &Failure{Kind: KindSchemaWiring, Message: fmt.Sprintf(format, args...)}
}

func unsupportedf(field, forType string) error {
	return &Failure{
		Kind:    KindUnsupportedKeyword,
		Message: fmt.Sprintf("%s for %s is not yet implemented", field, forType),
	}
}

func typef(path, format string, args ...any) error {
	return &Failure{Kind: KindInvalidType, Path: path, Message: fmt.Sprintf(format, args...)}
}

func constraintf(path, format string, args ...any) error {
	return &Failure{Kind: KindConstraint, Path: path, Message: fmt.Sprintf(format, args...)}
}
