package draft4

import (
	"math"

	"github.com/reoring/draft4/jsontree"
	"github.com/reoring/draft4/schemauri"
)

// combinator keywords the engine refuses instead of ignoring
var unsupportedCombinators = [...]string{"allOf", "anyOf", "oneOf", "not"}

// validate is the recursive core: it dereferences $ref chains through the
// store, applies enum, and dispatches on the instance's runtime kind. name is
// the instance path reported on failure.
func (v *Validator) validate(instance, schema *jsontree.Value, name string) error {
	if err := rejectCombinators(schema); err != nil {
		return err
	}

	// Follow $ref chains. Resolution rewrote every $ref to canonical form,
	// so a plain store lookup suffices. Deliberately no cycle guard; a
	// self-referential chain is a schema-authoring bug that shows up here
	// as non-termination.
	for {
		ref, ok := schema.Get("$ref")
		if !ok {
			break
		}
		uri, err := schemauri.Parse(ref.Str())
		if err != nil {
			return wiringf("schema reference %q: %v", ref.Str(), err)
		}
		target, ok := v.refs[uri]
		if !ok {
			return wiringf("schema reference %s not found, make sure all schemas have been inserted before validation", ref.Str())
		}
		schema = target
		if err := rejectCombinators(schema); err != nil {
			return err
		}
	}

	if err := validateEnum(instance, schema, name); err != nil {
		return err
	}

	switch instance.Kind() {
	case jsontree.KindObject:
		return v.validateObject(instance, schema, name)
	case jsontree.KindArray:
		return v.validateArray(instance, schema, name)
	case jsontree.KindString:
		return validateString(instance, schema, name)
	case jsontree.KindUint, jsontree.KindInt:
		if err := validateType(schema, "integer", name); err != nil {
			return err
		}
		return validateNumeric(instance.Number(), schema, name)
	case jsontree.KindFloat:
		if err := validateType(schema, "number", name); err != nil {
			return err
		}
		return validateNumeric(instance.Number(), schema, name)
	case jsontree.KindBool:
		return validateType(schema, "boolean", name)
	case jsontree.KindNull:
		return validateType(schema, "null", name)
	default:
		return &Failure{Kind: KindBadInstance, Path: name, Message: "instance has an unrecognized runtime kind"}
	}
}

func rejectCombinators(schema *jsontree.Value) error {
	for _, kw := range unsupportedCombinators {
		if schema.Has(kw) {
			return unsupportedf(kw, "all")
		}
	}
	return nil
}

// validateType applies the type keyword. An absent type accepts any instance
// kind (draft-4 schemas may omit it); a string must match exactly; an array
// of strings must contain the instance's type name.
func validateType(schema *jsontree.Value, typeName, name string) error {
	t, ok := schema.Get("type")
	if !ok {
		return nil
	}
	if t.Kind() == jsontree.KindArray {
		for _, el := range t.Elems() {
			if el.Kind() == jsontree.KindString && el.Str() == typeName {
				return nil
			}
		}
		return typef(name, "%s is not any of %s", typeName, t)
	}
	if t.Str() == typeName {
		return nil
	}
	return typef(name, "%s is not a %s", t.Str(), typeName)
}

func validateEnum(instance, schema *jsontree.Value, name string) error {
	enum, ok := schema.Get("enum")
	if !ok {
		return nil
	}
	for _, cand := range enum.Elems() {
		if jsontree.Equal(instance, cand) {
			return nil
		}
	}
	return constraintf(name, "invalid enum-value %s, candidates are %s", instance, enum)
}

func validateString(instance, schema *jsontree.Value, name string) error {
	// possible but unhandled keywords
	if schema.Has("format") {
		return unsupportedf("format", "string")
	}
	if schema.Has("pattern") {
		return unsupportedf("pattern", "string")
	}

	if err := validateType(schema, "string", name); err != nil {
		return err
	}

	// bounds are over characters, not bytes
	n := instance.CharLen()
	if attr, ok := schema.Get("minLength"); ok {
		if float64(n) < attr.Number() {
			return constraintf(name, "value %s is too short as per minLength (%s)", instance, attr)
		}
	}
	if attr, ok := schema.Get("maxLength"); ok {
		if float64(n) > attr.Number() {
			return constraintf(name, "value %s is too long as per maxLength (%s)", instance, attr)
		}
	}
	return nil
}

// validateNumeric applies the shared numeric keywords. Presence of an
// exclusiveMaximum/exclusiveMinimum member, regardless of its own value,
// switches the corresponding bound to a strict comparison; that is draft-4's
// sibling-flag convention.
func validateNumeric(value float64, schema *jsontree.Value, name string) error {
	if attr, ok := schema.Get("multipleOf"); ok {
		if math.Mod(value, attr.Number()) != 0 {
			return constraintf(name, "%v is not a multiple of %s", value, attr)
		}
	}

	if attr, ok := schema.Get("maximum"); ok {
		max := attr.Number()
		if schema.Has("exclusiveMaximum") {
			if value >= max {
				return constraintf(name, "%v exceeds exclusive maximum of %s", value, attr)
			}
		} else if value > max {
			return constraintf(name, "%v exceeds maximum of %s", value, attr)
		}
	}

	if attr, ok := schema.Get("minimum"); ok {
		min := attr.Number()
		if schema.Has("exclusiveMinimum") {
			if value <= min {
				return constraintf(name, "%v undercuts exclusive minimum of %s", value, attr)
			}
		} else if value < min {
			return constraintf(name, "%v undercuts minimum of %s", value, attr)
		}
	}
	return nil
}
