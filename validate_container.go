package draft4

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/reoring/draft4/jsontree"
)

func (v *Validator) validateArray(instance, schema *jsontree.Value, name string) error {
	if err := validateType(schema, "array", name); err != nil {
		return err
	}

	if attr, ok := schema.Get("maxItems"); ok {
		if float64(instance.Len()) > attr.Number() {
			return constraintf(name, "has too many items, maxItems is %s", attr)
		}
	}
	if attr, ok := schema.Get("minItems"); ok {
		if float64(instance.Len()) < attr.Number() {
			return constraintf(name, "has too few items, minItems is %s", attr)
		}
	}

	if attr, ok := schema.Get("uniqueItems"); ok && attr.IsTrue() {
		if err := checkUnique(instance, name); err != nil {
			return err
		}
	}

	items, _ := schema.Get("items")
	additional, _ := schema.Get("additionalItems")

	for i, el := range instance.Elems() {
		subName := fmt.Sprintf("%s[%d]", name, i)

		if items == nil {
			break
		}
		switch items.Kind() {
		case jsontree.KindObject:
			// one schema for every element
			if err := v.validate(el, items, subName); err != nil {
				return err
			}

		case jsontree.KindArray:
			// positional tuple schema; elements beyond it fall to additionalItems
			if i < items.Len() {
				if err := v.validate(el, items.Elems()[i], subName); err != nil {
					return err
				}
				continue
			}
			if additional == nil || additional.IsTrue() {
				// remaining elements are unconstrained
				return nil
			}
			switch {
			case additional.Kind() == jsontree.KindObject:
				if err := v.validate(el, additional, subName); err != nil {
					return err
				}
			case additional.IsFalse():
				return constraintf(subName, "additional values in array are not allowed")
			}
		}
	}
	return nil
}

// checkUnique inserts each element into an order-maintained set and fails on
// the first duplicate under structural equality.
func checkUnique(instance *jsontree.Value, name string) error {
	seen := make([]*jsontree.Value, 0, instance.Len())
	for _, el := range instance.Elems() {
		at := sort.Search(len(seen), func(i int) bool {
			return jsontree.Compare(seen[i], el) >= 0
		})
		if at < len(seen) && jsontree.Equal(seen[at], el) {
			return constraintf(name, "items are not unique, %s occurs more than once", el)
		}
		seen = append(seen, nil)
		copy(seen[at+1:], seen[at:])
		seen[at] = el
	}
	return nil
}

// additionalProperties policy for object members not covered elsewhere
type additionalPolicy int

const (
	allowAll additionalPolicy = iota
	rejectAll
	constrained
)

func (v *Validator) validateObject(instance, schema *jsontree.Value, name string) error {
	if err := validateType(schema, "object", name); err != nil {
		return err
	}

	properties, _ := schema.Get("properties")

	if v.insertDefaults && properties != nil {
		// give absent properties their schema-declared default values
		for _, prop := range properties.Members() {
			def, ok := prop.Value.Get("default")
			if !ok || instance.Has(prop.Key) {
				continue
			}
			instance.Set(prop.Key, def.Clone())
		}
	}

	if attr, ok := schema.Get("maxProperties"); ok {
		if float64(instance.Len()) > attr.Number() {
			return constraintf(name, "has too many properties, maxProperties is %s", attr)
		}
	}
	if attr, ok := schema.Get("minProperties"); ok {
		if float64(instance.Len()) < attr.Number() {
			return constraintf(name, "has too few properties, minProperties is %s", attr)
		}
	}

	policy := allowAll
	additional, hasAdditional := schema.Get("additionalProperties")
	if hasAdditional {
		switch {
		case additional.Kind() == jsontree.KindBool:
			if additional.IsFalse() {
				policy = rejectAll
			}
		default:
			policy = constrained
		}
	}

	// compile patternProperties once, not per instance member
	type patternSchema struct {
		re  *regexp.Regexp
		sub *jsontree.Value
	}
	var patterns []patternSchema
	if pp, ok := schema.Get("patternProperties"); ok {
		patterns = make([]patternSchema, 0, pp.Len())
		for _, m := range pp.Members() {
			re, err := regexp.Compile(m.Key)
			if err != nil {
				return wiringf("patternProperties %q: %v", m.Key, err)
			}
			patterns = append(patterns, patternSchema{re: re, sub: m.Value})
		}
	}

	for _, child := range instance.Members() {
		childName := name + "." + child.Key

		if properties != nil {
			if sub, ok := properties.Get(child.Key); ok {
				if err := v.validate(child.Value, sub, childName); err != nil {
					return err
				}
				continue
			}
		}

		// a key may match several patterns; all of them must pass
		matched := false
		for _, pp := range patterns {
			if pp.re.MatchString(child.Key) {
				if err := v.validate(child.Value, pp.sub, childName); err != nil {
					return err
				}
				matched = true
			}
		}
		if matched {
			continue
		}

		switch policy {
		case allowAll:
		case constrained:
			if err := v.validate(child.Value, additional, childName); err != nil {
				return err
			}
		case rejectAll:
			return constraintf(name, "unknown property %q in object", child.Key)
		}
	}

	if required, ok := schema.Get("required"); ok {
		for _, el := range required.Elems() {
			if !instance.Has(el.Str()) {
				return constraintf(name, "required element %q not found in object", el.Str())
			}
		}
	}

	dependencies, ok := schema.Get("dependencies")
	if !ok {
		return nil
	}
	for _, dep := range dependencies.Members() {
		if !instance.Has(dep.Key) {
			continue
		}
		subName := name + ".dependency-of-" + dep.Key

		switch dep.Value.Kind() {
		case jsontree.KindObject:
			// schema dependency: the whole instance must satisfy it
			if err := v.validate(instance, dep.Value, subName); err != nil {
				return err
			}
		case jsontree.KindArray:
			for _, prop := range dep.Value.Elems() {
				if !instance.Has(prop.Str()) {
					return constraintf(subName, "failed dependency, need property %q", prop.Str())
				}
			}
		}
	}
	return nil
}
