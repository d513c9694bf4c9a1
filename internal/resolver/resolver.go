// Package resolver implements the single-document resolution pass that runs
// at schema insertion time. It assigns every sub-schema its canonical URI,
// rewrites $ref members to absolute form in place, and partitions the
// references the document uses into locally resolved, externally unresolved,
// and same-document dangling (the latter being a hard error, since no later
// insertion can ever satisfy them).
package resolver

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/reoring/draft4/jsontree"
	"github.com/reoring/draft4/schemauri"
)

// Result is the outcome of resolving one document.
type Result struct {
	// Schemas maps every canonical URI registered during the walk to its
	// node inside the resolved document. Entries alias the document tree;
	// they stay valid for as long as the document itself is retained.
	Schemas map[schemauri.URI]*jsontree.Value

	// Refs holds every $ref target the document uses, canonicalized.
	Refs map[schemauri.URI]struct{}

	// Undefined lists the subset of Refs that point outside this document
	// and were not registered by the walk, sorted for deterministic output.
	// They may be satisfied by documents inserted later.
	Undefined []schemauri.URI
}

type pass struct {
	out *Result
}

// Resolve walks doc depth-first starting at base. The walk mutates doc in
// exactly one way: $ref string values are overwritten with their canonical
// absolute form, so the validation engine never needs to know which document
// a reference came from.
func Resolve(doc *jsontree.Value, base schemauri.URI) (*Result, error) {
	if doc.Kind() != jsontree.KindObject {
		return nil, fmt.Errorf("resolver: document root is %s, want object", doc.Kind().TypeName())
	}

	// An id on the document root names the document; its URL becomes the
	// namespace that decides which unresolved references are dangling.
	id := base
	if fid, ok := doc.Get("id"); ok && fid.Kind() == jsontree.KindString {
		derived, err := base.Derive(fid.Str())
		if err != nil {
			return nil, fmt.Errorf("resolver: document id: %w", err)
		}
		id = derived
	}

	p := &pass{out: &Result{
		Schemas: map[schemauri.URI]*jsontree.Value{},
		Refs:    map[schemauri.URI]struct{}{},
	}}
	if err := p.walk(doc, id); err != nil {
		return nil, err
	}

	refs := make([]schemauri.URI, 0, len(p.out.Refs))
	for r := range p.out.Refs {
		refs = append(refs, r)
	}
	sort.Slice(refs, func(i, j int) bool { return schemauri.Compare(refs[i], refs[j]) < 0 })

	for _, r := range refs {
		if _, ok := p.out.Schemas[r]; ok {
			continue
		}
		if r.URL() == id.URL() {
			// Same document, so the target can never arrive later.
			return nil, fmt.Errorf("resolver: sub-schema %s in schema %s not found", r.Pointer(), id)
		}
		p.out.Undefined = append(p.out.Undefined, r)
	}
	return p.out, nil
}

func (p *pass) walk(schema *jsontree.Value, id schemauri.URI) error {
	if fid, ok := schema.Get("id"); ok && fid.Kind() == jsontree.KindString {
		derived, err := id.Derive(fid.Str())
		if err != nil {
			return fmt.Errorf("resolver: id %q: %w", fid.Str(), err)
		}
		id = derived
	}

	if _, dup := p.out.Schemas[id]; dup {
		return fmt.Errorf("resolver: schema %s already present in local resolver", id)
	}
	p.out.Schemas[id] = schema

	for _, m := range schema.Members() {
		// default values can be objects but are not schemas
		if m.Key == "default" {
			continue
		}

		switch m.Value.Kind() {
		case jsontree.KindObject:
			if err := p.walk(m.Value, id.Append(schemauri.Escape(m.Key))); err != nil {
				return err
			}

		case jsontree.KindArray:
			childID := id.Append(schemauri.Escape(m.Key))
			for i, el := range m.Value.Elems() {
				if el.Kind() != jsontree.KindObject {
					continue
				}
				if err := p.walk(el, childID.Append(strconv.Itoa(i))); err != nil {
					return err
				}
			}

		case jsontree.KindString:
			if m.Key == "$ref" {
				ref, err := id.Derive(m.Value.Str())
				if err != nil {
					return fmt.Errorf("resolver: $ref %q: %w", m.Value.Str(), err)
				}
				m.Value.SetStr(ref.String())
				p.out.Refs[ref] = struct{}{}
			}
		}
	}
	return nil
}
