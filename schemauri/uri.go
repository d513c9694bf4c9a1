// Package schemauri implements the canonical identifiers used to address
// (sub-)schemas inside a validator store.
//
// A URI is the pair of a document URL and a JSON-pointer fragment, rendered as
// "url#/pointer". Deriving a URI from a relative reference follows the usual
// URL resolution rules; appending extends the pointer by one escaped segment.
// URIs are plain comparable values so they can key maps directly; Compare
// provides the total order needed for deterministic set output.
package schemauri

import (
	"fmt"
	"net/url"
	"strings"
)

// URI identifies a (sub-)schema unambiguously. The zero value is the
// distinguished root marker "#".
type URI struct {
	url string
	ptr string
}

// Parse builds a URI from its string form. The fragment, when present, is kept
// verbatim (it is a JSON pointer whose segments are already escaped).
func Parse(s string) (URI, error) {
	var u URI
	raw := s
	if i := strings.IndexByte(s, '#'); i >= 0 {
		u.ptr = s[i+1:]
		s = s[:i]
	}
	u.url = s
	if u.ptr != "" && !strings.HasPrefix(u.ptr, "/") {
		return URI{}, fmt.Errorf("schemauri: %q: fragment is not a JSON pointer", raw)
	}
	return u, nil
}

// MustParse is Parse for statically known inputs; it panics on error.
func MustParse(s string) URI {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// URL returns the document part of the identifier. Two URIs with the same URL
// address locations within the same document.
func (u URI) URL() string { return u.url }

// Pointer returns the JSON-pointer fragment, "" for the document root.
func (u URI) Pointer() string { return u.ptr }

// String renders the canonical "url#/pointer" form. The root marker renders
// as "#".
func (u URI) String() string { return u.url + "#" + u.ptr }

// Derive resolves a reference string against u and returns the resulting
// absolute URI. Fragment-only references stay within u's document; everything
// else goes through URL resolution.
func (u URI) Derive(ref string) (URI, error) {
	if ref == "" {
		return u, nil
	}
	if strings.HasPrefix(ref, "#") {
		d := URI{url: u.url, ptr: ref[1:]}
		if d.ptr != "" && !strings.HasPrefix(d.ptr, "/") {
			return URI{}, fmt.Errorf("schemauri: %q: fragment is not a JSON pointer", ref)
		}
		return d, nil
	}

	rel, err := url.Parse(ref)
	if err != nil {
		return URI{}, fmt.Errorf("schemauri: %q: %w", ref, err)
	}
	frag := rel.EscapedFragment()
	rel.Fragment = ""
	rel.RawFragment = ""

	target := rel
	if !rel.IsAbs() && u.url != "" {
		base, err := url.Parse(u.url)
		if err != nil {
			return URI{}, fmt.Errorf("schemauri: base %q: %w", u.url, err)
		}
		target = base.ResolveReference(rel)
	}
	d := URI{url: target.String(), ptr: frag}
	if d.ptr != "" && !strings.HasPrefix(d.ptr, "/") {
		return URI{}, fmt.Errorf("schemauri: %q: fragment is not a JSON pointer", ref)
	}
	return d, nil
}

// Append extends the pointer with one segment. The segment must already be
// escaped (see Escape); numeric array indices need no escaping.
func (u URI) Append(segment string) URI {
	return URI{url: u.url, ptr: u.ptr + "/" + segment}
}

// Escape encodes a raw member key as a JSON-pointer segment per RFC 6901:
// "~" becomes "~0" and "/" becomes "~1".
func Escape(raw string) string {
	s := strings.ReplaceAll(raw, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// Compare orders URIs by their string rendering. It returns -1, 0 or 1.
func Compare(a, b URI) int {
	if c := strings.Compare(a.url, b.url); c != 0 {
		return c
	}
	return strings.Compare(a.ptr, b.ptr)
}
