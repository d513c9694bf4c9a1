// Package jsontree provides the value tree shared by schema documents and
// instances.
//
// A Value is a closed tagged variant over the eight runtime kinds the
// validator distinguishes: object, array, string, unsigned integer, signed
// integer, float, bool and null. Unsigned and signed integers are separate
// kinds on purpose; both answer to the schema type name "integer" but keep
// their own representation, mirroring how the decoder classifies number
// literals. Object members iterate in insertion order.
package jsontree

import (
	"unicode/utf8"
)

// Kind enumerates the runtime kinds of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindObject
	KindArray
	KindString
	KindUint
	KindInt
	KindFloat
	KindBool
)

// String returns the kind's lowercase name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindUint:
		return "unsigned"
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// TypeName maps the runtime kind onto the draft-4 type vocabulary: both
// integer kinds answer "integer", floats answer "number".
func (k Kind) TypeName() string {
	switch k {
	case KindUint, KindInt:
		return "integer"
	case KindFloat:
		return "number"
	default:
		return k.String()
	}
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is one node of a JSON tree.
type Value struct {
	kind    Kind
	members []Member
	index   map[string]int
	elems   []*Value
	str     string
	u       uint64
	i       int64
	f       float64
	b       bool
}

// NewNull returns a null value.
func NewNull() *Value { return &Value{kind: KindNull} }

// NewObject returns an empty object.
func NewObject() *Value { return &Value{kind: KindObject, index: map[string]int{}} }

// NewArray returns an empty array.
func NewArray() *Value { return &Value{kind: KindArray} }

// NewString returns a string value.
func NewString(s string) *Value { return &Value{kind: KindString, str: s} }

// NewUint returns an unsigned-integer value.
func NewUint(u uint64) *Value { return &Value{kind: KindUint, u: u} }

// NewInt returns a signed-integer value.
func NewInt(i int64) *Value { return &Value{kind: KindInt, i: i} }

// NewFloat returns a floating-point value.
func NewFloat(f float64) *Value { return &Value{kind: KindFloat, f: f} }

// NewBool returns a boolean value.
func NewBool(b bool) *Value { return &Value{kind: KindBool, b: b} }

// Kind reports the runtime kind of v.
func (v *Value) Kind() Kind { return v.kind }

// Get looks up an object member by key.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	i, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.members[i].Value, true
}

// Has reports whether the object has a member named key.
func (v *Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Set inserts or replaces an object member. New keys append at the end, so
// iteration order remains insertion order.
func (v *Value) Set(key string, val *Value) {
	if v.kind != KindObject {
		return
	}
	if i, ok := v.index[key]; ok {
		v.members[i].Value = val
		return
	}
	v.index[key] = len(v.members)
	v.members = append(v.members, Member{Key: key, Value: val})
}

// Members returns the object's members in insertion order. The returned slice
// is the object's backing storage; callers must treat it as read-only.
func (v *Value) Members() []Member {
	return v.members
}

// Append adds an element at the end of an array.
func (v *Value) Append(el *Value) {
	if v.kind != KindArray {
		return
	}
	v.elems = append(v.elems, el)
}

// Elems returns the array's elements. Read-only, same caveat as Members.
func (v *Value) Elems() []*Value { return v.elems }

// Len reports the member count of an object or the element count of an array,
// 0 for every other kind.
func (v *Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.elems)
	default:
		return 0
	}
}

// Str returns the string payload ("" for non-strings).
func (v *Value) Str() string { return v.str }

// SetStr replaces the payload of a string value. The resolver uses this to
// rewrite $ref members to their canonical form in place.
func (v *Value) SetStr(s string) {
	if v.kind == KindString {
		v.str = s
	}
}

// CharLen reports the number of characters (not bytes) of a string value.
func (v *Value) CharLen() int { return utf8.RuneCountInString(v.str) }

// Bool returns the boolean payload (false for non-bools).
func (v *Value) Bool() bool { return v.b }

// Uint returns the unsigned-integer payload.
func (v *Value) Uint() uint64 { return v.u }

// Int returns the signed-integer payload.
func (v *Value) Int() int64 { return v.i }

// Float returns the floating-point payload.
func (v *Value) Float() float64 { return v.f }

// Number returns the numeric payload of any numeric kind, widened to float64.
// It returns 0 for non-numeric kinds.
func (v *Value) Number() float64 {
	switch v.kind {
	case KindUint:
		return float64(v.u)
	case KindInt:
		return float64(v.i)
	case KindFloat:
		return v.f
	default:
		return 0
	}
}

// IsNumber reports whether v is one of the numeric kinds.
func (v *Value) IsNumber() bool {
	return v.kind == KindUint || v.kind == KindInt || v.kind == KindFloat
}

// IsTrue reports whether v is the boolean true.
func (v *Value) IsTrue() bool { return v.kind == KindBool && v.b }

// IsFalse reports whether v is the boolean false.
func (v *Value) IsFalse() bool { return v.kind == KindBool && !v.b }

// Clone returns a deep copy of v sharing no nodes with the original.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	c := &Value{kind: v.kind, str: v.str, u: v.u, i: v.i, f: v.f, b: v.b}
	switch v.kind {
	case KindObject:
		c.index = make(map[string]int, len(v.members))
		c.members = make([]Member, 0, len(v.members))
		for _, m := range v.members {
			c.index[m.Key] = len(c.members)
			c.members = append(c.members, Member{Key: m.Key, Value: m.Value.Clone()})
		}
	case KindArray:
		c.elems = make([]*Value, len(v.elems))
		for i, el := range v.elems {
			c.elems[i] = el.Clone()
		}
	}
	return c
}
