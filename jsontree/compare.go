package jsontree

import (
	"sort"
	"strings"
)

// kindRank collapses the three numeric kinds into one bucket so that values
// which are numerically equal compare equal regardless of representation.
func kindRank(k Kind) int {
	switch k {
	case KindNull:
		return 0
	case KindBool:
		return 1
	case KindUint, KindInt, KindFloat:
		return 2
	case KindString:
		return 3
	case KindArray:
		return 4
	case KindObject:
		return 5
	default:
		return 6
	}
}

// Compare imposes a total order over values: by kind rank first, then by
// payload. Numbers compare numerically across the unsigned/signed/float
// kinds, so 5, 5 and 5.0 are all equal. Objects compare by their sorted
// member lists, i.e. insertion order does not influence ordering.
func Compare(a, b *Value) int {
	if ra, rb := kindRank(a.kind), kindRank(b.kind); ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch a.kind {
	case KindNull:
		return 0
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		default:
			return 1
		}
	case KindUint, KindInt, KindFloat:
		return compareNumbers(a, b)
	case KindString:
		return strings.Compare(a.str, b.str)
	case KindArray:
		for i := 0; i < len(a.elems) && i < len(b.elems); i++ {
			if c := Compare(a.elems[i], b.elems[i]); c != 0 {
				return c
			}
		}
		return len(a.elems) - len(b.elems)
	case KindObject:
		ka, kb := sortedKeys(a), sortedKeys(b)
		for i := 0; i < len(ka) && i < len(kb); i++ {
			if c := strings.Compare(ka[i], kb[i]); c != 0 {
				return c
			}
			va, _ := a.Get(ka[i])
			vb, _ := b.Get(kb[i])
			if c := Compare(va, vb); c != 0 {
				return c
			}
		}
		return len(ka) - len(kb)
	default:
		return 0
	}
}

// Equal reports structural equality under the same semantics as Compare.
func Equal(a, b *Value) bool { return Compare(a, b) == 0 }

func compareNumbers(a, b *Value) int {
	// Exact comparison when both sides are integral; this avoids float64
	// precision loss for large 64-bit values.
	if a.kind != KindFloat && b.kind != KindFloat {
		an, bn := a.kind == KindInt && a.i < 0, b.kind == KindInt && b.i < 0
		switch {
		case an && !bn:
			return -1
		case !an && bn:
			return 1
		case an && bn:
			switch {
			case a.i < b.i:
				return -1
			case a.i > b.i:
				return 1
			}
			return 0
		default:
			au, bu := a.magnitude(), b.magnitude()
			switch {
			case au < bu:
				return -1
			case au > bu:
				return 1
			}
			return 0
		}
	}
	af, bf := a.Number(), b.Number()
	switch {
	case af < bf:
		return -1
	case af > bf:
		return 1
	default:
		return 0
	}
}

// magnitude returns the absolute value of a non-negative integral value.
func (v *Value) magnitude() uint64 {
	if v.kind == KindUint {
		return v.u
	}
	return uint64(v.i)
}

func sortedKeys(v *Value) []string {
	keys := make([]string, len(v.members))
	for i, m := range v.members {
		keys[i] = m.Key
	}
	sort.Strings(keys)
	return keys
}
