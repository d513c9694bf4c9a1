package jsontree

import (
	"strconv"

	json "github.com/goccy/go-json"
)

// MarshalJSON renders v as compact JSON, keeping object member order.
func (v *Value) MarshalJSON() ([]byte, error) {
	return v.appendJSON(nil)
}

func (v *Value) appendJSON(b []byte) ([]byte, error) {
	var err error
	switch v.kind {
	case KindNull:
		return append(b, "null"...), nil
	case KindBool:
		return strconv.AppendBool(b, v.b), nil
	case KindUint:
		return strconv.AppendUint(b, v.u, 10), nil
	case KindInt:
		return strconv.AppendInt(b, v.i, 10), nil
	case KindFloat:
		enc, err := json.Marshal(v.f)
		if err != nil {
			return nil, err
		}
		return append(b, enc...), nil
	case KindString:
		return appendString(b, v.str)
	case KindArray:
		b = append(b, '[')
		for i, el := range v.elems {
			if i > 0 {
				b = append(b, ',')
			}
			if b, err = el.appendJSON(b); err != nil {
				return nil, err
			}
		}
		return append(b, ']'), nil
	case KindObject:
		b = append(b, '{')
		for i, m := range v.members {
			if i > 0 {
				b = append(b, ',')
			}
			if b, err = appendString(b, m.Key); err != nil {
				return nil, err
			}
			b = append(b, ':')
			if b, err = m.Value.appendJSON(b); err != nil {
				return nil, err
			}
		}
		return append(b, '}'), nil
	default:
		return append(b, "null"...), nil
	}
}

func appendString(b []byte, s string) ([]byte, error) {
	enc, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(b, enc...), nil
}

// String renders v as compact JSON for use in messages. Encoding a tree never
// fails in practice; on the off chance it does the error text is returned
// instead.
func (v *Value) String() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(b)
}
