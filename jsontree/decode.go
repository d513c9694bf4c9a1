package jsontree

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// DecodeJSON parses a single JSON document into a Value tree.
func DecodeJSON(data []byte) (*Value, error) {
	return DecodeJSONReader(bytes.NewReader(data))
}

// DecodeJSONReader parses a single JSON document from r. Object member order
// is preserved, and number literals are classified into the unsigned, signed
// and float kinds based on their textual form.
func DecodeJSONReader(r io.Reader) (*Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("jsontree: trailing data after document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (*Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return nil, fmt.Errorf("jsontree: unexpected delimiter %q", t.String())
	case string:
		return NewString(t), nil
	case bool:
		return NewBool(t), nil
	case json.Number:
		return classifyNumber(string(t))
	case nil:
		return NewNull(), nil
	default:
		return nil, fmt.Errorf("jsontree: unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (*Value, error) {
	obj := NewObject()
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == '}' {
			return obj, nil
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("jsontree: object key is not a string: %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		// Duplicate keys: last occurrence wins.
		obj.Set(key, val)
	}
}

func decodeArray(dec *json.Decoder) (*Value, error) {
	arr := NewArray()
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}
		if d, ok := tok.(json.Delim); ok && d == ']' {
			return arr, nil
		}
		el, err := decodeToken(dec, tok)
		if err != nil {
			return nil, err
		}
		arr.Append(el)
	}
}

// classifyNumber picks the runtime kind from the literal's text: anything
// with a fraction or exponent is a float, a leading minus makes a signed
// integer, everything else an unsigned one. Integers that overflow 64 bits
// fall back to float.
func classifyNumber(lit string) (*Value, error) {
	if strings.ContainsAny(lit, ".eE") {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, fmt.Errorf("jsontree: number %q: %w", lit, err)
		}
		return NewFloat(f), nil
	}
	if strings.HasPrefix(lit, "-") {
		if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
			return NewInt(i), nil
		}
	} else {
		if u, err := strconv.ParseUint(lit, 10, 64); err == nil {
			return NewUint(u), nil
		}
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, fmt.Errorf("jsontree: number %q: %w", lit, err)
	}
	return NewFloat(f), nil
}
