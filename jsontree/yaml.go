package jsontree

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a single YAML document into a Value tree. Mapping order
// is preserved (the yaml.Node API keeps it, unlike decoding into a map), and
// integer scalars are classified into the signed/unsigned kinds the same way
// the JSON decoder classifies number literals.
func DecodeYAML(data []byte) (*Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("jsontree: %w", err)
	}
	if doc.Kind == 0 {
		return nil, fmt.Errorf("jsontree: empty YAML document")
	}
	node := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, fmt.Errorf("jsontree: empty YAML document")
		}
		node = doc.Content[0]
	}
	return fromYAMLNode(node)
}

func fromYAMLNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.MappingNode:
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Tag != "!!str" {
				return nil, fmt.Errorf("jsontree: line %d: mapping key is not a string", k.Line)
			}
			val, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, val)
		}
		return obj, nil
	case yaml.SequenceNode:
		arr := NewArray()
		for _, c := range n.Content {
			el, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			arr.Append(el)
		}
		return arr, nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	default:
		return nil, fmt.Errorf("jsontree: line %d: unsupported YAML node", n.Line)
	}
}

func fromYAMLScalar(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null":
		return NewNull(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return nil, fmt.Errorf("jsontree: line %d: bool %q: %w", n.Line, n.Value, err)
		}
		return NewBool(b), nil
	case "!!int":
		// base 0 accepts the 0x/0o forms YAML allows
		if strings.HasPrefix(n.Value, "-") {
			if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
				return NewInt(i), nil
			}
		} else {
			if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
				return NewUint(u), nil
			}
		}
		return nil, fmt.Errorf("jsontree: line %d: integer %q out of range", n.Line, n.Value)
	case "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			// .inf and .nan have no JSON counterpart
			return nil, fmt.Errorf("jsontree: line %d: float %q: %w", n.Line, n.Value, err)
		}
		return NewFloat(f), nil
	case "!!str":
		return NewString(n.Value), nil
	default:
		return nil, fmt.Errorf("jsontree: line %d: unsupported YAML tag %s", n.Line, n.Tag)
	}
}
