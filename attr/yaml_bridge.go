package attr

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ============================================================
// YAML Bridge
// ============================================================
//
// Same kind mapping as the JSON bridge, built over yaml.Node so dict key
// order survives both directions (a plain map decode would reorder keys).

// ToYAML renders v as YAML. Dict order is preserved.
func ToYAML(v *Value) ([]byte, error) {
	node, err := yamlNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func yamlNode(v *Value) (*yaml.Node, error) {
	scalar := func(tag, val string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: val}
	}
	if v == nil {
		return scalar("!!null", "null"), nil
	}
	switch v.kind {
	case KindNil:
		return scalar("!!null", "null"), nil

	case KindBool:
		return scalar("!!bool", strconv.FormatBool(v.boolVal)), nil

	case KindInt:
		return scalar("!!int", strconv.FormatInt(v.intVal, 10)), nil

	case KindUint:
		return scalar("!!int", strconv.FormatUint(v.uintVal, 10)), nil

	case KindFloat:
		if math.IsNaN(v.floatVal) || math.IsInf(v.floatVal, 0) {
			return nil, fmt.Errorf("attr: %g has no YAML form", v.floatVal)
		}
		return scalar("!!float", strconv.FormatFloat(v.floatVal, 'g', -1, 64)), nil

	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.strVal}, nil

	case KindData:
		return &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				scalar("!!str", dataMarker),
				scalar("!!str", base64.StdEncoding.EncodeToString(v.bytes())),
			},
		}, nil

	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for i := 0; i < v.size; i++ {
			child, err := yamlNode(&v.list[i])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil

	case KindDict:
		node := &yaml.Node{Kind: yaml.MappingNode}
		for i := 0; i < v.size; i++ {
			child, err := yamlNode(&v.pairs[i].Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.pairs[i].Key.strVal},
				child)
		}
		return node, nil

	case KindRef:
		if v.ref == nil {
			return scalar("!!null", "null"), nil
		}
		return &yaml.Node{
			Kind: yaml.MappingNode,
			Content: []*yaml.Node{
				scalar("!!str", "Type"),
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.ref.FaceName()},
				scalar("!!str", "ModuleName"),
				{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.ref.ObjName()},
			},
		}, nil
	}
	return nil, fmt.Errorf("attr: kind %s has no YAML form", v.kind)
}

// FromYAML parses YAML bytes into a Value tree, preserving mapping key
// order. The bridge kind rules match FromJSON.
func FromYAML(data []byte, opts BridgeOptions) (*Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("attr: YAML parse: %w", err)
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Nil(), nil
		}
		node = node.Content[0]
	}
	return decodeYAML(node, opts.Registry)
}

func decodeYAML(node *yaml.Node, reg Registry) (*Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return decodeYAML(node.Alias, reg)

	case yaml.ScalarNode:
		switch node.Tag {
		case "!!null":
			return Nil(), nil
		case "!!bool":
			b, err := strconv.ParseBool(node.Value)
			if err != nil {
				return nil, fmt.Errorf("attr: YAML bool %q: %w", node.Value, err)
			}
			return Bool(b), nil
		case "!!int":
			if strings.HasPrefix(node.Value, "-") {
				i, err := strconv.ParseInt(node.Value, 0, 64)
				if err != nil {
					return nil, fmt.Errorf("attr: YAML int %q: %w", node.Value, err)
				}
				return Int(i), nil
			}
			u, err := strconv.ParseUint(node.Value, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("attr: YAML int %q: %w", node.Value, err)
			}
			return Uint(u), nil
		case "!!float":
			f, err := strconv.ParseFloat(node.Value, 64)
			if err != nil {
				return nil, fmt.Errorf("attr: YAML float %q: %w", node.Value, err)
			}
			return Float(f), nil
		default:
			return Str(node.Value), nil
		}

	case yaml.SequenceNode:
		out := &Value{kind: KindList}
		for _, child := range node.Content {
			elem, err := decodeYAML(child, reg)
			if err != nil {
				return nil, err
			}
			n := out.size
			out.reallocList(n + 1)
			out.list[n] = *elem // move
		}
		return out, nil

	case yaml.MappingNode:
		out := Dict()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("attr: YAML mapping key must be scalar at line %d", key.Line)
			}
			elem, err := decodeYAML(node.Content[i+1], reg)
			if err != nil {
				return nil, err
			}
			slot, err := out.Ensure(key.Value)
			if err != nil {
				return nil, err
			}
			*slot = *elem // move
		}
		return bridgeDict(out, reg)
	}
	return nil, fmt.Errorf("attr: unsupported YAML node at line %d", node.Line)
}
