// Package expr converts filter trees to and from generic values.
//
// The generic form is what yaml.v3, encoding/json and structpb.Struct.AsMap
// produce: strings, []any and map[string]any. It is a tree codec, not a query
// language: every node is either a bare keyword string or a single-key map
// naming the variant.
//
//	any | none | unique
//	{text: "abc"}  {id: <uuid>}  {not_id: <uuid>}
//	{and: [..]}  {or: [..]}  {not: <node>}  {linked: <link>}
//
// Link filters use the same shape:
//
//	any | none
//	{key: <node>}  {target: <node>}  {and: [..]}  {or: [..]}  {not: <link>}
package expr

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/solatis/graphfilter/internal/filter"
	"github.com/solatis/graphfilter/internal/types"
)

// MaxDepth bounds the nesting of decoded expressions.
const MaxDepth = 64

// Parse decodes a YAML or JSON filter document.
func Parse(data []byte) (*filter.DataFilter, error) {
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidExpression, err)
	}
	return Decode(tree)
}

// Decode converts a generic tree into a node filter. A nil tree decodes to a
// filter matching every node.
func Decode(tree any) (*filter.DataFilter, error) {
	return decodeData(tree, "$", 0)
}

// DecodeLink converts a generic tree into a link filter.
func DecodeLink(tree any) (*filter.LinkFilter, error) {
	return decodeLink(tree, "$", 0)
}

func invalid(path string, format string, args ...any) error {
	return fmt.Errorf("%w at %s: %s", types.ErrInvalidExpression, path, fmt.Sprintf(format, args...))
}

// single unpacks a one-key map into its key and value.
func single(tree any, path string) (string, any, error) {
	m, ok := tree.(map[string]any)
	if !ok {
		return "", nil, invalid(path, "expected keyword or single-key map, got %T", tree)
	}
	if len(m) != 1 {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return "", nil, invalid(path, "expected exactly one key, got [%s]", strings.Join(keys, ", "))
	}
	var key string
	var value any
	for k, v := range m {
		key, value = k, v
	}
	return key, value, nil
}

func decodeData(tree any, path string, depth int) (*filter.DataFilter, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w at %s", types.ErrExpressionTooDeep, path)
	}
	if tree == nil {
		return filter.AnyData(), nil
	}

	if kw, ok := tree.(string); ok {
		switch kw {
		case "any":
			return filter.AnyData(), nil
		case "none":
			return filter.NoData(), nil
		case "unique":
			return filter.Unique(), nil
		default:
			return nil, invalid(path, "unknown node keyword %q", kw)
		}
	}

	key, value, err := single(tree, path)
	if err != nil {
		return nil, err
	}
	child := path + "." + key

	switch key {
	case "text":
		s, ok := value.(string)
		if !ok {
			return nil, invalid(child, "expected string, got %T", value)
		}
		return filter.TextEquals(s), nil

	case "id", "not_id":
		s, ok := value.(string)
		if !ok {
			return nil, invalid(child, "expected node id string, got %T", value)
		}
		id, err := types.ParseNodeID(s)
		if err != nil {
			return nil, invalid(child, "invalid node id %q: %v", s, err)
		}
		if key == "id" {
			return filter.IDEquals(id), nil
		}
		return filter.IDNotEquals(id), nil

	case "and", "or":
		items, ok := value.([]any)
		if !ok {
			return nil, invalid(child, "expected list, got %T", value)
		}
		fs := make([]*filter.DataFilter, 0, len(items))
		for i, item := range items {
			f, err := decodeData(item, child+"["+strconv.Itoa(i)+"]", depth+1)
			if err != nil {
				return nil, err
			}
			fs = append(fs, f)
		}
		if key == "and" {
			return filter.MatchAll(fs...), nil
		}
		return filter.MatchAny(fs...), nil

	case "not":
		f, err := decodeData(value, child, depth+1)
		if err != nil {
			return nil, err
		}
		return f.Not(), nil

	case "linked":
		l, err := decodeLink(value, child, depth+1)
		if err != nil {
			return nil, err
		}
		return filter.Linked(l), nil

	default:
		return nil, invalid(path, "unknown node filter %q", key)
	}
}

func decodeLink(tree any, path string, depth int) (*filter.LinkFilter, error) {
	if depth > MaxDepth {
		return nil, fmt.Errorf("%w at %s", types.ErrExpressionTooDeep, path)
	}
	if tree == nil {
		return filter.AnyLink(), nil
	}

	if kw, ok := tree.(string); ok {
		switch kw {
		case "any":
			return filter.AnyLink(), nil
		case "none":
			return filter.NoLink(), nil
		default:
			return nil, invalid(path, "unknown link keyword %q", kw)
		}
	}

	key, value, err := single(tree, path)
	if err != nil {
		return nil, err
	}
	child := path + "." + key

	switch key {
	case "key", "target":
		f, err := decodeData(value, child, depth+1)
		if err != nil {
			return nil, err
		}
		if key == "key" {
			return filter.KeyMatches(f), nil
		}
		return filter.TargetMatches(f), nil

	case "and", "or":
		items, ok := value.([]any)
		if !ok {
			return nil, invalid(child, "expected list, got %T", value)
		}
		fs := make([]*filter.LinkFilter, 0, len(items))
		for i, item := range items {
			f, err := decodeLink(item, child+"["+strconv.Itoa(i)+"]", depth+1)
			if err != nil {
				return nil, err
			}
			fs = append(fs, f)
		}
		if key == "and" {
			return filter.LinkAll(fs...), nil
		}
		return filter.LinkAnyOf(fs...), nil

	case "not":
		f, err := decodeLink(value, child, depth+1)
		if err != nil {
			return nil, err
		}
		return f.Not(), nil

	default:
		return nil, invalid(path, "unknown link filter %q", key)
	}
}
