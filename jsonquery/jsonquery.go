// Package jsonquery evaluates JSONPath expressions over a tagged JSON value
// type. Lookups return an ok flag instead of panicking or erroring on missing
// keys, which suits pulling optional fields out of verification payloads.
package jsonquery

import (
	"fmt"
	"strconv"
	"strings"

	gojson "github.com/coreos/go-json"
	jp "github.com/reclaimprotocol/jsonpathplus-go"
)

// Kind tags the JSON variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "null"
	}
}

// Value is one node of a parsed JSON document.
type Value struct {
	node gojson.Node
}

// Parse decodes a JSON document into a Value tree.
func Parse(doc []byte) (*Value, error) {
	var root gojson.Node
	if err := gojson.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("could not parse JSON document: %w", err)
	}
	return &Value{node: root}, nil
}

// Kind reports which JSON variant this value holds.
func (v *Value) Kind() Kind {
	switch v.node.Value.(type) {
	case map[string]gojson.Node:
		return Object
	case []gojson.Node:
		return Array
	case string:
		return String
	case float64:
		return Number
	case bool:
		return Bool
	default:
		return Null
	}
}

// Str returns the string payload; ok is false for non-strings.
func (v *Value) Str() (string, bool) {
	s, ok := v.node.Value.(string)
	return s, ok
}

// Num returns the numeric payload; ok is false for non-numbers.
func (v *Value) Num() (float64, bool) {
	n, ok := v.node.Value.(float64)
	return n, ok
}

// Boolean returns the bool payload; ok is false for non-bools.
func (v *Value) Boolean() (bool, bool) {
	b, ok := v.node.Value.(bool)
	return b, ok
}

// Field resolves a key on an object value; ok is false for missing keys and
// non-objects.
func (v *Value) Field(name string) (*Value, bool) {
	obj, ok := v.node.Value.(map[string]gojson.Node)
	if !ok {
		return nil, false
	}
	child, ok := obj[name]
	if !ok {
		return nil, false
	}
	return &Value{node: child}, true
}

// Index resolves a position on an array value; ok is false when out of range
// or not an array.
func (v *Value) Index(i int) (*Value, bool) {
	arr, ok := v.node.Value.([]gojson.Node)
	if !ok || i < 0 || i >= len(arr) {
		return nil, false
	}
	return &Value{node: arr[i]}, true
}

// Len returns the element count for arrays and the key count for objects,
// zero for scalars.
func (v *Value) Len() int {
	switch t := v.node.Value.(type) {
	case []gojson.Node:
		return len(t)
	case map[string]gojson.Node:
		return len(t)
	default:
		return 0
	}
}

// Query evaluates a JSONPath expression against doc and resolves every result
// path to a Value. The second return is false when the document does not
// parse, the expression is invalid, or nothing matched.
func Query(doc []byte, pathExpr string) ([]*Value, bool) {
	results, err := jp.Query(pathExpr, string(doc))
	if err != nil || len(results) == 0 {
		return nil, false
	}

	root, err := Parse(doc)
	if err != nil {
		return nil, false
	}

	values := make([]*Value, 0, len(results))
	for _, r := range results {
		v, ok := resolveSegments(root, pathToSegments(r.Path))
		if !ok {
			return nil, false
		}
		values = append(values, v)
	}
	return values, true
}

// QueryOne is Query for expressions expected to match a single value.
func QueryOne(doc []byte, pathExpr string) (*Value, bool) {
	values, ok := Query(doc, pathExpr)
	if !ok || len(values) == 0 {
		return nil, false
	}
	return values[0], true
}

// pathToSegments converts a JSONPath like $.a[1].b to segments ["a","1","b"].
func pathToSegments(path string) []string {
	p := strings.TrimPrefix(path, "$")
	p = strings.TrimPrefix(p, ".")
	if p == "" {
		return nil
	}
	segments := make([]string, 0)
	cur := strings.Builder{}
	inBracket := false
	for _, r := range p {
		switch r {
		case '.':
			if !inBracket {
				if cur.Len() > 0 {
					segments = append(segments, cur.String())
					cur.Reset()
				}
				continue
			}
		case '[':
			if cur.Len() > 0 {
				segments = append(segments, cur.String())
				cur.Reset()
			}
			inBracket = true
			continue
		case ']':
			if inBracket {
				seg := cur.String()
				cur.Reset()
				inBracket = false
				seg = strings.Trim(seg, "'\"")
				segments = append(segments, seg)
				continue
			}
		}
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		segments = append(segments, cur.String())
	}
	return segments
}

// resolveSegments walks the Value tree following the provided segments.
func resolveSegments(root *Value, segments []string) (*Value, bool) {
	cur := root
	for _, seg := range segments {
		switch cur.Kind() {
		case Object:
			next, ok := cur.Field(seg)
			if !ok {
				return nil, false
			}
			cur = next
		case Array:
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return nil, false
			}
			next, ok := cur.Index(idx)
			if !ok {
				return nil, false
			}
			cur = next
		default:
			return nil, false
		}
	}
	return cur, true
}
