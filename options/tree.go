// Package options holds chart and series configuration as plain trees of
// values, resolved by deep-merging partial trees onto immutable defaults.
package options

import (
	"math"
	"reflect"
	"slices"
	"strings"
)

// Tree is a partially specified options object. Values are scalars
// (string, bool, numbers), slices, or nested objects (Tree or
// map[string]any).
type Tree map[string]any

// object reports whether v is a nested options object and returns it.
func object(v any) (map[string]any, bool) {
	switch v := v.(type) {
	case Tree:
		return v, true
	case map[string]any:
		return v, true
	}
	return nil, false
}

// clone deep-copies v. Nested objects become Trees.
func clone(v any) any {
	if m, ok := object(v); ok {
		out := make(Tree, len(m))
		for k, e := range m {
			out[k] = clone(e)
		}
		return out
	}
	switch v := v.(type) {
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = clone(e)
		}
		return out
	case []float64:
		return slices.Clone(v)
	case []string:
		return slices.Clone(v)
	case []int:
		return slices.Clone(v)
	}
	return cloneSlice(v)
}

// cloneSlice copies slices of any other element type, cloning each element.
// Other values are returned as they are.
func cloneSlice(v any) any {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice || rv.IsNil() {
		return v
	}
	out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
	elem := rv.Type().Elem()
	for i := 0; i < rv.Len(); i++ {
		e := rv.Index(i)
		c := reflect.ValueOf(clone(e.Interface()))
		switch {
		case !c.IsValid():
		case c.Type().AssignableTo(elem):
			out.Index(i).Set(c)
		case c.Type().ConvertibleTo(elem):
			out.Index(i).Set(c.Convert(elem))
		default:
			out.Index(i).Set(e)
		}
	}
	return out.Interface()
}

// Clone returns a deep copy of t.
func (t Tree) Clone() Tree {
	if t == nil {
		return Tree{}
	}
	return clone(t).(Tree)
}

// DeepMerge returns a new tree holding target overlaid with source. For
// every key in source, object values merge recursively (creating the key
// if target lacks it) and every other value, arrays included, replaces the
// target's. Neither argument is modified and the result shares no memory
// with them.
func DeepMerge(target, source Tree) Tree {
	return merge(target, source)
}

func merge(target, source map[string]any) Tree {
	out := make(Tree, len(target)+len(source))
	for k, v := range target {
		out[k] = clone(v)
	}
	for k, v := range source {
		src, isObj := object(v)
		if !isObj {
			out[k] = clone(v)
			continue
		}
		dst, _ := object(out[k])
		out[k] = merge(dst, src)
	}
	return out
}

// lookup walks a dotted path such as "layout.background.color".
func (t Tree) lookup(path string) (any, bool) {
	var cur map[string]any = t
	keys := strings.Split(path, ".")
	for i, k := range keys {
		v, ok := cur[k]
		if !ok {
			return nil, false
		}
		if i == len(keys)-1 {
			return v, true
		}
		if cur, ok = object(v); !ok {
			return nil, false
		}
	}
	return nil, false
}

// Has reports whether a value is set at path.
func (t Tree) Has(path string) bool {
	_, ok := t.lookup(path)
	return ok
}

// Set stores v at path in place, creating intermediate objects. Callers
// that must not disturb t should Clone it first.
func (t Tree) Set(path string, v any) {
	keys := strings.Split(path, ".")
	var cur map[string]any = t
	for _, k := range keys[:len(keys)-1] {
		next, ok := object(cur[k])
		if !ok {
			created := Tree{}
			cur[k] = created
			next = created
		}
		cur = next
	}
	cur[keys[len(keys)-1]] = v
}

// String returns the string at path, or def when it is missing, empty or
// not a string.
func (t Tree) String(path, def string) string {
	v, _ := t.lookup(path)
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

// Float returns the number at path, or def when it is missing, not a
// number, or not finite.
func (t Tree) Float(path string, def float64) float64 {
	v, _ := t.lookup(path)
	f, ok := number(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// Positive is Float restricted to values above zero.
func (t Tree) Positive(path string, def float64) float64 {
	if f := t.Float(path, def); f > 0 {
		return f
	}
	return def
}

// Int returns the number at path truncated to an int.
func (t Tree) Int(path string, def int) int {
	return int(t.Float(path, float64(def)))
}

// Bool returns the boolean at path, or def.
func (t Tree) Bool(path string, def bool) bool {
	v, _ := t.lookup(path)
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// Sub returns the object at path as a Tree, or an empty Tree. The result
// aliases t.
func (t Tree) Sub(path string) Tree {
	v, _ := t.lookup(path)
	if m, ok := object(v); ok {
		return Tree(m)
	}
	return Tree{}
}

// Floats returns the numeric array at path, or def when it is missing or
// holds anything that is not a number.
func (t Tree) Floats(path string, def []float64) []float64 {
	v, _ := t.lookup(path)
	switch v := v.(type) {
	case []float64:
		return slices.Clone(v)
	case []any:
		out := make([]float64, 0, len(v))
		for _, e := range v {
			f, ok := number(e)
			if !ok {
				return def
			}
			out = append(out, f)
		}
		return out
	}
	return def
}

// Keys returns the keys of t in sorted order.
func (t Tree) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func number(v any) (float64, bool) {
	switch v := v.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}
