// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// variant.go — engine value types (vectors, colors, rects) that travel inside
// structured data, plus Normalize which canonicalizes decoded value trees so
// every codec hands back the same Go shapes.

// Package variant defines the engine value model shared by the structured
// data codecs and the resource serializer.
package variant

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Vector2 is a 2D vector.
type Vector2 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
}

// Vector3 is a 3D vector.
type Vector3 struct {
	X float64 `json:"x" msgpack:"x"`
	Y float64 `json:"y" msgpack:"y"`
	Z float64 `json:"z" msgpack:"z"`
}

// Color is an RGBA color with float components in [0,1].
type Color struct {
	R float64 `json:"r" msgpack:"r"`
	G float64 `json:"g" msgpack:"g"`
	B float64 `json:"b" msgpack:"b"`
	A float64 `json:"a" msgpack:"a"`
}

// Rect2 is an axis-aligned rectangle.
type Rect2 struct {
	Position Vector2 `json:"position" msgpack:"position"`
	Size     Vector2 `json:"size" msgpack:"size"`
}

func (v Vector2) String() string { return fmt.Sprintf("Vector2(%g, %g)", v.X, v.Y) }
func (v Vector3) String() string { return fmt.Sprintf("Vector3(%g, %g, %g)", v.X, v.Y, v.Z) }
func (c Color) String() string   { return fmt.Sprintf("Color(%g, %g, %g, %g)", c.R, c.G, c.B, c.A) }
func (r Rect2) String() string {
	return fmt.Sprintf("Rect2(%g, %g, %g, %g)", r.Position.X, r.Position.Y, r.Size.X, r.Size.Y)
}

// IsEngineType reports whether v is one of the engine value types.
func IsEngineType(v any) bool {
	switch v.(type) {
	case Vector2, Vector3, Color, Rect2, *Vector2, *Vector3, *Color, *Rect2:
		return true
	}
	return false
}

// IsStructured reports whether v is a mapping or sequence value that the
// structured data codecs accept: a map keyed by strings, or a slice/array
// that is not a byte slice.
func IsStructured(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}

// Normalize converts a decoded value tree into canonical form: signed and
// unsigned integers become int64 (unsigned values too large for int64 stay
// uint64), floats become float64, string-keyed maps
// become map[string]any, sequences become []any and pointers to engine
// types are dereferenced. Unsupported leaves are returned unchanged.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil, bool, string, int64, float64, Vector2, Vector3, Color, Rect2:
		return t
	case *Vector2:
		return *t
	case *Vector3:
		return *t
	case *Color:
		return *t
	case *Rect2:
		return *t
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return normalizeUint(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return normalizeUint(t)
	case float32:
		return float64(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Normalize(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = Normalize(e)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}
		return out
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return v
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

// normalizeUint keeps values above math.MaxInt64 as uint64 rather than
// wrapping them negative.
func normalizeUint(u uint64) any {
	if u > math.MaxInt64 {
		return u
	}
	return int64(u)
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
