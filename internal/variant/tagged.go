package variant

// TypeKey is the mapping key that marks an engine value inside a plain
// mapping when a codec has no native way to carry the type.
const TypeKey = "$type"

// ToTagged walks v and replaces every engine value with a mapping carrying
// TypeKey and its components. The input is not modified.
func ToTagged(v any) any {
	switch t := Normalize(v).(type) {
	case Vector2:
		return map[string]any{TypeKey: "Vector2", "x": t.X, "y": t.Y}
	case Vector3:
		return map[string]any{TypeKey: "Vector3", "x": t.X, "y": t.Y, "z": t.Z}
	case Color:
		return map[string]any{TypeKey: "Color", "r": t.R, "g": t.G, "b": t.B, "a": t.A}
	case Rect2:
		return map[string]any{
			TypeKey: "Rect2",
			"x":     t.Position.X, "y": t.Position.Y,
			"w": t.Size.X, "h": t.Size.Y,
		}
	case []any:
		for i, e := range t {
			t[i] = ToTagged(e)
		}
		return t
	case map[string]any:
		for k, e := range t {
			t[k] = ToTagged(e)
		}
		return t
	default:
		return t
	}
}

// FromTagged is the inverse of ToTagged. Mappings whose TypeKey names an
// unknown type, or which lack a component, are left as mappings.
func FromTagged(v any) any {
	switch t := Normalize(v).(type) {
	case []any:
		for i, e := range t {
			t[i] = FromTagged(e)
		}
		return t
	case map[string]any:
		if name, ok := t[TypeKey].(string); ok {
			if ev, ok := revive(name, t); ok {
				return ev
			}
		}
		for k, e := range t {
			t[k] = FromTagged(e)
		}
		return t
	default:
		return t
	}
}

func revive(name string, m map[string]any) (any, bool) {
	var keys []string
	switch name {
	case "Vector2":
		keys = []string{"x", "y"}
	case "Vector3":
		keys = []string{"x", "y", "z"}
	case "Color":
		keys = []string{"r", "g", "b", "a"}
	case "Rect2":
		keys = []string{"x", "y", "w", "h"}
	default:
		return nil, false
	}
	if len(m) != len(keys)+1 {
		return nil, false
	}
	f := make([]float64, len(keys))
	for i, k := range keys {
		n, ok := toFloat(m[k])
		if !ok {
			return nil, false
		}
		f[i] = n
	}
	switch name {
	case "Vector2":
		return Vector2{X: f[0], Y: f[1]}, true
	case "Vector3":
		return Vector3{X: f[0], Y: f[1], Z: f[2]}, true
	case "Color":
		return Color{R: f[0], G: f[1], B: f[2], A: f[3]}, true
	default:
		return Rect2{Position: Vector2{X: f[0], Y: f[1]}, Size: Vector2{X: f[2], Y: f[3]}}, true
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}
