// Package codec provides the structured data codecs used for archive entries.
package codec

import (
	"strings"

	"github.com/AndrewDonelson/zipstore/internal/variant"
)

// Codec encodes and decodes structured values for archive entries.
type Codec interface {
	// Marshal serializes v into bytes.
	Marshal(v any) ([]byte, error)
	// Unmarshal deserializes data into v (must be a pointer).
	Unmarshal(data []byte, v any) error
	// Name returns the codec identifier used for diagnostics.
	Name() string
}

var byExtension = map[string]Codec{
	".json":    JSON{},
	".var":     Literal{},
	".msgpack": MsgPack{},
}

// ForExtension returns the codec registered for ext (case-insensitive,
// leading dot included).
func ForExtension(ext string) (Codec, bool) {
	c, ok := byExtension[strings.ToLower(ext)]
	return c, ok
}

// Decode unmarshals data with c and returns the canonical value tree.
func Decode(c Codec, data []byte) (any, error) {
	var v any
	if err := c.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return variant.Normalize(v), nil
}
