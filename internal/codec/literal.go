// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// literal.go — the engine-native literal text codec. Documents are YAML; engine
// values are tagged mappings, and integers stay distinct from floats.

package codec

import (
	"math"
	"strconv"
	"strings"

	"github.com/AndrewDonelson/zipstore/internal/variant"
	"github.com/goccy/go-yaml"
)

// Literal is the native literal text codec.
type Literal struct{}

// Marshal serializes v to literal text.
func (Literal) Marshal(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(variant.ToTagged(v), yaml.CustomMarshaler[float64](literalFloat))
}

// literalFloat writes f so that it always reads back as a float: the
// mantissa carries a '.' even in exponent form (1.0e-07, not 1e-07).
func literalFloat(f float64) ([]byte, error) {
	switch {
	case math.IsInf(f, 1):
		return []byte(".inf"), nil
	case math.IsInf(f, -1):
		return []byte("-.inf"), nil
	case math.IsNaN(f):
		return []byte(".nan"), nil
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.Contains(s, ".") {
		return []byte(s), nil
	}
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		return []byte(s[:i] + ".0" + s[i:]), nil
	}
	return []byte(s + ".0"), nil
}

// Unmarshal parses literal text into v. When v is a *any the decoded tree
// has its engine values revived.
func (Literal) Unmarshal(data []byte, v any) error {
	if err := yaml.Unmarshal(data, v); err != nil {
		return err
	}
	if p, ok := v.(*any); ok {
		*p = variant.FromTagged(*p)
	}
	return nil
}

// Name returns "literal".
func (Literal) Name() string { return "literal" }
