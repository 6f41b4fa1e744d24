package zipstore

import (
	"fmt"
	"strings"

	"github.com/AndrewDonelson/zipstore/internal/codec"
	"github.com/AndrewDonelson/zipstore/internal/imagecodec"
	"github.com/AndrewDonelson/zipstore/internal/resource"
)

// Decode converts the payload of an entry called name back into a value:
// image.Image for image formats, string for .txt, map[string]any or []any
// for structured formats, *Resource for .tres/.res and *PackedScene for
// .tscn/.scn.
func Decode(name string, data []byte) (any, error) {
	ext := extOf(name)
	switch {
	case imagecodec.IsImageExt(ext):
		img, err := imagecodec.Decode(data, ext)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
		}
		return img, nil
	case ext == ".txt":
		return strings.ToValidUTF8(string(data), "\uFFFD"), nil
	case resource.IsResourceExt(ext):
		obj, err := resource.Load(data, ext)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
		}
		return obj, nil
	}
	if c, ok := codec.ForExtension(ext); ok {
		v, err := codec.Decode(c, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrDecodeFailed, c.Name(), err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownExtension, ext)
}
