// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// encode.go — write-path dispatch: pick an encoding from the value's runtime
// kind and then the entry name's extension.

package zipstore

import (
	"errors"
	"fmt"
	"image"
	"path"
	"reflect"
	"strings"

	"github.com/AndrewDonelson/zipstore/internal/codec"
	"github.com/AndrewDonelson/zipstore/internal/imagecodec"
	"github.com/AndrewDonelson/zipstore/internal/resource"
	"github.com/AndrewDonelson/zipstore/internal/variant"
)

// extOf returns the lower-cased extension of an entry name, dot included.
func extOf(name string) string {
	return strings.ToLower(path.Ext(name))
}

// Encode converts value into the payload stored for an entry called name.
func Encode(name string, value any, opts *Options) ([]byte, error) {
	o := opts.withDefaults()
	ext := extOf(name)
	if isNilPointer(value) {
		return nil, fmt.Errorf("%w: nil %T", ErrTypeMismatch, value)
	}

	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(strings.ToValidUTF8(v, "\uFFFD")), nil
	case image.Image:
		return encodeImage(v, ext, o)
	case *resource.Resource, *resource.PackedScene:
		return encodeObject(v, ext, o)
	case *resource.Node:
		ps, err := resource.Pack(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
		}
		return encodeObject(ps, ext, o)
	}

	if variant.IsStructured(value) {
		c, ok := codec.ForExtension(ext)
		if !ok {
			return nil, fmt.Errorf("%w %q for structured data", ErrUnknownExtension, ext)
		}
		b, err := c.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrEncodeFailed, c.Name(), err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %T (%s)", ErrTypeMismatch, value, preview(value))
}

func encodeImage(img image.Image, ext string, o Options) ([]byte, error) {
	b, err := imagecodec.Encode(img, ext, imagecodec.Options{Lossy: o.Lossy, Quality: o.Quality})
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, imagecodec.ErrUnimplemented):
		return nil, fmt.Errorf("%w: image %s", ErrUnimplemented, ext)
	case errors.Is(err, imagecodec.ErrUnknownFormat):
		return nil, fmt.Errorf("%w %q for image", ErrUnknownExtension, ext)
	default:
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
}

func encodeObject(obj any, ext string, o Options) ([]byte, error) {
	if !resource.IsResourceExt(ext) {
		return nil, fmt.Errorf("%w %q for %T", ErrUnknownExtension, ext, obj)
	}
	b, err := resource.Save(obj, ext, o.SaveFlags)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	return b, nil
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func preview(v any) string {
	s := fmt.Sprintf("%v", v)
	if len(s) > 64 {
		s = s[:61] + "..."
	}
	return s
}
