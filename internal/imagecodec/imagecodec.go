// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// imagecodec.go — raster and vector image encode/decode keyed by file
// extension, plus the half-size downsample used for screenshots.

// Package imagecodec converts between image.Image values and encoded bytes.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color/palette"
	"image/jpeg"
	"image/png"
	"math"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var (
	// ErrUnknownFormat is returned for extensions with no image codec.
	ErrUnknownFormat = errors.New("imagecodec: unknown image format")
	// ErrUnimplemented is returned for svg, which can be decoded but not
	// encoded.
	ErrUnimplemented = errors.New("imagecodec: encoding not implemented")
)

// DefaultQuality is used when no quality is supplied.
const DefaultQuality = 0.75

// Options tunes lossy encoders.
type Options struct {
	// Lossy selects lossy output where the format offers a choice. PNG and
	// WebP are quantized to a palette before lossless coding; JPEG is always
	// lossy.
	Lossy bool
	// Quality in [0,1]; values outside are clamped, zero means DefaultQuality.
	Quality float64
}

// IsImageExt reports whether ext names a format Decode understands.
func IsImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg", ".webp", ".bmp", ".tif", ".tiff", ".svg":
		return true
	}
	return false
}

// Encode writes img in the format named by ext.
func Encode(img image.Image, ext string, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(ext) {
	case ".png":
		if opts.Lossy {
			img = quantize(img)
		}
		err = png.Encode(&buf, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality(opts.Quality)})
	case ".bmp":
		err = bmp.Encode(&buf, img)
	case ".tif", ".tiff":
		err = tiff.Encode(&buf, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case ".webp":
		if opts.Lossy {
			img = quantize(img)
		}
		err = nativewebp.Encode(&buf, img, nil)
	case ".svg":
		return nil, fmt.Errorf("%w: %s", ErrUnimplemented, ext)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ext, err)
	}
	return buf.Bytes(), nil
}

// Decode parses data in the format named by ext.
func Decode(data []byte, ext string) (image.Image, error) {
	r := bytes.NewReader(data)
	var img image.Image
	var err error
	switch strings.ToLower(ext) {
	case ".png":
		img, err = png.Decode(r)
	case ".jpg", ".jpeg":
		img, err = jpeg.Decode(r)
	case ".webp":
		img, err = webp.Decode(r)
	case ".bmp":
		img, err = bmp.Decode(r)
	case ".tif", ".tiff":
		img, err = tiff.Decode(r)
	case ".svg":
		img, err = rasterizeSVG(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", ext, err)
	}
	return img, nil
}

func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	w, h := int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H))
	if w <= 0 || h <= 0 {
		return nil, errors.New("svg has empty viewBox")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// quantize reduces img to the web-safe palette with error diffusion; the
// lossy PNG mode.
func quantize(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewPaletted(b, palette.WebSafe)
	draw.FloydSteinberg.Draw(dst, b, img, b.Min)
	return dst
}

// Halve returns img scaled to half its width and height (at least 1x1).
func Halve(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx()/2, b.Dy()/2
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

func jpegQuality(q float64) int {
	if q == 0 {
		q = DefaultQuality
	}
	q = math.Max(0, math.Min(1, q))
	n := int(math.Round(q * 100))
	if n < 1 {
		n = 1
	}
	return n
}
