package zipstore

import (
	"github.com/AndrewDonelson/zipstore/internal/imagecodec"
	"github.com/AndrewDonelson/zipstore/internal/resource"
)

// SaveFlags tune resource and scene encoding.
type SaveFlags = resource.SaveFlags

const (
	// FlagCompress zstd-compresses binary resources (.res, .scn).
	FlagCompress = resource.FlagCompress
	// FlagOmitEditorProperties drops properties prefixed "editor_".
	FlagOmitEditorProperties = resource.FlagOmitEditorProperties
)

// DefaultQuality is the image quality used when Options.Quality is zero.
const DefaultQuality = imagecodec.DefaultQuality

// Options are per-call encoding hints. They are consulted only by image and
// resource encodings; a nil *Options means all defaults.
type Options struct {
	// Lossy requests lossy output where the image format offers a choice.
	Lossy bool
	// Quality in [0,1] for lossy image formats. Zero means DefaultQuality.
	Quality float64
	// SaveFlags are passed to the resource serializer.
	SaveFlags SaveFlags
}

func (o *Options) withDefaults() Options {
	var out Options
	if o != nil {
		out = *o
	}
	if out.Quality == 0 {
		out.Quality = DefaultQuality
	}
	return out
}
