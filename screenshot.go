package zipstore

import (
	"fmt"
	"image"

	"github.com/AndrewDonelson/zipstore/internal/imagecodec"
)

// FrameSource is the renderer a screenshot is taken from.
type FrameSource interface {
	// FrameDrawn returns a channel that is closed (or receives once) after
	// the frame in flight has finished rendering.
	FrameDrawn() <-chan struct{}
	// Capture returns the current frame buffer.
	Capture() (image.Image, error)
}

// WriteScreenshot waits for the next rendered frame, captures it and appends
// it to the archive at path as entry name. With downsample the frame is
// halved in both dimensions first. The wait cannot be cancelled. A capture
// failure is reported as a failed entry and the archive is not touched.
func (s *Store) WriteScreenshot(path, name string, src FrameSource, downsample bool, opts *Options) (*Report, error) {
	<-src.FrameDrawn()

	img, err := src.Capture()
	if err != nil {
		s.stats.EntriesFailed.Add(1)
		s.metrics.RecordError("append", extOf(name))
		s.logger.Error("zipstore: screenshot capture failed", "path", path, "entry", name, "error", err)
		rep := &Report{Path: path}
		rep.fail(name, fmt.Errorf("%w: capture: %w", ErrEncodeFailed, err))
		return rep, nil
	}
	if downsample {
		img = imagecodec.Halve(img)
	}
	return s.Append(path, []Entry{{Name: name, Value: img}}, opts)
}
