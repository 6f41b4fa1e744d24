package zipstore_test

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/AndrewDonelson/zipstore"
	"github.com/AndrewDonelson/zipstore/internal/clock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// ── Store helpers ────────────────────────────────────────────────────────────

func newStore(t *testing.T) (*zipstore.Store, afero.Fs) {
	t.Helper()
	return newStoreWith(t, zipstore.Config{})
}

func newStoreWith(t *testing.T, cfg zipstore.Config) (*zipstore.Store, afero.Fs) {
	t.Helper()
	if cfg.FS == nil {
		cfg.FS = afero.NewMemMapFs()
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.NewMock(time.Date(2025, 5, 17, 9, 30, 0, 0, time.UTC))
	}
	s, err := zipstore.New(cfg)
	require.NoError(t, err)
	return s, cfg.FS
}

func mustWrite(t *testing.T, s *zipstore.Store, path string, entries ...zipstore.Entry) {
	t.Helper()
	rep, err := s.Write(path, entries, nil)
	require.NoError(t, err)
	require.NoError(t, rep.Err())
}

func mustAppend(t *testing.T, s *zipstore.Store, path string, entries ...zipstore.Entry) {
	t.Helper()
	rep, err := s.Append(path, entries, nil)
	require.NoError(t, err)
	require.NoError(t, rep.Err())
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 128, A: 255})
		}
	}
	return img
}
