package zipstore_test

import (
	"errors"
	"image"
	"testing"

	"github.com/AndrewDonelson/zipstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFrames struct {
	drawn    chan struct{}
	img      image.Image
	err      error
	captured bool
}

func newFakeFrames(img image.Image) *fakeFrames {
	return &fakeFrames{drawn: make(chan struct{}), img: img}
}

func (f *fakeFrames) FrameDrawn() <-chan struct{} { return f.drawn }

func (f *fakeFrames) Capture() (image.Image, error) {
	f.captured = true
	return f.img, f.err
}

func TestWriteScreenshot_WaitsForFrame(t *testing.T) {
	s, _ := newStore(t)
	mustWrite(t, s, "/save.zip", zipstore.Entry{Name: "state.txt", Value: "s"})
	src := newFakeFrames(gradient(16, 10))

	type result struct {
		rep *zipstore.Report
		err error
	}
	done := make(chan result, 1)
	go func() {
		rep, err := s.WriteScreenshot("/save.zip", "thumb.png", src, true, nil)
		done <- result{rep, err}
	}()

	select {
	case <-done:
		t.Fatal("screenshot written before frame was drawn")
	default:
	}
	close(src.drawn)
	res := <-done
	require.NoError(t, res.err)
	assert.True(t, res.rep.OK())
	assert.True(t, src.captured)

	names, err := s.List("/save.zip", "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"state.txt", "thumb.png"}, names)

	img, ok := s.Read("/save.zip", "thumb.png", nil).(image.Image)
	require.True(t, ok)
	assert.Equal(t, image.Pt(8, 5), img.Bounds().Size())
}

func TestWriteScreenshot_FullSize(t *testing.T) {
	s, _ := newStore(t)
	src := newFakeFrames(gradient(16, 10))
	close(src.drawn)

	rep, err := s.WriteScreenshot("/shots.zip", "full.jpg", src, false, &zipstore.Options{Quality: 0.5})
	require.NoError(t, err)
	require.True(t, rep.OK())
	img := s.Read("/shots.zip", "full.jpg", nil).(image.Image)
	assert.Equal(t, image.Pt(16, 10), img.Bounds().Size())
}

func TestWriteScreenshot_CaptureFailure(t *testing.T) {
	s, fs := newStore(t)
	src := newFakeFrames(nil)
	src.err = errors.New("gpu lost")
	close(src.drawn)

	rep, err := s.WriteScreenshot("/shots.zip", "x.png", src, false, nil)
	require.NoError(t, err)
	require.Len(t, rep.Failed, 1)
	assert.ErrorIs(t, rep.Err(), zipstore.ErrEncodeFailed)

	exists, _ := fs.Stat("/shots.zip")
	assert.Nil(t, exists)
}
