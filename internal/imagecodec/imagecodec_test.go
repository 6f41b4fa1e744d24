package imagecodec

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	return img
}

func TestEncodeDecode_RoundTripDimensions(t *testing.T) {
	src := checker(8, 6)
	for _, ext := range []string{".png", ".jpg", ".JPEG", ".bmp", ".tif", ".tiff", ".webp"} {
		data, err := Encode(src, ext, Options{})
		require.NoError(t, err, ext)
		got, err := Decode(data, ext)
		require.NoError(t, err, ext)
		assert.Equal(t, src.Bounds().Size(), got.Bounds().Size(), ext)
	}
}

func TestEncode_PNGIsLossless(t *testing.T) {
	src := checker(4, 4)
	data, err := Encode(src, ".png", Options{Quality: 0.1})
	require.NoError(t, err)
	got, err := Decode(data, ".png")
	require.NoError(t, err)
	r, _, b, _ := got.At(1, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), b)
}

func TestEncode_LossyPNGIsPaletted(t *testing.T) {
	data, err := Encode(checker(4, 4), ".png", Options{Lossy: true})
	require.NoError(t, err)
	got, err := Decode(data, ".png")
	require.NoError(t, err)
	_, ok := got.(*image.Paletted)
	assert.True(t, ok, "got %T", got)
	assert.Equal(t, image.Pt(4, 4), got.Bounds().Size())
}

func TestEncode_WebPIsLossless(t *testing.T) {
	src := checker(5, 3)
	data, err := Encode(src, ".webp", Options{})
	require.NoError(t, err)
	got, err := Decode(data, ".webp")
	require.NoError(t, err)
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			wr, wg, wb, wa := src.At(x, y).RGBA()
			r, g, b, a := got.At(x, y).RGBA()
			assert.Equal(t, [4]uint32{wr, wg, wb, wa}, [4]uint32{r, g, b, a}, "pixel %d,%d", x, y)
		}
	}
}

func TestEncode_LossyWebP(t *testing.T) {
	data, err := Encode(checker(6, 6), ".webp", Options{Lossy: true})
	require.NoError(t, err)
	got, err := Decode(data, ".webp")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(6, 6), got.Bounds().Size())
}

func TestEncode_Unimplemented(t *testing.T) {
	_, err := Encode(checker(2, 2), ".svg", Options{})
	assert.ErrorIs(t, err, ErrUnimplemented)
}

func TestEncodeDecode_UnknownFormat(t *testing.T) {
	_, err := Encode(checker(2, 2), ".gifx", Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
	_, err = Decode([]byte{1, 2, 3}, ".gifx")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_Corrupt(t *testing.T) {
	_, err := Decode([]byte("garbage"), ".png")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnknownFormat)
}

func TestDecode_SVG(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 16 10" width="16" height="10">` +
		`<rect x="0" y="0" width="16" height="10" fill="#ff0000"/></svg>`
	img, err := Decode([]byte(svg), ".svg")
	require.NoError(t, err)
	assert.Equal(t, image.Pt(16, 10), img.Bounds().Size())
}

func TestHalve(t *testing.T) {
	assert.Equal(t, image.Pt(4, 3), Halve(checker(8, 6)).Bounds().Size())
	assert.Equal(t, image.Pt(1, 1), Halve(checker(1, 1)).Bounds().Size())
}

func TestJPEGQuality(t *testing.T) {
	assert.Equal(t, 75, jpegQuality(0))
	assert.Equal(t, 100, jpegQuality(3))
	assert.Equal(t, 1, jpegQuality(-1))
	assert.Equal(t, 50, jpegQuality(0.5))
}

func TestIsImageExt(t *testing.T) {
	assert.True(t, IsImageExt(".PNG"))
	assert.True(t, IsImageExt(".svg"))
	assert.False(t, IsImageExt(".json"))
}
