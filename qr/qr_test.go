package qr

import (
	"image"
	"image/png"
	"strings"
	"testing"

	"travmd-form/images"

	"github.com/stretchr/testify/require"
)

const testPayload = `{"q1":"ja","q1d":"Schilddr{ue}se","q2":"","q2d":""}`

func TestRenderDefaults(t *testing.T) {
	img, err := Render(testPayload, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 400, 400), img.Bounds())

	// corners lie in the quiet zone
	r, g, b, _ := img.At(0, 0).RGBA()
	require.Equal(t, uint32(0xffff), r&g&b)
	r, g, b, _ = img.At(399, 399).RGBA()
	require.Equal(t, uint32(0xffff), r&g&b)
}

func TestRenderRoundTrip(t *testing.T) {
	texts := []string{
		testPayload,
		"eyJ0aSI6IkRyLiIsImZuIjoiSnVlcmdlbiJ9",
		strings.Repeat("A", 300),
	}

	for _, text := range texts {
		img, err := Render(text, DefaultOptions())
		require.NoError(t, err)

		decoded, err := Decode(img)
		require.NoError(t, err)
		require.Equal(t, text, decoded)
	}
}

func TestDecodePNG(t *testing.T) {
	img, err := Render(testPayload, DefaultOptions())
	require.NoError(t, err)

	data, err := images.EncodePNG(img, png.DefaultCompression)
	require.NoError(t, err)

	decoded, err := DecodePNG(data)
	require.NoError(t, err)
	require.Equal(t, testPayload, decoded)
}

func TestRenderCustomColours(t *testing.T) {
	opts := DefaultOptions()
	opts.Background = "yellow"
	opts.Foreground = "#000080"

	img, err := Render("hello", opts)
	require.NoError(t, err)

	r, g, b, _ := img.At(0, 0).RGBA()
	require.Equal(t, []uint32{0xffff, 0xffff, 0}, []uint32{r, g, b})
}

func TestRenderSmallSizeGrowsToFit(t *testing.T) {
	opts := DefaultOptions()
	opts.Size = 10

	img, err := Render(testPayload, opts)
	require.NoError(t, err)
	require.Greater(t, img.Bounds().Dx(), 10)
	require.Equal(t, img.Bounds().Dx(), img.Bounds().Dy())
}

func TestRenderErrors(t *testing.T) {
	t.Run("empty text", func(t *testing.T) {
		_, err := Render("", DefaultOptions())
		require.ErrorIs(t, err, ErrEmptyText)
	})

	t.Run("size too large", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Size = MaxSize + 1
		_, err := Render("x", opts)
		require.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("zero size", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Size = 0
		_, err := Render("x", opts)
		require.ErrorIs(t, err, ErrInvalidSize)
	})

	t.Run("unknown level", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Level = "X"
		_, err := Render("x", opts)
		require.ErrorIs(t, err, ErrEncode)
	})

	t.Run("bad colour", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Foreground = "#nothex"
		_, err := Render("x", opts)
		require.Error(t, err)
	})

	t.Run("text too long", func(t *testing.T) {
		_, err := Render(strings.Repeat("x", 5000), DefaultOptions())
		require.ErrorIs(t, err, ErrEncode)
	})
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(nil)
	require.ErrorIs(t, err, ErrDecode)

	blank := image.NewGray(image.Rect(0, 0, 50, 50))
	_, err = Decode(blank)
	require.ErrorIs(t, err, ErrDecode)

	_, err = DecodePNG([]byte("not a png"))
	require.ErrorIs(t, err, ErrDecode)
}

func TestWithDefaults(t *testing.T) {
	opts := Options{Size: 200}.WithDefaults()
	require.Equal(t, 200, opts.Size)
	require.Equal(t, "Q", opts.Level)
	require.Equal(t, "#ffffff", opts.Background)
	require.Equal(t, "#000000", opts.Foreground)
	require.NotNil(t, opts.QuietZone)
	require.Equal(t, 4, *opts.QuietZone)

	none := 0
	opts = Options{QuietZone: &none}.WithDefaults()
	require.Equal(t, 0, *opts.QuietZone)
}

func TestRenderOmittedQuietZoneMatchesDefault(t *testing.T) {
	omitted := DefaultOptions()
	omitted.QuietZone = nil

	withDefault, err := Render(testPayload, DefaultOptions())
	require.NoError(t, err)
	withOmitted, err := Render(testPayload, omitted)
	require.NoError(t, err)
	require.Equal(t, withDefault, withOmitted)
}

func TestRenderWithoutQuietZone(t *testing.T) {
	none := 0
	opts := DefaultOptions()
	opts.QuietZone = &none

	withZone, err := Render(testPayload, DefaultOptions())
	require.NoError(t, err)
	withoutZone, err := Render(testPayload, opts)
	require.NoError(t, err)
	require.NotEqual(t, withZone, withoutZone)
}

func TestRenderNegativeQuietZone(t *testing.T) {
	negative := -1
	opts := DefaultOptions()
	opts.QuietZone = &negative

	_, err := Render("x", opts)
	require.ErrorIs(t, err, ErrInvalidSize)
}
