// Package qr renders payload text as QR code images and scans them back.
package qr

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"travmd-form/images"

	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	qrgen "github.com/skip2/go-qrcode"
)

var (
	ErrEmptyText   = errors.New("no text to encode")
	ErrEncode      = errors.New("failed to encode QR code")
	ErrDecode      = errors.New("failed to decode QR code")
	ErrInvalidSize = errors.New("invalid QR code size")
)

// MaxSize is the largest image edge Render produces.
const MaxSize = 4096

// Options mirror the settings of the form's QR widget.
type Options struct {
	Size       int    `json:"size"`
	Level      string `json:"ec_level"`
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	// QuietZone is in modules. Nil means the default of 4, an explicit 0 renders none.
	QuietZone  *int   `json:"quiet_zone,omitempty"`
}

const defaultQuietZone = 4

func (o Options) quietZone() int {
	if o.QuietZone == nil {
		return defaultQuietZone
	}
	return *o.QuietZone
}

func DefaultOptions() Options {
	quietZone := defaultQuietZone
	return Options{
		Size:       400,
		Level:      "Q",
		Background: "#ffffff",
		Foreground: "#000000",
		QuietZone:  &quietZone,
	}
}

// WithDefaults fills zero values from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Size == 0 {
		o.Size = d.Size
	}
	if o.Level == "" {
		o.Level = d.Level
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.Foreground == "" {
		o.Foreground = d.Foreground
	}
	if o.QuietZone == nil {
		o.QuietZone = d.QuietZone
	}
	return o
}

func recoveryLevel(level string) (qrgen.RecoveryLevel, error) {
	switch strings.ToUpper(level) {
	case "L":
		return qrgen.Low, nil
	case "M":
		return qrgen.Medium, nil
	case "Q":
		return qrgen.High, nil
	case "H":
		return qrgen.Highest, nil
	}
	return 0, fmt.Errorf("unknown error correction level: %q", level)
}

// Render draws text as a square QR code of opts.Size pixels. Modules have an integer
// pixel size and the symbol is centred, so the image may carry a few extra pixels of
// background around the quiet zone.
func Render(text string, opts Options) (image.Image, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	quietZone := opts.quietZone()
	if opts.Size <= 0 || opts.Size > MaxSize || quietZone < 0 {
		return nil, ErrInvalidSize
	}

	level, err := recoveryLevel(opts.Level)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	background, err := images.ParseColor(opts.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	foreground, err := images.ParseColor(opts.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground: %w", err)
	}

	code, err := qrgen.New(text, level)
	if err != nil {
		return nil, errors.Join(ErrEncode, err)
	}
	code.DisableBorder = true
	bitmap := code.Bitmap()

	modules := len(bitmap) + 2*quietZone
	symbol := image.NewPaletted(image.Rect(0, 0, modules, modules), color.Palette{background, foreground})
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				symbol.SetColorIndex(x+quietZone, y+quietZone, 1)
			}
		}
	}

	moduleSize := max(opts.Size/modules, 1)
	size := max(opts.Size, modules*moduleSize)
	offset := (size - modules*moduleSize) / 2

	scaled := images.ScaleCrisp(symbol, moduleSize)
	img := image.NewPaletted(image.Rect(0, 0, size, size), symbol.Palette)
	draw.Draw(img, scaled.Bounds().Add(image.Pt(offset, offset)), scaled, image.Point{}, draw.Src)
	return img, nil
}

// Decode scans img for a QR code and returns its text.
func Decode(img image.Image) (string, error) {
	if img == nil {
		return "", ErrDecode
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return "", errors.Join(ErrDecode, err)
	}

	result, err := zxqr.NewQRCodeReader().Decode(bmp, nil)
	if err != nil {
		return "", errors.Join(ErrDecode, err)
	}
	return result.GetText(), nil
}

// DecodePNG scans PNG encoded data.
func DecodePNG(data []byte) (string, error) {
	img, err := images.DecodePNG(data)
	if err != nil {
		return "", errors.Join(ErrDecode, err)
	}
	return Decode(img)
}
