package images

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"log/slog"

	xdraw "golang.org/x/image/draw"
)

const dataURLPrefix = "data:image/png;base64,"

// EncodePNG encodes img with the given compression level.
func EncodePNG(img image.Image, level png.CompressionLevel) ([]byte, error) {
	if img == nil {
		return nil, fmt.Errorf("no image provided")
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// ToDataURL encodes img as a PNG data URL, the form a browser canvas hands out.
func ToDataURL(img image.Image) (string, error) {
	data, err := EncodePNG(img, png.BestCompression)
	if err != nil {
		return "", err
	}
	slog.Debug("Image encoded as data URL", "png_size", len(data))
	return dataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// DecodeDataURL is the inverse of ToDataURL.
func DecodeDataURL(url string) (image.Image, error) {
	if len(url) < len(dataURLPrefix) || url[:len(dataURLPrefix)] != dataURLPrefix {
		return nil, fmt.Errorf("not a PNG data URL")
	}
	data, err := base64.StdEncoding.DecodeString(url[len(dataURLPrefix):])
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL: %w", err)
	}
	return DecodePNG(data)
}

func DecodePNG(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no image data provided")
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}
	return img, nil
}

// ScaleCrisp enlarges src by an integer factor with nearest neighbour sampling so that
// QR modules keep hard edges when printed. Paletted images stay paletted.
func ScaleCrisp(src image.Image, factor int) image.Image {
	if factor <= 1 {
		return src
	}
	b := src.Bounds()
	rect := image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor)
	var dst xdraw.Image = image.NewRGBA(rect)
	if p, ok := src.(*image.Paletted); ok {
		dst = image.NewPaletted(rect, p.Palette)
	}
	xdraw.NearestNeighbor.Scale(dst, rect, src, b, xdraw.Src, nil)
	return dst
}
