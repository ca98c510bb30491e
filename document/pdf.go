package document

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"travmd-form/i18n"
	"travmd-form/images"
	"travmd-form/models"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

const fontFamily = "Helvetica"

// PDFCanvas draws on an A4 page in millimetres. The core fonts are Windows-1252 encoded,
// runes outside that code page are printed as '?'.
type PDFCanvas struct {
	pdf *fpdf.Fpdf
}

func NewPDFCanvas(title string) *PDFCanvas {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("travmd-form", true)
	pdf.SetFont(fontFamily, "", 10)
	return &PDFCanvas{pdf: pdf}
}

func (c *PDFCanvas) AddPage() {
	c.pdf.AddPage()
}

func (c *PDFCanvas) SetFont(style string, size float64) {
	c.pdf.SetFont(fontFamily, style, size)
}

func (c *PDFCanvas) SetTextColor(r, g, b int) {
	c.pdf.SetTextColor(r, g, b)
}

func (c *PDFCanvas) SetFillColor(r, g, b int) {
	c.pdf.SetFillColor(r, g, b)
}

func (c *PDFCanvas) Text(x, y float64, text string) {
	c.pdf.Text(x, y, toCodePage(text))
}

func (c *PDFCanvas) TextCentered(x, y float64, text string) {
	encoded := toCodePage(text)
	c.pdf.Text(x-c.pdf.GetStringWidth(encoded)/2, y, encoded)
}

func (c *PDFCanvas) FillRect(x, y, w, h float64) {
	c.pdf.Rect(x, y, w, h, "F")
}

func (c *PDFCanvas) StrokeRect(x, y, w, h, lineWidth float64) {
	c.pdf.SetDrawColor(0, 0, 0)
	c.pdf.SetLineWidth(lineWidth)
	c.pdf.Rect(x, y, w, h, "D")
}

// Wrap measures with the font's single byte width table, so the text is split as a
// string of runes U+0000..U+00FF that stand for code page bytes.
func (c *PDFCanvas) Wrap(text string, width float64) []string {
	encoded := toCodePage(text)
	asRunes := make([]rune, len(encoded))
	for i := 0; i < len(encoded); i++ {
		asRunes[i] = rune(encoded[i])
	}

	lines := c.pdf.SplitText(string(asRunes), width)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		var sb strings.Builder
		for _, r := range line {
			sb.WriteRune(charmap.Windows1252.DecodeByte(byte(r)))
		}
		out = append(out, sb.String())
	}
	return out
}

func (c *PDFCanvas) Image(name string, img image.Image, x, y, w, h float64) error {
	data, err := images.EncodePNG(img, png.DefaultCompression)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	c.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return c.pdf.Error()
}

// Output writes the finished document.
func (c *PDFCanvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

func toCodePage(text string) string {
	out := make([]byte, 0, len(text))
	for _, r := range text {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		out = append(out, b)
	}
	return string(out)
}

// Render builds the summary as PDF bytes.
func Render(s models.Summary, codes QRCodes, l i18n.Localizer) ([]byte, error) {
	canvas := NewPDFCanvas(l.T("pdfTitle"))
	if err := Build(canvas, s, codes, l); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := canvas.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
