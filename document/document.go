// Package document lays out the printable summary of the intake form. The layout is
// written against the Canvas interface; PDFCanvas renders it to an A4 PDF.
package document

import (
	"errors"
	"fmt"
	"image"

	"travmd-form/i18n"
	"travmd-form/models"
)

// Filename is the name the summary is offered under.
const Filename = "reisemedizin-formular.pdf"

const (
	pageWidth    = 210.0
	marginLeft   = 20.0
	secondColumn = 110.0
	maxTextWidth = 170.0

	medicalStartY     = 160.0
	medicalLineHeight = 5.0
	medicalBottom     = 255.0
)

var ErrRender = errors.New("failed to render document")

// Canvas is the drawing surface of the summary. Coordinates are millimetres from the top
// left corner of the page, y of text is the baseline.
type Canvas interface {
	AddPage()
	SetFont(style string, size float64)
	SetTextColor(r, g, b int)
	SetFillColor(r, g, b int)
	Text(x, y float64, text string)
	TextCentered(x, y float64, text string)
	FillRect(x, y, w, h float64)
	StrokeRect(x, y, w, h, lineWidth float64)
	// Wrap splits text into lines no wider than width at the current font.
	Wrap(text string, width float64) []string
	Image(name string, img image.Image, x, y, w, h float64) error
}

// QRCodes are the rendered payloads placed on the second page.
type QRCodes struct {
	Personal image.Image
	Medical  image.Image
}

func (q QRCodes) complete() bool {
	return q.Personal != nil && q.Medical != nil
}

type block struct {
	y, height float64
	r, g, b   int
}

var (
	personalBlock = block{y: 35, height: 50, r: 232, g: 245, b: 233}
	travelBlock   = block{y: 85, height: 55, r: 255, g: 253, b: 231}
	medicalBlock  = block{y: 145, height: 115, r: 245, g: 245, b: 245}
)

func drawBlock(c Canvas, b block) {
	c.SetFillColor(b.r, b.g, b.b)
	c.FillRect(0, b.y, pageWidth, b.height)
}

func heading(c Canvas, y float64, text string) {
	c.SetFont("B", 12)
	c.SetTextColor(0, 0, 0)
	c.Text(marginLeft, y, text)
	c.SetFont("", 10)
}

// lineSpacing is the baseline distance of consecutive lines of one wrapped text.
func lineSpacing(fontSize float64) float64 {
	return fontSize * 1.15 * 25.4 / 72
}

func textLines(c Canvas, x, y float64, lines []string, spacing float64) {
	for i, line := range lines {
		c.Text(x, y+float64(i)*spacing, line)
	}
}

func wrap(c Canvas, text string) []string {
	lines := c.Wrap(text, maxTextWidth)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// Build draws the two page summary. The QR page is always added; the codes are placed on
// it only when both images are present.
func Build(c Canvas, s models.Summary, codes QRCodes, l i18n.Localizer) error {
	c.AddPage()

	c.SetFont("B", 18)
	c.SetTextColor(0, 100, 0)
	c.TextCentered(pageWidth/2, 20, l.T("pdfTitle"))

	c.SetFont("", 10)
	c.SetTextColor(0, 0, 0)
	c.TextCentered(pageWidth/2, 28, l.T("pdfSubtitle"))

	drawBlock(c, personalBlock)
	heading(c, 43, l.T("personalData"))
	c.Text(marginLeft, 50, labelled(l.T("name"), s.Name))
	c.Text(marginLeft, 56, labelled(l.T("birthDate"), s.BirthDate))
	c.Text(marginLeft, 62, labelled(l.T("address"), s.Street))
	c.Text(marginLeft, 68, s.PostalCity)
	c.Text(marginLeft, 74, labelled(l.T("email"), s.Email))
	c.Text(secondColumn, 74, labelled(l.T("phone"), s.Phone))

	drawBlock(c, travelBlock)
	heading(c, 93, l.T("travelInfo"))
	textLines(c, marginLeft, 100, wrap(c, labelled(l.T("destinations"), s.Destinations)), lineSpacing(10))
	c.Text(marginLeft, 113, labelled(l.T("moreCountries"), YesNo(l, s.MoreCountries)))
	c.Text(marginLeft, 119, labelled(l.T("departureDate"), s.DepartureDate))
	c.Text(marginLeft, 125, labelled(l.T("duration"), s.Duration))
	if s.TravelStyle != "" {
		c.Text(marginLeft, 131, labelled(l.T("travelStyle"), TravelStyleText(l, s.TravelStyle)))
	}

	drawBlock(c, medicalBlock)
	heading(c, 153, l.T("medicalInfo"))
	c.SetFont("", 8)
	y := medicalStartY
	for _, line := range s.Medical {
		if y+medicalLineHeight > medicalBottom {
			break
		}
		value := line.Value
		switch {
		case !line.Answered:
			value = l.T("noData")
		case !line.Detail:
			value = AnswerText(l, value)
		}
		wrapped := wrap(c, labelled(l.T(line.LabelKey), value))
		textLines(c, marginLeft, y, wrapped, lineSpacing(8))
		y += float64(len(wrapped)) * medicalLineHeight
	}

	c.SetFont("", 10)
	c.Text(marginLeft, 250, l.T("date"))
	c.StrokeRect(marginLeft, 255, 70, 20, 0.5)
	c.Text(secondColumn, 250, l.T("signature"))
	c.StrokeRect(secondColumn, 255, 70, 20, 0.5)

	c.AddPage()
	if !codes.complete() {
		return nil
	}
	c.SetFont("", 10)
	c.SetTextColor(0, 0, 0)
	if err := c.Image("personal", codes.Personal, 20, 20, 80, 80); err != nil {
		return fmt.Errorf("%w: personal QR code: %w", ErrRender, err)
	}
	c.TextCentered(60, 110, l.T("qrPersonal"))
	if err := c.Image("medical", codes.Medical, 20, 140, 80, 80); err != nil {
		return fmt.Errorf("%w: medical QR code: %w", ErrRender, err)
	}
	c.TextCentered(60, 230, l.T("qrMedical"))
	return nil
}
