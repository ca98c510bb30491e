package document

import (
	"bytes"
	"strings"
	"testing"

	"travmd-form/i18n"
	"travmd-form/models"
	"travmd-form/qr"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesValidPDF(t *testing.T) {
	personal, err := qr.Render(`{"fn":"J{ue}rgen"}`, qr.DefaultOptions())
	require.NoError(t, err)
	medical, err := qr.Render(`{"q1":"ja"}`, qr.DefaultOptions())
	require.NoError(t, err)

	data, err := Render(sampleSummary(), QRCodes{Personal: personal, Medical: medical}, i18n.Default().For("de"))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	pages, err := Validate(data)
	require.NoError(t, err)
	require.Equal(t, 2, pages)
}

func TestRenderWithoutCodes(t *testing.T) {
	data, err := Render(models.Summary{}, QRCodes{}, i18n.Default().For("en"))
	require.NoError(t, err)

	pages, err := Validate(data)
	require.NoError(t, err)
	require.Equal(t, 2, pages)
}

func TestValidateRejectsGarbage(t *testing.T) {
	_, err := Validate([]byte("not a pdf"))
	require.Error(t, err)
}

func TestToCodePage(t *testing.T) {
	require.Equal(t, "M\xfcller \x80", toCodePage("Müller €"))
	require.Equal(t, "?", toCodePage("Ł"))
}

func TestPDFCanvasWrapKeepsUmlauts(t *testing.T) {
	c := NewPDFCanvas("test")
	c.AddPage()
	c.SetFont("", 10)

	text := strings.Repeat("Größe ", 60)
	lines := c.Wrap(text, maxTextWidth)
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		require.Contains(t, line, "Größe")
	}
}

func TestPDFCanvasWrapEmpty(t *testing.T) {
	c := NewPDFCanvas("test")
	c.AddPage()
	require.NotPanics(t, func() { c.Wrap("", maxTextWidth) })
}

func TestFontFamilyIsCoreFont(t *testing.T) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 12)
	require.NoError(t, pdf.Error())
}
