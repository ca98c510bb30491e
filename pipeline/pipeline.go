// Package pipeline runs the generate action: it collects both records, encodes them in
// the selected format and renders one QR code per payload.
package pipeline

import (
	"fmt"
	"image"
	"log/slog"

	"travmd-form/collector"
	"travmd-form/document"
	"travmd-form/i18n"
	"travmd-form/models"
	"travmd-form/payload"
	"travmd-form/qr"
)

type Options struct {
	Format payload.Format
	QR     qr.Options
}

// Encoded is one payload with its rendered code.
type Encoded struct {
	Text  string
	Image image.Image
}

type Result struct {
	Format   payload.Format
	Personal models.PersonalRecord
	Medical  models.MedicalRecord

	PersonalCode Encoded
	MedicalCode  Encoded
}

// Generate encodes the current form. Nothing is kept between calls; a new call replaces
// both codes entirely.
func Generate(form collector.FormState, opts Options) (*Result, error) {
	if !opts.Format.Valid() {
		return nil, fmt.Errorf("%w: %q", payload.ErrUnknownFormat, opts.Format)
	}

	result := &Result{
		Format:   opts.Format,
		Personal: collector.CollectPersonal(form, opts.Format),
		Medical:  collector.CollectMedical(form, opts.Format),
	}

	var err error
	result.PersonalCode, err = encode(result.Personal, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode personal record: %w", err)
	}
	result.MedicalCode, err = encode(result.Medical, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode medical record: %w", err)
	}

	slog.Debug("Generated payloads",
		"format", opts.Format,
		"personal_len", len(result.PersonalCode.Text),
		"medical_len", len(result.MedicalCode.Text))
	return result, nil
}

func encode(record any, opts Options) (Encoded, error) {
	text, err := payload.Encode(record, opts.Format)
	if err != nil {
		return Encoded{}, err
	}
	img, err := qr.Render(text, opts.QR)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Text: text, Image: img}, nil
}

// BuildDocument renders the printable summary of form, including the QR codes of result
// when given.
func BuildDocument(form collector.FormState, result *Result, l i18n.Localizer) ([]byte, error) {
	var codes document.QRCodes
	if result != nil {
		codes = document.QRCodes{Personal: result.PersonalCode.Image, Medical: result.MedicalCode.Image}
	}
	return document.Render(collector.CollectSummary(form), codes, l)
}
