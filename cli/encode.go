package cli

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/mdp/qrterminal/v3"
	"github.com/spf13/cobra"

	"travmd-form/images"
	"travmd-form/payload"
	"travmd-form/pipeline"
	"travmd-form/qr"
)

type encodeOptions struct {
	form     string
	format   string
	qrDir    string
	size     int
	terminal bool
}

func newEncodeCmd() *cobra.Command {
	o := &encodeOptions{}
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a saved form into the personal and medical payloads",
		RunE:  o.run,
	}
	cmd.Flags().StringVar(&o.form, "form", "", "Form snapshot (JSON or YAML)")
	cmd.Flags().StringVar(&o.format, "format", string(payload.FormatJSON), "Payload format (json, base64, w3fix)")
	cmd.Flags().StringVar(&o.qrDir, "qr-dir", "", "Write personal.png and medical.png to this directory")
	cmd.Flags().IntVar(&o.size, "size", qr.DefaultOptions().Size, "QR image size in pixels")
	cmd.Flags().BoolVar(&o.terminal, "terminal", false, "Draw both codes in the terminal")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func (o *encodeOptions) run(cmd *cobra.Command, args []string) error {
	format, err := payload.ParseFormat(o.format)
	if err != nil {
		return err
	}
	snapshot, err := loadSnapshot(o.form)
	if err != nil {
		return err
	}

	qrOpts := qr.DefaultOptions()
	qrOpts.Size = o.size
	result, err := pipeline.Generate(snapshot, pipeline.Options{Format: format, QR: qrOpts})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "personal: %s\n", result.PersonalCode.Text)
	fmt.Fprintf(out, "medical: %s\n", result.MedicalCode.Text)

	if o.terminal {
		fmt.Fprintln(out, "QR 1")
		qrterminal.GenerateHalfBlock(result.PersonalCode.Text, qrterminal.M, out)
		fmt.Fprintln(out, "QR 2")
		qrterminal.GenerateHalfBlock(result.MedicalCode.Text, qrterminal.M, out)
	}

	if o.qrDir == "" {
		return nil
	}
	if err := os.MkdirAll(o.qrDir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", o.qrDir, err)
	}
	for name, code := range map[string]pipeline.Encoded{"personal.png": result.PersonalCode, "medical.png": result.MedicalCode} {
		data, err := images.EncodePNG(code.Image, png.BestCompression)
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(o.qrDir, name), data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}
