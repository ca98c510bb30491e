package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"travmd-form/document"
	"travmd-form/i18n"
	"travmd-form/payload"
	"travmd-form/pipeline"
	"travmd-form/qr"
)

type documentOptions struct {
	form     string
	out      string
	lang     string
	format   string
	validate bool
}

func newDocumentCmd() *cobra.Command {
	o := &documentOptions{}
	cmd := &cobra.Command{
		Use:   "document",
		Short: "Render the printable summary of a saved form",
		RunE:  o.run,
	}
	cmd.Flags().StringVar(&o.form, "form", "", "Form snapshot (JSON or YAML)")
	cmd.Flags().StringVar(&o.out, "out", document.Filename, "Output PDF")
	cmd.Flags().StringVar(&o.lang, "lang", i18n.DefaultLanguage, "Label language")
	cmd.Flags().StringVar(&o.format, "format", string(payload.FormatJSON), "Payload format of the QR codes")
	cmd.Flags().BoolVar(&o.validate, "validate", false, "Validate the written PDF")
	_ = cmd.MarkFlagRequired("form")
	return cmd
}

func (o *documentOptions) run(cmd *cobra.Command, args []string) error {
	lang, err := i18n.Normalize(o.lang)
	if err != nil {
		return err
	}
	format, err := payload.ParseFormat(o.format)
	if err != nil {
		return err
	}
	snapshot, err := loadSnapshot(o.form)
	if err != nil {
		return err
	}

	result, err := pipeline.Generate(snapshot, pipeline.Options{Format: format, QR: qr.DefaultOptions()})
	if err != nil {
		return err
	}
	data, err := pipeline.BuildDocument(snapshot, result, i18n.Default().For(lang))
	if err != nil {
		return err
	}
	if err := os.WriteFile(o.out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", o.out, err)
	}

	if o.validate {
		pages, err := document.Validate(data)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: valid, %d pages\n", o.out, pages)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), o.out)
	return nil
}
