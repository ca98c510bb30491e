package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"travmd-form/payload"
	"travmd-form/qr"
	"travmd-form/transliteration"
)

type decodeOptions struct {
	image   string
	format  string
	restore bool
}

func newDecodeCmd() *cobra.Command {
	o := &decodeOptions{}
	cmd := &cobra.Command{
		Use:   "decode",
		Short: "Scan a QR code PNG and print its text",
		RunE:  o.run,
	}
	cmd.Flags().StringVar(&o.image, "image", "", "QR code PNG")
	cmd.Flags().StringVar(&o.format, "format", "", "Unwrap a payload of this format to its JSON record")
	cmd.Flags().BoolVar(&o.restore, "restore", false, "Turn {ae} style markers back into umlauts")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func (o *decodeOptions) run(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(o.image)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	text, err := qr.DecodePNG(data)
	if err != nil {
		return err
	}

	if o.format != "" {
		format, err := payload.ParseFormat(o.format)
		if err != nil {
			return err
		}
		var record json.RawMessage
		if err := payload.Decode(text, format, &record); err != nil {
			return err
		}
		text = string(record)
	}
	if o.restore {
		text = transliteration.Restore(text)
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
