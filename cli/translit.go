package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"travmd-form/transliteration"
)

func newTranslitCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "translit TEXT",
		Short: "Show how TEXT is written into a payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := transliteration.ParseMode(mode)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), transliteration.Transliterate(args[0], m))
			return nil
		},
	}
	cmd.Flags().StringVar(&mode, "mode", transliteration.Marker.String(), "Transliteration mode (none, marker, plain)")
	return cmd
}
