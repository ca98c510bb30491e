// Package cli is the command line front end of the form encoder: it encodes saved form
// snapshots, scans QR images back and renders the summary document.
package cli

import (
	"github.com/spf13/cobra"

	"travmd-form/logging"
)

func NewRootCmd(version, buildDate string) *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:           "travmd-encode",
		Short:         "Travel medicine form encoder",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Configure(logging.Options{Level: logLevel, Output: cmd.ErrOrStderr()})
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")

	root.AddCommand(newVersionCmd(version, buildDate))
	root.AddCommand(newEncodeCmd())
	root.AddCommand(newDecodeCmd())
	root.AddCommand(newDocumentCmd())
	root.AddCommand(newMaskCmd())
	root.AddCommand(newTranslitCmd())
	return root
}
