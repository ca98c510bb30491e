package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"travmd-form/datemask"
)

func newMaskCmd() *cobra.Command {
	var progress bool
	cmd := &cobra.Command{
		Use:   "mask VALUE",
		Short: "Apply the DD.MM.YYYY date mask to VALUE",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			year := time.Now().Year()
			if progress {
				for _, step := range datemask.Progress(args[0]) {
					printMasked(cmd, step, datemask.Validate(step, year))
				}
				return
			}
			masked := datemask.Mask(args[0])
			printMasked(cmd, masked, datemask.Validate(masked, year))
		},
	}
	cmd.Flags().BoolVar(&progress, "progress", false, "Print the field after every typed character")
	return cmd
}

func printMasked(cmd *cobra.Command, value string, state datemask.State) {
	if state == datemask.StateNone {
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", value, state)
}
