package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that every declared artifact exists and is non-empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manifestPath, err := cmd.Flags().GetString("manifest")
			if err != nil {
				return err
			}

			reports, verifyErr := c.app.Verify(cmd.Context(), manifestPath)
			for _, report := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", report.Status, report.Triple.String())
			}
			return verifyErr
		},
	}
}
