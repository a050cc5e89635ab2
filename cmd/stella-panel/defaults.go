package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/tbourn/stella-panel/internal/domain"
)

// newDefaultsCommand prints the record a fresh process (or a reset) starts from.
func newDefaultsCommand() *cobra.Command {
	var compact bool
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the default settings as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			if !compact {
				enc.SetIndent("", "  ")
			}
			return enc.Encode(domain.DefaultSettings())
		},
	}
	cmd.Flags().BoolVar(&compact, "compact", false, "print on a single line")
	return cmd
}
