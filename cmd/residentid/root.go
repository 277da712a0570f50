package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"residentid/internal/residentid/domain"
)

// newRootCommand creates the `residentid <id>` command.
func newRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "residentid <id>",
		Short: "Validate a resident identifier",
		Long: `Validate an 18-character resident identifier and print the region code,
date of birth, sequence order and gender it encodes.

Exits with status 1 and the rejection reason when the identifier is invalid.`,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		Args:                  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := domain.Validate(args[0])
			if err != nil {
				kind, _ := domain.AsValidationError(err)
				return fmt.Errorf("%s: %w", kind.Code(), err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), info)
			return err
		},
	}
}
