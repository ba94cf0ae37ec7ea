package main

import (
	"context"
	"fmt"
	"verifier/internal/config"

	"github.com/go-faster/jx"
	"github.com/spf13/cobra"
)

// checkCommand constructs the 'check' subcommand that verifies a single
// address from the terminal and prints the outcome as JSON. The process exit
// code stays zero for all three verdicts; only wiring failures abort.
func checkCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <email>",
		Short: "Verifies a single email address and prints the outcome",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			skipSMTP, _ := cmd.Flags().GetBool("skip-smtp")

			ctx := context.Background()
			outcome := buildVerifier(ctx, cfg).Verify(ctx, args[0], skipSMTP)

			var e jx.Encoder
			e.ObjStart()
			e.FieldStart("email")
			e.Str(args[0])
			e.FieldStart("status")
			e.Str(string(outcome.Status))
			e.FieldStart("reason")
			e.Str(outcome.Reason)
			e.ObjEnd()

			fmt.Printf("%s\n", e.Bytes()) //nolint: forbidigo
		},
	}

	cmd.Flags().Bool("skip-smtp", false, "Stop after confirming mail exchangers, do not contact them")

	return cmd
}
