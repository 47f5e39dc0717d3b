package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arbortabs/arbor/internal/export"
	"github.com/arbortabs/arbor/internal/registry"
	"github.com/arbortabs/arbor/internal/scenario"
)

// ReplayOptions holds options for the replay command.
type ReplayOptions struct {
	Format string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand() *cobra.Command {
	opts := &ReplayOptions{}

	cmd := &cobra.Command{
		Use:   "replay FILE",
		Short: "Replay a YAML scenario and print the resulting tab tree",
		Long:  "Replay runs a YAML scenario of tab events against an empty strip and prints the final state.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format (text or json)")

	return cmd
}

func runReplay(cmd *cobra.Command, path string, opts *ReplayOptions) error {
	sc, err := scenario.Load(path)
	if err != nil {
		return err
	}

	runner := scenario.NewRunner(registry.NewMemory())
	if err := runner.Run(sc); err != nil {
		return fmt.Errorf("replay failed: %w", err)
	}

	result, err := export.NewRegistry().Export(
		context.Background(), export.Format(opts.Format), runner.Collection())
	if err != nil {
		return fmt.Errorf("unknown format %q", opts.Format)
	}

	_, err = cmd.OutOrStdout().Write(result.Content)
	return err
}
