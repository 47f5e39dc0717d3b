package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arbortabs/arbor/internal/export"
	"github.com/arbortabs/arbor/internal/registry"
	"github.com/arbortabs/arbor/internal/script"
)

// ScriptOptions holds options for the script command.
type ScriptOptions struct {
	Format  string
	Timeout time.Duration
}

// NewScriptCommand creates the script command.
func NewScriptCommand() *cobra.Command {
	opts := &ScriptOptions{}

	cmd := &cobra.Command{
		Use:   "script FILE",
		Short: "Run a JavaScript scenario against a tab strip",
		Long:  "Script executes a JavaScript file with a global `strip` object bound to an empty tab strip.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Dump the final strip in this format (text or json)")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", 30*time.Second, "Script execution timeout")

	return cmd
}

func runScript(cmd *cobra.Command, path string, opts *ScriptOptions) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read script file: %w", err)
	}

	scope := script.NewStripScope(registry.NewMemory())
	scope.Engine().SetConsoleHandler(func(level, message string) {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\n", level, message)
	})

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	if _, err := scope.Execute(ctx, string(src)); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	if opts.Format == "" {
		return nil
	}
	result, err := export.NewRegistry().Export(
		context.Background(), export.Format(opts.Format), scope.Collection())
	if err != nil {
		return fmt.Errorf("unknown format %q", opts.Format)
	}
	_, err = cmd.OutOrStdout().Write(result.Content)
	return err
}
