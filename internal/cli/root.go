package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arbortabs/arbor/internal/app"
	"github.com/arbortabs/arbor/internal/registry/sqlite"
	"github.com/arbortabs/arbor/internal/tui"
	"github.com/arbortabs/arbor/internal/tui/components"
)

// RootOptions holds options for the root command.
type RootOptions struct {
	DataDir string
	Persist bool
}

// NewRootCommand creates the root command.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "arbor",
		Short:   "Arbor - a tree-style tab strip",
		Long:    "Arbor is a TUI tab strip that keeps a flat tab order and a tab tree in sync.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	defaults := app.DefaultConfig()
	cmd.Flags().StringVar(&opts.DataDir, "data-dir", defaults.DataDir, "Directory for the node registry database")
	cmd.Flags().BoolVar(&opts.Persist, "persist", false, "Persist node records to the registry database")

	cmd.AddCommand(NewReplayCommand())
	cmd.AddCommand(NewScriptCommand())

	return cmd
}

// runTUI starts the TUI application.
func runTUI(opts *RootOptions) error {
	appOpts := []app.Option{
		app.WithConfig(app.Config{DataDir: opts.DataDir, Persist: opts.Persist}),
	}

	if opts.Persist {
		if err := os.MkdirAll(opts.DataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		store, err := sqlite.New(filepath.Join(opts.DataDir, "registry.db"))
		if err != nil {
			return fmt.Errorf("failed to open registry store: %w", err)
		}
		appOpts = append(appOpts, app.WithStore(store))
	}

	application := app.New(appOpts...)
	defer application.Close()

	strip := components.NewTabStrip(application.Delegate(), application.Registry())
	return tui.Run(strip)
}
