package app

import (
	"os"
	"path/filepath"

	"github.com/arbortabs/arbor/internal/export"
	"github.com/arbortabs/arbor/internal/registry"
	"github.com/arbortabs/arbor/internal/tabs"
)

// Config holds application configuration.
type Config struct {
	DataDir string // where the node registry database lives
	Persist bool   // keep node records in the registry store
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir: filepath.Join(home, ".arbor"),
		Persist: false,
	}
}

// App wires the tab strip together: the delegate over an empty
// collection, the in-memory node registry the TUI reads, an optional
// persistent registry store, and the exporters.
type App struct {
	config   Config
	memory   *registry.Memory
	store    registry.Store
	delegate *tabs.Delegate
	exports  *export.Registry
}

// Option is a function that configures the App.
type Option func(*App)

// New creates a new App with the given options.
func New(opts ...Option) *App {
	app := &App{
		config:  DefaultConfig(),
		memory:  registry.NewMemory(),
		exports: export.NewRegistry(),
	}

	for _, opt := range opts {
		opt(app)
	}

	reg := tabs.TreeRegistry(app.memory)
	if app.store != nil {
		reg = tabs.MultiRegistry(app.memory, registry.NewPersistent(app.store))
	}
	app.delegate = tabs.NewDelegate(tabs.NewCollection(), reg)

	return app
}

// WithConfig sets the application configuration.
func WithConfig(cfg Config) Option {
	return func(a *App) {
		a.config = cfg
	}
}

// WithStore attaches a persistent registry store.
func WithStore(store registry.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

// Config returns the application configuration.
func (a *App) Config() Config {
	return a.config
}

// Delegate returns the tree delegate.
func (a *App) Delegate() *tabs.Delegate {
	return a.delegate
}

// Collection returns the tab collection.
func (a *App) Collection() *tabs.Collection {
	return a.delegate.Collection()
}

// Registry returns the in-memory node registry.
func (a *App) Registry() *registry.Memory {
	return a.memory
}

// Exports returns the exporter registry.
func (a *App) Exports() *export.Registry {
	return a.exports
}

// Close flattens the tab trees and releases the registry store.
func (a *App) Close() error {
	a.delegate.Close()
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
