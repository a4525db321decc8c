// Package cli implements the perfreport command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfreport/pkg/artifacts"
	"github.com/matzehuels/perfreport/pkg/blob"
	"github.com/matzehuels/perfreport/pkg/buildinfo"
	"github.com/matzehuels/perfreport/pkg/config"
	"github.com/matzehuels/perfreport/pkg/errors"
	"github.com/matzehuels/perfreport/pkg/observability"
	"github.com/matzehuels/perfreport/pkg/render"
)

// =============================================================================
// Constants
// =============================================================================

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	dir        string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "perfreport",
		Short:        "Perfreport keeps Lighthouse results and reports for CI",
		Long:         `Perfreport saves Lighthouse audit results next to rendered HTML reports, keeps assertion results, and rewrites tested URLs into shareable report links.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./perfreport.toml)")
	root.PersistentFlags().StringVar(&c.dir, "dir", "", "artifact directory (overrides config)")

	// Register all subcommands
	root.AddCommand(c.saveCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.rewriteCommand())
	root.AddCommand(c.linksCommand())
	root.AddCommand(c.assertionsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Store Factory
// =============================================================================

// loadConfig resolves the configuration once per invocation and registers
// the logging hooks.
func (c *CLI) loadConfig() error {
	cfg, err := config.Resolve(c.configPath)
	if err != nil {
		return err
	}
	if c.dir != "" {
		if err := errors.ValidatePath(c.dir); err != nil {
			return err
		}
		cfg.Backend = config.BackendFile
		cfg.Dir = c.dir
	}
	c.cfg = cfg

	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "path", cfg.Source)
	}
	hooks := newLogHooks(c.Logger)
	observability.SetStoreHooks(hooks)
	observability.SetRewriteHooks(hooks)
	return nil
}

// config returns the resolved config, falling back to defaults when a
// command runs without the root pre-run (as in unit tests).
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// openStore builds the artifact store for the configured backend.
func (c *CLI) openStore(ctx context.Context) (*artifacts.Store, error) {
	cfg := c.config()
	backend, err := cfg.OpenBackend()
	if err != nil {
		return nil, err
	}
	renderer := render.NewHTMLRenderer(
		render.WithTitle(cfg.Report.Title),
		render.WithMaxAudits(cfg.Report.MaxAudits),
	)
	store := artifacts.New(backend,
		artifacts.WithRenderer(renderer),
		artifacts.WithLogger(c.Logger),
	)
	c.Logger.Debug("opened store", "backend", cfg.Backend, "location", backend.Location())
	return store, nil
}

// artifactPath returns the on-disk path of name when the store is file
// backed, or a location-qualified name otherwise.
func artifactPath(store *artifacts.Store, name string) string {
	if fb, ok := store.Backend().(*blob.FileBackend); ok {
		return filepath.Join(fb.Dir(), name)
	}
	return store.Backend().Location() + name
}
