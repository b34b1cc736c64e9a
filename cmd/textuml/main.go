package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/shahar-caura/textuml/internal/config"
	"github.com/shahar-caura/textuml/internal/logging"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const defaultConfigPath = "textuml.yaml"

// skipSetup marks commands that must run without loading textuml.yaml.
const skipSetup = "skip-setup"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	root, c := newRootCmd(logger)
	if err := c.execute(root); err != nil {
		logger.Error("textuml failed", "error", err)
		os.Exit(1)
	}
}

// cli carries the state resolved by the root command before any
// subcommand runs.
type cli struct {
	configPath string
	logLevel   string

	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error
}

func newRootCmd(logger *slog.Logger) (*cobra.Command, *cli) {
	c := &cli{cfg: config.Default(), logger: logger, closeLog: func() error { return nil }}

	root := &cobra.Command{
		Use:           "textuml",
		Short:         "Turn plain-English domain descriptions into class diagrams",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipSetup] == "true" {
				return nil
			}
			return c.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+defaultConfigPath+" when present)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override log.level (debug, info, warn, error)")

	root.AddCommand(
		newServeCmd(c),
		newGenerateCmd(c),
		newWatchCmd(c),
		newExamplesCmd(),
		newInitCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)
	return root, c
}

// execute runs root and closes the log file afterwards, including when the
// command fails.
func (c *cli) execute(root *cobra.Command) (err error) {
	defer func() {
		err = errors.Join(err, c.closeLog())
	}()
	return root.Execute()
}

// setup loads env files and config, then rebuilds the logger from it.
func (c *cli) setup(stderr io.Writer) error {
	if loaded := config.LoadEnvFiles("."); len(loaded) > 0 {
		c.logger.Debug("loaded env files", "files", loaded)
	}

	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		cfg.Log.Level = c.logLevel
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}

	logger, closeLog, err := logging.New(cfg.Log, stderr)
	if err != nil {
		return err
	}
	c.cfg, c.logger, c.closeLog = cfg, logger, closeLog
	return nil
}

// loadConfig reads path, or ./textuml.yaml when path is empty. A missing
// default file yields the built-in defaults; a missing explicit file is an error.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	cfg, err := config.Load(defaultConfigPath)
	if errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return cfg, err
}
