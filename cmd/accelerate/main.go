// Package main implements the accelerate CLI for tracking accelerators, grants and angel offers.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jonathan/accelerate/internal/config"
	"github.com/jonathan/accelerate/internal/observability"
	"github.com/jonathan/accelerate/internal/prompt"
	"github.com/jonathan/accelerate/internal/store"
)

var rootCmd = &cobra.Command{
	Use:               "accelerate",
	Short:             "Startup funding pipeline tracker",
	Long:              "Automate discovery and applications to startup accelerators, grants, and angel networks.",
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

var (
	rootDataDir    string
	rootSourcesDir string
	rootConfigPath string
	rootVerbose    bool
	rootNoColor    bool
)

// env is what every command works with once flags and configuration are resolved.
type env struct {
	cfg     *config.Config
	store   *store.Store
	printer *observability.Printer
	logger  *log.Logger
}

var app *env

// newPrompter opens the interactive prompt used by the add and update commands.
var newPrompter = func() (*prompt.Prompter, error) {
	return prompt.New()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootDataDir, "data-dir", "", "Directory holding the collection documents (default ./data)")
	flags.StringVar(&rootSourcesDir, "sources-dir", "", "Directory holding scrape source descriptors (default ./sources)")
	flags.StringVar(&rootConfigPath, "config", "", "Path to a JSON config file (overrides ACCELERATE_CONFIG)")
	flags.BoolVarP(&rootVerbose, "verbose", "v", false, "Print detailed debug information")
	flags.BoolVar(&rootNoColor, "no-color", false, "Disable colored output")
}

// setup resolves configuration (flags over environment over config file over defaults)
// and builds the store and printer shared by every command.
func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(rootConfigPath)
	if err != nil {
		return err
	}

	if rootDataDir != "" {
		cfg.DataDir = rootDataDir
	}
	if rootSourcesDir != "" {
		cfg.SourcesDir = rootSourcesDir
	}
	if rootVerbose {
		cfg.Verbose = true
	}
	if rootNoColor {
		cfg.NoColor = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.NoColor {
		color.NoColor = true
	}

	logger := log.New(cmd.ErrOrStderr(), "", log.LstdFlags)
	app = &env{
		cfg:     cfg,
		store:   store.New(cfg.DataDir, store.WithLogger(logger, cfg.Verbose)),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		logger:  logger,
	}
	if cfg.Verbose {
		logger.Printf("[CONFIG] data_dir=%s sources_dir=%s browser_timeout=%s", cfg.DataDir, cfg.SourcesDir, cfg.BrowserTimeout)
	}
	return nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
