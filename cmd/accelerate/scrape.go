package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/accelerate/internal/fetch"
	"github.com/jonathan/accelerate/internal/scraper"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape opportunities from configured sources",
}

var scrapeNotionCmd = &cobra.Command{
	Use:   "notion",
	Short: "Scrape the Notion accelerator directory",
	Long:  "Loads a directory source in a headless browser and lists the opportunity names found. Results are shown, not saved.",
	Args:  cobra.NoArgs,
	RunE:  runScrapeNotion,
}

var scrapeListSourcesCmd = &cobra.Command{
	Use:   "list-sources",
	Short: "List configured data sources",
	Args:  cobra.NoArgs,
	RunE:  runScrapeListSources,
}

var (
	scrapeInspect bool
	scrapeSource  string
)

// runScrape performs the scrape; tests replace it to stay off the network.
var runScrape = func(ctx context.Context, src scraper.Source) scraper.Result {
	s := scraper.New(
		scraper.WithNavigationTimeout(app.cfg.NavigationTimeout()),
		scraper.WithUserAgent(app.cfg.UserAgent),
		scraper.WithLogger(app.logger, app.cfg.Verbose),
	)
	return s.Scrape(ctx, src)
}

func init() {
	scrapeNotionCmd.Flags().BoolVarP(&scrapeInspect, "inspect", "i", false, "Open browser for manual inspection instead of scraping")
	scrapeNotionCmd.Flags().StringVar(&scrapeSource, "source", scraper.DefaultSource, "Source descriptor name or file name")

	scrapeCmd.AddCommand(scrapeNotionCmd, scrapeListSourcesCmd)
	rootCmd.AddCommand(scrapeCmd)
}

func runScrapeNotion(cmd *cobra.Command, _ []string) error {
	sources, err := scraper.LoadSources(app.cfg.SourcesDir)
	if err != nil && len(sources) == 0 {
		return fmt.Errorf("failed to load source configuration: %w", err)
	}
	if err != nil && app.cfg.Verbose {
		app.logger.Printf("[SCRAPER] skipped sources: %v", err)
	}

	src, err := scraper.FindSource(sources, scrapeSource)
	if err != nil {
		if errors.Is(err, scraper.ErrSourceNotFound) {
			return fmt.Errorf("failed to load source configuration: %w (looked in %s)", err, app.cfg.SourcesDir)
		}
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if scrapeInspect {
		app.printer.Success("Opening browser for inspection...")
		app.printer.Hint("Press Ctrl+C when done.")
		return fetch.Inspect(ctx, src.URL, app.cfg.Verbose)
	}

	app.printer.PrintScrapeStart(src)
	result := runScrape(ctx, *src)
	app.printer.PrintScrapeResult(result)

	if len(result.Errors) == 0 {
		if err := scraper.MarkScraped(src, result.ScrapedAt); err != nil {
			app.logger.Printf("[SCRAPER] could not record scrape time: %v", err)
		}
	}
	return nil
}

func runScrapeListSources(_ *cobra.Command, _ []string) error {
	sources, err := scraper.LoadSources(app.cfg.SourcesDir)
	if err != nil {
		app.printer.Warn("Some sources could not be read: %v", err)
	}
	app.printer.PrintSources(sources)
	return nil
}
