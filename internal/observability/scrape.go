package observability

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonathan/accelerate/internal/scraper"
	"github.com/jonathan/accelerate/internal/store"
)

// PrintScrapeStart announces which source is about to be scraped.
func (p *Printer) PrintScrapeStart(src *scraper.Source) {
	p.println(cyan("Scraping: " + src.Name))
	p.println(dim("URL: " + src.URL))
}

// PrintScrapeResult outputs the errors and the first names found by a scrape.
func (p *Printer) PrintScrapeResult(result scraper.Result) {
	if len(result.Errors) > 0 {
		p.println(red("\nErrors:"))
		for _, e := range result.Errors {
			p.println(red("  - " + e))
		}
	}

	if len(result.Opportunities) == 0 {
		p.println(yellow("\nNo opportunities found."))
		p.println(dim("The scraper may need to be customized for this page structure."))
		p.println(dim("Try: accelerate scrape notion --inspect"))
		return
	}

	p.println(green(fmt.Sprintf("\nFound %d opportunities:", len(result.Opportunities))))
	for i, o := range result.Opportunities {
		if i >= maxItemsToShow {
			p.println(dim(fmt.Sprintf("  ... and %d more", len(result.Opportunities)-maxItemsToShow)))
			break
		}
		p.printf("  - %s\n", o.Name)
	}
}

// PrintSources outputs the configured scrape sources as a table.
func (p *Printer) PrintSources(sources []scraper.Source) {
	if len(sources) == 0 {
		p.println(yellow("No sources configured yet."))
		return
	}

	p.println(bold("\nConfigured Sources:\n"))

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"Name", "Type", "Source", "URL", "Last scraped"})
	for i := range sources {
		src := &sources[i]
		lastScraped := "Never"
		if at := src.LastScrapedAt(); at != nil {
			lastScraped = at.Local().Format("2006-01-02 15:04")
		}
		t.AppendRow(table.Row{cyan(src.Name), src.Type, src.Source, src.URL, lastScraped})
	}
	t.Render()
}

// PrintCheck outputs the load status of every collection document.
func (p *Printer) PrintCheck(reports []store.LoadReport) {
	p.println(bold("\nCollection documents:\n"))

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"Document", "Status", "Detail"})
	for _, r := range reports {
		status := r.Status.String()
		detail := ""
		switch r.Status {
		case store.LoadOK:
			status = green(status)
		case store.LoadMissing:
			status = dim(status)
			detail = "read as empty"
		case store.LoadInvalid:
			status = red(status)
			if r.Err != nil {
				detail = r.Err.Error()
			}
		}
		t.AppendRow(table.Row{r.Path, status, detail})
	}
	t.Render()
}
