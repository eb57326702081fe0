package scraper

import (
	"context"
	"fmt"
	"html"
	"io"
	"log"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jonathan/accelerate/internal/fetch"
	"github.com/jonathan/accelerate/internal/types"
)

// Result is the outcome of one scrape. Opportunities hold only the fields a
// directory row provides; they are not written to the store.
type Result struct {
	Opportunities []types.Opportunity `json:"opportunities"`
	Errors        []string            `json:"errors"`
	ScrapedAt     time.Time           `json:"scrapedAt"`
}

// RenderFunc loads a page through a browser and returns its HTML.
type RenderFunc func(ctx context.Context, url string, opts fetch.RenderOptions) (string, error)

// FetchFunc loads a page without running scripts.
type FetchFunc func(ctx context.Context, url string, opts *fetch.Options) (*fetch.Result, error)

// Scraper reads directory pages into partial opportunities.
type Scraper struct {
	render    RenderFunc
	fetch     FetchFunc
	nav       time.Duration
	userAgent string
	verbose   bool
	now       func() time.Time
	logger    *log.Logger
	policy    *bluemonday.Policy
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithRenderer replaces the browser used for JavaScript-rendered sources.
func WithRenderer(render RenderFunc) Option {
	return func(s *Scraper) { s.render = render }
}

// WithFetcher replaces the HTTP fetcher used for static sources.
func WithFetcher(f FetchFunc) Option {
	return func(s *Scraper) { s.fetch = f }
}

// WithNavigationTimeout bounds page loads.
func WithNavigationTimeout(d time.Duration) Option {
	return func(s *Scraper) { s.nav = d }
}

// WithUserAgent sets the user agent for static fetches.
func WithUserAgent(ua string) Option {
	return func(s *Scraper) { s.userAgent = ua }
}

// WithClock sets the time source for ScrapedAt and record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scraper) { s.now = now }
}

// WithLogger sets where progress is logged when verbose is true.
func WithLogger(logger *log.Logger, verbose bool) Option {
	return func(s *Scraper) {
		s.logger = logger
		s.verbose = verbose
	}
}

// New creates a Scraper backed by chromedp and colly.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		render:    fetch.Render,
		fetch:     fetch.URL,
		nav:       fetch.DefaultNavigationTimeout,
		userAgent: fetch.DefaultUserAgent,
		now:       types.Now,
		logger:    log.New(io.Discard, "", 0),
		policy:    bluemonday.StrictPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scrape loads the source page and returns one partial opportunity per
// directory row. Failures are reported in Result.Errors, never returned.
func (s *Scraper) Scrape(ctx context.Context, src Source) Result {
	result := Result{
		Opportunities: []types.Opportunity{},
		Errors:        []string{},
		ScrapedAt:     s.now(),
	}

	selectors := fetch.PlatformSelectors(fetch.PlatformFromType(src.Type, src.URL))

	page, err := s.load(ctx, src, selectors)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to scrape %s: %v", src.URL, err))
		return result
	}

	rows, err := fetch.ExtractRows(page, selectors.Row, selectors.Cell)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to scrape %s: %v", src.URL, err))
		return result
	}
	s.logf("[SCRAPER] %s: %d rows", src.Name, len(rows))

	for _, cells := range rows {
		if len(cells) == 0 {
			continue
		}
		name := s.clean(cells[0])
		if name == "" {
			continue
		}
		result.Opportunities = append(result.Opportunities, types.Opportunity{
			Name:      name,
			Source:    src.Source,
			SourceURL: src.URL,
			CreatedAt: result.ScrapedAt,
		})
	}
	return result
}

func (s *Scraper) load(ctx context.Context, src Source, selectors fetch.Selectors) (string, error) {
	if src.RequiresJSRendering {
		s.logf("[SCRAPER] rendering %s", src.URL)
		return s.render(ctx, src.URL, fetch.RenderOptions{
			NavigationTimeout: s.nav,
			WaitSelector:      selectors.Ready,
			WaitTimeout:       fetch.DefaultWaitTimeout,
			Verbose:           s.verbose,
		})
	}

	s.logf("[SCRAPER] fetching %s", src.URL)
	opts := fetch.DefaultOptions()
	opts.Timeout = s.nav
	if s.userAgent != "" {
		opts.UserAgent = s.userAgent
	}
	res, err := s.fetch(ctx, src.URL, opts)
	if err != nil {
		return "", err
	}
	return res.HTML, nil
}

// clean strips any markup left in cell text and decodes entities for display.
func (s *Scraper) clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func (s *Scraper) logf(format string, args ...interface{}) {
	if s.verbose {
		s.logger.Printf(format, args...)
	}
}
