// Package fetch retrieves directory pages and pulls table-like rows out of them.
// Static pages go through colly; JavaScript-rendered pages go through a headless browser.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; Accelerate/1.0)"

// DefaultMaxBodySize caps how much of a response is read.
const DefaultMaxBodySize = 10 * 1024 * 1024

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string
	HTML        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching or rendering.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int
	Headers     map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
	}
}

// URL retrieves HTML content from a URL without running any JavaScript.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	if err := validateURL(urlStr); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(opts.UserAgent),
		colly.MaxBodySize(opts.MaxBodySize),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	if opts.Timeout > 0 {
		c.SetRequestTimeout(opts.Timeout)
	}

	c.OnRequest(func(r *colly.Request) {
		for key, value := range opts.Headers {
			r.Headers.Set(key, value)
		}
	})

	var result *Result
	record := func(r *colly.Response) {
		result = &Result{
			URL:         urlStr,
			HTML:        string(r.Body),
			ContentType: r.Headers.Get("Content-Type"),
			StatusCode:  r.StatusCode,
		}
	}
	c.OnResponse(record)

	var requestErr error
	c.OnError(func(r *colly.Response, err error) {
		requestErr = err
		if r != nil && r.StatusCode != 0 {
			record(r)
		}
	})

	visitErr := c.Visit(urlStr)

	// Check for non-success status
	if result != nil && result.StatusCode != http.StatusOK {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", result.StatusCode),
		}
	}

	if requestErr == nil {
		requestErr = visitErr
	}
	if requestErr != nil || result == nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   requestErr,
		}
	}

	return result, nil
}

func validateURL(urlStr string) error {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}
	return nil
}

// ExtractRows parses HTML and returns the text of every cell of every row.
// Rows are matched with rowSelector and cells within a row with cellSelector.
// A row without cells is returned as an empty slice so callers can count it.
func ExtractRows(html, rowSelector, cellSelector string) ([][]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	rows := [][]string{}
	doc.Find(rowSelector).Each(func(_ int, row *goquery.Selection) {
		cells := []string{}
		row.Find(cellSelector).Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, cleanWhitespace(cell.Text()))
		})
		rows = append(rows, cells)
	})
	return rows, nil
}

// PageTitle returns the document title, or an empty string when there is none.
func PageTitle(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return cleanWhitespace(doc.Find("title").First().Text())
}

// cleanWhitespace collapses runs of whitespace into single spaces.
func cleanWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
