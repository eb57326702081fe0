// Package fetch - browser.go provides headless browser rendering for JavaScript-built pages.
package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/chromedp/chromedp"
)

// Browser timing bounds used when RenderOptions leaves them unset.
const (
	DefaultNavigationTimeout = 30 * time.Second
	DefaultWaitTimeout       = 10 * time.Second
	DefaultCaptureTimeout    = 10 * time.Second
)

// RenderOptions configures a browser render.
type RenderOptions struct {
	// NavigationTimeout bounds loading the page.
	NavigationTimeout time.Duration
	// WaitSelector, when set, must match an element before the HTML is captured.
	WaitSelector string
	// WaitTimeout bounds the wait for WaitSelector.
	WaitTimeout time.Duration
	// CaptureTimeout bounds reading the rendered HTML.
	CaptureTimeout time.Duration
	Verbose        bool
}

func (o RenderOptions) withDefaults() RenderOptions {
	if o.NavigationTimeout <= 0 {
		o.NavigationTimeout = DefaultNavigationTimeout
	}
	if o.WaitTimeout <= 0 {
		o.WaitTimeout = DefaultWaitTimeout
	}
	if o.CaptureTimeout <= 0 {
		o.CaptureTimeout = DefaultCaptureTimeout
	}
	return o
}

func allocatorOptions(headless bool) []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
}

// Render loads a page in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func Render(ctx context.Context, url string, opts RenderOptions) (string, error) {
	if err := validateURL(url); err != nil {
		return "", err
	}
	opts = opts.withDefaults()

	if opts.Verbose {
		log.Printf("[BROWSER] Starting headless browser for: %s", url)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocatorOptions(true)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	// Start the browser outside the timed contexts so their expiry does not close it.
	if err := chromedp.Run(browserCtx); err != nil {
		return "", &Error{URL: url, Message: "failed to start browser", Cause: err}
	}

	navCtx, cancelNav := context.WithTimeout(browserCtx, opts.NavigationTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx, chromedp.Navigate(url), chromedp.WaitReady("body", chromedp.ByQuery)); err != nil {
		return "", &Error{URL: url, Message: fmt.Sprintf("navigation did not finish within %s", opts.NavigationTimeout), Cause: err}
	}

	if opts.WaitSelector != "" {
		waitCtx, cancelWait := context.WithTimeout(browserCtx, opts.WaitTimeout)
		defer cancelWait()
		if err := chromedp.Run(waitCtx, chromedp.WaitReady(opts.WaitSelector, chromedp.ByQuery)); err != nil {
			return "", &Error{URL: url, Message: fmt.Sprintf("%q did not appear within %s", opts.WaitSelector, opts.WaitTimeout), Cause: err}
		}
	}

	captureCtx, cancelCapture := context.WithTimeout(browserCtx, opts.CaptureTimeout)
	defer cancelCapture()
	var html string
	if err := chromedp.Run(captureCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", &Error{URL: url, Message: fmt.Sprintf("failed to read rendered HTML within %s", opts.CaptureTimeout), Cause: err}
	}

	if opts.Verbose {
		log.Printf("[BROWSER] Rendered HTML: %d bytes", len(html))
	}

	return html, nil
}

// Inspect opens a visible browser window on url and keeps it open until ctx is done.
// It returns nil when ctx ends, so an interrupt is a normal way to finish.
func Inspect(ctx context.Context, url string, verbose bool) error {
	if err := validateURL(url); err != nil {
		return err
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocatorOptions(false)...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	if err := chromedp.Run(browserCtx, chromedp.Navigate(url)); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return &Error{URL: url, Message: "failed to open page for inspection", Cause: err}
	}

	if verbose {
		log.Printf("[BROWSER] Inspection window open for: %s", url)
	}

	<-ctx.Done()
	return nil
}
