package scraper

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// BrowserFetcher fetches pages through a headless Chromium instance so
// that JavaScript-rendered prices are present in the document tree.
// Use it for sites where the plain HTTP fetcher comes back empty.
type BrowserFetcher struct {
	browser *rod.Browser
}

// NewBrowserFetcher launches a headless browser. Uses system Chromium
// when available (Docker), auto-detects otherwise.
func NewBrowserFetcher() (*BrowserFetcher, error) {
	l := launcher.New().
		Headless(true).
		NoSandbox(true).
		Leakless(false)

	if _, err := os.Stat("/usr/bin/chromium-browser"); err == nil {
		l = l.Bin("/usr/bin/chromium-browser")
		log.Printf("Using system Chromium")
	}

	var browser *rod.Browser
	err := rod.Try(func() {
		controlURL := l.MustLaunch()
		browser = rod.New().ControlURL(controlURL).MustConnect()
	})
	if err != nil {
		return nil, &FetchError{Kind: FailureOther, Err: err}
	}

	return &BrowserFetcher{browser: browser}, nil
}

// Fetch renders the page and parses the resulting DOM.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	var html string

	err := rod.Try(func() {
		page := f.browser.MustPage(url).Context(ctx)
		defer page.MustClose()

		page.MustSetViewport(1920, 1080, 1.0, false)
		page.MustEvalOnNewDocument(`
			Object.defineProperty(navigator, 'webdriver', {
				get: () => undefined,
			});
			Object.defineProperty(navigator, 'languages', {
				get: () => ['en-IN', 'en'],
			});
		`)
		page.MustWaitLoad()
		page.MustWaitStable()
		time.Sleep(2 * time.Second)

		html = page.MustHTML()
	})
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, &FetchError{Kind: FailureTimeout, URL: url, Err: err}
		}
		return nil, &FetchError{Kind: FailureOther, URL: url, Err: err}
	}

	return ParseDocument(strings.NewReader(html))
}

// Close shuts the browser down.
func (f *BrowserFetcher) Close() {
	if f.browser != nil {
		f.browser.MustClose()
	}
}
