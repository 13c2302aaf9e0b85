package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"

	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/debuglog"
	"github.com/pders01/pickr/internal/validation"
)

const (
	defaultUserAgent     = "pickr/1.0 (https://github.com/pders01/pickr)"
	defaultFeedTimeout   = 30 * time.Second
	maxConcurrentImports = 4
)

// ImporterOptions configures a FeedImporter.
type ImporterOptions struct {
	Timeout   time.Duration
	UserAgent string
	Validator *validation.URLValidator
	Client    *http.Client
}

// FeedImporter turns the entries of RSS and Atom feeds into options: the
// entry title becomes the label and its slug the value.
type FeedImporter struct {
	client    *http.Client
	userAgent string
	validator *validation.URLValidator
}

func NewFeedImporter(opts ImporterOptions) *FeedImporter {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultFeedTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	v := opts.Validator
	if v == nil {
		v = validation.NewURLValidator()
	}
	return &FeedImporter{client: client, userAgent: ua, validator: v}
}

// Import fetches one feed and converts its entries.
func (f *FeedImporter) Import(ctx context.Context, rawURL string) ([]combobox.Option, error) {
	feedURL, err := f.validator.ValidateAndNormalize(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid feed URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	parsed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	options := make([]combobox.Option, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		title := strings.Join(strings.Fields(item.Title), " ")
		if title == "" {
			continue
		}
		options = append(options, combobox.Option{Value: combobox.Slugify(title), Label: title})
	}
	debuglog.Infof("Imported %d options from %s", len(options), feedURL)
	return Normalize(options), nil
}

// ImportAll fetches feeds concurrently. A failing feed does not stop the
// others; its error is joined into the returned error alongside whatever
// the remaining feeds produced, merged in argument order without
// duplicate values.
func (f *FeedImporter) ImportAll(ctx context.Context, urls []string) ([]combobox.Option, error) {
	results := make([][]combobox.Option, len(urls))
	errs := make([]error, len(urls))

	var g errgroup.Group
	g.SetLimit(maxConcurrentImports)
	for i, u := range urls {
		g.Go(func() error {
			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return nil
			}
			opts, err := f.Import(ctx, u)
			if err != nil {
				debuglog.Warnf("Feed import failed for %s: %v", u, err)
				errs[i] = fmt.Errorf("%s: %w", u, err)
				return nil
			}
			results[i] = opts
			return nil
		})
	}
	_ = g.Wait()

	var merged []combobox.Option
	for _, r := range results {
		merged = append(merged, r...)
	}
	return Normalize(merged), errors.Join(errs...)
}
