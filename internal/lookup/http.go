package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pders01/pickr/internal/combobox"
	"github.com/pders01/pickr/internal/debuglog"
	"github.com/pders01/pickr/internal/validation"
)

const (
	defaultUserAgent   = "pickr/1.0 (https://github.com/pders01/pickr)"
	defaultHTTPTimeout = 10 * time.Second
	maxResponseBytes   = 1 << 20
)

// HTTPOptions configures an HTTP source. Zero values pick sensible
// defaults; a Rate <= 0 disables client-side limiting.
type HTTPOptions struct {
	Timeout   time.Duration
	Rate      float64
	Limit     int
	UserAgent string
	Validator *validation.URLValidator
	Client    *http.Client
}

// HTTP queries a remote lookup service with GET <endpoint>?q=<query> and
// expects a JSON array of {"value", "label"} objects back.
type HTTP struct {
	endpoint  *url.URL
	client    *http.Client
	limiter   *rate.Limiter
	limit     int
	userAgent string
}

func NewHTTP(endpoint string, opts HTTPOptions) (*HTTP, error) {
	v := opts.Validator
	if v == nil {
		v = validation.NewURLValidator()
	}
	normalized, err := v.ValidateAndNormalize(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid lookup endpoint: %w", err)
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid lookup endpoint: %w", err)
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.Rate), 1)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	return &HTTP{
		endpoint:  u,
		client:    client,
		limiter:   limiter,
		limit:     opts.Limit,
		userAgent: ua,
	}, nil
}

// Endpoint returns the normalized service URL.
func (h *HTTP) Endpoint() string { return h.endpoint.String() }

func (h *HTTP) requestURL(query string) string {
	u := *h.endpoint
	q := u.Query()
	q.Set("q", query)
	if h.limit > 0 {
		q.Set("limit", strconv.Itoa(h.limit))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (h *HTTP) Lookup(ctx context.Context, query string) ([]combobox.Option, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.requestURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		debuglog.Warnf("Lookup %q returned HTTP %d", query, resp.StatusCode)
		return nil, fmt.Errorf("lookup service returned HTTP %d", resp.StatusCode)
	}

	var raw []combobox.Option
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding lookup response: %w", err)
	}

	out := make([]combobox.Option, 0, len(raw))
	for _, o := range raw {
		o.Value = strings.TrimSpace(o.Value)
		if o.Value == "" {
			continue
		}
		if strings.TrimSpace(o.Label) == "" {
			o.Label = o.Value
		}
		out = append(out, o)
	}
	return out, nil
}

func (h *HTTP) Close() error {
	h.client.CloseIdleConnections()
	return nil
}
