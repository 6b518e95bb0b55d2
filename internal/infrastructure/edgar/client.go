// Package edgar provides a thin read-only client for the SEC submissions
// index.  It exists for display alongside computed deadlines; deadline
// computation never depends on it.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/turtacn/SPAC-Sentinel/internal/config"
	"github.com/turtacn/SPAC-Sentinel/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/SPAC-Sentinel/pkg/errors"
)

// Filing is one row of an entity's recent-filings index.
type Filing struct {
	Form            string `json:"form"`
	AccessionNumber string `json:"accession_number"`
	FilingDate      string `json:"filing_date"`
	ReportDate      string `json:"report_date,omitempty"`
	PrimaryDocument string `json:"primary_document,omitempty"`
}

// httpDoer abstracts http.Client for testing.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches submission indexes.  The index rejects anonymous clients
// and throttles aggressive ones, so every request carries the configured
// User-Agent and passes through a client-side rate limiter.
type Client struct {
	httpClient   httpDoer
	baseURL      string
	userAgent    string
	maxRetries   int
	retryBackoff time.Duration
	limiter      *rate.Limiter
	logger       logging.Logger
}

// NewClient constructs a submissions-index client from configuration.
func NewClient(cfg config.EdgarConfig, log logging.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.NewValidationOp("edgar.client", "base url is required")
	}
	if cfg.UserAgent == "" {
		return nil, errors.NewValidationOp("edgar.client", "user agent is required")
	}
	if log == nil {
		log = logging.NewNopLogger()
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	backoff := cfg.RetryBackoff
	if backoff == 0 {
		backoff = 500 * time.Millisecond
	}

	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		userAgent:    cfg.UserAgent,
		maxRetries:   cfg.MaxRetries,
		retryBackoff: backoff,
		// The index allows 10 requests per second per client.
		limiter: rate.NewLimiter(rate.Limit(10), 10),
		logger:  log,
	}, nil
}

// submissionsResponse mirrors the column-oriented JSON layout of the index.
type submissionsResponse struct {
	Filings struct {
		Recent struct {
			Form            []string `json:"form"`
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			ReportDate      []string `json:"reportDate"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// RecentFilings returns the recent filings index for one CIK, newest first.
func (c *Client) RecentFilings(ctx context.Context, cik string) ([]Filing, error) {
	cik = strings.TrimSpace(cik)
	if cik == "" {
		return nil, errors.NewValidationOp("edgar.filings", "cik is required")
	}

	url := fmt.Sprintf("%s/submissions/CIK%010s.json", c.baseURL, cik)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var resp submissionsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeDataSourceParseError, "failed to parse submissions index")
	}

	recent := resp.Filings.Recent
	filings := make([]Filing, 0, len(recent.Form))
	for i := range recent.Form {
		f := Filing{Form: recent.Form[i]}
		if i < len(recent.AccessionNumber) {
			f.AccessionNumber = recent.AccessionNumber[i]
		}
		if i < len(recent.FilingDate) {
			f.FilingDate = recent.FilingDate[i]
		}
		if i < len(recent.ReportDate) {
			f.ReportDate = recent.ReportDate[i]
		}
		if i < len(recent.PrimaryDocument) {
			f.PrimaryDocument = recent.PrimaryDocument[i]
		}
		filings = append(filings, f)
	}
	return filings, nil
}

// get performs a rate-limited GET with retry on 5xx and 429 responses.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, errors.Wrap(ctx.Err(), errors.ErrCodeTimeout, "request cancelled")
			case <-time.After(c.retryBackoff * time.Duration(attempt)):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeTimeout, "request cancelled")
		}

		body, retryable, err := c.doOnce(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
		c.logger.Warn("filings index request failed, retrying",
			logging.String("url", url),
			logging.Int("attempt", attempt+1),
			logging.Err(err),
		)
	}
	return nil, lastErr
}

func (c *Client) doOnce(ctx context.Context, url string) (body []byte, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrCodeInternal, "failed to build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, errors.Wrap(err, errors.ErrCodeDataSourceUnavailable, "filings index unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, true, errors.Wrap(err, errors.ErrCodeDataSourceUnavailable, "failed to read response body")
		}
		return data, false, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, true, errors.New(errors.ErrCodeDataSourceRateLimited,
			"filings index rate limited")
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("no submissions index for %s", url))
	case resp.StatusCode >= 500:
		return nil, true, errors.New(errors.ErrCodeDataSourceUnavailable,
			fmt.Sprintf("filings index returned %d", resp.StatusCode))
	default:
		return nil, false, errors.New(errors.ErrCodeExternalService,
			fmt.Sprintf("filings index returned %d", resp.StatusCode))
	}
}
