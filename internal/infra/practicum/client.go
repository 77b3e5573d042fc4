// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"syscall"
	"time"

	domain "homework_status_bot/internal/domain/practicum"
)

const (
	defaultTimeout = 30 * time.Second
	maxBodyBytes   = 1 << 20
)

// HTTPClient implements the domain Client against the homework statuses endpoint.
type HTTPClient struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

func NewHTTPClient(endpoint, token string) (*HTTPClient, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid homework API endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("homework API endpoint must use http or https scheme, got %q", u.Scheme)
	}
	return &HTTPClient{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   endpoint,
		token:      token,
	}, nil
}

// HomeworkStatuses issues GET <endpoint>?from_date=<fromDate> with the OAuth token.
func (c *HTTPClient) HomeworkStatuses(ctx context.Context, fromDate int64) (*domain.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build homework API request: %w", err)
	}
	q := req.URL.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Reason: transportReason(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.TransportError{Reason: "reading body: " + transportReason(err), Err: err}
	}
	return &domain.Response{StatusCode: resp.StatusCode, Body: body}, nil
}

// transportReason classifies a failed request. The result never contains
// the request URL or socket addresses, so the same fault yields the same
// reason on every cycle.
func transportReason(err error) string {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return "timeout"
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return "connection reset"
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return "connection refused"
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "DNS lookup failed for " + dnsErr.Name
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr.Op + ": " + innermost(opErr.Err).Error()
	}
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return innermost(uerr.Err).Error()
	}
	return err.Error()
}

func innermost(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
