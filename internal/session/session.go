// Package session implements types.Session over net/http. It sends JSON
// bodies with bearer authentication, encodes query structs, and turns non-2xx
// responses into *types.APIError.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-querystring/query"
	"github.com/sirupsen/logrus"

	"github.com/mesh-intelligence/boxsdk/internal/logging"
	"github.com/mesh-intelligence/boxsdk/pkg/types"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 1 << 20

var _ types.Session = (*Session)(nil)

// Session sends API requests for one configured account. It is safe for
// concurrent use.
type Session struct {
	apiURL    string
	token     string
	userAgent string
	http      *http.Client
	log       logrus.FieldLogger
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient replaces the default http.Client. The Config timeout is not
// applied to a supplied client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.http = c }
}

// WithLogger sets the logger used for per-request logging.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Session) { s.log = l }
}

// New returns a Session for cfg. Empty config values take their defaults;
// the result must pass Config.Validate.
func New(cfg types.Config, opts ...Option) (*Session, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		apiURL:    strings.TrimSuffix(cfg.APIURL, "/"),
		token:     strings.TrimSpace(cfg.Token),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout},
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// APIURL returns the base URL without a trailing slash.
func (s *Session) APIURL() string {
	return s.apiURL
}

// Get sends a GET request. query is encoded with go-querystring struct tags.
func (s *Session) Get(ctx context.Context, url string, q any, out any) error {
	if q != nil {
		v, err := query.Values(q)
		if err != nil {
			return fmt.Errorf("encode query: %w", err)
		}
		if enc := v.Encode(); enc != "" {
			sep := "?"
			if strings.Contains(url, "?") {
				sep = "&"
			}
			url += sep + enc
		}
	}
	return s.do(ctx, http.MethodGet, url, nil, out)
}

// Post sends body as JSON in a POST request.
func (s *Session) Post(ctx context.Context, url string, body any, out any) error {
	return s.do(ctx, http.MethodPost, url, body, out)
}

// Put sends body as JSON in a PUT request.
func (s *Session) Put(ctx context.Context, url string, body any, out any) error {
	return s.do(ctx, http.MethodPut, url, body, out)
}

// Delete sends a DELETE request.
func (s *Session) Delete(ctx context.Context, url string) error {
	return s.do(ctx, http.MethodDelete, url, nil, nil)
}

// resolve prefixes the API URL onto a path-only url.
func (s *Session) resolve(url string) string {
	if strings.HasPrefix(url, "/") {
		return s.apiURL + url
	}
	return url
}

func (s *Session) do(ctx context.Context, method, url string, body any, out any) error {
	url = s.resolve(url)

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", method, err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	start := time.Now()
	resp, err := s.http.Do(req)
	if err != nil {
		s.log.WithFields(logrus.Fields{"method": method, "url": url}).WithError(err).Warn("request failed")
		return err
	}
	defer resp.Body.Close()

	entry := s.log.WithFields(logrus.Fields{
		"method":  method,
		"url":     url,
		"status":  resp.StatusCode,
		"elapsed": time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := decodeAPIError(resp)
		apiErr.Method = method
		apiErr.URL = url
		entry.WithField("code", apiErr.Code).Warn("api error")
		return apiErr
	}
	entry.Debug("request")

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s response: %w", method, url, err)
	}
	return nil
}

// decodeAPIError reads an error response. Bodies that are not an API error
// object are kept as the message text.
func decodeAPIError(resp *http.Response) *types.APIError {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &types.APIError{}
	if err := json.Unmarshal(b, apiErr); err != nil {
		apiErr = &types.APIError{Message: strings.TrimSpace(string(b))}
	}
	apiErr.StatusCode = resp.StatusCode
	if apiErr.RequestID == "" {
		apiErr.RequestID = resp.Header.Get("Box-Request-Id")
	}
	return apiErr
}
