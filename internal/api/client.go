package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout is used when the caller does not bring its own
	// http.Client
	DefaultTimeout = time.Second * 30

	// DefaultBaseURL is the backend behind the /api prefix in development
	DefaultBaseURL = "http://localhost:8080/api"

	// probePath is a protected resource used to validate credentials
	probePath = "/medicamentos"
)

// Client is responsible for talking to the pharmacy REST API. Every call is
// independent: there is no retry, caching or coalescing, and concurrent
// calls only share the read-only credentials.
type Client struct {
	baseURL string
	c       *http.Client
	creds   Credentials
	logger  *zap.Logger
}

// NewClient returns an instantiated instance of a new api client. The client
// has the following dependencies:
//
// logger - for structured logging
// baseURL - the resource prefix, e.g. http://localhost:8080/api
// creds - the session holding the cached credential
//
// httpClient is optional, a client with DefaultTimeout is used when nil.
//
// Usage Example:
//  c, err := NewClient(logger, DefaultBaseURL, session, nil)
//  if err != nil { // handle err }
//
//  meds, err := c.ListMedications(ctx)
//  if errors.Is(err, ErrUnauthorized) { // log in again }
func NewClient(logger *zap.Logger, baseURL string, creds Credentials, httpClient *http.Client) (*Client, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	c := Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		c:       httpClient,
		creds:   creds,
		logger:  logger,
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

func (c *Client) validate() error {
	var missingDeps []string

	for _, tc := range []struct {
		dep string
		chk func() bool
	}{
		{
			dep: "logger",
			chk: func() bool { return c.logger != nil },
		},
		{
			dep: "baseURL",
			chk: func() bool { return c.baseURL != "" },
		},
		{
			dep: "creds",
			chk: func() bool { return c.creds != nil },
		},
	} {
		if !tc.chk() {
			missingDeps = append(missingDeps, tc.dep)
		}
	}

	if len(missingDeps) > 0 {
		return fmt.Errorf(
			"unable to initialize api client due to (%d) missing dependencies: %s",
			len(missingDeps),
			strings.Join(missingDeps, ","),
		)
	}

	return nil
}

// Do performs the request against the base prefix and decodes the JSON
// response into out. A 204 response, or a nil out, leaves out untouched.
func (c *Client) Do(ctx context.Context, path string, r *Request, out interface{}) error {
	return c.do(ctx, path, r, out, c.creds.Token())
}

// Probe checks a Basic token against a protected resource without using or
// touching the cached credential.
func (c *Client) Probe(ctx context.Context, token string) error {
	return c.do(ctx, probePath, nil, nil, token)
}

func (c *Client) do(ctx context.Context, path string, r *Request, out interface{}, token string) error {
	if r == nil {
		r = &Request{}
	}

	requestID := uuid.NewString()
	logger := c.logger.With(
		zap.String("method", r.method()),
		zap.String("path", path),
		zap.String("requestId", requestID),
	)

	var body io.Reader
	if r.Body != nil {
		b, err := json.Marshal(r.Body)
		if err != nil {
			const msg = "unable to marshal payload"
			logger.Error(msg, zap.Error(err))
			return fmt.Errorf(msg+": %w", err)
		}
		body = bytes.NewReader(b)
	}

	u := c.baseURL + path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method(), u, body)
	if err != nil {
		const msg = "unable to create request"
		logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}

	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if token != "" {
		req.Header.Set("Authorization", "Basic "+token)
	}

	resp, err := c.c.Do(req)
	if err != nil {
		const msg = "unable to reach api"
		logger.Error(msg, zap.Error(err))
		return fmt.Errorf(msg+": %w", err)
	}
	defer resp.Body.Close()

	logger = logger.With(zap.Int("statusCode", resp.StatusCode))

	switch {
	case resp.StatusCode == http.StatusNoContent:
		logger.Debug("no content")
		return nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			const msg = "unable to decode body"
			logger.Error(msg, zap.Error(err))
			return fmt.Errorf(msg+": %w", err)
		}

		logger.Debug("request succeeded")
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		logger.Warn("received unauthorized response")
		return ErrUnauthorized
	default:
		apiErr := readAPIError(resp)
		logger.Error("received non-2xx status code", zap.String("message", apiErr.Message))
		return apiErr
	}
}

func readAPIError(resp *http.Response) *APIError {
	apiErr := APIError{StatusCode: resp.StatusCode}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		b = nil
	}

	var payload errorPayload
	text := string(b)
	switch {
	case json.Unmarshal(b, &payload) == nil && payload.Message != "":
		apiErr.Message = payload.Message
	case strings.TrimSpace(text) != "":
		apiErr.Message = text
	default:
		apiErr.Message = "api error: " + http.StatusText(resp.StatusCode)
	}

	return &apiErr
}
