// Package client submits contact requests to a remote site over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/luckyblinds/site/pkg/logger"
	"github.com/luckyblinds/site/pkg/requestid"
	"github.com/luckyblinds/site/svc/contact"
)

// ErrUnexpectedResponse is logged when the endpoint answers without a result envelope.
var ErrUnexpectedResponse = errors.New("client: unexpected response")

const maxResponseBytes = 64 << 10

// Client is a contact.Submitter backed by the /api/contact endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// New returns a client posting to endpoint, e.g. https://example.com/api/contact.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Data *contact.Result `json:"data"`
}

// Submit posts req once. Transport and decoding failures are logged and
// reported as the generic failure result.
func (c *Client) Submit(ctx context.Context, req contact.Request) contact.Result {
	res, err := c.do(ctx, req)
	if err != nil {
		c.log.ErrorContext(ctx, "contact request failed",
			logger.Component("contact_client"),
			logger.Error(err),
		)
		return contact.Failure(contact.FailureMessage)
	}
	return res
}

func (c *Client) do(ctx context.Context, req contact.Request) (contact.Result, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return contact.Result{}, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return contact.Result{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if id := requestid.FromContext(ctx); id != "" {
		httpReq.Header.Set(requestid.Header, id)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return contact.Result{}, fmt.Errorf("post %s: %w", c.endpoint, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&env); err != nil {
		return contact.Result{}, errors.Join(ErrUnexpectedResponse, fmt.Errorf("status %d: %w", resp.StatusCode, err))
	}
	if env.Data == nil {
		return contact.Result{}, fmt.Errorf("%w: status %d without data", ErrUnexpectedResponse, resp.StatusCode)
	}
	if !env.Data.Success && env.Data.Error == "" {
		env.Data.Error = contact.FailureMessage
	}
	return *env.Data, nil
}
