package ocl

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/dmitrymomot/ocladmin/pkg/logger"
	"github.com/dmitrymomot/ocladmin/pkg/requestid"
)

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 1 << 20

// Response is the outcome of a write or delete call that reached the server.
type Response struct {
	StatusCode int
	Body       string
}

// OK reports a 2xx status.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Created reports a 201 status.
func (r Response) Created() bool {
	return r.StatusCode == http.StatusCreated
}

// Subscription decodes the body as an entity. It returns false when the body
// is empty or not a subscription.
func (r Response) Subscription() (Subscription, bool) {
	if strings.TrimSpace(r.Body) == "" {
		return Subscription{}, false
	}
	var s Subscription
	if err := json.Unmarshal([]byte(r.Body), &s); err != nil {
		return Subscription{}, false
	}
	return s, s.URL != "" || s.UUID != ""
}

// Client talks to the backend subscription resource.
type Client struct {
	baseURL  string
	resource string
	http     *http.Client
	logger   *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTokenSource authenticates every backend call with a bearer token from ts.
// It wraps whatever HTTP client has been configured so far.
func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(cl *Client) {
		if ts == nil {
			return
		}
		cl.http = &http.Client{
			Timeout: cl.http.Timeout,
			Transport: &oauth2.Transport{
				Source: ts,
				Base:   cl.http.Transport,
			},
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// NewClient builds a client from cfg. A static bearer token in cfg.Token is
// applied before the options run.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	resource := cfg.ResourcePath
	if resource == "" {
		resource = "/openconceptlab/subscription"
	}
	c := &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		resource: "/" + strings.Trim(resource, "/"),
		http:     &http.Client{Timeout: cfg.Timeout, Transport: requestid.Transport(nil)},
		logger:   slog.Default(),
	}
	if cfg.Token != "" {
		WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"}))(c)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type listResponse struct {
	Results []Subscription `json:"results"`
}

// Get returns the current subscription, or nil when none exists.
// Non-2xx responses are reported as errors wrapping ErrRequestFailed.
func (c *Client) Get(ctx context.Context) (*Subscription, error) {
	endpoint, err := c.endpoint("", url.Values{"v": {"full"}})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, resp.Body)
	}

	var list listResponse
	if err := json.Unmarshal([]byte(resp.Body), &list); err != nil {
		return nil, errors.Join(ErrDecodeResponse, err)
	}
	if len(list.Results) == 0 {
		return nil, nil
	}
	sub := list.Results[0]
	return &sub, nil
}

// Save creates the subscription when it has no uuid and updates it otherwise.
// The backend answers 201 for a create and 200 for an update.
func (c *Client) Save(ctx context.Context, sub Subscription) (Response, error) {
	endpoint, err := c.endpoint(sub.UUID, nil)
	if err != nil {
		return Response{}, err
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return Response{}, errors.Join(ErrRequestFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return c.do(req)
}

// Delete purges the subscription. The backend answers 204 on success.
func (c *Client) Delete(ctx context.Context, sub Subscription) (Response, error) {
	if sub.UUID == "" {
		return Response{}, ErrMissingUUID
	}
	endpoint, err := c.endpoint(sub.UUID, url.Values{"purge": {"true"}})
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return Response{}, errors.Join(ErrRequestFailed, err)
	}

	return c.do(req)
}

func (c *Client) endpoint(uuid string, query url.Values) (string, error) {
	if c.baseURL == "" {
		return "", ErrMissingBaseURL
	}
	u, err := url.Parse(c.baseURL + c.resource)
	if err != nil {
		return "", errors.Join(ErrRequestFailed, err)
	}
	if uuid != "" {
		u = u.JoinPath(uuid)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String(), nil
}

func (c *Client) do(req *http.Request) (Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.LogAttrs(req.Context(), slog.LevelWarn, "backend request failed",
			logger.Component("ocl_client"),
			slog.String("method", req.Method),
			slog.String("url", req.URL.Redacted()),
			logger.Error(err),
		)
		return Response{}, errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Response{}, errors.Join(ErrRequestFailed, err)
	}

	c.logger.LogAttrs(req.Context(), slog.LevelDebug, "backend request",
		logger.Component("ocl_client"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.Redacted()),
		logger.StatusCode(resp.StatusCode),
	)

	return Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
