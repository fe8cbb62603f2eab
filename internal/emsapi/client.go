package emsapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/emstack/ems-console/pkg/session"
)

// GenericFailureMessage is surfaced whenever the upstream fails without a
// structured message field (network failure, unreachable server).
const GenericFailureMessage = "Server not responding. Please try again later."

// APIError is a non-2xx upstream response. Message carries the server's
// `message` field when present, GenericFailureMessage otherwise.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ems api: status=%d message=%s", e.Status, e.Message)
}

// TokenSource yields the bearer token for a single outgoing request. It is
// consulted at call time, never at client-construction time, so a rotated
// token takes effect on the next request.
type TokenSource interface {
	Token(ctx context.Context) string
}

type TokenSourceFunc func(ctx context.Context) string

func (f TokenSourceFunc) Token(ctx context.Context) string { return f(ctx) }

// SessionTokenSource reads the token of the session carried by the request
// context. Unauthenticated contexts yield an empty token.
func SessionTokenSource() TokenSource {
	return TokenSourceFunc(func(ctx context.Context) string {
		return session.UseToken(ctx)
	})
}

// StaticTokenSource returns the same token for every request. Used by the CLI.
func StaticTokenSource(token string) TokenSource {
	token = strings.TrimSpace(token)
	return TokenSourceFunc(func(context.Context) string { return token })
}

// Upload is a file part of a multipart form submission.
type Upload struct {
	Field       string
	Name        string
	Content     []byte
	ContentType string
}

type Options struct {
	BaseURL         string
	Tokens          TokenSource
	Timeout         time.Duration
	RequestIDHeader string
	Logger          *logrus.Logger
}

type Client struct {
	baseURL         *url.URL
	tokens          TokenSource
	httpClient      *http.Client
	requestIDHeader string
	log             *logrus.Logger
}

func New(opts Options) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q", opts.BaseURL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = SessionTokenSource()
	}
	return &Client{
		baseURL:         u,
		tokens:          tokens,
		httpClient:      &http.Client{Timeout: timeout},
		requestIDHeader: opts.RequestIDHeader,
		log:             opts.Logger,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader) (*http.Request, error) {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.requestIDHeader != "" {
		req.Header.Set(c.requestIDHeader, uuid.NewString())
	}
	if token := c.tokens.Token(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.WithError(err).WithField("url", req.URL.String()).Warn("ems api unreachable")
		}
		return &APIError{Status: 0, Message: GenericFailureMessage}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{Status: resp.StatusCode, Message: GenericFailureMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(respBody, &envelope); err == nil && strings.TrimSpace(envelope.Message) != "" {
			return &APIError{Status: resp.StatusCode, Message: envelope.Message}
		}
		return &APIError{Status: resp.StatusCode, Message: GenericFailureMessage}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("json unmarshal response: %w", err)
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, reqBody any, out any) error {
	var body io.Reader
	if reqBody != nil {
		b, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("json marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

// doMultipart submits fields and an optional file as a multipart form body.
// Repeated field values become repeated parts, matching array-style fields
// such as "departments[]".
func (c *Client) doMultipart(ctx context.Context, method, path string, fields url.Values, file *Upload, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for field, values := range fields {
		for _, v := range values {
			if err := mw.WriteField(field, v); err != nil {
				return fmt.Errorf("multipart field %s: %w", field, err)
			}
		}
	}
	if file != nil {
		part, err := mw.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return fmt.Errorf("multipart file %s: %w", file.Field, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return fmt.Errorf("multipart file %s: %w", file.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("multipart close: %w", err)
	}

	req, err := c.newRequest(ctx, method, path, nil, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req, out)
}
