// Package dashboard is the server-rendered admin UI. It keeps the API token in
// a session cookie and talks to the API on the user's behalf.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	defaultBackoff = 300 * time.Millisecond
)

// Client calls the order-tracking API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Backoff time.Duration // first retry delay, doubled per attempt
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: defaultTimeout},
		Backoff: defaultBackoff,
	}
}

// Request is one call to the API. Path includes the query string.
type Request struct {
	Method      string
	Path        string
	Token       string
	Body        []byte
	ContentType string
	// Retries is how many more attempts a transport failure gets.
	// Responses with any status are never retried.
	Retries int
}

type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	delay := c.Backoff
	for attempt := 0; ; attempt++ {
		res, err := c.once(ctx, r)
		if err == nil {
			return res, nil
		}
		if attempt >= r.Retries || ctx.Err() != nil {
			return nil, err
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		delay *= 2
	}
}

func (c *Client) once(ctx context.Context, r Request) (*Response, error) {
	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, c.BaseURL+r.Path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if r.ContentType != "" {
		req.Header.Set("Content-Type", r.ContentType)
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	return &Response{Status: res.StatusCode, ContentType: res.Header.Get("Content-Type"), Body: data}, nil
}

// APIError is a non-2xx answer; Message is the API's "message" field.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api %d: %s", e.Status, e.Message)
}

// GetJSON fetches path and decodes a 2xx body into out.
func (c *Client) GetJSON(ctx context.Context, path, token string, out any) error {
	res, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Token: token})
	if err != nil {
		return err
	}
	return decode(res, out)
}

// PostJSON sends in as JSON and decodes a 2xx body into out.
func (c *Client) PostJSON(ctx context.Context, path, token string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	res, err := c.Do(ctx, Request{
		Method:      http.MethodPost,
		Path:        path,
		Token:       token,
		Body:        payload,
		ContentType: "application/json",
	})
	if err != nil {
		return err
	}
	return decode(res, out)
}

func decode(res *Response, out any) error {
	if res.Status < 200 || res.Status > 299 {
		var body struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(res.Body, &body)
		if body.Message == "" {
			body.Message = http.StatusText(res.Status)
		}
		return &APIError{Status: res.Status, Message: body.Message}
	}
	if out == nil || len(res.Body) == 0 {
		return nil
	}
	return json.Unmarshal(res.Body, out)
}
