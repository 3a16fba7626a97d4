// Package hrclient is the client SDK for the HR assistant backend. It owns
// the HTTP contract (login, chat streaming, dashboard analytics) and the
// stream machinery that turns an SSE response body into transcript state:
// FrameDecoder reassembles frames, ParseEvent classifies them, and
// Transcript folds the resulting events into the conversation.
package hrclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Client talks to the HR assistant backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout for non-streaming requests.
// Streaming requests are bounded by their context instead.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used for dropped frames and stream errors.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(client *Client) {
		client.log = log
	}
}

// NewClient creates a client for the given backend base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// loginResponse mirrors the backend's login payloads: success carries the
// token and user descriptor, failure carries detail.
type loginResponse struct {
	AccessToken string `json:"access_token"`
	UserName    string `json:"user_name"`
	Role        string `json:"role"`
	Detail      string `json:"detail"`
}

// Login exchanges form-encoded credentials for a session. A rejected login
// surfaces the backend's detail message; nothing is persisted either way.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if body.Detail != "" {
			return nil, fmt.Errorf("login failed: %s", body.Detail)
		}
		return nil, fmt.Errorf("login failed: HTTP %d", resp.StatusCode)
	}

	return NewSession(body.AccessToken, body.UserName, body.Role), nil
}

// chatRequest is the request body for the chat endpoint.
type chatRequest struct {
	Message  string `json:"message"`
	ThreadID string `json:"thread_id"`
}

// Chat submits one turn and streams the decoded events back. The returned
// channels close when the stream ends; read errors arrive on the error
// channel. Cancel the context to abandon the turn.
//
// Frames that fail to parse are logged and skipped, never fatal. Events are
// delivered in exact wire order.
func (c *Client) Chat(ctx context.Context, sess *Session, message string) (<-chan Event, <-chan error, error) {
	body, err := json.Marshal(chatRequest{Message: message, ThreadID: sess.ThreadID})
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/chat", bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	// The long-lived stream must not inherit the request timeout.
	streamClient := &http.Client{Transport: c.httpClient.Transport}
	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("chat request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if resp.Body == nil {
		return nil, nil, fmt.Errorf("no response body")
	}

	eventCh := make(chan Event, 100)
	errCh := make(chan error, 1)

	go c.readStream(ctx, resp.Body, eventCh, errCh)

	return eventCh, errCh, nil
}

// readStream pumps the response body through the frame decoder and event
// interpreter until EOF, error or cancellation.
func (c *Client) readStream(ctx context.Context, body io.ReadCloser, eventCh chan<- Event, errCh chan<- error) {
	defer close(eventCh)
	defer close(errCh)
	defer body.Close()

	decoder := NewFrameDecoder()
	defer decoder.Close()

	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			for _, payload := range decoder.Push(string(buf[:n])) {
				ev, perr := ParseEvent(payload)
				if perr != nil {
					c.log.Warn().Err(perr).Str("payload", payload).Msg("dropped undecodable frame")
					continue
				}
				if ev == nil {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case eventCh <- ev:
				}
			}
		}
		if err != nil {
			if err != io.EOF && ctx.Err() == nil {
				errCh <- err
			}
			return
		}
	}
}
