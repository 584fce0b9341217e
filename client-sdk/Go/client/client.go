package client

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
)

// Chatbot Go SDK
//
// A thin wrapper around the chatbot HTTP API.
//
// Methods return *APIError when the server answers with an error status.
// Upload rejections are not errors: the server reports them as a message.
//
// Example usage:
//  c := NewClient("http://localhost:5000")
//  reply, err := c.Chat(ctx, "hola")

// Client is an HTTP client for the chatbot server.
type Client struct {
	BaseURL string
	Client  *http.Client
}

// APIError is an unexpected status from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chatbot api: %d %s", e.StatusCode, e.Message)
}

// Health is the server's view of itself.
type Health struct {
	Status   string `json:"status"`
	Document bool   `json:"document"`
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// ----------------- Low-level request helper -----------------
// request sends an HTTP request and returns the response body.
func (c *Client) request(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}
	return respBody, nil
}

// ----------------- API Methods -----------------

// HealthCheck reports whether the server is up and has a document loaded.
func (c *Client) HealthCheck(ctx context.Context) (*Health, error) {
	resp, err := c.request(ctx, http.MethodGet, "/healthz", "", nil)
	if err != nil {
		return nil, err
	}
	var result Health
	if err := json.Unmarshal(resp, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Chat sends one message and returns the bot's reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	form := url.Values{"message": {message}}
	resp, err := c.request(ctx, http.MethodPost, "/chat", "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", err
	}
	return result.Response, nil
}

// Upload sends a document and returns the server's message, which says
// whether it was processed or why it was rejected.
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", fmt.Errorf("read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	resp, err := c.request(ctx, http.MethodPost, "/upload", mw.FormDataContentType(), &body)
	if err != nil {
		return "", fmt.Errorf("upload failed: %w", err)
	}
	var result struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}
