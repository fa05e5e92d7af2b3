// api/http_client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// HTTPClient struct to hold base URL, HTTP client configuration and the credentials source
type HTTPClient struct {
	BaseURL     string
	HTTPClient  *http.Client
	Credentials CredentialProvider
}

// NewHTTPClient creates a new instance of HTTPClient with default settings
func NewHTTPClient(baseURL string) *HTTPClient {
	return NewHTTPClientWithTimeout(baseURL, 10*time.Second)
}

// NewHTTPClientWithTimeout creates an HTTPClient whose requests give up after timeout.
func NewHTTPClientWithTimeout(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithCredentials sets the provider the bearer token is read from before each request.
func (c *HTTPClient) WithCredentials(p CredentialProvider) *HTTPClient {
	c.Credentials = p
	return c
}

// Request makes an HTTP request to the API and decodes the JSON response
func (c *HTTPClient) Request(ctx context.Context, method, endpoint string, headers map[string]string, body interface{}, response interface{}) error {
	var requestBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		requestBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, requestBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return c.do(req, response)
}

// FilePart is a file field of a multipart request.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Form is a multipart body. Fields are written in order, before the files.
type Form struct {
	Fields [][2]string
	Files  []FilePart
}

// RequestMultipart sends form as multipart/form-data and decodes the JSON response
func (c *HTTPClient) RequestMultipart(ctx context.Context, method, endpoint string, form Form, response interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, f := range form.Fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return err
		}
	}
	for _, f := range form.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, f.FileName))
		h.Set("Content-Type", f.ContentType)
		part, err := w.CreatePart(h)
		if err != nil {
			return err
		}
		if _, err := part.Write(f.Data); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+endpoint, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, response)
}

func (c *HTTPClient) do(req *http.Request, response interface{}) error {
	ctx := req.Context()
	req.Header.Set("Accept", "application/json")

	requestID := RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, requestID)

	if c.Credentials != nil {
		token, err := c.Credentials.Token(ctx)
		switch {
		case err == nil:
			req.Header.Set("Authorization", "Bearer "+token)
		case errors.Is(err, ErrNoCredentials), errors.Is(err, ErrTokenExpired):
			log.Printf("[HTTPClient] %s %s sent without credentials: %v", req.Method, req.URL.Path, err)
		default:
			return err
		}
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if res.StatusCode == http.StatusUnauthorized && c.Credentials != nil {
			c.Credentials.Invalidate(ctx)
		}
		return &APIError{
			StatusCode: res.StatusCode,
			Status:     res.Status,
			Message:    backendMessage(resBody),
		}
	}

	if response != nil && len(bytes.TrimSpace(resBody)) > 0 {
		return json.Unmarshal(resBody, response)
	}

	return nil
}

type requestIDKey struct{}

// WithRequestID makes outgoing calls made with ctx reuse id as their X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the id set by WithRequestID, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
