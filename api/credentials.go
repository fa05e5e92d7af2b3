package api

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrNoCredentials is returned when no bearer token is available.
	ErrNoCredentials = errors.New("no credentials available")
	// ErrTokenExpired is returned when the stored token's exp claim has passed.
	ErrTokenExpired = errors.New("stored token has expired")
)

// CredentialProvider supplies the bearer token for outgoing backend calls.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
	// Invalidate drops the current token, e.g. after the backend answered 401.
	Invalidate(ctx context.Context)
}

// TokenExpired reports whether token is a JWT whose exp claim is at or before now. Opaque tokens
// and tokens without exp never expire client-side.
func TokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

// StaticCredentials always returns the same token until invalidated.
type StaticCredentials struct {
	mu    sync.RWMutex
	token string
}

func NewStaticCredentials(token string) *StaticCredentials {
	return &StaticCredentials{token: strings.TrimSpace(token)}
}

func (s *StaticCredentials) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", ErrNoCredentials
	}
	return s.token, nil
}

func (s *StaticCredentials) Invalidate(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// FileCredentials reads the token from a file and caches it until it expires or is invalidated.
type FileCredentials struct {
	Path string
	Now  func() time.Time

	mu     sync.Mutex
	cached string
}

func NewFileCredentials(path string) *FileCredentials {
	return &FileCredentials{Path: path, Now: time.Now}
}

func (f *FileCredentials) Token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cached == "" {
		data, err := os.ReadFile(f.Path)
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoCredentials
		}
		if err != nil {
			return "", err
		}
		f.cached = strings.TrimSpace(string(data))
		if f.cached == "" {
			return "", ErrNoCredentials
		}
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	if TokenExpired(f.cached, now()) {
		f.cached = ""
		return "", ErrTokenExpired
	}
	return f.cached, nil
}

// Invalidate forgets the cached token; the file is read again on the next call.
func (f *FileCredentials) Invalidate(ctx context.Context) {
	f.mu.Lock()
	f.cached = ""
	f.mu.Unlock()
}

type tokenKey struct{}

// WithToken attaches a caller's bearer token to ctx for ContextCredentials.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFrom returns the token attached by WithToken.
func TokenFrom(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey{}).(string)
	return t, ok && t != ""
}

// ContextCredentials forwards the token of the request being served, and falls back to a
// service-level provider when the request carries none.
type ContextCredentials struct {
	Fallback CredentialProvider
}

func (c ContextCredentials) Token(ctx context.Context) (string, error) {
	if t, ok := TokenFrom(ctx); ok {
		return t, nil
	}
	if c.Fallback == nil {
		return "", ErrNoCredentials
	}
	return c.Fallback.Token(ctx)
}

// Invalidate only reaches the fallback; a forwarded token belongs to the caller.
func (c ContextCredentials) Invalidate(ctx context.Context) {
	if _, ok := TokenFrom(ctx); ok {
		return
	}
	if c.Fallback != nil {
		c.Fallback.Invalidate(ctx)
	}
}

// ExtractBearerToken returns the token of an "Authorization: Bearer <token>" header value.
func ExtractBearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
