package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Request_Success(t *testing.T) {
	// Mock server setup
	mockResponse := map[string]string{"message": "success"}
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-endpoint" {
			t.Errorf("Expected endpoint '/test-endpoint', got '%s'", r.URL.Path)
		}
		if r.Header.Get("Accept") != "application/json" {
			t.Errorf("Expected Accept application/json, got '%s'", r.Header.Get("Accept"))
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Errorf("Expected an X-Request-ID header")
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(mockResponse)
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "GET", "/test-endpoint", nil, nil, &response)

	// Assert
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if response["message"] != "success" {
		t.Errorf("Expected response message to be 'success', got '%s'", response["message"])
	}
}

func TestHTTPClient_Request_Failure(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "POST", "/test-endpoint", nil, map[string]string{"key": "value"}, &response)

	// Assert
	if err == nil {
		t.Fatalf("Expected an error, got nil")
	}

	expectedError := "unexpected status code: 400 Bad Request"
	if err.Error() != expectedError {
		t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
	}
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
	assert.Equal(t, "Failed to create booking", MessageOr(err, "Failed to create booking"))
}

func TestHTTPClient_Request_BackendMessage(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "Slot already booked"}`))
	}))
	defer mockServer.Close()

	err := NewHTTPClient(mockServer.URL).Request(context.Background(), "POST", "/booking", nil, map[string]int{"a": 1}, nil)
	require.Error(t, err)

	wrapped := Wrap(err, "Failed to create booking")
	assert.Equal(t, "Slot already booked", wrapped.Error())

	var apiErr *APIError
	require.True(t, errors.As(wrapped, &apiErr))
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
}

func TestHTTPClient_BearerAndInvalidate(t *testing.T) {
	var gotAuth, gotRequestID string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer mockServer.Close()

	creds := NewStaticCredentials("tok-1")
	client := NewHTTPClient(mockServer.URL).WithCredentials(creds)

	ctx := WithRequestID(context.Background(), "req-42")
	err := client.Request(ctx, "GET", "/my-bookings", nil, nil, nil)

	assert.Error(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "req-42", gotRequestID)

	_, err = creds.Token(context.Background())
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestHTTPClient_AnonymousWithoutToken(t *testing.T) {
	var gotAuth string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL).WithCredentials(NewStaticCredentials(""))
	require.NoError(t, client.Request(context.Background(), "GET", "/get-all-facility", nil, nil, nil))
	assert.Empty(t, gotAuth)
}

func TestHTTPClient_RequestMultipart(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}

		assert.Equal(t, "Asha", r.FormValue("name"))
		f, hdr, err := r.FormFile("image")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "profile.jpg", hdr.Filename)
		assert.Equal(t, "image/jpeg", hdr.Header.Get("Content-Type"))
		assert.Equal(t, []byte{0xff, 0xd8}, data)

		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer mockServer.Close()

	var out map[string]string
	err := NewHTTPClient(mockServer.URL).RequestMultipart(context.Background(), "POST", "/update-profile", Form{
		Fields: [][2]string{{"name", "Asha"}},
		Files:  []FilePart{{Field: "image", FileName: "profile.jpg", ContentType: "image/jpeg", Data: []byte{0xff, 0xd8}}},
	}, &out)

	require.NoError(t, err)
	assert.Equal(t, "ok", out["message"])
}
