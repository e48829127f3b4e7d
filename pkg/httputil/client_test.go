package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/matzehuels/aspectpath/pkg/errors"
)

func testClient() *Client {
	c := NewClient(5 * time.Second)
	c.Delay = time.Millisecond
	return c
}

func TestClientGet(t *testing.T) {
	var agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		agent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"primal":[]}`))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL+"/aspects.json")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(body) != `{"primal":[]}` {
		t.Errorf("body = %s", body)
	}
	if !strings.HasPrefix(agent, "aspectpath/") {
		t.Errorf("User-Agent = %q", agent)
	}
}

func TestClientGetRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(body) != "ok" || calls.Load() != 3 {
		t.Errorf("body = %q after %d calls", body, calls.Load())
	}
}

func TestClientGetErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		case "/forbidden":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	}))
	defer srv.Close()

	tests := []struct {
		path  string
		code  apperrors.Code
		calls int32
	}{
		{"/missing", apperrors.ErrCodeNotFound, 1},
		{"/forbidden", apperrors.ErrCodeNetwork, 1},
		{"/down", apperrors.ErrCodeNetwork, 3},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			calls.Store(0)
			_, err := testClient().Get(context.Background(), srv.URL+tt.path)
			if !apperrors.Is(err, tt.code) {
				t.Errorf("Get(%s) error = %v, want code %s", tt.path, err, tt.code)
			}
			if calls.Load() != tt.calls {
				t.Errorf("Get(%s) made %d calls, want %d", tt.path, calls.Load(), tt.calls)
			}
		})
	}
}

func TestClientGetInvalidURL(t *testing.T) {
	for _, u := range []string{"", "ftp://example.com/a.json", "::"} {
		if _, err := testClient().Get(context.Background(), u); !apperrors.Is(err, apperrors.ErrCodeInvalidInput) {
			t.Errorf("Get(%q) error = %v, want INVALID_INPUT", u, err)
		}
	}
}
