package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bot-precos/internal/fetcher"
)

func TestFetcher_Fetch_Success(t *testing.T) {
	var userAgent, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		path = r.URL.Path
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<span id="price">$10.50</span>`))
	}))
	defer server.Close()

	f := fetcher.New(fetcher.Config{UserAgent: "PrecosBot/1.0"})
	body, err := f.Fetch(context.Background(), server.URL+"/produto#reviews")

	require.NoError(t, err)
	assert.Equal(t, `<span id="price">$10.50</span>`, string(body))
	assert.Equal(t, "PrecosBot/1.0", userAgent)
	assert.Equal(t, "/produto", path)
}

func TestFetcher_Fetch_NonSuccessStatus(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := fetcher.New(fetcher.DefaultConfig()).Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, errors.Is(err, fetcher.ErrFetch))
	assert.True(t, errors.Is(err, fetcher.ErrStatus))

	var fetchErr *fetcher.Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
	assert.Contains(t, err.Error(), "503")
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits), "fetcher must not retry")
}

func TestFetcher_Fetch_InvalidURL(t *testing.T) {
	f := fetcher.New(fetcher.DefaultConfig())

	for _, raw := range []string{"", "/relative/path", "ftp://example.com/file", "https://", "http://[::1"} {
		t.Run(raw, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), raw)
			assert.True(t, errors.Is(err, fetcher.ErrFetch), "err = %v", err)
			assert.True(t, errors.Is(err, fetcher.ErrInvalidURL), "err = %v", err)
		})
	}
}

func TestFetcher_Fetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte("late"))
	}))
	defer server.Close()

	f := fetcher.New(fetcher.Config{Timeout: 50 * time.Millisecond})
	_, err := f.Fetch(context.Background(), server.URL)

	require.Error(t, err)
	assert.True(t, errors.Is(err, fetcher.ErrFetch))
	assert.True(t, errors.Is(err, fetcher.ErrTimeout), "err = %v", err)
}

func TestFetcher_Fetch_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", 2048)))
	}))
	defer server.Close()

	f := fetcher.New(fetcher.Config{MaxBodySize: 1024})
	_, err := f.Fetch(context.Background(), server.URL)

	assert.True(t, errors.Is(err, fetcher.ErrBodyTooLarge), "err = %v", err)
}

func TestFetcher_Fetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := fetcher.New(fetcher.DefaultConfig()).Fetch(context.Background(), url)

	var fetchErr *fetcher.Error
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, 0, fetchErr.StatusCode)
}
