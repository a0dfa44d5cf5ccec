package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<p>hello</p>"))
	}))
	defer srv.Close()

	page, err := NewFetcher().Fetch(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, page.Status)
	assert.Equal(t, "<p>hello</p>", page.Text())
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	page, err := NewFetcher().Fetch(context.Background(), srv.URL, time.Second)
	assert.Nil(t, page)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrStatus))

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.Status)
}

func TestFetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := NewFetcher().Fetch(context.Background(), srv.URL, 50*time.Millisecond)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestFetch_SelfSignedTLSAccepted(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	page, err := NewFetcher().Fetch(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "ok", page.Text())
}

func TestFetch_MalformedURL(t *testing.T) {
	_, err := NewFetcher().Fetch(context.Background(), "://nope", time.Second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestFetch_DecodesLegacyCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte{'<', 'p', '>', 'c', 'a', 'f', 0xe9, '<', '/', 'p', '>'})
	}))
	defer srv.Close()

	page, err := NewFetcher().Fetch(context.Background(), srv.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", page.Text())
}
