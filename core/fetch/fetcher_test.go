package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/mutation.xml":
			assert.Equal(t, defaultUserAgent, r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/xml")
			_, _ = w.Write([]byte(`<mutation proccode="x"/>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New(0)
	res, err := f.Fetch(context.Background(), srv.URL+"/mutation.xml")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, `<mutation proccode="x"/>`, res.Body)

	_, err = f.Fetch(context.Background(), srv.URL+"/missing")
	assert.ErrorContains(t, err, "unexpected status 404")
}

func TestHTTPFetcher_BodyLimit(t *testing.T) {
	body := `<mutation><arg/><arg/></mutation>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	f := New(0)
	f.maxBytes = int64(len(body))
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, body, res.Body)

	f.maxBytes = int64(len(body)) - 1
	_, err = f.Fetch(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "exceeds")

	_, err = Load(context.Background(), srv.URL, f, nil)
	assert.ErrorContains(t, err, "exceeds")
}

func TestHTTPFetcher_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(time.Second).Fetch(ctx, srv.URL)
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<from-url/>"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "m.xml")
	require.NoError(t, os.WriteFile(path, []byte("<from-file/>"), 0o644))

	ctx := context.Background()
	f := New(0)

	got, err := Load(ctx, "-", f, strings.NewReader("<from-stdin/>"))
	require.NoError(t, err)
	assert.Equal(t, "<from-stdin/>", got)

	got, err = Load(ctx, srv.URL, f, nil)
	require.NoError(t, err)
	assert.Equal(t, "<from-url/>", got)

	got, err = Load(ctx, path, f, nil)
	require.NoError(t, err)
	assert.Equal(t, "<from-file/>", got)

	_, err = Load(ctx, filepath.Join(dir, "missing.xml"), f, nil)
	assert.Error(t, err)
}
