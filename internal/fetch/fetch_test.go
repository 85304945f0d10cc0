package fetch_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-wosh/internal/fetch"
)

func listServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	hits := &atomic.Int32{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server, hits
}

func TestAccepted(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		answer string
		want   bool
	}{
		"empty":        {answer: "\n", want: true},
		"y":            {answer: "y\n", want: true},
		"yes":          {answer: "yes", want: true},
		"upper":        {answer: " YES \r\n", want: true},
		"no":           {answer: "n\n", want: false},
		"other":        {answer: "sure\n", want: false},
		"yes and more": {answer: "yes please\n", want: false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, fetch.Accepted(tc.answer))
		})
	}
}

func TestEnsureDownloadsAfterConfirmation(t *testing.T) {
	t.Parallel()

	server, hits := listServer(t, http.StatusOK, "cat\nact\n")
	path := filepath.Join(t.TempDir(), "wosh", "sublist")
	prompt := &bytes.Buffer{}

	f := fetch.New(fetch.WithPrompt(strings.NewReader("\n"), prompt))
	require.NoError(t, f.Ensure(context.Background(), "sub list", path, server.URL))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "cat\nact\n", string(data))
	assert.Contains(t, prompt.String(), "Continue? [Y/n]")
	assert.Contains(t, prompt.String(), server.URL)
	assert.Equal(t, int32(1), hits.Load())
}

func TestEnsureDeclined(t *testing.T) {
	t.Parallel()

	server, hits := listServer(t, http.StatusOK, "cat\n")
	path := filepath.Join(t.TempDir(), "wordlist")

	f := fetch.New(fetch.WithPrompt(strings.NewReader("no\n"), &bytes.Buffer{}))
	err := f.Ensure(context.Background(), "word list", path, server.URL)
	require.ErrorIs(t, err, fetch.ErrDeclined)
	assert.NoFileExists(t, path)
	assert.Zero(t, hits.Load())
}

func TestEnsureExistingFile(t *testing.T) {
	t.Parallel()

	server, hits := listServer(t, http.StatusOK, "new\n")
	path := filepath.Join(t.TempDir(), "wordlist")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	f := fetch.New(fetch.WithPrompt(strings.NewReader(""), &bytes.Buffer{}))
	require.NoError(t, f.Ensure(context.Background(), "word list", path, server.URL))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\n", string(data))
	assert.Zero(t, hits.Load())
}

func TestEnsureYesSkipsPrompt(t *testing.T) {
	t.Parallel()

	server, _ := listServer(t, http.StatusOK, "cat\n")
	path := filepath.Join(t.TempDir(), "wordlist")
	prompt := &bytes.Buffer{}

	f := fetch.New(fetch.WithPrompt(strings.NewReader("n\n"), prompt), fetch.WithYes(true))
	require.NoError(t, f.Ensure(context.Background(), "word list", path, server.URL))
	assert.FileExists(t, path)
	assert.Empty(t, prompt.String())
}

func TestDownloadBadStatus(t *testing.T) {
	t.Parallel()

	server, _ := listServer(t, http.StatusNotFound, "missing")
	path := filepath.Join(t.TempDir(), "wordlist")

	_, err := fetch.New().Download(context.Background(), server.URL, path)
	require.ErrorIs(t, err, fetch.ErrStatus)
	assert.NoFileExists(t, path)
}

func TestDownloadCancelled(t *testing.T) {
	t.Parallel()

	server, _ := listServer(t, http.StatusOK, "cat\n")
	path := filepath.Join(t.TempDir(), "wordlist")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fetch.New().Download(ctx, server.URL, path)
	require.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, path)
}
