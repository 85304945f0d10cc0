// Package fetch downloads the solver lists the first time they are needed.
package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const defaultTimeout = 2 * time.Minute

var (
	// ErrDeclined is returned when the user refuses a download.
	ErrDeclined = errors.New("download declined")
	// ErrStatus is returned for a non 2xx download response.
	ErrStatus = errors.New("unexpected status")
)

// Fetcher makes sure the solver lists exist, downloading them after confirmation.
type Fetcher struct {
	client *http.Client
	in     *bufio.Reader
	out    io.Writer
	yes    bool
	logger *zap.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient sets the HTTP client.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithPrompt sets where questions are written and answers read.
func WithPrompt(in io.Reader, out io.Writer) Option {
	return func(f *Fetcher) {
		f.in = bufio.NewReader(in)
		f.out = out
	}
}

// WithYes accepts every download without asking.
func WithYes(yes bool) Option {
	return func(f *Fetcher) { f.yes = yes }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// New returns a Fetcher prompting on stdin and stderr.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stderr,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Accepted reports whether answer agrees to a download: an empty answer, y or yes, in any case.
func Accepted(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	default:
		return false
	}
}

func (f *Fetcher) confirm(name, path, url string) error {
	if f.yes {
		return nil
	}

	fmt.Fprintf(f.out, "Unable to find a %s at %s.\nIt can be downloaded from %s\nContinue? [Y/n]: ", name, path, url)
	answer, err := f.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return errors.Wrap(err, "unable to read answer")
	}
	if !Accepted(answer) {
		return errors.Wrapf(ErrDeclined, "%s, pass an existing file instead", name)
	}

	return nil
}

// Ensure downloads url to path unless path already exists. name describes the list in the prompt.
func (f *Fetcher) Ensure(ctx context.Context, name, path, url string) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return errors.Wrapf(err, "unable to check %s", path)
	}

	err = f.confirm(name, path, url)
	if err != nil {
		return err
	}

	size, err := f.Download(ctx, url, path)
	if err != nil {
		return err
	}
	f.logger.Info("list downloaded", zap.String("list", name), zap.String("path", path), zap.Int64("bytes", size))

	return nil
}

// Download writes the body of url to path, creating its directory. Nothing is left at path on failure.
func (f *Fetcher) Download(ctx context.Context, url, path string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, errors.Wrap(err, "unable to build request")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to download %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, errors.Wrapf(ErrStatus, "%s: %s", url, resp.Status)
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to create directory for %s", path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return 0, errors.Wrapf(err, "unable to create %s", path)
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if err != nil {
		return 0, errors.Wrapf(err, "unable to write %s", path)
	}
	if closeErr != nil {
		return 0, errors.Wrapf(closeErr, "unable to write %s", path)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		return 0, errors.Wrapf(err, "unable to write %s", path)
	}

	return size, nil
}
