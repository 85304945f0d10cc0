package lines

import (
	"bufio"
	"context"
	"os"

	"github.com/pkg/errors"
)

// Format renders the idx-th written entry.
type Format func(idx int, entry string) string

// Verbatim writes entries as they are, they carry their own terminators.
func Verbatim(_ int, entry string) string {
	return entry
}

// Joined places sep between entries, with nothing after the last one.
func Joined(sep string) Format {
	return func(idx int, entry string) string {
		if idx == 0 {
			return entry
		}

		return sep + entry
	}
}

// Terminated writes term after every entry.
func Terminated(term string) Format {
	return func(_ int, entry string) string {
		return entry + term
	}
}

// FileSink writes a channel of entries to Path, truncating any previous content.
type FileSink struct {
	Path   string
	Format Format
	// Count is the number of entries written, valid once Drain has returned.
	Count int
}

// Drain is a pipeline sink. The file is closed before it returns, whatever the outcome.
// Once ctx is done, Drain still writes what the upstream steps sent before closing their outputs,
// so a failed run keeps every entry produced before the failure.
func (s *FileSink) Drain(ctx context.Context, input <-chan string) (err error) {
	file, err := os.Create(s.Path)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s", s.Path)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "unable to close %s", s.Path)
		}
	}()

	format := s.Format
	if format == nil {
		format = Verbatim
	}
	writer := bufio.NewWriter(file)
	write := func(entry string) error {
		_, err := writer.WriteString(format(s.Count, entry))
		if err != nil {
			return errors.Wrapf(err, "unable to write %s", s.Path)
		}
		s.Count++

		return nil
	}

	for {
		select {
		case <-ctx.Done():
			for entry := range input {
				err := write(entry)
				if err != nil {
					return err
				}
			}

			return s.flush(ctx, writer)
		case entry, ok := <-input:
			if !ok {
				return s.flush(ctx, writer)
			}
			err := write(entry)
			if err != nil {
				return err
			}
		}
	}
}

// flush reports the cancellation of ctx once everything received is on disk.
func (s *FileSink) flush(ctx context.Context, writer *bufio.Writer) error {
	err := writer.Flush()
	if err != nil {
		return errors.Wrapf(err, "unable to write %s", s.Path)
	}

	return ctx.Err()
}
