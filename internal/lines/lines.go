// Package lines reads and writes the newline-delimited files every wosh command works on.
//
// Readers are pipeline root functions, writers are pipeline sinks. No CSV quoting is understood anywhere:
// a record is a line and nothing else.
package lines

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/pkg/pipeline"
)

// maxLineSize bounds a single word when scanning. Longer lines fail the read.
const maxLineSize = 1024 * 1024

// ErrInputMissing is returned when an input file does not exist.
var ErrInputMissing = errors.New("input file does not exist")

// Open opens an input file. Callers open every input before creating any output,
// so a missing input never leaves an output file behind.
func Open(path string) (*os.File, error) {
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(ErrInputMissing, path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}

	return file, nil
}

// scanTerminated is a bufio.SplitFunc ending a line on "\n", "\r\n" or a lone "\r", like text mode
// reads do. The token keeps its terminator.
func scanTerminated(data []byte, atEOF bool) (int, []byte, error) {
	i := bytes.IndexAny(data, "\r\n")
	switch {
	case i < 0:
		if atEOF && len(data) > 0 {
			return len(data), data, nil
		}

		return 0, nil, nil
	case data[i] == '\n':
		return i + 1, data[:i+1], nil
	case i+1 < len(data):
		if data[i+1] == '\n' {
			return i + 2, data[:i+2], nil
		}

		return i + 1, data[:i+1], nil
	case atEOF:
		return i + 1, data[:i+1], nil
	}

	// a '\r' ends the buffer, it may be the first half of "\r\n"
	return 0, nil, nil
}

// trimTerminator never returns nil for a non nil token, the scanner would skip an empty line otherwise.
func trimTerminator(token []byte) []byte {
	end := len(token)
	for end > 0 && (token[end-1] == '\n' || token[end-1] == '\r') {
		end--
	}

	return token[:end]
}

// ScanNewlines is a bufio.SplitFunc returning lines without their terminator.
// "\n", "\r\n" and a lone "\r" all end a line.
func ScanNewlines(data []byte, atEOF bool) (int, []byte, error) {
	advance, token, err := scanTerminated(data, atEOF)
	if token == nil {
		return advance, nil, err
	}

	return advance, trimTerminator(token), err
}

func newScanner(r io.Reader, split bufio.SplitFunc) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	scanner.Split(split)

	return scanner
}

// ReadWords pushes every line of r, without its terminator.
func ReadWords(r io.Reader) func(ctx context.Context, out chan<- string) error {
	return func(ctx context.Context, out chan<- string) error {
		scanner := newScanner(r, ScanNewlines)
		for scanner.Scan() {
			err := pipeline.Push(ctx, out, scanner.Text())
			if err != nil {
				return err
			}
		}

		return errors.Wrap(scanner.Err(), "unable to read words")
	}
}

// ReadLines pushes every line of r. Terminated lines end with a single '\n' whatever their terminator was,
// the last line keeps none if r has none.
func ReadLines(r io.Reader) func(ctx context.Context, out chan<- string) error {
	return func(ctx context.Context, out chan<- string) error {
		scanner := newScanner(r, scanTerminated)
		for scanner.Scan() {
			line := scanner.Bytes()
			trimmed := trimTerminator(line)
			entry := string(trimmed)
			if len(trimmed) < len(line) {
				entry += "\n"
			}
			err := pipeline.Push(ctx, out, entry)
			if err != nil {
				return err
			}
		}

		return errors.Wrap(scanner.Err(), "unable to read lines")
	}
}
