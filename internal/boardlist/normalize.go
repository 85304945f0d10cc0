package boardlist

import (
	"context"
	"slices"
	"sort"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/internal/lines"
	"github.com/askiada/go-wosh/pkg/pipeline"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// ErrValueNotPresent is returned when a field to remove is not in the row.
var ErrValueNotPresent = errors.New("value not present")

// AnagramKey returns the characters of letters sorted by code point.
func AnagramKey(letters string) string {
	runes := []rune(letters)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	return string(runes)
}

// RemoveValue removes the first field equal to value.
func RemoveValue(fields []string, value string) ([]string, error) {
	idx := slices.Index(fields, value)
	if idx < 0 {
		return nil, errors.Wrapf(ErrValueNotPresent, "%q", value)
	}

	return slices.Delete(slices.Clone(fields), idx, idx+1), nil
}

// NormalizeRow replaces the letters in the first field of line with their anagram key.
// Trailing whitespace, the terminator included, is dropped.
func NormalizeRow(line string) (string, error) {
	fields := strings.Split(strings.TrimRightFunc(line, unicode.IsSpace), ",")
	letters := fields[0]

	rest, err := RemoveValue(fields, letters)
	if err != nil {
		return "", err
	}

	return strings.Join(append([]string{AnagramKey(letters)}, rest...), ","), nil
}

// SortRows sorts normalized rows lexicographically.
func SortRows(rows []string) []string {
	sorted := slices.Clone(rows)
	sort.Strings(sorted)

	return sorted
}

// addNormalizeAndSort adds the steps normalizing rows with workers goroutines and sorting them all.
func addNormalizeAndSort(pipe *pipeline.Pipeline, input *model.Step[string], workers int) (*model.Step[string], error) {
	normalized, err := pipeline.AddStepOneToOne(pipe, "normalize", input, func(_ context.Context, line string) (string, error) {
		return NormalizeRow(line)
	}, pipeline.StepConcurrency[string](workers))
	if err != nil {
		return nil, err
	}

	return pipeline.AddStepFromChan(pipe, "sort", normalized, func(ctx context.Context, input <-chan string, output chan<- string) error {
		rows := []string{}
		for row := range input {
			rows = append(rows, row)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		for _, row := range SortRows(rows) {
			err := pipeline.Push(ctx, output, row)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// RunSort writes the normalized and sorted rows of cfg.Combined to cfg.Sorted, one per line,
// and returns the number of rows.
func RunSort(ctx context.Context, cfg config.Boards, opts ...model.PipelineOption) (int, error) {
	input, err := lines.Open(cfg.Combined)
	if err != nil {
		return 0, err
	}
	defer input.Close()

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return 0, errors.Wrap(err, "unable to create pipeline")
	}

	rows, err := pipeline.AddRootStep(pipe, "read combined", lines.ReadLines(input))
	if err != nil {
		return 0, err
	}
	sorted, err := addNormalizeAndSort(pipe, rows, cfg.Workers)
	if err != nil {
		return 0, err
	}

	sink := &lines.FileSink{Path: cfg.Sorted, Format: lines.Terminated("\n")}
	err = pipeline.AddSinkFromChan(pipe, "write sorted", sorted, sink.Drain)
	if err != nil {
		return 0, err
	}

	err = pipe.Run()
	if err != nil {
		return 0, errors.Wrap(err, "unable to sort board list")
	}

	return sink.Count, nil
}
