package wordlist

import (
	"context"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/internal/lines"
	"github.com/askiada/go-wosh/pkg/pipeline"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// MaxLength is the longest line, terminator included, that survives a crop.
const MaxLength = 10

// SortByLength returns a copy of list stably sorted by increasing length.
func SortByLength(list []string) []string {
	sorted := make([]string, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) < utf8.RuneCountInString(sorted[j])
	})

	return sorted
}

// CropIndex returns the index of the first line of sorted longer than MaxLength.
// When there is none, every line is kept and the index is len(sorted).
func CropIndex(sorted []string) int {
	for idx, line := range sorted {
		if utf8.RuneCountInString(line) > MaxLength {
			return idx
		}
	}

	return len(sorted)
}

// Crop sorts list by length and drops every line from the first one longer than MaxLength.
// Lengths include the line terminator, as lines are kept verbatim.
func Crop(list []string) ([]string, int) {
	sorted := SortByLength(list)
	idx := CropIndex(sorted)

	return sorted[:idx], idx
}

// RunCrop writes the cropped lines of cfg.Input to cfg.Output and returns the crop index.
// The index is also printed to report, when not nil, before any line is written.
func RunCrop(ctx context.Context, cfg config.Crop, report io.Writer, opts ...model.PipelineOption) (int, error) {
	input, err := lines.Open(cfg.Input)
	if err != nil {
		return 0, err
	}
	defer input.Close()

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return 0, errors.Wrap(err, "unable to create pipeline")
	}

	all, err := pipeline.AddRootStep(pipe, "read lines", lines.ReadLines(input))
	if err != nil {
		return 0, err
	}

	cropIdx := 0
	cropped, err := pipeline.AddStepFromChan(pipe, "crop by length", all, func(ctx context.Context, input <-chan string, output chan<- string) error {
		collected := []string{}
		for line := range input {
			collected = append(collected, line)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		var kept []string
		kept, cropIdx = Crop(collected)
		if report != nil {
			_, err := fmt.Fprintln(report, cropIdx)
			if err != nil {
				return errors.Wrap(err, "unable to report crop index")
			}
		}
		for _, line := range kept {
			err := pipeline.Push(ctx, output, line)
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	sink := &lines.FileSink{Path: cfg.Output, Format: lines.Verbatim}
	err = pipeline.AddSinkFromChan(pipe, "write cropped", cropped, sink.Drain)
	if err != nil {
		return 0, err
	}

	err = pipe.Run()
	if err != nil {
		return 0, errors.Wrap(err, "unable to crop word list")
	}

	return cropIdx, nil
}
