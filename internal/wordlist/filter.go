package wordlist

import (
	"context"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/internal/lines"
	"github.com/askiada/go-wosh/pkg/pipeline"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// MinLength is the length a word must exceed to be kept.
const MinLength = 3

// KeepWord reports whether word is long enough to stay in the list.
func KeepWord(word string) bool {
	return word != "" && utf8.RuneCountInString(word) > MinLength
}

// TrimList returns the words KeepWord accepts, in their original order.
func TrimList(words []string) []string {
	trimmed := []string{}
	for _, word := range words {
		if KeepWord(word) {
			trimmed = append(trimmed, word)
		}
	}

	return trimmed
}

// RunFilter writes to cfg.Output the words of cfg.Input that KeepWord accepts, joined by '\n' with no trailing
// newline, and returns how many were written.
func RunFilter(ctx context.Context, cfg config.Filter, opts ...model.PipelineOption) (int, error) {
	input, err := lines.Open(cfg.Input)
	if err != nil {
		return 0, err
	}
	defer input.Close()

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return 0, errors.Wrap(err, "unable to create pipeline")
	}

	words, err := pipeline.AddRootStep(pipe, "read words", lines.ReadWords(input))
	if err != nil {
		return 0, err
	}

	if cfg.NFC {
		words, err = pipeline.AddStepOneToOne(pipe, "compose nfc", words, func(_ context.Context, word string) (string, error) {
			return norm.NFC.String(word), nil
		})
		if err != nil {
			return 0, err
		}
	}

	kept, err := pipeline.AddStepFilter(pipe, "keep long words", words, func(_ context.Context, word string) (bool, error) {
		return KeepWord(word), nil
	})
	if err != nil {
		return 0, err
	}

	sink := &lines.FileSink{Path: cfg.Output, Format: lines.Joined("\n")}
	err = pipeline.AddSinkFromChan(pipe, "write wordlist", kept, sink.Drain)
	if err != nil {
		return 0, err
	}

	err = pipe.Run()
	if err != nil {
		return 0, errors.Wrap(err, "unable to filter word list")
	}

	return sink.Count, nil
}
