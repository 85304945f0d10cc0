package boardlist

import (
	"context"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/internal/lines"
	"github.com/askiada/go-wosh/pkg/pipeline"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// Counts reports how many rows each output received.
type Counts struct {
	Combined int
	Sorted   int
}

// RunBoards joins both halves and sorts the result in a single pass: joined rows are written to cfg.Combined
// and, at the same time, normalized and sorted into cfg.Sorted.
func RunBoards(ctx context.Context, cfg config.Boards, opts ...model.PipelineOption) (Counts, error) {
	in, err := openInputs(cfg)
	if err != nil {
		return Counts{}, err
	}
	defer in.Close()

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return Counts{}, errors.Wrap(err, "unable to create pipeline")
	}

	joined, err := addJoin(pipe, in)
	if err != nil {
		return Counts{}, err
	}

	splitter, err := pipeline.AddSplitter(pipe, "tee", joined, 2, pipeline.SplitterBufferSize[string](cfg.Workers))
	if err != nil {
		return Counts{}, err
	}
	toCombined, _ := splitter.Get()
	toSort, _ := splitter.Get()

	combined := &lines.FileSink{Path: cfg.Combined, Format: lines.Verbatim}
	err = pipeline.AddSinkFromChan(pipe, "write combined", toCombined, combined.Drain)
	if err != nil {
		return Counts{}, err
	}

	sorted, err := addNormalizeAndSort(pipe, toSort, cfg.Workers)
	if err != nil {
		return Counts{}, err
	}
	sortedSink := &lines.FileSink{Path: cfg.Sorted, Format: lines.Terminated("\n")}
	err = pipeline.AddSinkFromChan(pipe, "write sorted", sorted, sortedSink.Drain)
	if err != nil {
		return Counts{}, err
	}

	err = pipe.Run()
	if err != nil {
		return Counts{}, errors.Wrap(err, "unable to build board list")
	}

	return Counts{Combined: combined.Count, Sorted: sortedSink.Count}, nil
}
