package boardlist

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/internal/config"
	"github.com/askiada/go-wosh/internal/lines"
	"github.com/askiada/go-wosh/pkg/pipeline"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// ErrLineCountMismatch is returned when the two halves do not have the same number of lines.
var ErrLineCountMismatch = pipeline.ErrUnevenInputs

// JoinLine concatenates the trimmed left line with the right line, terminator included.
func JoinLine(left, right string) string {
	return strings.TrimSpace(left) + right
}

type inputs struct {
	noWordlist, onlyWordlist *os.File
}

func openInputs(cfg config.Boards) (*inputs, error) {
	noWordlist, err := lines.Open(cfg.NoWordlist)
	if err != nil {
		return nil, err
	}
	onlyWordlist, err := lines.Open(cfg.OnlyWordlist)
	if err != nil {
		noWordlist.Close()

		return nil, err
	}

	return &inputs{noWordlist: noWordlist, onlyWordlist: onlyWordlist}, nil
}

func (in *inputs) Close() {
	in.noWordlist.Close()
	in.onlyWordlist.Close()
}

// addJoin adds the steps reading both halves and joining them line by line.
func addJoin(pipe *pipeline.Pipeline, in *inputs) (*model.Step[string], error) {
	left, err := pipeline.AddRootStep(pipe, "read boards", lines.ReadLines(in.noWordlist))
	if err != nil {
		return nil, err
	}
	right, err := pipeline.AddRootStep(pipe, "read wordlists", lines.ReadLines(in.onlyWordlist))
	if err != nil {
		return nil, err
	}

	return pipeline.AddZip(pipe, "join", left, right, func(_ context.Context, l, r string) (string, error) {
		return JoinLine(l, r), nil
	})
}

// RunJoin writes cfg.Combined from cfg.NoWordlist and cfg.OnlyWordlist and returns the number of rows.
// Rows are written as they are joined, so a line count mismatch leaves the rows joined so far.
func RunJoin(ctx context.Context, cfg config.Boards, opts ...model.PipelineOption) (int, error) {
	in, err := openInputs(cfg)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return 0, errors.Wrap(err, "unable to create pipeline")
	}

	joined, err := addJoin(pipe, in)
	if err != nil {
		return 0, err
	}

	sink := &lines.FileSink{Path: cfg.Combined, Format: lines.Verbatim}
	err = pipeline.AddSinkFromChan(pipe, "write combined", joined, sink.Drain)
	if err != nil {
		return 0, err
	}

	err = pipe.Run()
	if err != nil {
		return 0, errors.Wrap(err, "unable to join board lists")
	}

	return sink.Count, nil
}
