package pipeline_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-wosh/pkg/pipeline"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// count is a root step function pushing 0 to total-1.
func count(total int) func(ctx context.Context, out chan<- int) error {
	return func(ctx context.Context, out chan<- int) error {
		for i := range total {
			err := pipeline.Push(ctx, out, i)
			if err != nil {
				return err
			}
		}

		return nil
	}
}

// collect adds a sink gathering every entry of input. The result is valid once Run has returned.
func collect[I any](t *testing.T, pipe *pipeline.Pipeline, name string, input *model.Step[I]) *[]I {
	t.Helper()

	got := []I{}
	err := pipeline.AddSink(pipe, name, input, func(_ context.Context, entry I) error {
		got = append(got, entry)

		return nil
	})
	require.NoError(t, err)

	return &got
}

// recorder is a pipeline option counting the hooks it receives.
type recorder struct {
	mu    sync.Mutex
	calls map[string]int
	steps []string
	err   error
}

func newRecorder() *recorder {
	return &recorder{calls: map[string]int{}}
}

func (r *recorder) record(hook string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls[hook]++

	return r.err
}

func (r *recorder) prepared(hook string, step *model.StepInfo) error {
	r.mu.Lock()
	r.steps = append(r.steps, step.Name)
	r.mu.Unlock()

	return r.record(hook)
}

func (r *recorder) get(hook string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.calls[hook]
}

func (r *recorder) New() error { return r.record("New") }

func (r *recorder) PrepareStep(_, step *model.StepInfo) error { return r.prepared("PrepareStep", step) }

func (r *recorder) OnStepOutput(_, _ *model.StepInfo, _, _ time.Duration) error {
	return r.record("OnStepOutput")
}

func (r *recorder) PrepareSplitter(_, step *model.StepInfo) error {
	return r.prepared("PrepareSplitter", step)
}

func (r *recorder) OnSplitterOutput(_, _ *model.StepInfo, _, _ time.Duration) error {
	return r.record("OnSplitterOutput")
}

func (r *recorder) PrepareZip(_ []*model.StepInfo, step *model.StepInfo) error {
	return r.prepared("PrepareZip", step)
}

func (r *recorder) OnZipOutput(_, _ *model.StepInfo, _ time.Duration) error {
	return r.record("OnZipOutput")
}

func (r *recorder) PrepareSink(_, step *model.StepInfo) error { return r.prepared("PrepareSink", step) }

func (r *recorder) OnSinkOutput(_, _ *model.StepInfo, _, _ time.Duration) error {
	return r.record("OnSinkOutput")
}

func (r *recorder) AfterSink(_ *model.StepInfo, _ time.Duration) error { return r.record("AfterSink") }

func (r *recorder) Finish() error { return r.record("Finish") }

var _ model.PipelineOption = (*recorder)(nil)
