package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// Pipeline is a pipeline of steps.
type Pipeline struct {
	ctx       context.Context
	cancel    context.CancelFunc
	errcList  *errorChans
	opts      []model.PipelineOption
	startTime time.Time
	goFn      []func(ctx context.Context)
}

// New creates a new pipeline bound to ctx.
func New(ctx context.Context, opts ...model.PipelineOption) (*Pipeline, error) {
	dCtx, cancel := context.WithCancel(ctx)
	pipe := &Pipeline{
		ctx:       dCtx,
		cancel:    cancel,
		errcList:  &errorChans{},
		startTime: time.Now(),
		opts:      opts,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			cancel()

			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// waitForPipeline waits for results from all error channels.
// The first error cancels the pipeline, the remaining ones are drained so that every step has returned
// when waitForPipeline does.
func waitForPipeline(cancel context.CancelFunc, errs ...*errorChan) error {
	var first error

	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err

			cancel()
		}
	}

	return first
}

// Run starts the deferred steps and waits for the pipeline to finish.
func (p *Pipeline) Run() error {
	defer p.cancel()

	for _, fn := range p.goFn {
		go fn(p.ctx)
	}

	err := waitForPipeline(p.cancel, p.errcList.all()...)
	if err != nil {
		return err
	}

	return p.finishRun()
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

// Push sends value to output unless ctx is done first.
// Root step functions use it so that a cancelled pipeline never blocks them.
func Push[O any](ctx context.Context, output chan<- O, value O) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case output <- value:
		return nil
	}
}

func details[O any](step *model.Step[O]) *model.StepInfo {
	if step.Details == nil {
		step.Details = &model.StepInfo{}
	}

	return step.Details
}
