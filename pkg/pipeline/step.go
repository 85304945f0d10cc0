package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// transformFn is the common shape of one-to-one and filter steps: keep reports whether out is forwarded.
type transformFn[I, O any] func(ctx context.Context, in I) (out O, keep bool, err error)

func sequentialTransform[I, O any](ctx context.Context, pipe *Pipeline, goIdx int, input *model.Step[I], output *model.Step[O], fn transformFn[I, O]) error {
outer:
	for {
		start := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d:", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				break outer
			}
			startFn := time.Now()
			out, keep, err := fn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d:", goIdx)
			}
			endFn := time.Since(startFn)
			if !keep {
				continue
			}

			// check the context again so that no worker keeps feeding a cancelled pipeline
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "go routine %d:", goIdx)
			case output.Output <- out:
				for _, opt := range pipe.opts {
					err := opt.OnStepOutput(input.Details, output.Details, time.Since(start)-endFn, endFn)
					if err != nil {
						return errors.Wrap(err, "unable to run on step output function")
					}
				}
			}
		}
	}

	return nil
}

func transform[I, O any](ctx context.Context, pipe *Pipeline, input *model.Step[I], output *model.Step[O], fn transformFn[I, O]) error {
	if output.Details.Concurrent <= 1 {
		return sequentialTransform(ctx, pipe, 0, input, output, fn)
	}

	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(output.Details.Concurrent)
	// each worker stops as soon as one of them fails
	for goIdx := range output.Details.Concurrent {
		errGrp.Go(func() error {
			return sequentialTransform(dCtx, pipe, goIdx, input, output, fn)
		})
	}

	return errGrp.Wait()
}

func prepareStep[I, O any](pipe *Pipeline, name string, input *model.Step[I], opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.NormalStepType,
			Name:       name,
			Concurrent: 1,
		},
	}
	for _, opt := range opts {
		opt(step)
	}
	if step.Details.Concurrent < 1 {
		step.Details.Concurrent = 1
	}
	step.Output = make(chan O, step.Details.BufferSize)

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(details(input), step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	return step, nil
}

func addStep[I, O any](pipe *Pipeline, name string, input *model.Step[I], step *model.Step[O], stepToStepFn func(ctx context.Context, input *model.Step[I], output *model.Step[O]) error) *model.Step[O] {
	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	go func() {
		defer func() {
			close(errC)
			if !step.KeepOpen {
				close(step.Output)
			}
		}()
		err := stepToStepFn(pipe.ctx, input, step)
		if err != nil {
			errC <- err
		}
	}()
	pipe.errcList.add(decoratedError)

	return step
}

// AddStepOneToOne adds a step pushing oneToOneFn(x) for every input x.
func AddStepOneToOne[I, O any](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, name, input, step, func(ctx context.Context, in *model.Step[I], out *model.Step[O]) error {
		return transform(ctx, pipe, in, out, func(ctx context.Context, x I) (O, bool, error) {
			o, err := oneToOneFn(ctx, x)

			return o, true, err
		})
	}), nil
}

// AddStepFilter adds a step forwarding only the inputs for which keepFn returns true.
func AddStepFilter[I any](pipe *Pipeline, name string, input *model.Step[I], keepFn func(context.Context, I) (bool, error), opts ...StepOption[I]) (*model.Step[I], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, name, input, step, func(ctx context.Context, in *model.Step[I], out *model.Step[I]) error {
		return transform(ctx, pipe, in, out, func(ctx context.Context, x I) (I, bool, error) {
			keep, err := keepFn(ctx, x)

			return x, keep, err
		})
	}), nil
}

// AddStepFromChan hands the whole input channel to stepFn. It suits steps that need every input before emitting,
// like sorting. With StepConcurrency, stepFn runs that many times on the shared channels.
func AddStepFromChan[I, O any](pipe *Pipeline, name string, input *model.Step[I], stepFn func(ctx context.Context, input <-chan I, output chan<- O) error, opts ...StepOption[O]) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, name, input, step, func(ctx context.Context, in *model.Step[I], out *model.Step[O]) error {
		if out.Details.Concurrent <= 1 {
			return stepFn(ctx, in.Output, out.Output)
		}
		errGrp, dCtx := errgroup.WithContext(ctx)
		for range out.Details.Concurrent {
			errGrp.Go(func() error {
				return stepFn(dCtx, in.Output, out.Output)
			})
		}

		return errGrp.Wait()
	}), nil
}
