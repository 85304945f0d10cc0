package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

func prepareZip[O any](pipe *Pipeline, name string, parents []*model.StepInfo, opts ...StepOption[O]) (*model.Step[O], error) {
	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.ZipStepType,
			Name:       name,
			Concurrent: 1,
		},
	}
	for _, opt := range opts {
		opt(step)
	}
	step.Details.Concurrent = 1
	step.Output = make(chan O, step.Details.BufferSize)

	for _, opt := range pipe.opts {
		err := opt.PrepareZip(parents, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before zip function")
		}
	}

	return step, nil
}

// receive reads the next entry of input. ok is false once input is closed.
func receive[I any](ctx context.Context, input <-chan I) (entry I, ok bool, err error) {
	select {
	case <-ctx.Done():
		return entry, false, ctx.Err()
	case entry, ok = <-input:
		return entry, ok, nil
	}
}

func runZip[L, R, O any](ctx context.Context, pipe *Pipeline, left *model.Step[L], right *model.Step[R], output *model.Step[O], zipFn func(context.Context, L, R) (O, error)) error {
	for idx := 0; ; idx++ {
		startIter := time.Now()
		leftEntry, leftOk, err := receive(ctx, left.Output)
		if err != nil {
			return err
		}
		rightEntry, rightOk, err := receive(ctx, right.Output)
		if err != nil {
			return err
		}

		switch {
		case !leftOk && !rightOk:
			return nil
		case !leftOk:
			return errors.Wrapf(ErrUnevenInputs, "%s ended at entry %d", left.Details.Name, idx)
		case !rightOk:
			return errors.Wrapf(ErrUnevenInputs, "%s ended at entry %d", right.Details.Name, idx)
		}

		out, err := zipFn(ctx, leftEntry, rightEntry)
		if err != nil {
			return errors.Wrapf(err, "entry %d", idx)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case output.Output <- out:
			endIter := time.Since(startIter)
			for _, opt := range pipe.opts {
				for _, parent := range []*model.StepInfo{left.Details, right.Details} {
					err := opt.OnZipOutput(parent, output.Details, endIter)
					if err != nil {
						return errors.Wrap(err, "unable to run on zip output function")
					}
				}
			}
		}
	}
}

// AddZip pairs the entries of left and right by position and pushes zipFn(l, r).
// It fails with ErrUnevenInputs as soon as one input ends before the other. The zip starts when Run is called.
func AddZip[L, R, O any](pipe *Pipeline, name string, left *model.Step[L], right *model.Step[R], zipFn func(context.Context, L, R) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if left == nil || right == nil {
		return nil, ErrInputMustBeSet
	}

	output, err := prepareZip(pipe, name, []*model.StepInfo{details(left), details(right)}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to prepare zip")
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	pipe.goFn = append(pipe.goFn, func(ctx context.Context) {
		defer func() {
			close(output.Output)
			close(errC)
		}()
		err := runZip(ctx, pipe, left, right, output, zipFn)
		if err != nil {
			errC <- err
		}
	})
	pipe.errcList.add(decoratedError)

	return output, nil
}
