package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

func prepareSink[I any](pipe *Pipeline, name string, input *model.Step[I]) (*model.StepInfo, error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}

	sinkInfo := &model.StepInfo{
		Type:       model.SinkStepType,
		Name:       name,
		Concurrent: 1,
	}
	for _, opt := range pipe.opts {
		err := opt.PrepareSink(details(input), sinkInfo)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before sink function")
		}
	}

	return sinkInfo, nil
}

func (p *Pipeline) afterSink(sinkInfo *model.StepInfo) error {
	for _, opt := range p.opts {
		err := opt.AfterSink(sinkInfo, time.Since(p.startTime))
		if err != nil {
			return errors.Wrap(err, "unable to run after sink function")
		}
	}

	return nil
}

// AddSink consumes the input one entry at a time. The first error returned by sinkFn stops the sink.
func AddSink[I any](pipe *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	sinkInfo, err := prepareSink(pipe, name, input)
	if err != nil {
		return err
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)
	go func() {
		defer close(errC)
	outer:
		for {
			startInputChan := time.Now()
			select {
			case <-pipe.ctx.Done():
				errC <- pipe.ctx.Err()

				return
			case in, ok := <-input.Output:
				if !ok {
					break outer
				}
				endInputChan := time.Since(startInputChan)

				startFn := time.Now()
				err := sinkFn(pipe.ctx, in)
				if err != nil {
					errC <- err

					return
				}
				endFn := time.Since(startFn)
				for _, opt := range pipe.opts {
					err := opt.OnSinkOutput(input.Details, sinkInfo, endInputChan, endFn)
					if err != nil {
						errC <- errors.Wrap(err, "unable to run on sink output function")

						return
					}
				}
			}
		}

		err := pipe.afterSink(sinkInfo)
		if err != nil {
			errC <- err
		}
	}()
	pipe.errcList.add(decoratedError)

	return nil
}

// AddSinkFromChan hands the whole input channel to stepFn.
// stepFn must keep reading until the channel is closed or ctx is done.
func AddSinkFromChan[I any](pipe *Pipeline, name string, input *model.Step[I], stepFn func(ctx context.Context, input <-chan I) error) error {
	sinkInfo, err := prepareSink(pipe, name, input)
	if err != nil {
		return err
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)
	go func() {
		defer close(errC)

		err := stepFn(pipe.ctx, input.Output)
		if err != nil {
			errC <- err

			return
		}

		err = pipe.afterSink(sinkInfo)
		if err != nil {
			errC <- err
		}
	}()
	pipe.errcList.add(decoratedError)

	return nil
}
