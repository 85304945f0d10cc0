package pipeline

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// Splitter copies every entry of its input to each of its branches.
type Splitter[I any] struct {
	mu            sync.Mutex
	currIdx       int
	mainStep      *model.Step[I]
	splittedSteps []*model.Step[I]
	bufferSize    int
	Total         int
}

// Get returns the next unclaimed branch. Every branch must be consumed, otherwise the splitter blocks.
func (s *Splitter[I]) Get() (*model.Step[I], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currIdx >= len(s.splittedSteps) {
		return nil, false
	}
	step := s.splittedSteps[s.currIdx]
	s.currIdx++

	return step, true
}

func prepareSplitter[I any](pipe *Pipeline, input *model.Step[I], splitter *Splitter[I]) error {
	for _, opt := range pipe.opts {
		err := opt.PrepareSplitter(details(input), splitter.mainStep.Details)
		if err != nil {
			return errors.Wrap(err, "unable to run before splitter function")
		}
	}

	return nil
}

// AddSplitter adds a splitter with total branches.
func AddSplitter[I any](pipe *Pipeline, name string, input *model.Step[I], total int, opts ...SplitterOption[I]) (*Splitter[I], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}
	if input == nil {
		return nil, ErrInputMustBeSet
	}
	if total <= 0 {
		return nil, ErrSplitterTotal
	}
	splitter := &Splitter[I]{
		Total: total,
		mainStep: &model.Step[I]{
			Details: &model.StepInfo{
				Type:       model.SplitterStepType,
				Name:       name,
				Concurrent: 1,
			},
		},
	}
	for _, opt := range opts {
		opt(splitter)
	}
	if splitter.bufferSize == 0 {
		splitter.bufferSize = 1
	}
	splitter.mainStep.Details.BufferSize = splitter.bufferSize

	splitter.splittedSteps = make([]*model.Step[I], total)
	for i := range total {
		splitter.splittedSteps[i] = &model.Step[I]{
			Details: splitter.mainStep.Details,
			Output:  make(chan I, splitter.bufferSize),
		}
	}

	err := prepareSplitter(pipe, input, splitter)
	if err != nil {
		return nil, err
	}

	errC := make(chan error, 1)
	decoratedError := newErrorChan(name, errC)

	go func() {
		defer func() {
			for _, step := range splitter.splittedSteps {
				close(step.Output)
			}
			close(errC)
		}()

		for {
			startIter := time.Now()
			select {
			case <-pipe.ctx.Done():
				errC <- pipe.ctx.Err()

				return
			case entry, ok := <-input.Output:
				if !ok {
					return
				}
				startFn := time.Now()
				for _, step := range splitter.splittedSteps {
					select {
					case <-pipe.ctx.Done():
						errC <- pipe.ctx.Err()

						return
					case step.Output <- entry:
					}
				}
				endFn := time.Since(startFn)
				endIter := time.Since(startIter) - endFn

				for _, opt := range pipe.opts {
					err := opt.OnSplitterOutput(input.Details, splitter.mainStep.Details, endIter, endFn)
					if err != nil {
						errC <- errors.Wrap(err, "unable to run on splitter output function")

						return
					}
				}
			}
		}
	}()
	pipe.errcList.add(decoratedError)

	return splitter, nil
}
