package pipeline

import (
	"context"
	"testing"
)

// createInputChan sends 0 to total-1 and closes the channel, unless ctx is done first.
func createInputChan(t *testing.T, ctx context.Context, total int) chan int {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		defer close(inputChan)

		for i := range total {
			select {
			case <-ctx.Done():
				return
			case inputChan <- i:
			}
		}
	}()

	return inputChan
}

// createInputChanWithCancel cancels the pipeline once offset values are sent. The channel is never closed,
// so that readers only stop on cancellation.
func createInputChanWithCancel(t *testing.T, total int, offset int, cancel context.CancelFunc) chan int {
	t.Helper()

	inputChan := make(chan int)

	go func() {
		for i := range total {
			if i == offset {
				cancel()

				return
			}

			inputChan <- i
		}
	}()

	return inputChan
}

func processOutputChan(t *testing.T, output <-chan int) []int {
	t.Helper()

	res := []int{}

	for out := range output {
		res = append(res, out)
	}

	return res
}
