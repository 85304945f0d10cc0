// Package logging provides a pipeline option tracing the lifecycle of every step with zap.
package logging

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

type pipelineLogger struct {
	logger *zap.Logger

	mu      sync.Mutex
	outputs map[string]int64
}

func (pl *pipelineLogger) New() error {
	pl.logger.Debug("pipeline created")

	return nil
}

func (pl *pipelineLogger) prepared(kind string, parents []*model.StepInfo, step *model.StepInfo) {
	names := make([]string, len(parents))
	for i, parent := range parents {
		names[i] = parent.Name
	}
	pl.logger.Debug("step prepared",
		zap.String("type", kind),
		zap.String("step", step.Name),
		zap.Strings("parents", names),
		zap.Int("concurrent", step.Concurrent),
	)
}

func (pl *pipelineLogger) count(step *model.StepInfo) {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.outputs[step.Name]++
}

func (pl *pipelineLogger) PrepareStep(parentStep, step *model.StepInfo) error {
	pl.prepared(string(step.Type), []*model.StepInfo{parentStep}, step)

	return nil
}

func (pl *pipelineLogger) OnStepOutput(_, step *model.StepInfo, _, _ time.Duration) error {
	pl.count(step)

	return nil
}

func (pl *pipelineLogger) PrepareSplitter(parentStep, splitterStep *model.StepInfo) error {
	pl.prepared(string(model.SplitterStepType), []*model.StepInfo{parentStep}, splitterStep)

	return nil
}

func (pl *pipelineLogger) OnSplitterOutput(_, splitterStep *model.StepInfo, _, _ time.Duration) error {
	pl.count(splitterStep)

	return nil
}

func (pl *pipelineLogger) PrepareZip(parentSteps []*model.StepInfo, step *model.StepInfo) error {
	pl.prepared(string(model.ZipStepType), parentSteps, step)

	return nil
}

// OnZipOutput fires once per parent, only the first parent counts the pair.
func (pl *pipelineLogger) OnZipOutput(_, _ *model.StepInfo, _ time.Duration) error {
	return nil
}

func (pl *pipelineLogger) PrepareSink(parentStep, step *model.StepInfo) error {
	pl.prepared(string(model.SinkStepType), []*model.StepInfo{parentStep}, step)

	return nil
}

func (pl *pipelineLogger) OnSinkOutput(_, step *model.StepInfo, _, _ time.Duration) error {
	pl.count(step)

	return nil
}

func (pl *pipelineLogger) AfterSink(step *model.StepInfo, totalDuration time.Duration) error {
	pl.mu.Lock()
	consumed := pl.outputs[step.Name]
	pl.mu.Unlock()

	pl.logger.Debug("sink done",
		zap.String("step", step.Name),
		zap.Int64("consumed", consumed),
		zap.Duration("elapsed", totalDuration),
	)

	return nil
}

func (pl *pipelineLogger) Finish() error {
	pl.mu.Lock()
	defer pl.mu.Unlock()

	fields := make([]zap.Field, 0, len(pl.outputs))
	for name, total := range pl.outputs {
		fields = append(fields, zap.Int64(name, total))
	}
	pl.logger.Debug("pipeline finished", zap.Dict("outputs", fields...))

	return nil
}

// PipelineLogger logs every step preparation and sink completion at debug level.
// Sinks fed through AddSinkFromChan do not report their entries, their consumed count is 0.
func PipelineLogger(logger *zap.Logger) model.PipelineOption {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &pipelineLogger{
		logger:  logger,
		outputs: make(map[string]int64),
	}
}
