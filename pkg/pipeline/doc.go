// Package pipeline provides a pipeline for processing data.
//
// A pipeline is a graph of steps connected by channels. A root step produces values, intermediate steps
// transform, filter, pair or copy them, and sinks consume them. Each step runs in its own goroutine, and a step
// configured with StepConcurrency runs several workers reading from the same input channel.
//
// The pipeline stops on the first error: Run cancels the context shared by every step, waits until all of them
// have returned and reports that first error. A single-worker step keeps the order of its input.
//
// Options implementing model.PipelineOption observe every step as it is prepared and every value as it flows,
// which is how timing metrics, logging and graph drawing are plugged in.
package pipeline
