package model

type stepType string

const (
	RootStepType     stepType = "root"
	NormalStepType   stepType = "step"
	SplitterStepType stepType = "splitter"
	SinkStepType     stepType = "sink"
	ZipStepType      stepType = "zip"
)

// StepInfo describes a step independently of the type of values it carries.
type StepInfo struct {
	Type       stepType
	Name       string
	Concurrent int
	BufferSize int
}

var (
	StartStep = &Step[any]{Details: &StepInfo{Name: "start"}}
	EndStep   = &Step[any]{Details: &StepInfo{Name: "end"}}
)

// Step is the output side of a pipeline stage. Downstream stages read from Output.
type Step[O any] struct {
	Output   chan O
	KeepOpen bool
	Details  *StepInfo
}
