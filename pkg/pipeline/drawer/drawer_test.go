package drawer_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-wosh/pkg/pipeline"
	"github.com/askiada/go-wosh/pkg/pipeline/drawer"
	"github.com/askiada/go-wosh/pkg/pipeline/measure"
)

func TestDOTDrawer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.gv")
	d := drawer.NewDOTDrawer(path)

	require.NoError(t, d.AddStep("read"))
	require.NoError(t, d.AddStep("read"), "adding a step twice is allowed")
	require.NoError(t, d.AddStep("write"))
	require.NoError(t, d.AddLink("read", "write"))
	require.NoError(t, d.AddLink("read", "write"), "adding a link twice is allowed")
	require.Error(t, d.AddLink("read", "missing"))
	require.NoError(t, d.Draw())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "strict digraph")
	assert.Contains(t, string(data), `"read" -> "write"`)
	assert.Contains(t, string(data), `rankdir="LR"`)
}

func TestDOTDrawerReportsFileErrors(t *testing.T) {
	t.Parallel()

	d := drawer.NewDOTDrawer(filepath.Join(t.TempDir(), "missing", "pipeline.gv"))
	require.NoError(t, d.AddStep("read"))
	require.Error(t, d.Draw())

	path := filepath.Join(t.TempDir(), "pipeline.gv")
	require.NoError(t, os.WriteFile(path, []byte("previous drawing, longer than the new one"), 0o600))
	d = drawer.NewDOTDrawer(path)
	require.NoError(t, d.AddStep("read"))
	require.NoError(t, d.Draw())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "previous drawing")
}

func TestPipelineDrawer(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.gv")
	msr := measure.NewDefaultMeasure()
	pipe, err := pipeline.New(context.Background(),
		measure.PipelineMeasure(msr),
		drawer.PipelineDrawer(drawer.NewDOTDrawer(path), msr),
	)
	require.NoError(t, err)

	left, err := pipeline.AddRootStep(pipe, "left", func(ctx context.Context, out chan<- string) error {
		return pipeline.Push(ctx, out, "a")
	})
	require.NoError(t, err)
	right, err := pipeline.AddRootStep(pipe, "right", func(ctx context.Context, out chan<- string) error {
		return pipeline.Push(ctx, out, "b")
	})
	require.NoError(t, err)
	joined, err := pipeline.AddZip(pipe, "join", left, right, func(_ context.Context, l, r string) (string, error) {
		return l + r, nil
	})
	require.NoError(t, err)
	err = pipeline.AddSink(pipe, "write", joined, func(context.Context, string) error { return nil })
	require.NoError(t, err)

	require.NoError(t, pipe.Run())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	drawing := string(data)
	for _, edge := range []string{
		`"start" -> "left"`,
		`"start" -> "right"`,
		`"left" -> "join"`,
		`"right" -> "join"`,
		`"join" -> "write"`,
		`"write" -> "end"`,
	} {
		assert.Contains(t, drawing, edge)
	}
}
