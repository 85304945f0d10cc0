package cli_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-wosh/internal/cli"
	"github.com/askiada/go-wosh/internal/fetch"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}

func TestExplicitConfigMustExist(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeFile(t, dir, "words", "elephant\n")
	out := filepath.Join(dir, "out")

	cmd := cli.NewRootCmd()
	stdout := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", filepath.Join(dir, "absent.yaml"), "filter", "--in", in, "--out", out})
	require.Error(t, cmd.ExecuteContext(context.Background()))
	assert.Empty(t, stdout.String())
	assert.NoFileExists(t, out)
}

func TestCommands(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := writeFile(t, dir, "wosh.yaml", "boards:\n  workers: 2\n")

	tcs := map[string]struct {
		files  map[string]string
		args   func(in func(string) string) []string
		stdout string
		want   map[string]string
	}{
		"filter": {
			files: map[string]string{"words": "cat\ndog\nelephant\n\nox"},
			args: func(in func(string) string) []string {
				return []string{"filter", "--in", in("words"), "--out", in("filtered")}
			},
			stdout: "new wordlist length: 1\n",
			want:   map[string]string{"filtered": "elephant"},
		},
		"crop": {
			files: map[string]string{"words": "elephants\nhippopotamus\ncat\n"},
			args: func(in func(string) string) []string {
				return []string{"crop", "--in", in("words"), "--out", in("cropped")}
			},
			stdout: "2\n",
			want:   map[string]string{"cropped": "cat\nelephants\n"},
		},
		"join": {
			files: map[string]string{"a": "ba,2\nab,1\n", "b": ",x\n,y\n"},
			args: func(in func(string) string) []string {
				return []string{"join", "--no-wl", in("a"), "--only-wl", in("b"), "--out", in("combined")}
			},
			want: map[string]string{"combined": "ba,2,x\nab,1,y\n"},
		},
		"sort": {
			files: map[string]string{"combined": "ba,2\nab,1\n"},
			args: func(in func(string) string) []string {
				return []string{"sort", "--in", in("combined"), "--out", in("sorted"), "--workers", "3"}
			},
			want: map[string]string{"sorted": "ab,1\nab,2\n"},
		},
		"boards": {
			files: map[string]string{"a": "ba,2\nab,1\n", "b": ",x\n,y\n"},
			args: func(in func(string) string) []string {
				return []string{
					"boards", "--no-wl", in("a"), "--only-wl", in("b"), "--combined", in("combined"), "--sorted", in("sorted"),
				}
			},
			want: map[string]string{"combined": "ba,2,x\nab,1,y\n", "sorted": "ab,1,y\nab,2,x\n"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			for file, content := range tc.files {
				writeFile(t, dir, file, content)
			}
			in := func(name string) string { return filepath.Join(dir, name) }

			cmd := cli.NewRootCmd()
			stdout := &bytes.Buffer{}
			cmd.SetOut(stdout)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(append([]string{"--config", configPath}, tc.args(in)...))
			require.NoError(t, cmd.ExecuteContext(context.Background()))

			assert.Equal(t, tc.stdout, stdout.String())
			for file, content := range tc.want {
				assert.Equal(t, content, readFile(t, filepath.Join(dir, file)))
			}
		})
	}
}

func TestGraphFlag(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := writeFile(t, dir, "wosh.yaml", "")
	in := writeFile(t, dir, "words", "elephant\ncat\n")
	graph := filepath.Join(dir, "pipeline.gv")

	cmd := cli.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "--graph", graph, "filter", "--in", in, "--out", filepath.Join(dir, "out")})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	drawing := readFile(t, graph)
	assert.Contains(t, drawing, "digraph")
	assert.Contains(t, drawing, "keep long words")
}

func TestMissingInputFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := writeFile(t, dir, "wosh.yaml", "")
	out := filepath.Join(dir, "out")

	cmd := cli.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "crop", "--in", filepath.Join(dir, "missing"), "--out", out})
	require.Error(t, cmd.ExecuteContext(context.Background()))
	assert.NoFileExists(t, out)
}

const boardList = "wordlen,longest,letters,spaces,wordlist\n3,cats,tacs,4,cat ?at cats\n3,god,god,3,dog god\n"

func TestSolveCommand(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/sublist" {
			_, _ = w.Write([]byte("sat\nbat\n"))

			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	dir := t.TempDir()
	configPath := writeFile(t, dir, "wosh.yaml", "solve:\n  sublist_url: "+server.URL+"/sublist\n")
	wordlist := writeFile(t, dir, "wordlist", boardList)
	sublist := filepath.Join(dir, "lists", "sublist")

	cmd := cli.NewRootCmd()
	stdout := &bytes.Buffer{}
	prompt := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(prompt)
	cmd.SetIn(strings.NewReader("y\n"))
	cmd.SetArgs([]string{"--config", configPath, "solve", "-l", "stac", "-w", wordlist, "-s", sublist, "-t", "3"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, prompt.String(), "Continue? [Y/n]")
	assert.Equal(t, "sat\nbat\n", readFile(t, sublist))
	assert.Contains(t, stdout.String(), "[03]: cat\n")
	assert.Contains(t, stdout.String(), "[02]: ?at =>\n    [01| sat ]\n")
	assert.Contains(t, stdout.String(), "=> [^]: 'cats'")
	assert.Contains(t, stdout.String(), "[RESULT 001/001]")
	assert.NotContains(t, stdout.String(), "'god'")
}

func TestSolveDeclinedDownload(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := writeFile(t, dir, "wosh.yaml", "")

	cmd := cli.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader("n\n"))
	cmd.SetArgs([]string{"--config", configPath, "solve", "-l", "abc", "-w", filepath.Join(dir, "wordlist")})
	err := cmd.ExecuteContext(context.Background())
	require.ErrorIs(t, err, fetch.ErrDeclined)
	assert.NoFileExists(t, filepath.Join(dir, "wordlist"))
}

func TestSolveRequiresLetters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := writeFile(t, dir, "wosh.yaml", "")

	cmd := cli.NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", configPath, "solve"})
	require.Error(t, cmd.ExecuteContext(context.Background()))
}
