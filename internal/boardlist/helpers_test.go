package boardlist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-wosh/internal/config"
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

func boardsConfig(t *testing.T, boards, wordlists string) config.Boards {
	t.Helper()

	dir := t.TempDir()

	return config.Boards{
		NoWordlist:   writeFile(t, dir, "boards_nowordlist", boards),
		OnlyWordlist: writeFile(t, dir, "boards_onlywordlist", wordlists),
		Combined:     filepath.Join(dir, "combined"),
		Sorted:       filepath.Join(dir, "sorted"),
		Workers:      3,
	}
}
