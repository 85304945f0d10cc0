package boardlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-wosh/internal/boardlist"
)

func TestRunBoards(t *testing.T) {
	t.Parallel()

	cfg := boardsConfig(t, "ba,2\nab,1\n", ",ab ba\n,ab\n")

	counts, err := boardlist.RunBoards(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, boardlist.Counts{Combined: 2, Sorted: 2}, counts)
	assert.Equal(t, "ba,2,ab ba\nab,1,ab\n", readFile(t, cfg.Combined))
	assert.Equal(t, "ab,1,ab\nab,2,ab ba\n", readFile(t, cfg.Sorted))
}

func TestRunBoardsMatchesJoinThenSort(t *testing.T) {
	t.Parallel()

	boards := "tsa,3,3\ncat,3,2\nodg,3,1\n"
	wordlists := ",sat\n,act cat\n,dog god\n"

	oneShot := boardsConfig(t, boards, wordlists)
	_, err := boardlist.RunBoards(context.Background(), oneShot)
	require.NoError(t, err)

	twoSteps := boardsConfig(t, boards, wordlists)
	_, err = boardlist.RunJoin(context.Background(), twoSteps)
	require.NoError(t, err)
	_, err = boardlist.RunSort(context.Background(), twoSteps)
	require.NoError(t, err)

	assert.Equal(t, readFile(t, twoSteps.Combined), readFile(t, oneShot.Combined))
	assert.Equal(t, readFile(t, twoSteps.Sorted), readFile(t, oneShot.Sorted))
	assert.Equal(t, "act,3,2,act cat\nast,3,3,sat\ndgo,3,1,dog god\n", readFile(t, oneShot.Sorted))
}

func TestRunBoardsLineCountMismatch(t *testing.T) {
	t.Parallel()

	cfg := boardsConfig(t, "a\nb\n", "1\n")

	_, err := boardlist.RunBoards(context.Background(), cfg)
	require.ErrorIs(t, err, boardlist.ErrLineCountMismatch)
}
