package solver

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/pkg/pipeline"
	"github.com/askiada/go-wosh/pkg/pipeline/model"
)

// Unknown marks a letter missing from a board word.
const Unknown = '?'

// SublistFunc returns the sub list. Solve calls it at most once, and only if a matching board has unknown words.
type SublistFunc func() ([]string, error)

// WordLine is a board word as it is printed, numbered from the board's word count down to 1.
type WordLine struct {
	Number      int
	Word        string
	Suggestions []string
	// SeeAlso is the number of the earlier word of the same length holding the suggestions, or 0.
	SeeAlso int
}

// Result is a matching board.
type Result struct {
	Board Board
	Words []WordLine
	Hints []string
	Fakes []string
}

// Solver matches a board list against a query.
type Solver struct {
	// Threads is the number of boards matched concurrently.
	Threads int
	Sublist SublistFunc
}

type indexedBoard struct {
	idx   int
	board Board
}

func readBoards(reader *BoardReader) func(ctx context.Context, out chan<- indexedBoard) error {
	return func(ctx context.Context, out chan<- indexedBoard) error {
		for idx := 0; ; idx++ {
			board, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			err = pipeline.Push(ctx, out, indexedBoard{idx: idx, board: board})
			if err != nil {
				return err
			}
		}
	}
}

// inOrder restores board list order after concurrent matching.
func inOrder(ctx context.Context, input <-chan indexedBoard, output chan<- Board) error {
	matched := []indexedBoard{}
	for entry := range input {
		matched = append(matched, entry)
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].idx < matched[j].idx })
	for _, entry := range matched {
		err := pipeline.Push(ctx, output, entry.board)
		if err != nil {
			return err
		}
	}

	return nil
}

// Describe numbers the board words and completes unknown ones. Each unknown length is suggested once,
// later words of that length refer back to the first.
func Describe(q Query, board Board, sublist SublistFunc) (Result, error) {
	res := Result{
		Board: board,
		Hints: q.Hints(board),
		Fakes: q.Fakes(board),
	}

	suggested := map[int]int{}
	for j, word := range board.Words {
		line := WordLine{Number: len(board.Words) - j, Word: word}
		if strings.ContainsRune(word, Unknown) {
			size := utf8.RuneCountInString(word)
			if number, ok := suggested[size]; ok {
				line.SeeAlso = number
			} else {
				list, err := sublist()
				if err != nil {
					return Result{}, errors.Wrap(err, "unable to load sub list")
				}
				line.Suggestions = Suggest(word, board.Letters, list)
				suggested[size] = line.Number
			}
		}
		res.Words = append(res.Words, line)
	}

	return res, nil
}

// Solve returns the boards of the board list read from boards that match q, in board list order.
func (s *Solver) Solve(ctx context.Context, q Query, boards io.Reader, opts ...model.PipelineOption) ([]Result, error) {
	err := q.Validate()
	if err != nil {
		return nil, err
	}
	reader, err := NewBoardReader(boards)
	if err != nil {
		return nil, err
	}

	sublist := s.Sublist
	if sublist == nil {
		sublist = func() ([]string, error) { return nil, nil }
	}
	sublist = sync.OnceValues(sublist)

	pipe, err := pipeline.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pipeline")
	}

	read, err := pipeline.AddRootStep(pipe, "read boards", readBoards(reader))
	if err != nil {
		return nil, err
	}

	letterCounts, wildcards := countLetters(q.Letters)
	matched, err := pipeline.AddStepFilter(pipe, "match", read, func(_ context.Context, entry indexedBoard) (bool, error) {
		return q.match(entry.board, letterCounts, wildcards), nil
	}, pipeline.StepConcurrency[indexedBoard](s.Threads))
	if err != nil {
		return nil, err
	}

	ordered, err := pipeline.AddStepFromChan(pipe, "order", matched, inOrder)
	if err != nil {
		return nil, err
	}

	described, err := pipeline.AddStepOneToOne(pipe, "describe", ordered, func(_ context.Context, board Board) (Result, error) {
		return Describe(q, board, sublist)
	})
	if err != nil {
		return nil, err
	}

	results := []Result{}
	err = pipeline.AddSink(pipe, "collect", described, func(_ context.Context, res Result) error {
		results = append(results, res)

		return nil
	})
	if err != nil {
		return nil, err
	}

	err = pipe.Run()
	if err != nil {
		return nil, errors.Wrap(err, "unable to solve")
	}

	return results, nil
}
