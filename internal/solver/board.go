package solver

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-wosh/internal/lines"
)

// ErrMissingColumn is returned when the board list header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

var columns = []string{"wordlen", "longest", "letters", "spaces", "wordlist"}

// Board is a row of the board list.
type Board struct {
	WordLen int
	Longest string
	Letters string
	Spaces  int
	Words   []string
}

// BoardReader reads boards from a board list.
type BoardReader struct {
	reader *csv.Reader
	index  map[string]int
	line   int
}

// NewBoardReader reads the header of r.
func NewBoardReader(r io.Reader) (*BoardReader, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.Wrap(ErrMissingColumn, "empty board list")
	}
	if err != nil {
		return nil, errors.Wrap(err, "unable to read board list header")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range columns {
		if _, ok := index[name]; !ok {
			return nil, errors.Wrap(ErrMissingColumn, name)
		}
	}

	return &BoardReader{reader: reader, index: index, line: 1}, nil
}

func (br *BoardReader) field(record []string, name string) string {
	idx := br.index[name]
	if idx >= len(record) {
		return ""
	}

	return strings.TrimSpace(record[idx])
}

// Read returns the next board, or io.EOF once the list is exhausted.
func (br *BoardReader) Read() (Board, error) {
	record, err := br.reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Board{}, io.EOF
		}

		return Board{}, errors.Wrap(err, "unable to read board list")
	}
	br.line++

	wordLen, err := strconv.Atoi(br.field(record, "wordlen"))
	if err != nil {
		return Board{}, errors.Wrapf(err, "line %d: wordlen", br.line)
	}
	spaces, err := strconv.Atoi(br.field(record, "spaces"))
	if err != nil {
		return Board{}, errors.Wrapf(err, "line %d: spaces", br.line)
	}

	board := Board{
		WordLen: wordLen,
		Longest: br.field(record, "longest"),
		Letters: br.field(record, "letters"),
		Spaces:  spaces,
	}
	if start := br.index["wordlist"]; start < len(record) {
		for _, field := range record[start:] {
			board.Words = append(board.Words, strings.Fields(field)...)
		}
	}

	return board, nil
}

// ReadSublist returns every line of r.
func ReadSublist(r io.Reader) ([]string, error) {
	sublist := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Split(lines.ScanNewlines)
	for scanner.Scan() {
		sublist = append(sublist, scanner.Text())
	}

	return sublist, errors.Wrap(scanner.Err(), "unable to read sub list")
}
