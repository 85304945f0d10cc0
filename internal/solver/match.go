package solver

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Wildcard stands for any one letter in a query.
const Wildcard = '.'

// DefaultIgnore is the ignore string used when none is given.
const DefaultIgnore = "_"

// ErrNoLetters is returned for a query without letters.
var ErrNoLetters = errors.New("no letters given")

// Query describes the letters at hand.
type Query struct {
	Letters string
	// Ignore excludes boards whose letters contain it. Empty means no board is excluded.
	Ignore string
	// Spaces, when positive, excludes boards with more spaces.
	Spaces int
}

// Validate rejects queries no board can match.
func (q Query) Validate() error {
	if q.Letters == "" {
		return ErrNoLetters
	}
	if q.Spaces < 0 {
		return errors.Errorf("spaces must not be negative, got %d", q.Spaces)
	}

	return nil
}

// counts is a multiset of lower case letters.
type counts map[rune]int

func countLetters(letters string) (counts, int) {
	letterCounts := counts{}
	wildcards := 0
	for _, r := range letters {
		if r == Wildcard {
			wildcards++

			continue
		}
		letterCounts[unicode.ToLower(r)]++
	}

	return letterCounts, wildcards
}

// consume takes every letter of word from c, falling back to wildcards. c is modified.
func (c counts) consume(word string, wildcards int) bool {
	for _, r := range word {
		r = unicode.ToLower(r)
		if c[r] > 0 {
			c[r]--

			continue
		}
		if wildcards == 0 {
			return false
		}
		wildcards--
	}

	return true
}

func (c counts) clone() counts {
	cp := make(counts, len(c))
	for r, n := range c {
		cp[r] = n
	}

	return cp
}

// Match reports whether the board can be played with the query letters.
func (q Query) Match(board Board) bool {
	letterCounts, wildcards := countLetters(q.Letters)

	return q.match(board, letterCounts, wildcards)
}

func (q Query) match(board Board, letterCounts counts, wildcards int) bool {
	if q.Spaces > 0 && q.Spaces < board.Spaces {
		return false
	}
	if q.Ignore != "" && strings.Contains(board.Letters, q.Ignore) {
		return false
	}

	return letterCounts.clone().consume(board.Letters, wildcards)
}

// Hints returns the board letters missing from the query, in board order.
func (q Query) Hints(board Board) []string {
	return missing(board.Letters, strings.ToLower(q.Letters), 0)
}

// Fakes returns the query letters missing from the board, in query order. Wildcards are never fake.
func (q Query) Fakes(board Board) []string {
	return missing(q.Letters, strings.ToLower(board.Letters), Wildcard)
}

func missing(letters, from string, skip rune) []string {
	found := []string{}
	for _, r := range letters {
		if r == skip || strings.ContainsRune(from, unicode.ToLower(r)) {
			continue
		}
		found = append(found, string(r))
	}

	return found
}

// Suggest returns the sublist words as long as unknown that can be built from letters, in sublist order.
func Suggest(unknown, letters string, sublist []string) []string {
	letterCounts, _ := countLetters(letters)
	size := utf8.RuneCountInString(unknown)

	found := []string{}
	for _, word := range sublist {
		if utf8.RuneCountInString(word) != size {
			continue
		}
		if letterCounts.clone().consume(word, 0) {
			found = append(found, word)
		}
	}

	return found
}
