// Package solver finds the boards of a board list that can be played with a given set of letters.
//
// A board list is a CSV file with the header wordlen,longest,letters,spaces,wordlist. The wordlist column and
// any column after it hold the board's words separated by whitespace, with '?' standing for unknown letters.
// Unknown words are completed with suggestions taken from a sub list, one word per line.
package solver
