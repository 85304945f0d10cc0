// Package wordlist shapes newline-delimited word lists: it drops words that are too short and crops lists
// to words that are not too long. Lengths are counted in Unicode code points, never in bytes.
package wordlist
