// Package boardlist builds the sorted board list from its two halves.
//
// The halves are joined by line position, not by key: line i of one file goes with line i of the other, and
// both files must have the same number of lines. Rows are then keyed by the sorted letters of their first field,
// so that boards made of the same letters collate together.
//
// Rows are split on every comma. Quoted fields are not supported.
package boardlist
