// Package model holds the data structures shared by the pipeline package and its options:
// the step descriptors flowing through a pipeline and the hook interface every pipeline option implements.
package model
