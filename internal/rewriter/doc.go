// Package rewriter applies compiled tokens to target files in place, one
// goroutine per file, reading and writing each file in its resolved encoding.
package rewriter
