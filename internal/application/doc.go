// Package application coordinates a replacement run. It loads the
// configuration, expands the target patterns, merges the variables and hands
// the compiled tokens to the rewriter, turning any failure into a single
// error log entry so the main package only maps the outcome to an exit code.
package application
