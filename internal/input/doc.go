// Package input holds the names, encodings and error type shared by every stage
// that turns raw configuration into rewritten files.
package input
