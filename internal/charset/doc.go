// Package charset decides which byte encoding a target file is read and
// written with, and converts between those bytes and text.
package charset
