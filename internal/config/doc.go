// Package config resolves the raw run inputs from multiple sources (YAML file,
// INPUT_* environment variables, CLI flags) with precedence: CLI flags >
// Environment variables > YAML config > Defaults. Inputs are trimmed and
// validated the way a CI action runner would before reaching the rest of the
// application.
package config
