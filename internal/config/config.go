package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/replace-tokens/internal/input"
)

const (
	defaultEncoding            = input.EncodingAuto
	defaultFollowSymbolicLinks = "true"
	envPrefix                  = "INPUT_"
)

// Config aggregates the run inputs resolved from multiple sources.
// Precedence: CLI flags > Environment variables > YAML config > Defaults
type Config struct {
	Target              string
	Encoding            input.FileEncoding
	FollowSymbolicLinks bool
	TokenPrefix         string
	TokenSuffix         string
	Variables           []string
	VariablesJSON       string
	VariablesSecretJSON string
	Concurrency         int
	RateLimitFPS        float64
	RateLimitBurst      int
}

// yamlConfig represents the YAML configuration file structure.
type yamlConfig struct {
	Target              string        `yaml:"target"`
	Encoding            string        `yaml:"encoding"`
	FollowSymbolicLinks *bool         `yaml:"follow_symbolic_links"`
	TokenPrefix         *string       `yaml:"token_prefix"`
	TokenSuffix         *string       `yaml:"token_suffix"`
	Variables           yamlLines     `yaml:"variables"`
	VariablesJSON       string        `yaml:"variables_json"`
	VariablesSecretJSON string        `yaml:"variables_secret_json"`
	Concurrency         *int          `yaml:"concurrency"`
	RateLimit           yamlRateLimit `yaml:"rate_limit"`
}

// yamlRateLimit represents the rate limit section in YAML.
type yamlRateLimit struct {
	FilesPerSecond *float64 `yaml:"files_per_second"`
	Burst          *int     `yaml:"burst"`
}

// yamlLines accepts either a block string or a list of strings.
type yamlLines string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *yamlLines) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*l = yamlLines(node.Value)
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*l = yamlLines(strings.Join(items, "\n"))
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// CLIOverrides holds command-line flag overrides. Nil fields are not set.
type CLIOverrides struct {
	ConfigFile          string
	Target              *string
	Encoding            *string
	FollowSymbolicLinks *string
	TokenPrefix         *string
	TokenSuffix         *string
	Variables           []string
	VariablesJSON       *string
	VariablesSecretJSON *string
	Concurrency         *int
	RateLimitFPS        *float64
	RateLimitBurst      *int
}

// Loader resolves a Config on demand.
type Loader struct {
	Overrides *CLIOverrides
}

// Load resolves the configuration using the loader's overrides.
func (l Loader) Load() (Config, error) {
	return Load(l.Overrides)
}

// raw holds every input as the untyped string a user supplied.
type raw map[input.Name]string

// Load extracts configuration from multiple sources with precedence:
// CLI flags > Environment variables > YAML config > Defaults
func Load(overrides *CLIOverrides) (Config, error) {
	values := defaultValues()

	// Load from YAML file if specified
	if overrides != nil && overrides.ConfigFile != "" {
		yamlCfg, err := loadFromFile(overrides.ConfigFile)
		if err != nil {
			return Config{}, fmt.Errorf("load YAML config: %w", err)
		}
		applyYAMLConfig(values, yamlCfg)
	}

	// Apply environment variables (override YAML)
	applyEnvConfig(values)

	// Apply CLI overrides (highest precedence)
	if overrides != nil {
		applyCLIOverrides(values, overrides)
	}

	return build(values)
}

// defaultValues returns the raw default of every input that has one.
func defaultValues() raw {
	return raw{
		input.Encoding:            string(defaultEncoding),
		input.FollowSymbolicLinks: defaultFollowSymbolicLinks,
		input.Concurrency:         "0",
		input.RateLimitFPS:        "0",
		input.RateLimitBurst:      "0",
	}
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*yamlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	return &yamlCfg, nil
}

// applyYAMLConfig applies YAML configuration to the raw values.
func applyYAMLConfig(values raw, yamlCfg *yamlConfig) {
	setIfNotEmpty(values, input.Target, yamlCfg.Target)
	setIfNotEmpty(values, input.Encoding, yamlCfg.Encoding)
	setIfNotEmpty(values, input.Variables, string(yamlCfg.Variables))
	setIfNotEmpty(values, input.VariablesJSON, yamlCfg.VariablesJSON)
	setIfNotEmpty(values, input.VariablesSecretJSON, yamlCfg.VariablesSecretJSON)

	if yamlCfg.FollowSymbolicLinks != nil {
		values[input.FollowSymbolicLinks] = strconv.FormatBool(*yamlCfg.FollowSymbolicLinks)
	}
	if yamlCfg.TokenPrefix != nil {
		values[input.TokenPrefix] = *yamlCfg.TokenPrefix
	}
	if yamlCfg.TokenSuffix != nil {
		values[input.TokenSuffix] = *yamlCfg.TokenSuffix
	}
	if yamlCfg.Concurrency != nil {
		values[input.Concurrency] = strconv.Itoa(*yamlCfg.Concurrency)
	}
	if yamlCfg.RateLimit.FilesPerSecond != nil {
		values[input.RateLimitFPS] = strconv.FormatFloat(*yamlCfg.RateLimit.FilesPerSecond, 'f', -1, 64)
	}
	if yamlCfg.RateLimit.Burst != nil {
		values[input.RateLimitBurst] = strconv.Itoa(*yamlCfg.RateLimit.Burst)
	}
}

// applyEnvConfig applies INPUT_* environment variables.
func applyEnvConfig(values raw) {
	for _, name := range allInputs {
		for _, key := range envKeys(name) {
			if v := os.Getenv(key); strings.TrimSpace(v) != "" {
				values[name] = v
				break
			}
		}
	}
}

// applyCLIOverrides applies command-line flag overrides.
func applyCLIOverrides(values raw, overrides *CLIOverrides) {
	setIfNotNil(values, input.Target, overrides.Target)
	setIfNotNil(values, input.Encoding, overrides.Encoding)
	setIfNotNil(values, input.FollowSymbolicLinks, overrides.FollowSymbolicLinks)
	setIfNotNil(values, input.TokenPrefix, overrides.TokenPrefix)
	setIfNotNil(values, input.TokenSuffix, overrides.TokenSuffix)
	setIfNotNil(values, input.VariablesJSON, overrides.VariablesJSON)
	setIfNotNil(values, input.VariablesSecretJSON, overrides.VariablesSecretJSON)

	if len(overrides.Variables) > 0 {
		values[input.Variables] = strings.Join(overrides.Variables, "\n")
	}
	if overrides.Concurrency != nil {
		values[input.Concurrency] = strconv.Itoa(*overrides.Concurrency)
	}
	if overrides.RateLimitFPS != nil {
		values[input.RateLimitFPS] = strconv.FormatFloat(*overrides.RateLimitFPS, 'f', -1, 64)
	}
	if overrides.RateLimitBurst != nil {
		values[input.RateLimitBurst] = strconv.Itoa(*overrides.RateLimitBurst)
	}
}

// build converts raw values into a validated Config.
func build(values raw) (Config, error) {
	cfg := Config{
		Target:              values.get(input.Target),
		TokenPrefix:         values.get(input.TokenPrefix),
		TokenSuffix:         values.get(input.TokenSuffix),
		Variables:           values.lines(input.Variables),
		VariablesJSON:       values.get(input.VariablesJSON),
		VariablesSecretJSON: values.get(input.VariablesSecretJSON),
	}

	if cfg.Target == "" {
		return Config{}, input.NewError(input.Target, "input required and not supplied")
	}

	enc, ok := input.ParseFileEncoding(values.get(input.Encoding))
	if !ok {
		return Config{}, input.NewError(input.Encoding,
			fmt.Sprintf("unsupported encoding %q, expected one of auto, ascii, utf-8, utf-16le", values.get(input.Encoding)))
	}
	cfg.Encoding = enc

	follow, err := parseBool(input.FollowSymbolicLinks, values.get(input.FollowSymbolicLinks))
	if err != nil {
		return Config{}, err
	}
	cfg.FollowSymbolicLinks = follow

	if cfg.Concurrency, err = parseNonNegativeInt(input.Concurrency, values.get(input.Concurrency)); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = parseNonNegativeInt(input.RateLimitBurst, values.get(input.RateLimitBurst)); err != nil {
		return Config{}, err
	}

	fps, err := strconv.ParseFloat(values.get(input.RateLimitFPS), 64)
	if err != nil || fps < 0 {
		return Config{}, input.NewError(input.RateLimitFPS, "must be a number >= 0")
	}
	cfg.RateLimitFPS = fps

	return cfg, nil
}

// get returns the trimmed value of name.
func (r raw) get(name input.Name) string {
	return strings.TrimSpace(r[name])
}

// lines splits a multi-line value, dropping empty lines and trimming the rest.
func (r raw) lines(name input.Name) []string {
	var out []string
	for _, line := range strings.Split(r.get(name), "\n") {
		if line == "" {
			continue
		}
		out = append(out, strings.TrimSpace(line))
	}
	return out
}

var trueValues = []string{"true", "True", "TRUE"}
var falseValues = []string{"false", "False", "FALSE"}

// parseBool accepts the boolean spellings of the YAML 1.2 core schema.
func parseBool(name input.Name, value string) (bool, error) {
	for _, v := range trueValues {
		if value == v {
			return true, nil
		}
	}
	for _, v := range falseValues {
		if value == v {
			return false, nil
		}
	}
	return false, input.NewError(name, `value does not meet YAML 1.2 "Core Schema" specification, expected true|True|TRUE|false|False|FALSE`)
}

func parseNonNegativeInt(name input.Name, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, input.NewError(name, "must be an integer >= 0")
	}
	return n, nil
}

var allInputs = []input.Name{
	input.Target,
	input.Encoding,
	input.FollowSymbolicLinks,
	input.TokenPrefix,
	input.TokenSuffix,
	input.Variables,
	input.VariablesJSON,
	input.VariablesSecretJSON,
	input.Concurrency,
	input.RateLimitFPS,
	input.RateLimitBurst,
}

// envKeys returns the environment variable names an input is read from:
// INPUT_TOKEN-PREFIX first, then INPUT_TOKEN_PREFIX.
func envKeys(name input.Name) []string {
	upper := strings.ToUpper(strings.ReplaceAll(string(name), " ", "_"))
	keys := []string{envPrefix + upper}
	if alt := strings.ReplaceAll(upper, "-", "_"); alt != upper {
		keys = append(keys, envPrefix+alt)
	}
	return keys
}

func setIfNotEmpty(values raw, name input.Name, value string) {
	if strings.TrimSpace(value) != "" {
		values[name] = value
	}
}

func setIfNotNil(values raw, name input.Name, value *string) {
	if value != nil {
		values[name] = *value
	}
}
