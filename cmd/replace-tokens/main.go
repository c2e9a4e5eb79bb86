package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"

	"github.com/eugenenazirov/replace-tokens/internal/application"
	"github.com/eugenenazirov/replace-tokens/internal/config"
	"github.com/eugenenazirov/replace-tokens/internal/finder"
	"github.com/eugenenazirov/replace-tokens/internal/logging"
)

// cliFlags holds the parsed command-line flags and whether each one was set.
type cliFlags struct {
	configFile string

	target              string
	encoding            string
	followSymbolicLinks string
	tokenPrefix         string
	tokenSuffix         string
	variables           []string
	variablesJSON       string
	variablesSecretJSON string
	concurrency         int
	rateLimitFPS        float64
	rateLimitBurst      int

	targetSet              bool
	encodingSet            bool
	followSymbolicLinksSet bool
	tokenPrefixSet         bool
	tokenSuffixSet         bool
	variablesJSONSet       bool
	variablesSecretJSONSet bool

	debug     bool
	logFormat string
}

func newCLI() (*kingpin.Application, *cliFlags) {
	f := &cliFlags{}
	app := kingpin.New("replace-tokens", "Replace delimiter-framed tokens in files with variable values")

	app.Flag("config", "Path to YAML configuration file").StringVar(&f.configFile)
	app.Flag("target", "Newline-separated glob patterns of files to rewrite (!pattern excludes)").
		IsSetByUser(&f.targetSet).StringVar(&f.target)
	app.Flag("encoding", "File encoding: auto, ascii, utf-8 or utf-16le").
		IsSetByUser(&f.encodingSet).StringVar(&f.encoding)
	app.Flag("follow-symbolic-links", "Follow symbolic links while expanding patterns (true|false)").
		IsSetByUser(&f.followSymbolicLinksSet).StringVar(&f.followSymbolicLinks)
	app.Flag("token-prefix", "Token opening delimiter").
		IsSetByUser(&f.tokenPrefixSet).StringVar(&f.tokenPrefix)
	app.Flag("token-suffix", "Token closing delimiter").
		IsSetByUser(&f.tokenSuffixSet).StringVar(&f.tokenSuffix)
	app.Flag("variable", "Variable as 'key: value' (repeatable); '--variable=- key: value' is also accepted").StringsVar(&f.variables)
	app.Flag("variables-json", "Variables as a JSON object").
		IsSetByUser(&f.variablesJSONSet).StringVar(&f.variablesJSON)
	app.Flag("variables-secret-json", "Secret variables as a JSON object").
		IsSetByUser(&f.variablesSecretJSONSet).StringVar(&f.variablesSecretJSON)
	app.Flag("concurrency", "Maximum files rewritten at once (set 0 for unbounded)").Default("-1").IntVar(&f.concurrency)
	app.Flag("rate-limit-fps", "Files started per second (set 0 to disable)").Default("-1").Float64Var(&f.rateLimitFPS)
	app.Flag("rate-limit-burst", "Burst capacity for the file rate limiter").Default("-1").IntVar(&f.rateLimitBurst)
	app.Flag("debug", "Enable debug logging").Envar("RUNNER_DEBUG").BoolVar(&f.debug)
	app.Flag("log-format", "Log format: console or json").Default(logging.FormatConsole).EnumVar(&f.logFormat, logging.FormatConsole, logging.FormatJSON)

	return app, f
}

// overrides converts the flags the user set into configuration overrides.
func (f *cliFlags) overrides() *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: f.configFile,
		Variables:  variableLines(f.variables),
	}

	if f.targetSet {
		overrides.Target = &f.target
	}
	if f.encodingSet {
		overrides.Encoding = &f.encoding
	}
	if f.followSymbolicLinksSet {
		overrides.FollowSymbolicLinks = &f.followSymbolicLinks
	}
	if f.tokenPrefixSet {
		overrides.TokenPrefix = &f.tokenPrefix
	}
	if f.tokenSuffixSet {
		overrides.TokenSuffix = &f.tokenSuffix
	}
	if f.variablesJSONSet {
		overrides.VariablesJSON = &f.variablesJSON
	}
	if f.variablesSecretJSONSet {
		overrides.VariablesSecretJSON = &f.variablesSecretJSON
	}

	if f.concurrency >= 0 {
		overrides.Concurrency = &f.concurrency
	}
	if f.rateLimitFPS >= 0 {
		overrides.RateLimitFPS = &f.rateLimitFPS
	}
	if f.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = &f.rateLimitBurst
	}

	return overrides
}

// variableLines turns --variable values into line-list entries. A value
// without the leading dash gets one, since kingpin reads a separate argument
// starting with "-" as a flag.
func variableLines(values []string) []string {
	lines := make([]string, 0, len(values))
	for _, v := range values {
		if !strings.HasPrefix(strings.TrimSpace(v), "-") {
			v = "- " + v
		}
		lines = append(lines, v)
	}
	return lines
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cli, flags := newCLI()
	if _, err := cli.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "%s: error: %v, try --help\n", cli.Name, err)
		return 1
	}

	logger, err := logging.New(logging.Options{Debug: flags.debug, Format: flags.logFormat})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	app := application.New(config.Loader{Overrides: flags.overrides()}, finder.New(), logger)

	return exitCode(app.Run(context.Background()))
}

func exitCode(outcome application.Outcome) int {
	if outcome == application.OutcomeFailed {
		return 1
	}
	return 0
}
