// Package config resolves the solver configuration from command-line flags,
// CVRP_* environment variables and an optional YAML file.
//
// Precedence, highest first: explicitly set flag, environment variable,
// config file, flag default. Keys are the flag names; the environment
// variable of a key is CVRP_ followed by the key upper-cased with dashes
// turned into underscores (--output-dir → CVRP_OUTPUT_DIR).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "CVRP"

// Flag keys.
const (
	KeyConfig        = "config"
	KeyTimeout       = "timeout"
	KeyOutput        = "output"
	KeyOutputDir     = "output-dir"
	KeyFormat        = "format"
	KeySeed          = "seed"
	KeyMaxIterations = "max-iterations"
	KeyMatching      = "matching"
	KeyAcceptance    = "acceptance"
	KeyStagnation    = "stagnation"
	KeyPolish        = "polish"
	KeyJobs          = "jobs"
	KeyMetricsFile   = "metrics-file"
	KeyLogLevel      = "log-level"
)

// Accepted values of the enumerated keys.
const (
	MatchingBlossom = "blossom"
	MatchingExact   = "exact"

	AcceptanceRandomWalk = "random-walk"
	AcceptanceRestart    = "restart"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid value")

// LogLevels maps accepted --log-level values to logrus levels.
var LogLevels = map[string]logrus.Level{
	"debug": logrus.DebugLevel,
	"info":  logrus.InfoLevel,
	"warn":  logrus.WarnLevel,
	"error": logrus.ErrorLevel,
	"fatal": logrus.FatalLevel,
	"panic": logrus.PanicLevel,
}

// Config is the resolved solver configuration.
type Config struct {
	Inputs        []string      // positional instance paths
	Timeout       time.Duration // per-instance search budget
	Output        string        // solution path for a single input
	OutputDir     string        // solution directory for any number of inputs
	Format        string        // text | yaml
	Seed          int64
	MaxIterations int
	Matching      string // blossom | exact
	Acceptance    string // random-walk | restart
	Stagnation    int    // restart window for AcceptanceRestart
	Polish        bool
	Jobs          int
	MetricsFile   string
	LogLevel      logrus.Level
}

// NewFlagSet declares every flag with its default.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.StringP(KeyConfig, "c", "", "YAML config file")
	fs.Float64P(KeyTimeout, "t", 10, "search time limit per instance in seconds (0 disables it, needs --max-iterations)")
	fs.StringP(KeyOutput, "o", "", "solution file (single input only)")
	fs.String(KeyOutputDir, "", "directory receiving <instance>.sol for every input")
	fs.String(KeyFormat, "text", "solution file format [text, yaml]")
	fs.Int64(KeySeed, 0, "random seed (0 uses the fixed default)")
	fs.Int(KeyMaxIterations, 0, "search iteration cap (0 means unlimited)")
	fs.String(KeyMatching, MatchingBlossom, "matching algorithm [blossom, exact]")
	fs.String(KeyAcceptance, AcceptanceRandomWalk, "search acceptance [random-walk, restart]")
	fs.Int(KeyStagnation, 1000, "iterations without improvement before a restart")
	fs.Bool(KeyPolish, false, "2-opt every route of the final plan")
	fs.IntP(KeyJobs, "j", 1, "instances solved concurrently")
	fs.String(KeyMetricsFile, "", "write Prometheus metrics to this file on exit")
	fs.String(KeyLogLevel, "info", "log level [debug, info, warn, error, fatal, panic]")

	return fs
}

// Load parses args (without the program name) and resolves the configuration.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet("cvrp")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("config: bind flags: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	level, ok := LogLevels[strings.ToLower(v.GetString(KeyLogLevel))]
	if !ok {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalid, v.GetString(KeyLogLevel))
	}

	cfg := &Config{
		Inputs:        fs.Args(),
		Timeout:       time.Duration(v.GetFloat64(KeyTimeout) * float64(time.Second)),
		Output:        v.GetString(KeyOutput),
		OutputDir:     v.GetString(KeyOutputDir),
		Format:        strings.ToLower(v.GetString(KeyFormat)),
		Seed:          v.GetInt64(KeySeed),
		MaxIterations: v.GetInt(KeyMaxIterations),
		Matching:      strings.ToLower(v.GetString(KeyMatching)),
		Acceptance:    strings.ToLower(v.GetString(KeyAcceptance)),
		Stagnation:    v.GetInt(KeyStagnation),
		Polish:        v.GetBool(KeyPolish),
		Jobs:          v.GetInt(KeyJobs),
		MetricsFile:   v.GetString(KeyMetricsFile),
		LogLevel:      level,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks value ranges and combinations.
func (c *Config) Validate() error {
	switch {
	case len(c.Inputs) == 0:
		return fmt.Errorf("%w: no instance file given", ErrInvalid)
	case c.Timeout < 0:
		return fmt.Errorf("%w: negative timeout %v", ErrInvalid, c.Timeout)
	case c.Timeout == 0 && c.MaxIterations <= 0:
		return fmt.Errorf("%w: --timeout 0 requires --max-iterations", ErrInvalid)
	case c.MaxIterations < 0:
		return fmt.Errorf("%w: negative iteration cap %d", ErrInvalid, c.MaxIterations)
	case c.Output != "" && len(c.Inputs) > 1:
		return fmt.Errorf("%w: --output accepts a single input, use --output-dir", ErrInvalid)
	case c.Output != "" && c.OutputDir != "":
		return fmt.Errorf("%w: --output and --output-dir are exclusive", ErrInvalid)
	case c.Format != "text" && c.Format != "yaml":
		return fmt.Errorf("%w: format %q", ErrInvalid, c.Format)
	case c.Matching != MatchingBlossom && c.Matching != MatchingExact:
		return fmt.Errorf("%w: matching %q", ErrInvalid, c.Matching)
	case c.Acceptance != AcceptanceRandomWalk && c.Acceptance != AcceptanceRestart:
		return fmt.Errorf("%w: acceptance %q", ErrInvalid, c.Acceptance)
	case c.Acceptance == AcceptanceRestart && c.Stagnation < 1:
		return fmt.Errorf("%w: stagnation window %d", ErrInvalid, c.Stagnation)
	case c.Jobs < 1:
		return fmt.Errorf("%w: jobs %d", ErrInvalid, c.Jobs)
	}

	return nil
}
