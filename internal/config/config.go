package config

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/leengari/sillyql/internal/planner"
)

// Environment variables that provide flag defaults
const (
	EnvQuiet    = "SILLYQL_QUIET"
	EnvLogLevel = "SILLYQL_LOG_LEVEL"
	EnvSeqURL   = "SILLYQL_SEQ_URL"
	EnvServer   = "SILLYQL_SERVER"
	EnvAddr     = "SILLYQL_ADDR"
	EnvNoIndex  = "SILLYQL_NO_INDEX"
	EnvJoin     = "SILLYQL_JOIN"
)

// Config is the process configuration
type Config struct {
	Quiet         bool
	Help          bool
	LogLevel      string
	SeqURL        string // empty disables log shipping
	Server        bool
	Addr          string
	UseIndexes    bool
	JoinAlgorithm string
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		LogLevel:      "warn",
		Addr:          ":4444",
		UseIndexes:    true,
		JoinAlgorithm: string(planner.JoinAlgorithmHash),
	}
}

// Load parses args (without the program name) on top of environment
// defaults. Usage text goes to out.
func Load(args []string, getenv func(string) string, out io.Writer) (*Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	cfg := Default()
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet("sillyql", flag.ContinueOnError)
	fs.SetOutput(out)

	noIndex := !cfg.UseIndexes
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Suppress table output; counts and messages are still printed")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Same as -q")
	fs.BoolVar(&cfg.Help, "h", false, "Show usage and exit")
	fs.BoolVar(&cfg.Help, "help", false, "Same as -h")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&cfg.SeqURL, "seq-url", cfg.SeqURL, "Ship logs to this Seq server")
	fs.BoolVar(&cfg.Server, "server", cfg.Server, "Serve the HTTP interface instead of the REPL")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address in server mode")
	fs.BoolVar(&noIndex, "no-index", noIndex, "Ignore indexes; every scan is a full scan")
	fs.StringVar(&cfg.JoinAlgorithm, "join", cfg.JoinAlgorithm, "Join fallback without an index: hash or nested_loop")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	cfg.UseIndexes = !noIndex

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	var err error
	if c.Quiet, err = envBool(getenv, EnvQuiet, c.Quiet); err != nil {
		return err
	}
	if c.Server, err = envBool(getenv, EnvServer, c.Server); err != nil {
		return err
	}
	noIndex, err := envBool(getenv, EnvNoIndex, !c.UseIndexes)
	if err != nil {
		return err
	}
	c.UseIndexes = !noIndex

	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvSeqURL); v != "" {
		c.SeqURL = v
	}
	if v := getenv(EnvAddr); v != "" {
		c.Addr = v
	}
	if v := getenv(EnvJoin); v != "" {
		c.JoinAlgorithm = v
	}
	return nil
}

func envBool(getenv func(string) string, key string, def bool) (bool, error) {
	v := getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

// Validate rejects unknown log levels and join algorithms
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := planner.ParseJoinAlgorithm(c.JoinAlgorithm); err != nil {
		return err
	}
	if c.Server && c.Addr == "" {
		return fmt.Errorf("server mode needs a listen address")
	}
	return nil
}

// Level returns the configured slog level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return level, nil
}

// Execution converts the config into planner execution parameters
func (c *Config) Execution() *planner.ExecutionConfig {
	algo, err := planner.ParseJoinAlgorithm(c.JoinAlgorithm)
	if err != nil {
		algo = planner.JoinAlgorithmHash
	}
	return &planner.ExecutionConfig{
		UseIndexes:    c.UseIndexes,
		JoinAlgorithm: algo,
	}
}
