package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config holds the server settings. Every field can be set by flag, with an
// environment variable as the fallback default.
type Config struct {
	Addr         string        `json:"addr"`
	AllowOrigins string        `json:"allow_origins"`
	Depth        int           `json:"depth"`       // engine search depth for games
	MaxDepth     int           `json:"max_depth"`   // upper bound for client-chosen depths
	ThinkDelay   time.Duration `json:"think_delay"` // pause before the engine replies
	LogLevel     string        `json:"log_level"`
	LogPretty    bool          `json:"log_pretty"`
}

func DefaultConfig() Config {
	return Config{
		Addr:         ":3000",
		AllowOrigins: "http://localhost:5173",
		Depth:        2,
		MaxDepth:     4,
		ThinkDelay:   500 * time.Millisecond,
		LogLevel:     "info",
	}
}

// Load parses args (without the program name) on top of the environment
// and the defaults.
func Load(args []string) (Config, error) {
	def := DefaultConfig()
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	var cfg Config
	fs.StringVar(&cfg.Addr, "addr", getenv("ROLLERBALL_ADDR", def.Addr), "listen address")
	fs.StringVar(&cfg.AllowOrigins, "origins", getenv("ROLLERBALL_ORIGINS", def.AllowOrigins), "comma-separated CORS origins")
	fs.IntVar(&cfg.Depth, "depth", getenvInt("ROLLERBALL_DEPTH", def.Depth), "engine search depth")
	fs.IntVar(&cfg.MaxDepth, "max-depth", getenvInt("ROLLERBALL_MAX_DEPTH", def.MaxDepth), "largest depth a client may request")
	fs.DurationVar(&cfg.ThinkDelay, "think-delay", getenvDuration("ROLLERBALL_THINK_DELAY", def.ThinkDelay), "delay before the engine replies")
	fs.StringVar(&cfg.LogLevel, "log-level", getenv("ROLLERBALL_LOG_LEVEL", def.LogLevel), "trace, debug, info, warn or error")
	fs.BoolVar(&cfg.LogPretty, "log-pretty", getenb("ROLLERBALL_LOG_PRETTY", def.LogPretty), "human readable logs")
	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(err, "parse flags")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("listen address is empty")
	}
	if c.Depth < 1 {
		return errors.Errorf("depth %d must be at least 1", c.Depth)
	}
	if c.MaxDepth < c.Depth {
		return errors.Errorf("max depth %d is below depth %d", c.MaxDepth, c.Depth)
	}
	if c.ThinkDelay < 0 {
		return errors.Errorf("negative think delay %s", c.ThinkDelay)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return nil
}

// Origins splits AllowOrigins into the list the websocket upgrader checks.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Level returns the parsed log level. Validate has already checked it.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}
