package config

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agbru/aliquot/internal/aliquot"
	apperrors "github.com/agbru/aliquot/internal/errors"
)

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "ALIQUOT_"

// Default configuration values.
const (
	DefaultWorkers = 1
)

// AppConfig holds the full configuration of one invocation.
type AppConfig struct {
	// Seeds are the numbers to classify, in submission order.
	Seeds []uint64
	// Width is the numeric width sequences are computed at.
	Width aliquot.Width
	// MaxValue aborts a sequence as Unknown when a value exceeds it.
	// Zero means no threshold.
	MaxValue uint64
	// MaxSeqLen bounds the number of elements in a sequence.
	MaxSeqLen int
	// CacheCapacity bounds the shared memo cache in entries; 0 disables it.
	CacheCapacity int
	// Workers is the number of concurrent generations.
	Workers int
	// LengthsOnly prints only "seed length" per result.
	LengthsOnly bool
	// SumOnly computes aliquot sums instead of sequences.
	SumOnly bool
	// Verbose enables debug logging.
	Verbose bool
	// Quiet suppresses progress display.
	Quiet bool
	// MetricsAddr, when non-empty, serves Prometheus metrics on this address.
	MetricsAddr string
}

// ToGenerationConfig converts the application configuration into the core
// generation configuration.
func (c AppConfig) ToGenerationConfig() aliquot.Config {
	cfg := aliquot.NewConfig(c.Width, c.MaxValue, c.CacheCapacity)
	cfg.MaxSeqLen = c.MaxSeqLen
	return cfg
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for flags not set explicitly
// (priority: CLI flags > environment > defaults) and validating the result.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{
		Width:         aliquot.Width64,
		MaxSeqLen:     aliquot.DefaultMaxSeqLen,
		CacheCapacity: aliquot.DefaultCacheCapacity,
		Workers:       DefaultWorkers,
	}

	width := fs.Int("w", int(cfg.Width), "numeric width of sequence values (16, 32 or 64)")
	fs.Uint64Var(&cfg.MaxValue, "m", 0, "maximum value for a number in a sequence (0 = width maximum)")
	fs.IntVar(&cfg.MaxSeqLen, "n", cfg.MaxSeqLen, "maximum number of numbers in a sequence")
	fs.IntVar(&cfg.CacheCapacity, "c", cfg.CacheCapacity, "cache capacity in entries (0 disables the cache)")
	fs.IntVar(&cfg.Workers, "t", cfg.Workers, "number of worker goroutines")
	fs.BoolVar(&cfg.LengthsOnly, "l", false, "print only the lengths of the sequences")
	fs.BoolVar(&cfg.SumOnly, "s", false, "compute the aliquot sum instead of the aliquot sequence")
	fs.BoolVar(&cfg.Verbose, "v", false, "print debug messages")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress progress display")
	fs.StringVar(&cfg.MetricsAddr, "metrics", "", "serve Prometheus metrics on this address (e.g. :9090)")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options] NUMBER(s)\n", programName)
		fmt.Fprintf(errWriter, "Numbers may be single values, ranges (A-B) or comma-separated lists.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	cfg.Width = aliquot.Width(*width)

	applyEnvOverrides(&cfg, fs)

	seeds, err := ParseRanges(fs.Args())
	if err != nil {
		return AppConfig{}, err
	}
	cfg.Seeds = seeds

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate fails fast with a ConfigError on unusable parameter combinations.
func (c AppConfig) Validate() error {
	if !c.Width.Valid() {
		return apperrors.NewConfigError("unsupported numeric width %d (want 16, 32 or 64)", int(c.Width))
	}
	if c.Workers < 1 {
		return apperrors.NewConfigError("worker count must be at least 1, got %d", c.Workers)
	}
	if c.MaxSeqLen < 1 {
		return apperrors.NewConfigError("maximum sequence length must be at least 1, got %d", c.MaxSeqLen)
	}
	if c.CacheCapacity < 0 {
		return apperrors.NewConfigError("cache capacity must not be negative, got %d", c.CacheCapacity)
	}
	if len(c.Seeds) == 0 {
		return apperrors.NewConfigError("no numbers given")
	}
	return nil
}

// ParseRanges expands number and range arguments into an ordered seed list.
// Each argument is a comma-separated list of tokens; a token is either a
// single number or an inclusive range "A-B".
func ParseRanges(args []string) ([]uint64, error) {
	var seeds []uint64
	for _, arg := range args {
		for _, tok := range strings.Split(arg, ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			expanded, err := parseToken(tok)
			if err != nil {
				return nil, err
			}
			seeds = append(seeds, expanded...)
		}
	}
	return seeds, nil
}

// parseToken expands one "N" or "A-B" token.
func parseToken(tok string) ([]uint64, error) {
	pos := strings.IndexByte(tok, '-')
	if pos < 0 {
		n, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, apperrors.NewConfigError("invalid number %q", tok)
		}
		return []uint64{n}, nil
	}

	start, err := strconv.ParseUint(tok[:pos], 10, 64)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid range %q", tok)
	}
	end, err := strconv.ParseUint(tok[pos+1:], 10, 64)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid range %q", tok)
	}
	if end < start {
		return nil, apperrors.NewConfigError("invalid range %q: end before start", tok)
	}

	out := make([]uint64, 0, end-start+1)
	for n := start; n <= end; n++ {
		out = append(out, n)
	}
	return out, nil
}
