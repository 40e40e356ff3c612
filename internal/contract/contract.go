// Package contract provides interfaces and shared utilities for the
// protopair CLI's internal architecture.
package contract

import (
	"context"
	"runtime"

	"github.com/huangsam/protopair/schema"
)

// Default values for configuration.
const (
	DefaultProtoExt    = ".proto"
	DefaultResultLimit = 0 // emit every qualifying pair
	MaxResultLimit     = 100000
	DefaultPrecision   = 4
	MaxPrecision       = 10
)

// DefaultWorkers is the default number of concurrent repository workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a mining run.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPaths []string // Absolute paths to the Git repositories to mine
	ProtoExt  string   // Recognized proto-file suffix, e.g. ".proto"

	Anchor schema.AnchorPolicy // How proto files anchor pairs (each/merged)

	MinSupport    float64 // Drop pairs below this support (0 keeps all)
	MinConfidence float64 // Drop pairs below this confidence (0 keeps all)
	MinLift       float64 // Drop pairs below this lift (0 keeps all)

	ResultLimit int      // Maximum pairs to emit per repository (0 = all)
	MaxPairs    int      // Check mode: qualifying pairs tolerated per repo
	Workers     int      // Number of repositories mined concurrently
	Excludes    []string // Path prefixes/suffixes/patterns dropped before counting

	Precision  int               // Decimal digits for numeric columns
	Output     schema.OutputMode // Output format
	OutputFile string            // Optional path to write output to
	UseColors  bool              // Enable colored labels in table output
	Width      int               // Terminal width override (0 = auto-detect)

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	ResultsBackend   schema.DatabaseBackend
	ResultsDBConnect string // Please use env var as this is plaintext
}

// Clone returns a shallow copy of the config with its own slices, so MCP
// handlers can override fields per request without racing the base config.
func (c *Config) Clone() *Config {
	clone := *c
	clone.RepoPaths = append([]string(nil), c.RepoPaths...)
	clone.Excludes = append([]string(nil), c.Excludes...)
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStrs []string

	Ext              string  `mapstructure:"ext"`
	Anchor           string  `mapstructure:"anchor"`
	MinSupport       float64 `mapstructure:"min-support"`
	MinConfidence    float64 `mapstructure:"min-confidence"`
	MinLift          float64 `mapstructure:"min-lift"`
	Limit            int     `mapstructure:"limit"`
	MaxPairs         int     `mapstructure:"max-pairs"`
	Workers          int     `mapstructure:"workers"`
	Exclude          string  `mapstructure:"exclude"`
	Precision        int     `mapstructure:"precision"`
	Output           string  `mapstructure:"output"`
	OutputFile       string  `mapstructure:"output-file"`
	Color            string  `mapstructure:"color"`
	Width            int     `mapstructure:"width"`
	CacheBackend     string  `mapstructure:"cache-backend"`
	CacheDBConnect   string  `mapstructure:"cache-db-connect"`
	ResultsBackend   string  `mapstructure:"results-backend"`
	ResultsDBConnect string  `mapstructure:"results-db-connect"`
}

// GitClient defines the necessary operations for reading commit history.
// This allows the mining logic to be tested without a real git executable.
type GitClient interface {
	// Run executes a raw git command against the repository.
	Run(ctx context.Context, repoPath string, args ...string) ([]byte, error)

	// GetChangeLog returns the full non-merge commit history with the
	// changed paths of every commit.
	GetChangeLog(ctx context.Context, repoPath string) ([]byte, error)

	// GetRepoHash returns the current HEAD hash, used for cache keying.
	GetRepoHash(ctx context.Context, repoPath string) (string, error)

	// GetRepoRoot resolves the repository root for an arbitrary path.
	GetRepoRoot(ctx context.Context, contextPath string) (string, error)
}
