package contract

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/protopair/schema"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// ProcessAndValidate performs all complex parsing and validation on the raw
// inputs and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateThresholds(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPaths(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// --- Proto extension ---
	cfg.ProtoExt = input.Ext
	if cfg.ProtoExt == "" {
		cfg.ProtoExt = DefaultProtoExt
	}
	if !strings.HasPrefix(cfg.ProtoExt, ".") {
		return fmt.Errorf("invalid proto extension %q: must start with '.'", input.Ext)
	}

	// --- Anchor policy ---
	cfg.Anchor = schema.AnchorPolicy(strings.ToLower(input.Anchor))
	if cfg.Anchor == "" {
		cfg.Anchor = schema.EachAnchor
	}
	if _, ok := schema.ValidAnchorPolicies[cfg.Anchor]; !ok {
		return fmt.Errorf("invalid anchor policy '%s'. must be each or merged", input.Anchor)
	}

	// --- Limit and workers ---
	if input.Limit < 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 0 (all pairs) and %d", MaxResultLimit)
	}
	cfg.ResultLimit = input.Limit

	cfg.Workers = input.Workers
	if cfg.Workers < 1 {
		cfg.Workers = DefaultWorkers
	}

	// --- Check gate ---
	if input.MaxPairs < 0 {
		return fmt.Errorf("max-pairs must be >= 0, got %d", input.MaxPairs)
	}
	cfg.MaxPairs = input.MaxPairs

	// --- Excludes ---
	cfg.Excludes = nil
	if input.Exclude != "" {
		for p := range strings.SplitSeq(input.Exclude, ",") {
			p = strings.TrimSpace(p)
			if p != "" {
				cfg.Excludes = append(cfg.Excludes, p)
			}
		}
	}

	// --- Precision ---
	cfg.Precision = input.Precision
	if cfg.Precision < 0 || cfg.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d", MaxPrecision)
	}

	// --- Output mode ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode '%s'. must be text, csv, json, md", input.Output)
	}

	// --- Colors ---
	useColors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid color setting: %w", err)
	}
	cfg.UseColors = useColors

	return nil
}

// validateThresholds validates the metric filter thresholds.
func validateThresholds(cfg *Config, input *ConfigRawInput) error {
	if input.MinSupport < 0 || input.MinSupport > 1 {
		return fmt.Errorf("min-support must be in [0, 1], got %v", input.MinSupport)
	}
	if input.MinConfidence < 0 || input.MinConfidence > 1 {
		return fmt.Errorf("min-confidence must be in [0, 1], got %v", input.MinConfidence)
	}
	if input.MinLift < 0 {
		return fmt.Errorf("min-lift must be >= 0, got %v", input.MinLift)
	}
	cfg.MinSupport = input.MinSupport
	cfg.MinConfidence = input.MinConfidence
	cfg.MinLift = input.MinLift
	return nil
}

// validateBackendConfigs validates cache and results backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Results Backend Validation ---
	cfg.ResultsBackend = schema.DatabaseBackend(strings.ToLower(input.ResultsBackend))
	if cfg.ResultsBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.ResultsBackend]; !ok {
			return fmt.Errorf("invalid results backend '%s'. must be sqlite, mysql, postgresql, none", input.ResultsBackend)
		}
		cfg.ResultsDBConnect = input.ResultsDBConnect
		if err := ValidateDatabaseConnectionString(cfg.ResultsBackend, cfg.ResultsDBConnect); err != nil {
			return err
		}

		// Validate that cache and results use different databases
		if cfg.CacheBackend == cfg.ResultsBackend && cfg.CacheBackend == schema.SQLiteBackend {
			cacheDBPath := cfg.CacheDBConnect
			if cacheDBPath == "" {
				cacheDBPath = GetCacheDBFilePath()
			}
			resultsDBPath := cfg.ResultsDBConnect
			if resultsDBPath == "" {
				resultsDBPath = GetResultsDBFilePath()
			}
			if cacheDBPath == resultsDBPath {
				return fmt.Errorf("cache and results storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
			}
		}
	}

	return nil
}

// resolveRepoPaths resolves every positional argument to a repository root
// and rejects paths that are not inside a Git repository.
func resolveRepoPaths(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	paths := input.RepoPathStrs
	if len(paths) == 0 {
		paths = []string{"."}
	}

	cfg.RepoPaths = make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		root, err := client.GetRepoRoot(ctx, p)
		if err != nil {
			return fmt.Errorf("cannot resolve repository at %q: %w", p, err)
		}
		// Collapse duplicate arguments pointing at the same repository so a
		// repo is never mined twice in one batch.
		if _, ok := seen[root]; ok {
			continue
		}
		seen[root] = struct{}{}
		cfg.RepoPaths = append(cfg.RepoPaths, root)
	}
	return nil
}
