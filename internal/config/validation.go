package config

import (
	"fmt"
)

// Validate checks config values for correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Search validation
	if c.Search.RipgrepPath == "" {
		errs = append(errs, "search.ripgrep_path must not be empty")
	}
	if c.Search.MaxResults < 1 || c.Search.MaxResults > ResultLimit {
		errs = append(errs, fmt.Sprintf("search.max_results must be between 1 and %d", ResultLimit))
	}
	if c.Search.MaxCommandOutputSize < 1 {
		errs = append(errs, "search.max_command_output_size must be >= 1")
	}
	switch c.Search.PathStyle {
	case PathStyleAuto, PathStyleDrive, PathStylePlain:
	default:
		errs = append(errs, "search.path_style must be one of auto, drive, plain")
	}
	if c.Search.TimeoutSeconds < 0 {
		errs = append(errs, "search.timeout_seconds must be >= 0")
	}
	if c.Search.KillGraceMs < 0 {
		errs = append(errs, "search.kill_grace_ms must be >= 0")
	}

	// History validation
	if c.History.MaxEntries < 1 {
		errs = append(errs, "history.max_entries must be >= 1")
	}
	if c.History.MaxAgeDays < 1 {
		errs = append(errs, "history.max_age_days must be >= 1")
	}

	// Bridge validation
	if c.Bridge.MaxConcurrent < 1 {
		errs = append(errs, "bridge.max_concurrent must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
