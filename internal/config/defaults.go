package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	// DefaultSearchPath is the root offered to the front end when none is given.
	// Empty means the user's home directory.
	DefaultSearchPath string `json:"default_search_path"`

	Search  SearchConfig  `json:"search"`
	History HistoryConfig `json:"history"`
	Bridge  BridgeConfig  `json:"bridge"`
	User    UserConfig    `json:"user"`
}

type SearchConfig struct {
	RipgrepPath          string `json:"ripgrep_path"`            // Default: "rg"
	MaxResults           int    `json:"max_results"`             // Default: 10000, at most ResultLimit
	MaxCommandOutputSize int64  `json:"max_command_output_size"` // Default: 256 * 1024 * 1024 (256MB)
	PathStyle            string `json:"path_style"`              // Default: "auto" (auto, drive, plain)
	TimeoutSeconds       int    `json:"timeout_seconds"`         // Default: 0 (no timeout)
	KillGraceMs          int    `json:"kill_grace_ms"`           // Default: 2000
}

type HistoryConfig struct {
	Dir        string `json:"dir"`          // Default: "" (~/.config/ripgrep-gui)
	MaxEntries int    `json:"max_entries"`  // Default: 100
	MaxAgeDays int    `json:"max_age_days"` // Default: 30
}

type BridgeConfig struct {
	MaxConcurrent int `json:"max_concurrent"` // Default: 4
}

// UserConfig carries front-end preferences. They are stored and served back
// untouched; nothing in this module interprets them.
type UserConfig struct {
	DarkMode bool   `json:"dark_mode"`
	Language string `json:"language"`
}

// Path style values accepted by search.path_style.
const (
	PathStyleAuto  = "auto"
	PathStyleDrive = "drive"
	PathStylePlain = "plain"
)

// ResultLimit is the largest search.max_results accepted.
const ResultLimit = 10000

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			RipgrepPath:          "rg",
			MaxResults:           ResultLimit,
			MaxCommandOutputSize: 256 * 1024 * 1024,
			PathStyle:            PathStyleAuto,
			TimeoutSeconds:       0,
			KillGraceMs:          2000,
		},
		History: HistoryConfig{
			MaxEntries: 100,
			MaxAgeDays: 30,
		},
		Bridge: BridgeConfig{
			MaxConcurrent: 4,
		},
		User: UserConfig{
			Language: "en",
		},
	}
}
