package search

import (
	"strings"

	"github.com/Cyclone1070/rgbridge/internal/config"
)

// DefaultMaxResults caps the number of results returned by one search.
const DefaultMaxResults = config.ResultLimit

// SearchRequest describes one search. It is read-only for the duration of a call.
type SearchRequest struct {
	RootPath        string `json:"root_path" mapstructure:"root_path"`
	Pattern         string `json:"pattern" mapstructure:"pattern"`
	CaseInsensitive bool   `json:"case_insensitive" mapstructure:"case_insensitive"`
	WholeWord       bool   `json:"whole_word" mapstructure:"whole_word"`
	// Regex selects ripgrep's automatic engine (--engine=auto) so patterns
	// needing look-around or backreferences fall back to PCRE2. With Regex
	// false the pattern is still a regular expression, not a literal string.
	Regex bool `json:"regex" mapstructure:"regex"`
	// IgnoreHidden includes hidden files and directories, which ripgrep skips by default.
	IgnoreHidden bool `json:"ignore_hidden" mapstructure:"ignore_hidden"`
	// MaxDepth limits directory descent; 0 means unlimited.
	MaxDepth uint32 `json:"max_depth" mapstructure:"max_depth"`

	IncludeTypes []string `json:"include_types,omitempty" mapstructure:"include_types"`
	ExcludeTypes []string `json:"exclude_types,omitempty" mapstructure:"exclude_types"`
}

// Validate rejects requests the external tool cannot sensibly run.
func (r SearchRequest) Validate() error {
	if strings.TrimSpace(r.RootPath) == "" {
		return &InvalidRequestError{Field: "root_path", Reason: "is required"}
	}
	if r.Pattern == "" {
		return &InvalidRequestError{Field: "pattern", Reason: "must not be empty"}
	}
	return nil
}

// SearchResult is one matched line as reported by the external tool.
type SearchResult struct {
	File    string `json:"file" yaml:"file"`
	Line    uint32 `json:"line" yaml:"line"`       // 1-based, 0 if unparseable
	Column  uint32 `json:"column" yaml:"column"`   // 1-based, 0 if unparseable
	Content string `json:"content" yaml:"content"` // full text of the matched line
	// MatchText echoes the request pattern, not the substring that matched.
	MatchText string `json:"match_text" yaml:"match_text"`
}
