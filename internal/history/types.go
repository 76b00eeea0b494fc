package history

import "slices"

// FileName is the history file kept in the history directory.
const FileName = "search_history.json"

// Options are the search toggles recorded alongside a pattern.
type Options struct {
	CaseInsensitive bool     `json:"case_insensitive" yaml:"case_insensitive"`
	WholeWord       bool     `json:"whole_word" yaml:"whole_word"`
	Regex           bool     `json:"regex" yaml:"regex"`
	IgnoreHidden    bool     `json:"ignore_hidden" yaml:"ignore_hidden"`
	MaxDepth        uint32   `json:"max_depth" yaml:"max_depth"`
	IncludeTypes    []string `json:"include_types,omitempty" yaml:"include_types,omitempty"`
	ExcludeTypes    []string `json:"exclude_types,omitempty" yaml:"exclude_types,omitempty"`
}

func (o Options) equal(other Options) bool {
	return o.CaseInsensitive == other.CaseInsensitive &&
		o.WholeWord == other.WholeWord &&
		o.Regex == other.Regex &&
		o.IgnoreHidden == other.IgnoreHidden &&
		o.MaxDepth == other.MaxDepth &&
		slices.Equal(o.IncludeTypes, other.IncludeTypes) &&
		slices.Equal(o.ExcludeTypes, other.ExcludeTypes)
}

// Entry is one recorded search. Timestamp is in Unix milliseconds.
type Entry struct {
	ID        string  `json:"id" yaml:"id"`
	Pattern   string  `json:"pattern" yaml:"pattern"`
	Path      string  `json:"path" yaml:"path"`
	Options   Options `json:"options" yaml:"options"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
}

func (e Entry) sameSearch(pattern, path string, opts Options) bool {
	return e.Pattern == pattern && e.Path == path && e.Options.equal(opts)
}
