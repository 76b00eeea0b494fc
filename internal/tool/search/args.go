package search

import (
	"strconv"
	"strings"
)

// ripgrep flags, in the order BuildArgs emits them.
const (
	flagCaseInsensitive = "-i"
	flagWholeWord       = "-w"
	flagRegexEngine     = "--engine=auto"
	flagHidden          = "--hidden"
	flagMaxDepth        = "--max-depth="
	flagType            = "--type="
	flagTypeNot         = "--type-not="
	flagVimgrep         = "--vimgrep"
)

// BuildArgs maps a request onto ripgrep arguments. The executable name is not
// included. Pattern and root are separate elements and are never quoted, so
// the pattern reaches ripgrep byte for byte without shell interpretation.
func BuildArgs(req SearchRequest) []string {
	args := []string{req.Pattern, req.RootPath}

	if req.CaseInsensitive {
		args = append(args, flagCaseInsensitive)
	}
	if req.WholeWord {
		args = append(args, flagWholeWord)
	}
	if req.Regex {
		args = append(args, flagRegexEngine)
	}
	if req.IgnoreHidden {
		args = append(args, flagHidden)
	}
	if req.MaxDepth > 0 {
		args = append(args, flagMaxDepth+strconv.FormatUint(uint64(req.MaxDepth), 10))
	}
	for _, t := range req.IncludeTypes {
		if t = strings.TrimSpace(t); t != "" {
			args = append(args, flagType+t)
		}
	}
	for _, t := range req.ExcludeTypes {
		if t = strings.TrimSpace(t); t != "" {
			args = append(args, flagTypeNot+t)
		}
	}

	return append(args, flagVimgrep)
}
