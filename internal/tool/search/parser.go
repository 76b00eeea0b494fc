package search

import (
	"strconv"
	"strings"

	"github.com/Cyclone1070/rgbridge/internal/config"
	"github.com/Cyclone1070/rgbridge/internal/tool/helper/content"
)

// PathStyle selects how a vimgrep line is split into fields.
type PathStyle int

const (
	// PathStylePlain expects path:line:column:content.
	PathStylePlain PathStyle = iota
	// PathStyleDrive expects D:path:line:column:content, where the drive
	// letter's colon is part of the path.
	PathStyleDrive
)

func (s PathStyle) String() string {
	if s == PathStyleDrive {
		return config.PathStyleDrive
	}
	return config.PathStylePlain
}

// DetectPathStyle returns the style native to goos.
func DetectPathStyle(goos string) PathStyle {
	if goos == "windows" {
		return PathStyleDrive
	}
	return PathStylePlain
}

// ResolvePathStyle applies a search.path_style setting, falling back to
// detection for "auto" and unknown values.
func ResolvePathStyle(setting, goos string) PathStyle {
	switch setting {
	case config.PathStyleDrive:
		return PathStyleDrive
	case config.PathStylePlain:
		return PathStylePlain
	default:
		return DetectPathStyle(goos)
	}
}

// fields holds the four logical parts of one output line.
type fields struct {
	file, line, column, content string
}

type splitFunc func(line string) (fields, bool)

func (s PathStyle) splitter() splitFunc {
	if s == PathStyleDrive {
		return splitDrive
	}
	return splitPlain
}

func splitPlain(line string) (fields, bool) {
	parts := strings.SplitN(line, ":", 4)
	if len(parts) != 4 {
		return fields{}, false
	}
	return fields{file: parts[0], line: parts[1], column: parts[2], content: parts[3]}, true
}

func splitDrive(line string) (fields, bool) {
	parts := strings.SplitN(line, ":", 5)
	if len(parts) != 5 {
		return fields{}, false
	}
	return fields{file: parts[0] + ":" + parts[1], line: parts[2], column: parts[3], content: parts[4]}, true
}

// ParseLine decodes one vimgrep line. It reports false when the line does
// not have the segment count style requires.
func ParseLine(line, pattern string, style PathStyle) (SearchResult, bool) {
	return parseWith(style.splitter(), line, pattern)
}

// ParseOutput decodes ripgrep's vimgrep output into at most limit results, in
// output order. Malformed lines are skipped and do not count toward limit.
// Scanning stops as soon as limit results are held.
func ParseOutput(stdout, pattern string, style PathStyle, limit int) []SearchResult {
	results := make([]SearchResult, 0)
	if limit <= 0 {
		return results
	}

	split := style.splitter()
	for line := range content.Lines(stdout) {
		r, ok := parseWith(split, line, pattern)
		if !ok {
			continue
		}
		results = append(results, r)
		if len(results) >= limit {
			break
		}
	}
	return results
}

func parseWith(split splitFunc, line, pattern string) (SearchResult, bool) {
	f, ok := split(line)
	if !ok {
		return SearchResult{}, false
	}
	return SearchResult{
		File:      f.file,
		Line:      parseNumber(f.line),
		Column:    parseNumber(f.column),
		Content:   f.content,
		MatchText: pattern,
	}, true
}

// parseNumber reads an unsigned 32-bit field, yielding 0 on any failure.
func parseNumber(s string) uint32 {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0
	}
	return uint32(n)
}
