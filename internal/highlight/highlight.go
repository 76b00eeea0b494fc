package highlight

import (
	"regexp"
	"sync"
)

// RenderFunc decorates a matched substring.
type RenderFunc func(string) string

// Highlighter marks occurrences of a search pattern inside result lines.
type Highlighter struct {
	render RenderFunc

	mu      sync.Mutex
	pattern string
	re      *regexp.Regexp
}

// New creates a Highlighter. A nil render leaves lines untouched.
func New(render RenderFunc) *Highlighter {
	return &Highlighter{render: render}
}

// Line wraps every case-insensitive literal occurrence of match in content.
// Regex metacharacters in match are treated literally.
func (h *Highlighter) Line(content, match string) string {
	if h.render == nil || match == "" || content == "" {
		return content
	}
	return h.matcher(match).ReplaceAllStringFunc(content, h.render)
}

// matcher caches the last compiled pattern; callers usually highlight many
// lines for one search.
func (h *Highlighter) matcher(match string) *regexp.Regexp {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.re == nil || h.pattern != match {
		h.re = regexp.MustCompile("(?i)" + regexp.QuoteMeta(match))
		h.pattern = match
	}
	return h.re
}
