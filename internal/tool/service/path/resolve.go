package path

import (
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading "~" with home. Paths without one are
// returned unchanged; "~user" forms are not expanded.
func ExpandHome(p, home string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") && !strings.HasPrefix(p, `~\`) {
		return p, nil
	}
	if home == "" {
		return "", &ResolveError{Path: p, Cause: ErrHomeUnknown}
	}
	return filepath.Join(home, p[1:]), nil
}

// Absolute expands a leading "~" and returns the cleaned absolute path.
// Relative paths are resolved against the working directory.
func Absolute(p, home string) (string, error) {
	expanded, err := ExpandHome(p, home)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", &ResolveError{Path: p, Cause: err}
	}
	return abs, nil
}
