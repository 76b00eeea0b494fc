package search

import "strings"

// Filter keeps the results whose file path or line content contains needle.
// Matching is case-sensitive. An empty needle returns results unchanged.
func Filter(results []SearchResult, needle string) []SearchResult {
	if needle == "" {
		return results
	}
	filtered := make([]SearchResult, 0, len(results))
	for _, r := range results {
		if strings.Contains(r.File, needle) || strings.Contains(r.Content, needle) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
