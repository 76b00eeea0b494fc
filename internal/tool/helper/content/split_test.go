package content

import (
	"reflect"
	"slices"
	"testing"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single line LF",
			input:    "line1",
			expected: []string{"line1"},
		},
		{
			name:     "multiple lines LF",
			input:    "line1\nline2\nline3",
			expected: []string{"line1", "line2", "line3"},
		},
		{
			name:     "trailing newline LF",
			input:    "line1\n",
			expected: []string{"line1"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "only newline LF",
			input:    "\n",
			expected: []string{""},
		},
		{
			name:     "multiple lines CRLF",
			input:    "line1\r\nline2\r\nline3",
			expected: []string{"line1", "line2", "line3"},
		},
		{
			name:     "trailing newline CRLF",
			input:    "line1\r\n",
			expected: []string{"line1"},
		},
		{
			name:     "mixed endings",
			input:    "line1\nline2\r\nline3",
			expected: []string{"line1", "line2", "line3"},
		},
		{
			name:     "dangling CR",
			input:    "line1\rline2", // treat \r as content if not followed by \n
			expected: []string{"line1\rline2"},
		},
		{
			name:     "only CRLF",
			input:    "\r\n",
			expected: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slices.Collect(Lines(tt.input)); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Lines(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLines_StopsEarly(t *testing.T) {
	var seen []string
	for line := range Lines("a\nb\nc\nd") {
		seen = append(seen, line)
		if len(seen) == 2 {
			break
		}
	}
	if !reflect.DeepEqual(seen, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %q", seen)
	}
}
