package content

import "iter"

// Lines yields the lines of s without their terminators. Both "\n" and
// "\r\n" end a line; a lone "\r" is kept as content. A trailing terminator
// does not produce an empty final line.
//
// Lines are produced lazily, so a consumer that stops early never scans the
// rest of s.
func Lines(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		for i := 0; i < len(s); i++ {
			if s[i] != '\n' {
				continue
			}
			end := i
			if end > start && s[end-1] == '\r' {
				end--
			}
			if !yield(s[start:end]) {
				return
			}
			start = i + 1
		}
		if start < len(s) {
			yield(s[start:])
		}
	}
}
