package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Cyclone1070/rgbridge/internal/highlight"
	"github.com/Cyclone1070/rgbridge/internal/history"
	"github.com/Cyclone1070/rgbridge/internal/tool/search"
)

// Output formats accepted by --format.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("invalid --format %q: must be text, json or yaml", format)
	}
}

// colorEnabled resolves --color for w. Writers that are not files never get
// colors in auto mode.
func colorEnabled(mode string, w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return highlight.ColorEnabled(mode, f.Fd())
	}
	return mode == highlight.ColorAlways
}

// writeResults prints results as file:line:column:content lines, or encoded
// as JSON or YAML.
func writeResults(w io.Writer, results []search.SearchResult, pattern, format string, theme highlight.Theme) error {
	switch format {
	case formatJSON:
		return writeJSON(w, results)
	case formatYAML:
		return writeYAML(w, results)
	}

	h := theme.Highlighter()
	for _, r := range results {
		_, err := fmt.Fprintf(w, "%s:%s:%s:%s\n",
			theme.File.Render(r.File),
			theme.LineNumber.Render(strconv.FormatUint(uint64(r.Line), 10)),
			theme.LineNumber.Render(strconv.FormatUint(uint64(r.Column), 10)),
			h.Line(r.Content, pattern))
		if err != nil {
			return err
		}
	}
	return nil
}

// writeEntries prints history entries, newest first.
func writeEntries(w io.Writer, entries []history.Entry, format string) error {
	switch format {
	case formatJSON:
		return writeJSON(w, entries)
	case formatYAML:
		return writeYAML(w, entries)
	}

	for _, e := range entries {
		when := time.UnixMilli(e.Timestamp).Format(time.DateTime)
		if _, err := fmt.Fprintf(w, "%s  %q  %s%s\n", when, e.Pattern, e.Path, describeOptions(e.Options)); err != nil {
			return err
		}
	}
	return nil
}

func describeOptions(o history.Options) string {
	var s string
	if o.CaseInsensitive {
		s += " -i"
	}
	if o.WholeWord {
		s += " -w"
	}
	if o.Regex {
		s += " --regex"
	}
	if o.IgnoreHidden {
		s += " --hidden"
	}
	if o.MaxDepth > 0 {
		s += fmt.Sprintf(" --max-depth=%d", o.MaxDepth)
	}
	for _, t := range o.IncludeTypes {
		s += " --type=" + t
	}
	for _, t := range o.ExcludeTypes {
		s += " --type-not=" + t
	}
	return s
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
