// Package flagx lets several independent flag sets share one argument list.
//
// Each config source parses only the flags it owns: Pick extracts them
// (with their values) and leaves everything else to other parsers.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// Pick returns the subset of args that belongs to the named flags. Names are
// given without dashes; "-name", "--name", "-name=v" and "--name=v" all
// match. A separate value is taken along unless it looks like another flag.
func Pick(args []string, names ...string) []string {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	out := []string{}
	for i := 0; i < len(args); i++ {
		name, inline, ok := split(args[i])
		if !ok || !want[name] {
			continue
		}
		out = append(out, args[i])
		if inline {
			continue
		}
		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			out = append(out, args[next])
			i = next
		}
	}
	return out
}

// String parses a single string flag known under any of names and returns
// its last value, or "" if the flag is absent or has no value.
func String(args []string, names ...string) string {
	var v string
	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	for _, n := range names {
		fs.StringVar(&v, n, "", "")
	}
	_ = fs.Parse(Pick(args, names...))
	return v
}

// split reports the flag name of arg and whether its value is inline.
func split(arg string) (name string, inline bool, ok bool) {
	if len(arg) < 2 || arg[0] != '-' || arg == "--" {
		return "", false, false
	}
	name = strings.TrimPrefix(arg[1:], "-")
	if i := strings.IndexByte(name, '='); i >= 0 {
		return name[:i], true, true
	}
	return name, false, true
}
