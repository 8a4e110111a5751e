package main

import (
	"fmt"
	"runtime"
	"sort"
)

// Version is the build identifier; overridden at build time via
// `-ldflags -X main.Version=...` in the teacher's release process.
var Version = "dev"

// compiledFeatures is the fixed list of feature names buildFeatures reports.
var compiledFeatures = []string{"z80", "8080", "ice", "softbreak", "history"}

func printFeatures() {
	for _, l := range buildFeatures() {
		fmt.Println(l)
	}
}

// buildFeatures renders the same report the `s` ICE command shows
// (spec.md §4.5), as lines rather than direct stdout writes so the
// REPL can send them to its own output stream.
func buildFeatures() []string {
	out := []string{
		fmt.Sprintf("Intuition Engine %s", Version),
		fmt.Sprintf("  Go version: %s", runtime.Version()),
		fmt.Sprintf("  OS/Arch:    %s/%s", runtime.GOOS, runtime.GOARCH),
		"",
		"Compiled features:",
	}
	features := append([]string(nil), compiledFeatures...)
	sort.Strings(features)
	for _, f := range features {
		out = append(out, "  "+f)
	}
	if len(features) == 0 {
		out = append(out, "  (none)")
	}
	return out
}
