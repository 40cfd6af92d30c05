//go:build ignore

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muurk/nutsmith/internal/classify"
	"github.com/muurk/nutsmith/internal/render"
	"github.com/muurk/nutsmith/internal/scan"
	"github.com/muurk/nutsmith/internal/selector"
	"github.com/muurk/nutsmith/internal/stanza"
)

// Feeds captured nut-scanner output files through the parse/classify/select
// pipeline and prints what would be chosen and rendered for each.
//
// Usage: go run tools/validate_scan.go <dir-of-captures>
//
// Each *.txt file in the directory is treated as one device's raw
// nut-scanner output; the file basename becomes the asset name.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: validate_scan <dir-of-captures>")
		os.Exit(1)
	}

	files, err := filepath.Glob(filepath.Join(os.Args[1], "*.txt"))
	if err != nil || len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no capture files in %s\n", os.Args[1])
		os.Exit(1)
	}

	for _, file := range files {
		name := strings.TrimSuffix(filepath.Base(file), ".txt")
		raw, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			continue
		}

		candidates := scan.ParseOutput(string(raw), name)
		fmt.Printf("=== %s: %d candidate(s)\n", name, len(candidates))

		texts := stanza.Texts(candidates)
		cls := classify.Classify(texts)
		fmt.Printf("    epdu=%v ats=%v snmp=%v xml=%v\n", cls.Epdu, cls.Ats, cls.Snmp, cls.XML)

		chosen, ok := selector.SelectBest(candidates)
		if !ok {
			fmt.Println("    no selectable candidate")
			continue
		}
		driver, _ := chosen.Field("driver")
		fmt.Printf("    chosen driver: %s\n", driver)
		fmt.Println(indent(render.Render(chosen, render.DefaultPollingInterval)))
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "    | " + line
	}
	return strings.Join(lines, "\n")
}
