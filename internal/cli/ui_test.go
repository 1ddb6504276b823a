package cli

import (
	"bytes"
	"strings"
	"testing"
)

func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = prev })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name         string
		nodes, edges int
		cached       bool
		want         []string
		absent       []string
	}{
		{"fresh", 7, 6, false, []string{"7 nodes", "6 edges", "fresh"}, []string{"cached"}},
		{"cached", 15, 14, true, []string{"15 nodes", "14 edges", "cached"}, []string{"fresh"}},
		{"single node", 1, 0, false, []string{"1 nodes", "fresh"}, []string{"edges"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureUI(t)
			printStats(tt.nodes, tt.edges, tt.cached)
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output %q missing %q", out, s)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("output %q should not contain %q", out, s)
				}
			}
		})
	}
}

func TestStatusLines(t *testing.T) {
	buf := captureUI(t)
	printSuccess("Rendered %d files", 2)
	printFile("tree.svg")
	printNextStep("Render it", "rbdraw render tree.json")

	out := buf.String()
	for _, s := range []string{"Rendered 2 files", "tree.svg", "Render it:", "rbdraw render tree.json"} {
		if !strings.Contains(out, s) {
			t.Errorf("output %q missing %q", out, s)
		}
	}
	if n := strings.Count(out, "\n"); n != 3 {
		t.Errorf("got %d lines, want 3", n)
	}
}
