package main

import (
	"strings"
	"testing"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()
	want := []string{"add", "show", "list", "update", "delete", "resync", "report", "audit", "config"}
	have := map[string]bool{}
	for _, sub := range cmd.Commands() {
		have[sub.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"ID", "Code"},
		[][]string{{"1", "BMX789"}, {"2"}},
	)
	if !strings.Contains(out, "BMX789") {
		t.Fatalf("table missing cell content:\n%s", out)
	}
	if !strings.Contains(out, "ID") || !strings.Contains(out, "Code") {
		t.Fatalf("table missing headers:\n%s", out)
	}
}

func TestParseLetterID(t *testing.T) {
	if _, err := parseLetterID("7"); err != nil {
		t.Fatalf("parseLetterID(7): %v", err)
	}
	for _, bad := range []string{"0", "-3", "abc", ""} {
		if _, err := parseLetterID(bad); err == nil {
			t.Errorf("parseLetterID(%q): expected error", bad)
		}
	}
}
