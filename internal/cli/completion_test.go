package cli

import (
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			if out := mustRun(t, "completion", shell); !strings.Contains(out, "gridsmith") {
				t.Errorf("%s script does not mention gridsmith", shell)
			}
		})
	}
	if _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell accepted")
	}
}

func TestCompleteFormats(t *testing.T) {
	got, dir := completeFormats(nil, nil, "")
	if len(got) != 5 || dir&cobra.ShellCompDirectiveNoSpace == 0 {
		t.Errorf("completeFormats(\"\") = %v, %v", got, dir)
	}

	got, _ = completeFormats(nil, nil, "html,c")
	if !slices.Contains(got, "html,css") {
		t.Errorf("completions %v missing html,css", got)
	}
	if slices.Contains(got, "html,html") {
		t.Errorf("completions %v repeat a chosen format", got)
	}
}

func TestCompleteHandles(t *testing.T) {
	got, _ := completeHandles(nil, nil, "")
	if !slices.Contains(got, "move") || !slices.Contains(got, "se") || len(got) != 9 {
		t.Errorf("completeHandles = %v", got)
	}
}

func TestCompleteProjectItem(t *testing.T) {
	path := newGridFile(t)

	exts, dir := completeProjectItem(nil, nil, "")
	if dir != cobra.ShellCompDirectiveFilterFileExt || !slices.Contains(exts, "json") {
		t.Errorf("first argument: %v, %v", exts, dir)
	}

	items, _ := completeProjectItem(nil, []string{path}, "")
	if len(items) != 1 || !strings.HasSuffix(items[0], "\tBox") {
		t.Errorf("items = %q, want one entry labelled Box", items)
	}

	if _, dir := completeProjectItem(nil, []string{"missing.json"}, ""); dir != cobra.ShellCompDirectiveError {
		t.Errorf("missing file directive = %v", dir)
	}
	if got, _ := completeProjectItem(nil, []string{path, "x"}, ""); got != nil {
		t.Errorf("third argument = %v, want none", got)
	}
}
