package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestStatusFlagAlias(t *testing.T) {
	var status string
	cmd := &cobra.Command{Use: "list"}
	cmd.Flags().StringVar(&status, "status", "", "")
	addStatusFlagAliases(cmd)

	if err := cmd.Flags().Parse([]string{"--state", "done"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if status != "done" {
		t.Fatalf("expected status done, got %q", status)
	}
	if !cmd.Flags().Changed("status") {
		t.Fatal("expected status flag to be marked changed")
	}
}

func TestListCommandHasStatusAlias(t *testing.T) {
	normalized := listCmd.Flags().GetNormalizeFunc()(listCmd.Flags(), "state")
	if normalized != "status" {
		t.Fatalf("expected state to normalize to status, got %q", normalized)
	}

	usage := listCmd.Flags().FlagUsages()
	if strings.Contains(usage, "--state") {
		t.Fatalf("did not expect alias to appear in usage, got %q", usage)
	}
	if !strings.Contains(usage, "-s, --status") {
		t.Fatalf("expected status flag with shorthand in usage, got %q", usage)
	}
}
