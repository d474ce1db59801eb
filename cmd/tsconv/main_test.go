package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRootCommandMetadata(t *testing.T) {
	if rootCmd.Use != "tsconv" {
		t.Errorf("expected Use='tsconv', got %q", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("root command should have a short description")
	}
	if !rootCmd.SilenceErrors {
		t.Error("root command should have SilenceErrors=true")
	}
}

func TestRootCommandHasConvertSubcommand(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "convert" {
			found = true
			break
		}
	}
	if !found {
		t.Error("root command should have 'convert' subcommand")
	}
}

func TestVerboseFlag(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("verbose")
	if f == nil {
		t.Fatal("verbose flag not registered")
	}
	if f.Shorthand != "v" {
		t.Errorf("verbose shorthand should be 'v', got %q", f.Shorthand)
	}
	if f.DefValue != "false" {
		t.Errorf("verbose default should be 'false', got %q", f.DefValue)
	}
}

func TestConvertCmdMetadata(t *testing.T) {
	if convertCmd.Use != "convert <node_modules-dir> <library> [library...]" {
		t.Errorf("unexpected Use: %q", convertCmd.Use)
	}
	if convertCmd.Short == "" {
		t.Error("convert command should have a short description")
	}
	if !convertCmd.SilenceUsage {
		t.Error("convert command should have SilenceUsage=true")
	}
}

func TestConvertCmdRequiresAtLeastTwoArgs(t *testing.T) {
	if err := convertCmd.Args(convertCmd, []string{"only-one"}); err == nil {
		t.Error("convert should require at least 2 arguments, got no error for 1 arg")
	}
	if err := convertCmd.Args(convertCmd, []string{"dir", "lib"}); err != nil {
		t.Errorf("convert should accept 2 arguments, got error: %v", err)
	}
	if err := convertCmd.Args(convertCmd, []string{"dir", "lib1", "lib2"}); err != nil {
		t.Errorf("convert should accept more than 2 arguments, got error: %v", err)
	}
}

func TestConvertCmdFlags(t *testing.T) {
	flags := []struct {
		name     string
		defValue string
	}{
		{"config", ""},
		{"pedantic", "false"},
		{"json", "false"},
		{"report", ""},
		{"trace-library", ""},
	}

	for _, tt := range flags {
		f := convertCmd.Flags().Lookup(tt.name)
		if f == nil {
			t.Errorf("flag %q not registered on convert command", tt.name)
			continue
		}
		if f.DefValue != tt.defValue {
			t.Errorf("flag %q: expected default %q, got %q", tt.name, tt.defValue, f.DefValue)
		}
	}
}

func TestValidateNodeModulesRoot_NonExistentDir(t *testing.T) {
	err := validateNodeModulesRoot("/nonexistent/path/to/dir")
	if err == nil {
		t.Fatal("expected error for non-existent directory")
	}
	if got := err.Error(); got != "directory not found: /nonexistent/path/to/dir" {
		t.Errorf("unexpected error message: %s", got)
	}
}

func TestValidateNodeModulesRoot_NotADirectory(t *testing.T) {
	f, err := os.CreateTemp("", "tsconv-test-*")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	f.Close()

	err = validateNodeModulesRoot(f.Name())
	if err == nil {
		t.Fatal("expected error for a file path")
	}
	if got := err.Error(); got != "not a directory: "+f.Name() {
		t.Errorf("unexpected error: %s", got)
	}
}

func TestValidateNodeModulesRoot_NoNodeModules(t *testing.T) {
	dir := t.TempDir()
	err := validateNodeModulesRoot(dir)
	if err == nil {
		t.Fatal("expected error for a directory with no node_modules")
	}
}

func TestValidateNodeModulesRoot_WithNodeModules(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "node_modules"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := validateNodeModulesRoot(dir); err != nil {
		t.Errorf("expected no error for a directory with node_modules, got: %v", err)
	}
}

func TestPlural(t *testing.T) {
	if got := plural(1); got != "y" {
		t.Errorf("plural(1) = %q, want %q", got, "y")
	}
	if got := plural(2); got != "ies" {
		t.Errorf("plural(2) = %q, want %q", got, "ies")
	}
	if got := plural(0); got != "ies" {
		t.Errorf("plural(0) = %q, want %q", got, "ies")
	}
}
