package discover

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/unibundle/internal/testutil"
)

func createTestCommand(args ...string) (*cobra.Command, *bytes.Buffer) {
	discoverSizes = false

	cmd := &cobra.Command{
		Use:     DiscoverCmd.Use,
		Args:    DiscoverCmd.Args,
		PreRunE: validateDiscover,
		RunE:    runDiscover,
	}
	cmd.Flags().BoolVar(&discoverSizes, "sizes", false, "")

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stdout)
	cmd.SetArgs(args)
	return cmd, &stdout
}

func TestDiscoverCmd_ListsCandidates(t *testing.T) {
	env := testutil.NewTestEnv(t)
	root := env.CreateTestDir("game")
	a := env.CreateTestFile(root, "b/level.unity3d", []byte("UnityFS"))
	b := env.CreateTestFile(root, "a.bundle", []byte("UnityFS"))
	env.CreateTestFile(root, "notes.txt", []byte("ignore me"))

	cmd, stdout := createTestCommand(root, "--sizes")
	if err := cmd.Execute(); err != nil {
		t.Fatalf("discover command failed: %v", err)
	}

	out := stdout.String()
	if strings.Contains(out, "notes.txt") {
		t.Error("non-bundle file listed")
	}
	if !strings.Contains(out, "7  "+b) || !strings.Contains(out, a) {
		t.Errorf("missing candidates, got:\n%s", out)
	}
	if strings.Index(out, b) > strings.Index(out, a) {
		t.Error("candidates are not sorted")
	}
	if !strings.Contains(out, "2 bundle files") {
		t.Errorf("missing count, got:\n%s", out)
	}
}

func TestDiscoverCmd_ConfiguredExtensions(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteConfig("discovery:\n  extensions: [.ab]\n")
	root := env.CreateTestDir("game")
	env.CreateTestFile(root, "x.bundle", []byte("UnityFS"))
	ab := env.CreateTestFile(root, "y.ab", []byte("UnityFS"))

	cmd, stdout := createTestCommand(root)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("discover command failed: %v", err)
	}
	if out := stdout.String(); !strings.Contains(out, ab) || strings.Contains(out, "x.bundle") {
		t.Errorf("configured extensions not applied, got:\n%s", out)
	}
}

func TestDiscoverCmd_NoBundles(t *testing.T) {
	env := testutil.NewTestEnv(t)
	root := env.CreateTestDir("empty")

	cmd, _ := createTestCommand(root)
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "no bundle files") {
		t.Errorf("error = %v, want no bundle files", err)
	}

	cmd, _ = createTestCommand(filepath.Join(root, "missing"))
	if err := cmd.Execute(); err == nil {
		t.Error("nonexistent root should fail")
	}
}
