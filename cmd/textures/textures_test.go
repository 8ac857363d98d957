package textures

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/leefowlercu/unibundle/internal/cmdutil"
	"github.com/leefowlercu/unibundle/internal/config"
	"github.com/leefowlercu/unibundle/internal/testutil"
	"github.com/leefowlercu/unibundle/internal/unity"
)

func createTestCommand() *cobra.Command {
	texturesMinSize = 0
	texturesUnityVersion = ""

	cmd := &cobra.Command{
		Use:     TexturesCmd.Use,
		Args:    TexturesCmd.Args,
		PreRunE: validateTextures,
		RunE:    runTextures,
	}
	addFlags(cmd)
	return cmd
}

func texture(id int64, name string, size int) *testutil.FakeObject {
	return testutil.NewFakeObject(id, unity.TypeTexture2D, &unity.Texture2D{
		Name: name, Width: size, Height: size, RGBA: bytes.Repeat([]byte{0, 0, 0, 255}, size*size),
	})
}

func setup(t *testing.T) (src, out string, parser *testutil.FakeParser) {
	t.Helper()
	env := testutil.NewTestEnv(t)
	src = env.CreateTestDir("bundles")
	out = filepath.Join(t.TempDir(), "textures")
	parser = testutil.NewFakeParser()

	orig := cmdutil.ParserFactory
	cmdutil.ParserFactory = func(config.ParserConfig) unity.Parser { return parser }
	t.Cleanup(func() { cmdutil.ParserFactory = orig })

	env.CreateTestFile(src, "a/chars.bundle", []byte("UnityFS\x00a"))
	env.CreateTestFile(src, "b/ui.bundle", []byte("UnityFS\x00b"))
	parser.AddBundle("chars.bundle",
		texture(1, "hero", 16),
		testutil.NewFakeObject(2, unity.TypeMesh, &unity.Mesh{Name: "hero"}),
	)
	parser.AddBundle("ui.bundle", texture(5, "dot", 2))
	return src, out, parser
}

func TestTexturesCmd_FlatOutput(t *testing.T) {
	src, out, _ := setup(t)

	cmd := createTestCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{src, out})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("textures command failed: %v", err)
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatalf("read output dir failed: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"dot_2x2.png", "hero_16x16.png"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("output files = %v, want %v", names, want)
	}

	if !strings.Contains(stdout.String(), "Extracting types: Texture2D") {
		t.Errorf("output should list only Texture2D, got:\n%s", stdout.String())
	}
}

func TestTexturesCmd_MinSize(t *testing.T) {
	src, out, _ := setup(t)

	cmd := createTestCommand()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{src, out, "--min-size", "8"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("textures command failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(out, "dot_2x2.png")); !os.IsNotExist(err) {
		t.Error("texture below --min-size was written")
	}
	if _, err := os.Stat(filepath.Join(out, "hero_16x16.png")); err != nil {
		t.Errorf("texture above --min-size missing: %v", err)
	}
}

func TestTexturesCmd_MissingSource(t *testing.T) {
	testutil.NewTestEnv(t)

	cmd := createTestCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope"), t.TempDir()})

	if err := cmd.Execute(); err == nil {
		t.Fatal("textures should fail for a nonexistent source root")
	}
}
