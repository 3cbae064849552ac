package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/initcard/lettuce/internal/manifest"
	"github.com/initcard/lettuce/internal/pipeline"
)

// resetFlags puts every flag back to its default so runs don't leak state.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("LETTUCE_HOME", t.TempDir())
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{
		"--manifest", "testdata/characters.xml",
		"--scene", "testdata/shot010.yaml",
	}, args...))
	err := run()
	return out.String(), errOut.String(), err
}

func decodeJournal(t *testing.T, data string) []pipeline.Op {
	t.Helper()
	var doc struct {
		Ops []pipeline.Op `yaml:"ops"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(data), &doc))
	return doc.Ops
}

func TestVersion(t *testing.T) {
	buildVersion = "1.2.3"
	out, _, err := runCLI(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", out)

	out, _, err = runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "lettuce version 1.2.3")
	assert.Contains(t, out, "manifest schema 1.0.0")
}

func TestCharacters(t *testing.T) {
	out, _, err := runCLI(t, "characters")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[1], "hero")
	assert.Contains(t, lines[1], "default,v1")
	assert.Contains(t, lines[2], "villain")
}

func TestCharacters_JSON(t *testing.T) {
	out, _, err := runCLI(t, "characters", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "hero"`)
	assert.Contains(t, out, `"characterMesh": "body_geo"`)
}

func TestCharacters_NoManifest(t *testing.T) {
	resetFlags(rootCmd)
	t.Setenv("LETTUCE_HOME", t.TempDir())
	rootCmd.SetArgs([]string{"characters"})
	rootCmd.SetOut(&bytes.Buffer{})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifest configured")
}

func TestResolve(t *testing.T) {
	out, _, err := runCLI(t, "resolve")
	require.NoError(t, err)
	assert.Contains(t, out, "heroRN")
	assert.Contains(t, out, "/proj/assets/villain.ma")
	assert.Contains(t, out, "[WARN] querying reference brokenRN")

	out, _, err = runCLI(t, "resolve", "--unique")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "hero\nvillain\n"), out)
}

func TestResolve_JSON(t *testing.T) {
	out, _, err := runCLI(t, "resolve", "--json", "--unique")
	require.NoError(t, err)

	var res resolveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"hero", "villain"}, res.Characters)
	assert.Len(t, res.Skipped, 1)
}

func TestShow(t *testing.T) {
	out, _, err := runCLI(t, "show", "hero", "--collection", "v1")
	require.NoError(t, err)
	assert.Contains(t, out, "* v1")
	assert.Contains(t, out, "    default")
	assert.Contains(t, out, "plates: hero_scalp_plate, hero_brow_plate")
}

func TestShow_Unknown(t *testing.T) {
	_, _, err := runCLI(t, "show", "nobody")
	require.ErrorIs(t, err, manifest.ErrNotFound)

	_, _, err = runCLI(t, "show", "hero", "--collection", "v9")
	require.ErrorIs(t, err, manifest.ErrNotFound)
}

func TestImport_Stdout(t *testing.T) {
	out, errOut, err := runCLI(t, "import", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, errOut, "[1/2] hero")
	assert.Contains(t, errOut, "[WARN] villain")

	ops := decodeJournal(t, out)
	require.NotEmpty(t, ops)
	assert.Equal(t, pipeline.OpRemoveReference, ops[0].Op)
	assert.Equal(t, pipeline.OpCreateSet, ops[len(ops)-1].Op)
	assert.Equal(t, "hero_hairSetSystem", ops[len(ops)-1].Target)
}

func TestImport_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.yaml")
	out, errOut, err := runCLI(t, "import", "--unlock", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "hero_hairSetSystem")
	assert.Contains(t, errOut, "Journal: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	ops := decodeJournal(t, string(data))
	assert.Equal(t, pipeline.OpCreateSet, ops[len(ops)-1].Op, "new set holds no locked nodes")
}

func TestImport_Only(t *testing.T) {
	_, _, err := runCLI(t, "import", "--only", "nobody", "-o", "-")
	require.ErrorIs(t, err, errNoCharacters)
}

func TestWrap(t *testing.T) {
	out, _, err := runCLI(t, "wrap", "hero", "-o", "-")
	require.NoError(t, err)

	var wraps []pipeline.Op
	for _, op := range decodeJournal(t, out) {
		if op.Op == pipeline.OpWrap {
			wraps = append(wraps, op)
		}
	}
	require.Len(t, wraps, 2)
	assert.Equal(t, "hero:body_geo", wraps[0].Driver)
	assert.Equal(t, "hero_scalp_plate", wraps[0].Target)
}

func TestWrap_NotInScene(t *testing.T) {
	dir := t.TempDir()
	snap := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(snap, []byte("scene: /proj/s.ma\nreferences: []\n"), 0644))

	_, _, err := runCLI(t, "--scene", snap, "wrap", "hero", "-o", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not referenced")
}

func TestCopyXGen(t *testing.T) {
	project := t.TempDir()
	dest := t.TempDir()
	src := filepath.Join(project, "assets", "hero", "hair", "hero_hair.xgen")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte("FileVersion 18\n"), 0644))

	out, _, err := runCLI(t, "--project", project, "copy-xgen", "--dest", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "[ OK ] hero")
	assert.Contains(t, out, "[SKIP] villain")

	data, err := os.ReadFile(filepath.Join(dest, "hero_hair.xgen"))
	require.NoError(t, err)
	assert.Equal(t, "FileVersion 18\n", string(data))
}

func TestDeleteSetAndUnlock(t *testing.T) {
	out, _, err := runCLI(t, "unlock", "hero", "-o", "-")
	require.NoError(t, err)
	ops := decodeJournal(t, out)
	require.Len(t, ops, 1)
	assert.Equal(t, "hero_scalp_plate", ops[0].Target)

	out, _, err = runCLI(t, "delete-set", "hero", "-o", "-")
	require.NoError(t, err)
	ops = decodeJournal(t, out)
	assert.Equal(t, pipeline.OpDelete, ops[len(ops)-1].Op)
	assert.Equal(t, "hero_hairSetSystem", ops[len(ops)-1].Target)

	out, _, err = runCLI(t, "delete-set", "villain")
	require.NoError(t, err)
	assert.Contains(t, out, "villain_hairSetSystem does not exist")
}

func TestValidate(t *testing.T) {
	out, _, err := runCLI(t, "validate", "../manifest/testdata/valid.xml")
	require.NoError(t, err)
	assert.Contains(t, out, "[ OK ] Valid manifest: 2 character(s)")

	out, _, err = runCLI(t, "validate", "../manifest/testdata/partial.xml")
	require.Error(t, err)
	assert.Contains(t, out, "[FAIL]")
	assert.Contains(t, out, "loading drops")
}

func TestDoctor_Config(t *testing.T) {
	out, _, err := runCLI(t, "doctor", "--check-config")
	require.NoError(t, err)
	assert.Contains(t, out, "[ OK ] manifest = testdata/characters.xml")
	assert.Contains(t, out, "[MISS] project_dir not set")
	assert.Contains(t, out, "[ OK ] manifest version 1.0.0")
}

func TestDoctor_Scene(t *testing.T) {
	out, _, err := runCLI(t, "doctor", "--check-scene")
	require.NoError(t, err)
	assert.Contains(t, out, "[ OK ] reference heroRN -> /proj/assets/hero.ma")
	assert.Contains(t, out, "[WARN] reference brokenRN: reference file not found")
	assert.Contains(t, out, "[ OK ] 2 manifest character(s) referenced in scene")
}

func TestConfigSet(t *testing.T) {
	out, _, err := runCLI(t, "config", "set", "cache_size", "32")
	require.NoError(t, err)
	assert.Equal(t, "Set cache_size = 32\n", out)

	_, _, err = runCLI(t, "config", "set", "mirror", "x")
	require.Error(t, err)
}

// openLogHandles counts descriptors of this process that point at the log file.
func openLogHandles(t *testing.T, home string) int {
	t.Helper()
	fds, err := os.ReadDir("/proc/self/fd")
	if err != nil {
		t.Skip("no /proc/self/fd on this platform")
	}
	logPath := filepath.Join(home, "logs", "lettuce.log")
	n := 0
	for _, fd := range fds {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", fd.Name()))
		if err == nil && target == logPath {
			n++
		}
	}
	return n
}

func TestRun_ClosesLogOnError(t *testing.T) {
	_, _, err := runCLI(t, "show", "nobody")
	require.Error(t, err)

	home := os.Getenv("LETTUCE_HOME")
	require.FileExists(t, filepath.Join(home, "logs", "lettuce.log"))
	assert.Zero(t, openLogHandles(t, home))
}
