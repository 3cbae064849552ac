//go:build integration

package integration_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir    string // LETTUCE_HOME
	ProjectDir string // project root with assets/ and scenes/
	Manifest   string // characters.xml inside the project
	Snapshot   string // scene snapshot exported for shot010
	SceneDir   string // folder of the snapshot's scene file
}

// setupTestEnv creates an isolated home and a synthetic project with two
// characters, their hair files and a scene that references one of them.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	project := t.TempDir()
	env := &testEnv{
		HomeDir:    t.TempDir(),
		ProjectDir: project,
		Manifest:   filepath.Join(project, "pipeline", "characters.xml"),
		Snapshot:   filepath.Join(project, "scenes", "shot010", "shot010.snapshot.yaml"),
		SceneDir:   filepath.Join(project, "scenes", "shot010"),
	}
	t.Setenv("LETTUCE_HOME", env.HomeDir)

	writeFile(t, filepath.Join(project, "assets", "hero", "hair", "hero_hair.xgen"), "FileVersion 18\n")
	writeFile(t, filepath.Join(project, "assets", "hero", "hair", "hero_hair.ma"), "//Maya ASCII scene\n")
	writeFile(t, filepath.Join(project, "assets", "villain", "hair", "villain_hair.xgen"), "FileVersion 18\n")
	writeFile(t, filepath.Join(project, "assets", "hero.ma"), "//Maya ASCII scene\n")

	writeFile(t, env.Manifest, fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<characters>
  <character name="hero" altName="The Hero">
    <collection version="default">
      <mayaFile>%[1]s/assets/hero/hair/hero_hair.ma</mayaFile>
      <xgenFile>assets/hero/hair/hero_hair.xgen</xgenFile>
      <hairPlate>hero_scalp_plate</hairPlate>
    </collection>
    <collection version="v2">
      <mayaFile>%[1]s/assets/hero/hair/hero_hair_v2.ma</mayaFile>
      <xgenFile>assets/hero/hair/hero_hair_v2.xgen</xgenFile>
      <hairPlate>hero_scalp_plate</hairPlate>
    </collection>
    <mayaObject version="default">
      <mayaFile>assets/hero.ma</mayaFile>
      <characterMesh>body_geo</characterMesh>
    </mayaObject>
  </character>
  <character name="villain">
    <collection version="default">
      <mayaFile>%[1]s/assets/villain/hair/villain_hair.ma</mayaFile>
      <xgenFile>assets/villain/hair/villain_hair.xgen</xgenFile>
    </collection>
    <mayaObject version="default">
      <mayaFile>assets/villain.ma</mayaFile>
      <characterMesh>villain_geo</characterMesh>
    </mayaObject>
  </character>
</characters>
`, project))

	writeFile(t, env.Snapshot, fmt.Sprintf(`scene: %[1]s/scenes/shot010/shot010_anim_v001.ma
project: %[1]s
references:
  - id: heroRN
    file: %[1]s/assets/hero.ma
    namespace: hero
  - id: lostRN
    error: reference file not found
nodes:
  - hero:body_geo
  - hero:body_skinCluster
  - hero_scalp_plate
types:
  hero:body_skinCluster: skinCluster
history:
  hero:body_geo: [hero:body_geo, hero:body_skinCluster]
attributes:
  hero:body_skinCluster: [envelope]
referenced:
  hero:body_geo: heroRN
`, project))

	return env
}

// writeFile creates a file with the given content, creating parent dirs as needed.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the path does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s", path)
	}
}

// assertNotExists fails the test if the path exists.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected path to not exist: %s", path)
	}
}
