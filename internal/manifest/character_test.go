package manifest

import (
	"errors"
	"testing"
)

func loadHero(t *testing.T) *Character {
	t.Helper()
	m, err := ParseFile(testPath("valid.xml"))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	hero, err := m.Character("hero")
	if err != nil {
		t.Fatalf("Character(hero): %v", err)
	}
	return hero
}

func collections(versions ...string) []Collection {
	cols := make([]Collection, len(versions))
	for i, v := range versions {
		cols[i] = Collection{Version: v, MayaFile: v + ".ma", XGenFile: v + ".xgen"}
	}
	return cols
}

func meshObjects(versions ...string) []MeshObject {
	mobjs := make([]MeshObject, len(versions))
	for i, v := range versions {
		mobjs[i] = MeshObject{Version: v, OrigMeshFile: v + ".ma", MeshNodeName: v + "_geo"}
	}
	return mobjs
}

func TestDefaultCollection(t *testing.T) {
	tests := []struct {
		name     string
		versions []string
		want     string
	}{
		{"default first", []string{"default", "v1"}, "default"},
		{"default middle", []string{"v1", "default", "v2"}, "default"},
		{"default last", []string{"v1", "v2", "default"}, "default"},
		{"no default", []string{"v3", "v1"}, "v3"},
		{"single", []string{"v1"}, "v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCharacter("hero", "", collections(tt.versions...), meshObjects("v1"))
			if err != nil {
				t.Fatalf("newCharacter: %v", err)
			}
			if got := c.DefaultCollection().Version; got != tt.want {
				t.Errorf("DefaultCollection().Version = %q, want %q", got, tt.want)
			}
			if got := c.CurrentCollection().Version; got != tt.want {
				t.Errorf("CurrentCollection().Version = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultMeshObject(t *testing.T) {
	c, err := newCharacter("hero", "", collections("v1"), meshObjects("v1", "default"))
	if err != nil {
		t.Fatalf("newCharacter: %v", err)
	}
	if got := c.DefaultMeshObject().Version; got != "default" {
		t.Errorf("DefaultMeshObject().Version = %q, want %q", got, "default")
	}
	if got := c.CurrentMeshObject().Version; got != "default" {
		t.Errorf("CurrentMeshObject().Version = %q, want %q", got, "default")
	}

	c, err = newCharacter("hero", "", collections("v1"), meshObjects("v2", "v1"))
	if err != nil {
		t.Fatalf("newCharacter: %v", err)
	}
	if got := c.DefaultMeshObject().Version; got != "v2" {
		t.Errorf("DefaultMeshObject().Version = %q, want %q", got, "v2")
	}
}

func TestNewCharacter_RequiresBothSequences(t *testing.T) {
	if _, err := newCharacter("hero", "", nil, meshObjects("v1")); !errors.Is(err, errEmptyCollections) {
		t.Errorf("expected errEmptyCollections, got %v", err)
	}
	if _, err := newCharacter("hero", "", collections("v1"), nil); !errors.Is(err, errEmptyMeshObjects) {
		t.Errorf("expected errEmptyMeshObjects, got %v", err)
	}
	if _, err := newCharacter("", "", collections("v1"), meshObjects("v1")); !errors.Is(err, errMissingName) {
		t.Errorf("expected errMissingName, got %v", err)
	}
}

func TestSetCurrentCollection(t *testing.T) {
	hero := loadHero(t)
	if got := hero.CurrentCollection().Version; got != "default" {
		t.Fatalf("initial CurrentCollection = %q, want default", got)
	}

	if err := hero.SetCurrentCollection("v2"); err != nil {
		t.Fatalf("SetCurrentCollection(v2): %v", err)
	}
	cur := hero.CurrentCollection()
	if cur.Version != "v2" {
		t.Errorf("CurrentCollection().Version = %q, want v2", cur.Version)
	}
	if cur.XGenFile != "assets/hero/hair/hero_hair_v2.xgen" {
		t.Errorf("CurrentCollection().XGenFile = %q", cur.XGenFile)
	}
}

func TestSetCurrentCollection_UnknownLeavesStateUnchanged(t *testing.T) {
	hero := loadHero(t)
	if err := hero.SetCurrentCollection("v2"); err != nil {
		t.Fatalf("SetCurrentCollection(v2): %v", err)
	}

	err := hero.SetCurrentCollection("v9")
	if err == nil {
		t.Fatal("expected error for unknown version, got nil")
	}
	var ne *NameError
	if !errors.As(err, &ne) {
		t.Fatalf("expected *NameError, got %T", err)
	}
	if ne.Version != "v9" || ne.Character != "hero" {
		t.Errorf("NameError = %+v", ne)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("NameError should wrap ErrNotFound")
	}
	if got := hero.CurrentCollection().Version; got != "v2" {
		t.Errorf("CurrentCollection().Version = %q after failed set, want v2", got)
	}
}

func TestSetCurrentMeshObject(t *testing.T) {
	c, err := newCharacter("hero", "", collections("v1"), meshObjects("v1", "v2"))
	if err != nil {
		t.Fatalf("newCharacter: %v", err)
	}
	if err := c.SetCurrentMeshObject("v2"); err != nil {
		t.Fatalf("SetCurrentMeshObject(v2): %v", err)
	}
	if got := c.CurrentMeshObject().MeshNodeName; got != "v2_geo" {
		t.Errorf("CurrentMeshObject().MeshNodeName = %q, want v2_geo", got)
	}
	if err := c.SetCurrentMeshObject("nope"); err == nil {
		t.Fatal("expected error for unknown mesh version")
	}
	if got := c.CurrentMeshObject().Version; got != "v2" {
		t.Errorf("CurrentMeshObject().Version = %q after failed set, want v2", got)
	}

	c.ResetSelection()
	if got := c.CurrentMeshObject().Version; got != "v1" {
		t.Errorf("CurrentMeshObject().Version after reset = %q, want v1", got)
	}
}

func TestLookupCollection_FirstMatchWins(t *testing.T) {
	m, err := ParseFile(testPath("duplicate.xml"))
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}
	hero := m.Characters[0]
	for i := 0; i < 3; i++ {
		col, err := hero.LookupCollection("v1")
		if err != nil {
			t.Fatalf("LookupCollection(v1): %v", err)
		}
		if col.MayaFile != "first.ma" {
			t.Errorf("LookupCollection(v1).MayaFile = %q, want first.ma", col.MayaFile)
		}
	}
	if err := hero.SetCurrentCollection("v1"); err != nil {
		t.Fatalf("SetCurrentCollection(v1): %v", err)
	}
	if hero.CurrentCollection().MayaFile != "first.ma" {
		t.Errorf("CurrentCollection().MayaFile = %q, want first.ma", hero.CurrentCollection().MayaFile)
	}
}

func TestLookupCollection_NotFound(t *testing.T) {
	hero := loadHero(t)
	_, err := hero.LookupCollection("v9")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T", err)
	}
	if nf.Kind != "collection" || nf.Key != "v9" || nf.Character != "hero" {
		t.Errorf("NotFoundError = %+v", nf)
	}
}

func TestLookupMeshObject(t *testing.T) {
	hero := loadHero(t)
	mobj, err := hero.LookupMeshObject("default")
	if err != nil {
		t.Fatalf("LookupMeshObject(default): %v", err)
	}
	if mobj.MeshNodeName != "body_geo" {
		t.Errorf("MeshNodeName = %q, want body_geo", mobj.MeshNodeName)
	}
	if _, err := hero.LookupMeshObject("v7"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCurrentSelection_ShortenedSlicesFallBackToDefault(t *testing.T) {
	c, err := newCharacter("hero", "", collections("default", "v1", "v2"), meshObjects("default", "v1"))
	if err != nil {
		t.Fatalf("newCharacter: %v", err)
	}
	if err := c.SetCurrentCollection("v2"); err != nil {
		t.Fatalf("SetCurrentCollection(v2): %v", err)
	}
	if err := c.SetCurrentMeshObject("v1"); err != nil {
		t.Fatalf("SetCurrentMeshObject(v1): %v", err)
	}

	c.Collections = c.Collections[:1]
	c.MeshObjects = c.MeshObjects[:1]

	if got := c.CurrentCollection().Version; got != "default" {
		t.Errorf("CurrentCollection().Version = %q, want default", got)
	}
	if got := c.CurrentMeshObject().Version; got != "default" {
		t.Errorf("CurrentMeshObject().Version = %q, want default", got)
	}
}
