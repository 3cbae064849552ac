package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/initcard/lettuce/internal/manifest"
	"github.com/initcard/lettuce/internal/scene"
)

func loadCharacters(t *testing.T) []*manifest.Character {
	t.Helper()
	m, err := manifest.ParseFile("testdata/characters.xml")
	require.NoError(t, err)
	require.Empty(t, m.Errors)
	return m.Characters
}

func character(t *testing.T, name string) *manifest.Character {
	t.Helper()
	for _, c := range loadCharacters(t) {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no character %q in testdata", name)
	return nil
}

func loadJournal(t *testing.T) *Journal {
	t.Helper()
	snap, err := scene.LoadSnapshot("testdata/shot010.yaml")
	require.NoError(t, err)
	return NewJournal(snap)
}

func opKinds(ops []Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Op
	}
	return out
}

// failingEditor wraps a Journal and fails selected calls.
type failingEditor struct {
	*Journal
	failDelete map[string]bool
	failWrap   map[string]bool
	failImport bool
	failAttr   map[string]bool // attributes that refuse to be set to 0
}

func (f *failingEditor) SetAttr(attr string, value float64) error {
	if value == 0 && f.failAttr[attr] {
		return errors.New("locked attribute")
	}
	return f.Journal.SetAttr(attr, value)
}

func (f *failingEditor) Delete(node string) error {
	if f.failDelete[node] {
		return errors.New("node is read-only")
	}
	return f.Journal.Delete(node)
}

func (f *failingEditor) CreateWrap(driver, driven string, opts WrapOptions) (string, error) {
	if f.failWrap[driven] {
		return "", errors.New("driven object has no shape")
	}
	return f.Journal.CreateWrap(driver, driven, opts)
}

func (f *failingEditor) Import(ctx context.Context, file string) ([]string, error) {
	if f.failImport {
		return nil, errors.New("file format not recognized")
	}
	return f.Journal.Import(ctx, file)
}
