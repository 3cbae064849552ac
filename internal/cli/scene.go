package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/initcard/lettuce/internal/branding"
	"github.com/initcard/lettuce/internal/manifest"
	"github.com/initcard/lettuce/internal/scene"
)

// loadManifest parses the configured manifest. Dropped elements are logged.
func loadManifest() (*manifest.Manifest, error) {
	if settings.Manifest == "" {
		return nil, fmt.Errorf("no manifest configured; pass --manifest or run '%s config set manifest <path>'", branding.CLIName())
	}
	m, err := manifest.ParseFile(settings.Manifest)
	if err != nil {
		return nil, err
	}
	for _, e := range m.Errors {
		logger.Warn("manifest element dropped", "path", m.Path, "element", e.Element, "reason", e.Reason)
	}
	logger.Info("manifest loaded", "path", m.Path, "characters", len(m.Characters))
	return m, nil
}

// loadSnapshot reads the configured scene snapshot.
func loadSnapshot() (*scene.Snapshot, error) {
	if settings.SceneFile == "" {
		return nil, fmt.Errorf("no scene snapshot configured; pass --scene or run '%s config set scene_file <path>'", branding.CLIName())
	}
	return scene.LoadSnapshot(settings.SceneFile)
}

// sceneState is everything the scene commands work from.
type sceneState struct {
	manifest *manifest.Manifest
	snapshot *scene.Snapshot
	result   *scene.Result
}

// resolveScene loads the manifest and snapshot and finds the characters
// referenced in the scene.
func resolveScene(ctx context.Context) (*sceneState, error) {
	m, err := loadManifest()
	if err != nil {
		return nil, err
	}
	snap, err := loadSnapshot()
	if err != nil {
		return nil, err
	}
	q, err := scene.NewCachedQuerier(snap, settings.CacheSize)
	if err != nil {
		return nil, err
	}
	res, err := scene.Resolve(ctx, m.Characters, q)
	if err != nil {
		return nil, err
	}
	for _, e := range res.Skipped {
		logger.Warn("reference skipped", "reference", e.Reference, "err", e.Err)
	}
	logger.Info("scene resolved", "scene", snap.Scene, "matches", len(res.Matches), "skipped", len(res.Skipped))
	return &sceneState{manifest: m, snapshot: snap, result: res}, nil
}

// projectDir is the configured project directory, else the snapshot's.
func (s *sceneState) projectDir() string {
	if settings.ProjectDir != "" {
		return settings.ProjectDir
	}
	return s.snapshot.Project
}

// match returns the first scene match for a character.
func (s *sceneState) match(name string) (*scene.Match, error) {
	if _, err := s.manifest.Character(name); err != nil {
		return nil, err
	}
	for i := range s.result.Matches {
		if s.result.Matches[i].Character == name {
			return &s.result.Matches[i], nil
		}
	}
	return nil, fmt.Errorf("character %q is not referenced in %s", name, s.snapshot.Scene)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// errNoCharacters is returned by scene commands when nothing matched.
var errNoCharacters = errors.New("no manifest characters are referenced in the scene")
