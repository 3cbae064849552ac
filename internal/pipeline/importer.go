package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/initcard/lettuce/internal/manifest"
)

// ImportOptions configures ImportHair.
type ImportOptions struct {
	Now      func() time.Time // clock for the set description, defaults to time.Now
	Progress ProgressFunc
}

// ImportHair imports each character's default collection hair system and
// groups the new nodes into <name>_hairSetSystem. A set left by a previous
// import is deleted first. Cancelling ctx stops the run between characters;
// packages created so far are returned with the error.
func ImportHair(ctx context.Context, ed Editor, characters []*manifest.Character, opts ImportOptions) ([]SetPackage, []string, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	var pkgs []SetPackage
	var warnings []string
	for i, c := range characters {
		setName := HairSetName(c.Name)

		w, err := DeleteSet(ed, setName)
		warnings = append(warnings, w...)
		if err != nil {
			return pkgs, warnings, fmt.Errorf("removing previous hair set for %s: %w", c.Name, err)
		}

		if err := ctx.Err(); err != nil {
			return pkgs, warnings, err
		}

		col := c.DefaultCollection()
		if col.MayaFile == "" {
			warnings = append(warnings, fmt.Sprintf("%s: collection %q has no hair scene file", c.Name, col.Version))
			report(opts.Progress, i+1, len(characters), c.Name)
			continue
		}

		nodes, err := ed.Import(ctx, col.MayaFile)
		if err != nil {
			return pkgs, warnings, fmt.Errorf("importing %s for %s: %w", col.MayaFile, c.Name, err)
		}

		if err := ed.CreateSet(setName, nodes, setDescription(c.Name, now())); err != nil {
			return pkgs, warnings, fmt.Errorf("creating set %s: %w", setName, err)
		}
		pkgs = append(pkgs, SetPackage{Name: setName, Character: c.Name, Nodes: nodes})
		report(opts.Progress, i+1, len(characters), c.Name)
	}
	return pkgs, warnings, nil
}

// Cleanup deletes the package's set and everything in it.
func (p SetPackage) Cleanup(ed Editor) ([]string, error) {
	return DeleteSet(ed, p.Name)
}

func setDescription(character string, t time.Time) string {
	return fmt.Sprintf("Contains the hair setup for %s.  Created at %s on %s.",
		character, t.Format("15:04:05"), t.Format("060102"))
}
