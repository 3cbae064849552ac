package scene

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/initcard/lettuce/internal/manifest"
)

// Match is one (mesh object, reference) pair that put a character in the
// result.
type Match struct {
	Character   string `json:"character"`
	MeshVersion string `json:"meshVersion"`
	Reference   string `json:"reference,omitempty"`
	Path        string `json:"path"`
}

// Result is the outcome of Resolve.
type Result struct {
	// Characters holds one entry per match, in input order. A character whose
	// mesh objects match several references appears several times; use
	// Unique when a set is needed.
	Characters []*manifest.Character
	Matches    []Match
	Skipped    []*ReferenceQueryError
}

// Resolve returns the characters whose mesh files are referenced into the
// scene. For every character, mesh object and reference it resolves the
// reference's file, normalizes it and checks whether the mesh object's
// OrigMeshFile is a substring of it. References that fail to resolve are
// recorded in Result.Skipped and the scan continues. Failing to list the
// references at all is returned as an error.
//
// Reference files are queried once per mesh object; wrap q with
// NewCachedQuerier when the host is slow.
func Resolve(ctx context.Context, characters []*manifest.Character, q Querier) (*Result, error) {
	refs, err := q.References(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing scene references: %w", err)
	}

	res := &Result{}
	skipped := map[string]bool{}
	for _, c := range characters {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, mobj := range c.MeshObjects {
			for _, ref := range refs {
				path, err := q.ReferenceFile(ctx, ref)
				if err != nil {
					if !skipped[ref] {
						skipped[ref] = true
						res.Skipped = append(res.Skipped, &ReferenceQueryError{Reference: ref, Err: err})
					}
					continue
				}
				path = filepath.Clean(path)
				if !matches(mobj.OrigMeshFile, path) {
					continue
				}
				res.Characters = append(res.Characters, c)
				res.Matches = append(res.Matches, Match{
					Character:   c.Name,
					MeshVersion: mobj.Version,
					Reference:   ref,
					Path:        path,
				})
			}
		}
	}
	return res, nil
}

// ResolvePaths is Resolve over reference paths that were already resolved.
// It has the same ordering and duplication behavior.
func ResolvePaths(characters []*manifest.Character, paths []string) []*manifest.Character {
	var out []*manifest.Character
	for _, c := range characters {
		for _, mobj := range c.MeshObjects {
			for _, p := range paths {
				if matches(mobj.OrigMeshFile, filepath.Clean(p)) {
					out = append(out, c)
				}
			}
		}
	}
	return out
}

// Unique drops repeated characters, keeping the first occurrence.
func Unique(characters []*manifest.Character) []*manifest.Character {
	seen := make(map[*manifest.Character]bool, len(characters))
	out := make([]*manifest.Character, 0, len(characters))
	for _, c := range characters {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// matches reports whether fragment occurs in path. Comparison is plain
// substring containment, so "assets/hero.ma" also matches
// "/proj/assets/hero.ma.bak". Unlike plain containment, an empty fragment
// never matches, so a mesh object without a file finds nothing.
func matches(fragment, path string) bool {
	if fragment == "" {
		return false
	}
	return strings.Contains(path, filepath.FromSlash(fragment))
}
