package manifest

import (
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// LatestCollection returns the collection with the highest semantic version.
// Versions that do not parse (including "default") are ignored. When no
// version parses the default collection is returned.
func (c *Character) LatestCollection() *Collection {
	best := -1
	var bestVer *semver.Version
	for i, col := range c.Collections {
		v, err := parseVersion(col.Version)
		if err != nil {
			continue
		}
		if bestVer == nil || v.GreaterThan(bestVer) {
			best, bestVer = i, v
		}
	}
	if best < 0 {
		return c.DefaultCollection()
	}
	return &c.Collections[best]
}

// SortedVersions returns the collection versions ordered for display:
// "default" first, then semantic versions ascending, then anything else in
// document order.
func (c *Character) SortedVersions() []string {
	type entry struct {
		name string
		ver  *semver.Version
		pos  int
	}
	var entries []entry
	for i, col := range c.Collections {
		v, _ := parseVersion(col.Version)
		entries = append(entries, entry{name: col.Version, ver: v, pos: i})
	}

	rank := func(e entry) int {
		switch {
		case e.name == DefaultVersion:
			return 0
		case e.ver != nil:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := rank(entries[i]), rank(entries[j])
		if ri != rj {
			return ri < rj
		}
		if ri == 1 {
			return entries[i].ver.LessThan(entries[j].ver)
		}
		return entries[i].pos < entries[j].pos
	})

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.name
	}
	return out
}

// parseVersion strips a leading "v" and parses the version string, so "v2"
// and "2.1" are both accepted.
func parseVersion(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(strings.TrimSpace(version), "v")
	return semver.NewVersion(version)
}
