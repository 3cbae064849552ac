package config

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// CheckCompatible reports whether a project's manifest version can be read
// by a build that supports the given version. Versions are compatible when
// the major versions match and the project is not newer than the build.
func CheckCompatible(project, supported string) error {
	pv, err := parseSemver(project)
	if err != nil {
		return fmt.Errorf("parsing manifest version %q: %w", project, err)
	}
	sv, err := parseSemver(supported)
	if err != nil {
		return fmt.Errorf("parsing supported version %q: %w", supported, err)
	}
	if pv.Major() != sv.Major() {
		return fmt.Errorf("manifest version %s is not compatible with supported version %s", pv, sv)
	}
	if pv.GreaterThan(sv) {
		return fmt.Errorf("manifest version %s is newer than supported version %s", pv, sv)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
