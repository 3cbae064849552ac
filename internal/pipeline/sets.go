package pipeline

import "fmt"

// DeleteSet removes a set and its members. References that own members are
// unloaded first, then every member is deleted; members that fail to delete
// are reported as warnings. A missing set is not an error.
func DeleteSet(ed Editor, name string) ([]string, error) {
	if !ed.ObjectExists(name) {
		return nil, nil
	}

	members, err := ed.SetMembers(name)
	if err != nil {
		return nil, fmt.Errorf("listing members of %s: %w", name, err)
	}

	var warnings []string
	seen := map[string]bool{}
	for _, m := range members {
		ref, ok := ed.ReferenceOf(m)
		if !ok || seen[ref] {
			continue
		}
		seen[ref] = true

		file, err := ed.ReferenceFile(ref)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("reference %s: %v", ref, err))
			continue
		}
		if err := ed.RemoveReference(file); err != nil {
			warnings = append(warnings, fmt.Sprintf("removing reference %s: %v", file, err))
		}
	}

	for _, m := range members {
		if _, ok := ed.ReferenceOf(m); ok {
			continue
		}
		if err := ed.Delete(m); err != nil {
			warnings = append(warnings, fmt.Sprintf("deleting %s: %v", m, err))
		}
	}

	if err := ed.Delete(name); err != nil {
		return warnings, fmt.Errorf("deleting set %s: %w", name, err)
	}
	return warnings, nil
}

// UnlockNodes unlocks every locked member of a set and returns the nodes it
// unlocked.
func UnlockNodes(ed Editor, name string) ([]string, error) {
	if !ed.ObjectExists(name) {
		return nil, nil
	}
	members, err := ed.SetMembers(name)
	if err != nil {
		return nil, fmt.Errorf("listing members of %s: %w", name, err)
	}

	var unlocked []string
	for _, m := range members {
		if !ed.IsLocked(m) {
			continue
		}
		if err := ed.Unlock(m); err != nil {
			return unlocked, fmt.Errorf("unlocking %s: %w", m, err)
		}
		unlocked = append(unlocked, m)
	}
	return unlocked, nil
}
