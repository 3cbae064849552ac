package pipeline

import (
	"errors"
	"fmt"
	"slices"

	"github.com/initcard/lettuce/internal/manifest"
)

// Node types skipped when looking for deformers in a mesh's history.
var ignoredHistoryTypes = []string{"joint", "animCurveUU"}

// WrapResult lists what WrapHairPlates touched.
type WrapResult struct {
	Mesh      string   `json:"mesh"`
	Wraps     []string `json:"wraps"`
	Deformers []string `json:"deformers"` // deformers switched off while binding
}

// QualifiedName prefixes node with namespace, if any.
func QualifiedName(namespace, node string) string {
	if namespace == "" {
		return node
	}
	return namespace + ":" + node
}

// WrapHairPlates binds every hair plate of the character's current
// collection to its current mesh with a wrap deformer. Deformers in the
// mesh's history are switched off during binding so plates bind to the rest
// pose. Every deformer that was switched off is switched back on afterwards,
// even when disabling another deformer or a wrap fails.
func WrapHairPlates(ed Editor, c *manifest.Character, namespace string) (res *WrapResult, err error) {
	mobj := c.CurrentMeshObject()
	if mobj.MeshNodeName == "" {
		return nil, fmt.Errorf("%s: mesh object %q has no mesh node", c.Name, mobj.Version)
	}
	mesh := QualifiedName(namespace, mobj.MeshNodeName)
	res = &WrapResult{Mesh: mesh}

	history, err := ed.History(mesh)
	if err != nil {
		return nil, fmt.Errorf("listing history of %s: %w", mesh, err)
	}
	for _, n := range FilterNodeTypes(ed, history, ignoredHistoryTypes...) {
		if slices.Contains(ed.Attributes(n), "envelope") {
			res.Deformers = append(res.Deformers, n)
		}
	}

	var disabled []string
	defer func() {
		var errs []error
		for _, d := range disabled {
			if serr := ed.SetAttr(d+".envelope", 1); serr != nil {
				errs = append(errs, fmt.Errorf("re-enabling %s: %w", d, serr))
			}
		}
		if len(errs) > 0 {
			err = errors.Join(append([]error{err}, errs...)...)
		}
	}()
	for _, d := range res.Deformers {
		if err := ed.SetAttr(d+".envelope", 0); err != nil {
			return res, fmt.Errorf("disabling %s: %w", d, err)
		}
		disabled = append(disabled, d)
	}

	opts := HairPlateWrapOptions()
	for _, plate := range c.CurrentCollection().HairPlates {
		wrap, werr := ed.CreateWrap(mesh, plate, opts)
		if werr != nil {
			return res, fmt.Errorf("wrapping %s to %s: %w", plate, mesh, werr)
		}
		res.Wraps = append(res.Wraps, wrap)
	}
	return res, nil
}

// FilterNodeTypes returns the nodes whose type is not one of excluded.
func FilterNodeTypes(ed Editor, nodes []string, excluded ...string) []string {
	var out []string
	for _, n := range nodes {
		if slices.Contains(excluded, ed.NodeType(n)) {
			continue
		}
		out = append(out, n)
	}
	return out
}
