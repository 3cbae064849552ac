package pipeline

import "context"

// HairSetSuffix is appended to a character name to form the set that holds
// its imported hair system.
const HairSetSuffix = "_hairSetSystem"

// Editor is the host surface the pipeline mutates the scene through.
type Editor interface {
	ObjectExists(name string) bool

	// Import brings a scene file into the open scene and returns the new
	// node names.
	Import(ctx context.Context, file string) ([]string, error)

	CreateSet(name string, nodes []string, text string) error
	SetMembers(name string) ([]string, error)
	Delete(node string) error

	// ReferenceOf returns the reference node a node was loaded from, or
	// false for nodes that live in the scene itself.
	ReferenceOf(node string) (string, bool)
	ReferenceFile(refNode string) (string, error)
	RemoveReference(file string) error

	IsLocked(node string) bool
	Unlock(node string) error

	History(node string) ([]string, error)
	NodeType(node string) string
	Attributes(node string) []string
	SetAttr(attr string, value float64) error
	CreateWrap(driver, driven string, opts WrapOptions) (string, error)
}

// SetPackage pairs the nodes created by one import with the set they were
// grouped under. It is handed back to the caller, who passes it to Cleanup
// when the import should be undone.
type SetPackage struct {
	Name      string   `json:"name" yaml:"name"`
	Character string   `json:"character" yaml:"character"`
	Nodes     []string `json:"nodes" yaml:"nodes"`
}

// ProgressFunc is called after each character is processed.
type ProgressFunc func(step, total int, label string)

// WrapOptions are the wrap deformer settings.
type WrapOptions struct {
	WeightThreshold     float64 `json:"weightThreshold" yaml:"weightThreshold"`
	MaxDistance         float64 `json:"maxDistance" yaml:"maxDistance"`
	ExclusiveBind       bool    `json:"exclusiveBind" yaml:"exclusiveBind"`
	AutoWeightThreshold bool    `json:"autoWeightThreshold" yaml:"autoWeightThreshold"`
	FalloffMode         int     `json:"falloffMode" yaml:"falloffMode"`
}

// DefaultWrapOptions returns the deformer's stock settings.
func DefaultWrapOptions() WrapOptions {
	return WrapOptions{
		WeightThreshold:     0.0,
		MaxDistance:         1.0,
		ExclusiveBind:       false,
		AutoWeightThreshold: true,
		FalloffMode:         0,
	}
}

// HairPlateWrapOptions returns the settings used when binding hair plates:
// exclusive bind with surface falloff.
func HairPlateWrapOptions() WrapOptions {
	opts := DefaultWrapOptions()
	opts.ExclusiveBind = true
	opts.FalloffMode = 1
	return opts
}

// HairSetName returns the set name used for a character's hair system.
func HairSetName(character string) string {
	return character + HairSetSuffix
}

func report(progress ProgressFunc, step, total int, label string) {
	if progress != nil {
		progress(step, total, label)
	}
}
