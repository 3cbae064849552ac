package scene

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ErrUnknownReference is returned for a reference id the snapshot does not
// list.
var ErrUnknownReference = errors.New("unknown reference")

var _ Querier = (*Snapshot)(nil)

// Snapshot is the state of an open scene as exported by the host
// application: the scene file, the project root, every loaded reference and
// the scene's node names. The optional node tables feed the pipeline's
// recording editor.
type Snapshot struct {
	Scene   string      `yaml:"scene"`
	Project string      `yaml:"project"`
	Refs    []Reference `yaml:"references"`
	Nodes   []string    `yaml:"nodes,omitempty"`

	Sets       map[string][]string `yaml:"sets,omitempty"`       // set name -> members
	Locked     []string            `yaml:"locked,omitempty"`     // locked nodes
	Types      map[string]string   `yaml:"types,omitempty"`      // node -> node type
	History    map[string][]string `yaml:"history,omitempty"`    // node -> upstream history
	Attributes map[string][]string `yaml:"attributes,omitempty"` // node -> leaf attributes
	Referenced map[string]string   `yaml:"referenced,omitempty"` // node -> owning reference id

	path   string
	nodes  map[string]bool
	locked map[string]bool
}

// Reference is one loaded reference. Error is set instead of File when the
// host could not resolve it.
type Reference struct {
	ID        string `yaml:"id"`
	File      string `yaml:"file,omitempty"`
	Namespace string `yaml:"namespace,omitempty"`
	Error     string `yaml:"error,omitempty"`
}

// LoadSnapshot reads a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene snapshot %s: %w", path, err)
	}
	s, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("parsing scene snapshot %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// ParseSnapshot decodes snapshot YAML.
func ParseSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	for i, ref := range s.Refs {
		if ref.ID == "" {
			return nil, fmt.Errorf("reference %d has no id", i)
		}
	}
	s.index()
	return &s, nil
}

func (s *Snapshot) index() {
	s.nodes = make(map[string]bool, len(s.Nodes))
	for _, n := range s.Nodes {
		s.nodes[n] = true
	}
	for name := range s.Sets {
		s.nodes[name] = true
	}
	s.locked = make(map[string]bool, len(s.Locked))
	for _, n := range s.Locked {
		s.locked[n] = true
	}
}

// Path returns the file the snapshot was loaded from, if any.
func (s *Snapshot) Path() string { return s.path }

// References implements ReferenceLister.
func (s *Snapshot) References(ctx context.Context) ([]string, error) {
	ids := make([]string, len(s.Refs))
	for i, ref := range s.Refs {
		ids[i] = ref.ID
	}
	return ids, nil
}

// ReferenceFile implements ReferenceResolver.
func (s *Snapshot) ReferenceFile(ctx context.Context, id string) (string, error) {
	for _, ref := range s.Refs {
		if ref.ID != id {
			continue
		}
		if ref.Error != "" {
			return "", errors.New(ref.Error)
		}
		if ref.File == "" {
			return "", fmt.Errorf("reference %s has no file", id)
		}
		return ref.File, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownReference, id)
}

// ObjectExists reports whether the scene has a node with the given name.
func (s *Snapshot) ObjectExists(name string) bool {
	if s.nodes == nil {
		s.index()
	}
	return s.nodes[name]
}

// SetMembers returns the members of a set listed in the snapshot.
func (s *Snapshot) SetMembers(name string) ([]string, bool) {
	members, ok := s.Sets[name]
	return members, ok
}

// IsLocked reports whether node is locked.
func (s *Snapshot) IsLocked(node string) bool {
	if s.locked == nil {
		s.index()
	}
	return s.locked[node]
}

// NodeType returns the node's type, or "" when unknown.
func (s *Snapshot) NodeType(node string) string {
	return s.Types[node]
}

// NodeHistory returns the upstream history of node.
func (s *Snapshot) NodeHistory(node string) []string {
	return s.History[node]
}

// NodeAttributes returns the leaf attributes of node.
func (s *Snapshot) NodeAttributes(node string) []string {
	return s.Attributes[node]
}

// ReferenceOf returns the reference a node was loaded from.
func (s *Snapshot) ReferenceOf(node string) (string, bool) {
	id, ok := s.Referenced[node]
	return id, ok
}

// Namespace returns the namespace a reference's nodes live under.
func (s *Snapshot) Namespace(id string) string {
	for _, ref := range s.Refs {
		if ref.ID == id {
			return ref.Namespace
		}
	}
	return ""
}

// SceneDir returns the directory of the open scene file.
func (s *Snapshot) SceneDir() string {
	if s.Scene == "" {
		return ""
	}
	return filepath.Dir(s.Scene)
}
