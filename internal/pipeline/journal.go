package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.yaml.in/yaml/v3"

	"github.com/initcard/lettuce/internal/scene"
)

// Op kinds recorded by Journal.
const (
	OpImport          = "import"
	OpCreateSet       = "createSet"
	OpDelete          = "delete"
	OpRemoveReference = "removeReference"
	OpUnlock          = "unlock"
	OpSetAttr         = "setAttr"
	OpWrap            = "wrap"
)

// Op is one recorded scene change.
type Op struct {
	Op      string       `yaml:"op"`
	Target  string       `yaml:"target,omitempty"`
	File    string       `yaml:"file,omitempty"`
	Nodes   []string     `yaml:"nodes,omitempty"`
	Text    string       `yaml:"text,omitempty"`
	Driver  string       `yaml:"driver,omitempty"`
	Value   *float64     `yaml:"value,omitempty"`
	Options *WrapOptions `yaml:"options,omitempty"`
}

// Journal is an Editor that answers queries from a scene snapshot and
// records every change instead of applying it. The host application replays
// the recorded ops in order.
//
// Nodes created by an import are not known until the host runs it, so
// Import returns a single placeholder "$import<N>" that later ops refer to.
// Wraps likewise return "$wrap<N>".
type Journal struct {
	Ops []Op

	snap     *scene.Snapshot
	sets     map[string][]string
	deleted  map[string]bool
	unlocked map[string]bool
	removed  map[string]bool
	imports  int
	wraps    int
}

// NewJournal returns a journal over snap. A nil snapshot is treated as an
// empty scene.
func NewJournal(snap *scene.Snapshot) *Journal {
	if snap == nil {
		snap = &scene.Snapshot{}
	}
	return &Journal{
		snap:     snap,
		sets:     map[string][]string{},
		deleted:  map[string]bool{},
		unlocked: map[string]bool{},
		removed:  map[string]bool{},
	}
}

func (j *Journal) record(op Op) { j.Ops = append(j.Ops, op) }

// ObjectExists implements Editor.
func (j *Journal) ObjectExists(name string) bool {
	if j.deleted[name] {
		return false
	}
	if _, ok := j.sets[name]; ok {
		return true
	}
	return j.snap.ObjectExists(name)
}

// Import implements Editor.
func (j *Journal) Import(ctx context.Context, file string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	node := "$import" + strconv.Itoa(j.imports)
	j.imports++
	j.record(Op{Op: OpImport, File: file, Target: node})
	return []string{node}, nil
}

// CreateSet implements Editor.
func (j *Journal) CreateSet(name string, nodes []string, text string) error {
	if j.ObjectExists(name) {
		return fmt.Errorf("%s already exists", name)
	}
	j.sets[name] = append([]string(nil), nodes...)
	delete(j.deleted, name)
	j.record(Op{Op: OpCreateSet, Target: name, Nodes: nodes, Text: text})
	return nil
}

// SetMembers implements Editor.
func (j *Journal) SetMembers(name string) ([]string, error) {
	if j.deleted[name] {
		return nil, fmt.Errorf("%s does not exist", name)
	}
	if members, ok := j.sets[name]; ok {
		return members, nil
	}
	if members, ok := j.snap.SetMembers(name); ok {
		return members, nil
	}
	return nil, fmt.Errorf("%s is not a set", name)
}

// Delete implements Editor.
func (j *Journal) Delete(node string) error {
	if !j.ObjectExists(node) && !isPlaceholder(node) {
		return fmt.Errorf("no object matches name: %s", node)
	}
	j.deleted[node] = true
	delete(j.sets, node)
	j.record(Op{Op: OpDelete, Target: node})
	return nil
}

// ReferenceOf implements Editor.
func (j *Journal) ReferenceOf(node string) (string, bool) {
	return j.snap.ReferenceOf(node)
}

// ReferenceFile implements Editor.
func (j *Journal) ReferenceFile(refNode string) (string, error) {
	return j.snap.ReferenceFile(context.Background(), refNode)
}

// RemoveReference implements Editor.
func (j *Journal) RemoveReference(file string) error {
	if j.removed[file] {
		return nil
	}
	j.removed[file] = true
	j.record(Op{Op: OpRemoveReference, File: file})
	return nil
}

// IsLocked implements Editor.
func (j *Journal) IsLocked(node string) bool {
	return !j.unlocked[node] && j.snap.IsLocked(node)
}

// Unlock implements Editor.
func (j *Journal) Unlock(node string) error {
	j.unlocked[node] = true
	j.record(Op{Op: OpUnlock, Target: node})
	return nil
}

// History implements Editor.
func (j *Journal) History(node string) ([]string, error) {
	if !j.ObjectExists(node) {
		return nil, fmt.Errorf("no object matches name: %s", node)
	}
	return j.snap.NodeHistory(node), nil
}

// NodeType implements Editor.
func (j *Journal) NodeType(node string) string { return j.snap.NodeType(node) }

// Attributes implements Editor.
func (j *Journal) Attributes(node string) []string { return j.snap.NodeAttributes(node) }

// SetAttr implements Editor.
func (j *Journal) SetAttr(attr string, value float64) error {
	v := value
	j.record(Op{Op: OpSetAttr, Target: attr, Value: &v})
	return nil
}

// CreateWrap implements Editor.
func (j *Journal) CreateWrap(driver, driven string, opts WrapOptions) (string, error) {
	if !j.ObjectExists(driver) {
		return "", fmt.Errorf("no object matches name: %s", driver)
	}
	node := "$wrap" + strconv.Itoa(j.wraps)
	j.wraps++
	o := opts
	j.record(Op{Op: OpWrap, Target: driven, Driver: driver, Nodes: []string{node}, Options: &o})
	return node, nil
}

// Encode writes the recorded ops as YAML.
func (j *Journal) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(struct {
		Ops []Op `yaml:"ops"`
	}{j.Ops}); err != nil {
		return fmt.Errorf("encoding journal: %w", err)
	}
	return enc.Close()
}

// Save writes the recorded ops to path.
func (j *Journal) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating journal %s: %w", path, err)
	}
	if err := j.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func isPlaceholder(node string) bool {
	return len(node) > 0 && node[0] == '$'
}
