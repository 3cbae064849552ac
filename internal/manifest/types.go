package manifest

// DefaultVersion is the version key that marks a character's default
// collection or mesh object.
const DefaultVersion = "default"

// Manifest is the parsed character manifest. Characters keeps document order.
// Errors lists the elements that were dropped while parsing.
type Manifest struct {
	Path       string         `json:"path,omitempty"`
	Characters []*Character   `json:"characters"`
	Errors     []ElementError `json:"errors,omitempty"`
}

// Character is one manifest entry. Collections and MeshObjects are never
// empty on a Character returned by Parse and must not be emptied by callers.
// A selection left outside a shortened slice falls back to the default.
type Character struct {
	Name        string       `json:"name"`
	AltName     string       `json:"altName,omitempty"`
	Collections []Collection `json:"collections"`
	MeshObjects []MeshObject `json:"mayaObjects"`

	currentCollection int
	currentMesh       int
}

// Collection is one version of a character's hair setup.
type Collection struct {
	Version    string   `json:"version"`
	MayaFile   string   `json:"mayaFile"`   // scene file holding the hair system
	XGenFile   string   `json:"xgenFile"`   // groom description file
	HairPlates []string `json:"hairPlates"` // geometry wrapped onto the character mesh
}

// MeshObject is one version of the mesh binding used to find a character in
// a scene.
type MeshObject struct {
	Version      string `json:"version"`
	OrigMeshFile string `json:"mayaFile"`      // path fragment matched against scene references
	MeshNodeName string `json:"characterMesh"` // mesh node, relative to the reference namespace
}

// DisplayName returns the alt name when present, otherwise the name.
func (c *Character) DisplayName() string {
	if c.AltName != "" {
		return c.AltName
	}
	return c.Name
}

// Versions returns the collection version keys in document order.
func (c *Character) Versions() []string {
	versions := make([]string, len(c.Collections))
	for i, col := range c.Collections {
		versions[i] = col.Version
	}
	return versions
}

// MeshVersions returns the mesh object version keys in document order.
func (c *Character) MeshVersions() []string {
	versions := make([]string, len(c.MeshObjects))
	for i, mobj := range c.MeshObjects {
		versions[i] = mobj.Version
	}
	return versions
}

// Character returns the first character with the given name.
func (m *Manifest) Character(name string) (*Character, error) {
	for _, c := range m.Characters {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, &NotFoundError{Kind: "character", Key: name}
}

// Names returns the character names in document order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Characters))
	for i, c := range m.Characters {
		names[i] = c.Name
	}
	return names
}
