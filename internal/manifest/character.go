package manifest

import "errors"

// Reasons a character element is dropped during parsing.
var (
	errMissingName      = errors.New("missing name attribute")
	errEmptyCollections = errors.New("no collection elements")
	errEmptyMeshObjects = errors.New("no mayaObject elements")
)

// newCharacter builds a character and seats the current selection on the
// default collection and mesh object.
func newCharacter(name, altName string, cols []Collection, mobjs []MeshObject) (*Character, error) {
	if name == "" {
		return nil, errMissingName
	}
	if len(cols) == 0 {
		return nil, errEmptyCollections
	}
	if len(mobjs) == 0 {
		return nil, errEmptyMeshObjects
	}
	c := &Character{
		Name:        name,
		AltName:     altName,
		Collections: cols,
		MeshObjects: mobjs,
	}
	c.currentCollection = c.defaultCollectionIndex()
	c.currentMesh = c.defaultMeshIndex()
	return c, nil
}

// LookupCollection returns the first collection with the given version.
func (c *Character) LookupCollection(version string) (*Collection, error) {
	i := c.collectionIndex(version)
	if i < 0 {
		return nil, &NotFoundError{Kind: "collection", Key: version, Character: c.Name}
	}
	return &c.Collections[i], nil
}

// LookupMeshObject returns the first mesh object with the given version.
func (c *Character) LookupMeshObject(version string) (*MeshObject, error) {
	i := c.meshIndex(version)
	if i < 0 {
		return nil, &NotFoundError{Kind: "mesh object", Key: version, Character: c.Name}
	}
	return &c.MeshObjects[i], nil
}

// DefaultCollection returns the collection versioned "default", or the first
// collection when there is none.
func (c *Character) DefaultCollection() *Collection {
	return &c.Collections[c.defaultCollectionIndex()]
}

// DefaultMeshObject returns the mesh object versioned "default", or the first
// mesh object when there is none.
func (c *Character) DefaultMeshObject() *MeshObject {
	return &c.MeshObjects[c.defaultMeshIndex()]
}

// CurrentCollection returns the selected collection.
func (c *Character) CurrentCollection() *Collection {
	if c.currentCollection >= len(c.Collections) {
		c.currentCollection = c.defaultCollectionIndex()
	}
	return &c.Collections[c.currentCollection]
}

// CurrentMeshObject returns the selected mesh object.
func (c *Character) CurrentMeshObject() *MeshObject {
	if c.currentMesh >= len(c.MeshObjects) {
		c.currentMesh = c.defaultMeshIndex()
	}
	return &c.MeshObjects[c.currentMesh]
}

// SetCurrentCollection selects the collection with the given version. An
// unknown version returns a *NameError and leaves the selection unchanged.
func (c *Character) SetCurrentCollection(version string) error {
	i := c.collectionIndex(version)
	if i < 0 {
		return &NameError{
			Character: c.Name,
			Version:   version,
			Err:       &NotFoundError{Kind: "collection", Key: version, Character: c.Name},
		}
	}
	c.currentCollection = i
	return nil
}

// SetCurrentMeshObject selects the mesh object with the given version. An
// unknown version returns a *NameError and leaves the selection unchanged.
func (c *Character) SetCurrentMeshObject(version string) error {
	i := c.meshIndex(version)
	if i < 0 {
		return &NameError{
			Character: c.Name,
			Version:   version,
			Err:       &NotFoundError{Kind: "mesh object", Key: version, Character: c.Name},
		}
	}
	c.currentMesh = i
	return nil
}

// ResetSelection moves both selections back to their defaults.
func (c *Character) ResetSelection() {
	c.currentCollection = c.defaultCollectionIndex()
	c.currentMesh = c.defaultMeshIndex()
}

func (c *Character) collectionIndex(version string) int {
	for i, col := range c.Collections {
		if col.Version == version {
			return i
		}
	}
	return -1
}

func (c *Character) meshIndex(version string) int {
	for i, mobj := range c.MeshObjects {
		if mobj.Version == version {
			return i
		}
	}
	return -1
}

func (c *Character) defaultCollectionIndex() int {
	if i := c.collectionIndex(DefaultVersion); i >= 0 {
		return i
	}
	return 0
}

func (c *Character) defaultMeshIndex() int {
	if i := c.meshIndex(DefaultVersion); i >= 0 {
		return i
	}
	return 0
}
