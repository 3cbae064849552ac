package manifest

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Element and attribute names of the manifest schema.
const (
	elemCharacter     = "character"
	elemCollection    = "collection"
	elemMayaObject    = "mayaObject"
	elemMayaFile      = "mayaFile"
	elemXGenFile      = "xgenFile"
	elemHairPlate     = "hairPlate"
	elemCharacterMesh = "characterMesh"
)

// rawDocument mirrors the manifest XML. Root children are captured
// generically so that unexpected elements can be reported instead of
// silently dropped.
type rawDocument struct {
	XMLName  xml.Name
	Children []rawCharacter `xml:",any"`
}

type rawCharacter struct {
	XMLName     xml.Name
	Name        *string         `xml:"name,attr"`
	AltName     *string         `xml:"altName,attr"`
	Collections []rawCollection `xml:"collection"`
	MayaObjects []rawMayaObject `xml:"mayaObject"`
}

type rawCollection struct {
	Version    *string  `xml:"version,attr"`
	MayaFile   *string  `xml:"mayaFile"`
	XGenFile   *string  `xml:"xgenFile"`
	HairPlates []string `xml:"hairPlate"`
}

type rawMayaObject struct {
	Version       *string `xml:"version,attr"`
	MayaFile      *string `xml:"mayaFile"`
	CharacterMesh *string `xml:"characterMesh"`
	// Older manifests carry the misspelled element name.
	LegacyMesh *string `xml:"charcaterMesh"`
}

// ParseFile reads and parses the manifest at path.
func ParseFile(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	m, err := ParseBytes(data)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	m.Path = path
	return m, nil
}

// ParseBytes parses an in-memory manifest.
func ParseBytes(data []byte) (*Manifest, error) {
	return Parse(bytes.NewReader(data))
}

// Parse decodes a manifest document. Undecodable XML returns a *ParseError.
// Character elements that cannot be built are dropped and reported in
// Manifest.Errors while their siblings are still parsed.
func Parse(r io.Reader) (*Manifest, error) {
	doc, err := decode(r)
	if err != nil {
		return nil, err
	}

	m := &Manifest{Characters: []*Character{}}
	for i, raw := range doc.Children {
		id := elementID(i, raw)
		if raw.XMLName.Local != elemCharacter {
			m.Errors = append(m.Errors, ElementError{
				Element: id,
				Reason:  fmt.Sprintf("unexpected element <%s>", raw.XMLName.Local),
			})
			continue
		}

		c, err := buildCharacter(raw)
		if err != nil {
			m.Errors = append(m.Errors, ElementError{Element: id, Reason: err.Error()})
			continue
		}
		m.Characters = append(m.Characters, c)
	}
	return m, nil
}

// decode runs the XML decoder over r. Non UTF-8 documents are accepted when
// they declare an encoding known to the WHATWG index.
func decode(r io.Reader) (*rawDocument, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charsetReader

	var doc rawDocument
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			err = fmt.Errorf("empty document")
		}
		return nil, &ParseError{Err: err}
	}
	return &doc, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}

func buildCharacter(raw rawCharacter) (*Character, error) {
	cols := make([]Collection, 0, len(raw.Collections))
	for _, rc := range raw.Collections {
		cols = append(cols, buildCollection(rc))
	}

	mobjs := make([]MeshObject, 0, len(raw.MayaObjects))
	for _, rm := range raw.MayaObjects {
		mobjs = append(mobjs, buildMeshObject(rm))
	}

	return newCharacter(text(raw.Name), text(raw.AltName), cols, mobjs)
}

func buildCollection(raw rawCollection) Collection {
	plates := make([]string, 0, len(raw.HairPlates))
	for _, hp := range raw.HairPlates {
		plates = append(plates, strings.TrimSpace(hp))
	}
	return Collection{
		Version:    text(raw.Version),
		MayaFile:   text(raw.MayaFile),
		XGenFile:   text(raw.XGenFile),
		HairPlates: plates,
	}
}

func buildMeshObject(raw rawMayaObject) MeshObject {
	mesh := raw.CharacterMesh
	if mesh == nil {
		mesh = raw.LegacyMesh
	}
	return MeshObject{
		Version:      text(raw.Version),
		OrigMeshFile: text(raw.MayaFile),
		MeshNodeName: text(mesh),
	}
}

// text returns the trimmed value of an optional node, or "" when absent.
func text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// elementID names a root child for diagnostics, e.g. `character[2] "hero"`.
func elementID(index int, raw rawCharacter) string {
	id := fmt.Sprintf("%s[%d]", raw.XMLName.Local, index)
	if name := text(raw.Name); name != "" {
		id += fmt.Sprintf(" %q", name)
	}
	return id
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
