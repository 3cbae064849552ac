// Package manifest parses the production character manifest: an XML document
// listing every character with its versioned hair collections and the mesh
// objects used to find the character in a scene. It builds the in-memory
// character tree, tracks the current collection and mesh selection per
// character, validates manifests against an embedded JSON Schema, and watches
// the manifest file so callers can rebuild the tree when it changes.
package manifest
