// Package pipeline runs the scene-mutating steps of the hair setup: copying
// groom description files next to the scene, importing each character's hair
// system into a named set, cleaning up previous imports and wrapping hair
// plates onto character meshes. Scene changes go through the Editor
// interface; Journal is an Editor that records the steps for the host
// application to replay.
package pipeline
