// Package scene works out which manifest characters are referenced into the
// open scene. The host application is reached through the small Querier
// interface; Snapshot implements it over a YAML file exported by the host,
// and CachedQuerier memoizes reference lookups during resolution.
package scene
