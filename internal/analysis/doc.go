// Package analysis provides read-only analytics over orbit registries.
//
//   - [Entropy]: Shannon entropy of the entity distribution across tracks
//   - [LogicalDistance]: shortest directed hop count in the relation graph
//   - [PhysicalDistance]: Euclidean distance between two polar positions
//   - [Diff]: structural comparison of two registry snapshots
//
// Every function is a pure read. They may run concurrently with each other
// but never concurrently with a mutation of the registry they inspect.
//
// # Unknown entities
//
// Querying an entity that is absent never fails; the distance functions
// return -1 instead, since callers probe routinely while populating views:
//
//	if d := analysis.LogicalDistance(r.Graph(), a, b); d < 0 {
//	    // unrelated
//	}
package analysis
