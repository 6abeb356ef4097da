// Package orbit provides the core engine shared by every orbit domain.
//
// A [Registry] holds a central object surrounded by concentric tracks that
// carry satellite objects, plus a directed weighted relation graph between
// any two of them:
//
//   - [Track]: canonical (major, minor) radius pair, or the -1 sentinel
//   - [Entity]: identity-bearing record placed on a track
//   - [Graph]: directed weighted graph keyed by arena [ID]
//   - [Registry]: owns tracks, entities, center and graph
//
// Domains (atoms, stellar systems, social circles) wrap a Registry and add
// their own rules through a [Checker].
//
// # Example
//
//	r := orbit.NewRegistry()
//	e, _ := orbit.NewEntity("earth", 0, nil, 1.0)
//	id, _ := r.AddObject(e)
//	_ = r.MoveObject(id, orbit.MustTrack(2))
//
// # Thread Safety
//
// Registry and Graph are NOT thread-safe. A single owner mutates; readers
// receive copies. Batch loaders must serialize merges themselves.
package orbit
