// Package universe owns the particle store: a dense, fixed-capacity set of
// point particles with mass, charge, position and velocity.
//
// Storage is structure-of-arrays. Every slice is allocated at capacity up
// front and only the first Len entries are live. Erasing a particle shifts
// every particle above it down one slot, so indices are not stable across
// erasures; use a [Handle] when a selection has to survive one.
package universe
