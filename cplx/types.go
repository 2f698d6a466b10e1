// Package cplx implements the polyhedral complex data model of spec §3:
// arena-backed Vertex/Edge/Face/Cell/Constraint vectors cross-linked by
// integer indices, following the teacher's inp.Mesh convention of a
// top-level struct owning parallel slices rather than a graph of pointers
// (see inp/msh.go in the teacher pack). Nothing here is ever deallocated
// during subdivision; arenas only grow.
package cplx

import (
	"math"

	"github.com/cpmech/bspcsg/point"
)

// NoIndex is the ghost-cell / no-face / removed-slot sentinel.
const NoIndex = uint64(math.MaxUint64)

// NoVertex marks an unfilled vertex index, in particular the single-plane
// marker in an edge's mesh-plane fingerprint.
const NoVertex = uint32(math.MaxUint32)

// Colour is a face's membership relation to input-triangle interiors.
type Colour uint8

const (
	White Colour = iota
	Grey
	BlackA
	BlackB
	BlackAB
)

func (c Colour) String() string {
	switch c {
	case White:
		return "WHITE"
	case Grey:
		return "GREY"
	case BlackA:
		return "BLACK_A"
	case BlackB:
		return "BLACK_B"
	case BlackAB:
		return "BLACK_AB"
	default:
		return "?"
	}
}

// Group tags which input solid a constraint (or a black face) belongs to.
type Group uint8

const (
	GroupNone Group = iota
	GroupA
	GroupB
)

// Placement is a cell's membership in the input solids.
type Placement uint8

const (
	Undecided Placement = iota
	External
	InternalA
	InternalB
	InternalAB
)

func (p Placement) String() string {
	switch p {
	case External:
		return "EXTERNAL"
	case InternalA:
		return "INTERNAL_A"
	case InternalB:
		return "INTERNAL_B"
	case InternalAB:
		return "INTERNAL_AB"
	default:
		return "UNDECIDED"
	}
}

// Vertex is a generic point: explicit, LPI or TPI. LPI/TPI always reference
// other vertices that are themselves Explicit — the complex never builds an
// implicit point out of another implicit point.
type Vertex struct {
	Kind point.Kind

	// Explicit
	X, Y, Z float64

	// LPI: line through E0,E1; plane through C0,C1,C2 (all Explicit vertex indices)
	E0, E1     uint32
	C0, C1, C2 uint32

	// TPI: three planes, each a triple of Explicit vertex indices
	Plane [9]uint32
}

// MeshPlaneFingerprint records which original mesh triangle(s) gave rise to
// an edge. Tri2[0] == NoVertex marks a single-plane (LPI-capable) edge,
// born on a Delaunay face; otherwise both triangles are present and the
// edge is TPI-capable, born as the intersection of two constraint planes.
type MeshPlaneFingerprint struct {
	Tri1 [3]uint32
	Tri2 [3]uint32
}

func (f MeshPlaneFingerprint) SinglePlane() bool { return f.Tri2[0] == NoVertex }

// Edge is an unordered pair of vertex indices plus its mesh-plane
// fingerprint and a traversal seed face.
type Edge struct {
	V0, V1    uint32
	Plane     MeshPlaneFingerprint
	ConnFace0 uint64
	Removed   bool // tombstone flag; no routine in this module sets it (Face.RemoveEdgeAt removes by swap-with-last)
}

// OtherEndpoint returns the endpoint of e that isn't v.
func (e Edge) OtherEndpoint(v uint32) uint32 {
	if e.V0 == v {
		return e.V1
	}
	return e.V0
}

// HasEndpoint reports whether v is one of the edge's endpoints.
func (e Edge) HasEndpoint(v uint32) bool { return e.V0 == v || e.V1 == v }

// Face is an ordered cyclic list of edge indices, two neighbour cells, a
// plane fingerprint, a colour and its coplanar constraints.
type Face struct {
	Edges     []uint64
	ConnCells [2]uint64
	Plane     [3]uint32 // original mesh triangle spanning the face's plane
	Colour    Colour
	Coplanar  []uint32 // coplanar constraint indices
}

// RemoveEdgeAt removes the edge at position i in the cyclic list, using
// swap-with-last when i isn't already the last slot — grounded on
// BSPface::removeEdge in BSP.cpp.
func (f *Face) RemoveEdgeAt(i int) {
	last := len(f.Edges) - 1
	if i != last {
		f.Edges[i] = f.Edges[last]
	}
	f.Edges = f.Edges[:last]
}

// OtherCell returns the neighbour of c across this face, or NoIndex if c
// isn't actually one of the face's two cells.
func (f Face) OtherCell(c uint64) uint64 {
	if f.ConnCells[0] == c {
		return f.ConnCells[1]
	}
	if f.ConnCells[1] == c {
		return f.ConnCells[0]
	}
	return NoIndex
}

// ExchangeConnCell swaps one occurrence of `from` for `to` among the face's
// neighbour cells, grounded on BSPface::exchange_conn_cell.
func (f *Face) ExchangeConnCell(from, to uint64) {
	if f.ConnCells[0] == from {
		f.ConnCells[0] = to
		return
	}
	f.ConnCells[1] = to
}

// Cell is a set of face indices, pending constraints and a placement.
type Cell struct {
	Faces       []uint64
	Constraints []uint32
	Placement   Placement
}

// RemoveFaceAt removes the face at position i via swap-with-last, grounded
// on BSPcell::removeFace.
func (c *Cell) RemoveFaceAt(i int) {
	last := len(c.Faces) - 1
	if i != last {
		c.Faces[i] = c.Faces[last]
	}
	c.Faces = c.Faces[:last]
}

// PopConstraint removes and returns the last pending constraint, the entry
// point of splitCell's constraint-driven loop (spec §4.3 step 1).
func (c *Cell) PopConstraint() (uint32, bool) {
	n := len(c.Constraints)
	if n == 0 {
		return 0, false
	}
	k := c.Constraints[n-1]
	c.Constraints = c.Constraints[:n-1]
	return k, true
}

// Constraint is an input triangle plus its group tag. Constraints with
// index >= FirstVirtual (see Complex) are virtual: they close the manifold
// but never contribute to colouring.
type Constraint struct {
	V0, V1, V2 uint32
	Group      Group
}
