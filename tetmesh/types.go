// Package tetmesh supplies the two external collaborators spec.md §1 leaves
// out of the core's scope: (a) building the initial Delaunay
// tetrahedralization of the deduplicated point set, and (b) classifying,
// per tetrahedron, which constraints improperly pierce it and which of its
// four faces carry which coplanar constraints. The spec only requires the
// *interface*; this package also supplies a reference implementation (an
// incremental Bowyer-Watson tetrahedralizer with ghost tets at the convex
// hull, and a brute-force classifier) so the pipeline is runnable
// end-to-end without an external mesher.
package tetmesh

import "math"

// NoVertex32 marks an absent vertex slot; a ghost tet carries it in slot 3.
const NoVertex32 = uint32(math.MaxUint32)

// NoIndex marks an absent tet-neighbor slot.
const NoIndex = uint64(math.MaxUint64)

// Tetrahedralization is the (a) collaborator's output: one entry per tet
// (real or ghost) in TetVerts/TetNeighbors. TetVerts stores COMPLEX vertex
// indices directly (not local re-numbering): bootstrap never needs to
// translate. A ghost tet has TetVerts[3] == NoVertex32; its first three
// slots are the one real hull face it closes, CCW as seen from outside the
// hull.
type Tetrahedralization struct {
	TetVerts     [][4]uint32
	TetNeighbors [][4]uint64
}

func (t *Tetrahedralization) IsGhost(tet uint64) bool {
	return t.TetVerts[tet][3] == NoVertex32
}

// ConstraintMap is the (b) collaborator's output: for each non-ghost tet,
// the constraints that improperly pierce its interior, and per local face
// (0..3, using the same FaceLocalV ordering as TetFaceLocalVerts) the
// constraints coplanar with that face.
type ConstraintMap struct {
	Pending      [][]uint32    // per tet
	FaceCoplanar [][4][]uint32 // per tet, per local face
}

// TetFaceLocalVerts is the local-vertex layout of a tet's four faces,
// grounded on shp.Tet4's FaceLocalV table in the teacher pack (shp/tets.go):
// face i is opposite local vertex i. For a positively oriented tet
// (signedVolume6 > 0, as Build produces), each face's right-hand normal
// points toward the opposite vertex, i.e. into the tet.
var TetFaceLocalVerts = [4][3]int{
	{1, 3, 2},
	{0, 2, 3},
	{0, 3, 1},
	{0, 1, 2},
}

// TetEdgeLocalVerts is the local-vertex layout of a tet's six edges.
var TetEdgeLocalVerts = [6][2]int{
	{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3},
}
