// Package colour implements spec §4.4: once subdivision is complete, every
// GREY face (one born coplanar with some input triangle) is resolved to
// WHITE, BLACK_A, BLACK_B or BLACK_AB depending on whether it actually lies
// within the footprint of an input triangle belonging to solid A, B, or
// both. Grounded on the face-colouring pass of makePolyhedralMesh.cpp.
package colour

import (
	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/bspcsg/predicate"
)

// Run resolves every GREY face in c to its final colour. A face is covered
// by solid A (resp. B) if the *union* of its coplanar group-A (resp. B)
// constraint triangles covers every one of its vertices: an input solid's
// boundary may tile one planar patch with several adjacent triangles
// sharing that plane, so requiring a single triangle to dominate the face
// would under-colour those cases.
func Run(c *cplx.Complex) {
	for fi := range c.Faces {
		f := &c.Faces[fi]
		if f.Colour != cplx.Grey {
			continue
		}
		coveredA, coveredB := coverage(c, uint64(fi), f.Coplanar)
		switch {
		case coveredA && coveredB:
			f.Colour = cplx.BlackAB
		case coveredA:
			f.Colour = cplx.BlackA
		case coveredB:
			f.Colour = cplx.BlackB
		default:
			f.Colour = cplx.White
		}
	}
}

func coverage(c *cplx.Complex, fi uint64, coplanar []uint32) (coveredA, coveredB bool) {
	verts := faceVertices(c, fi)
	return coverGroup(c, fi, verts, coplanar, cplx.GroupA),
		coverGroup(c, fi, verts, coplanar, cplx.GroupB)
}

// coverGroup decides whether group's coplanar constraint triangles, taken
// together, cover every vertex of face fi. Each triangle in turn removes
// from the pending set any vertex it strictly contains; a vertex sitting on
// a triangle's boundary is left pending rather than resolved either way
// (spec §4.4's "break without deciding"). If the union still leaves
// vertices pending once every triangle has been scanned, the per-vertex
// scan alone can't tell "the face's footprint coincides with this
// triangle's" from "merely touches its boundary", so each group triangle is
// retried against the whole face through coplanarInnerIntersects's
// three-bit mask.
func coverGroup(c *cplx.Complex, fi uint64, verts []uint32, coplanar []uint32, group cplx.Group) bool {
	pending := map[uint32]bool{}
	for _, v := range verts {
		pending[v] = true
	}
	var groupTris []cplx.Constraint
	for _, k := range coplanar {
		if c.IsVirtual(k) {
			continue
		}
		tri := c.Constraints[k]
		if tri.Group != group {
			continue
		}
		groupTris = append(groupTris, tri)

		a := c.VertexCoords(tri.V0)
		b := c.VertexCoords(tri.V1)
		cc := c.VertexCoords(tri.V2)
		aa, _ := point.ApproxXYZ(a)
		ba, _ := point.ApproxXYZ(b)
		ca, _ := point.ApproxXYZ(cc)
		axis := predicate.MaxComponentInTriangleNormal(aa, ba, ca)
		for v := range pending {
			if predicate.PointInInnerTriangle(c.VertexCoords(v), a, b, cc, axis) {
				delete(pending, v)
			}
		}
	}
	if len(pending) == 0 {
		return true
	}
	for _, tri := range groupTris {
		a := c.VertexCoords(tri.V0)
		b := c.VertexCoords(tri.V1)
		cc := c.VertexCoords(tri.V2)
		aa, _ := point.ApproxXYZ(a)
		ba, _ := point.ApproxXYZ(b)
		ca, _ := point.ApproxXYZ(cc)
		axis := predicate.MaxComponentInTriangleNormal(aa, ba, ca)
		if coplanarInnerIntersects(c, fi, verts, [3]uint32{tri.V0, tri.V1, tri.V2}, axis) {
			return true
		}
	}
	return false
}

// coplanarInnerIntersects implements spec §4.4's fallback for the case where
// every face vertex lies exactly on the constraint triangle's boundary: it
// can no longer tell, from vertex containment alone, whether the face's
// footprint genuinely coincides with the triangle's or merely shares a few
// boundary points. It tests a three-bit mask — vertex coincidence, a vertex
// of one polygon landing in the open edge-interior of the other, and a
// proper edge/edge crossing — across every (face edge, constraint edge)
// pair, and concludes coverage once at least three non-collinear points of
// agreement have been found (enough to pin the triangle's plane position
// against the face, since two polygons sharing only one or two boundary
// points could still be disjoint apart from that touch).
func coplanarInnerIntersects(c *cplx.Complex, fi uint64, faceVerts []uint32, tri [3]uint32, axis predicate.Axis) bool {
	faceEdges := faceEdgeSegments(c, fi)
	triVerts := [3]point.Coords{c.VertexCoords(tri[0]), c.VertexCoords(tri[1]), c.VertexCoords(tri[2])}
	triEdges := [3][2]point.Coords{
		{triVerts[0], triVerts[1]},
		{triVerts[1], triVerts[2]},
		{triVerts[2], triVerts[0]},
	}

	var hits []point.XYZ
	agrees := func(p point.Coords) {
		xyz, _ := point.ApproxXYZ(p)
		for _, h := range hits {
			if h == xyz {
				return
			}
		}
		hits = append(hits, xyz)
	}

	// vertex-coincidence: either polygon's vertex equal to the other's.
	for _, v := range faceVerts {
		vc := c.VertexCoords(v)
		for _, tv := range triVerts {
			if predicate.SamePoint(vc, tv) {
				agrees(vc)
			}
		}
	}
	// vertex-in-edge-interior, both directions.
	for _, v := range faceVerts {
		vc := c.VertexCoords(v)
		for _, te := range triEdges {
			if predicate.PointInInnerSegment(vc, te[0], te[1]) {
				agrees(vc)
			}
		}
	}
	for _, tv := range triVerts {
		for _, fe := range faceEdges {
			if predicate.PointInInnerSegment(tv, fe[0], fe[1]) {
				agrees(tv)
			}
		}
	}
	// edge-crosses-edge.
	for _, fe := range faceEdges {
		for _, te := range triEdges {
			if predicate.InnerSegmentsCross(fe[0], fe[1], te[0], te[1]) {
				agrees(fe[0])
				agrees(fe[1])
			}
		}
	}

	if len(hits) < 3 {
		return false
	}
	return !allCollinear(hits, axis)
}

func allCollinear(pts []point.XYZ, axis predicate.Axis) bool {
	base := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		for j := i + 1; j < len(pts); j++ {
			a := point.Coords{Kind: point.Explicit, P: base}
			b := point.Coords{Kind: point.Explicit, P: pts[i]}
			d := point.Coords{Kind: point.Explicit, P: pts[j]}
			if predicate.Orient2D(a, b, d, axis) != 0 {
				return false
			}
		}
	}
	return true
}

// faceVertices returns the distinct vertices touched by a face's edge
// cycle, order irrelevant for the vertex-containment scan.
func faceVertices(c *cplx.Complex, fi uint64) []uint32 {
	seen := map[uint32]bool{}
	var out []uint32
	for _, ei := range c.Faces[fi].Edges {
		e := c.Edges[ei]
		for _, v := range [2]uint32{e.V0, e.V1} {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// faceEdgeSegments returns, for each edge of the face's cycle, its two
// endpoints as resolved coordinates, for the boundary-mask fallback.
func faceEdgeSegments(c *cplx.Complex, fi uint64) [][2]point.Coords {
	edges := c.Faces[fi].Edges
	out := make([][2]point.Coords, len(edges))
	for i, ei := range edges {
		e := c.Edges[ei]
		out[i] = [2]point.Coords{c.VertexCoords(e.V0), c.VertexCoords(e.V1)}
	}
	return out
}
