// Package split implements spec §4.3, the cell splitter: repeatedly pops a
// pending constraint off a cell, partitions the cell's vertices, edges and
// faces against the constraint's plane, and produces two child cells joined
// by a new face lying in that plane. This is the centerpiece of the BSP
// subdivision, grounded on BSPcomplex::splitCell in BSP.cpp.
package split

import (
	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/predicate"
	"github.com/cpmech/gosl/chk"
)

// Run drives the subdivision to completion: every cell's pending-constraint
// list is empty when Run returns. The driver iterates cells by index; a
// split may append new cells, which the loop naturally revisits since it
// re-reads len(c.Cells) on every iteration.
func Run(c *cplx.Complex) {
	for ci := 0; ci < len(c.Cells); ci++ {
		for len(c.Cells[ci].Constraints) > 0 {
			splitCell(c, uint64(ci))
		}
	}
}

// orientVertex evaluates orient3D(v; k0,k2,k1) — the swapped plane order
// used throughout this package so that a positive sign means "over" (on the
// constraint's outward side).
func orientVertex(c *cplx.Complex, v, k0, k1, k2 uint32) int8 {
	vc, vr := c.VertexCoords(v), c.VertexRef(v)
	k0c, k0r := c.VertexCoords(k0), c.VertexRef(k0)
	k1c, k1r := c.VertexCoords(k1), c.VertexRef(k1)
	k2c, k2r := c.VertexCoords(k2), c.VertexRef(k2)
	return int8(predicate.Orient3D(vc, k0c, k2c, k1c, vr, k0r, k2r, k1r, [3]uint32{k0, k2, k1}))
}

// splitCell executes one pass of spec §4.3's algorithm against cell ci: pop
// one constraint, harvest everything coplanar with it, classify the cell's
// vertices, and — if the constraint actually straddles the cell — split its
// edges, its faces and finally the cell itself.
func splitCell(c *cplx.Complex, ci uint64) {
	cell := &c.Cells[ci]
	k, ok := cell.PopConstraint()
	if !ok {
		return
	}
	kv := c.Constraints[k]
	k0, k1, k2 := kv.V0, kv.V1, kv.V2

	// step 2: harvest constraints coplanar with k out of the cell's
	// remaining pending list.
	var harvested []uint32
	remaining := cell.Constraints[:0]
	for _, m := range cell.Constraints {
		mv := c.Constraints[m]
		if orientVertex(c, mv.V0, k0, k1, k2) == 0 &&
			orientVertex(c, mv.V1, k0, k1, k2) == 0 &&
			orientVertex(c, mv.V2, k0, k1, k2) == 0 {
			harvested = append(harvested, m)
		} else {
			remaining = append(remaining, m)
		}
	}
	cell.Constraints = remaining

	orBin := c.BorrowOrBin()
	vVisit := c.BorrowVertexVisit()
	eVisit := c.BorrowEdgeVisit()
	defer orBin.Release()
	defer vVisit.Release()
	defer eVisit.Release()

	// step 3-4: enumerate the cell's vertices exactly once, classifying each.
	nOver, nUnder := 0, 0
	for _, fi := range cell.Faces {
		for _, ei := range c.Faces[fi].Edges {
			for _, v := range [2]uint32{c.Edges[ei].V0, c.Edges[ei].V1} {
				if vVisit.Visited(uint64(v)) {
					continue
				}
				vVisit.Visit(uint64(v))
				s := orientVertex(c, v, k0, k1, k2)
				orBin.Set(v, s)
				if s > 0 {
					nOver++
				} else if s < 0 {
					nUnder++
				}
			}
		}
	}

	// step 5: early out — the constraint doesn't actually straddle this cell.
	if nOver == 0 || nUnder == 0 {
		return
	}

	// step 6: split every cell edge whose endpoints land on strictly
	// opposite sides. Edge splits are global: every face across the whole
	// complex sharing the edge gets the new vertex inserted, not just this
	// cell's faces, so neighbouring cells stay conforming.
	for _, fi := range cell.Faces {
		for _, ei := range c.Faces[fi].Edges {
			if eVisit.Visited(ei) {
				continue
			}
			eVisit.Visit(ei)
			e := c.Edges[ei]
			s0, s1 := orBin.Get(e.V0), orBin.Get(e.V1)
			if (s0 > 0 && s1 < 0) || (s0 < 0 && s1 > 0) {
				splitEdge(c, ei, k0, k1, k2, orBin)
			}
		}
	}

	// step 7-8: split every straddling face, partitioning faces into the
	// down (original cell, stays under) and up (new cell, over) sides.
	origFaces := append([]uint64{}, cell.Faces...)
	var downFaces, upFaces []uint64
	var commonEdges []uint64
	for _, fi := range origFaces {
		neighbor := c.Faces[fi].OtherCell(ci)
		upFace, wasSplit, bridge := splitFace(c, fi, orBin, k0, k1, k2)
		if wasSplit {
			downFaces = append(downFaces, fi)
			upFaces = append(upFaces, upFace)
			commonEdges = append(commonEdges, bridge)
			// fi is shared with a neighbour that isn't the cell we're
			// splitting; it now also borders the new up half, so the
			// neighbour's own face list must learn about it too.
			if neighbor != cplx.NoIndex && neighbor != ci {
				c.Cells[neighbor].Faces = append(c.Cells[neighbor].Faces, upFace)
			}
			continue
		}
		if faceHasOver(c, fi, orBin) {
			upFaces = append(upFaces, fi)
		} else {
			downFaces = append(downFaces, fi)
		}
	}

	// step 9: build the new common face out of every on-plane edge now
	// bounding the two sides (pre-existing on-plane edges plus the bridges
	// created by splitFace above).
	commonEdgeSet := map[uint64]bool{}
	for _, e := range commonEdges {
		commonEdgeSet[e] = true
	}
	for _, fi := range append(append([]uint64{}, downFaces...), upFaces...) {
		for _, ei := range c.Faces[fi].Edges {
			e := c.Edges[ei]
			if orBin.Get(e.V0) == 0 && orBin.Get(e.V1) == 0 {
				commonEdgeSet[ei] = true
			}
		}
	}
	var cycleInput []uint64
	for e := range commonEdgeSet {
		cycleInput = append(cycleInput, e)
	}
	commonCycle := buildCycleFromEdgeSet(c, cycleInput)

	coplanarList := append([]uint32{}, harvested...)
	if !c.IsVirtual(k) {
		coplanarList = append(coplanarList, k)
	}
	colour := cplx.White
	if !c.IsVirtual(k) {
		colour = cplx.Grey
	}

	// step 11: redistribute the cell's remaining (non-coplanar, non-popped)
	// constraints between the down and up sides before creating the up
	// cell, so both child cells start with the right pending list.
	var downConstraints, upConstraints []uint32
	for _, m := range cell.Constraints {
		mv := c.Constraints[m]
		hasOver := orientVertex(c, mv.V0, k0, k1, k2) > 0 ||
			orientVertex(c, mv.V1, k0, k1, k2) > 0 ||
			orientVertex(c, mv.V2, k0, k1, k2) > 0
		hasUnder := orientVertex(c, mv.V0, k0, k1, k2) < 0 ||
			orientVertex(c, mv.V1, k0, k1, k2) < 0 ||
			orientVertex(c, mv.V2, k0, k1, k2) < 0
		if hasOver {
			upConstraints = append(upConstraints, m)
		}
		if hasUnder {
			downConstraints = append(downConstraints, m)
		}
	}

	// step 12: create the up cell, mutate the original (down) cell in
	// place, and append the common face to both.
	upCellIdx := c.AddCell(cplx.Cell{Faces: append([]uint64{}, upFaces...), Constraints: upConstraints})

	// step 10: orient the common face by construction — side 0 is always
	// the "up"/over side, consistent with the orientVertex sign convention
	// established above (positive = over), so no separate geometric check
	// is needed to decide which side is which.
	commonFace := c.AddFace(cplx.Face{
		Edges:     commonCycle,
		ConnCells: [2]uint64{upCellIdx, ci},
		Plane:     [3]uint32{k0, k1, k2},
		Colour:    colour,
		Coplanar:  coplanarList,
	})
	for _, fi := range upFaces {
		c.Faces[fi].ExchangeConnCell(ci, upCellIdx)
	}
	upFaces = append(upFaces, commonFace)
	downFaces = append(downFaces, commonFace)
	c.Cells[upCellIdx].Faces = upFaces

	cell = &c.Cells[ci]
	cell.Faces = downFaces
	cell.Constraints = downConstraints
}

func faceHasOver(c *cplx.Complex, fi uint64, orBin *cplx.OrBinScratch) bool {
	for _, ei := range c.Faces[fi].Edges {
		e := c.Edges[ei]
		if orBin.Get(e.V0) > 0 || orBin.Get(e.V1) > 0 {
			return true
		}
	}
	return false
}

// splitEdge replaces edge ei with two halves joined at a new vertex on the
// constraint's plane, splicing the new half into every face (across the
// whole complex) whose cycle references ei. Grounded on BSPedge::split.
func splitEdge(c *cplx.Complex, ei uint64, k0, k1, k2 uint32, orBin *cplx.OrBinScratch) {
	e := c.Edges[ei]
	oldV0, oldV1 := e.V0, e.V1

	faces := facesIncidentToEdge(c, ei)

	var newVertex uint32
	if e.Plane.SinglePlane() {
		newVertex = c.AddLPIVertex(oldV0, oldV1, k0, k1, k2)
	} else {
		newVertex = c.AddTPIVertex([9]uint32{
			e.Plane.Tri1[0], e.Plane.Tri1[1], e.Plane.Tri1[2],
			e.Plane.Tri2[0], e.Plane.Tri2[1], e.Plane.Tri2[2],
			k0, k1, k2,
		})
	}
	orBin.Set(newVertex, 0)

	newHalf := c.AddEdge(cplx.Edge{V0: oldV0, V1: newVertex, Plane: e.Plane, ConnFace0: e.ConnFace0})

	mutated := e
	mutated.V0 = newVertex
	c.Edges[ei] = mutated

	for _, fi := range faces {
		insertSplitHalfIntoFace(c, fi, ei, newHalf, oldV0)
	}
}

// faceCycleVerts returns, for face fi, the vertex that starts each edge in
// its cyclic Edges list: verts[i] together with verts[(i+1)%n] are the
// endpoints of Edges[i], walked consistently around the cycle.
func faceCycleVerts(c *cplx.Complex, fi uint64) []uint32 {
	edges := c.Faces[fi].Edges
	n := len(edges)
	verts := make([]uint32, n)
	e0 := c.Edges[edges[0]]
	e1 := c.Edges[edges[1]]
	// start at edges[0]'s endpoint that ISN'T shared with edges[1], so the
	// walk below lands on the shared vertex after exactly one step.
	verts[0] = e0.V0
	if e0.V0 == e1.V0 || e0.V0 == e1.V1 {
		verts[0] = e0.V1
	}
	cur := verts[0]
	for i := 0; i < n; i++ {
		e := c.Edges[edges[i]]
		cur = e.OtherEndpoint(cur)
		verts[(i+1)%n] = cur
	}
	return verts
}

// splitFace splits face fi in place if it straddles the constraint's plane:
// the original index becomes the "down" half and a new face is appended for
// the "up" half, joined by one new bridging edge. Returns (0,false,0) when
// the face doesn't straddle. Grounded on BSPface::split.
func splitFace(c *cplx.Complex, fi uint64, orBin *cplx.OrBinScratch, k0, k1, k2 uint32) (upFace uint64, split bool, bridge uint64) {
	f := c.Faces[fi]
	verts := faceCycleVerts(c, fi)

	hasOver, hasUnder := false, false
	var onIdx []int
	for i, v := range verts {
		s := orBin.Get(v)
		switch {
		case s > 0:
			hasOver = true
		case s < 0:
			hasUnder = true
		default:
			onIdx = append(onIdx, i)
		}
	}
	if !hasOver || !hasUnder {
		return 0, false, 0
	}
	if len(onIdx) != 2 {
		chk.Panic("split: face %d has %d on-plane vertices classifying a straddling face, expected 2", fi, len(onIdx))
	}
	a, b := onIdx[0], onIdx[1]

	arcEdges := func(from, to int) []uint64 {
		edges := f.Edges
		en := len(edges)
		var out []uint64
		i := from
		for {
			out = append(out, edges[i])
			i = (i + 1) % en
			if i == to {
				break
			}
		}
		return out
	}
	arc1 := arcEdges(a, b)
	arc2 := arcEdges(b, a)

	arcIsUnder := func(arc []uint64) bool {
		for _, ei := range arc {
			e := c.Edges[ei]
			if orBin.Get(e.V0) < 0 || orBin.Get(e.V1) < 0 {
				return true
			}
		}
		return false
	}

	var underEdges, overEdges []uint64
	if arcIsUnder(arc1) {
		underEdges, overEdges = arc1, arc2
	} else {
		underEdges, overEdges = arc2, arc1
	}

	bridge = c.AddEdge(cplx.Edge{
		V0: verts[a], V1: verts[b],
		Plane:     cplx.MeshPlaneFingerprint{Tri1: f.Plane, Tri2: [3]uint32{k0, k1, k2}},
		ConnFace0: fi,
	})

	downEdges := append(append([]uint64{}, underEdges...), bridge)
	upEdges := append(append([]uint64{}, overEdges...), bridge)

	mutated := f
	mutated.Edges = downEdges
	c.Faces[fi] = mutated

	upFace = c.AddFace(cplx.Face{
		Edges:     upEdges,
		ConnCells: f.ConnCells,
		Plane:     f.Plane,
		Colour:    f.Colour,
		Coplanar:  append([]uint32{}, f.Coplanar...),
	})
	return upFace, true, bridge
}

// buildCycleFromEdgeSet walks an unordered bag of edges, known to form
// exactly one closed cycle, into cyclic order via vertex-to-edge incidence.
func buildCycleFromEdgeSet(c *cplx.Complex, edges []uint64) []uint64 {
	if len(edges) == 0 {
		chk.Panic("split: empty common-face edge set")
	}
	adj := map[uint32][]uint64{}
	for _, ei := range edges {
		e := c.Edges[ei]
		adj[e.V0] = append(adj[e.V0], ei)
		adj[e.V1] = append(adj[e.V1], ei)
	}
	cycle := make([]uint64, 0, len(edges))
	used := make(map[uint64]bool, len(edges))
	start := edges[0]
	cycle = append(cycle, start)
	used[start] = true
	curVert := c.Edges[start].V1
	for len(cycle) < len(edges) {
		var next uint64
		found := false
		for _, cand := range adj[curVert] {
			if used[cand] {
				continue
			}
			next = cand
			found = true
			break
		}
		if !found {
			chk.Panic("split: common-face edges do not close into a single cycle")
		}
		used[next] = true
		cycle = append(cycle, next)
		curVert = c.Edges[next].OtherEndpoint(curVert)
	}
	return cycle
}
