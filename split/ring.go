package split

import "github.com/cpmech/bspcsg/cplx"

// facesIncidentToEdge returns every face across the WHOLE complex whose
// cycle contains the given edge, via the edge-face ring traversal
// (makeEFrelation in BSP.cpp): start at the edge's seed face, walk
// cell-by-cell crossing into the opposite cell at each step, stopping at a
// ghost cell or back at the seed; then repeat in the other direction from
// the seed's other neighbour cell.
func facesIncidentToEdge(c *cplx.Complex, edge uint64) []uint64 {
	seed := c.Edges[edge].ConnFace0
	result := []uint64{seed}
	seen := map[uint64]bool{seed: true}

	walk := func(startCell uint64) {
		curFace, curCell := seed, startCell
		for curCell != cplx.NoIndex {
			next, ok := otherFaceInCellWithEdge(c, curCell, curFace, edge)
			if !ok {
				return
			}
			if !seen[next] {
				seen[next] = true
				result = append(result, next)
			}
			if next == seed {
				return
			}
			nextCell := c.Faces[next].OtherCell(curCell)
			curFace, curCell = next, nextCell
		}
	}

	seedFace := c.Faces[seed]
	if seedFace.ConnCells[0] != cplx.NoIndex {
		walk(seedFace.ConnCells[0])
	}
	if seedFace.ConnCells[1] != cplx.NoIndex {
		walk(seedFace.ConnCells[1])
	}
	return result
}

// otherFaceInCellWithEdge finds, within cell, the face other than exclude
// whose cycle contains edge. A cell's boundary is a closed 2-manifold
// shell, so each of its edges touches exactly two of its own faces.
func otherFaceInCellWithEdge(c *cplx.Complex, cell, exclude, edge uint64) (uint64, bool) {
	for _, fi := range c.Cells[cell].Faces {
		if fi == exclude {
			continue
		}
		for _, ei := range c.Faces[fi].Edges {
			if ei == edge {
				return fi, true
			}
		}
	}
	return 0, false
}

// insertEdgeAt splices e into f's cycle at position pos, shifting later
// entries right by one.
func insertEdgeAt(f *cplx.Face, pos int, e uint64) {
	f.Edges = append(f.Edges, 0)
	copy(f.Edges[pos+1:], f.Edges[pos:len(f.Edges)-1])
	f.Edges[pos] = e
}

// insertSplitHalfIntoFace inserts newHalf (= oldV0,newVertex) adjacent to
// the old edge's position in face's cycle, on whichever side keeps
// consecutive edges sharing an endpoint. Grounded on
// BSPcomplex::add_edgeToOrdFaceEdges.
func insertSplitHalfIntoFace(c *cplx.Complex, face, oldEdge, newHalf uint64, oldV0 uint32) {
	f := &c.Faces[face]
	n := len(f.Edges)
	pos := -1
	for i, ei := range f.Edges {
		if ei == oldEdge {
			pos = i
			break
		}
	}
	if pos == -1 {
		return // face doesn't actually contain this edge (shouldn't happen)
	}
	prev := f.Edges[(pos-1+n)%n]
	if c.Edges[prev].HasEndpoint(oldV0) {
		insertEdgeAt(f, pos, newHalf)
	} else {
		insertEdgeAt(f, pos+1, newHalf)
	}
}
