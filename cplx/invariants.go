package cplx

import (
	"fmt"

	"github.com/cpmech/bspcsg/predicate"
)

// CheckFaceCycle verifies invariant 1: consecutive edges of the face share
// exactly one vertex and the cycle visits each face vertex exactly twice.
func (c *Complex) CheckFaceCycle(face uint64) error {
	f := c.Faces[face]
	n := len(f.Edges)
	if n < 3 {
		return fmt.Errorf("face %d: fewer than 3 edges (%d)", face, n)
	}
	visits := map[uint32]int{}
	for i := 0; i < n; i++ {
		e0 := c.Edges[f.Edges[i]]
		e1 := c.Edges[f.Edges[(i+1)%n]]
		shared := sharedEndpoint(e0, e1)
		if shared == NoVertex {
			return fmt.Errorf("face %d: edges %d,%d do not share an endpoint", face, f.Edges[i], f.Edges[(i+1)%n])
		}
		visits[e0.V0]++
		visits[e0.V1]++
	}
	for v, k := range visits {
		if k != 2 {
			return fmt.Errorf("face %d: vertex %d visited %d times, want 2", face, v, k)
		}
	}
	return nil
}

func sharedEndpoint(a, b Edge) uint32 {
	switch {
	case a.V0 == b.V0 || a.V0 == b.V1:
		return a.V0
	case a.V1 == b.V0 || a.V1 == b.V1:
		return a.V1
	default:
		return NoVertex
	}
}

// CheckCellEuler verifies invariant 2: |V| - |E| + |F| = 2 over the cell's
// boundary.
func (c *Complex) CheckCellEuler(cell uint64) error {
	ce := c.Cells[cell]
	edgeVisit := c.BorrowEdgeVisit()
	defer edgeVisit.Release()
	vertVisit := c.BorrowVertexVisit()
	defer vertVisit.Release()
	nE, nV := 0, 0
	for _, fi := range ce.Faces {
		for _, ei := range c.Faces[fi].Edges {
			if !edgeVisit.Visited(ei) {
				edgeVisit.Visit(ei)
				nE++
				e := c.Edges[ei]
				if !vertVisit.Visited(uint64(e.V0)) {
					vertVisit.Visit(uint64(e.V0))
					nV++
				}
				if !vertVisit.Visited(uint64(e.V1)) {
					vertVisit.Visit(uint64(e.V1))
					nV++
				}
			}
		}
	}
	nF := len(ce.Faces)
	if nV-nE+nF != 2 {
		return fmt.Errorf("cell %d: Euler formula violated V=%d E=%d F=%d", cell, nV, nE, nF)
	}
	return nil
}

// CheckAdjacencySymmetry verifies invariant 3: every face's conn_cells
// actually list that face among their own faces.
func (c *Complex) CheckAdjacencySymmetry(face uint64) error {
	f := c.Faces[face]
	for _, cellIdx := range f.ConnCells {
		if cellIdx == NoIndex {
			continue
		}
		found := false
		for _, fi := range c.Cells[cellIdx].Faces {
			if fi == face {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("face %d: cell %d does not list it back", face, cellIdx)
		}
	}
	return nil
}

// CheckConvexity verifies invariant 4: every vertex of the cell lies on the
// cell's own side of every face plane. A face's Plane, taken in order, has
// its right-hand normal pointing toward ConnCells[0] (bootstrap.Build and
// split.splitCell build faces that way), so Orient3D is non-positive for
// the vertices of ConnCells[0] and non-negative for those of ConnCells[1].
func (c *Complex) CheckConvexity(cell uint64) error {
	ce := c.Cells[cell]
	vertVisit := c.BorrowVertexVisit()
	defer vertVisit.Release()
	var verts []uint32
	for _, fi := range ce.Faces {
		for _, ei := range c.Faces[fi].Edges {
			e := c.Edges[ei]
			for _, v := range [2]uint32{e.V0, e.V1} {
				if !vertVisit.Visited(uint64(v)) {
					vertVisit.Visit(uint64(v))
					verts = append(verts, v)
				}
			}
		}
	}
	for _, fi := range ce.Faces {
		f := c.Faces[fi]
		flip := f.ConnCells[0] == cell // the normal points into side 0, where Orient3D is negative
		p0, p1, p2 := f.Plane[0], f.Plane[1], f.Plane[2]
		a := c.VertexCoords(p0)
		b := c.VertexCoords(p1)
		cc := c.VertexCoords(p2)
		planeIdx := [3]uint32{p0, p1, p2}
		for _, v := range verts {
			vc := c.VertexCoords(v)
			vr := c.VertexRef(v)
			sgn := predicate.Orient3D(vc, a, b, cc, vr, c.VertexRef(p0), c.VertexRef(p1), c.VertexRef(p2), planeIdx)
			if flip {
				sgn = -sgn
			}
			if sgn < 0 {
				return fmt.Errorf("cell %d: vertex %d on wrong side of face %d", cell, v, fi)
			}
		}
	}
	return nil
}

// CheckPlaneFidelity verifies invariant 5: every vertex of a face is
// provably in the face's plane, either by construction (isVertexBuiltFromPlane)
// or by an exact zero orientation.
func (c *Complex) CheckPlaneFidelity(face uint64) error {
	f := c.Faces[face]
	p0, p1, p2 := f.Plane[0], f.Plane[1], f.Plane[2]
	a := c.VertexCoords(p0)
	b := c.VertexCoords(p1)
	cc := c.VertexCoords(p2)
	planeIdx := [3]uint32{p0, p1, p2}
	seen := map[uint32]bool{}
	for _, ei := range f.Edges {
		e := c.Edges[ei]
		for _, v := range [2]uint32{e.V0, e.V1} {
			if seen[v] {
				continue
			}
			seen[v] = true
			vc := c.VertexCoords(v)
			vr := c.VertexRef(v)
			sgn := predicate.Orient3D(vc, a, b, cc, vr, c.VertexRef(p0), c.VertexRef(p1), c.VertexRef(p2), planeIdx)
			if sgn != 0 {
				return fmt.Errorf("face %d: vertex %d not in face plane", face, v)
			}
		}
	}
	return nil
}

// ValidateCell runs invariants 1-5 over every face/cell touched by cell.
func (c *Complex) ValidateCell(cell uint64) error {
	if err := c.CheckCellEuler(cell); err != nil {
		return err
	}
	if err := c.CheckConvexity(cell); err != nil {
		return err
	}
	for _, fi := range c.Cells[cell].Faces {
		if err := c.CheckFaceCycle(fi); err != nil {
			return err
		}
		if err := c.CheckAdjacencySymmetry(fi); err != nil {
			return err
		}
		if err := c.CheckPlaneFidelity(fi); err != nil {
			return err
		}
	}
	return nil
}
