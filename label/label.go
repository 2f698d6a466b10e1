// Package label implements spec §4.5: once every face is finally coloured,
// flood-fill the cell-adjacency graph to assign each cell's placement
// (EXTERNAL / INTERNAL_A / INTERNAL_B / INTERNAL_AB), then resolve the
// requested boolean operator to an inside/outside predicate over cells.
// Grounded on the cell-labelling pass of makePolyhedralMesh.cpp.
package label

import "github.com/cpmech/bspcsg/cplx"

// Opcode values recognized by Inside, matching spec §7's external CLI
// contract: union, intersection, difference, and single-mesh repair.
const (
	OpUnion        byte = 'U'
	OpIntersection byte = 'I'
	OpDifference   byte = 'D'
	OpRepair       byte = '0'
)

// Run flood-fills cell placement starting from a cell touching the
// convex-hull boundary, crossing WHITE faces without change and
// BLACK_A/BLACK_B/BLACK_AB faces by flipping the corresponding
// solid-membership bit. The region beyond the hull is EXTERNAL, so the
// seed cell gets the state reached by crossing its hull face from outside.
func Run(c *cplx.Complex) {
	n := len(c.Cells)
	if n == 0 {
		return
	}
	inA := make([]bool, n)
	inB := make([]bool, n)
	visited := make([]bool, n)

	seed := boundaryCell(c)
	visited[seed] = true
	for _, fi := range c.Cells[seed].Faces {
		if f := c.Faces[fi]; f.OtherCell(seed) == cplx.NoIndex {
			inA[seed] = f.Colour == cplx.BlackA || f.Colour == cplx.BlackAB
			inB[seed] = f.Colour == cplx.BlackB || f.Colour == cplx.BlackAB
			break
		}
	}
	queue := []uint64{seed}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, fi := range c.Cells[cur].Faces {
			f := c.Faces[fi]
			other := f.OtherCell(cur)
			if other == cplx.NoIndex || visited[other] {
				continue
			}
			visited[other] = true
			a, b := inA[cur], inB[cur]
			switch f.Colour {
			case cplx.BlackA:
				a = !a
			case cplx.BlackB:
				b = !b
			case cplx.BlackAB:
				a, b = !a, !b
			}
			inA[other], inB[other] = a, b
			queue = append(queue, other)
		}
	}

	for ci := range c.Cells {
		switch {
		case inA[ci] && inB[ci]:
			c.Cells[ci].Placement = cplx.InternalAB
		case inA[ci]:
			c.Cells[ci].Placement = cplx.InternalA
		case inB[ci]:
			c.Cells[ci].Placement = cplx.InternalB
		default:
			c.Cells[ci].Placement = cplx.External
		}
	}
}

// boundaryCell returns any cell with a face open to the exterior of the
// convex hull (OtherCell == NoIndex), the flood-fill seed.
func boundaryCell(c *cplx.Complex) uint64 {
	for ci, cell := range c.Cells {
		for _, fi := range cell.Faces {
			if c.Faces[fi].OtherCell(uint64(ci)) == cplx.NoIndex {
				return uint64(ci)
			}
		}
	}
	return 0
}

// Inside reports whether a cell with the given placement belongs to the
// result of the requested boolean operator.
func Inside(p cplx.Placement, opcode byte) bool {
	switch opcode {
	case OpUnion:
		return p == cplx.InternalA || p == cplx.InternalB || p == cplx.InternalAB
	case OpIntersection:
		return p == cplx.InternalAB
	case OpDifference:
		return p == cplx.InternalA
	case OpRepair:
		return p == cplx.InternalA
	default:
		return false
	}
}
