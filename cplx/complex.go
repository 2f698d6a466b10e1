package cplx

import "github.com/cpmech/bspcsg/point"

// Complex owns the four arenas plus the constraint list and the scratch
// maps used by the splitter. FirstVirtual marks the first virtual
// (manifold-closing) constraint index: constraints at or above it carry no
// colouring weight.
type Complex struct {
	Vertices    []Vertex
	Edges       []Edge
	Faces       []Face
	Cells       []Cell
	Constraints []Constraint
	FirstVirtual uint32

	// process-wide scratch, dense O(1) maps grown in lockstep with the
	// vertex/edge arenas. orBin uses 2 as "not yet computed" per the
	// glossary; visit maps default to false. Every routine that writes
	// these must borrow them through Borrow*Scratch below so only the
	// touched entries are restored, never a full zero (spec §5).
	vrtsOrBin []int8
	vrtsVisit []bool
	edgeVisit []bool
}

// New returns an empty complex ready for bootstrap.
func New() *Complex {
	return &Complex{FirstVirtual: NoVertex}
}

// IsVirtual reports whether constraint k is a virtual, manifold-closing
// constraint (carries no colour group).
func (c *Complex) IsVirtual(k uint32) bool { return k >= c.FirstVirtual }

// AddExplicitVertex appends a new Explicit vertex and returns its index.
func (c *Complex) AddExplicitVertex(x, y, z float64) uint32 {
	idx := uint32(len(c.Vertices))
	c.Vertices = append(c.Vertices, Vertex{Kind: point.Explicit, X: x, Y: y, Z: z})
	c.growScratch()
	return idx
}

// AddLPIVertex appends a new LPI vertex (line e0,e1 meets plane c0,c1,c2).
func (c *Complex) AddLPIVertex(e0, e1, c0, c1, c2 uint32) uint32 {
	idx := uint32(len(c.Vertices))
	c.Vertices = append(c.Vertices, Vertex{Kind: point.LPI, E0: e0, E1: e1, C0: c0, C1: c1, C2: c2})
	c.growScratch()
	return idx
}

// AddTPIVertex appends a new TPI vertex (three planes, 9 explicit indices).
func (c *Complex) AddTPIVertex(planes [9]uint32) uint32 {
	idx := uint32(len(c.Vertices))
	c.Vertices = append(c.Vertices, Vertex{Kind: point.TPI, Plane: planes})
	c.growScratch()
	return idx
}

func (c *Complex) growScratch() {
	c.vrtsOrBin = append(c.vrtsOrBin, 2)
	c.vrtsVisit = append(c.vrtsVisit, false)
}

// AddEdge appends a new edge and grows the edge-visit scratch in lockstep.
func (c *Complex) AddEdge(e Edge) uint64 {
	idx := uint64(len(c.Edges))
	c.Edges = append(c.Edges, e)
	c.edgeVisit = append(c.edgeVisit, false)
	return idx
}

// AddFace appends a new face.
func (c *Complex) AddFace(f Face) uint64 {
	idx := uint64(len(c.Faces))
	c.Faces = append(c.Faces, f)
	return idx
}

// AddCell appends a new cell.
func (c *Complex) AddCell(cell Cell) uint64 {
	idx := uint64(len(c.Cells))
	c.Cells = append(c.Cells, cell)
	return idx
}

// VertexRef builds the symbolic Ref of vertex v, for isVertexBuiltFromPlane.
func (c *Complex) VertexRef(v uint32) point.Ref {
	vx := c.Vertices[v]
	switch vx.Kind {
	case point.Explicit:
		return point.Ref{Kind: point.Explicit, Idx: [9]uint32{v}}
	case point.LPI:
		return point.Ref{Kind: point.LPI, Idx: [9]uint32{vx.E0, vx.E1, vx.C0, vx.C1, vx.C2}}
	default: // TPI
		r := point.Ref{Kind: point.TPI}
		copy(r.Idx[:], vx.Plane[:])
		return r
	}
}

// VertexCoords resolves vertex v to its defining explicit coordinates,
// ready for predicate.Orient3D/Orient2D.
func (c *Complex) VertexCoords(v uint32) point.Coords {
	vx := c.Vertices[v]
	xyz := func(i uint32) point.XYZ {
		e := c.Vertices[i]
		return point.XYZ{X: e.X, Y: e.Y, Z: e.Z}
	}
	switch vx.Kind {
	case point.Explicit:
		return point.Coords{Kind: point.Explicit, P: point.XYZ{X: vx.X, Y: vx.Y, Z: vx.Z}}
	case point.LPI:
		return point.Coords{
			Kind: point.LPI,
			E0:   xyz(vx.E0), E1: xyz(vx.E1),
			C0: xyz(vx.C0), C1: xyz(vx.C1), C2: xyz(vx.C2),
		}
	default: // TPI
		p := vx.Plane
		return point.Coords{
			Kind: point.TPI,
			A0:   xyz(p[0]), A1: xyz(p[1]), A2: xyz(p[2]),
			B0: xyz(p[3]), B1: xyz(p[4]), B2: xyz(p[5]),
			D0: xyz(p[6]), D1: xyz(p[7]), D2: xyz(p[8]),
		}
	}
}

// ---- scoped scratch borrowing ----

// OrBinScratch is a scoped borrow of the per-vertex orBin classification
// map. Release restores only the entries this borrow touched.
type OrBinScratch struct {
	c       *Complex
	touched []uint32
}

func (c *Complex) BorrowOrBin() *OrBinScratch { return &OrBinScratch{c: c} }

func (s *OrBinScratch) Get(v uint32) int8 { return s.c.vrtsOrBin[v] }

func (s *OrBinScratch) Set(v uint32, val int8) {
	if s.c.vrtsOrBin[v] == 2 {
		s.touched = append(s.touched, v)
	}
	s.c.vrtsOrBin[v] = val
}

func (s *OrBinScratch) Release() {
	for _, v := range s.touched {
		s.c.vrtsOrBin[v] = 2
	}
	s.touched = nil
}

// VisitScratch is a scoped borrow of a boolean visit bitmap (vertices or
// edges), used to enumerate a cell's vertices/edges exactly once. It
// dereferences the complex's backing slice live on every call, the way
// OrBinScratch dereferences vrtsOrBin live through c, rather than snapshotting
// a slice header: splitCell appends new edges and vertices (AddEdge,
// AddLPIVertex, AddTPIVertex) while a borrow from an earlier stage of the
// same split is still open, and a frozen header would leave later calls
// indexing a stale, shorter backing array.
type VisitScratch struct {
	c       *Complex
	field   visitField
	touched []uint64
}

type visitField int

const (
	visitVertex visitField = iota
	visitEdge
)

func (c *Complex) BorrowVertexVisit() *VisitScratch {
	return &VisitScratch{c: c, field: visitVertex}
}

func (c *Complex) BorrowEdgeVisit() *VisitScratch {
	return &VisitScratch{c: c, field: visitEdge}
}

func (s *VisitScratch) bits() []bool {
	if s.field == visitEdge {
		return s.c.edgeVisit
	}
	return s.c.vrtsVisit
}

func (s *VisitScratch) Visited(i uint64) bool { return s.bits()[i] }

func (s *VisitScratch) Visit(i uint64) {
	b := s.bits()
	if !b[i] {
		b[i] = true
		s.touched = append(s.touched, i)
	}
}

func (s *VisitScratch) Release() {
	b := s.bits()
	for _, i := range s.touched {
		b[i] = false
	}
	s.touched = nil
}
