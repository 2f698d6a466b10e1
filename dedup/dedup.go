// Package dedup runs the duplicate-point welding pass described in spec
// §6: raw triangle-soup input frequently repeats a vertex's coordinates
// across several triangles (one copy per incident face), and those copies
// must collapse to one explicit vertex before tetrahedralization or the
// Delaunay insertion sees spurious coincident points. Grounded on the
// teacher's use of gosl/gm.Bins as a spatial hash for nearest-point lookup
// (out/out.go's NodBins/IpsBins), applied here to vertex welding instead of
// node/integration-point lookup.
package dedup

import (
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/gm"
)

// Tol is the smallest per-axis extent bbox gives the bin grid, so that flat
// or single-point inputs still get a non-degenerate grid. Which points weld
// together is decided by gm.Bins.Find, not by Tol.
const Tol = 1e-8

// Result is a welded vertex set plus the triangles remapped onto it.
type Result struct {
	Verts []point.XYZ
	Tris  [][3]uint32
}

// Run welds near-duplicate vertices in verts (via a spatial bin lookup, not
// an O(n²) scan) and remaps tris onto the welded indices, dropping any
// triangle that degenerates to a repeated vertex after welding.
func Run(verts []point.XYZ, tris [][3]uint32) (*Result, error) {
	welded, remap, err := Weld(verts)
	if err != nil {
		return nil, err
	}
	out := &Result{Verts: welded}
	for _, tr := range tris {
		rt, ok := Remap(remap, tr)
		if !ok {
			continue
		}
		out.Tris = append(out.Tris, rt)
	}
	return out, nil
}

// Weld collapses near-duplicate vertices in verts via a spatial bin lookup
// and returns the welded vertex set plus a remap slice (remap[i] is the
// welded index vertex i collapsed onto). Exposed separately from Run so
// callers that must weld several vertex arrays into one shared index space
// (e.g. two input solids for a boolean operation) can do so before
// remapping and filtering each array's own triangles independently.
func Weld(verts []point.XYZ) (welded []point.XYZ, remap []uint32, err error) {
	if len(verts) == 0 {
		return nil, nil, nil
	}

	xi, xf := bbox(verts)
	ndiv := binDivisions(len(verts))
	var bins gm.Bins
	if err := bins.Init(xi, xf, ndiv); err != nil {
		return nil, nil, chk.Err("dedup: could not initialise spatial bins: %v", err)
	}

	remap = make([]uint32, len(verts))
	for i, v := range verts {
		x := []float64{v.X, v.Y, v.Z}
		if id := bins.Find(x); id >= 0 {
			remap[i] = uint32(id)
			continue
		}
		newID := uint32(len(welded))
		welded = append(welded, v)
		if err := bins.Append(x, int(newID)); err != nil {
			return nil, nil, chk.Err("dedup: could not insert vertex %d into bins: %v", i, err)
		}
		remap[i] = newID
	}
	return welded, remap, nil
}

// Remap applies a weld's remap table to a single triangle, reporting ok=false
// when the triangle degenerates (two or more corners collapse to the same
// welded vertex) and should be dropped.
func Remap(remap []uint32, tr [3]uint32) (out [3]uint32, ok bool) {
	a, b, c := remap[tr[0]], remap[tr[1]], remap[tr[2]]
	if a == b || b == c || a == c {
		return out, false
	}
	return [3]uint32{a, b, c}, true
}

func bbox(verts []point.XYZ) (xi, xf []float64) {
	xi = []float64{verts[0].X, verts[0].Y, verts[0].Z}
	xf = []float64{verts[0].X, verts[0].Y, verts[0].Z}
	for _, v := range verts[1:] {
		xi[0] = min(xi[0], v.X)
		xi[1] = min(xi[1], v.Y)
		xi[2] = min(xi[2], v.Z)
		xf[0] = max(xf[0], v.X)
		xf[1] = max(xf[1], v.Y)
		xf[2] = max(xf[2], v.Z)
	}
	// guard against a degenerate (flat or single-point) bounding box, which
	// gm.Bins.Init otherwise rejects as zero-size.
	for i := 0; i < 3; i++ {
		if xf[i]-xi[i] < Tol {
			xf[i] = xi[i] + Tol
		}
	}
	return xi, xf
}

// binDivisions targets roughly one vertex per bin, capped so tiny and huge
// inputs both get a sane grid.
func binDivisions(n int) []int {
	d := 1
	for d*d*d < n {
		d++
	}
	if d < 4 {
		d = 4
	}
	if d > 128 {
		d = 128
	}
	return []int{d, d, d}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
