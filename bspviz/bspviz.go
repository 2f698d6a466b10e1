// Package bspviz is an optional debug visualizer: it projects a cell's
// wireframe, or a finished skin, onto a coordinate plane and plots it with
// gosl/plt, the same 2D plotting library the teacher uses for shape
// function and results plots (out/plotting.go). Since the BSP complex is
// 3D and plt draws 2D axes, every edge is projected onto one of the three
// coordinate planes chosen by Axis — good enough for the "does this look
// right" sanity check this package exists for, not a full 3D renderer.
//
// Build-tag gated: most of this module's users never need a plotting
// backend wired in, so it is excluded from the default build the way the
// teacher excludes its own tools/ one-off drivers from the library build.
//
//go:build bspviz

package bspviz

import (
	"github.com/cpmech/bspcsg/cplx"
	"github.com/cpmech/bspcsg/label"
	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/plt"
)

// Axis selects which two coordinates of a point.XYZ to plot.
type Axis int

const (
	AxisXY Axis = iota
	AxisXZ
	AxisYZ
)

func project(p point.XYZ, axis Axis) (u, v float64) {
	switch axis {
	case AxisXY:
		return p.X, p.Y
	case AxisXZ:
		return p.X, p.Z
	default:
		return p.Y, p.Z
	}
}

// PlotCell draws cell ci's wireframe: one line segment per edge, projected
// onto axis. fm formats the line (colour, width, label), as the teacher's
// Plot helper threads a plt.Fmt through to plt.Plot.
func PlotCell(c *cplx.Complex, ci uint64, axis Axis, fm plt.Fmt) {
	for _, fi := range c.Cells[ci].Faces {
		for _, ei := range c.Faces[fi].Edges {
			e := c.Edges[ei]
			a, ok := point.ApproxXYZ(c.VertexCoords(e.V0))
			if !ok {
				r := point.ExactXYZ(c.VertexCoords(e.V0))
				a = ratToXYZ(r)
			}
			b, ok := point.ApproxXYZ(c.VertexCoords(e.V1))
			if !ok {
				r := point.ExactXYZ(c.VertexCoords(e.V1))
				b = ratToXYZ(r)
			}
			au, av := project(a, axis)
			bu, bv := project(b, axis)
			plt.Plot([]float64{au, bu}, []float64{av, bv}, fm.GetArgs(""))
		}
	}
}

// PlotSkin draws every polygon of a finished boolean result's skin.
func PlotSkin(skin *label.Skin, axis Axis, fm plt.Fmt) {
	if skin == nil || len(skin.Faces) == 0 {
		chk.Panic("bspviz: cannot plot an empty skin")
	}
	for _, f := range skin.Faces {
		if len(f) < 2 {
			continue
		}
		u := make([]float64, len(f)+1)
		v := make([]float64, len(f)+1)
		for i, vi := range f {
			pu, pv := project(skin.Verts[vi], axis)
			u[i], v[i] = pu, pv
		}
		u[len(f)], v[len(f)] = u[0], v[0]
		plt.Plot(u, v, fm.GetArgs(""))
	}
}

func ratToXYZ(r point.Rat3) point.XYZ {
	x, _ := r.X.Float64()
	y, _ := r.Y.Float64()
	z, _ := r.Z.Float64()
	return point.XYZ{X: x, Y: y, Z: z}
}
