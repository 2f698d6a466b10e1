// Package predicate implements the exact geometric predicate layer over
// generic points (point.Coords / point.Ref): orientation tests, segment and
// triangle containment, and the isVertexBuiltFromPlane fast path. Every
// predicate here filters with float64 interval arithmetic first and escalates
// to point.ExactXYZ's rational arithmetic only when the filter cannot bound
// the sign away from zero — numeric decisions here never raise, they
// exhaust the filter/exact cascade until a sign is returned (spec §7).
package predicate

import (
	"math/big"

	"github.com/cpmech/bspcsg/point"
	"github.com/cpmech/gosl/num"
)

// Axis identifies which coordinate is dropped by a 2D projection.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func drop(p point.XYZ, axis Axis) (u, v float64) {
	switch axis {
	case AxisX:
		return p.Y, p.Z
	case AxisY:
		return p.Z, p.X
	default:
		return p.X, p.Y
	}
}

func dropRat(p point.Rat3, axis Axis) (u, v *big.Rat) {
	switch axis {
	case AxisX:
		return p.Y, p.Z
	case AxisY:
		return p.Z, p.X
	default:
		return p.X, p.Y
	}
}

// filterEps bounds the relative error of the float64 fast path before we
// distrust its sign and escalate to exact rational arithmetic. Built from
// gosl/num.EPS the same way point.degenEps is, rather than a bare literal.
var filterEps = 1e5 * num.EPS

func sign(x float64) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func ratSign(r *big.Rat) int {
	return r.Sign()
}

// Orient3D returns the sign of det(a-p, b-p, c-p), the signed volume of
// tetrahedron (p,a,b,c): +1 if p lies on the side of the plane through
// a,b,c opposite its right-hand normal (b-a)x(c-a), -1 if p lies on the
// normal's side, 0 if coplanar. p,a,b,c are resolved coordinates (point.Coords);
// pr,ar,br,cr are their symbolic Refs, used by the isVertexBuiltFromPlane
// fast path so that symbolically-incident points are guaranteed to return
// exactly 0 without any arithmetic.
func Orient3D(p, a, b, c point.Coords, pr, ar, br, cr point.Ref, planeIdx [3]uint32) int {
	if builtFromPlane(pr, planeIdx) {
		return 0
	}

	pa, ok1 := point.ApproxXYZ(p)
	aa, ok2 := point.ApproxXYZ(a)
	ba, ok3 := point.ApproxXYZ(b)
	ca, ok4 := point.ApproxXYZ(c)
	if ok1 && ok2 && ok3 && ok4 {
		det := orient3Ddet(pa, aa, ba, ca)
		bound := filterEps * magnitude4(pa, aa, ba, ca)
		if det > bound {
			return 1
		}
		if det < -bound {
			return -1
		}
	}
	// exact fallback
	pe := point.ExactXYZ(p)
	ae := point.ExactXYZ(a)
	be := point.ExactXYZ(b)
	ce := point.ExactXYZ(c)
	return ratSign(orient3DdetRat(pe, ae, be, ce))
}

func builtFromPlane(r point.Ref, plane [3]uint32) bool {
	return point.IsVertexBuiltFromPlane(r, plane[0], plane[1], plane[2])
}

func orient3Ddet(p, a, b, c point.XYZ) float64 {
	ax, ay, az := a.X-p.X, a.Y-p.Y, a.Z-p.Z
	bx, by, bz := b.X-p.X, b.Y-p.Y, b.Z-p.Z
	cx, cy, cz := c.X-p.X, c.Y-p.Y, c.Z-p.Z
	return ax*(by*cz-bz*cy) - ay*(bx*cz-bz*cx) + az*(bx*cy-by*cx)
}

func magnitude4(p, a, b, c point.XYZ) float64 {
	m := 1.0
	for _, v := range []point.XYZ{p, a, b, c} {
		s := abs(v.X) + abs(v.Y) + abs(v.Z)
		if s > m {
			m = s
		}
	}
	return m * m * m
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func orient3DdetRat(p, a, b, c point.Rat3) *big.Rat {
	sub := func(u, v *big.Rat) *big.Rat { return new(big.Rat).Sub(u, v) }
	ax, ay, az := sub(a.X, p.X), sub(a.Y, p.Y), sub(a.Z, p.Z)
	bx, by, bz := sub(b.X, p.X), sub(b.Y, p.Y), sub(b.Z, p.Z)
	cx, cy, cz := sub(c.X, p.X), sub(c.Y, p.Y), sub(c.Z, p.Z)
	mul := func(u, v *big.Rat) *big.Rat { return new(big.Rat).Mul(u, v) }
	m1 := new(big.Rat).Sub(mul(by, cz), mul(bz, cy))
	m2 := new(big.Rat).Sub(mul(bx, cz), mul(bz, cx))
	m3 := new(big.Rat).Sub(mul(bx, cy), mul(by, cx))
	t1 := mul(ax, m1)
	t2 := mul(ay, m2)
	t3 := mul(az, m3)
	out := new(big.Rat).Sub(t1, t2)
	return out.Add(out, t3)
}

// Orient2D returns the sign of the signed area of triangle (p,a,b) after
// projecting out the given axis.
func Orient2D(p, a, b point.Coords, axis Axis) int {
	pa, ok1 := point.ApproxXYZ(p)
	aa, ok2 := point.ApproxXYZ(a)
	ba, ok3 := point.ApproxXYZ(b)
	if ok1 && ok2 && ok3 {
		pu, pv := drop(pa, axis)
		au, av := drop(aa, axis)
		bu, bv := drop(ba, axis)
		det := (au-pu)*(bv-pv) - (av-pv)*(bu-pu)
		bound := filterEps * magnitude3(pu, pv, au, av, bu, bv)
		if det > bound {
			return 1
		}
		if det < -bound {
			return -1
		}
	}
	pe := point.ExactXYZ(p)
	ae := point.ExactXYZ(a)
	be := point.ExactXYZ(b)
	pu, pv := dropRat(pe, axis)
	au, av := dropRat(ae, axis)
	bu, bv := dropRat(be, axis)
	t1 := new(big.Rat).Mul(new(big.Rat).Sub(au, pu), new(big.Rat).Sub(bv, pv))
	t2 := new(big.Rat).Mul(new(big.Rat).Sub(av, pv), new(big.Rat).Sub(bu, pu))
	return ratSign(new(big.Rat).Sub(t1, t2))
}

func magnitude3(vs ...float64) float64 {
	m := 1.0
	for _, v := range vs {
		if abs(v) > m {
			m = abs(v)
		}
	}
	return m * m
}

// MaxComponentInTriangleNormal picks the projection axis whose 2D
// projection of triangle (a,b,c) is non-degenerate: the axis of the
// largest-magnitude component of the triangle's normal vector.
func MaxComponentInTriangleNormal(a, b, c point.XYZ) Axis {
	n := point.Cross(point.Sub(b, a), point.Sub(c, a))
	nx, ny, nz := abs(n.X), abs(n.Y), abs(n.Z)
	if nx >= ny && nx >= nz {
		return AxisX
	}
	if ny >= nx && ny >= nz {
		return AxisY
	}
	return AxisZ
}

// PointInInnerSegment reports whether p lies in the open segment (a,b),
// endpoints excluded. a,b,p are assumed collinear-coplanar candidates; the
// collinearity check itself is performed here via three-projection
// agreement, following extended_predicates.cpp's misAlignment.
func PointInInnerSegment(p, a, b point.Coords) bool {
	if !collinear(p, a, b) {
		return false
	}
	return strictlyBetween(p, a, b)
}

// collinear reports whether p,a,b are collinear by requiring orient2D to
// vanish in all three axis-drop projections — the original's misAlignment
// check, carried as the robustness technique behind the spec's single
// dominant-axis contract (see SPEC_FULL.md §6).
func collinear(p, a, b point.Coords) bool {
	return Orient2D(p, a, b, AxisX) == 0 &&
		Orient2D(p, a, b, AxisY) == 0 &&
		Orient2D(p, a, b, AxisZ) == 0
}

func strictlyBetween(p, a, b point.Coords) bool {
	pa, ok1 := point.ApproxXYZ(p)
	aa, ok2 := point.ApproxXYZ(a)
	ba, ok3 := point.ApproxXYZ(b)
	if !(ok1 && ok2 && ok3) {
		pr, ar, br := point.ExactXYZ(p), point.ExactXYZ(a), point.ExactXYZ(b)
		return ratStrictlyBetweenAny(pr, ar, br)
	}
	return strictBetweenAxis(pa.X, aa.X, ba.X) ||
		strictBetweenAxis(pa.Y, aa.Y, ba.Y) ||
		strictBetweenAxis(pa.Z, aa.Z, ba.Z)
}

func strictBetweenAxis(p, a, b float64) bool {
	if a < b {
		return a < p && p < b
	}
	if a > b {
		return a > p && p > b
	}
	return false
}

func ratStrictlyBetweenAny(p, a, b point.Rat3) bool {
	axis := func(p, a, b *big.Rat) bool {
		c1 := a.Cmp(b)
		if c1 < 0 {
			return a.Cmp(p) < 0 && p.Cmp(b) < 0
		}
		if c1 > 0 {
			return a.Cmp(p) > 0 && p.Cmp(b) > 0
		}
		return false
	}
	return axis(p.X, a.X, b.X) || axis(p.Y, a.Y, b.Y) || axis(p.Z, a.Z, b.Z)
}

// samePoint reports exact coordinate equality (used only to reject shared
// endpoints before testing for a proper crossing).
func samePoint(p, q point.Coords) bool {
	pr, qr := point.ExactXYZ(p), point.ExactXYZ(q)
	return pr.X.Cmp(qr.X) == 0 && pr.Y.Cmp(qr.Y) == 0 && pr.Z.Cmp(qr.Z) == 0
}

// SamePoint is the exported form of samePoint, for callers (colour's
// boundary-mask fallback) that need the vertex-coincidence test directly
// rather than through one of the composite predicates below.
func SamePoint(p, q point.Coords) bool { return samePoint(p, q) }

func sameHalfPlane(p, q, v1, v2 point.Coords) bool {
	return Orient2D(p, v1, v2, AxisX) == Orient2D(q, v1, v2, AxisX) &&
		Orient2D(p, v1, v2, AxisY) == Orient2D(q, v1, v2, AxisY) &&
		Orient2D(p, v1, v2, AxisZ) == Orient2D(q, v1, v2, AxisZ)
}

// InnerSegmentsCross reports whether segments (u1,u2) and (v1,v2) properly
// intersect: coplanar, no shared endpoints, and the intersection occurs in
// both segments' interiors. Grounded on extended_predicates.cpp's
// innerSegmentsCross.
func InnerSegmentsCross(u1, u2, v1, v2 point.Coords) bool {
	if samePoint(u1, v1) || samePoint(u1, v2) || samePoint(u2, v1) || samePoint(u2, v2) {
		return false
	}
	if orient3DCoplanar(u1, u2, v1, v2) != 0 {
		return false
	}
	if sameHalfPlane(u1, u2, v1, v2) || sameHalfPlane(v1, v2, u1, u2) {
		return false
	}
	// each segment endpoint must not be aligned with the other segment
	if collinear(u1, v1, v2) || collinear(u2, v1, v2) || collinear(v1, u1, u2) || collinear(v2, u1, u2) {
		return false
	}
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		if Orient2D(u1, u2, v1, axis) != 0 || Orient2D(v1, v2, u2, axis) != 0 {
			return true
		}
	}
	return false
}

// orient3DCoplanar is a plain 4-point coplanarity test (no plane-provenance
// fast path) used only by InnerSegmentsCross's preliminary coplanarity
// check.
func orient3DCoplanar(u1, u2, v1, v2 point.Coords) int {
	a, ok1 := point.ApproxXYZ(u1)
	b, ok2 := point.ApproxXYZ(u2)
	c, ok3 := point.ApproxXYZ(v1)
	d, ok4 := point.ApproxXYZ(v2)
	if ok1 && ok2 && ok3 && ok4 {
		det := orient3Ddet(a, b, c, d)
		bound := filterEps * magnitude4(a, b, c, d)
		if det > bound {
			return 1
		}
		if det < -bound {
			return -1
		}
	}
	ae, be, ce, de := point.ExactXYZ(u1), point.ExactXYZ(u2), point.ExactXYZ(v1), point.ExactXYZ(v2)
	return ratSign(orient3DdetRat(ae, be, ce, de))
}

// PointInInnerTriangle reports whether p lies strictly inside triangle
// (v1,v2,v3): p must be on the same side of each edge as the opposite
// vertex, tested via the dominant-axis 2D projection.
func PointInInnerTriangle(p, v1, v2, v3 point.Coords, axis Axis) bool {
	o2 := Orient2D(v1, v2, v3, axis)
	if o2 == 0 {
		return false
	}
	if Orient2D(p, v2, v3, axis) != o2 {
		return false
	}
	if Orient2D(p, v3, v1, axis) != o2 {
		return false
	}
	if Orient2D(p, v1, v2, axis) != o2 {
		return false
	}
	return true
}

// PointInTriangle reports whether p lies in the closed triangle
// (v1,v2,v3): boundary or interior.
func PointInTriangle(p, v1, v2, v3 point.Coords, axis Axis) bool {
	if pointInClosedSegment(p, v1, v2) || pointInClosedSegment(p, v2, v3) || pointInClosedSegment(p, v3, v1) {
		return true
	}
	return PointInInnerTriangle(p, v1, v2, v3, axis)
}

func pointInClosedSegment(p, a, b point.Coords) bool {
	return samePoint(p, a) || samePoint(p, b) || PointInInnerSegment(p, a, b)
}
