package grip

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// --- Constants ---

const (
	// ParallelEpsilon is the largest |cos| between a ray and a plane normal
	// that still counts as parallel. Guards the division in FindPointOnPlane.
	ParallelEpsilon float32 = 1e-6

	// AngleEpsilon is the largest rotation (radians) treated as no rotation.
	// Suppresses jitter between turn samples. Kept separate from
	// ParallelEpsilon.
	AngleEpsilon float32 = 1e-7
)

var (
	unitX = mgl32.Vec3{1, 0, 0}
	unitY = mgl32.Vec3{0, 1, 0}
	unitZ = mgl32.Vec3{0, 0, 1}
)

// safeNormalize returns v scaled to unit length. ok is false (and the zero
// vector returned) when v has no usable length.
func safeNormalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l := v.Len()
	if l == 0 || math32.IsInf(l, 0) || math32.IsNaN(l) {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / l), true
}

// --- Ray / plane ---

// FindPointOnPlane intersects ray with the plane described by a 4x4
// transform: column 2 is the plane normal and column 3 a point on the plane.
// Reports false when the ray runs parallel to the plane or has no direction.
// Intersections behind the ray origin are returned as well.
func FindPointOnPlane(ray Ray, plane mgl32.Mat4) (mgl32.Vec3, bool) {
	dir, ok := safeNormalize(ray.Direction)
	if !ok {
		return mgl32.Vec3{}, false
	}
	normal := plane.Col(2).Vec3()
	point := plane.Col(3).Vec3()

	denom := dir.Dot(normal)
	if math32.Abs(denom) <= ParallelEpsilon {
		return mgl32.Vec3{}, false
	}
	t := point.Sub(ray.Origin).Dot(normal) / denom
	return ray.Origin.Add(dir.Mul(t)), true
}

// TurnReferencePlane builds an orthonormal basis {perp1, perp2, axis} used to
// measure rotation about axis. Column 2 is the normalized axis; columns 0 and
// 1 span the plane. The translation column is zero; callers move the plane to
// the pivot. A zero axis yields the identity.
func TurnReferencePlane(axis mgl32.Vec3) mgl32.Mat4 {
	n, ok := safeNormalize(axis)
	if !ok {
		return mgl32.Ident4()
	}
	helper := unitY
	if axis.Y() == 0 && axis.Z() == 0 {
		helper = unitZ
	}
	perp1, ok := safeNormalize(n.Cross(helper))
	if !ok {
		// axis lies along Y, so the Y helper is colinear.
		perp1, _ = safeNormalize(n.Cross(unitX))
	}
	perp2, _ := safeNormalize(n.Cross(perp1))
	return mgl32.Mat4FromCols(
		perp1.Vec4(0),
		perp2.Vec4(0),
		n.Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
}

// withTranslation returns m with its translation column set to p.
func withTranslation(m mgl32.Mat4, p mgl32.Vec3) mgl32.Mat4 {
	m.SetCol(3, p.Vec4(1))
	return m
}

// --- Angles ---

// SignedAngle returns the angle that rotates direction last onto direction
// next, negative when cross(last, next) points against axis. It reports
// false when either vector has no length or the angle is at most
// AngleEpsilon, meaning the caller should not advance its state.
//
// The magnitude is atan2(|a x b|, a.b), which equals acos(clamp(a.b)) for unit
// vectors but stays accurate near 0 and pi in float32.
func SignedAngle(last, next, axis mgl32.Vec3) (float32, bool) {
	a, ok := safeNormalize(last)
	if !ok {
		return 0, false
	}
	b, ok := safeNormalize(next)
	if !ok {
		return 0, false
	}
	cross := a.Cross(b)
	dot := mgl32.Clamp(a.Dot(b), -1, 1)
	angle := math32.Atan2(cross.Len(), dot)
	if angle <= AngleEpsilon {
		return 0, false
	}
	if last.Cross(next).Dot(axis) < 0 {
		angle = -angle
	}
	return angle, true
}

// QuatAngle returns the rotation magnitude of q in radians, in [0, pi].
func QuatAngle(q mgl32.Quat) float32 {
	return 2 * math32.Atan2(q.V.Len(), math32.Abs(q.W))
}

// --- Constraint helpers ---

// ClosestPoint returns the member of points nearest to start by squared
// distance. The first of equally near points wins. An empty set returns start.
func ClosestPoint(start mgl32.Vec3, points []mgl32.Vec3) mgl32.Vec3 {
	if len(points) == 0 {
		return start
	}
	best := points[0]
	bestDist := distSq(start, best)
	for _, p := range points[1:] {
		if d := distSq(start, p); d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// ClampBox clamps each component of p into [lo, hi].
func ClampBox(lo, hi, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(p[0], lo[0], hi[0]),
		mgl32.Clamp(p[1], lo[1], hi[1]),
		mgl32.Clamp(p[2], lo[2], hi[2]),
	}
}

func distSq(a, b mgl32.Vec3) float32 {
	d := a.Sub(b)
	return d.Dot(d)
}
