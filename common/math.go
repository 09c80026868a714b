package common

import (
	"cmp"
	"math"
)

// / Returns the absolute value.
// / @param[in]		a	The value.
// / @return The absolute value of the specified value.
func Abs[T IT](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

// / Clamps the value to the specified range.
// / @param[in]		value			The value to clamp.
// / @param[in]		minInclusive	The minimum permitted return value.
// / @param[in]		maxInclusive	The maximum permitted return value.
// / @return The value, clamped to the specified range.
func Clamp[T cmp.Ordered](value, minInclusive, maxInclusive T) T {
	if value < minInclusive {
		return minInclusive
	}
	if value > maxInclusive {
		return maxInclusive
	}
	return value
}

// / Returns the distance between two points.
func Vdist(v1, v2 Vec3) float32 {
	return v2.Sub(v1).Len()
}

// / Returns the square of the distance between two points.
func VdistSqr(v1, v2 Vec3) float32 {
	d := v2.Sub(v1)
	return d.Dot(d)
}

// / Returns the manhattan distance between two points.
func VdistManhattan(v1, v2 Vec3) float32 {
	return Abs(v2[0]-v1[0]) + Abs(v2[1]-v1[1]) + Abs(v2[2]-v1[2])
}

// / Performs a 'sloppy' colocation check of the specified points.
// / Points closer than 1e-6 are considered the same vertex.
func Vequal(p0, p1 Vec3) bool {
	return VdistSqr(p0, p1) < 1e-12
}

// / Normalizes the vector. A zero vector is returned unchanged.
func Vnormalize(v Vec3) Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}

// / Checks that the specified vector's components are all finite.
func Visfinite(v Vec3) bool {
	return IsFinite(v[0]) && IsFinite(v[1]) && IsFinite(v[2])
}

func IsFinite(v float32) bool {
	return !math.IsInf(float64(v), 0) && !math.IsNaN(float64(v))
}

func MaxFloat32() float32 {
	return math.MaxFloat32
}
