package common

import "math"

type AABB struct {
	Min Vec3
	Max Vec3
}

// EmptyAABB is inverted so that the first ExpandByPoint sets both corners.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

func AABBFromPoints(points []Vec3) AABB {
	b := EmptyAABB()
	for _, p := range points {
		b.ExpandByPoint(p)
	}
	return b
}

func (b *AABB) ExpandByPoint(p Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

func (b *AABB) ExpandByAABB(o AABB) {
	b.ExpandByPoint(o.Min)
	b.ExpandByPoint(o.Max)
}

// Expand grows the box by margin on every side.
func (b AABB) Expand(margin float32) AABB {
	m := Vec3{margin, margin, margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

func (b AABB) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Intersects treats touching boxes as intersecting.
func (b AABB) Intersects(o AABB) bool {
	return !(o.Max[0] < b.Min[0] || o.Min[0] > b.Max[0] ||
		o.Max[1] < b.Min[1] || o.Min[1] > b.Max[1] ||
		o.Max[2] < b.Min[2] || o.Min[2] > b.Max[2])
}

func (b AABB) ContainsPoint(p Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

func (b AABB) ClampPoint(p Vec3) Vec3 {
	return Vec3{
		Clamp(p[0], b.Min[0], b.Max[0]),
		Clamp(p[1], b.Min[1], b.Max[1]),
		Clamp(p[2], b.Min[2], b.Max[2]),
	}
}

func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}
