package common

// Prev and Next walk a ring of n indices.
func Prev[T IT](i, n T) T {
	if i-1 >= 0 {
		return i - 1
	}
	return n - 1
}
func Next[T IT](i, n T) T {
	if i+1 < n {
		return i + 1
	}
	return 0
}

// Area returns twice the signed area of the triangle abc projected on the xz-plane.
// The navigation surface is treated as the xz-plane, y is ignored.
func Area(a, b, c Vec3) float32 {
	return (c[0]-a[0])*(b[2]-a[2]) - (b[0]-a[0])*(c[2]-a[2])
}

// LeftOn reports whether c lies left of or on the directed line a->b.
func LeftOn(a, b, c Vec3) bool {
	return Area(a, b, c) >= 0
}

// ContourArea returns twice the signed xz area of a closed contour.
// Contours with the winding expected by LeftOn have a positive area.
func ContourArea(points []Vec3) float32 {
	n := len(points)
	if n < 3 {
		return 0
	}
	var area float32
	for i := 1; i < n-1; i++ {
		area += Area(points[0], points[i], points[i+1])
	}
	return area
}

