package common

type LineSegment struct {
	From Vec3
	To   Vec3
}

func NewLineSegment(from, to Vec3) LineSegment {
	return LineSegment{From: from, To: to}
}

func (s LineSegment) Delta() Vec3 {
	return s.To.Sub(s.From)
}

func (s LineSegment) Length() float32 {
	return s.Delta().Len()
}

func (s LineSegment) SquaredLength() float32 {
	d := s.Delta()
	return d.Dot(d)
}

// At returns From + t*(To-From).
func (s LineSegment) At(t float32) Vec3 {
	return s.From.Add(s.Delta().Mul(t))
}

// ClosestPointToPointParameter returns the parameter t of the point on the
// infinite line closest to point. With clampToLine the result lies in [0, 1].
// A degenerate segment yields 0.
func (s LineSegment) ClosestPointToPointParameter(point Vec3, clampToLine bool) float32 {
	delta := s.Delta()
	d := delta.Dot(delta)
	if d == 0 {
		return 0
	}
	t := point.Sub(s.From).Dot(delta) / d
	if clampToLine {
		t = Clamp(t, 0, 1)
	}
	return t
}

func (s LineSegment) ClosestPointToPoint(point Vec3, clampToLine bool) Vec3 {
	return s.At(s.ClosestPointToPointParameter(point, clampToLine))
}
