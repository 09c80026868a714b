package common

// Plane is stored as a unit normal and the constant d of n·p + d = 0.
type Plane struct {
	Normal   Vec3
	Constant float32
}

// FromCoplanarPoints sets the plane through a, b and c. The normal follows
// (c-b)×(a-b), so a contour wound for LeftOn gets an upward (+y) normal.
func (p *Plane) FromCoplanarPoints(a, b, c Vec3) *Plane {
	v1 := c.Sub(b)
	v2 := a.Sub(b)
	p.Normal = Vnormalize(v1.Cross(v2))
	p.Constant = -a.Dot(p.Normal)
	return p
}

func (p Plane) DistanceToPoint(point Vec3) float32 {
	return p.Normal.Dot(point) + p.Constant
}

