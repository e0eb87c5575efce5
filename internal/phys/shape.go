package phys

import "github.com/planarphys/planar/internal/geom"

// Shape is the mass-bearing geometry attached to a body. Only the
// properties the grouping layer needs are modeled: area for mass
// distribution and a local offset for the centre of mass.
type Shape interface {
	Area() float64
	Offset() geom.Vec2
	clone() Shape
}

type Circle struct {
	Radius float64
	Local  geom.Vec2
}

func (c Circle) Area() float64      { return 3.141592653589793 * c.Radius * c.Radius }
func (c Circle) Offset() geom.Vec2  { return c.Local }
func (c Circle) clone() Shape       { return c }

type Box struct {
	W, H  float64
	Local geom.Vec2
}

func (b Box) Area() float64     { return b.W * b.H }
func (b Box) Offset() geom.Vec2 { return b.Local }
func (b Box) clone() Shape      { return b }
