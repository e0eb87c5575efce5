package geom

import "math"

// Vec2 is a plain 2D vector value. The coordinate system is y-down,
// so positive rotation angles turn clockwise on screen.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Mul(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

func (a Vec2) Dot(b Vec2) float64   { return a.X*b.X + a.Y*b.Y }
func (a Vec2) Cross(b Vec2) float64 { return a.X*b.Y - a.Y*b.X }

func (a Vec2) Length() float64   { return math.Hypot(a.X, a.Y) }
func (a Vec2) LengthSq() float64 { return a.X*a.X + a.Y*a.Y }

func (a Vec2) Unit() Vec2 {
	l := a.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// RotateAbout rotates a about centre by angle radians.
func (a Vec2) RotateAbout(centre Vec2, angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	d := a.Sub(centre)
	return Vec2{
		X: centre.X + d.X*cos - d.Y*sin,
		Y: centre.Y + d.X*sin + d.Y*cos,
	}
}

func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsInf(a.X, 0) &&
		!math.IsNaN(a.Y) && !math.IsInf(a.Y, 0)
}
