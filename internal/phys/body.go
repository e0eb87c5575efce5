package phys

import (
	"fmt"
	"math"

	"github.com/planarphys/planar/internal/geom"
)

type BodyType int

const (
	Dynamic BodyType = iota
	Static
	Kinematic
)

func (t BodyType) String() string {
	switch t {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	default:
		return "dynamic"
	}
}

// Body is a simulation particle: position, velocity, mass and shapes.
// A body is owned by at most one compound, or sits directly in a
// space as a root entity.
type Body struct {
	interactor
	btype  BodyType
	pos    geom.Vec2
	vel    geom.Vec2
	mass   float64
	shapes []Shape

	compound *Compound
	space    *Space
}

func NewBody(t BodyType, pos geom.Vec2) *Body {
	return &Body{
		interactor: newInteractor(AnyBody),
		btype:      t,
		pos:        pos,
		mass:       1,
	}
}

func (b *Body) Type() BodyType      { return b.btype }
func (b *Body) Position() geom.Vec2 { return b.pos }
func (b *Body) Velocity() geom.Vec2 { return b.vel }
func (b *Body) Mass() float64       { return b.mass }

func (b *Body) SetPosition(p geom.Vec2) { b.pos = p }
func (b *Body) SetVelocity(v geom.Vec2) { b.vel = v }

func (b *Body) SetMass(m float64) error {
	if m <= 0 || math.IsNaN(m) || math.IsInf(m, 0) {
		return fmt.Errorf("phys: body mass must be positive and finite, got %v", m)
	}
	b.mass = m
	return nil
}

func (b *Body) AddShape(s Shape) {
	if s != nil {
		b.shapes = append(b.shapes, s)
	}
}

func (b *Body) ShapeCount() int { return len(b.shapes) }

// EachShape iterates the body's shapes in attachment order.
func (b *Body) EachShape(fn func(Shape)) {
	for _, s := range b.shapes {
		fn(s)
	}
}

// Compound reports the owning compound, nil for root bodies.
func (b *Body) Compound() *Compound { return b.compound }

// Space reports the space this body is live in, whether it entered
// directly or through a compound subtree.
func (b *Body) Space() *Space { return b.space }

// WorldCOM is the body's centre of mass in world coordinates: the
// position offset by the area-weighted centre of its shapes.
func (b *Body) WorldCOM() geom.Vec2 {
	if len(b.shapes) == 0 {
		return b.pos
	}
	var total float64
	var acc geom.Vec2
	for _, s := range b.shapes {
		a := s.Area()
		total += a
		acc = acc.Add(s.Offset().Mul(a))
	}
	if total == 0 {
		return b.pos
	}
	return b.pos.Add(acc.Mul(1 / total))
}

// Translate moves the body by delta. A static body that is live in a
// space refuses to move. Consumes weak arguments.
func (b *Body) Translate(delta *geom.Vec) error {
	if err := geom.Check(delta); err != nil {
		return err
	}
	if b.btype == Static && b.space != nil {
		return fmt.Errorf("%w (%v)", ErrStaticBody, b)
	}
	b.pos = b.pos.Add(delta.Vec2)
	delta.Release()
	return nil
}

// Rotate turns the body about centre by angle radians. Same static
// rule and weak-argument handling as Translate.
func (b *Body) Rotate(centre *geom.Vec, angle float64) error {
	if err := geom.Check(centre); err != nil {
		return err
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return ErrBadAngle
	}
	if b.btype == Static && b.space != nil {
		return fmt.Errorf("%w (%v)", ErrStaticBody, b)
	}
	b.pos = b.pos.RotateAbout(centre.Vec2, angle)
	centre.Release()
	return nil
}

// Clone produces an unowned copy with a fresh id.
func (b *Body) Clone() *Body {
	c := NewBody(b.btype, b.pos)
	c.vel = b.vel
	c.mass = b.mass
	c.shapes = make([]Shape, len(b.shapes))
	for i, s := range b.shapes {
		c.shapes[i] = s.clone()
	}
	for _, t := range b.cbTypes {
		c.AddCbType(t)
	}
	return c
}

func (b *Body) String() string { return fmt.Sprintf("Body#%d", b.id) }
