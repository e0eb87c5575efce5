package phys

import (
	"fmt"

	"github.com/planarphys/planar/internal/geom"
)

// Constraint is a joint between bodies. Concrete joints differ in how
// many body slots they carry; the grouping layer only needs to
// enumerate and rewrite those slots.
type Constraint interface {
	Interactor

	// Bodies enumerates the non-nil body slots in declaration order.
	Bodies() []*Body

	// ReplaceBody rewrites every slot holding old to point at new,
	// which may be nil.
	ReplaceBody(old, new *Body)

	// Clone produces an unowned copy with a fresh id. Slots still
	// point at the original bodies; callers rewrite them as needed.
	Clone() Constraint

	Compound() *Compound
	Space() *Space

	base() *constraint
}

// constraint is the embeddable joint base.
type constraint struct {
	interactor
	compound *Compound
	space    *Space
}

func newConstraintBase() constraint {
	return constraint{interactor: newInteractor(AnyConstraint)}
}

func (c *constraint) Compound() *Compound { return c.compound }
func (c *constraint) Space() *Space       { return c.space }
func (c *constraint) base() *constraint   { return c }

// DistanceJoint keeps two bodies a fixed distance apart.
type DistanceJoint struct {
	constraint
	A, B *Body
	Dist float64
}

func NewDistanceJoint(a, b *Body, dist float64) *DistanceJoint {
	return &DistanceJoint{constraint: newConstraintBase(), A: a, B: b, Dist: dist}
}

func (j *DistanceJoint) Bodies() []*Body {
	out := make([]*Body, 0, 2)
	if j.A != nil {
		out = append(out, j.A)
	}
	if j.B != nil {
		out = append(out, j.B)
	}
	return out
}

func (j *DistanceJoint) ReplaceBody(old, new *Body) {
	if j.A == old {
		j.A = new
	}
	if j.B == old {
		j.B = new
	}
}

func (j *DistanceJoint) Clone() Constraint {
	c := NewDistanceJoint(j.A, j.B, j.Dist)
	for _, t := range j.cbTypes {
		c.AddCbType(t)
	}
	return c
}

func (j *DistanceJoint) String() string { return fmt.Sprintf("DistanceJoint#%d", j.id) }

// PivotJoint pins two bodies together at a world anchor.
type PivotJoint struct {
	constraint
	A, B   *Body
	Anchor geom.Vec2
}

func NewPivotJoint(a, b *Body, anchor geom.Vec2) *PivotJoint {
	return &PivotJoint{constraint: newConstraintBase(), A: a, B: b, Anchor: anchor}
}

func (j *PivotJoint) Bodies() []*Body {
	out := make([]*Body, 0, 2)
	if j.A != nil {
		out = append(out, j.A)
	}
	if j.B != nil {
		out = append(out, j.B)
	}
	return out
}

func (j *PivotJoint) ReplaceBody(old, new *Body) {
	if j.A == old {
		j.A = new
	}
	if j.B == old {
		j.B = new
	}
}

func (j *PivotJoint) Clone() Constraint {
	c := NewPivotJoint(j.A, j.B, j.Anchor)
	for _, t := range j.cbTypes {
		c.AddCbType(t)
	}
	return c
}

func (j *PivotJoint) String() string { return fmt.Sprintf("PivotJoint#%d", j.id) }
