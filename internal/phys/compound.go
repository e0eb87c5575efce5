package phys

import (
	"fmt"
	"math"

	"github.com/planarphys/planar/internal/geom"
)

// Compound groups bodies, constraints and child compounds into one
// addressable unit. A compound is either a root (owned by a space or
// by nothing) or nested under exactly one parent compound, never
// both. It carries no geometry of its own.
type Compound struct {
	interactor
	parent *Compound
	space  *Space

	bodies      []*Body
	constraints []Constraint
	children    []*Compound
}

func NewCompound() *Compound {
	return &Compound{interactor: newInteractor(AnyCompound)}
}

func (c *Compound) Bodies() BodyList             { return BodyList{c} }
func (c *Compound) Constraints() ConstraintList  { return ConstraintList{c} }
func (c *Compound) Children() CompoundList       { return CompoundList{c} }

// Compound reports the parent compound, nil for roots.
func (c *Compound) Compound() *Compound { return c.parent }

// Root walks up to the top of the tree.
func (c *Compound) Root() *Compound {
	r := c
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Space reports the space the tree is live in, through any depth of
// nesting.
func (c *Compound) Space() *Space { return c.Root().space }

func (c *Compound) gate() error {
	if s := c.Space(); s != nil && s.midstep {
		return ErrMidstep
	}
	return nil
}

// SetCompound reparents c. A nil parent detaches it from its current
// parent. Remove-then-add: the old owner's list is updated before the
// new owner's. No-op when the parent is unchanged.
func (c *Compound) SetCompound(parent *Compound) error {
	if parent == c.parent {
		return nil
	}
	if parent == nil {
		return c.parent.Children().Remove(c)
	}
	return parent.Children().Add(c)
}

// SetSpace inserts or removes the compound tree as a unit. Only roots
// may be attached to a space directly.
func (c *Compound) SetSpace(s *Space) error {
	if c.parent != nil {
		return fmt.Errorf("%w: %v is inside %v", ErrNotRoot, c, c.parent)
	}
	if s == c.space {
		return nil
	}
	if c.space != nil {
		if err := c.space.RemoveCompound(c); err != nil {
			return err
		}
	}
	if s != nil {
		return s.AddCompound(c)
	}
	return nil
}

// VisitBodies applies fn to every body in the subtree: direct bodies
// first, then each child compound depth-first in insertion order.
func (c *Compound) VisitBodies(fn func(*Body)) error {
	if fn == nil {
		return ErrNilVisitor
	}
	c.visitBodies(fn)
	return nil
}

// VisitConstraints applies fn to every constraint in the subtree,
// same order discipline as VisitBodies.
func (c *Compound) VisitConstraints(fn func(Constraint)) error {
	if fn == nil {
		return ErrNilVisitor
	}
	c.visitConstraints(fn)
	return nil
}

// VisitCompounds applies fn to every compound in the subtree,
// including c itself, parents before children.
func (c *Compound) VisitCompounds(fn func(*Compound)) error {
	if fn == nil {
		return ErrNilVisitor
	}
	c.visitCompounds(fn)
	return nil
}

func (c *Compound) visitBodies(fn func(*Body)) {
	for _, b := range c.bodies {
		fn(b)
	}
	for _, child := range c.children {
		child.visitBodies(fn)
	}
}

func (c *Compound) visitConstraints(fn func(Constraint)) {
	for _, con := range c.constraints {
		fn(con)
	}
	for _, child := range c.children {
		child.visitConstraints(fn)
	}
}

func (c *Compound) visitCompounds(fn func(*Compound)) {
	fn(c)
	for _, child := range c.children {
		child.visitCompounds(fn)
	}
}

// Copy deep-clones the subtree. Every body and constraint in the
// result is a fresh clone; nesting and ordering match the source.
// Constraint slots referencing bodies inside the subtree are rewritten
// to the corresponding clones; slots referencing bodies outside it are
// nulled so the copy cannot entangle with the source's surroundings.
// The result has no parent and no space.
func (c *Compound) Copy() *Compound {
	clones := make(map[*Body]*Body)
	var cons []Constraint
	out := c.copyTree(clones, &cons)

	// Slots resolve only after the whole subtree is cloned: a
	// constraint may reference a body in a sibling branch.
	for _, con := range cons {
		for _, b := range con.Bodies() {
			con.ReplaceBody(b, clones[b])
		}
	}
	return out
}

func (c *Compound) copyTree(clones map[*Body]*Body, cons *[]Constraint) *Compound {
	out := NewCompound()
	for _, t := range c.cbTypes {
		out.AddCbType(t)
	}
	for _, b := range c.bodies {
		cb := b.Clone()
		cb.compound = out
		out.bodies = append(out.bodies, cb)
		clones[b] = cb
	}
	for _, con := range c.constraints {
		cc := con.Clone()
		cc.base().compound = out
		out.constraints = append(out.constraints, cc)
		*cons = append(*cons, cc)
	}
	for _, child := range c.children {
		cc := child.copyTree(clones, cons)
		cc.parent = out
		out.children = append(out.children, cc)
	}
	return out
}

// BreakApart dissolves c's own grouping: every directly owned body,
// constraint and child compound is promoted one level up, to the
// parent compound or to the space when c is a root. Children keep
// their internal structure. The migration is pure ownership surgery:
// entities stay live in the space throughout, so the ignored-pair
// table and pending callback queue are untouched. Afterwards c is
// empty and detached.
func (c *Compound) BreakApart() error {
	if err := c.gate(); err != nil {
		return err
	}
	switch {
	case c.parent != nil:
		p := c.parent
		for _, b := range c.bodies {
			b.compound = p
			p.bodies = append(p.bodies, b)
		}
		for _, con := range c.constraints {
			con.base().compound = p
			p.constraints = append(p.constraints, con)
		}
		for _, child := range c.children {
			child.parent = p
			p.children = append(p.children, child)
		}
		for i, have := range p.children {
			if have == c {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		c.parent = nil

	case c.space != nil:
		s := c.space
		for _, b := range c.bodies {
			b.compound = nil
			s.bodies = append(s.bodies, b)
		}
		for _, con := range c.constraints {
			con.base().compound = nil
			s.constraints = append(s.constraints, con)
		}
		for _, child := range c.children {
			child.parent = nil
			child.space = s
			s.compounds = append(s.compounds, child)
		}
		for i, have := range s.compounds {
			if have == c {
				s.compounds = append(s.compounds[:i], s.compounds[i+1:]...)
				break
			}
		}
		c.space = nil

	default:
		for _, b := range c.bodies {
			b.compound = nil
		}
		for _, con := range c.constraints {
			con.base().compound = nil
		}
		for _, child := range c.children {
			child.parent = nil
		}
	}

	c.bodies, c.constraints, c.children = nil, nil, nil
	return nil
}

// COM computes the mass-weighted centre of mass over every shaped
// body in the subtree. Bodies without shapes carry no mass-bearing
// geometry and are skipped. Fails when no shaped body exists rather
// than returning a degenerate value. The result is pooled; pass weak
// to have the first consumer release it.
func (c *Compound) COM(weak bool) (*geom.Vec, error) {
	var acc geom.Vec2
	var total float64
	c.visitBodies(func(b *Body) {
		if len(b.shapes) == 0 {
			return
		}
		acc = acc.Add(b.WorldCOM().Mul(b.mass))
		total += b.mass
	})
	if total == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoMass, c)
	}
	acc = acc.Mul(1 / total)
	if weak {
		return geom.WeakVec(acc.X, acc.Y), nil
	}
	return geom.NewVec(acc.X, acc.Y), nil
}

// Translate moves every body in the subtree by delta. The delta's
// weak flag is suspended for the duration so per-body consumption
// cannot recycle it mid-traversal; it is released once at the end.
//
// Not transactional: a static body that is live in a space fails the
// whole call, but bodies visited before it stay moved.
func (c *Compound) Translate(delta *geom.Vec) error {
	if err := geom.Check(delta); err != nil {
		return err
	}
	wasWeak := delta.Weak()
	delta.SetWeak(false)

	var firstErr error
	c.visitBodies(func(b *Body) {
		if firstErr != nil {
			return
		}
		firstErr = b.Translate(delta)
	})

	delta.SetWeak(wasWeak)
	delta.Release()
	return firstErr
}

// Rotate turns every body in the subtree about centre by angle
// radians. Same weak-argument and partial-application behavior as
// Translate.
func (c *Compound) Rotate(centre *geom.Vec, angle float64) error {
	if err := geom.Check(centre); err != nil {
		return err
	}
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return ErrBadAngle
	}
	wasWeak := centre.Weak()
	centre.SetWeak(false)

	var firstErr error
	c.visitBodies(func(b *Body) {
		if firstErr != nil {
			return
		}
		firstErr = b.Rotate(centre, angle)
	})

	centre.SetWeak(wasWeak)
	centre.Release()
	return firstErr
}

func (c *Compound) String() string { return fmt.Sprintf("Compound#%d", c.id) }
