package phys

import "fmt"

// List views over a compound's owned collections. Mutation goes
// through these so the ownership invariants hold at every step:
// no duplicates, no nil entries, exactly one owner per entity, and
// no structural change while a space is mid-step. Moving an entity
// that already has an owner is remove-then-add, performed here.

// BodyList is the mutable view of a compound's direct bodies.
type BodyList struct {
	c *Compound
}

func (l BodyList) Len() int          { return len(l.c.bodies) }
func (l BodyList) At(i int) *Body    { return l.c.bodies[i] }
func (l BodyList) Slice() []*Body    { return append([]*Body(nil), l.c.bodies...) }

func (l BodyList) Has(b *Body) bool {
	for _, have := range l.c.bodies {
		if have == b {
			return true
		}
	}
	return false
}

func (l BodyList) Add(b *Body) error {
	if b == nil {
		return ErrNilEntity
	}
	if err := l.c.gate(); err != nil {
		return err
	}
	if b.compound == l.c {
		return fmt.Errorf("%w: %v in %v", ErrDuplicate, b, l.c)
	}
	if b.space != nil && b.space.midstep {
		return ErrMidstep
	}

	oldSpace := b.space
	if b.compound != nil {
		old := b.compound
		for i, have := range old.bodies {
			if have == b {
				old.bodies = append(old.bodies[:i], old.bodies[i+1:]...)
				break
			}
		}
	} else if b.space != nil {
		sp := b.space
		for i, have := range sp.bodies {
			if have == b {
				sp.bodies = append(sp.bodies[:i], sp.bodies[i+1:]...)
				break
			}
		}
	}

	l.c.bodies = append(l.c.bodies, b)
	b.compound = l.c

	if newSpace := l.c.Space(); newSpace != oldSpace {
		if oldSpace != nil {
			oldSpace.exitBody(b)
		}
		if newSpace != nil {
			newSpace.enterBody(b)
		}
	}
	return nil
}

func (l BodyList) Remove(b *Body) error {
	if b == nil {
		return ErrNilEntity
	}
	if err := l.c.gate(); err != nil {
		return err
	}
	for i, have := range l.c.bodies {
		if have == b {
			l.c.bodies = append(l.c.bodies[:i], l.c.bodies[i+1:]...)
			b.compound = nil
			if sp := l.c.Space(); sp != nil {
				sp.exitBody(b)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %v in %v", ErrNotOwned, b, l.c)
}

// ConstraintList is the mutable view of a compound's direct
// constraints.
type ConstraintList struct {
	c *Compound
}

func (l ConstraintList) Len() int             { return len(l.c.constraints) }
func (l ConstraintList) At(i int) Constraint  { return l.c.constraints[i] }
func (l ConstraintList) Slice() []Constraint  { return append([]Constraint(nil), l.c.constraints...) }

func (l ConstraintList) Has(con Constraint) bool {
	for _, have := range l.c.constraints {
		if have == con {
			return true
		}
	}
	return false
}

func (l ConstraintList) Add(con Constraint) error {
	if con == nil {
		return ErrNilEntity
	}
	if err := l.c.gate(); err != nil {
		return err
	}
	cb := con.base()
	if cb.compound == l.c {
		return fmt.Errorf("%w: %v in %v", ErrDuplicate, con, l.c)
	}
	if cb.space != nil && cb.space.midstep {
		return ErrMidstep
	}

	oldSpace := cb.space
	if cb.compound != nil {
		old := cb.compound
		for i, have := range old.constraints {
			if have == con {
				old.constraints = append(old.constraints[:i], old.constraints[i+1:]...)
				break
			}
		}
	} else if cb.space != nil {
		sp := cb.space
		for i, have := range sp.constraints {
			if have == con {
				sp.constraints = append(sp.constraints[:i], sp.constraints[i+1:]...)
				break
			}
		}
	}

	l.c.constraints = append(l.c.constraints, con)
	cb.compound = l.c

	if newSpace := l.c.Space(); newSpace != oldSpace {
		if oldSpace != nil {
			oldSpace.exitConstraint(con)
		}
		if newSpace != nil {
			newSpace.enterConstraint(con)
		}
	}
	return nil
}

func (l ConstraintList) Remove(con Constraint) error {
	if con == nil {
		return ErrNilEntity
	}
	if err := l.c.gate(); err != nil {
		return err
	}
	for i, have := range l.c.constraints {
		if have == con {
			l.c.constraints = append(l.c.constraints[:i], l.c.constraints[i+1:]...)
			con.base().compound = nil
			if sp := l.c.Space(); sp != nil {
				sp.exitConstraint(con)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %v in %v", ErrNotOwned, con, l.c)
}

// CompoundList is the mutable view of a compound's child compounds.
type CompoundList struct {
	c *Compound
}

func (l CompoundList) Len() int           { return len(l.c.children) }
func (l CompoundList) At(i int) *Compound { return l.c.children[i] }
func (l CompoundList) Slice() []*Compound { return append([]*Compound(nil), l.c.children...) }

func (l CompoundList) Has(child *Compound) bool {
	for _, have := range l.c.children {
		if have == child {
			return true
		}
	}
	return false
}

func (l CompoundList) Add(child *Compound) error {
	if child == nil {
		return ErrNilEntity
	}
	if err := l.c.gate(); err != nil {
		return err
	}
	if child.parent == l.c {
		return fmt.Errorf("%w: %v in %v", ErrDuplicate, child, l.c)
	}
	for a := l.c; a != nil; a = a.parent {
		if a == child {
			return fmt.Errorf("phys: adding %v under %v would create a cycle", child, l.c)
		}
	}
	if sp := child.Space(); sp != nil && sp.midstep {
		return ErrMidstep
	}

	oldSpace := child.Space()
	if child.parent != nil {
		old := child.parent
		for i, have := range old.children {
			if have == child {
				old.children = append(old.children[:i], old.children[i+1:]...)
				break
			}
		}
		child.parent = nil
	} else if child.space != nil {
		sp := child.space
		for i, have := range sp.compounds {
			if have == child {
				sp.compounds = append(sp.compounds[:i], sp.compounds[i+1:]...)
				break
			}
		}
		child.space = nil
	}

	l.c.children = append(l.c.children, child)
	child.parent = l.c

	if newSpace := l.c.Space(); newSpace != oldSpace {
		if oldSpace != nil {
			oldSpace.exitSubtree(child)
		}
		if newSpace != nil {
			newSpace.enterSubtree(child)
		}
	}
	return nil
}

func (l CompoundList) Remove(child *Compound) error {
	if child == nil {
		return ErrNilEntity
	}
	if err := l.c.gate(); err != nil {
		return err
	}
	for i, have := range l.c.children {
		if have == child {
			l.c.children = append(l.c.children[:i], l.c.children[i+1:]...)
			child.parent = nil
			if sp := l.c.Space(); sp != nil {
				sp.exitSubtree(child)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %v in %v", ErrNotOwned, child, l.c)
}
