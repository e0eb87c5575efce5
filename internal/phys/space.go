package phys

import (
	"fmt"

	"github.com/planarphys/planar/internal/geom"
)

type EventKind int

const (
	EventEnter EventKind = iota
	EventExit
)

func (k EventKind) String() string {
	if k == EventExit {
		return "exit"
	}
	return "enter"
}

// CallbackEvent records a body or constraint entering or leaving the
// space. Events accumulate until drained so listeners can be flushed
// once per step. Compound migration (breakApart, same-space reparent)
// never enqueues events: the entities stay live throughout.
type CallbackEvent struct {
	Kind   EventKind
	Target Interactor
}

// Space is the simulation world: it owns root bodies, constraints and
// compounds, and runs the stepping lifecycle that gates structural
// mutation.
type Space struct {
	gravity     geom.Vec2
	bodies      []*Body
	constraints []Constraint
	compounds   []*Compound

	ignored map[[2]int]bool
	pending []CallbackEvent
	midstep bool
	steps   int
}

func NewSpace(gravity geom.Vec2) *Space {
	return &Space{
		gravity: gravity,
		ignored: make(map[[2]int]bool),
	}
}

func (s *Space) Gravity() geom.Vec2     { return s.gravity }
func (s *Space) SetGravity(g geom.Vec2) { s.gravity = g }

// Midstep reports whether the space is currently executing a step.
// All structural mutation is rejected while it returns true.
func (s *Space) Midstep() bool { return s.midstep }

func (s *Space) StepCount() int { return s.steps }

func (s *Space) Bodies() []*Body {
	return append([]*Body(nil), s.bodies...)
}

func (s *Space) Constraints() []Constraint {
	return append([]Constraint(nil), s.constraints...)
}

func (s *Space) Compounds() []*Compound {
	return append([]*Compound(nil), s.compounds...)
}

// AddBody inserts a root body directly into the space.
func (s *Space) AddBody(b *Body) error {
	if b == nil {
		return ErrNilEntity
	}
	if s.midstep {
		return ErrMidstep
	}
	if b.compound != nil {
		return fmt.Errorf("%w: %v is inside %v", ErrOwned, b, b.compound)
	}
	if b.space == s {
		return fmt.Errorf("%w: %v", ErrDuplicate, b)
	}
	if b.space != nil {
		return fmt.Errorf("phys: %v already belongs to another space", b)
	}
	s.bodies = append(s.bodies, b)
	s.enterBody(b)
	return nil
}

func (s *Space) RemoveBody(b *Body) error {
	if b == nil {
		return ErrNilEntity
	}
	if s.midstep {
		return ErrMidstep
	}
	for i, have := range s.bodies {
		if have == b {
			s.bodies = append(s.bodies[:i], s.bodies[i+1:]...)
			s.exitBody(b)
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrNotOwned, b)
}

func (s *Space) AddConstraint(c Constraint) error {
	if c == nil {
		return ErrNilEntity
	}
	if s.midstep {
		return ErrMidstep
	}
	cb := c.base()
	if cb.compound != nil {
		return fmt.Errorf("%w: %v is inside %v", ErrOwned, c, cb.compound)
	}
	if cb.space == s {
		return fmt.Errorf("%w: %v", ErrDuplicate, c)
	}
	if cb.space != nil {
		return fmt.Errorf("phys: %v already belongs to another space", c)
	}
	s.constraints = append(s.constraints, c)
	s.enterConstraint(c)
	return nil
}

func (s *Space) RemoveConstraint(c Constraint) error {
	if c == nil {
		return ErrNilEntity
	}
	if s.midstep {
		return ErrMidstep
	}
	for i, have := range s.constraints {
		if have == c {
			s.constraints = append(s.constraints[:i], s.constraints[i+1:]...)
			s.exitConstraint(c)
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrNotOwned, c)
}

// AddCompound inserts a root compound; its whole subtree enters the
// space as a unit.
func (s *Space) AddCompound(c *Compound) error {
	if c == nil {
		return ErrNilEntity
	}
	if s.midstep {
		return ErrMidstep
	}
	if c.parent != nil {
		return fmt.Errorf("%w: %v is inside %v", ErrNotRoot, c, c.parent)
	}
	if c.space == s {
		return fmt.Errorf("%w: %v", ErrDuplicate, c)
	}
	if c.space != nil {
		return fmt.Errorf("phys: %v already belongs to another space", c)
	}
	s.compounds = append(s.compounds, c)
	c.space = s
	s.enterSubtree(c)
	return nil
}

// RemoveCompound detaches a root compound; its whole subtree leaves
// the space as a unit. Re-adding later is legal.
func (s *Space) RemoveCompound(c *Compound) error {
	if c == nil {
		return ErrNilEntity
	}
	if s.midstep {
		return ErrMidstep
	}
	for i, have := range s.compounds {
		if have == c {
			s.compounds = append(s.compounds[:i], s.compounds[i+1:]...)
			c.space = nil
			s.exitSubtree(c)
			return nil
		}
	}
	return fmt.Errorf("%w: %v", ErrNotOwned, c)
}

// IgnorePair suppresses interaction callbacks between two interactors.
// The table is keyed by identity and survives structural regrouping.
func (s *Space) IgnorePair(a, b Interactor) {
	s.ignored[pairKey(a, b)] = true
}

func (s *Space) UnignorePair(a, b Interactor) {
	delete(s.ignored, pairKey(a, b))
}

func (s *Space) Ignoring(a, b Interactor) bool {
	return s.ignored[pairKey(a, b)]
}

// Pending returns a snapshot of undrained callback events.
func (s *Space) Pending() []CallbackEvent {
	return append([]CallbackEvent(nil), s.pending...)
}

// Drain hands the accumulated events to the caller and clears the
// queue.
func (s *Space) Drain() []CallbackEvent {
	out := s.pending
	s.pending = nil
	return out
}

// Step advances the simulation by dt using symplectic Euler. The
// midstep flag is held for the duration, rejecting structural
// mutation from any reentrant call.
func (s *Space) Step(dt float64) error {
	if dt <= 0 {
		return fmt.Errorf("phys: step dt must be positive, got %v", dt)
	}
	if s.midstep {
		return ErrMidstep
	}
	s.midstep = true
	defer func() { s.midstep = false }()

	integrate := func(b *Body) {
		switch b.btype {
		case Dynamic:
			b.vel = b.vel.Add(s.gravity.Mul(dt))
			b.pos = b.pos.Add(b.vel.Mul(dt))
		case Kinematic:
			b.pos = b.pos.Add(b.vel.Mul(dt))
		}
	}
	for _, b := range s.bodies {
		integrate(b)
	}
	for _, c := range s.compounds {
		c.visitBodies(integrate)
	}
	s.steps++
	return nil
}

func (s *Space) event(kind EventKind, target Interactor) {
	s.pending = append(s.pending, CallbackEvent{Kind: kind, Target: target})
}

func (s *Space) enterBody(b *Body) {
	b.space = s
	s.event(EventEnter, b)
}

func (s *Space) exitBody(b *Body) {
	b.space = nil
	s.event(EventExit, b)
}

func (s *Space) enterConstraint(c Constraint) {
	c.base().space = s
	s.event(EventEnter, c)
}

func (s *Space) exitConstraint(c Constraint) {
	c.base().space = nil
	s.event(EventExit, c)
}

func (s *Space) enterSubtree(c *Compound) {
	c.visitBodies(func(b *Body) { s.enterBody(b) })
	c.visitConstraints(func(con Constraint) { s.enterConstraint(con) })
}

func (s *Space) exitSubtree(c *Compound) {
	c.visitBodies(func(b *Body) { s.exitBody(b) })
	c.visitConstraints(func(con Constraint) { s.exitConstraint(con) })
}
