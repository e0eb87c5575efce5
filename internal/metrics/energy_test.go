package metrics

import (
	"math"
	"testing"

	"github.com/planarphys/planar/internal/geom"
	"github.com/planarphys/planar/internal/phys"
)

func TestKineticEnergy(t *testing.T) {
	s := phys.NewSpace(geom.V(0, 0))
	b := phys.NewBody(phys.Dynamic, geom.V(0, 0))
	_ = b.SetMass(2)
	b.SetVelocity(geom.V(3, 4)) // speed 5
	if err := s.AddBody(b); err != nil {
		t.Fatal(err)
	}

	e := NewKineticEnergy()
	e.Observe(s, 0)

	want := 0.5 * 2 * 25
	if math.Abs(e.Value()-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, e.Value())
	}
	if e.Latest() != e.Value() {
		t.Errorf("single sample: latest %v should equal value %v", e.Latest(), e.Value())
	}

	e.Reset()
	if e.Value() != 0 {
		t.Error("reset should zero the metric")
	}
}

func TestKineticEnergySeesCompoundBodies(t *testing.T) {
	s := phys.NewSpace(geom.V(0, 0))
	c := phys.NewCompound()
	b := phys.NewBody(phys.Dynamic, geom.V(0, 0))
	b.SetVelocity(geom.V(1, 0))
	if err := c.Bodies().Add(b); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSpace(s); err != nil {
		t.Fatal(err)
	}

	e := NewKineticEnergy()
	e.Observe(s, 0)
	if e.Value() == 0 {
		t.Error("bodies inside compounds should contribute")
	}
}

func TestMomentum(t *testing.T) {
	s := phys.NewSpace(geom.V(0, 0))
	a := phys.NewBody(phys.Dynamic, geom.V(0, 0))
	b := phys.NewBody(phys.Dynamic, geom.V(1, 0))
	a.SetVelocity(geom.V(2, 0))
	b.SetVelocity(geom.V(-2, 0))
	if err := s.AddBody(a); err != nil {
		t.Fatal(err)
	}
	if err := s.AddBody(b); err != nil {
		t.Fatal(err)
	}

	m := NewMomentum()
	m.Observe(s, 0)
	if m.Value() != 0 {
		t.Errorf("opposing momenta should cancel, got %v", m.Value())
	}

	b.SetVelocity(geom.V(0, 0))
	m.Observe(s, 1)
	if math.Abs(m.Value()-2) > 1e-12 {
		t.Errorf("expected peak 2, got %v", m.Value())
	}
}

func TestCOMDrift(t *testing.T) {
	s := phys.NewSpace(geom.V(0, 0))
	c := phys.NewCompound()
	b := phys.NewBody(phys.Dynamic, geom.V(0, 0))
	b.AddShape(phys.Circle{Radius: 1})
	if err := c.Bodies().Add(b); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSpace(s); err != nil {
		t.Fatal(err)
	}

	d := NewCOMDrift(c)
	d.Observe(s, 0)
	b.SetPosition(geom.V(3, 4))
	d.Observe(s, 1)

	if math.Abs(d.Value()-5) > 1e-12 {
		t.Errorf("expected drift 5, got %v", d.Value())
	}
}

func TestCOMDriftShapeless(t *testing.T) {
	s := phys.NewSpace(geom.V(0, 0))
	c := phys.NewCompound()
	if err := c.Bodies().Add(phys.NewBody(phys.Dynamic, geom.V(0, 0))); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSpace(s); err != nil {
		t.Fatal(err)
	}

	d := NewCOMDrift(c)
	d.Observe(s, 0)
	if d.Value() != 0 {
		t.Errorf("shapeless compound should report zero drift, got %v", d.Value())
	}
}
