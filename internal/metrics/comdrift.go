package metrics

import (
	"errors"

	"github.com/planarphys/planar/internal/geom"
	"github.com/planarphys/planar/internal/phys"
)

// COMDrift tracks how far a compound's centre of mass wanders from
// where it started. Compounds with no shaped body report zero.
type COMDrift struct {
	name     string
	compound *phys.Compound
	initial  geom.Vec2
	max      float64
	samples  int
}

func NewCOMDrift(c *phys.Compound) *COMDrift {
	return &COMDrift{name: "com_drift", compound: c}
}

// NewNamedCOMDrift labels the metric, for runs tracking several
// compounds at once.
func NewNamedCOMDrift(name string, c *phys.Compound) *COMDrift {
	return &COMDrift{name: name, compound: c}
}

func (d *COMDrift) Name() string { return d.name }

func (d *COMDrift) Observe(s *phys.Space, t float64) {
	com, err := d.compound.COM(true)
	if errors.Is(err, phys.ErrNoMass) {
		return
	}
	if err != nil {
		return
	}
	p := com.Vec2
	com.Release()

	if d.samples == 0 {
		d.initial = p
	}
	d.samples++
	if drift := p.Sub(d.initial).Length(); drift > d.max {
		d.max = drift
	}
}

func (d *COMDrift) Value() float64 { return d.max }

func (d *COMDrift) Reset() {
	d.initial = geom.Vec2{}
	d.max = 0
	d.samples = 0
}
