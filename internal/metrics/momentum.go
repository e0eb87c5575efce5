package metrics

import (
	"github.com/planarphys/planar/internal/geom"
	"github.com/planarphys/planar/internal/phys"
)

// Momentum tracks the peak magnitude of total linear momentum.
type Momentum struct {
	name string
	peak float64
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(s *phys.Space, t float64) {
	var total geom.Vec2
	eachBody(s, func(b *phys.Body) {
		total = total.Add(b.Velocity().Mul(b.Mass()))
	})
	if mag := total.Length(); mag > m.peak {
		m.peak = mag
	}
}

func (m *Momentum) Value() float64 { return m.peak }

func (m *Momentum) Reset() { m.peak = 0 }
