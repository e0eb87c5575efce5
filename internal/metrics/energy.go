package metrics

import (
	"github.com/planarphys/planar/internal/phys"
)

func eachBody(s *phys.Space, fn func(*phys.Body)) {
	for _, b := range s.Bodies() {
		fn(b)
	}
	for _, c := range s.Compounds() {
		_ = c.VisitBodies(fn)
	}
}

// KineticEnergy averages the total kinetic energy of all live bodies
// over the run.
type KineticEnergy struct {
	name    string
	sum     float64
	latest  float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(s *phys.Space, t float64) {
	var total float64
	eachBody(s, func(b *phys.Body) {
		total += 0.5 * b.Mass() * b.Velocity().LengthSq()
	})
	e.latest = total
	e.sum += total
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

// Latest returns the most recent sample, for live plotting.
func (e *KineticEnergy) Latest() float64 { return e.latest }

func (e *KineticEnergy) Reset() {
	e.sum = 0
	e.latest = 0
	e.samples = 0
}
