package sim

import (
	"context"
	"fmt"

	"github.com/planarphys/planar/internal/geom"
	"github.com/planarphys/planar/internal/phys"
)

// Metric observes the space after every step and reduces to a single
// number at the end of a run.
type Metric interface {
	Name() string
	Observe(s *phys.Space, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every step, for live rendering.
type Observer interface {
	OnStep(s *phys.Space, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	// SampleEvery records tracked positions every n-th step; 0 means
	// every step.
	SampleEvery int
}

type Result struct {
	Times   []float64
	Tracks  map[string][]geom.Vec2
	Metrics map[string]float64
	Steps   int
	Events  int
}

type track struct {
	name string
	body *phys.Body
}

// Runner steps a space for a fixed duration, feeding metrics and
// observers and sampling tracked body trajectories.
type Runner struct {
	space     *phys.Space
	metrics   []Metric
	observers []Observer
	tracked   []track
}

func New(space *phys.Space) *Runner {
	return &Runner{space: space}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Track samples b's position into the result under name.
func (r *Runner) Track(name string, b *phys.Body) {
	r.tracked = append(r.tracked, track{name: name, body: b})
}

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("sim: dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return nil, fmt.Errorf("sim: duration must be positive, got %f", cfg.Duration)
	}
	every := cfg.SampleEvery
	if every <= 0 {
		every = 1
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:   make([]float64, 0, steps/every+1),
		Tracks:  make(map[string][]geom.Vec2),
		Metrics: make(map[string]float64),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	sample := func(t float64) {
		result.Times = append(result.Times, t)
		for _, tr := range r.tracked {
			result.Tracks[tr.name] = append(result.Tracks[tr.name], tr.body.Position())
		}
	}

	t := 0.0
	sample(t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if err := r.space.Step(cfg.Dt); err != nil {
			return result, err
		}
		t += cfg.Dt
		result.Steps++
		result.Events += len(r.space.Drain())

		for _, m := range r.metrics {
			m.Observe(r.space, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(r.space, t)
		}

		if (i+1)%every == 0 {
			sample(t)
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}
