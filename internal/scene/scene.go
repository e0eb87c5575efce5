package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/planarphys/planar/internal/geom"
	"github.com/planarphys/planar/internal/phys"
)

// Scene is a declarative world description. Bodies and constraints
// are declared flat under unique names; the compound tree claims them
// by name. Anything unclaimed goes directly into the space as a root.
type Scene struct {
	Name        string           `yaml:"name"`
	Gravity     Vec              `yaml:"gravity"`
	Bodies      []BodySpec       `yaml:"bodies"`
	Constraints []ConstraintSpec `yaml:"constraints"`
	Compounds   []CompoundSpec   `yaml:"compounds"`
}

type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) vec2() geom.Vec2 { return geom.V(v.X, v.Y) }

type BodySpec struct {
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type"` // dynamic | static | kinematic
	Pos    Vec         `yaml:"pos"`
	Vel    Vec         `yaml:"vel"`
	Mass   float64     `yaml:"mass"`
	Shapes []ShapeSpec `yaml:"shapes"`
}

type ShapeSpec struct {
	Kind   string  `yaml:"kind"` // circle | box
	Radius float64 `yaml:"radius"`
	W      float64 `yaml:"w"`
	H      float64 `yaml:"h"`
	Offset Vec     `yaml:"offset"`
}

type ConstraintSpec struct {
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"` // distance | pivot
	A      string  `yaml:"a"`
	B      string  `yaml:"b"`
	Dist   float64 `yaml:"dist"`
	Anchor Vec     `yaml:"anchor"`
}

type CompoundSpec struct {
	Name        string         `yaml:"name"`
	Bodies      []string       `yaml:"bodies"`
	Constraints []string       `yaml:"constraints"`
	Children    []CompoundSpec `yaml:"children"`
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := &Scene{}
	if err := yaml.Unmarshal(data, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func Save(path string, sc *Scene) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// World is a built scene: the populated space plus name lookups for
// the entities, for tracking and display.
type World struct {
	Space       *phys.Space
	Bodies      map[string]*phys.Body
	Constraints map[string]phys.Constraint
	Compounds   map[string]*phys.Compound
}

// Build instantiates the scene into a fresh space.
func (sc *Scene) Build() (*World, error) {
	w := &World{
		Space:       phys.NewSpace(sc.Gravity.vec2()),
		Bodies:      make(map[string]*phys.Body),
		Constraints: make(map[string]phys.Constraint),
		Compounds:   make(map[string]*phys.Compound),
	}

	for _, bs := range sc.Bodies {
		if bs.Name == "" {
			return nil, fmt.Errorf("scene: body without a name")
		}
		if _, dup := w.Bodies[bs.Name]; dup {
			return nil, fmt.Errorf("scene: duplicate body name %q", bs.Name)
		}
		b, err := buildBody(bs)
		if err != nil {
			return nil, err
		}
		w.Bodies[bs.Name] = b
	}

	for _, cs := range sc.Constraints {
		if cs.Name == "" {
			return nil, fmt.Errorf("scene: constraint without a name")
		}
		if _, dup := w.Constraints[cs.Name]; dup {
			return nil, fmt.Errorf("scene: duplicate constraint name %q", cs.Name)
		}
		con, err := buildConstraint(cs, w.Bodies)
		if err != nil {
			return nil, err
		}
		w.Constraints[cs.Name] = con
	}

	claimedBodies := make(map[string]bool)
	claimedCons := make(map[string]bool)
	for _, cs := range sc.Compounds {
		c, err := buildCompound(cs, w, claimedBodies, claimedCons)
		if err != nil {
			return nil, err
		}
		if err := c.SetSpace(w.Space); err != nil {
			return nil, err
		}
	}

	// Unclaimed entities are roots of the space itself.
	for _, bs := range sc.Bodies {
		if !claimedBodies[bs.Name] {
			if err := w.Space.AddBody(w.Bodies[bs.Name]); err != nil {
				return nil, err
			}
		}
	}
	for _, cs := range sc.Constraints {
		if !claimedCons[cs.Name] {
			if err := w.Space.AddConstraint(w.Constraints[cs.Name]); err != nil {
				return nil, err
			}
		}
	}

	w.Space.Drain()
	return w, nil
}

func buildBody(bs BodySpec) (*phys.Body, error) {
	var bt phys.BodyType
	switch bs.Type {
	case "", "dynamic":
		bt = phys.Dynamic
	case "static":
		bt = phys.Static
	case "kinematic":
		bt = phys.Kinematic
	default:
		return nil, fmt.Errorf("scene: body %q: unknown type %q", bs.Name, bs.Type)
	}

	b := phys.NewBody(bt, bs.Pos.vec2())
	b.SetVelocity(bs.Vel.vec2())
	if bs.Mass != 0 {
		if err := b.SetMass(bs.Mass); err != nil {
			return nil, fmt.Errorf("scene: body %q: %w", bs.Name, err)
		}
	}
	for _, ss := range bs.Shapes {
		switch ss.Kind {
		case "circle":
			b.AddShape(phys.Circle{Radius: ss.Radius, Local: ss.Offset.vec2()})
		case "box":
			b.AddShape(phys.Box{W: ss.W, H: ss.H, Local: ss.Offset.vec2()})
		default:
			return nil, fmt.Errorf("scene: body %q: unknown shape kind %q", bs.Name, ss.Kind)
		}
	}
	return b, nil
}

func buildConstraint(cs ConstraintSpec, bodies map[string]*phys.Body) (phys.Constraint, error) {
	a, ok := bodies[cs.A]
	if cs.A != "" && !ok {
		return nil, fmt.Errorf("scene: constraint %q references unknown body %q", cs.Name, cs.A)
	}
	b, ok := bodies[cs.B]
	if cs.B != "" && !ok {
		return nil, fmt.Errorf("scene: constraint %q references unknown body %q", cs.Name, cs.B)
	}

	switch cs.Kind {
	case "distance":
		return phys.NewDistanceJoint(a, b, cs.Dist), nil
	case "pivot":
		return phys.NewPivotJoint(a, b, cs.Anchor.vec2()), nil
	default:
		return nil, fmt.Errorf("scene: constraint %q: unknown kind %q", cs.Name, cs.Kind)
	}
}

func buildCompound(cs CompoundSpec, w *World, claimedBodies, claimedCons map[string]bool) (*phys.Compound, error) {
	c := phys.NewCompound()
	if cs.Name != "" {
		if _, dup := w.Compounds[cs.Name]; dup {
			return nil, fmt.Errorf("scene: duplicate compound name %q", cs.Name)
		}
		w.Compounds[cs.Name] = c
	}

	for _, name := range cs.Bodies {
		b, ok := w.Bodies[name]
		if !ok {
			return nil, fmt.Errorf("scene: compound %q references unknown body %q", cs.Name, name)
		}
		if claimedBodies[name] {
			return nil, fmt.Errorf("scene: body %q claimed twice", name)
		}
		claimedBodies[name] = true
		if err := c.Bodies().Add(b); err != nil {
			return nil, err
		}
	}
	for _, name := range cs.Constraints {
		con, ok := w.Constraints[name]
		if !ok {
			return nil, fmt.Errorf("scene: compound %q references unknown constraint %q", cs.Name, name)
		}
		if claimedCons[name] {
			return nil, fmt.Errorf("scene: constraint %q claimed twice", name)
		}
		claimedCons[name] = true
		if err := c.Constraints().Add(con); err != nil {
			return nil, err
		}
	}
	for _, child := range cs.Children {
		cc, err := buildCompound(child, w, claimedBodies, claimedCons)
		if err != nil {
			return nil, err
		}
		if err := c.Children().Add(cc); err != nil {
			return nil, err
		}
	}
	return c, nil
}
