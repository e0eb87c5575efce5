package scene

// Presets are built-in demo scenes, addressable by name from the CLI.
var Presets = map[string]*Scene{
	"drop": {
		Name:    "drop",
		Gravity: Vec{Y: 9.81},
		Bodies: []BodySpec{
			{Name: "ball1", Pos: Vec{X: -2, Y: 0}, Mass: 1, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.5}}},
			{Name: "ball2", Pos: Vec{X: 0, Y: -1}, Mass: 2, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.7}}},
			{Name: "ball3", Pos: Vec{X: 2, Y: 0}, Mass: 1, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.5}}},
			{Name: "ground", Type: "static", Pos: Vec{Y: 10}, Shapes: []ShapeSpec{{Kind: "box", W: 20, H: 1}}},
		},
	},
	"chain": {
		Name:    "chain",
		Gravity: Vec{Y: 9.81},
		Bodies: []BodySpec{
			{Name: "anchor", Type: "static", Pos: Vec{X: 0, Y: -4}, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.2}}},
			{Name: "link1", Pos: Vec{X: 1, Y: -4}, Mass: 1, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.3}}},
			{Name: "link2", Pos: Vec{X: 2, Y: -4}, Mass: 1, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.3}}},
			{Name: "link3", Pos: Vec{X: 3, Y: -4}, Mass: 1, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.3}}},
		},
		Constraints: []ConstraintSpec{
			{Name: "j1", Kind: "distance", A: "anchor", B: "link1", Dist: 1},
			{Name: "j2", Kind: "distance", A: "link1", B: "link2", Dist: 1},
			{Name: "j3", Kind: "distance", A: "link2", B: "link3", Dist: 1},
		},
		Compounds: []CompoundSpec{
			{
				Name:        "chain",
				Bodies:      []string{"anchor", "link1", "link2", "link3"},
				Constraints: []string{"j1", "j2", "j3"},
			},
		},
	},
	"cluster": {
		Name:    "cluster",
		Gravity: Vec{Y: 2},
		Bodies: []BodySpec{
			{Name: "hub", Pos: Vec{X: 0, Y: 0}, Mass: 4, Shapes: []ShapeSpec{{Kind: "circle", Radius: 1}}},
			{Name: "sat1", Pos: Vec{X: 3, Y: 0}, Vel: Vec{Y: 1}, Mass: 1, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.4}}},
			{Name: "sat2", Pos: Vec{X: -3, Y: 0}, Vel: Vec{Y: -1}, Mass: 1, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.4}}},
			{Name: "probe", Pos: Vec{X: 0, Y: 5}, Vel: Vec{X: 1}, Mass: 0.5, Shapes: []ShapeSpec{{Kind: "circle", Radius: 0.2}}},
		},
		Constraints: []ConstraintSpec{
			{Name: "tether1", Kind: "distance", A: "hub", B: "sat1", Dist: 3},
			{Name: "tether2", Kind: "distance", A: "hub", B: "sat2", Dist: 3},
		},
		Compounds: []CompoundSpec{
			{
				Name:        "station",
				Bodies:      []string{"hub"},
				Constraints: []string{"tether1", "tether2"},
				Children: []CompoundSpec{
					{Name: "wing-a", Bodies: []string{"sat1"}},
					{Name: "wing-b", Bodies: []string{"sat2"}},
				},
			},
		},
	},
}

// ListPresets returns the preset names in no particular order.
func ListPresets() []string {
	out := make([]string, 0, len(Presets))
	for name := range Presets {
		out = append(out, name)
	}
	return out
}
