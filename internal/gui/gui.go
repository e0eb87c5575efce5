// Package gui renders a stepping scene in a raylib window.
package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/planarphys/planar/internal/phys"
	"github.com/planarphys/planar/internal/scene"
)

const (
	screenW = 1024
	screenH = 768
	scale   = 40.0 // pixels per world unit
)

// Run opens a window and steps the world until it is closed. Space
// pauses, Esc quits.
func Run(name string, world *scene.World, dt float64) {
	rl.InitWindow(screenW, screenH, "planar · "+name)
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	paused := false
	var stepErr error

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}

		if !paused && stepErr == nil {
			frame := float64(rl.GetFrameTime())
			for elapsed := 0.0; elapsed < frame; elapsed += dt {
				if err := world.Space.Step(dt); err != nil {
					stepErr = err
					break
				}
			}
			world.Space.Drain()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(10, 10, 14, 255))

		drawConstraint := func(con phys.Constraint) {
			slots := con.Bodies()
			if len(slots) == 2 {
				rl.DrawLineV(toScreen(slots[0]), toScreen(slots[1]), rl.Gray)
			}
		}
		for _, con := range world.Space.Constraints() {
			drawConstraint(con)
		}
		for _, c := range world.Space.Compounds() {
			_ = c.VisitConstraints(drawConstraint)
		}

		drawBody := func(b *phys.Body) {
			color := rl.White
			if b.Type() == phys.Static {
				color = rl.DarkGray
			}
			rl.DrawCircleV(toScreen(b), float32(bodyRadius(b)*scale), color)
		}
		for _, b := range world.Space.Bodies() {
			drawBody(b)
		}
		for _, c := range world.Space.Compounds() {
			_ = c.VisitBodies(drawBody)
		}

		if paused {
			rl.DrawText("PAUSED", 20, 20, 24, rl.Orange)
		}
		if stepErr != nil {
			rl.DrawText(stepErr.Error(), 20, 20, 20, rl.Red)
		}
		rl.DrawFPS(screenW-100, 20)
		rl.EndDrawing()
	}
}

func toScreen(b *phys.Body) rl.Vector2 {
	p := b.Position()
	return rl.NewVector2(
		float32(screenW/2+p.X*scale),
		float32(screenH/2+p.Y*scale),
	)
}

// bodyRadius derives a draw radius from total shape area; shapeless
// bodies get a small marker.
func bodyRadius(b *phys.Body) float64 {
	if b.ShapeCount() == 0 {
		return 0.15
	}
	var area float64
	b.EachShape(func(s phys.Shape) { area += s.Area() })
	r := math.Sqrt(area / math.Pi)
	if r < 0.1 {
		r = 0.1
	}
	return r
}
