package export

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/planarphys/planar/internal/geom"
	"github.com/planarphys/planar/internal/sim"
)

var strokeColors = []string{"#00ff00", "#00c8ff", "#ff8c00", "#ff4c4c", "#c875ff", "#ffe14c"}

// TrajectorySVG renders every tracked trajectory into one SVG with
// shared bounds, one colored path per body.
func TrajectorySVG(result *sim.Result, width, height int) string {
	names := make([]string, 0, len(result.Tracks))
	for name, points := range result.Tracks {
		if len(points) >= 2 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)

	minX, maxX := result.Tracks[names[0]][0].X, result.Tracks[names[0]][0].X
	minY, maxY := result.Tracks[names[0]][0].Y, result.Tracks[names[0]][0].Y
	for _, name := range names {
		for _, p := range result.Tracks[name] {
			if p.X < minX {
				minX = p.X
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	project := func(p geom.Vec2) (float64, float64) {
		x := (p.X - minX) / rangeX * float64(width)
		// screen y grows downward, same as the world's
		y := (p.Y - minY) / rangeY * float64(height)
		return x, y
	}

	for i, name := range names {
		color := strokeColors[i%len(strokeColors)]
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, color))
		for j, p := range result.Tracks[name] {
			x, y := project(p)
			if j == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func SaveSVG(path string, result *sim.Result, width, height int) error {
	svg := TrajectorySVG(result, width, height)
	if svg == "" {
		return fmt.Errorf("export: no trajectory with at least 2 points to render")
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
