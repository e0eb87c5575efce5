// Package tui renders a stepping scene in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/planarphys/planar/internal/metrics"
	"github.com/planarphys/planar/internal/phys"
	"github.com/planarphys/planar/internal/scene"
)

const (
	width  = 72
	height = 22
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238"))
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

type tickMsg time.Time

type Model struct {
	world  *scene.World
	name   string
	dt     float64
	fps    int
	t      float64
	paused bool
	stepErr error

	energy *metrics.KineticEnergy
	canvas [][]rune
}

func NewModel(name string, world *scene.World, dt float64, fps int) *Model {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if fps <= 0 {
		fps = 30
	}
	return &Model{
		world:  world,
		name:   name,
		dt:     dt,
		fps:    fps,
		energy: metrics.NewKineticEnergy(),
		canvas: canvas,
	}
}

func (m *Model) Init() tea.Cmd { return m.tick() }

func (m *Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case tickMsg:
		if !m.paused && m.stepErr == nil {
			frame := 1.0 / float64(m.fps)
			for elapsed := 0.0; elapsed < frame; elapsed += m.dt {
				if err := m.world.Space.Step(m.dt); err != nil {
					m.stepErr = err
					break
				}
				m.t += m.dt
			}
			m.world.Space.Drain()
			m.energy.Observe(m.world.Space, m.t)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) View() string {
	m.clear()
	m.draw()

	var rows []string
	for _, row := range m.canvas {
		rows = append(rows, string(row))
	}

	status := fmt.Sprintf("t=%7.2fs  bodies=%d  energy=%8.3f  [space] pause  [q] quit",
		m.t, m.liveBodies(), m.energy.Latest())
	if m.paused {
		status = pausedStyle.Render("PAUSED  ") + statusStyle.Render(status)
	} else {
		status = statusStyle.Render(status)
	}
	if m.stepErr != nil {
		status = pausedStyle.Render(fmt.Sprintf("step error: %v", m.stepErr))
	}

	return titleStyle.Render("planar · "+m.name) + "\n" +
		frameStyle.Render(strings.Join(rows, "\n")) + "\n" +
		status + "\n"
}

func (m *Model) liveBodies() int {
	n := len(m.world.Space.Bodies())
	for _, c := range m.world.Space.Compounds() {
		_ = c.VisitBodies(func(*phys.Body) { n++ })
	}
	return n
}

func (m *Model) clear() {
	for y := range m.canvas {
		for x := range m.canvas[y] {
			m.canvas[y][x] = ' '
		}
	}
}

func (m *Model) draw() {
	minX, minY, maxX, maxY := m.bounds()
	project := func(b *phys.Body) (int, int) {
		px := int((b.Position().X - minX) / (maxX - minX) * float64(width-1))
		py := int((b.Position().Y - minY) / (maxY - minY) * float64(height-1))
		return px, py
	}

	drawConstraint := func(con phys.Constraint) {
		slots := con.Bodies()
		if len(slots) == 2 {
			x1, y1 := project(slots[0])
			x2, y2 := project(slots[1])
			m.line(x1, y1, x2, y2, '·')
		}
	}
	for _, con := range m.world.Space.Constraints() {
		drawConstraint(con)
	}
	for _, c := range m.world.Space.Compounds() {
		_ = c.VisitConstraints(drawConstraint)
	}

	drawBody := func(b *phys.Body) {
		glyph := '●'
		if b.Type() == phys.Static {
			glyph = '▦'
		}
		x, y := project(b)
		m.set(x, y, glyph)
	}
	for _, b := range m.world.Space.Bodies() {
		drawBody(b)
	}
	for _, c := range m.world.Space.Compounds() {
		_ = c.VisitBodies(drawBody)
	}
}

// bounds fits every live body with padding, never collapsing to a
// degenerate window.
func (m *Model) bounds() (minX, minY, maxX, maxY float64) {
	minX, minY = -1, -1
	maxX, maxY = 1, 1
	first := true
	visit := func(b *phys.Body) {
		p := b.Position()
		if first {
			minX, maxX = p.X, p.X
			minY, maxY = p.Y, p.Y
			first = false
			return
		}
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
	for _, b := range m.world.Space.Bodies() {
		visit(b)
	}
	for _, c := range m.world.Space.Compounds() {
		_ = c.VisitBodies(visit)
	}

	padX := (maxX - minX) * 0.15
	padY := (maxY - minY) * 0.15
	if padX < 1 {
		padX = 1
	}
	if padY < 1 {
		padY = 1
	}
	return minX - padX, minY - padY, maxX + padX, maxY + padY
}

func (m *Model) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		m.canvas[y][x] = c
	}
}

func (m *Model) line(x1, y1, x2, y2 int, c rune) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy
	for {
		m.set(x1, y1, c)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Run blocks until the viewer exits.
func Run(name string, world *scene.World, dt float64, fps int) error {
	_, err := tea.NewProgram(NewModel(name, world, dt, fps)).Run()
	return err
}
