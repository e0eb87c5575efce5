// Package export writes simulation results to CSV, JSON and SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/planarphys/planar/internal/sim"
)

// WriteCSV emits one row per sample: time followed by x,y columns for
// each tracked body in name order.
func WriteCSV(w io.Writer, result *sim.Result) error {
	names := make([]string, 0, len(result.Tracks))
	for name := range result.Tracks {
		names = append(names, name)
	}
	sort.Strings(names)

	cw := csv.NewWriter(w)
	header := []string{"t"}
	for _, name := range names {
		header = append(header, name+"_x", name+"_y")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{fmt.Sprintf("%.6f", t)}
		for _, name := range names {
			p := result.Tracks[name][i]
			row = append(row, fmt.Sprintf("%.6f", p.X), fmt.Sprintf("%.6f", p.Y))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Data is the flat JSON export shape.
type Data struct {
	Scene   string                  `json:"scene"`
	Dt      float64                 `json:"dt"`
	Steps   int                     `json:"steps"`
	Events  int                     `json:"events"`
	Times   []float64               `json:"times"`
	Tracks  map[string][][2]float64 `json:"tracks"`
	Metrics map[string]float64      `json:"metrics"`
}

// WriteJSON emits the full run result as indented JSON.
func WriteJSON(w io.Writer, sceneName string, dt float64, result *sim.Result) error {
	data := Data{
		Scene:   sceneName,
		Dt:      dt,
		Steps:   result.Steps,
		Events:  result.Events,
		Times:   result.Times,
		Tracks:  make(map[string][][2]float64, len(result.Tracks)),
		Metrics: result.Metrics,
	}
	for name, points := range result.Tracks {
		track := make([][2]float64, len(points))
		for i, p := range points {
			track[i] = [2]float64{p.X, p.Y}
		}
		data.Tracks[name] = track
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// SaveCSV and SaveJSON are file-path conveniences for the CLI.
func SaveCSV(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteCSV(f, result)
}

func SaveJSON(path, sceneName string, dt float64, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteJSON(f, sceneName, dt, result)
}
