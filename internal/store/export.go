package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/fractonaut/internal/scenario"
	"github.com/san-kum/fractonaut/internal/storage"
)

type ExportData struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Preset      string             `json:"preset"`
	Ticks       int                `json:"ticks"`
	Duration    float64            `json:"duration"`
	Coordinates string             `json:"coordinates"`
	Metrics     map[string]float64 `json:"metrics"`
	Times       []float64          `json:"times"`
	Centers     [][2]float64       `json:"centers"`
	Sizes       []float64          `json:"sizes"`
	Targets     [][3]float64       `json:"targets"`
	Velocities  [][2]float64       `json:"velocities"`
}

func NewExportData(meta *storage.RunMetadata, samples []scenario.Sample) ExportData {
	data := ExportData{
		ID:          meta.ID,
		Scenario:    meta.Scenario,
		Preset:      meta.Preset,
		Ticks:       len(samples),
		Duration:    meta.Duration,
		Coordinates: meta.Coordinates,
		Metrics:     meta.Metrics,
		Times:       make([]float64, len(samples)),
		Centers:     make([][2]float64, len(samples)),
		Sizes:       make([]float64, len(samples)),
		Targets:     make([][3]float64, len(samples)),
		Velocities:  make([][2]float64, len(samples)),
	}
	for i, s := range samples {
		data.Times[i] = s.Time
		data.Centers[i] = [2]float64{s.CenterX, s.CenterY}
		data.Sizes[i] = s.Size
		data.Targets[i] = [3]float64{s.TargetX, s.TargetY, s.TargetSize}
		data.Velocities[i] = [2]float64{s.VelocityX, s.VelocityY}
	}
	return data
}

func ExportJSON(path string, meta *storage.RunMetadata, samples []scenario.Sample) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return Encode(file, meta, samples)
}

func ExportJSONStdout(meta *storage.RunMetadata, samples []scenario.Sample) error {
	return Encode(os.Stdout, meta, samples)
}

func Encode(w io.Writer, meta *storage.RunMetadata, samples []scenario.Sample) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, samples))
}
