package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/fractonaut/internal/scenario"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

var traceHeader = []string{
	"tick", "time",
	"center_x", "center_y", "size",
	"target_x", "target_y", "target_size",
	"velocity_x", "velocity_y",
	"max_iterations", "dragging",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Preset      string             `json:"preset"`
	Timestamp   time.Time          `json:"timestamp"`
	Ticks       int                `json:"ticks"`
	Duration    float64            `json:"duration"`
	Dropped     int                `json:"dropped"`
	Coordinates string             `json:"coordinates"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes trace under a fresh run directory and returns the run id.
func (s *Store) Save(preset string, trace *scenario.Trace) (string, error) {
	name := runName(trace.Scenario)
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Scenario:    trace.Scenario,
		Preset:      preset,
		Timestamp:   now,
		Ticks:       len(trace.Samples),
		Dropped:     trace.Dropped,
		Coordinates: trace.Coordinates,
		Metrics:     trace.Metrics,
	}
	if n := len(trace.Samples); n > 0 {
		meta.Duration = trace.Samples[n-1].Time
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), trace.Samples); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrace(path string, samples []scenario.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(traceHeader); err != nil {
		return err
	}
	for _, sm := range samples {
		row := []string{
			strconv.Itoa(sm.Tick),
			ff(sm.Time),
			ff(sm.CenterX), ff(sm.CenterY), ff(sm.Size),
			ff(sm.TargetX), ff(sm.TargetY), ff(sm.TargetSize),
			ff(sm.VelocityX), ff(sm.VelocityY),
			strconv.Itoa(sm.MaxIterations),
			strconv.FormatBool(sm.Dragging),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Deep-zoom centers need every digit.
func ff(v float64) string { return strconv.FormatFloat(v, 'g', 17, 64) }

func runName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "run"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		}
		return '_'
	}, name)
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadTrace reads the samples of a stored run. Rows that fail to parse are
// skipped.
func (s *Store) LoadTrace(runID string) ([]scenario.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []scenario.Sample{}, nil
	}

	samples := make([]scenario.Sample, 0, len(records)-1)
	for _, rec := range records[1:] {
		sm, err := parseSample(rec)
		if err != nil {
			continue
		}
		samples = append(samples, sm)
	}
	return samples, nil
}

func parseSample(rec []string) (scenario.Sample, error) {
	if len(rec) != len(traceHeader) {
		return scenario.Sample{}, fmt.Errorf("want %d fields, got %d", len(traceHeader), len(rec))
	}
	var (
		sm   scenario.Sample
		errs []error
	)
	atoi := func(s string) int {
		v, err := strconv.Atoi(s)
		errs = append(errs, err)
		return v
	}
	atof := func(s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		errs = append(errs, err)
		return v
	}

	sm.Tick = atoi(rec[0])
	sm.Time = atof(rec[1])
	sm.CenterX, sm.CenterY, sm.Size = atof(rec[2]), atof(rec[3]), atof(rec[4])
	sm.TargetX, sm.TargetY, sm.TargetSize = atof(rec[5]), atof(rec[6]), atof(rec[7])
	sm.VelocityX, sm.VelocityY = atof(rec[8]), atof(rec[9])
	sm.MaxIterations = atoi(rec[10])
	dragging, err := strconv.ParseBool(rec[11])
	errs = append(errs, err)
	sm.Dragging = dragging

	for _, err := range errs {
		if err != nil {
			return scenario.Sample{}, err
		}
	}
	return sm, nil
}
