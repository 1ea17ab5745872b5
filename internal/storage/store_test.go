package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fractonaut/internal/scenario"
)

func testTrace() *scenario.Trace {
	return &scenario.Trace{
		Scenario: "deep zoom",
		Samples: []scenario.Sample{
			{Tick: 1, Time: 1.0 / 60, CenterX: -0.743643887037151, CenterY: 0.131825904205330, Size: 3, TargetSize: 2.5, MaxIterations: 500, Dragging: true},
			{Tick: 2, Time: 2.0 / 60, CenterX: -0.743643887037151, CenterY: 0.131825904205330, Size: 2.96, TargetSize: 2.5, VelocityX: 1e-3, MaxIterations: 500},
		},
		Coordinates: "X: -0.74364388703715101\nY: 0.13182590420533\nZoom: 2.96",
		Dropped:     1,
		Metrics:     map[string]float64{"settle_time": 1.5},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("smooth", testTrace())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Scenario != "deep zoom" || meta.Preset != "smooth" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Ticks != 2 || meta.Dropped != 1 {
		t.Errorf("ticks=%d dropped=%d", meta.Ticks, meta.Dropped)
	}
	if meta.Metrics["settle_time"] != 1.5 {
		t.Errorf("expected settle_time 1.5, got %f", meta.Metrics["settle_time"])
	}

	samples, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	want := testTrace().Samples
	if len(samples) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(samples))
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Errorf("sample %d = %+v, want %+v", i, samples[i], want[i])
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save("classic", testTrace()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	os.MkdirAll(filepath.Join(tmpDir, "not-a-run"), 0755)

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save("", &scenario.Trace{})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if filepath.Dir(filepath.Join(tmpDir, runID)) != tmpDir {
		t.Errorf("run id %q escapes the store", runID)
	}

	for _, name := range []string{"metadata.json", "trace.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	samples, err := st.LoadTrace(runID)
	if err != nil || len(samples) != 0 {
		t.Errorf("empty trace: %v %v", samples, err)
	}
}

func TestLoadTraceSkipsBadRows(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	runID, _ := st.Save("", testTrace())

	path := filepath.Join(tmpDir, runID, "trace.csv")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString("3,x,0,0,1,0,0,1,0,0,500,false\n4,short\n")
	f.Close()

	samples, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 2 {
		t.Errorf("expected bad rows skipped, got %d samples", len(samples))
	}
}

func TestRunName(t *testing.T) {
	tests := map[string]string{
		"":            "run",
		"deep zoom":   "deep_zoom",
		"../escape":   "___escape",
		"seahorse-v2": "seahorse-v2",
	}
	for in, want := range tests {
		if got := runName(in); got != want {
			t.Errorf("runName(%q) = %q, want %q", in, got, want)
		}
	}
}
