package storage

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/trace"
)

func testResult() *trace.Result {
	return &trace.Result{
		Events: 2,
		Frames: []trace.Frame{
			{
				Seq:    0,
				Time:   0,
				Cursor: repulse.Vec2{X: 10, Y: 20},
				Energy: 1.125,
				Samples: []repulse.Sample{
					{ID: 0, Class: repulse.ClassHeading, Force: 1.5, State: repulse.State{OffsetX: 1.35, VelocityX: 1.35}},
					{ID: 1, Class: repulse.ClassLetter},
				},
			},
			{
				Seq:       1,
				Time:      0.016,
				Cursor:    repulse.Vec2{X: 10, Y: 70},
				Synthetic: true,
				Energy:    0.5,
			},
		},
		Metrics: map[string]float64{"energy": 0.8125},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("default", "demo", repulse.DefaultProfiles(), 2, testResult())
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
	if meta.Scene != "default" || meta.Trace != "demo" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Frames != 2 || meta.Events != 2 || meta.Elements != 2 {
		t.Errorf("unexpected counts %+v", meta)
	}
	if meta.Profiles["letter"].Radius != repulse.LetterProfile.Radius {
		t.Errorf("letter profile not stored: %+v", meta.Profiles)
	}
	if meta.Metrics["energy"] != 0.8125 {
		t.Errorf("expected energy 0.8125, got %f", meta.Metrics["energy"])
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}
	if len(frames) != 2 || !frames[1].Synthetic || frames[1].CursorY != 70 {
		t.Errorf("unexpected frames %+v", frames)
	}
	if e := Energies(frames); e[0] != 1.125 || e[1] != 0.5 {
		t.Errorf("unexpected energies %v", e)
	}

	offsets, err := st.LoadOffsets(runID)
	if err != nil {
		t.Fatalf("load offsets failed: %v", err)
	}
	if len(offsets) != 2 {
		t.Fatalf("expected 2 offset rows, got %d", len(offsets))
	}
	if offsets[0].Class != "heading" || offsets[0].State.OffsetX != 1.35 || offsets[0].Force != 1.5 {
		t.Errorf("unexpected offset row %+v", offsets[0])
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

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	first, err := st.Save("default", "demo", repulse.DefaultProfiles(), 2, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save("default", "demo", repulse.DefaultProfiles(), 2, testResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("run ids collide: %s", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("", "", repulse.DefaultProfiles(), 0, &trace.Result{Metrics: map[string]float64{}})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "frames.csv", "offsets.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}

	frames, err := st.LoadFrames(runID)
	if err != nil || len(frames) != 0 {
		t.Errorf("expected empty frames, got %v (%v)", frames, err)
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	runID, err := st.Save("default", "demo", repulse.DefaultProfiles(), 2, testResult())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Run.ID != runID || len(data.Frames) != 2 {
		t.Errorf("unexpected export %+v", data)
	}
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	result := testResult()
	result.Metrics["energy"] = math.NaN()
	if _, err := st.Save("default", "demo", repulse.DefaultProfiles(), 2, result); err == nil {
		t.Fatal("expected metadata encoding to fail")
	}

	runs, err := st.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 0 {
		t.Errorf("failed save left %d runs", len(runs))
	}
	entries, err := os.ReadDir(st.baseDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save left %d directories", len(entries))
	}
}
