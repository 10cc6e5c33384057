package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/trace"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	offsetsFile  = "offsets.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type ProfileMetadata struct {
	Radius   float64 `json:"radius"`
	Strength float64 `json:"strength"`
	Spring   float64 `json:"spring"`
}

type RunMetadata struct {
	ID        string                     `json:"id"`
	Scene     string                     `json:"scene"`
	Trace     string                     `json:"trace"`
	Timestamp time.Time                  `json:"timestamp"`
	Events    int                        `json:"events"`
	Frames    int                        `json:"frames"`
	Elements  int                        `json:"elements"`
	Profiles  map[string]ProfileMetadata `json:"profiles"`
	Metrics   map[string]float64         `json:"metrics"`
}

func profileMetadata(p repulse.Profiles) map[string]ProfileMetadata {
	out := make(map[string]ProfileMetadata, 2)
	for _, c := range []repulse.Class{repulse.ClassHeading, repulse.ClassLetter} {
		pr := p.For(c)
		out[c.String()] = ProfileMetadata{Radius: pr.Radius, Strength: pr.Strength, Spring: pr.Spring}
	}
	return out
}

// Save writes a replay result under a fresh run directory and returns its ID.
func (s *Store) Save(sceneName, traceName string, profiles repulse.Profiles, elements int, result *trace.Result) (string, error) {
	runID, runDir, err := s.newRunDir(sceneName)
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     sceneName,
		Trace:     traceName,
		Timestamp: time.Now(),
		Events:    result.Events,
		Frames:    len(result.Frames),
		Elements:  elements,
		Profiles:  profileMetadata(profiles),
		Metrics:   result.Metrics,
	}

	if err := writeRun(runDir, meta, result.Frames); err != nil {
		// drop the partial run
		_ = os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir string, meta RunMetadata, frames []trace.Frame) error {
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), frames); err != nil {
		return err
	}
	return writeOffsets(filepath.Join(runDir, offsetsFile), frames)
}

func (s *Store) newRunDir(name string) (string, string, error) {
	if name == "" {
		name = "run"
	}
	base := fmt.Sprintf("%s_%d", name, time.Now().Unix())
	runID := base
	for i := 1; ; i++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !os.IsExist(err) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, i)
	}
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

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func writeCSV(path string, header []string, rows func(w *csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := rows(w); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

func writeFrames(path string, frames []trace.Frame) error {
	header := []string{"seq", "time", "cursor_x", "cursor_y", "synthetic", "energy"}
	return writeCSV(path, header, func(w *csv.Writer) error {
		for _, f := range frames {
			row := []string{
				strconv.Itoa(f.Seq),
				formatFloat(f.Time),
				formatFloat(f.Cursor.X),
				formatFloat(f.Cursor.Y),
				strconv.FormatBool(f.Synthetic),
				formatFloat(f.Energy),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeOffsets(path string, frames []trace.Frame) error {
	header := []string{"seq", "id", "class", "x", "y", "vx", "vy", "force"}
	return writeCSV(path, header, func(w *csv.Writer) error {
		for _, f := range frames {
			for _, s := range f.Samples {
				row := []string{
					strconv.Itoa(f.Seq),
					strconv.Itoa(s.ID),
					s.Class.String(),
					formatFloat(s.State.OffsetX),
					formatFloat(s.State.OffsetY),
					formatFloat(s.State.VelocityX),
					formatFloat(s.State.VelocityY),
					formatFloat(s.Force),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// List returns stored runs, newest first.
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

	slices.SortFunc(runs, func(a, b RunMetadata) int { return b.Timestamp.Compare(a.Timestamp) })
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

// FrameRecord is one row of frames.csv.
type FrameRecord struct {
	Seq       int     `json:"seq"`
	Time      float64 `json:"time"`
	CursorX   float64 `json:"cursor_x"`
	CursorY   float64 `json:"cursor_y"`
	Synthetic bool    `json:"synthetic"`
	Energy    float64 `json:"energy"`
}

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}

	frames := make([]FrameRecord, 0, len(records))
	for i, rec := range records {
		if len(rec) < 6 {
			return nil, fmt.Errorf("%s line %d: expected 6 fields, got %d", framesFile, i+2, len(rec))
		}
		seq, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		vals, err := parseFloats(rec[1], rec[2], rec[3], rec[5])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		synthetic, err := strconv.ParseBool(rec[4])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", framesFile, i+2, err)
		}
		frames = append(frames, FrameRecord{
			Seq:       seq,
			Time:      vals[0],
			CursorX:   vals[1],
			CursorY:   vals[2],
			Synthetic: synthetic,
			Energy:    vals[3],
		})
	}
	return frames, nil
}

// OffsetRecord is one row of offsets.csv.
type OffsetRecord struct {
	Seq   int
	ID    int
	Class string
	State repulse.State
	Force float64
}

func (s *Store) LoadOffsets(runID string) ([]OffsetRecord, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, offsetsFile))
	if err != nil {
		return nil, err
	}

	out := make([]OffsetRecord, 0, len(records))
	for i, rec := range records {
		if len(rec) < 8 {
			return nil, fmt.Errorf("%s line %d: expected 8 fields, got %d", offsetsFile, i+2, len(rec))
		}
		seq, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", offsetsFile, i+2, err)
		}
		id, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", offsetsFile, i+2, err)
		}
		vals, err := parseFloats(rec[3:8]...)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", offsetsFile, i+2, err)
		}
		out = append(out, OffsetRecord{
			Seq:   seq,
			ID:    id,
			Class: rec[2],
			State: repulse.State{OffsetX: vals[0], OffsetY: vals[1], VelocityX: vals[2], VelocityY: vals[3]},
			Force: vals[4],
		})
	}
	return out, nil
}

// readCSV returns the data rows of a CSV file, without the header.
func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
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
		return [][]string{}, nil
	}
	return records[1:], nil
}

func parseFloats(fields ...string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
