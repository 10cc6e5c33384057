package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Run    RunMetadata   `json:"run"`
	Frames []FrameRecord `json:"frames"`
}

// ExportJSON writes a run's metadata and frame series as indented JSON.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{Run: *meta, Frames: frames})
}

// Energies extracts the energy column of a frame series.
func Energies(frames []FrameRecord) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = f.Energy
	}
	return out
}
