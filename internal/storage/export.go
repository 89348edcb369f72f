package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/bezspring/internal/dynamo"
)

type ExportData struct {
	RunMetadata
	States [][]float64 `json:"states"`
}

// ExportJSON writes a run's metadata and states as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, err := s.LoadStates(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		States:      make([][]float64, len(states)),
	}
	for i, st := range states {
		data.States[i] = st
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// Column extracts one state component across a trajectory.
func Column(states []dynamo.State, idx int) []float64 {
	out := make([]float64, 0, len(states))
	for _, st := range states {
		if idx < len(st) {
			out = append(out, st[idx])
		}
	}
	return out
}
