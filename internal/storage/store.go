package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/bezspring/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
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

// RunInfo describes how a trace was produced.
type RunInfo struct {
	Method    string     `json:"method"`
	Stiffness float64    `json:"stiffness"`
	Damping   float64    `json:"damping"`
	Start     [2]float64 `json:"start"`
	Target    [2]float64 `json:"target"`
	Steps     int        `json:"steps"`
}

type RunMetadata struct {
	RunInfo
	ID         string             `json:"id"`
	Timestamp  time.Time          `json:"timestamp"`
	StepsTaken int                `json:"steps_taken"`
	Metrics    map[string]float64 `json:"metrics"`
	Error      string             `json:"error,omitempty"`
}

// Save writes metadata.json and states.csv for a run. runErr, if any, is
// recorded in the metadata; a diverged run is still worth keeping.
func (s *Store) Save(info RunInfo, result *dynamo.Result, runErr error) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Method, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		RunInfo:    info,
		ID:         runID,
		Timestamp:  now,
		StepsTaken: result.StepsTaken,
		Metrics:    result.Metrics,
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result.States); err != nil {
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

func writeStates(path string, states []dynamo.State) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "x", "y", "vx", "vy"}); err != nil {
		return err
	}
	for i, st := range states {
		row := []string{strconv.Itoa(i)}
		for _, val := range st {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, newest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadStates reads the recorded states of a run back in step order.
func (s *Store) LoadStates(runID string) ([]dynamo.State, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, statesFile))
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
		return []dynamo.State{}, nil
	}

	states := make([]dynamo.State, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 1+dynamo.StateDim {
			continue
		}
		st := make(dynamo.State, 0, dynamo.StateDim)
		for _, field := range record[1 : 1+dynamo.StateDim] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s: %w", runID, err)
			}
			st = append(st, val)
		}
		states = append(states, st)
	}
	return states, nil
}
