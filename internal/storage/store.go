// Package storage persists simulation runs as flat files: one
// directory per run holding metadata.json and trajectory.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/episim/internal/sim"
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

type RunMetadata struct {
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Duration   float64            `json:"duration"`
	Integrator string             `json:"integrator"`
	Controller string             `json:"controller"`
	Params     map[string]float64 `json:"params"`
	Labels     []string           `json:"labels"`
	Metrics    map[string]float64 `json:"metrics"`
}

func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Model, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "trajectory.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeTrajectory(csvFile, meta.Labels, result); err != nil {
		return "", err
	}

	return runID, nil
}

func writeTrajectory(out io.Writer, labels []string, result *sim.Result) error {
	w := csv.NewWriter(out)
	defer w.Flush()

	if len(result.States) == 0 {
		return nil
	}

	header := []string{"time"}
	for i := range result.States[0] {
		if i < len(labels) {
			header = append(header, labels[i])
		} else {
			header = append(header, fmt.Sprintf("x%d", i))
		}
	}
	hasControl := len(result.Controls) > 0 && len(result.Controls[0]) > 0
	if hasControl {
		header = append(header, "u")
	}

	if err := w.Write(header); err != nil {
		return err
	}

	for i := range result.States {
		row := []string{strconv.FormatFloat(result.Times[i], 'f', 6, 64)}
		for _, val := range result.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if hasControl {
			u := 0.0
			if i < len(result.Controls) && len(result.Controls[i]) > 0 {
				u = result.Controls[i][0]
			}
			row = append(row, strconv.FormatFloat(u, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
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
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadTrajectory reads back the stored state table. Control columns,
// when present, are not returned; use the metadata labels to size the
// state.
func (s *Store) LoadTrajectory(runID string) (states [][]float64, times []float64, err error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	stateDim := len(meta.Labels)

	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	times = make([]float64, 0, len(records)-1)
	states = make([][]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) < 1+stateDim {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		state := make([]float64, 0, stateDim)
		for _, field := range record[1 : 1+stateDim] {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				break
			}
			state = append(state, val)
		}
		if len(state) != stateDim {
			continue
		}

		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}

type exportData struct {
	RunMetadata
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

// ExportJSON writes the full run (metadata plus trajectory) as one
// JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := s.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(exportData{RunMetadata: *meta, Times: times, States: states})
}

// ExportCSV streams the stored trajectory file verbatim.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "trajectory.csv"))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(w, file)
	return err
}
