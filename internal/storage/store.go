package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/san-kum/fwdiff/internal/sweep"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var (
	// ErrRunNotFound indicates a run id with no metadata on disk.
	ErrRunNotFound = errors.New("storage: run not found")

	// ErrInvalidRunID indicates a run id that is not a plain directory name.
	ErrInvalidRunID = errors.New("storage: invalid run id")
)

type Store struct {
	baseDir string
	log     zerolog.Logger
}

func New(baseDir string, log zerolog.Logger) *Store {
	return &Store{baseDir: baseDir, log: log}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Function  string             `json:"function"`
	Script    string             `json:"script,omitempty"`
	Width     string             `json:"width"`
	From      float64            `json:"from"`
	To        float64            `json:"to"`
	Samples   int                `json:"samples"`
	Timestamp time.Time          `json:"timestamp"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a sweep under a new run id. ID, grid fields, Timestamp and
// Metrics of meta are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *sweep.Result) (string, error) {
	meta.ID = fmt.Sprintf("run_%s_%s", time.Now().Format("20060102"), uuid.NewString()[:8])
	meta.Timestamp = time.Now()
	meta.From = result.Grid.From
	meta.To = result.Grid.To
	meta.Samples = len(result.Points)
	meta.Metrics = result.Summary.Metrics()

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSamples(filepath.Join(runDir, samplesFile), result.Points); err != nil {
		return "", err
	}

	s.log.Debug().Str("run", meta.ID).Int("samples", meta.Samples).Msg("run saved")
	return meta.ID, nil
}

func writeJSON(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSamples(path string, points []sweep.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x", "value", "grad"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{formatFloat(p.X), formatFloat(p.Value), formatFloat(p.Grad)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns all readable runs, newest first.
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
			s.log.Debug().Err(err).Str("dir", entry.Name()).Msg("skipping unreadable run")
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, s.missing(runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: %s: %w", runID, err)
	}
	return &meta, nil
}

// runDir resolves runID inside the base directory. Ids must be a single path
// element.
func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || runID == "." || runID == ".." ||
		strings.ContainsAny(runID, `/\`) || filepath.Base(runID) != runID {
		return "", fmt.Errorf("%w: %q", ErrInvalidRunID, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) samplesPath(runID string) (string, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, samplesFile), nil
}

func (s *Store) missing(runID string) error {
	return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
}

// LoadSamples reads the points of a run. Malformed rows are skipped.
func (s *Store) LoadSamples(runID string) ([]sweep.Point, error) {
	path, err := s.samplesPath(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, s.missing(runID)
		}
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
		return []sweep.Point{}, nil
	}

	points := make([]sweep.Point, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) != 3 {
			continue
		}
		var vals [3]float64
		ok := true
		for j := range vals {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				ok = false
				break
			}
			vals[j] = v
		}
		if !ok {
			continue
		}
		points = append(points, sweep.Point{X: vals[0], Value: vals[1], Grad: vals[2]})
	}
	return points, nil
}
