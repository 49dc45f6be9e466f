package storage

import (
	"encoding/json"
	"io"
	"math"
	"os"

	"github.com/san-kum/fwdiff/internal/sweep"
)

type ExportData struct {
	RunMetadata
	Points []ExportPoint `json:"points"`
}

type ExportPoint struct {
	X     Float `json:"x"`
	Value Float `json:"value"`
	Grad  Float `json:"grad"`
}

// NewExportPoint converts a sweep point for JSON encoding.
func NewExportPoint(p sweep.Point) ExportPoint {
	return ExportPoint{X: Float(p.X), Value: Float(p.Value), Grad: Float(p.Grad)}
}

// Float encodes NaN and ±Inf as the strings "NaN", "+Inf" and "-Inf", which
// plain JSON numbers cannot represent.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"+Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}
	return json.Marshal(v)
}

// Export writes a run's metadata and points as indented JSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	points, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}

	data := ExportData{RunMetadata: *meta, Points: make([]ExportPoint, len(points))}
	for i, p := range points {
		data.Points[i] = NewExportPoint(p)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportFile is Export into a new file at path.
func (s *Store) ExportFile(path, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Export(f, runID); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportCSV copies the raw samples of a run to w.
func (s *Store) ExportCSV(w io.Writer, runID string) error {
	path, err := s.samplesPath(runID)
	if err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s.missing(runID)
		}
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}
