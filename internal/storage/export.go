package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/shoal/internal/sim"
)

type ExportData struct {
	RunInfo
	FramesTaken int                  `json:"frames_taken"`
	Times       []float64            `json:"times"`
	Series      map[string][]float64 `json:"series"`
	Metrics     map[string]float64   `json:"metrics"`
}

func newExportData(info RunInfo, result *sim.Result) ExportData {
	return ExportData{
		RunInfo:     info,
		FramesTaken: result.FramesTaken,
		Times:       result.Times,
		Series:      result.Series,
		Metrics:     result.Metrics,
	}
}

func encodeExport(w io.Writer, data ExportData) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportJSON(path string, info RunInfo, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return encodeExport(file, newExportData(info, result))
}

func ExportJSONStdout(info RunInfo, result *sim.Result) error {
	return encodeExport(os.Stdout, newExportData(info, result))
}

// WriteJSON streams a run previously saved in the store.
func (s *Store) WriteJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	times, series, err := s.LoadSeries(runID)
	if err != nil {
		return err
	}
	return encodeExport(w, ExportData{
		RunInfo:     meta.RunInfo,
		FramesTaken: meta.FramesTaken,
		Times:       times,
		Series:      series,
		Metrics:     meta.Metrics,
	})
}
