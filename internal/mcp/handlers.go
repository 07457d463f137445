package mcp

import (
	"fmt"

	"epicurve/internal/curve"
	"epicurve/internal/ingest"
	"epicurve/internal/report"

	"github.com/rs/zerolog/log"
)

// Jurisdiction is one entry of a folder listing.
type Jurisdiction struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Days int    `json:"days"`
}

// JurisdictionList is the result of list_jurisdictions.
type JurisdictionList struct {
	Folder        string         `json:"folder"`
	Source        string         `json:"source,omitempty"`
	Jurisdictions []Jurisdiction `json:"jurisdictions"`
}

// SliceSummary describes one slice with calendar dates.
type SliceSummary struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	PeakDate  string   `json:"peak_date,omitempty"`
	PeakValue *float64 `json:"peak_value,omitempty"`
}

// AnalysisResult is the result of analyze_jurisdiction.
type AnalysisResult struct {
	Key          string         `json:"key"`
	Name         string         `json:"name"`
	Days         int            `json:"days"`
	SmoothFactor float64        `json:"smooth_factor"`
	YMax         float64        `json:"y_max"`
	Slices       []SliceSummary `json:"slices"`
	Peaks        []string       `json:"peaks"`
}

func (s *Server) handleListJurisdictions(folder string) (JurisdictionList, error) {
	f, ds, err := s.dataset(folder)
	if err != nil {
		return JurisdictionList{}, err
	}

	res := JurisdictionList{Folder: f.Name, Source: f.Source, Jurisdictions: make([]Jurisdiction, 0, ds.Len())}
	for _, key := range ds.Keys() {
		rows, _ := ds.Rows(key)
		res.Jurisdictions = append(res.Jurisdictions, Jurisdiction{Key: key, Name: ingest.DisplayName(key), Days: len(rows)})
	}
	return res, nil
}

func (s *Server) handleAnalyzeJurisdiction(folder, key string) (AnalysisResult, error) {
	_, ds, err := s.dataset(folder)
	if err != nil {
		return AnalysisResult{}, err
	}

	key = ingest.Key(key)
	rows, ok := ds.Rows(key)
	if !ok {
		return AnalysisResult{}, fmt.Errorf("no jurisdiction %q in folder %s", key, folder)
	}

	a, err := curve.Analyze(key, rows, s.analysis.SmoothFactorFor(key), s.analysis.YOverrides())
	if err != nil {
		return AnalysisResult{}, err
	}
	log.Debug().Str("folder", folder).Str("key", key).Int("slices", len(a.Slices)).Msg("Analyzed jurisdiction")

	return newAnalysisResult(a), nil
}

func newAnalysisResult(a curve.Analysis) AnalysisResult {
	name := ingest.DisplayName(a.Key)
	res := AnalysisResult{
		Key:          a.Key,
		Name:         name,
		Days:         a.Series.Len(),
		SmoothFactor: a.SmoothFactor,
		YMax:         a.YMax,
		Slices:       make([]SliceSummary, 0, len(a.Slices)),
		Peaks:        []string{},
	}
	for _, sl := range a.Slices {
		sum := SliceSummary{
			Start: report.FormatDate(a.Series.Dates[sl.Start]),
			End:   report.FormatDate(a.Series.Dates[sl.End]),
		}
		if sl.Peak != nil {
			sum.PeakDate = report.FormatDate(sl.Peak.Date)
			value := sl.Peak.Value
			sum.PeakValue = &value
			res.Peaks = append(res.Peaks, report.FormatRecord(name, *sl.Peak))
		}
		res.Slices = append(res.Slices, sum)
	}
	return res
}
