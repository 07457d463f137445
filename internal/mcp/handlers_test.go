package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"epicurve/internal/config"
	"epicurve/internal/curve"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	var sb strings.Builder
	sb.WriteString("date,state,fips,cases,deaths\n")
	day0 := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	total := 0.0
	for i := range 100 {
		total += 100 + 90*math.Sin(2*math.Pi*(float64(i)+0.25)/40)
		sb.WriteString(fmt.Sprintf("%s,New York,36,%.6f,0\n", day0.AddDate(0, 0, i).Format("2006-01-02"), total))
	}
	sb.WriteString("2020-03-01,Guam,66,1,0\n")
	if err := os.WriteFile(filepath.Join(dir, "us.csv"), []byte(sb.String()), 0644); err != nil {
		t.Fatal(err)
	}

	analysis := config.DefaultAnalysis()
	analysis.Folders = []config.Folder{{Name: "us", Dataset: "us.csv", DataKey: "cases", ValueType: "float", Source: "nytimes.com"}}
	return NewServer(&config.AppConfig{DataPath: dir}, analysis, "test")
}

func TestHandleListJurisdictions(t *testing.T) {
	s := newTestServer(t)

	res, err := s.handleListJurisdictions("us")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Jurisdictions) != 2 {
		t.Fatalf("expected 2 jurisdictions, got %d", len(res.Jurisdictions))
	}
	ny := res.Jurisdictions[0]
	if ny.Key != "new_york" || ny.Name != "New York" || ny.Days != 100 {
		t.Errorf("unexpected first jurisdiction: %+v", ny)
	}

	if _, err := s.handleListJurisdictions("mars"); err == nil {
		t.Error("expected error for unknown folder")
	}
}

func TestHandleAnalyzeJurisdiction(t *testing.T) {
	s := newTestServer(t)

	// display names are normalized to keys
	res, err := s.handleAnalyzeJurisdiction("us", "New York")
	if err != nil {
		t.Fatal(err)
	}
	if res.Key != "new_york" || res.Days != 100 {
		t.Errorf("unexpected result header: %+v", res)
	}
	if len(res.Slices) != 3 {
		t.Fatalf("expected 3 slices, got %d", len(res.Slices))
	}
	if res.Slices[0].Start != "03/01/20" || res.Slices[2].End != "06/08/20" {
		t.Errorf("slices do not cover the series: %+v", res.Slices)
	}
	if len(res.Peaks) != 3 || !strings.HasPrefix(res.Peaks[0], `"New York", `) {
		t.Errorf("unexpected peaks: %v", res.Peaks)
	}
	if res.YMax <= 0 {
		t.Errorf("expected positive y max, got %v", res.YMax)
	}
}

func TestHandleAnalyzeJurisdiction_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name, folder, key string
	}{
		{"UnknownFolder", "mars", "ohio"},
		{"UnknownKey", "us", "ohio"},
		{"TooShort", "us", "guam"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.handleAnalyzeJurisdiction(tt.folder, tt.key); err == nil {
				t.Errorf("expected error for %s/%s", tt.folder, tt.key)
			}
		})
	}
}

func TestDatasetIsCached(t *testing.T) {
	s := newTestServer(t)

	_, first, err := s.dataset("us")
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := s.dataset("us")
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("expected the dataset to be loaded once")
	}
}

func TestRegisterTools(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	server := sdk.NewServer(&sdk.Implementation{Name: "epicurve", Version: "test"}, nil)
	s.registerTools(server)

	clientTransport, serverTransport := sdk.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer serverSession.Close()

	client := sdk.NewClient(&sdk.Implementation{Name: "client", Version: "test"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer session.Close()

	tools, err := session.ListTools(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	slices.Sort(names)
	if !slices.Equal(names, []string{"analyze_jurisdiction", "list_jurisdictions"}) {
		t.Errorf("unexpected tools: %v", names)
	}

	res, err := session.CallTool(ctx, &sdk.CallToolParams{
		Name:      "analyze_jurisdiction",
		Arguments: map[string]any{"folder": "us", "key": "new_york"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool call failed: %+v", res.Content)
	}
}

func TestNewAnalysisResult_ZeroPeakIsKept(t *testing.T) {
	day0 := time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, 10)
	for i := range dates {
		dates[i] = day0.AddDate(0, 0, i)
	}
	a := curve.Analysis{
		Key:    "guam",
		Series: curve.DerivedSeries{Dates: dates},
		Slices: []curve.Slice{
			{Start: 0, End: 5, Peak: &curve.Peak{Index: 4, Date: dates[4], Value: 0}},
			{Start: 5, End: 9},
		},
		YMax: curve.DefaultYMax,
	}

	res := newAnalysisResult(a)
	if res.Slices[0].PeakValue == nil || *res.Slices[0].PeakValue != 0 {
		t.Fatalf("expected a zero peak value, got %v", res.Slices[0].PeakValue)
	}
	if res.Slices[1].PeakValue != nil {
		t.Errorf("expected no peak value for a slice without peak")
	}

	data, err := json.Marshal(res.Slices)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded[0]["peak_value"]; !ok {
		t.Errorf("zero peak value missing from %s", data)
	}
	if _, ok := decoded[1]["peak_value"]; ok {
		t.Errorf("unexpected peak value in %s", data)
	}
}
