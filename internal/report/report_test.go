package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/subjscan/subjscan/internal/store"
)

func sampleAggs() []store.DailyAggregate {
	return []store.DailyAggregate{
		{Date: "2001-05-01", Count: 3, AvgSubjectLength: 20},
		{Date: "2001-05-02", Count: 900, AvgSubjectLength: 25},
		{Date: "2001-05-03", Count: 5, AvgSubjectLength: 30},
		{Date: "2001-06-01", Count: 8, AvgSubjectLength: 35},
	}
}

func dates(aggs []store.DailyAggregate) []string {
	var out []string
	for _, a := range aggs {
		out = append(out, a.Date)
	}
	return out
}

func TestFilter_NoOptionsKeepsAll(t *testing.T) {
	got := Filter(sampleAggs(), Options{})
	if len(got) != 4 {
		t.Fatalf("kept %d days, want 4", len(got))
	}
}

func TestFilter_DateWindowInclusive(t *testing.T) {
	got := Filter(sampleAggs(), Options{From: "2001-05-02", To: "2001-05-03"})
	want := []string{"2001-05-02", "2001-05-03"}
	if diff := cmp.Diff(want, dates(got)); diff != "" {
		t.Fatalf("window mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_MaxCountDropsBusyDays(t *testing.T) {
	got := Filter(sampleAggs(), Options{MaxCount: 100})
	want := []string{"2001-05-01", "2001-05-03", "2001-06-01"}
	if diff := cmp.Diff(want, dates(got)); diff != "" {
		t.Fatalf("cap mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_WritesPNG(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	if err := Render(sampleAggs(), out); err != nil {
		t.Fatalf("Render: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) < 8 || string(data[1:4]) != "PNG" {
		t.Fatalf("output is not a PNG (%d bytes)", len(data))
	}
}

func TestRender_SinglePointNoTrend(t *testing.T) {
	out := filepath.Join(t.TempDir(), "chart.png")
	one := []store.DailyAggregate{{Date: "2001-05-01", Count: 1, AvgSubjectLength: 10}}
	if err := Render(one, out); err != nil {
		t.Fatalf("Render with one point: %v", err)
	}
}

func TestRender_EmptyIsError(t *testing.T) {
	if err := Render(nil, filepath.Join(t.TempDir(), "chart.png")); err == nil {
		t.Fatal("expected error for empty aggregate")
	}
}

func TestRender_BadDateIsError(t *testing.T) {
	bad := []store.DailyAggregate{{Date: "not-a-date", Count: 1, AvgSubjectLength: 10}}
	if err := Render(bad, filepath.Join(t.TempDir(), "chart.png")); err == nil {
		t.Fatal("expected error for malformed date")
	}
}
