package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/cwbudde/algo-bandratio/internal/report"
)

func openTemp(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "results.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestSaveAndResults(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	t0 := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	recs := []report.Record{
		{Object: "2002tx300", Ratio: 0.0898, FullArea: 0.012, FeatureArea: 0.0011, FeatureStart: 1.626,
			FullSamples: 120, FeatureSamples: 25, MaxDepth: 0.2, ComputedAt: t0},
		report.Failed("1996to66", errors.New("bandratio: 1996to66: window: empty"), t0.Add(time.Second)),
	}

	for _, r := range recs {
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Results(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}

	if got[0] != recs[0] {
		t.Errorf("row 0 = %+v\nwant %+v", got[0], recs[0])
	}

	if got[1].Object != "1996to66" || got[1].OK() || !got[1].ComputedAt.Equal(recs[1].ComputedAt) {
		t.Errorf("row 1 = %+v", got[1])
	}
}

func TestResultsFor(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	t0 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	for i, obj := range []string{"a", "b", "a"} {
		if err := s.Save(ctx, report.Record{Object: obj, Ratio: float64(i), ComputedAt: t0.Add(time.Duration(i) * time.Minute)}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.ResultsFor(ctx, "a")
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 || got[0].Ratio != 0 || got[1].Ratio != 2 {
		t.Fatalf("ResultsFor(a) = %+v", got)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.sqlite")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save(ctx, report.Record{Object: "x", ComputedAt: time.Unix(0, 0)}); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	got, err := s.Results(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 1 || got[0].Object != "x" {
		t.Fatalf("Results = %+v", got)
	}
}
