package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-bandratio/internal/config"
	"github.com/cwbudde/algo-bandratio/internal/report"
	"github.com/cwbudde/algo-bandratio/internal/store"
	"github.com/cwbudde/algo-bandratio/internal/testutil"
	"go.uber.org/zap"
)

func clearEnv(t *testing.T) {
	t.Helper()

	for _, k := range []string{config.EnvMinMicron, config.EnvMaxMicron, config.EnvFeatureStart, config.EnvDataDir} {
		t.Setenv(k, "")
	}
}

// spectra writes an icy object and one without samples in the window.
func spectra(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	var icy strings.Builder
	for _, s := range testutil.IcyBody() {
		fmt.Fprintf(&icy, "%g\t%g\n", s.Wavelength, s.Reflectance)
	}

	files := map[string]string{
		"icy.txt":     icy.String(),
		"visible.txt": "# outside the band\n0.5 1.0\n0.6 1.1\n",
		"notes.md":    "not a spectrum\n",
	}

	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	return dir
}

func execute(t *testing.T, args ...string) (*app, string, error) {
	t.Helper()

	a := newApp()
	a.log = zap.NewNop().Sugar()

	cmd := a.rootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())

	return a, out.String(), err
}

func TestComputeLogsAndContinues(t *testing.T) {
	clearEnv(t)

	dir := spectra(t)
	reportPath := filepath.Join(t.TempDir(), "out", "ratios.yaml")
	dbPath := filepath.Join(t.TempDir(), "ratios.db")

	_, out, err := execute(t, "compute",
		filepath.Join(dir, "visible.txt"),
		filepath.Join(dir, "icy.txt"),
		"--report", reportPath,
		"--db", dbPath,
	)
	if err != nil {
		t.Fatalf("compute: %v\n%s", err, out)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("output has %d lines, want header and one row:\n%s", len(lines), out)
	}

	if !strings.HasPrefix(lines[0], "object") || !strings.HasPrefix(lines[1], "icy ") {
		t.Fatalf("unexpected table:\n%s", out)
	}

	rep, err := report.ReadYAML(reportPath)
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Results) != 2 {
		t.Fatalf("report has %d records, want 2", len(rep.Results))
	}

	if got := rep.Results[0]; got.Object != "visible" || got.Stage != "window" || got.OK() {
		t.Errorf("failed record = %+v", got)
	}

	if got := rep.Results[1]; got.Object != "icy" || !got.OK() || got.Ratio <= 0 || got.Ratio >= 1 {
		t.Errorf("icy record = %+v", got)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	recs, err := db.Results(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(recs) != 2 {
		t.Fatalf("store has %d records, want 2", len(recs))
	}
}

func TestComputeAllFailed(t *testing.T) {
	clearEnv(t)

	dir := spectra(t)

	_, _, err := execute(t, "compute", filepath.Join(dir, "visible.txt"), filepath.Join(dir, "missing.txt"))
	if !errors.Is(err, errNoResults) {
		t.Fatalf("err = %v, want errNoResults", err)
	}
}

func TestRunDataDir(t *testing.T) {
	clearEnv(t)

	dir := spectra(t)
	plotDir := filepath.Join(t.TempDir(), "plots")

	_, out, err := execute(t, "run", "--data-dir", dir, "--plot-dir", plotDir)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}

	if strings.Contains(out, "notes") {
		t.Errorf("non-spectrum file processed:\n%s", out)
	}

	if _, err := os.Stat(filepath.Join(plotDir, "icy.png")); err != nil {
		t.Fatalf("plot: %v", err)
	}

	if _, err := os.Stat(filepath.Join(plotDir, "visible.png")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("failed object was plotted: %v", err)
	}
}

func TestRunDataDirFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvDataDir, spectra(t))

	a, _, err := execute(t, "run")
	if err != nil {
		t.Fatal(err)
	}

	if a.cfg.DataDir == "" {
		t.Fatal("data dir not taken from environment")
	}
}

func TestRunRequiresDataDir(t *testing.T) {
	clearEnv(t)

	if _, _, err := execute(t, "run"); !errors.Is(err, errNoDataDir) {
		t.Fatalf("err = %v, want errNoDataDir", err)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	clearEnv(t)

	cfgPath := filepath.Join(t.TempDir(), "bandratio.yaml")
	body := "window:\n  min_micron: 1.45\nfeature_start_micron: 1.6\n"

	if err := os.WriteFile(cfgPath, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	dir := spectra(t)

	a, _, err := execute(t, "--config", cfgPath, "--feature-start", "1.62", "compute", filepath.Join(dir, "icy.txt"))
	if err != nil {
		t.Fatal(err)
	}

	if a.cfg.Window.MinMicron != 1.45 {
		t.Errorf("min micron = %v, want 1.45 from file", a.cfg.Window.MinMicron)
	}

	if a.cfg.FeatureStartMicron != 1.62 {
		t.Errorf("feature start = %v, want 1.62 from flag", a.cfg.FeatureStartMicron)
	}
}

func TestInvalidWindow(t *testing.T) {
	clearEnv(t)

	dir := spectra(t)

	if _, _, err := execute(t, "--min-micron", "1.7", "compute", filepath.Join(dir, "icy.txt")); err == nil {
		t.Fatal("expected configuration error")
	}
}

func TestHistory(t *testing.T) {
	clearEnv(t)

	dir := spectra(t)
	dbPath := filepath.Join(t.TempDir(), "ratios.db")

	if _, _, err := execute(t, "run", "--data-dir", dir, "--db", dbPath); err != nil {
		t.Fatal(err)
	}

	_, out, err := execute(t, "history", "--db", dbPath, "--object", "visible")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(out, "visible") || !strings.Contains(out, "window") || strings.Contains(out, "icy") {
		t.Fatalf("unexpected history:\n%s", out)
	}

	if _, _, err := execute(t, "history"); !errors.Is(err, errNoDatabase) {
		t.Fatalf("err = %v, want errNoDatabase", err)
	}
}
