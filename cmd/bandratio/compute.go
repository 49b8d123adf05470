package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-bandratio/internal/plotting"
	"github.com/cwbudde/algo-bandratio/internal/report"
	"github.com/cwbudde/algo-bandratio/internal/specfile"
	"github.com/cwbudde/algo-bandratio/internal/store"
	"github.com/cwbudde/algo-bandratio/measure/bandratio"
	"github.com/spf13/cobra"
)

var (
	errNoResults = errors.New("no object produced a band ratio")
	errNoDataDir = errors.New("no data directory (use --data-dir or BANDRATIO_DATA_DIR)")
)

func (a *app) computeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compute <file> [file ...]",
		Short: "Compute band ratios for the given spectrum files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.process(cmd.Context(), args, cmd.OutOrStdout())
		},
	}
	a.addOutputFlags(cmd)

	return cmd
}

func (a *app) runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Compute band ratios for every *.txt spectrum in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.DataDir == "" {
				return errNoDataDir
			}

			paths, err := specfile.List(a.cfg.DataDir)
			if err != nil {
				return err
			}

			a.log.Infow("processing data directory", "dir", a.cfg.DataDir, "files", len(paths))

			return a.process(cmd.Context(), paths, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&a.dataDir, "data-dir", "", "directory of spectrum files")
	a.addOutputFlags(cmd)

	return cmd
}

// process measures each file in order. Per-object failures are logged and
// recorded; I/O failures on outputs abort the run.
func (a *app) process(ctx context.Context, paths []string, out io.Writer) error {
	calc, err := bandratio.FromConfig(a.cfg.Calculator())
	if err != nil {
		return err
	}

	var db *store.Store
	if a.cfg.Database != "" {
		db, err = store.Open(a.cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
	}

	now := time.Now()
	rep := report.NewReport(calc.Config(), a.cfg.DataDir, now)

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "object\tratio\tfull_area\tfeature_area\tsamples"); err != nil {
		return err
	}

	succeeded := 0

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		rec, res, ok := a.measure(calc, path, now)
		if ok {
			succeeded++

			if _, err := fmt.Fprintf(tw, "%s\t%.4f\t%.5f\t%.5f\t%d\n",
				res.Object, res.Ratio, res.FullArea, res.FeatureArea, res.FullBand.Len()); err != nil {
				return err
			}

			if a.cfg.PlotDir != "" {
				plotPath := filepath.Join(a.cfg.PlotDir, res.Object+".png")
				if err := plotting.Save(plotPath, res); err != nil {
					return fmt.Errorf("%s: %w", res.Object, err)
				}

				a.log.Debugw("wrote plot", "object", res.Object, "path", plotPath)
			}
		}

		rep.Results = append(rep.Results, rec)

		if db != nil {
			if err := db.Save(ctx, rec); err != nil {
				return err
			}
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if a.cfg.Report != "" {
		if err := report.Write(a.cfg.Report, rep); err != nil {
			return err
		}

		a.log.Infow("wrote report", "path", a.cfg.Report, "objects", len(rep.Results))
	}

	failed := len(paths) - succeeded
	a.log.Infow("done", "succeeded", succeeded, "failed", failed)

	if succeeded == 0 {
		return fmt.Errorf("%w (%d failed)", errNoResults, failed)
	}

	return nil
}

func (a *app) measure(calc *bandratio.Calculator, path string, now time.Time) (report.Record, bandratio.Result, bool) {
	obj, err := specfile.ReadFile(path)
	if err != nil {
		id := specfile.ObjectID(path)
		a.log.Errorw("read spectrum", "object", id, "path", path, "error", err)

		return report.Failed(id, err, now), bandratio.Result{}, false
	}

	res, err := calc.Compute(obj)
	if err != nil {
		stage, _ := bandratio.StageOf(err)
		a.log.Errorw("compute band ratio", "object", obj.ID, "stage", stage, "error", err)

		return report.Failed(obj.ID, err, now), bandratio.Result{}, false
	}

	a.log.Debugw("band ratio", "object", res.Object, "ratio", res.Ratio, "feature_index", res.FeatureIndex)

	return report.FromResult(res, now), res, true
}
