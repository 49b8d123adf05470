package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/cwbudde/algo-bandratio/internal/report"
	"github.com/cwbudde/algo-bandratio/internal/store"
	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("no database (use --db)")

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List stored band-ratio results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Database == "" {
				return errNoDatabase
			}

			db, err := store.Open(a.cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			var recs []report.Record
			if a.object != "" {
				recs, err = db.ResultsFor(cmd.Context(), a.object)
			} else {
				recs, err = db.Results(cmd.Context())
			}

			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "computed_at\tobject\tratio\tstage\terror")

			for _, rec := range recs {
				ratio := "-"
				if rec.OK() {
					ratio = fmt.Sprintf("%.4f", rec.Ratio)
				}

				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					rec.ComputedAt.Format(time.RFC3339), rec.Object, ratio, rec.Stage, rec.Error)
			}

			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&a.database, "db", "", "SQLite database written by compute or run")
	cmd.Flags().StringVar(&a.object, "object", "", "only this object")

	return cmd
}
