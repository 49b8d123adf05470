// Command bandratio measures the 1.65 µm water-ice band ratio of reflectance
// spectra.
//
// Usage:
//
//	bandratio [flags] compute <file> [file ...]
//	bandratio [flags] run --data-dir <dir>
//	bandratio history --db <file>
//
// Each input file holds one object's spectrum as two whitespace-separated
// columns (wavelength in microns, relative reflectance); the object id is
// the file name without ".txt". Objects that fail are logged and skipped.
//
// Examples:
//
//	bandratio compute spectra/2002tx300.txt
//	bandratio run --data-dir spectra --plot-dir plots --report out/ratios.yaml
//	bandratio --feature-start 1.62 run --data-dir spectra --db ratios.db
//	bandratio history --db ratios.db
package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

const version = "0.1.0"

func main() {
	if err := fang.Execute(
		context.Background(),
		newRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
