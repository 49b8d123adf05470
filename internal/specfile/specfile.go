// Package specfile reads tabulated spectra: plain-text files with one
// wavelength/reflectance pair per line, separated by tabs or spaces.
package specfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-bandratio/spectrum"
)

// Ext is the extension of spectrum files; it is stripped to form object ids.
const Ext = ".txt"

// ErrNoSamples is returned for a file without any data line.
var ErrNoSamples = errors.New("specfile: no samples")

// SyntaxError reports a malformed data line.
type SyntaxError struct {
	Line int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Read parses samples from r. The first two whitespace-separated fields of
// each line are wavelength (µm) and reflectance; further fields are ignored.
// Blank lines and lines starting with '#' are skipped.
func Read(r io.Reader) ([]spectrum.Sample, error) {
	var samples []spectrum.Sample

	sc := bufio.NewScanner(r)
	lineNo := 0

	for sc.Scan() {
		lineNo++

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		s, err := parseLine(text)
		if err != nil {
			return nil, &SyntaxError{Line: lineNo, Text: text, Err: err}
		}

		samples = append(samples, s)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(samples) == 0 {
		return nil, ErrNoSamples
	}

	return samples, nil
}

func parseLine(text string) (spectrum.Sample, error) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return spectrum.Sample{}, fmt.Errorf("want 2 columns, got %d", len(fields))
	}

	wl, err := parseFloat(fields[0])
	if err != nil {
		return spectrum.Sample{}, fmt.Errorf("wavelength: %w", err)
	}

	refl, err := parseFloat(fields[1])
	if err != nil {
		return spectrum.Sample{}, fmt.Errorf("reflectance: %w", err)
	}

	return spectrum.Sample{Wavelength: wl, Reflectance: refl}, nil
}

func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}

	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %s", s)
	}

	return v, nil
}

// ReadFile reads one object's spectrum. The object id is the file name
// without its .txt extension.
func ReadFile(path string) (spectrum.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return spectrum.Object{}, fmt.Errorf("open spectrum: %w", err)
	}
	defer f.Close()

	samples, err := Read(f)
	if err != nil {
		return spectrum.Object{}, fmt.Errorf("read %s: %w", path, err)
	}

	return spectrum.Object{ID: ObjectID(path), Samples: samples}, nil
}

// ObjectID derives the object id from a spectrum file path.
func ObjectID(path string) string {
	return strings.TrimSuffix(filepath.Base(path), Ext)
}

// List returns the spectrum files directly inside dir, in lexical order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list spectra: %w", err)
	}

	var paths []string

	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}

		paths = append(paths, filepath.Join(dir, e.Name()))
	}

	slices.Sort(paths)

	return paths, nil
}
