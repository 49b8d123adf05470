package plotting

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-bandratio/internal/testutil"
	"github.com/cwbudde/algo-bandratio/measure/bandratio"
	"github.com/cwbudde/algo-bandratio/spectrum"
)

func result(t *testing.T) bandratio.Result {
	t.Helper()

	calc, err := bandratio.NewCalculator()
	if err != nil {
		t.Fatal(err)
	}

	res, err := calc.Compute(spectrum.Object{ID: "icy", Samples: testutil.IcyBody()})
	if err != nil {
		t.Fatal(err)
	}

	return res
}

func TestNewTitle(t *testing.T) {
	res := result(t)
	res.Ratio = 0.089812

	p, err := New(res)
	if err != nil {
		t.Fatal(err)
	}

	if p.Title.Text != "icy: ratio=0.0898" {
		t.Fatalf("title = %q", p.Title.Text)
	}
}

func TestNewRequiresTables(t *testing.T) {
	if _, err := New(bandratio.Result{Object: "x"}); !errors.Is(err, ErrNoTables) {
		t.Fatalf("err = %v, want ErrNoTables", err)
	}
}

func TestOutline(t *testing.T) {
	got := Outline([]float64{1, 2, 3}, []float64{10, 20, 30}, []float64{1, 2, 3})

	want := [][2]float64{{1, 10}, {2, 20}, {3, 30}, {3, 3}, {2, 2}, {1, 1}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}

	for i, w := range want {
		if got[i].X != w[0] || got[i].Y != w[1] {
			t.Errorf("vertex %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestSave(t *testing.T) {
	res := result(t)

	for _, name := range []string{"icy.png", "icy.svg"} {
		path := filepath.Join(t.TempDir(), "plots", name)
		if err := Save(path, res); err != nil {
			t.Fatalf("%s: %v", name, err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}

		if info.Size() == 0 {
			t.Fatalf("%s is empty", name)
		}
	}
}
