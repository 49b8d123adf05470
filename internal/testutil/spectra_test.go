package testutil

import (
	"math"
	"testing"
)

func TestGrid(t *testing.T) {
	g := Grid(1.4, 1.7, 4)
	RequireSliceNearlyEqual(t, g, []float64{1.4, 1.5, 1.6, 1.7}, 1e-12)

	if one := Grid(2, 3, 1); len(one) != 1 || one[0] != 2 {
		t.Fatalf("Grid(n=1) = %v, want [2]", one)
	}
}

func TestGaussianDipDeepestAtCenter(t *testing.T) {
	s := GaussianDip(Continuum(Grid(1.5, 1.7, 41), 0, 1), 1.6, 0.01, 0.2)

	minIdx := 0
	for i := range s {
		if s[i].Reflectance < s[minIdx].Reflectance {
			minIdx = i
		}
	}

	if math.Abs(s[minIdx].Wavelength-1.6) > 1e-9 {
		t.Fatalf("minimum at %v, want 1.6", s[minIdx].Wavelength)
	}

	RequireNearlyEqual(t, "depth", 1-s[minIdx].Reflectance, 0.2, 1e-12)
}

func TestShuffledReproducible(t *testing.T) {
	src := IcyBody()
	a := Shuffled(7, src)
	b := Shuffled(7, src)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("shuffle not deterministic at index %d", i)
		}
	}

	if len(src) != 161 {
		t.Fatalf("IcyBody len = %d, want 161", len(src))
	}
}

func TestScaleReflectance(t *testing.T) {
	src := Continuum([]float64{1, 2, 3}, 1, 0)
	got := ScaleReflectance(src, 2)

	for i := range got {
		if got[i].Wavelength != src[i].Wavelength {
			t.Fatalf("wavelength changed at %d", i)
		}
		if got[i].Reflectance != 2*src[i].Reflectance {
			t.Fatalf("reflectance[%d] = %v, want %v", i, got[i].Reflectance, 2*src[i].Reflectance)
		}
	}

	if src[0].Reflectance != 1 {
		t.Fatal("source modified")
	}
}
