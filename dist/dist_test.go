package dist

import (
	"math"
	"testing"
)

func TestGaussianMaxDiff(t *testing.T) {
	a := NewGaussian(0, 1)
	b := NewGaussian(0.5, 1.25)
	if diff := a.MaxDiff(b); math.Abs(diff-0.5) > 1e-12 {
		t.Fatalf("expected 0.5, got %f", diff)
	}
	if diff := a.MaxDiff(a); diff != 0 {
		t.Fatalf("expected 0, got %f", diff)
	}
}

func TestBernoulliMoments(t *testing.T) {
	b := Bernoulli{ProbTrue: 0.25}
	if b.Mean() != 0.25 {
		t.Fatalf("unexpected mean: %f", b.Mean())
	}
	if math.Abs(b.Variance()-0.1875) > 1e-12 {
		t.Fatalf("unexpected variance: %f", b.Variance())
	}
}

func TestDiscreteNormalises(t *testing.T) {
	d, err := NewDiscrete([]float64{2, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(d.Prob(0)-0.5) > 1e-12 {
		t.Fatalf("expected 0.5, got %f", d.Prob(0))
	}
	if d.Dimension() != 3 {
		t.Fatalf("unexpected dimension: %d", d.Dimension())
	}
}

func TestDiscreteRejectsInvalidMass(t *testing.T) {
	if _, err := NewDiscrete(nil); err == nil {
		t.Fatal("expected an error for an empty mass vector")
	}
	if _, err := NewDiscrete([]float64{1, -1}); err == nil {
		t.Fatal("expected an error for negative mass")
	}
	if _, err := NewDiscrete([]float64{0, 0}); err == nil {
		t.Fatal("expected an error for zero total mass")
	}
}

func TestDiscreteSummaries(t *testing.T) {
	d, err := NewDiscrete([]float64{0.2, 0.5, 0.3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Mode() != 1 {
		t.Fatalf("unexpected mode: %d", d.Mode())
	}
	if d.Median() != 1 {
		t.Fatalf("unexpected median: %d", d.Median())
	}
	if math.Abs(d.Mean()-1.1) > 1e-12 {
		t.Fatalf("unexpected mean: %f", d.Mean())
	}
}

func TestDiscreteProbsIsACopy(t *testing.T) {
	d, err := NewDiscrete([]float64{0.5, 0.5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := d.Probs()
	p[0] = 99
	if d.Prob(0) != 0.5 {
		t.Fatal("mutating the returned mass vector leaked into the distribution")
	}
}

func TestGaussianMatrixCloneIsDeep(t *testing.T) {
	m := NewGaussianMatrix(2, 3, NewGaussian(0, 1))
	c := m.Clone()
	c[1][2] = NewGaussian(5, 5)
	if m[1][2].Mean != 0 {
		t.Fatal("clone shares cells with the original")
	}
	if diff := m.MaxDiff(c); math.Abs(diff-5) > 1e-12 {
		t.Fatalf("expected max diff 5, got %f", diff)
	}
}
