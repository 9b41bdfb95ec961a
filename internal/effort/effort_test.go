package effort

import (
	"errors"
	"math"
	"testing"

	"github.com/edwinlock/resource-allocation-tool/internal/production"
)

func TestComputeAlphaAdditiveReference(t *testing.T) {
	// H(6, 9, 1, 0.5) = 7.5
	alpha, err := ComputeAlpha(6, 9, 1, 1, 0.5, DefaultSessions)
	if err != nil {
		t.Fatalf("ComputeAlpha: %v", err)
	}
	if alpha != 2.0 {
		t.Errorf("alpha = %g, want 2", alpha)
	}

	alpha, err = ComputeAlpha(6, 9, 1, 2, 0.5, DefaultSessions)
	if err != nil {
		t.Fatalf("ComputeAlpha: %v", err)
	}
	if want := 15 / 56.25; alpha != want {
		t.Errorf("alpha = %g, want %g", alpha, want)
	}
}

func TestComputeAlphaZeroH(t *testing.T) {
	for _, sigma := range []float64{0, -2, -3, -4} {
		for _, theta := range []int{1, 2} {
			alpha, err := ComputeAlpha(0, 9, sigma, theta, 0.5, DefaultSessions)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if alpha != 0 {
				t.Errorf("sigma=%g theta=%d: alpha = %g, want 0", sigma, theta, alpha)
			}
		}
	}
}

func TestComputeAlphaNegativeH(t *testing.T) {
	// Additive form with negative inputs: H = -2, alpha clamps to 0.
	alpha, err := ComputeAlpha(-2, -2, 1, 1, 0.5, DefaultSessions)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alpha != 0 {
		t.Errorf("alpha = %g, want 0", alpha)
	}
}

func TestComputeAlphaPropagatesDomainError(t *testing.T) {
	_, err := ComputeAlpha(-1, 9, 0.5, 1, 0.5, DefaultSessions)
	var de *production.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
}

func TestCalculateE(t *testing.T) {
	if e := CalculateE(0, 2.0, 1); e != 0 {
		t.Errorf("CalculateE(0) = %g, want 0", e)
	}
	if e := CalculateE(7.5, 2.0, 1); e != 15.0 {
		t.Errorf("CalculateE(7.5, 2, 1) = %g, want 15", e)
	}
	if e := CalculateE(0.5, 2.0, 1); e != 1.0 {
		t.Errorf("CalculateE(0.5, 2, 1) = %g, want 1", e)
	}
	if e := CalculateE(3, 0.5, 2); e != 4.5 {
		t.Errorf("CalculateE(3, 0.5, 2) = %g, want 4.5", e)
	}
}

func TestCalculateENeverNaNAtZero(t *testing.T) {
	e := CalculateE(0, math.Inf(1), 2)
	if e != 0 {
		t.Errorf("expected clamp to 0, got %g", e)
	}
}

func TestReferencePointPricesToSessions(t *testing.T) {
	for _, sigma := range []float64{1, 0.5, 0, -2, -3, -4} {
		for _, theta := range []int{1, 2} {
			alpha, err := ComputeAlpha(5, 9, sigma, theta, 0.5, DefaultSessions)
			if err != nil {
				t.Fatalf("ComputeAlpha: %v", err)
			}
			h := production.MustH(5, 9, sigma, 0.5)
			if e := CalculateE(h, alpha, theta); math.Abs(e-DefaultSessions) > 1e-9 {
				t.Errorf("sigma=%g theta=%d: e = %.12g, want 15", sigma, theta, e)
			}
		}
	}
}

func TestRoundHalfToEven(t *testing.T) {
	tests := map[float64]int{
		0.5:  0,
		1.5:  2,
		2.5:  2,
		3.49: 3,
		3.51: 4,
		14.5: 14,
		15.0: 15,
	}
	for in, want := range tests {
		if got := Round(in); got != want {
			t.Errorf("Round(%g) = %d, want %d", in, got, want)
		}
	}
}
