package production

import (
	"errors"
	"math"
	"testing"
)

var sigmas = []float64{1, 0.5, 0, -2, -3, -4}

func TestZeroGuardForNonPositiveSigma(t *testing.T) {
	for _, sigma := range []float64{0, -0.5, -2, -3, -4} {
		for _, v := range []float64{0.5, 1, 6, 9} {
			for _, gamma := range []float64{0.25, 0.4375, 0.5, 0.9} {
				if h, err := H(0, v, sigma, gamma); err != nil || h != 0 {
					t.Errorf("H(0, %g, %g, %g) = %g, %v; want 0", v, sigma, gamma, h, err)
				}
				if h, err := H(v, 0, sigma, gamma); err != nil || h != 0 {
					t.Errorf("H(%g, 0, %g, %g) = %g, %v; want 0", v, sigma, gamma, h, err)
				}
			}
		}
	}
}

func TestAdditiveIsExactLinearCombination(t *testing.T) {
	for a := 0.0; a <= 6; a++ {
		for x := 0.0; x <= 9; x++ {
			for _, gamma := range []float64{0.5, 0.4375, 0.1} {
				got, err := H(a, x, 1, gamma)
				if err != nil {
					t.Fatalf("H(%g, %g, 1, %g): %v", a, x, gamma, err)
				}
				if want := gamma*a + (1-gamma)*x; got != want {
					t.Errorf("H(%g, %g, 1, %g) = %g, want %g", a, x, gamma, got, want)
				}
			}
		}
	}
}

func TestAdditiveReferencePoints(t *testing.T) {
	if h := MustH(6, 0, 1, 0.5); h != 3.0 {
		t.Errorf("H(6, 0, 1, 0.5) = %g, want 3", h)
	}
	if h := MustH(6, 9, 1, 0.5); h != 7.5 {
		t.Errorf("H(6, 9, 1, 0.5) = %g, want 7.5", h)
	}
}

func TestCobbDouglasMatchesPowerForm(t *testing.T) {
	for _, a := range []float64{0.5, 1, 3, 6} {
		for _, x := range []float64{1, 2, 7, 9} {
			for _, gamma := range []float64{0.5, 0.4375, 0.8} {
				got := MustH(a, x, 0, gamma)
				want := math.Pow(a, gamma) * math.Pow(x, 1-gamma)
				if rel := math.Abs(got-want) / want; rel > 1e-9 {
					t.Errorf("H(%g, %g, 0, %g) = %.15g, want %.15g (rel %g)", a, x, gamma, got, want, rel)
				}
			}
		}
	}
}

func TestCESKnownValues(t *testing.T) {
	tests := []struct {
		name        string
		a, x, sigma float64
		want        float64
	}{
		{"sqrt mean", 4, 9, 0.5, math.Pow(0.5*2+0.5*3, 2)},
		{"harmonic", 6, 3, -1, 1 / (0.5/6 + 0.5/3)},
		{"sigma -2", 6, 9, -2, math.Pow(0.5/36+0.5/81, -0.5)},
		{"sigma positive zero input", 0, 9, 0.5, math.Pow(0.5*3, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MustH(tt.a, tt.x, tt.sigma, 0.5)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("got %.15g, want %.15g", got, tt.want)
			}
		})
	}
}

func TestCESEqualInputsReturnInput(t *testing.T) {
	for _, sigma := range sigmas {
		got := MustH(5, 5, sigma, 0.5)
		if math.Abs(got-5) > 1e-12 {
			t.Errorf("H(5, 5, %g) = %.15g, want 5", sigma, got)
		}
	}
}

func TestDomainErrors(t *testing.T) {
	tests := []struct {
		name        string
		a, x, sigma float64
		guard       Guard
	}{
		{"log of negative ability", -1, 4, 0, GuardLogNonPositive},
		{"log of negative investment", 4, -2, 0, GuardLogNonPositive},
		{"negative base fractional sigma", -1, 4, 0.5, GuardNegativeBase},
		{"negative inner fractional root", -3, 1, 3, GuardNegativeBase},
		{"zero inner negative root", -1, 1, -1, GuardNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := H(tt.a, tt.x, tt.sigma, 0.5)
			var de *DomainError
			if !errors.As(err, &de) {
				t.Fatalf("expected DomainError, got %v", err)
			}
			if de.Guard != tt.guard {
				t.Errorf("guard = %s, want %s", de.Guard, tt.guard)
			}
			if de.A != tt.a || de.X != tt.x || de.Sigma != tt.sigma {
				t.Errorf("error does not carry inputs: %+v", de)
			}
		})
	}
}

func TestNegativeInputsAllowedForIntegerExponents(t *testing.T) {
	// sigma = 2: inner = 0.5*1 + 0.5*16 = 8.5, root 1/2 of a positive number.
	got, err := H(-1, 4, 2, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := math.Sqrt(8.5); math.Abs(got-want) > 1e-12 {
		t.Errorf("got %g, want %g", got, want)
	}
}

func TestFormFor(t *testing.T) {
	if FormFor(1) != FormAdditive || FormFor(0) != FormCobbDouglas || FormFor(-2) != FormCES || FormFor(0.5) != FormCES {
		t.Fatal("unexpected form mapping")
	}
}

func TestMustHPanicsOnDomainError(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustH(-1, 4, 0.5, 0.5)
}
