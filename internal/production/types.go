package production

import "fmt"

// DefaultGamma is the weight on the ability input used by every scenario
// unless a run overrides it.
const DefaultGamma = 0.5

// #region guard
// Guard names the domain condition an evaluation violated.
type Guard string

const (
	GuardLogNonPositive Guard = "log_non_positive"
	GuardNegativeBase   Guard = "negative_base_fractional_power"
	GuardNonFinite      Guard = "non_finite_result"
)

// #endregion guard

// #region domain-error
// DomainError reports an H evaluation whose inputs fall outside the domain of
// the selected functional form. It is returned instead of a NaN result.
type DomainError struct {
	A     float64
	X     float64
	Sigma float64
	Gamma float64
	Guard Guard
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("production domain error (%s): H(a=%g, x=%g, sigma=%g, gamma=%g)",
		e.Guard, e.A, e.X, e.Sigma, e.Gamma)
}

// #endregion domain-error
