package production

import "math"

// #region form
// Form identifies which branch of H applies to a given sigma.
type Form string

const (
	FormAdditive    Form = "additive"
	FormCobbDouglas Form = "cobb_douglas"
	FormCES         Form = "ces"
)

// FormFor returns the functional form H uses for sigma.
func FormFor(sigma float64) Form {
	switch sigma {
	case 1:
		return FormAdditive
	case 0:
		return FormCobbDouglas
	default:
		return FormCES
	}
}

// #endregion form

// #region h
// H evaluates the human capital production function for ability a and
// investment x. Branches are checked in a fixed order: the zero guard for
// sigma <= 0, the additive form (sigma == 1), Cobb-Douglas (sigma == 0), and
// general CES otherwise.
func H(a, x, sigma, gamma float64) (float64, error) {
	if sigma <= 0 && (a == 0 || x == 0) {
		return 0, nil
	}

	switch FormFor(sigma) {
	case FormAdditive:
		return gamma*a + (1-gamma)*x, nil

	case FormCobbDouglas:
		if a < 0 || x < 0 {
			return 0, domainErr(a, x, sigma, gamma, GuardLogNonPositive)
		}
		return finite(math.Exp(gamma*math.Log(a)+(1-gamma)*math.Log(x)), a, x, sigma, gamma)
	}

	if (a < 0 || x < 0) && !isInteger(sigma) {
		return 0, domainErr(a, x, sigma, gamma, GuardNegativeBase)
	}
	inner := gamma*math.Pow(a, sigma) + (1-gamma)*math.Pow(x, sigma)
	exp := 1 / sigma
	if inner < 0 && !isInteger(exp) {
		return 0, domainErr(a, x, sigma, gamma, GuardNegativeBase)
	}
	return finite(math.Pow(inner, exp), a, x, sigma, gamma)
}

// MustH is H for inputs known to be inside the domain. It panics on a
// DomainError and is meant for tests and literal tables.
func MustH(a, x, sigma, gamma float64) float64 {
	h, err := H(a, x, sigma, gamma)
	if err != nil {
		panic(err)
	}
	return h
}

// #endregion h

// #region helpers
func isInteger(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0)
}

func finite(h, a, x, sigma, gamma float64) (float64, error) {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return 0, domainErr(a, x, sigma, gamma, GuardNonFinite)
	}
	return h, nil
}

func domainErr(a, x, sigma, gamma float64, g Guard) error {
	return &DomainError{A: a, X: x, Sigma: sigma, Gamma: gamma, Guard: g}
}

// #endregion helpers
