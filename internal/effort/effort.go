package effort

import (
	"math"

	"github.com/edwinlock/resource-allocation-tool/internal/production"
)

// DefaultSessions is the number of sessions alpha calibrates against.
const DefaultSessions = 15

// #region alpha
// ComputeAlpha returns the effort-scaling constant sessions / H^theta for the
// reference point (a, x). A non-positive H yields 0 rather than a division
// by zero.
func ComputeAlpha(a, x, sigma float64, theta int, gamma, sessions float64) (float64, error) {
	h, err := production.H(a, x, sigma, gamma)
	if err != nil {
		return 0, err
	}
	if h <= 0 {
		return 0, nil
	}
	return sessions / math.Pow(h, float64(theta)), nil
}

// #endregion alpha

// #region calculate-e
// CalculateE prices a capability measure: alpha * h^theta, or 0 when h is 0.
func CalculateE(h, alpha float64, theta int) float64 {
	if h == 0 {
		return 0
	}
	return alpha * math.Pow(h, float64(theta))
}

// #endregion calculate-e

// #region rounding
// Round is the single rounding rule applied to effort values. Ties go to the
// even neighbour, as numpy's round does.
func Round(e float64) int {
	return int(math.RoundToEven(e))
}

// #endregion rounding
