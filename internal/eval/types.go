package eval

// #region eval-config
// EvalConfig holds thresholds for table validation.
type EvalConfig struct {
	ExpectedRows       int     // reject if row count differs; 0 disables the check
	CalibrationTol     float64 // max |e_high - sessions| at the reference investment
	RequireSortedOrder bool    // reject rows out of (sigma, gap) order
}

// DefaultEvalConfig returns the checks applied by the CLI.
func DefaultEvalConfig() EvalConfig {
	return EvalConfig{
		CalibrationTol:     1e-9,
		RequireSortedOrder: true,
	}
}

// #endregion eval-config

// #region eval-metric
// EvalMetric captures a single validation check result.
type EvalMetric struct {
	Name  string
	Value float64 // count of violations, or the observed value for row_count
	Pass  bool
}

// #endregion eval-metric

// #region eval-result
// EvalResult is the output of table validation.
type EvalResult struct {
	Passed  bool
	Metrics []EvalMetric
	Reason  string
}

// #endregion eval-result
