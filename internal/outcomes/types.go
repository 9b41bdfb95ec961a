package outcomes

// #region config
// Config holds the constants of a session.
type Config struct {
	Budget       int     // investment units split between the two children
	MaxSessions  float64 // sessions alpha calibrates against
	GapThreshold float64 // ability-score gap separating medium from large
}

// DefaultConfig returns the enumerator constants.
func DefaultConfig() Config {
	return Config{
		Budget:       9,
		MaxSessions:  15,
		GapThreshold: 6,
	}
}

// #endregion config

// #region scenario
// Scenario is one named production setting shown to respondents.
type Scenario struct {
	Name        string
	Description string
	Gamma       float64
	Sigma       float64
	Theta       int
}

// DefaultScenarios returns the eight enumerator scenarios A-H.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "A", Description: "σ=1, θ=1", Gamma: 0.5, Sigma: 1, Theta: 1},
		{Name: "B", Description: "σ=1, θ=2", Gamma: 0.5, Sigma: 1, Theta: 2},
		{Name: "C", Description: "σ=0.5, θ=1", Gamma: 0.5, Sigma: 0.5, Theta: 1},
		{Name: "D", Description: "σ=0.5, θ=2", Gamma: 0.5, Sigma: 0.5, Theta: 2},
		{Name: "E", Description: "σ=0, θ=1", Gamma: 0.5, Sigma: 0, Theta: 1},
		{Name: "F", Description: "σ=0, θ=2", Gamma: 0.5, Sigma: 0, Theta: 2},
		{Name: "G", Description: "σ=-2, θ=1", Gamma: 0.5, Sigma: -2, Theta: 1},
		{Name: "H", Description: "σ=-2, θ=2", Gamma: 0.5, Sigma: -2, Theta: 2},
	}
}

// ScenarioByName looks up one of the default scenarios.
func ScenarioByName(name string) (Scenario, bool) {
	for _, s := range DefaultScenarios() {
		if s.Name == name {
			return s, true
		}
	}
	return Scenario{}, false
}

// #endregion scenario

// #region session
// Session holds the two children's raw ability scores (0-100).
type Session struct {
	AbilityScore1 float64
	AbilityScore2 float64
}

// Split is one allocation of the budget and the earnings it produces.
type Split struct {
	Investment1    int
	Investment2    int
	Earnings1      float64
	Earnings2      float64
	Aggregate      float64
	Earnings1Round int
	Earnings2Round int
	AggregateRound int
}

// Outcome is the full earnings curve of a session under one scenario.
type Outcome struct {
	PreEarnings1         float64
	PreEarnings2         float64
	Alpha                float64
	Splits               []Split
	MaximumEarnings      float64
	MaximumEarningsRound int
}

// #endregion session
