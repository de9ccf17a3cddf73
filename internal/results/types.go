package results

import "time"

// #region experiment-info

// ExperimentInfo describes one stored experiment.
type ExperimentInfo struct {
	ID           string
	Synchronized bool
	NumSteps     int
	CreatedAt    time.Time
}

// #endregion

// #region policy-summary

// PolicySummary aggregates one policy's run within an experiment.
type PolicySummary struct {
	Policy     string
	Steps      int
	TotalScore float64
	MeanScore  float64
}

// #endregion

// #region choice-count

// ChoiceCount is how often a policy chose one arm within an experiment.
type ChoiceCount struct {
	Choice string
	Count  int
}

// #endregion
