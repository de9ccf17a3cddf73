package simulation

// #region step-record

// StepRecord is one row of a run's history: the step index, the chosen arm,
// and the evaluation score. The score is always the record's own rating so
// every policy is compared on the same metric axis regardless of the
// feedback unit it learned from.
type StepRecord struct {
	Step   int
	Choice string
	Score  float64
}

// #endregion

// #region run-result

// RunResult is one policy's complete ordered history, tagged for aggregation
// across an experiment.
type RunResult struct {
	Policy  string
	History []StepRecord
}

// #endregion
