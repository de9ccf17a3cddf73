// Package simulation drives the select → sample → score → update loop for
// one policy and aggregates runs across many policies, optionally in
// synchronized mode.
package simulation

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/danielpatrickdp/review-bandits/internal/bandit"
	"github.com/danielpatrickdp/review-bandits/internal/oracle"
	"github.com/danielpatrickdp/review-bandits/internal/reviews"
)

// #endregion

// #region run-simulation

// RunSimulation runs one policy for numSteps steps against the sampler.
// The sampler is fully reset first so independent runs start identically.
// A drained arm pool is reset and retried once per step; a second exhaustion
// propagates since it indicates a data problem, not a transient condition.
func RunSimulation(ctx context.Context, policy bandit.Policy, sampler *reviews.Sampler, quantifier oracle.Quantifier, numSteps int) ([]StepRecord, error) {
	sampler.ResetAll()
	log.Printf("[SIM] simulating %s for %d steps", policy.Name(), numSteps)

	history := make([]StepRecord, 0, numSteps)
	for step := 0; step < numSteps; step++ {
		arm, err := policy.Select(ctx)
		if err != nil {
			return nil, fmt.Errorf("step %d: select: %w", step, err)
		}

		rec, err := pickWithReset(sampler, arm)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", step, err)
		}

		fb := feedbackFor(ctx, policy, rec, quantifier, step)
		if err := policy.Update(ctx, arm, fb); err != nil {
			return nil, fmt.Errorf("step %d: update: %w", step, err)
		}

		history = append(history, StepRecord{Step: step, Choice: arm, Score: rec.Rating})
	}
	return history, nil
}

// #endregion

// #region pick-with-reset

func pickWithReset(sampler *reviews.Sampler, arm string) (reviews.Record, error) {
	rec, err := sampler.Pick(arm)
	if errors.Is(err, reviews.ErrExhausted) {
		if rerr := sampler.Reset(arm); rerr != nil {
			return reviews.Record{}, rerr
		}
		rec, err = sampler.Pick(arm)
	}
	return rec, err
}

// #endregion

// #region feedback

// feedbackFor converts a sampled record into the feedback unit the policy
// declared. Text policies get the raw review; score policies get the
// quantified score, degrading to the record's own rating when quantification
// fails — one bad oracle call should not end a multi-hundred-step run.
func feedbackFor(ctx context.Context, policy bandit.Policy, rec reviews.Record, quantifier oracle.Quantifier, step int) bandit.Feedback {
	if policy.FeedbackKind() == bandit.FeedbackText {
		return bandit.Feedback{Text: rec.Review}
	}

	score, err := quantifier.Quantify(ctx, rec.Review)
	if err != nil {
		log.Printf("[SIM] step %d: quantify failed, using original rating: %v", step, err)
		return bandit.Feedback{Score: rec.Rating}
	}
	return bandit.Feedback{Score: float64(score)}
}

// #endregion

// #region run-experiment

// RunExperiment runs each policy through an independent simulation sharing
// one sampler, which RunSimulation resets between runs.
func RunExperiment(ctx context.Context, policies []bandit.Policy, sampler *reviews.Sampler, quantifier oracle.Quantifier, numSteps int) ([]RunResult, error) {
	results := make([]RunResult, 0, len(policies))
	for _, p := range policies {
		history, err := RunSimulation(ctx, p, sampler, quantifier, numSteps)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", p.Name(), err)
		}
		results = append(results, RunResult{Policy: p.Name(), History: history})
	}
	return results, nil
}

// #endregion

// #region run-synchronized-experiment

// RunSynchronizedExperiment compares freshly constructed policies under
// identical sampling conditions: the synchronization cache is keyed by
// (timestep, arm) and reset once up front, then deliberately shared across
// policies, so two policies choosing the same arm at the same step observe
// the same record.
func RunSynchronizedExperiment(ctx context.Context, factories []bandit.PolicyFactory, sampler *reviews.SynchronizedSampler, quantifier oracle.Quantifier, numSteps int) ([]RunResult, error) {
	// One composite reset for the whole experiment, not per policy.
	sampler.ResetAll()

	results := make([]RunResult, 0, len(factories))
	for _, factory := range factories {
		policy, err := factory()
		if err != nil {
			return nil, fmt.Errorf("build policy: %w", err)
		}
		log.Printf("[SIM] synchronized run: %s for %d steps", policy.Name(), numSteps)

		history := make([]StepRecord, 0, numSteps)
		for step := 0; step < numSteps; step++ {
			sampler.SetTimestep(step)

			arm, err := policy.Select(ctx)
			if err != nil {
				return nil, fmt.Errorf("%s step %d: select: %w", policy.Name(), step, err)
			}

			rec, err := sampler.PickSynchronizedAt(arm, step)
			if err != nil {
				return nil, fmt.Errorf("%s step %d: %w", policy.Name(), step, err)
			}

			fb := feedbackFor(ctx, policy, rec, quantifier, step)
			if err := policy.Update(ctx, arm, fb); err != nil {
				return nil, fmt.Errorf("%s step %d: update: %w", policy.Name(), step, err)
			}

			history = append(history, StepRecord{Step: step, Choice: arm, Score: rec.Rating})
		}
		results = append(results, RunResult{Policy: policy.Name(), History: history})
	}
	return results, nil
}

// #endregion
