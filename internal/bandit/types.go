// Package bandit implements the selection policies compared by the
// simulation: a random baseline, two epsilon-greedy learners, and a
// last-outcome follower.
package bandit

// #region imports
import (
	"context"
	"errors"
)

// #endregion

// #region errors

var (
	// ErrNoArms indicates a policy was constructed with an empty arm list.
	ErrNoArms = errors.New("arm list cannot be empty")

	// ErrUnknownArm indicates an update referenced an arm outside the
	// configured set.
	ErrUnknownArm = errors.New("unknown arm")

	// ErrBadEpsilon indicates an exploration rate outside [0,1].
	ErrBadEpsilon = errors.New("epsilon must be between 0.0 and 1.0")
)

// #endregion

// #region feedback-kind

// FeedbackKind declares which feedback unit a policy consumes on update.
// The orchestrator branches on this tag instead of inspecting policy types.
type FeedbackKind string

const (
	// FeedbackScore policies consume a quantified numeric score.
	FeedbackScore FeedbackKind = "score"
	// FeedbackText policies consume raw review text and classify it themselves.
	FeedbackText FeedbackKind = "text"
)

// #endregion

// #region feedback

// Feedback carries one observation. Exactly one field is meaningful,
// according to the receiving policy's FeedbackKind.
type Feedback struct {
	Score float64
	Text  string
}

// #endregion

// #region policy

// Policy is a decision rule over a fixed arm set plus an update rule.
// Implementations are single-goroutine; Select may call the scoring oracle
// (FairweatherFriend classifies lazily), hence the context.
type Policy interface {
	// Name identifies the policy in experiment output.
	Name() string

	// FeedbackKind declares the feedback unit Update expects.
	FeedbackKind() FeedbackKind

	// Select chooses the next arm from internal belief state.
	Select(ctx context.Context) (string, error)

	// Update incorporates one observation for the given arm.
	Update(ctx context.Context, arm string, fb Feedback) error
}

// PolicyFactory builds a fresh policy with identical construction
// parameters. Synchronized experiments use factories so each policy starts
// a run with no learning carried over.
type PolicyFactory func() (Policy, error)

// #endregion
