package bandit

// #region imports
import (
	"context"
	"math/rand"
	"time"
)

// #endregion

// #region random-choice

// RandomChoice draws uniformly from all arms and never learns.
// Baseline for every comparison.
type RandomChoice struct {
	arms []string
	rng  *rand.Rand
}

// NewRandomChoice builds the baseline policy. A nil rng falls back to a
// time-seeded source.
func NewRandomChoice(arms []string, rng *rand.Rand) (*RandomChoice, error) {
	if len(arms) == 0 {
		return nil, ErrNoArms
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomChoice{arms: copyArms(arms), rng: rng}, nil
}

// Name implements Policy.
func (p *RandomChoice) Name() string { return "RandomChoice" }

// FeedbackKind implements Policy.
func (p *RandomChoice) FeedbackKind() FeedbackKind { return FeedbackScore }

// Select implements Policy.
func (p *RandomChoice) Select(_ context.Context) (string, error) {
	return p.arms[p.rng.Intn(len(p.arms))], nil
}

// Update implements Policy. No-op: this policy does not learn.
func (p *RandomChoice) Update(_ context.Context, _ string, _ Feedback) error {
	return nil
}

// #endregion

// #region helpers

func copyArms(arms []string) []string {
	out := make([]string, len(arms))
	copy(out, arms)
	return out
}

// #endregion
