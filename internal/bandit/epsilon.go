package bandit

// #region imports
import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// #endregion

// #region sentinel

// unobservedScore is the running mean assigned to arms with no observations
// during exploitation: the midpoint of the 1-100 oracle scale, high enough to
// keep unexplored arms attractive without dominating a well-reviewed one.
const unobservedScore = 50.0

// #endregion

// #region epsilon-greedy

// EpsilonGreedy learns from quantified scores. With probability epsilon it
// explores uniformly; otherwise it exploits the arm with the highest running
// mean score, breaking ties uniformly at random. The first len(arms) calls to
// Select cycle through every arm once, in input order, so exploitation never
// starts before each arm has an observation.
type EpsilonGreedy struct {
	arms    []string
	epsilon float64
	rng     *rand.Rand

	scores map[string][]float64
	warmup []string // arms not yet served their warm-up selection
}

// NewEpsilonGreedy builds a score-based epsilon-greedy policy.
func NewEpsilonGreedy(arms []string, epsilon float64, rng *rand.Rand) (*EpsilonGreedy, error) {
	if len(arms) == 0 {
		return nil, ErrNoArms
	}
	if epsilon < 0.0 || epsilon > 1.0 {
		return nil, ErrBadEpsilon
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	p := &EpsilonGreedy{
		arms:    copyArms(arms),
		epsilon: epsilon,
		rng:     rng,
		scores:  make(map[string][]float64, len(arms)),
	}
	p.warmup = copyArms(p.arms)
	return p, nil
}

// Name implements Policy.
func (p *EpsilonGreedy) Name() string { return "EpsilonGreedy" }

// FeedbackKind implements Policy.
func (p *EpsilonGreedy) FeedbackKind() FeedbackKind { return FeedbackScore }

// Select implements Policy.
func (p *EpsilonGreedy) Select(_ context.Context) (string, error) {
	if len(p.warmup) > 0 {
		arm := p.warmup[0]
		p.warmup = p.warmup[1:]
		return arm, nil
	}

	if p.rng.Float64() < p.epsilon {
		return p.arms[p.rng.Intn(len(p.arms))], nil
	}

	best := bestArms(p.arms, func(arm string) float64 {
		obs := p.scores[arm]
		if len(obs) == 0 {
			return unobservedScore
		}
		var sum float64
		for _, s := range obs {
			sum += s
		}
		return sum / float64(len(obs))
	})
	return best[p.rng.Intn(len(best))], nil
}

// Update implements Policy by appending the score to the arm's history.
func (p *EpsilonGreedy) Update(_ context.Context, arm string, fb Feedback) error {
	if _, ok := p.scores[arm]; !ok {
		if !containsArm(p.arms, arm) {
			return fmt.Errorf("update %q: %w", arm, ErrUnknownArm)
		}
	}
	p.scores[arm] = append(p.scores[arm], fb.Score)
	return nil
}

// #endregion

// #region helpers

// bestArms returns every arm tied for the maximum metric, preserving input
// order. Callers break the tie uniformly at random.
func bestArms(arms []string, metric func(string) float64) []string {
	best := make([]string, 0, 1)
	bestVal := 0.0
	for _, arm := range arms {
		v := metric(arm)
		switch {
		case len(best) == 0 || v > bestVal:
			best = append(best[:0], arm)
			bestVal = v
		case v == bestVal:
			best = append(best, arm)
		}
	}
	return best
}

func containsArm(arms []string, arm string) bool {
	for _, a := range arms {
		if a == arm {
			return true
		}
	}
	return false
}

// #endregion
