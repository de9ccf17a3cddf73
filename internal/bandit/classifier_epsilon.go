package bandit

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/danielpatrickdp/review-bandits/internal/oracle"
)

// #endregion

// #region sentinel

// unobservedProportion is the good-review proportion assigned to arms with no
// classified observations, forcing exploitation to prefer them first.
const unobservedProportion = 1.0

// #endregion

// #region counts

type labelCounts struct {
	good int
	bad  int
}

// #endregion

// #region classifier-epsilon-greedy

// ClassifierEpsilonGreedy is the epsilon-greedy variant that learns from
// Good/Bad classifications instead of scores. Warm-up and exploration mirror
// EpsilonGreedy; exploitation maximizes good/(good+bad). Updates classify the
// raw review text through the oracle, so a classification failure fails the
// update.
type ClassifierEpsilonGreedy struct {
	arms       []string
	epsilon    float64
	rng        *rand.Rand
	classifier oracle.Classifier

	counts map[string]*labelCounts
	warmup []string
}

// NewClassifierEpsilonGreedy builds a classification-based epsilon-greedy
// policy. The classifier is required.
func NewClassifierEpsilonGreedy(arms []string, classifier oracle.Classifier, epsilon float64, rng *rand.Rand) (*ClassifierEpsilonGreedy, error) {
	if len(arms) == 0 {
		return nil, ErrNoArms
	}
	if epsilon < 0.0 || epsilon > 1.0 {
		return nil, ErrBadEpsilon
	}
	if classifier == nil {
		return nil, errors.New("a review classifier is required")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	p := &ClassifierEpsilonGreedy{
		arms:       copyArms(arms),
		epsilon:    epsilon,
		rng:        rng,
		classifier: classifier,
		counts:     make(map[string]*labelCounts, len(arms)),
	}
	for _, arm := range p.arms {
		p.counts[arm] = &labelCounts{}
	}
	p.warmup = copyArms(p.arms)
	return p, nil
}

// Name implements Policy.
func (p *ClassifierEpsilonGreedy) Name() string { return "ClassifierEpsilonGreedy" }

// FeedbackKind implements Policy.
func (p *ClassifierEpsilonGreedy) FeedbackKind() FeedbackKind { return FeedbackText }

// Select implements Policy.
func (p *ClassifierEpsilonGreedy) Select(_ context.Context) (string, error) {
	if len(p.warmup) > 0 {
		arm := p.warmup[0]
		p.warmup = p.warmup[1:]
		return arm, nil
	}

	if p.rng.Float64() < p.epsilon {
		return p.arms[p.rng.Intn(len(p.arms))], nil
	}

	best := bestArms(p.arms, func(arm string) float64 {
		c := p.counts[arm]
		total := c.good + c.bad
		if total == 0 {
			return unobservedProportion
		}
		return float64(c.good) / float64(total)
	})
	return best[p.rng.Intn(len(best))], nil
}

// Update implements Policy by classifying the review text and incrementing
// the arm's label counts. Classification errors propagate.
func (p *ClassifierEpsilonGreedy) Update(ctx context.Context, arm string, fb Feedback) error {
	c, ok := p.counts[arm]
	if !ok {
		return fmt.Errorf("update %q: %w", arm, ErrUnknownArm)
	}

	label, err := p.classifier.Classify(ctx, fb.Text)
	if err != nil {
		return fmt.Errorf("update %q: %w", arm, err)
	}
	if label == oracle.LabelGood {
		c.good++
	} else {
		c.bad++
	}
	return nil
}

// #endregion
