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

// #region fairweather

// FairweatherFriend remembers only the previous turn. If the last review
// classifies Good it returns to the same arm; on the first turn or after a
// Bad review it picks uniformly among the other arms (full set when there is
// nothing else to exclude). Classification happens lazily at Select, not at
// Update.
type FairweatherFriend struct {
	arms       []string
	rng        *rand.Rand
	classifier oracle.Classifier

	lastArm  string
	lastText string
	hasLast  bool
}

// NewFairweatherFriend builds the last-outcome follower. The classifier is
// required.
func NewFairweatherFriend(arms []string, classifier oracle.Classifier, rng *rand.Rand) (*FairweatherFriend, error) {
	if len(arms) == 0 {
		return nil, ErrNoArms
	}
	if classifier == nil {
		return nil, errors.New("a review classifier is required")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &FairweatherFriend{
		arms:       copyArms(arms),
		rng:        rng,
		classifier: classifier,
	}, nil
}

// Name implements Policy.
func (p *FairweatherFriend) Name() string { return "FairweatherFriend" }

// FeedbackKind implements Policy.
func (p *FairweatherFriend) FeedbackKind() FeedbackKind { return FeedbackText }

// Select implements Policy.
func (p *FairweatherFriend) Select(ctx context.Context) (string, error) {
	if p.hasLast {
		label, err := p.classifier.Classify(ctx, p.lastText)
		if err != nil {
			return "", fmt.Errorf("select: %w", err)
		}
		if label == oracle.LabelGood {
			return p.lastArm, nil
		}
	}

	// First turn, or the last review was bad: move on to a different arm.
	options := make([]string, 0, len(p.arms))
	for _, arm := range p.arms {
		if arm != p.lastArm {
			options = append(options, arm)
		}
	}
	if len(options) == 0 {
		options = p.arms
	}
	return options[p.rng.Intn(len(options))], nil
}

// Update implements Policy by recording the turn's arm and raw review text.
func (p *FairweatherFriend) Update(_ context.Context, arm string, fb Feedback) error {
	if !containsArm(p.arms, arm) {
		return fmt.Errorf("update %q: %w", arm, ErrUnknownArm)
	}
	p.lastArm = arm
	p.lastText = fb.Text
	p.hasLast = true
	return nil
}

// #endregion
