package replay

// #region imports
import (
	"context"
	"fmt"
	"math/rand"

	"github.com/danielpatrickdp/review-bandits/internal/bandit"
	"github.com/danielpatrickdp/review-bandits/internal/oracle"
	"github.com/danielpatrickdp/review-bandits/internal/reviews"
	"github.com/danielpatrickdp/review-bandits/internal/simulation"
)

// #endregion

// #region scripted-oracle

// ScriptedOracle answers classify/quantify calls from fixture maps.
type ScriptedOracle struct {
	labels map[string]string
	scores map[string]int
}

// NewScriptedOracle builds an oracle from a fixture script.
func NewScriptedOracle(script FixtureOracle) *ScriptedOracle {
	return &ScriptedOracle{labels: script.Labels, scores: script.Scores}
}

// Classify implements oracle.Classifier from the script.
func (o *ScriptedOracle) Classify(_ context.Context, text string) (oracle.Label, error) {
	raw, ok := o.labels[text]
	if !ok {
		return "", fmt.Errorf("scripted classify %q: %w", text, oracle.ErrInvalidLabel)
	}
	label := oracle.Label(raw)
	if label != oracle.LabelGood && label != oracle.LabelBad {
		return "", fmt.Errorf("scripted classify %q: got %q: %w", text, raw, oracle.ErrInvalidLabel)
	}
	return label, nil
}

// Quantify implements oracle.Quantifier from the script.
func (o *ScriptedOracle) Quantify(_ context.Context, text string) (int, error) {
	score, ok := o.scores[text]
	if !ok {
		return 0, fmt.Errorf("scripted quantify %q: %w", text, oracle.ErrInvalidScore)
	}
	return score, nil
}

// #endregion

// #region replay

// Replay builds the fixture's policy and sampler and runs one simulation.
func Replay(ctx context.Context, f Fixture) ([]simulation.StepRecord, error) {
	rng := rand.New(rand.NewSource(f.Seed))
	sampler, err := reviews.NewSampler(f.reviewRecords(), f.Arms, rng)
	if err != nil {
		return nil, fmt.Errorf("fixture sampler: %w", err)
	}

	scripted := NewScriptedOracle(f.Oracle)
	policy, err := buildPolicy(f, scripted, rng)
	if err != nil {
		return nil, fmt.Errorf("fixture policy: %w", err)
	}

	return simulation.RunSimulation(ctx, policy, sampler, scripted, f.Steps)
}

// #endregion

// #region build-policy

func buildPolicy(f Fixture, classifier oracle.Classifier, rng *rand.Rand) (bandit.Policy, error) {
	arms := f.Arms
	if arms == nil {
		// Preserve first-appearance order from the records.
		seen := map[string]bool{}
		for _, r := range f.Records {
			if !seen[r.Arm] {
				seen[r.Arm] = true
				arms = append(arms, r.Arm)
			}
		}
	}

	switch f.Policy.Kind {
	case "random":
		return bandit.NewRandomChoice(arms, rng)
	case "epsilon":
		return bandit.NewEpsilonGreedy(arms, f.Policy.Epsilon, rng)
	case "classifier_epsilon":
		return bandit.NewClassifierEpsilonGreedy(arms, classifier, f.Policy.Epsilon, rng)
	case "fairweather":
		return bandit.NewFairweatherFriend(arms, classifier, rng)
	default:
		return nil, fmt.Errorf("unknown policy kind %q", f.Policy.Kind)
	}
}

// #endregion

// #region verify

// Verify checks a replayed history against the fixture's expectations.
func Verify(f Fixture, history []simulation.StepRecord) error {
	if len(history) != f.Steps {
		return fmt.Errorf("history has %d steps, fixture expects %d", len(history), f.Steps)
	}
	for i, want := range f.ExpectedChoices {
		if i >= len(history) {
			break
		}
		if history[i].Choice != want {
			return fmt.Errorf("step %d: chose %q, fixture expects %q", i, history[i].Choice, want)
		}
	}
	return nil
}

// #endregion
