package main

// #region imports
import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/danielpatrickdp/review-bandits/internal/bandit"
	"github.com/danielpatrickdp/review-bandits/internal/config"
	"github.com/danielpatrickdp/review-bandits/internal/oracle"
	"github.com/danielpatrickdp/review-bandits/internal/results"
	"github.com/danielpatrickdp/review-bandits/internal/reviews"
	"github.com/danielpatrickdp/review-bandits/internal/simulation"
)

// #endregion

// #region main

func main() {
	configPath := flag.String("config", "", "path to experiment YAML config")
	flag.Parse()

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "usage: simulate --config experiment.yaml")
		os.Exit(2)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	client, err := oracle.NewClient(oracle.ClientConfig{
		APIKey:     apiKey,
		Model:      oracle.Model(cfg.Oracle.Model),
		BaseURL:    cfg.Oracle.BaseURL,
		MaxRetries: cfg.Oracle.MaxRetries,
	})
	if err != nil {
		return fmt.Errorf("oracle: %w (set OPENROUTER_API_KEY)", err)
	}

	records, err := reviews.LoadCSV(cfg.ReviewsCSV, cfg.ArmColumn)
	if err != nil {
		return err
	}

	var arms []string
	if len(cfg.Arms) > 0 {
		arms = cfg.Arms
	}

	rng := newRNG(cfg.Seed)
	store, err := results.NewStore(cfg.ResultsDB)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var runs []simulation.RunResult

	if cfg.Synchronized {
		sampler, err := reviews.NewSynchronizedSampler(records, arms, rng)
		if err != nil {
			return err
		}
		factories := policyFactories(sampler.Arms(), client, cfg.Epsilon, cfg.Seed)
		runs, err = simulation.RunSynchronizedExperiment(ctx, factories, sampler, client, cfg.Steps)
		if err != nil {
			return err
		}
	} else {
		sampler, err := reviews.NewSampler(records, arms, rng)
		if err != nil {
			return err
		}
		policies, err := buildPolicies(sampler.Arms(), client, cfg.Epsilon, cfg.Seed)
		if err != nil {
			return err
		}
		runs, err = simulation.RunExperiment(ctx, policies, sampler, client, cfg.Steps)
		if err != nil {
			return err
		}
	}

	experimentID, err := store.CreateExperiment(cfg.Synchronized, cfg.Steps)
	if err != nil {
		return err
	}
	for _, r := range runs {
		if err := store.RecordRun(experimentID, r.Policy, r.History); err != nil {
			return fmt.Errorf("record %s: %w", r.Policy, err)
		}
	}

	return printSummary(store, experimentID)
}

// #endregion run

// #region policies

// policyFactories builds one factory per policy variant. Each factory owns an
// independently seeded source so synchronized runs are reproducible per policy.
func policyFactories(arms []string, client *oracle.Client, epsilon float64, seed int64) []bandit.PolicyFactory {
	return []bandit.PolicyFactory{
		func() (bandit.Policy, error) {
			return bandit.NewRandomChoice(arms, newRNG(seed))
		},
		func() (bandit.Policy, error) {
			return bandit.NewEpsilonGreedy(arms, epsilon, newRNG(seed))
		},
		func() (bandit.Policy, error) {
			return bandit.NewClassifierEpsilonGreedy(arms, client, epsilon, newRNG(seed))
		},
		func() (bandit.Policy, error) {
			return bandit.NewFairweatherFriend(arms, client, newRNG(seed))
		},
	}
}

func buildPolicies(arms []string, client *oracle.Client, epsilon float64, seed int64) ([]bandit.Policy, error) {
	var policies []bandit.Policy
	for _, factory := range policyFactories(arms, client, epsilon, seed) {
		p, err := factory()
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		return nil // constructors fall back to a time-seeded source
	}
	return rand.New(rand.NewSource(seed))
}

// #endregion policies

// #region summary

func printSummary(store *results.Store, experimentID string) error {
	summaries, err := store.Summaries(experimentID)
	if err != nil {
		return err
	}

	fmt.Printf("experiment %s\n\n", experimentID)
	fmt.Printf("%-26s  %6s  %10s  %10s\n", "Policy", "Steps", "Total", "Mean")
	for _, s := range summaries {
		fmt.Printf("%-26s  %6d  %10.2f  %10.4f\n", s.Policy, s.Steps, s.TotalScore, s.MeanScore)
	}
	return nil
}

// #endregion summary
