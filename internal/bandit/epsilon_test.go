package bandit

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func TestNewEpsilonGreedy_Validation(t *testing.T) {
	tests := []struct {
		name    string
		arms    []string
		epsilon float64
		wantErr error
	}{
		{"valid", []string{"A"}, 0.1, nil},
		{"empty-arms", nil, 0.1, ErrNoArms},
		{"epsilon-too-low", []string{"A"}, -0.1, ErrBadEpsilon},
		{"epsilon-too-high", []string{"A"}, 1.1, ErrBadEpsilon},
		{"epsilon-bounds-ok", []string{"A"}, 1.0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEpsilonGreedy(tt.arms, tt.epsilon, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got err %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEpsilonGreedy_WarmupCyclesArmsInOrder(t *testing.T) {
	arms := []string{"C", "A", "B", "D"}
	p, err := NewEpsilonGreedy(arms, 0.5, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	for i, want := range arms {
		got, err := p.Select(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("warm-up call %d: got %s, want %s", i, got, want)
		}
	}
}

func TestEpsilonGreedy_ExploitsHighestMean(t *testing.T) {
	arms := []string{"A", "B"}
	p, err := NewEpsilonGreedy(arms, 0.0, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	drainWarmup(t, p, len(arms))

	// A averages 80, B averages 20.
	for _, s := range []float64{70, 90} {
		if err := p.Update(ctx, "A", Feedback{Score: s}); err != nil {
			t.Fatal(err)
		}
	}
	for _, s := range []float64{10, 30} {
		if err := p.Update(ctx, "B", Feedback{Score: s}); err != nil {
			t.Fatal(err)
		}
	}

	for i := 0; i < 50; i++ {
		arm, err := p.Select(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if arm != "A" {
			t.Fatalf("exploitation chose %s, want A", arm)
		}
	}
}

func TestEpsilonGreedy_TieBreakIsUniform(t *testing.T) {
	arms := []string{"A", "B", "C"}
	p, err := NewEpsilonGreedy(arms, 0.0, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	drainWarmup(t, p, len(arms))

	// A and B tie at 60; C trails at 10.
	p.Update(ctx, "A", Feedback{Score: 60})
	p.Update(ctx, "B", Feedback{Score: 60})
	p.Update(ctx, "C", Feedback{Score: 10})

	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		arm, err := p.Select(ctx)
		if err != nil {
			t.Fatal(err)
		}
		counts[arm]++
	}

	if counts["C"] != 0 {
		t.Errorf("losing arm C chosen %d times, want 0", counts["C"])
	}
	// Statistical, not exact: each tied arm should land near 1000.
	for _, arm := range []string{"A", "B"} {
		if counts[arm] < 800 || counts[arm] > 1200 {
			t.Errorf("tied arm %s chosen %d times, want roughly 1000", arm, counts[arm])
		}
	}
}

func TestEpsilonGreedy_UnobservedSentinelKeepsArmAttractive(t *testing.T) {
	arms := []string{"A", "B"}
	p, err := NewEpsilonGreedy(arms, 0.0, rand.New(rand.NewSource(17)))
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	drainWarmup(t, p, len(arms))

	// A observed below the sentinel; B stays unobserved and must win.
	p.Update(ctx, "A", Feedback{Score: 30})
	for i := 0; i < 20; i++ {
		arm, err := p.Select(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if arm != "B" {
			t.Fatalf("chose %s, want unobserved arm B", arm)
		}
	}
}

func TestEpsilonGreedy_UpdateUnknownArm(t *testing.T) {
	p, err := NewEpsilonGreedy([]string{"A"}, 0.1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Update(context.Background(), "Z", Feedback{Score: 1}); !errors.Is(err, ErrUnknownArm) {
		t.Errorf("got err %v, want ErrUnknownArm", err)
	}
}

func drainWarmup(t *testing.T, p Policy, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		if _, err := p.Select(ctx); err != nil {
			t.Fatal(err)
		}
	}
}
