package results

import (
	"testing"

	"github.com/danielpatrickdp/review-bandits/internal/simulation"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedRun(t *testing.T, s *Store) string {
	t.Helper()
	id, err := s.CreateExperiment(true, 3)
	if err != nil {
		t.Fatal(err)
	}
	runs := map[string][]simulation.StepRecord{
		"epsilon_greedy": {
			{Step: 0, Choice: "A", Score: 5},
			{Step: 1, Choice: "A", Score: 3},
			{Step: 2, Choice: "B", Score: 4},
		},
		"random_choice": {
			{Step: 0, Choice: "B", Score: 1},
			{Step: 1, Choice: "C", Score: 2},
			{Step: 2, Choice: "A", Score: 3},
		},
	}
	for policy, history := range runs {
		if err := s.RecordRun(id, policy, history); err != nil {
			t.Fatal(err)
		}
	}
	return id
}

func TestStore_CreateAndListExperiments(t *testing.T) {
	s := newTestStore(t)

	id, err := s.CreateExperiment(false, 50)
	if err != nil {
		t.Fatal(err)
	}
	if id == "" {
		t.Fatal("empty experiment id")
	}

	infos, err := s.ListExperiments(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 {
		t.Fatalf("got %d experiments, want 1", len(infos))
	}
	if infos[0].ID != id || infos[0].Synchronized || infos[0].NumSteps != 50 {
		t.Errorf("info = %+v, want id=%s synchronized=false steps=50", infos[0], id)
	}
	if infos[0].CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}
}

func TestStore_Summaries(t *testing.T) {
	s := newTestStore(t)
	id := seedRun(t, s)

	sums, err := s.Summaries(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 2 {
		t.Fatalf("got %d summaries, want 2", len(sums))
	}
	// Ordered by mean score descending: epsilon_greedy averages 4, random 2.
	if sums[0].Policy != "epsilon_greedy" {
		t.Errorf("top summary = %s, want epsilon_greedy", sums[0].Policy)
	}
	if sums[0].Steps != 3 || sums[0].TotalScore != 12 || sums[0].MeanScore != 4 {
		t.Errorf("summary = %+v, want steps=3 total=12 mean=4", sums[0])
	}
}

func TestStore_ChoiceCounts(t *testing.T) {
	s := newTestStore(t)
	id := seedRun(t, s)

	counts, err := s.ChoiceCounts(id, "epsilon_greedy")
	if err != nil {
		t.Fatal(err)
	}
	want := []ChoiceCount{{Choice: "A", Count: 2}, {Choice: "B", Count: 1}}
	if len(counts) != len(want) {
		t.Fatalf("got %d counts, want %d", len(counts), len(want))
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("count[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestStore_HistoryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	id := seedRun(t, s)

	history, err := s.History(id, "random_choice")
	if err != nil {
		t.Fatal(err)
	}
	want := []simulation.StepRecord{
		{Step: 0, Choice: "B", Score: 1},
		{Step: 1, Choice: "C", Score: 2},
		{Step: 2, Choice: "A", Score: 3},
	}
	if len(history) != len(want) {
		t.Fatalf("got %d steps, want %d", len(history), len(want))
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("step[%d] = %+v, want %+v", i, history[i], want[i])
		}
	}
}

func TestStore_EmptyExperiment(t *testing.T) {
	s := newTestStore(t)
	id, err := s.CreateExperiment(true, 0)
	if err != nil {
		t.Fatal(err)
	}
	sums, err := s.Summaries(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(sums) != 0 {
		t.Errorf("got %d summaries for empty experiment, want 0", len(sums))
	}
}
