package main

// #region imports
import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/danielpatrickdp/review-bandits/internal/results"
)

// #endregion

// #region main

func main() {
	dbPath := flag.String("db", "", "path to results.db")
	last := flag.Int("last", 20, "show N most recent experiments")
	experiment := flag.String("experiment", "", "show single experiment detail")
	policy := flag.String("policy", "", "filter choice breakdown to one policy")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/results.db [--last N] [--experiment id] [--policy name] [--json]")
		os.Exit(2)
	}

	store, err := results.NewStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if *experiment != "" {
		err = runDetailMode(store, *experiment, *policy, *jsonOut)
	} else {
		err = runListMode(store, *last, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

type listRow struct {
	ExperimentID string `json:"experiment_id"`
	Synchronized bool   `json:"synchronized"`
	NumSteps     int    `json:"num_steps"`
	CreatedAt    string `json:"created_at"`
}

func runListMode(store *results.Store, last int, jsonOut bool) error {
	experiments, err := store.ListExperiments(last)
	if err != nil {
		return err
	}
	if len(experiments) == 0 {
		fmt.Fprintln(os.Stderr, "no experiments found")
		return nil
	}

	rows := make([]listRow, len(experiments))
	for i, e := range experiments {
		rows[i] = listRow{
			ExperimentID: e.ID,
			Synchronized: e.Synchronized,
			NumSteps:     e.NumSteps,
			CreatedAt:    e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-12s  %-6s  %6s  %s\n", "Experiment", "Sync", "Steps", "Time")
	for _, r := range rows {
		sync := "no"
		if r.Synchronized {
			sync = "yes"
		}
		fmt.Printf("%-12s  %-6s  %6d  %s\n", shortID(r.ExperimentID), sync, r.NumSteps, r.CreatedAt)
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	ExperimentID string                  `json:"experiment_id"`
	Summaries    []results.PolicySummary `json:"summaries"`
	Choices      []results.ChoiceCount   `json:"choices,omitempty"`
}

func runDetailMode(store *results.Store, experimentID, policy string, jsonOut bool) error {
	summaries, err := store.Summaries(experimentID)
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		return fmt.Errorf("experiment %s not found or empty", experimentID)
	}

	out := detailOutput{ExperimentID: experimentID, Summaries: summaries}
	if policy != "" {
		out.Choices, err = store.ChoiceCounts(experimentID, policy)
		if err != nil {
			return err
		}
	}

	if jsonOut {
		return printJSON(out)
	}

	fmt.Printf("Experiment: %s\n\n", experimentID)
	fmt.Printf("%-26s  %6s  %10s  %10s\n", "Policy", "Steps", "Total", "Mean")
	for _, s := range summaries {
		fmt.Printf("%-26s  %6d  %10.2f  %10.4f\n", s.Policy, s.Steps, s.TotalScore, s.MeanScore)
	}

	if policy != "" {
		fmt.Printf("\nChoices (%s):\n", policy)
		for _, c := range out.Choices {
			fmt.Printf("  %-24s  %d\n", c.Choice, c.Count)
		}
	}
	return nil
}

// #endregion detail-mode

// #region output

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// #endregion output
