// Package replay runs simulations from JSON fixtures with a scripted oracle,
// so policy behavior can be pinned down without a live scoring service.
package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/review-bandits/internal/reviews"
)

// #endregion

// #region fixture-types

// Fixture is the top-level JSON structure for a replay run.
type Fixture struct {
	Description string          `json:"description"`
	Arms        []string        `json:"arms"`
	Records     []FixtureRecord `json:"records"`
	Policy      FixturePolicy   `json:"policy"`
	Oracle      FixtureOracle   `json:"oracle"`
	Steps       int             `json:"steps"`
	Seed        int64           `json:"seed"`

	// ExpectedChoices pins the arm chosen per step; empty = unchecked.
	ExpectedChoices []string `json:"expected_choices,omitempty"`
}

// FixtureRecord mirrors reviews.Record with JSON tags.
type FixtureRecord struct {
	Arm    string  `json:"arm"`
	Review string  `json:"review"`
	Rating float64 `json:"rating"`
}

// FixturePolicy names the policy variant and its construction parameters.
type FixturePolicy struct {
	Kind    string  `json:"kind"` // random | epsilon | classifier_epsilon | fairweather
	Epsilon float64 `json:"epsilon"`
}

// FixtureOracle scripts the scoring service: review text → label / score.
// Text absent from a map makes the corresponding oracle call fail, which
// exercises the orchestrator's degrade and propagation paths.
type FixtureOracle struct {
	Labels map[string]string `json:"labels"`
	Scores map[string]int    `json:"scores"`
}

// #endregion

// #region load

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	if f.Steps <= 0 {
		return Fixture{}, fmt.Errorf("fixture %s: steps must be positive", path)
	}
	if len(f.Records) == 0 {
		return Fixture{}, fmt.Errorf("fixture %s: no records", path)
	}
	return f, nil
}

// #endregion

// #region records

// reviewRecords converts fixture rows into corpus records.
func (f Fixture) reviewRecords() []reviews.Record {
	out := make([]reviews.Record, len(f.Records))
	for i, r := range f.Records {
		out[i] = reviews.Record{Arm: r.Arm, Review: r.Review, Rating: r.Rating}
	}
	return out
}

// #endregion
