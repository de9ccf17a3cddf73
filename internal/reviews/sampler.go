package reviews

// #region imports
import (
	"fmt"
	"math/rand"
	"time"
)

// #endregion

// #region sampler-struct

// Sampler serves non-repeating random reviews per arm. Each arm's records are
// dispensed without replacement within an epoch: the first request shuffles a
// working list of that arm's record indices and later requests pop from its
// tail, so every record appears exactly once until the pool drains.
//
// Sampler is not safe for concurrent use; one logical run drives it at a time.
type Sampler struct {
	arms    []string            // configured arm set, order preserved
	armSet  map[string]bool
	byArm   map[string][]Record // full corpus partitioned by arm
	pending map[string][]int    // shuffled working lists, keyed by arm
	rng     *rand.Rand
}

// #endregion

// #region constructor

// NewSampler partitions records by arm. When arms is nil the arm set is
// inferred from the records; otherwise records outside the given set are
// dropped. Returns ErrNoArms if the effective arm set is empty.
// A nil rng falls back to a time-seeded source.
func NewSampler(records []Record, arms []string, rng *rand.Rand) (*Sampler, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Sampler{
		armSet:  make(map[string]bool),
		byArm:   make(map[string][]Record),
		pending: make(map[string][]int),
		rng:     rng,
	}

	if arms == nil {
		for _, rec := range records {
			if !s.armSet[rec.Arm] {
				s.armSet[rec.Arm] = true
				s.arms = append(s.arms, rec.Arm)
			}
		}
	} else {
		for _, a := range arms {
			if !s.armSet[a] {
				s.armSet[a] = true
				s.arms = append(s.arms, a)
			}
		}
	}

	for _, rec := range records {
		if s.armSet[rec.Arm] {
			s.byArm[rec.Arm] = append(s.byArm[rec.Arm], rec)
		}
	}

	if len(s.arms) == 0 {
		return nil, ErrNoArms
	}
	return s, nil
}

// #endregion

// #region arms

// Arms returns the configured arm set in construction order.
func (s *Sampler) Arms() []string {
	out := make([]string, len(s.arms))
	copy(out, s.arms)
	return out
}

// #endregion

// #region pick

// Pick returns a random, not-yet-seen review for the given arm. Each call is
// unique within the current epoch. Returns ErrUnknownArm for an arm outside
// the configured set and ErrExhausted once the epoch is complete; callers are
// expected to Reset and retry on exhaustion.
func (s *Sampler) Pick(arm string) (Record, error) {
	if !s.armSet[arm] {
		return Record{}, fmt.Errorf("pick %q: %w", arm, ErrUnknownArm)
	}

	pool, started := s.pending[arm]
	if !started {
		// New epoch: shuffle a fresh working list of this arm's indices.
		pool = make([]int, len(s.byArm[arm]))
		for i := range pool {
			pool[i] = i
		}
		s.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		s.pending[arm] = pool
	}

	if len(pool) == 0 {
		return Record{}, fmt.Errorf("pick %q: %w", arm, ErrExhausted)
	}

	last := len(pool) - 1
	rec := s.byArm[arm][pool[last]]
	s.pending[arm] = pool[:last]
	return rec, nil
}

// #endregion

// #region reset

// Reset discards the working list for one arm so the next Pick reshuffles
// from the full pool, starting a new epoch for that arm.
func (s *Sampler) Reset(arm string) error {
	if !s.armSet[arm] {
		return fmt.Errorf("reset %q: %w", arm, ErrUnknownArm)
	}
	delete(s.pending, arm)
	return nil
}

// ResetAll resets every arm. Called at the start of each independent run so
// runs share identical starting conditions.
func (s *Sampler) ResetAll() {
	s.pending = make(map[string][]int)
}

// #endregion
