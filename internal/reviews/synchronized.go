package reviews

// #region imports
import (
	"errors"
	"math/rand"
)

// #endregion

// #region sync-key

type syncKey struct {
	Timestep int
	Arm      string
}

// #endregion

// #region synchronized-struct

// SynchronizedSampler extends Sampler with a (timestep, arm) cache so that
// distinct policies choosing the same arm at the same logical timestep observe
// the identical record. This removes sampling luck as a confound when
// comparing policies within one experiment.
type SynchronizedSampler struct {
	*Sampler

	cache    map[syncKey]Record
	timestep int
}

// NewSynchronizedSampler builds a SynchronizedSampler over the given corpus.
func NewSynchronizedSampler(records []Record, arms []string, rng *rand.Rand) (*SynchronizedSampler, error) {
	base, err := NewSampler(records, arms, rng)
	if err != nil {
		return nil, err
	}
	return &SynchronizedSampler{
		Sampler: base,
		cache:   make(map[syncKey]Record),
	}, nil
}

// #endregion

// #region timestep

// SetTimestep sets the implicit timestep used by PickSynchronized.
func (s *SynchronizedSampler) SetTimestep(t int) {
	s.timestep = t
}

// #endregion

// #region pick-synchronized

// PickSynchronized returns the review for (current timestep, arm).
func (s *SynchronizedSampler) PickSynchronized(arm string) (Record, error) {
	return s.PickSynchronizedAt(arm, s.timestep)
}

// PickSynchronizedAt returns the review for (timestep, arm). The first call
// for a pair draws from the underlying pool (transparently resetting once on
// exhaustion) and caches the result; every later call for the same pair
// returns the identical record for the life of the cache.
func (s *SynchronizedSampler) PickSynchronizedAt(arm string, timestep int) (Record, error) {
	key := syncKey{Timestep: timestep, Arm: arm}
	if rec, ok := s.cache[key]; ok {
		return rec, nil
	}

	rec, err := s.Pick(arm)
	if errors.Is(err, ErrExhausted) {
		if rerr := s.Reset(arm); rerr != nil {
			return Record{}, rerr
		}
		rec, err = s.Pick(arm)
	}
	if err != nil {
		return Record{}, err
	}

	s.cache[key] = rec
	return rec, nil
}

// #endregion

// #region reset

// ResetSynchronization clears the cache and timestep counter. Must run
// between independent experiments using this sampler, otherwise stale
// cross-run associations leak forward.
func (s *SynchronizedSampler) ResetSynchronization() {
	s.cache = make(map[syncKey]Record)
	s.timestep = 0
}

// ResetAll resets both the per-arm pools and the synchronization state.
// This is the composite reset used between experiments.
func (s *SynchronizedSampler) ResetAll() {
	s.Sampler.ResetAll()
	s.ResetSynchronization()
}

// #endregion
