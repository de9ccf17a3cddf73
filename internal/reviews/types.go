package reviews

// #region errors

import "errors"

var (
	// ErrNoArms indicates the configured arm set is empty after filtering.
	ErrNoArms = errors.New("no arms configured")

	// ErrUnknownArm indicates an operation referenced an arm outside the
	// configured set. This is a programmer error, not a transient condition.
	ErrUnknownArm = errors.New("unknown arm")

	// ErrExhausted indicates every record for an arm has been dispensed in
	// the current epoch. Recoverable via Reset.
	ErrExhausted = errors.New("review pool exhausted")
)

// #endregion

// #region record

// Record is one feedback row for a single arm. Read-only to consumers.
type Record struct {
	Arm    string
	Review string
	Rating float64
}

// #endregion
