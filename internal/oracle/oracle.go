// Package oracle converts free-text reviews into the feedback units the
// bandit policies consume: a Good/Bad label or an integer score in [1,100].
package oracle

import (
	"context"
	"errors"
)

// #region labels

// Label is a binary review classification.
type Label string

const (
	LabelGood Label = "Good"
	LabelBad  Label = "Bad"
)

// #endregion

// #region errors

var (
	// ErrInvalidLabel indicates the scoring service returned something other
	// than the two allowed labels.
	ErrInvalidLabel = errors.New("invalid classification label")

	// ErrInvalidScore indicates the scoring service returned a value that is
	// not an integer in [1,100].
	ErrInvalidScore = errors.New("score outside valid range")
)

// #endregion

// #region interfaces

// Classifier labels review text as Good or Bad.
type Classifier interface {
	Classify(ctx context.Context, text string) (Label, error)
}

// Quantifier scores review text on a 1-100 scale.
type Quantifier interface {
	Quantify(ctx context.Context, text string) (int, error)
}

// #endregion
