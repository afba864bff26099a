// Package speech holds the pronunciation-assessment values produced by the
// upstream speech-assessment service. The engine consumes these values; it
// never performs speech analysis itself.
package speech

import (
	"errors"
	"fmt"
	"math"
)

// Rating is the four-tier pronunciation quality produced by the assessment
// service. The set is closed: anything else from upstream is rejected at the
// boundary, never defaulted to a bonus-bearing tier.
type Rating int

const (
	Excellent Rating = iota
	Good
	Okay
	NeedsImprovement
)

// ErrInvalidRating reports a rating value outside the closed four-tier set.
var ErrInvalidRating = errors.New("invalid pronunciation rating")

// ErrInvalidAccuracyScore reports an accuracy score outside [0,100].
var ErrInvalidAccuracyScore = errors.New("accuracy score outside [0,100]")

// Valid reports whether r is one of the four defined tiers.
func (r Rating) Valid() bool {
	return r >= Excellent && r <= NeedsImprovement
}

// String returns the wire label for the rating.
func (r Rating) String() string {
	switch r {
	case Excellent:
		return "excellent"
	case Good:
		return "good"
	case Okay:
		return "okay"
	case NeedsImprovement:
		return "needs_improvement"
	default:
		return "unknown"
	}
}

// ParseRating converts a wire label into a Rating.
//
// Postcondition: Returns a valid Rating, or ErrInvalidRating for any label
// outside the closed set (including the empty string).
func ParseRating(s string) (Rating, error) {
	switch s {
	case "excellent":
		return Excellent, nil
	case "good":
		return Good, nil
	case "okay":
		return Okay, nil
	case "needs_improvement":
		return NeedsImprovement, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
	}
}

// Assessment is the immutable per-turn result of the external pronunciation
// assessment: a discrete rating plus the numeric accuracy score used for
// complexity-bonus gating. Construct with NewAssessment; the zero value is a
// valid Excellent/0 assessment but callers should never fabricate one.
type Assessment struct {
	Rating        Rating
	AccuracyScore float64
}

// NewAssessment validates and builds an Assessment.
//
// Precondition: rating must be one of the four defined tiers; score must be
// within [0,100] and finite.
// Postcondition: Returns a valid Assessment, or an error wrapping
// ErrInvalidRating or ErrInvalidAccuracyScore.
func NewAssessment(rating Rating, score float64) (Assessment, error) {
	if !rating.Valid() {
		return Assessment{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if math.IsNaN(score) || score < 0 || score > 100 {
		return Assessment{}, fmt.Errorf("%w: got %v", ErrInvalidAccuracyScore, score)
	}
	return Assessment{Rating: rating, AccuracyScore: score}, nil
}
