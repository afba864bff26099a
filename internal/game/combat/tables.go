// Package combat implements the deterministic battle-resolution engine: it
// turns a pronunciation assessment and a chosen vocabulary item into a damage
// multiplier, with an itemized breakdown for display.
package combat

import (
	"fmt"
	"strings"

	"github.com/okonen/lingoclash/internal/game/speech"
	"github.com/okonen/lingoclash/internal/game/vocab"
)

// RatingBonuses holds one bonus value per pronunciation tier. One struct
// field per tier keeps the table exhaustive by construction: adding a tier
// without a value is a compile-time hole, not a silent zero.
type RatingBonuses struct {
	Excellent        float64
	Good             float64
	Okay             float64
	NeedsImprovement float64
}

// For looks up the bonus for rating.
//
// Postcondition: Returns the tier's value, or speech.ErrInvalidRating for a
// rating outside the closed set. A missing entry here would corrupt game
// balance undetected, so the failure is loud, never a defaulted zero.
func (b RatingBonuses) For(rating speech.Rating) (float64, error) {
	switch rating {
	case speech.Excellent:
		return b.Excellent, nil
	case speech.Good:
		return b.Good, nil
	case speech.Okay:
		return b.Okay, nil
	case speech.NeedsImprovement:
		return b.NeedsImprovement, nil
	default:
		return 0, fmt.Errorf("%w: %d", speech.ErrInvalidRating, int(rating))
	}
}

// DefenseRatingTable holds the two defense-reduction columns, keyed by item
// category.
type DefenseRatingTable struct {
	Regular RatingBonuses
	Special RatingBonuses
}

// For looks up the defense reduction for rating under category.
//
// Postcondition: Returns a value <= 0 for valid inputs, or an error wrapping
// speech.ErrInvalidRating or vocab.ErrInvalidCategory.
func (t DefenseRatingTable) For(rating speech.Rating, category vocab.Category) (float64, error) {
	switch category {
	case vocab.Regular:
		return t.Regular.For(rating)
	case vocab.Special:
		return t.Special.For(rating)
	default:
		return 0, fmt.Errorf("%w: %d", vocab.ErrInvalidCategory, int(category))
	}
}

// ComplexityBonuses holds one bonus value per complexity level, indexed by
// level-1.
type ComplexityBonuses [5]float64

// For looks up the bonus for level.
//
// Postcondition: Returns the level's value, or vocab.ErrInvalidComplexityLevel.
func (b ComplexityBonuses) For(level vocab.ComplexityLevel) (float64, error) {
	if !level.Valid() {
		return 0, fmt.Errorf("%w: got %d", vocab.ErrInvalidComplexityLevel, int(level))
	}
	return b[level-1], nil
}

// Tables is one complete, immutable set of balance values. A Tables value is
// never edited in place after construction; balance changes swap in a whole
// new value (see Store).
type Tables struct {
	// Version identifies the balance revision, surfaced to clients so a
	// preview copy can detect skew against the authoritative server.
	Version string
	// AttackRating is the attack bonus per pronunciation tier.
	AttackRating RatingBonuses
	// DefenseRating is the damage reduction per tier, per item category.
	DefenseRating DefenseRatingTable
	// AttackComplexity is the attack bonus per complexity level.
	AttackComplexity ComplexityBonuses
	// DefenseComplexity is the damage reduction per complexity level.
	DefenseComplexity ComplexityBonuses
}

// DefaultTables returns the built-in balance values.
func DefaultTables() *Tables {
	return &Tables{
		Version: "builtin",
		AttackRating: RatingBonuses{
			Excellent:        0.60,
			Good:             0.30,
			Okay:             0.10,
			NeedsImprovement: 0.00,
		},
		DefenseRating: DefenseRatingTable{
			Regular: RatingBonuses{
				Excellent:        -0.50,
				Good:             -0.30,
				Okay:             -0.10,
				NeedsImprovement: 0.00,
			},
			Special: RatingBonuses{
				Excellent:        -0.70,
				Good:             -0.50,
				Okay:             -0.25,
				NeedsImprovement: 0.00,
			},
		},
		AttackComplexity:  ComplexityBonuses{0.00, 0.15, 0.30, 0.45, 0.60},
		DefenseComplexity: ComplexityBonuses{0.00, -0.05, -0.10, -0.15, -0.20},
	}
}

// Validate checks the sign invariants the resolver depends on: attack values
// add to the multiplier (>= 0), defense values reduce it (<= 0). The defense
// reveal-penalty formula assumes earned defense bonuses are never positive.
//
// Postcondition: Returns nil iff every table entry satisfies its sign
// constraint and Version is non-empty.
func (t *Tables) Validate() error {
	if t.Version == "" {
		return fmt.Errorf("tables version must not be empty")
	}
	var errs []string
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0, got %v", name, v))
		}
	}
	nonPositive := func(name string, v float64) {
		if v > 0 {
			errs = append(errs, fmt.Sprintf("%s must be <= 0, got %v", name, v))
		}
	}
	t.AttackRating.each(func(tier string, v float64) { nonNegative("attack.rating."+tier, v) })
	t.DefenseRating.Regular.each(func(tier string, v float64) { nonPositive("defense.rating.regular."+tier, v) })
	t.DefenseRating.Special.each(func(tier string, v float64) { nonPositive("defense.rating.special."+tier, v) })
	for i, v := range t.AttackComplexity {
		nonNegative(fmt.Sprintf("attack.complexity.%d", i+1), v)
	}
	for i, v := range t.DefenseComplexity {
		nonPositive(fmt.Sprintf("defense.complexity.%d", i+1), v)
	}
	if len(errs) > 0 {
		return fmt.Errorf("balance table validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// each visits every tier/value pair in wire-label order.
func (b RatingBonuses) each(fn func(tier string, v float64)) {
	fn("excellent", b.Excellent)
	fn("good", b.Good)
	fn("okay", b.Okay)
	fn("needs_improvement", b.NeedsImprovement)
}
