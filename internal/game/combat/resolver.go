package combat

import (
	"math"

	"github.com/okonen/lingoclash/internal/game/speech"
	"github.com/okonen/lingoclash/internal/game/vocab"
)

const (
	// GatingThreshold is the minimum accuracy score at which the complexity
	// bonus applies. Below it the bonus is withheld on both turn types.
	GatingThreshold = 60.0

	// attackRevealPenalty is the flat multiplier cost of playing a revealed
	// card on an attack turn.
	attackRevealPenalty = 0.20

	// defenseRevealCap bounds how much of an earned defense reduction a
	// reveal can claw back: at most 20 percentage points of damage taken.
	defenseRevealCap = 0.20

	// defenseFloor and defenseCeiling clamp the defense multiplier: a
	// defender always takes at least 10% of incoming damage and never more
	// than the undefended baseline.
	defenseFloor   = 0.10
	defenseCeiling = 1.00
)

// TurnType selects which resolution formula applies.
type TurnType int

const (
	Attack TurnType = iota
	Defense
)

// String returns the wire label for the turn type.
func (t TurnType) String() string {
	switch t {
	case Attack:
		return "attack"
	case Defense:
		return "defense"
	default:
		return "unknown"
	}
}

// complexityGateOpen is the single source of truth for the gating rule shared
// by attack and defense resolution.
func complexityGateOpen(accuracyScore float64) bool {
	return accuracyScore >= GatingThreshold
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Breakdown itemizes every intermediate quantity of one resolution so the
// presentation layer can show "why" without recomputing. The fields always
// recombine to the returned multiplier: PostClampMultiplier is the clamped
// sum of 1.0, the two bonuses, and the reveal penalty.
type Breakdown struct {
	// PronunciationBonus is the rating-table contribution (>= 0 on attack,
	// <= 0 on defense).
	PronunciationBonus float64
	// ComplexityBonus is the complexity-table contribution after gating.
	ComplexityBonus float64
	// ComplexityGated is true when the accuracy score was below the gating
	// threshold and the complexity bonus was withheld.
	ComplexityGated bool
	// RevealPenalty is the applied reveal cost (always >= 0).
	RevealPenalty float64
	// PreClampMultiplier is the multiplier before clamping.
	PreClampMultiplier float64
	// PostClampMultiplier is the multiplier actually applied. Equal to
	// PreClampMultiplier on attack turns, which never clamp.
	PostClampMultiplier float64
}

// Result is the outcome of one resolution.
type Result struct {
	// Multiplier is the final damage multiplier.
	Multiplier float64
	// Value is the damage dealt (attack) or taken (defense).
	Value float64
	// Breakdown itemizes how Multiplier was reached.
	Breakdown Breakdown
}

// AttackInput carries everything needed to resolve an attack turn.
type AttackInput struct {
	// Assessment is the pronunciation result for the spoken word.
	Assessment speech.Assessment
	// Level is the vocabulary item's complexity tier.
	Level vocab.ComplexityLevel
	// BasePower is the attacking item's base attack power.
	BasePower float64
	// Revealed is true when the card was exposed before being committed.
	Revealed bool
}

// DefenseInput carries everything needed to resolve a defense turn.
type DefenseInput struct {
	// Assessment is the pronunciation result for the spoken word.
	Assessment speech.Assessment
	// Level is the vocabulary item's complexity tier.
	Level vocab.ComplexityLevel
	// Category selects the regular or special defense-reduction column.
	Category vocab.Category
	// IncomingPower is the opponent's base attack power.
	IncomingPower float64
	// Revealed is true when the card was exposed before being committed.
	Revealed bool
}

// Resolver resolves attack and defense turns against the active balance
// tables. It is pure and stateless: safe for arbitrary concurrent use.
type Resolver struct {
	tables *Store
}

// NewResolver creates a Resolver reading balance values from store.
//
// Precondition: store must be non-nil.
func NewResolver(store *Store) *Resolver {
	return &Resolver{tables: store}
}

// ResolveAttack computes the damage dealt by an attack turn.
//
// Formula: 1.00 + pronunciation bonus + gated complexity bonus - flat 0.20
// reveal penalty, times base power. No clamp: a perfect unrevealed play may
// exceed 2.0, and a worst-case revealed play bottoms out at 0.80.
//
// Postcondition: On success Result.Multiplier >= 0 and the breakdown sums to
// the returned multiplier.
func (r *Resolver) ResolveAttack(in AttackInput) (Result, error) {
	t := r.tables.Current()
	if err := validateInputs(in.Assessment, in.Level, in.BasePower); err != nil {
		return Result{}, err
	}

	pronBonus, err := t.AttackRating.For(in.Assessment.Rating)
	if err != nil {
		return Result{}, err
	}
	compBonus, gated, err := gatedComplexityBonus(t.AttackComplexity, in.Level, in.Assessment.AccuracyScore)
	if err != nil {
		return Result{}, err
	}

	revealPenalty := 0.0
	if in.Revealed {
		revealPenalty = attackRevealPenalty
	}

	multiplier := 1.0 + pronBonus + compBonus - revealPenalty
	return Result{
		Multiplier: multiplier,
		Value:      in.BasePower * multiplier,
		Breakdown: Breakdown{
			PronunciationBonus:  pronBonus,
			ComplexityBonus:     compBonus,
			ComplexityGated:     gated,
			RevealPenalty:       revealPenalty,
			PreClampMultiplier:  multiplier,
			PostClampMultiplier: multiplier,
		},
	}, nil
}

// ResolveDefense computes the damage taken on a defense turn.
//
// The earned reduction is pronunciation bonus + gated complexity bonus (both
// <= 0). Revealing negates the earned reduction, but the negation is capped
// at 0.20: a reveal can erase a small bonus entirely, never push damage past
// the undefended baseline. The multiplier is clamped to [0.10, 1.00].
//
// Postcondition: On success 0.10 <= Result.Multiplier <= 1.00 and
// Breakdown.RevealPenalty is within [0, 0.20].
func (r *Resolver) ResolveDefense(in DefenseInput) (Result, error) {
	t := r.tables.Current()
	if err := validateInputs(in.Assessment, in.Level, in.IncomingPower); err != nil {
		return Result{}, err
	}

	pronBonus, err := t.DefenseRating.For(in.Assessment.Rating, in.Category)
	if err != nil {
		return Result{}, err
	}
	compBonus, gated, err := gatedComplexityBonus(t.DefenseComplexity, in.Level, in.Assessment.AccuracyScore)
	if err != nil {
		return Result{}, err
	}

	earned := pronBonus + compBonus
	revealPenalty := 0.0
	if in.Revealed {
		revealPenalty = math.Min(-earned, defenseRevealCap)
	}

	preClamp := 1.0 + earned + revealPenalty
	multiplier := clamp(preClamp, defenseFloor, defenseCeiling)
	return Result{
		Multiplier: multiplier,
		Value:      in.IncomingPower * multiplier,
		Breakdown: Breakdown{
			PronunciationBonus:  pronBonus,
			ComplexityBonus:     compBonus,
			ComplexityGated:     gated,
			RevealPenalty:       revealPenalty,
			PreClampMultiplier:  preClamp,
			PostClampMultiplier: multiplier,
		},
	}, nil
}

// gatedComplexityBonus applies the shared gating precondition to a complexity
// table lookup. The level is validated even when the gate is closed, so an
// out-of-range item never resolves just because the player scored low.
func gatedComplexityBonus(table ComplexityBonuses, level vocab.ComplexityLevel, accuracyScore float64) (bonus float64, gated bool, err error) {
	value, err := table.For(level)
	if err != nil {
		return 0, false, err
	}
	if !complexityGateOpen(accuracyScore) {
		return 0, true, nil
	}
	return value, false, nil
}

// validateInputs re-checks the boundary contract. Inputs normally arrive
// through the validating constructors, but the resolver is the last line
// before arithmetic, and a malformed input must never produce a
// plausible-looking multiplier.
func validateInputs(a speech.Assessment, level vocab.ComplexityLevel, basePower float64) error {
	if _, err := speech.NewAssessment(a.Rating, a.AccuracyScore); err != nil {
		return err
	}
	if _, err := vocab.NewComplexityLevel(int(level)); err != nil {
		return err
	}
	return vocab.ValidateBasePower(basePower)
}
